package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/rgehrsitz/drivefit/internal/tui/tuistyles"
)

const yAxisWidth = 9

// DataSeries is one line of a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
	Marker rune
}

// ASCIIChart draws line series on a character grid
type ASCIIChart struct {
	Title  string
	Series []*DataSeries
	Labels []string
	Width  int
	Height int

	// FormatY renders a y-axis tick; dollars in thousands by default
	FormatY func(float64) string
}

// NewASCIIChart creates an empty chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:   title,
		Width:   60,
		Height:  12,
		FormatY: formatChartValue,
	}
}

// ValuePathChart plots the expected value of a ten-year projection between
// its lower and upper bounds
func ValuePathChart(title string, path []domain.ValuePathPoint) *ASCIIChart {
	values := make([]float64, len(path))
	lower := make([]float64, len(path))
	upper := make([]float64, len(path))
	labels := make([]string, len(path))
	for i, p := range path {
		values[i] = p.Value.InexactFloat64()
		lower[i] = p.Lower.InexactFloat64()
		upper[i] = p.Upper.InexactFloat64()
		labels[i] = fmt.Sprintf("Y%d", p.Year)
	}
	return NewASCIIChart(title).
		AddSeries("Upper", upper, tuistyles.ColorChartUpper, '·').
		AddSeries("Lower", lower, tuistyles.ColorChartLower, '·').
		AddSeries("Expected", values, tuistyles.ColorChartValue, '●').
		WithLabels(labels)
}

// AddSeries appends a series. Later series draw over earlier ones.
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color, marker rune) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color, Marker: marker})
	return c
}

// WithLabels sets x-axis labels, one per point
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the outer dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// Bounds returns the padded min and max across all series
func (c *ASCIIChart) Bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	if hi == lo {
		// flat series still needs a non-zero range
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

func (c *ASCIIChart) hasPoints() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// Render returns the chart with its legend
func (c *ASCIIChart) Render() string {
	if !c.hasPoints() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		out.WriteString("\n\n")
	}
	out.WriteString(c.renderGrid())
	if len(c.Series) > 1 {
		out.WriteString("\n")
		out.WriteString(c.renderLegend())
	}
	return out.String()
}

func (c *ASCIIChart) plotWidth() int {
	w := c.Width - yAxisWidth - 2
	if w < 2 {
		w = 2
	}
	return w
}

func (c *ASCIIChart) renderGrid() string {
	lo, hi := c.Bounds()
	width := c.plotWidth()
	height := c.Height
	if height < 2 {
		height = 2
	}

	grid := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
		colors[y] = make([]lipgloss.Color, width)
	}

	toX := func(i, n int) int {
		if n <= 1 {
			return 0
		}
		return int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
	}
	toY := func(v float64) int {
		return height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(height-1)))
	}

	for _, s := range c.Series {
		n := len(s.Points)
		for i, p := range s.Points {
			x, y := toX(i, n), toY(p)
			if i > 0 {
				drawLine(grid, colors, toX(i-1, n), toY(s.Points[i-1]), x, y, s.Marker, s.Color)
			}
			plot(grid, colors, x, y, s.Marker, s.Color)
		}
	}

	var out strings.Builder
	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for y := range grid {
		tick := ""
		if y == 0 || y == height-1 || y == height/2 {
			tick = c.FormatY(hi - float64(y)/float64(height-1)*(hi-lo))
		}
		out.WriteString(axis.Render(tick))
		out.WriteString(" │")
		for x, r := range grid[y] {
			if r == ' ' {
				out.WriteRune(r)
				continue
			}
			out.WriteString(lipgloss.NewStyle().Foreground(colors[y][x]).Render(string(r)))
		}
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth+1))
	out.WriteString("└")
	out.WriteString(strings.Repeat("─", width))
	out.WriteString("\n")

	if len(c.Labels) > 0 {
		out.WriteString(c.renderXAxisLabels(width, toX))
	}
	return out.String()
}

func plot(grid [][]rune, colors [][]lipgloss.Color, x, y int, r rune, color lipgloss.Color) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = r
	colors[y][x] = color
}

// drawLine connects two cells with Bresenham's algorithm, leaving cells
// already drawn by this series untouched
func drawLine(grid [][]rune, colors [][]lipgloss.Color, x0, y0, x1, y1 int, r rune, color lipgloss.Color) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		plot(grid, colors, x0, y0, r, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// renderXAxisLabels places every other label under its point so labels do
// not collide on narrow charts
func (c *ASCIIChart) renderXAxisLabels(width int, toX func(i, n int) int) string {
	line := []rune(strings.Repeat(" ", width+4))
	n := len(c.Labels)
	step := 1
	if n > width/4 {
		step = 2
	}
	for i := 0; i < n; i += step {
		x := toX(i, n)
		for j, r := range c.Labels[i] {
			if x+j < len(line) {
				line[x+j] = r
			}
		}
	}
	return strings.Repeat(" ", yAxisWidth+2) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " ")) + "\n"
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		marker := lipgloss.NewStyle().Foreground(s.Color).Render(string(s.Marker))
		items = append(items, marker+" "+s.Name)
	}
	return tuistyles.HelpDescStyle.Render("Legend: " + strings.Join(items, " • "))
}

// formatChartValue renders a dollar tick, e.g. $32K
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1000000:
		return fmt.Sprintf("$%.1fM", value/1000000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("$%.0fK", value/1000)
	}
	return fmt.Sprintf("$%.0f", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
