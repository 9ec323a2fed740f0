package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/config"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"go.uber.org/zap"
)

// DefaultGeminiURL is the Generative Language API root
const DefaultGeminiURL = "https://generativelanguage.googleapis.com"

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

// Gemini writes narratives with Google's generateContent API. Any transport
// failure or unusable reply degrades to the rule-based text.
type Gemini struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	fallback   RuleBased
	logger     *zap.Logger
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// NewGemini creates a client from recommender settings
func NewGemini(rc config.RecommenderConfig, logger *zap.Logger) *Gemini {
	if logger == nil {
		logger = zap.NewNop()
	}
	model := rc.Model
	if model == "" {
		model = config.DefaultGeminiModel
	}
	timeout := rc.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gemini{
		apiKey:     rc.APIKey,
		model:      model,
		baseURL:    DefaultGeminiURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// WithBaseURL points the client at another endpoint
func (g *Gemini) WithBaseURL(url string) *Gemini {
	g.baseURL = strings.TrimRight(url, "/")
	return g
}

// Enabled reports whether an API key is configured
func (g *Gemini) Enabled() bool {
	return g.apiKey != ""
}

// Recommend asks the model for a JSON narrative
func (g *Gemini) Recommend(ctx context.Context, req Request) (Recommendation, error) {
	if !g.Enabled() {
		g.logger.Warn("GEMINI_API_KEY not set, using fallback recommendation", zap.String("op", "recommend.Gemini.Recommend"))
		return g.fallback.Recommend(ctx, req)
	}

	text, err := g.generate(ctx, recommendationPrompt(req))
	if err != nil {
		g.logger.Error("gemini request failed", zap.String("op", "recommend.Gemini.Recommend"), zap.Error(err))
		return g.fallback.Recommend(ctx, req)
	}

	rec, err := parseRecommendation(text)
	if err != nil {
		g.logger.Warn("unusable gemini reply", zap.String("op", "recommend.Gemini.Recommend"), zap.Error(err))
		return g.fallback.Recommend(ctx, req)
	}
	rec.Source = SourceGemini
	return rec, nil
}

// Compare asks the model for a short comparison paragraph
func (g *Gemini) Compare(ctx context.Context, matches []domain.VehicleMatch, profile UserSummary) (Comparison, error) {
	if len(matches) < 2 || !g.Enabled() {
		return ruleComparison(matches), nil
	}

	text, err := g.generate(ctx, comparisonPrompt(matches, profile))
	if err != nil || strings.TrimSpace(text) == "" {
		g.logger.Error("gemini comparison failed", zap.String("op", "recommend.Gemini.Compare"), zap.Error(err))
		return ruleComparison(matches), nil
	}
	return Comparison{Text: strings.TrimSpace(text), Source: SourceGemini}, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(msg))
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// parseRecommendation pulls the first {...} span out of free text
func parseRecommendation(text string) (Recommendation, error) {
	raw := jsonObject.FindString(text)
	if raw == "" {
		return Recommendation{}, errors.New("no JSON object in reply")
	}
	var rec Recommendation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Recommendation{}, fmt.Errorf("invalid JSON in reply: %w", err)
	}
	if rec.Summary == "" {
		return Recommendation{}, errors.New("reply has no summary")
	}
	return rec, nil
}

func recommendationPrompt(req Request) string {
	m := req.Match
	v := m.Vehicle
	p := req.Profile

	var b strings.Builder
	b.WriteString("You are a financial advisor specializing in automotive purchasing decisions. Analyze this vehicle match for a customer and provide personalized insights.\n\n")
	fmt.Fprintf(&b, "Vehicle: %s\n", v.DisplayName())
	fmt.Fprintf(&b, "Price: %s\n", calculation.FormatDollars(v.Price()))
	fmt.Fprintf(&b, "Category: %s\n", v.Category)
	fmt.Fprintf(&b, "Fuel Type: %s\n", v.FuelType)
	fmt.Fprintf(&b, "MPG: %s (Combined: %s)\n", v.MPG, v.MPGCombined.String())
	fmt.Fprintf(&b, "Reliability: %s/5.0\n", v.Reliability.String())
	fmt.Fprintf(&b, "Seating: %d\n\n", v.Seating)

	b.WriteString("Customer Profile:\n")
	fmt.Fprintf(&b, "- Annual Income: %s\n", calculation.FormatDollars(p.AnnualIncome))
	fmt.Fprintf(&b, "- Credit Score: %d\n", p.CreditScore)
	fmt.Fprintf(&b, "- Desired Lease Term: %d months\n", p.LeaseTerm)
	fmt.Fprintf(&b, "- Budget Range: %s - %s\n\n", calculation.FormatDollars(p.BudgetMin), calculation.FormatDollars(p.BudgetMax))

	b.WriteString("Financial Analysis:\n")
	fmt.Fprintf(&b, "- Match Percentage: %d%%\n", m.MatchPercentage)
	fmt.Fprintf(&b, "- Monthly Payment: $%s\n", m.MonthlyPayment.String())
	fmt.Fprintf(&b, "- Salary Fit Score: %d%%\n", m.SalaryFit)
	fmt.Fprintf(&b, "- Affordability Score: %d/100\n", m.AffordabilityScore)
	fmt.Fprintf(&b, "- Total Monthly Cost: $%s\n\n", m.TotalMonthlyCost.Total.String())

	b.WriteString(`Please provide:
1. A brief summary (2-3 sentences) explaining why this vehicle is a good match
2. Three key points about this recommendation (focus on financial fit, reliability, and value)
3. A financial insight (1 sentence about affordability and budget fit)
4. A reliability insight (1 sentence about the vehicle's dependability and Toyota's reputation)
5. A value insight (1 sentence about long-term cost and resale value)

Format your response as JSON with this structure:
{
  "summary": "...",
  "keyPoints": ["point1", "point2", "point3"],
  "financialInsight": "...",
  "reliabilityInsight": "...",
  "valueInsight": "..."
}`)
	return b.String()
}

func comparisonPrompt(matches []domain.VehicleMatch, p UserSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compare these %d Toyota vehicles for a customer and provide a brief recommendation (2-3 sentences) on which one offers the best value for their specific situation.\n\n", len(matches))
	fmt.Fprintf(&b, "Customer: %s annual income, %d credit score\n\nVehicles:\n", calculation.FormatDollars(p.AnnualIncome), p.CreditScore)
	for i, m := range matches {
		fmt.Fprintf(&b, "%d. %s %s - %s, %d%% match, $%s/mo\n", i+1, m.Vehicle.Model, m.Vehicle.Trim,
			calculation.FormatDollars(m.Vehicle.Price()), m.MatchPercentage, m.MonthlyPayment.String())
	}
	b.WriteString("\nProvide a concise comparison highlighting the best choice and why.")
	return b.String()
}
