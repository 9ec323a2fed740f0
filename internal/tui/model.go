// Package tui is the interactive terminal front end: it loads a shopper
// profile, ranks the catalog and lets the user browse matches.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/catalog"
	"github.com/rgehrsitz/drivefit/internal/config"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/rgehrsitz/drivefit/internal/tui/scenes"
	"github.com/rgehrsitz/drivefit/internal/tui/tuimsg"
)

type globalKeys struct {
	Quit key.Binding
	Help key.Binding
}

func defaultGlobalKeys() globalKeys {
	return globalKeys{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// Model is the root application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	profilePath string
	shopper     *domain.Shopper
	engine      *calculation.Engine
	netPay      domain.NetPay
	matches     []domain.VehicleMatch

	keys          globalKeys
	matchesModel  *scenes.MatchesModel
	detailModel   *scenes.DetailModel
	helpModel     *scenes.HelpModel
	filterSummary string

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates the app for a profile file. The engine ranks the catalog
// unless the profile names its own catalog file.
func NewModel(profilePath string, engine *calculation.Engine) Model {
	keys := defaultGlobalKeys()
	matchesModel := scenes.NewMatchesModel()
	detailModel := scenes.NewDetailModel()

	return Model{
		currentScene:   SceneMatches,
		profilePath:    profilePath,
		engine:         engine,
		keys:           keys,
		matchesModel:   matchesModel,
		detailModel:    detailModel,
		helpModel:      scenes.NewHelpModel(matchesModel.Keys(), detailModel.Keys(), []key.Binding{keys.Help, keys.Quit}),
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Loading profile...",
	}
}

// Init starts loading the profile
func (m Model) Init() tea.Cmd {
	return loadProfileCmd(m.profilePath, m.engine)
}

// loadProfileCmd parses the profile, swaps in its catalog if it names one,
// and ranks every vehicle
func loadProfileCmd(path string, engine *calculation.Engine) tea.Cmd {
	return func() tea.Msg {
		shopper, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		if shopper.CatalogFile != "" {
			cat, err := catalog.LoadFromFile(shopper.CatalogFile)
			if err != nil {
				return ErrorMsg{Err: err}
			}
			custom := calculation.NewEngine(cat)
			custom.GasPrice = engine.GasPrice
			custom.SetLogger(engine.Logger)
			engine = custom
		}
		if engine.Source == nil {
			return ErrorMsg{Err: fmt.Errorf("no vehicle catalog configured")}
		}

		netPay, err := engine.NetPayCalc.Calculate(shopper.Financial.AnnualIncome, shopper.Financial.EmploymentSubsidy)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		matches, err := engine.Match(shopper.Financial, len(engine.Source.All()))
		if err != nil {
			return ErrorMsg{Err: err}
		}

		return ProfileLoadedMsg{Shopper: shopper, Engine: engine, NetPay: netPay, Matches: matches}
	}
}

// projectionCmd finances the vehicle at the shopper's credit tier and
// estimates resale at the end of the lease term
func projectionCmd(engine *calculation.Engine, shopper *domain.Shopper, match domain.VehicleMatch) tea.Cmd {
	return func() tea.Msg {
		v := match.Vehicle
		msg := tuimsg.ProjectionReadyMsg{VehicleID: v.ID}

		apr := calculation.ResolveAPR(shopper.Financial.CreditScore)
		proj, err := engine.Projection(v, apr, shopper.Lifestyle.AnnualMileage())
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Projection = proj

		years := domain.TermYears(shopper.Financial.LeaseTerm)
		resale, err := engine.Resale(v.Price(), years, shopper.Factors)
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Resale = resale
		msg.ResaleYears = years
		return msg
	}
}

// String names a scene for the breadcrumb
func (s Scene) String() string {
	switch s {
	case SceneMatches:
		return "Matches"
	case SceneDetail:
		return "Vehicle"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
