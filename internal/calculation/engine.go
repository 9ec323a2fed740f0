package calculation

import (
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/shopspring/decimal"
)

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// VehicleSource is the read-only catalog the matcher ranks
type VehicleSource interface {
	All() []domain.VehicleData
	ByID(id string) (domain.VehicleData, bool)
}

// Engine orchestrates the affordability, matching and ownership-cost calculations.
// It holds no per-request state and is safe for concurrent use once configured.
type Engine struct {
	NetPayCalc *NetPayCalculator
	Source     VehicleSource
	GasPrice   decimal.Decimal
	Logger     Logger
}

// NewEngine creates an engine over the given catalog with 2024 tax tables
func NewEngine(source VehicleSource) *Engine {
	return &Engine{
		NetPayCalc: NewNetPayCalculator(),
		Source:     source,
		GasPrice:   DefaultGasPrice,
		Logger:     NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Vehicle looks up a catalog record by id
func (e *Engine) Vehicle(id string) (domain.VehicleData, error) {
	if e.Source == nil {
		return domain.VehicleData{}, domain.ErrVehicleNotFound
	}
	v, ok := e.Source.ByID(id)
	if !ok {
		return domain.VehicleData{}, domain.ErrVehicleNotFound
	}
	return v, nil
}

func (e *Engine) gasPrice() decimal.Decimal {
	if e.GasPrice.IsPositive() {
		return e.GasPrice
	}
	return DefaultGasPrice
}
