package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry maps transform names to factories so transforms can be
// built from command-line strings.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	// Financial
	registry.Register("adjust_income", createAdjustIncome)
	registry.Register("set_income", createSetIncome)
	registry.Register("set_credit_score", createSetCreditScore)
	registry.Register("adjust_credit_score", createAdjustCreditScore)
	registry.Register("set_term", createSetLeaseTerm)
	registry.Register("set_budget", createSetBudget)
	registry.Register("set_subsidy", createSetSubsidy)

	// Lifestyle
	registry.Register("set_mileage", createSetAnnualMileage)
	registry.Register("set_factor", createSetFactor)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_budget:min=20000,max=35000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createAdjustIncome(params map[string]string) (ProfileTransform, error) {
	amount, err := decimalParam("adjust_income", params, "amount")
	if err != nil {
		return nil, err
	}
	return &AdjustIncome{Amount: amount}, nil
}

func createSetIncome(params map[string]string) (ProfileTransform, error) {
	income, err := decimalParam("set_income", params, "income")
	if err != nil {
		return nil, err
	}
	return &SetIncome{Income: income}, nil
}

func createSetCreditScore(params map[string]string) (ProfileTransform, error) {
	score, err := intParam("set_credit_score", params, "score")
	if err != nil {
		return nil, err
	}
	return &SetCreditScore{Score: score}, nil
}

func createAdjustCreditScore(params map[string]string) (ProfileTransform, error) {
	points, err := intParam("adjust_credit_score", params, "points")
	if err != nil {
		return nil, err
	}
	return &AdjustCreditScore{Points: points}, nil
}

func createSetLeaseTerm(params map[string]string) (ProfileTransform, error) {
	months, err := intParam("set_term", params, "months")
	if err != nil {
		return nil, err
	}
	return &SetLeaseTerm{Months: months}, nil
}

func createSetBudget(params map[string]string) (ProfileTransform, error) {
	minBudget, err := decimalParam("set_budget", params, "min")
	if err != nil {
		return nil, err
	}
	maxBudget, err := decimalParam("set_budget", params, "max")
	if err != nil {
		return nil, err
	}
	return &SetBudget{Min: minBudget, Max: maxBudget}, nil
}

func createSetSubsidy(params map[string]string) (ProfileTransform, error) {
	amount, err := decimalParam("set_subsidy", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetSubsidy{Amount: amount}, nil
}

func createSetAnnualMileage(params map[string]string) (ProfileTransform, error) {
	miles, err := intParam("set_mileage", params, "miles")
	if err != nil {
		return nil, err
	}
	return &SetAnnualMileage{Miles: miles}, nil
}

func createSetFactor(params map[string]string) (ProfileTransform, error) {
	factor, ok := params["factor"]
	if !ok {
		return nil, fmt.Errorf("set_factor requires 'factor' parameter")
	}

	enabled := true
	if enabledStr, ok := params["enabled"]; ok {
		v, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid enabled value: %w", err)
		}
		enabled = v
	}

	return &SetFactor{Factor: factor, Enabled: enabled}, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
