package domain

import "errors"

// Validation errors. Callers wrap these with context and test with errors.Is.
var (
	ErrInvalidIncome       = errors.New("annual income must be positive")
	ErrInvalidSubsidy      = errors.New("employment subsidy must not be negative")
	ErrInvalidCreditScore  = errors.New("credit score out of range")
	ErrInvalidBudget       = errors.New("invalid budget range")
	ErrInvalidTerm         = errors.New("term out of range")
	ErrInvalidPrice        = errors.New("vehicle price must be positive")
	ErrInvalidDownPayment  = errors.New("down payment must not be negative")
	ErrInvalidAPR          = errors.New("apr must not be negative")
	ErrInvalidMPG          = errors.New("combined mpg must be positive")
	ErrInvalidReliability  = errors.New("reliability must be between 1 and 5")
	ErrInvalidYears        = errors.New("years must be positive")
	ErrInvalidMileage      = errors.New("annual mileage must be positive")
	ErrInvalidVehicle      = errors.New("invalid vehicle record")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrInsufficientVehicle = errors.New("at least 2 vehicles required for comparison")
)

// IsValidation reports whether err stems from rejected caller input
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidIncome, ErrInvalidSubsidy, ErrInvalidCreditScore, ErrInvalidBudget,
		ErrInvalidTerm, ErrInvalidPrice, ErrInvalidDownPayment, ErrInvalidAPR,
		ErrInvalidMPG, ErrInvalidReliability, ErrInvalidYears, ErrInvalidMileage,
		ErrInvalidVehicle, ErrInsufficientVehicle,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
