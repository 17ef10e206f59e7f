package dynamo

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config controls a rigorous Taylor solver.
type Config struct {
	// Order is the Taylor order p.
	Order int `validate:"gte=1,lte=64"`
	// Step is the fixed step, or the initial step when Adaptive is set.
	// Zero in adaptive mode selects the step from the Lipschitz bound.
	Step     float64 `validate:"gte=0"`
	Adaptive bool
	AbsTol   float64 `validate:"gt=0"`
	RelTol   float64 `validate:"gte=0"`
	// Safety scales the predicted step.
	Safety float64 `validate:"gt=0,lte=1"`
	// MaxGrowth bounds the ratio between consecutive steps.
	MaxGrowth float64 `validate:"gte=1"`
	// MinShrink is the factor applied to a rejected step.
	MinShrink float64 `validate:"gt=0,lt=1"`
	MinStep   float64 `validate:"gt=0"`
	MaxStep   float64 `validate:"gtfield=MinStep"`
	// MaxRejections bounds the retries of one step.
	MaxRejections int `validate:"gte=0"`
	// LastTerms is the number of highest coefficients used to predict a step.
	LastTerms int `validate:"gte=1,ltefield=Order"`
}

// DefaultConfig returns the settings of a 20th order adaptive solver.
func DefaultConfig() Config {
	return Config{
		Order:         20,
		Step:          0,
		Adaptive:      true,
		AbsTol:        1e-18,
		RelTol:        1e-18,
		Safety:        0.9,
		MaxGrowth:     2,
		MinShrink:     0.5,
		MinStep:       0x1p-20,
		MaxStep:       1,
		MaxRejections: 30,
		LastTerms:     2,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	if !c.Adaptive && c.Step <= 0 {
		return &ConfigError{Field: "Step", Value: c.Step, Reason: "fixed-step mode needs a positive step"}
	}
	return ValidateStruct(c)
}

// ValidateStruct runs the validator tags of v and converts the first
// failure to a *ConfigError.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ConfigError{Field: fe.Field(), Value: fe.Value(), Reason: reason(fe)}
	}
	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "gtfield":
		return "must be greater than " + fe.Param()
	case "ltefield":
		return "must not exceed " + fe.Param()
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "failed " + fe.Tag()
}
