package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// maxTickStep keeps at least one tick per crew payday
const maxTickStep = 24 * time.Hour

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the shipwright rules registered
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("urlpath", func(fl validator.FieldLevel) bool {
		return strings.HasPrefix(fl.Field().String(), "/")
	})
	v.RegisterStructValidation(validateSimulation, SimulationConfig{})
	v.RegisterStructValidation(validateDatabase, DatabaseConfig{})

	return &Validator{
		validate: v,
	}
}

func validateSimulation(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(SimulationConfig)
	if cfg.TickStep <= 0 || cfg.TickStep > maxTickStep {
		sl.ReportError(cfg.TickStep, "TickStep", "TickStep", "tickstep", maxTickStep.String())
	}
}

func validateDatabase(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(DatabaseConfig)
	if cfg.Type == "sqlite" && cfg.BusyTimeout < 0 {
		sl.ReportError(cfg.BusyTimeout, "BusyTimeout", "BusyTimeout", "min", "0")
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Namespace(),
				describeTag(e),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

func describeTag(e validator.FieldError) string {
	switch e.Tag() {
	case "urlpath":
		return "must start with /"
	case "tickstep":
		return "must be positive and at most " + e.Param()
	default:
		if e.Param() != "" {
			return e.Tag() + "=" + e.Param()
		}
		return e.Tag()
	}
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
