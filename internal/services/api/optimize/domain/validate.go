package domain

import (
	"github.com/go-playground/validator/v10"

	"lineload/internal/core/formula"
	"lineload/internal/platform/net/http/bind"
)

// hourformula rejects work-pattern formulas that do not compile, so a
// bad expression fails request validation instead of surfacing later
// from the capacity deriver
func init() {
	_ = bind.RegisterValidation("hourformula", func(fl validator.FieldLevel) bool {
		_, err := formula.Compile(fl.Field().String())
		return err == nil
	})
}
