// Package validator adds the cricket request tags to gin's validator.
package validator

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/DhavalSuthar-24/crease/internal/models"
)

var (
	once   sync.Once
	regErr error
)

// RegisterBindings registers the cricket tags on gin's binding validator.
// Repeated calls are no-ops.
func RegisterBindings() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			regErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		regErr = Register(v)
	})
	return regErr
}

// Register adds the wicket_type and extra_type tags to v.
func Register(v *validator.Validate) error {
	err := v.RegisterValidation("wicket_type", func(fl validator.FieldLevel) bool {
		return models.WicketType(fl.Field().String()).Valid()
	})
	if err != nil {
		return err
	}
	return v.RegisterValidation("extra_type", func(fl validator.FieldLevel) bool {
		return models.ExtraType(fl.Field().String()).Valid()
	})
}
