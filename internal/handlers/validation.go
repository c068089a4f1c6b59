package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/autoledger-in/tallybridge/internal/models"
)

// registerCustomValidations teaches gin's binding layer the domain rules the
// request payloads reference in their binding tags.
func registerCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("direction", validDirection)
}

// validDirection accepts the known voucher directions. A typo here would
// silently flip debit and credit, so it fails the request instead.
func validDirection(fl validator.FieldLevel) bool {
	switch models.Direction(fl.Field().String()) {
	case models.Sale, models.Purchase, models.Payment, models.Receipt, models.Contra:
		return true
	default:
		return false
	}
}
