package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/schoolerp/ledger_backend/internal/utils/dates"
)

// isodate rejects date strings that are not strict YYYY-MM-DD, so handlers
// never see a loosely parsed date.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := dates.ParseISO(fl.Field().String())
			return err == nil
		})
	}
}
