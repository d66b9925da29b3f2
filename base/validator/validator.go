package validator

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	goens "github.com/wealdtech/go-ens/v3"
)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	checksum := common.HexToAddress(address).Hex()
	return strings.EqualFold(checksum, address)
}

// IsValidName reports whether the name survives ENS normalization
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	_, err := goens.Normalize(name)
	return err == nil
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	v.RegisterValidation("ensname", func(fl validator.FieldLevel) bool {
		return IsValidName(fl.Field().String())
	})
	v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
