package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/firmanbudi/otpgate/internal/pkg/strcase"
)

var (
	// NIST 800-63B: accept any printable password between 8 and 72 bytes.
	rePassword = regexp.MustCompile(`^.{8,72}$`)

	// One-time codes are exactly six ASCII digits.
	reOTP = regexp.MustCompile(`^\d{6}$`)
)

// ErrTranslatorNotFound indicates the English translator failed to load.
var ErrTranslatorNotFound = errors.New("validator: english translator not found")

// Validator validates structs tagged with validate rules.
type Validator interface {
	Validate(data any) error
}

// V10 implements Validator on top of go-playground/validator.
type V10 struct {
	validate   *validator.Validate
	translator ut.Translator
}

// FieldErrors maps snake_case field names to translated messages.
type FieldErrors map[string]string

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(fe)
	if err != nil {
		return fmt.Sprintf("validation error (marshal: %v)", err)
	}
	return string(b)
}

// Values returns the underlying field map.
func (fe FieldErrors) Values() map[string]string {
	return fe
}

// NewV10 builds a validator with English translations and the custom rules
// used by this service.
func NewV10() (*V10, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	trans, ok := ut.New(enLang, enLang).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := registerCustomRules(validate, trans); err != nil {
		return nil, err
	}

	return &V10{validate: validate, translator: trans}, nil
}

// Validate validates data and returns FieldErrors on rule violations.
func (v *V10) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return err
	}

	out := make(FieldErrors, len(violations))
	for _, fe := range violations {
		out[strcase.Snake(fe.Field())] = fe.Translate(v.translator)
	}

	return out
}

func registerCustomRules(validate *validator.Validate, trans ut.Translator) error {
	rules := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{
			tag: "password",
			fn: func(fl validator.FieldLevel) bool {
				s, ok := fl.Field().Interface().(string)
				return ok && rePassword.MatchString(s)
			},
			message: "{0} must be 8-72 characters",
		},
		{
			tag: "otp",
			fn: func(fl validator.FieldLevel) bool {
				s, ok := fl.Field().Interface().(string)
				return ok && reOTP.MatchString(s)
			},
			message: "{0} must be a 6-digit code",
		},
	}

	for _, rule := range rules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return err
		}

		msg := rule.message
		err := validate.RegisterTranslation(rule.tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(rule.tag, msg, false)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, err := ut.T(fe.Tag(), fe.Field())
				if err != nil {
					return fe.Field() + " is invalid"
				}
				return t
			},
		)
		if err != nil {
			return err
		}
	}

	return nil
}
