// Package validation holds the field rules shared by ticket submission,
// chat and registration. Every rule is a pure function returning nil or an
// *errors.AppError of type validation_error naming the field and a short
// reason code.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

const (
	DescriptionMinLength = 10
	DescriptionMaxLength = 1000
	MessageMaxLength     = 5000
	NameMinLength        = 2
	NameMaxLength        = 100
	PasswordMinLength    = 6
)

// Reason codes carried in AppError.Reason.
const (
	ReasonRequired      = "required"
	ReasonTooShort      = "too_short"
	ReasonTooLong       = "too_long"
	ReasonInvalidFormat = "invalid_format"
	ReasonInvalidValue  = "invalid_value"
	ReasonMismatch      = "mismatch"
)

var (
	discordIDPattern = regexp.MustCompile(`^\d{17,19}$`)
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister("discordid", func(fl validator.FieldLevel) bool {
		return discordIDPattern.MatchString(fl.Field().String())
	})
	mustRegister("reason", func(fl validator.FieldLevel) bool {
		return vo.Reason(fl.Field().String()).IsValid()
	})
	mustRegister("mailbox", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// NormalizeText trims surrounding whitespace and composes the text to NFC so
// that "é" typed as e + combining accent counts as one character.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// CharCount counts user-perceived code points, not bytes.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}

// ValidateDescription requires 10..1000 characters after normalisation.
func ValidateDescription(text string) error {
	text = NormalizeText(text)
	switch n := CharCount(text); {
	case n == 0:
		return errors.NewFieldValidationError("description", ReasonRequired, "description is required")
	case n < DescriptionMinLength:
		return errors.NewFieldValidationError("description", ReasonTooShort,
			fmt.Sprintf("description must have at least %d characters", DescriptionMinLength))
	case n > DescriptionMaxLength:
		return errors.NewFieldValidationError("description", ReasonTooLong,
			fmt.Sprintf("description must have at most %d characters", DescriptionMaxLength))
	}
	return nil
}

// ValidateDiscordID requires a 17 to 19 digit Discord snowflake.
func ValidateDiscordID(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.NewFieldValidationError("discordId", ReasonRequired, "discord ID is required")
	}
	if !discordIDPattern.MatchString(text) {
		return errors.NewFieldValidationError("discordId", ReasonInvalidFormat, "discord ID must contain 17-19 digits")
	}
	return nil
}

// ValidateReason requires one of the fixed reason keys.
func ValidateReason(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.NewFieldValidationError("reason", ReasonRequired, "select a reason for the ticket")
	}
	if !vo.Reason(key).IsValid() {
		return errors.NewFieldValidationError("reason", ReasonInvalidValue, fmt.Sprintf("unknown reason %q", key))
	}
	return nil
}

// ValidateEmail applies the loose local@domain.tld shape check.
func ValidateEmail(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.NewFieldValidationError("email", ReasonRequired, "email is required")
	}
	if !emailPattern.MatchString(text) {
		return errors.NewFieldValidationError("email", ReasonInvalidFormat, "email is invalid")
	}
	return nil
}

// ValidateName requires a display name of 2..100 characters.
func ValidateName(name string) error {
	switch n := CharCount(NormalizeText(name)); {
	case n == 0:
		return errors.NewFieldValidationError("name", ReasonRequired, "name is required")
	case n < NameMinLength:
		return errors.NewFieldValidationError("name", ReasonTooShort,
			fmt.Sprintf("name must have at least %d characters", NameMinLength))
	case n > NameMaxLength:
		return errors.NewFieldValidationError("name", ReasonTooLong,
			fmt.Sprintf("name must have at most %d characters", NameMaxLength))
	}
	return nil
}

// ValidatePassword checks length and confirmation equality.
func ValidatePassword(password, confirmation string) error {
	if password == "" {
		return errors.NewFieldValidationError("password", ReasonRequired, "password is required")
	}
	if CharCount(password) < PasswordMinLength {
		return errors.NewFieldValidationError("password", ReasonTooShort,
			fmt.Sprintf("password must have at least %d characters", PasswordMinLength))
	}
	if password != confirmation {
		return errors.NewFieldValidationError("confirmPassword", ReasonMismatch, "passwords do not match")
	}
	return nil
}

// ValidateMessage requires a non-blank chat message.
func ValidateMessage(text string) error {
	switch n := CharCount(NormalizeText(text)); {
	case n == 0:
		return errors.NewFieldValidationError("message", ReasonRequired, "message cannot be empty")
	case n > MessageMaxLength:
		return errors.NewFieldValidationError("message", ReasonTooLong,
			fmt.Sprintf("message must have at most %d characters", MessageMaxLength))
	}
	return nil
}

// ValidateStruct runs the validate tags of s and reports the first failing
// field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return errors.NewValidationError("validation failed", err.Error())
	}

	fe := validationErrors[0]
	return errors.NewFieldValidationError(fe.Field(), reasonForTag(fe.Tag()), fieldErrorMessage(fe))
}

func reasonForTag(tag string) string {
	switch tag {
	case "required":
		return ReasonRequired
	case "min":
		return ReasonTooShort
	case "max":
		return ReasonTooLong
	case "eqfield":
		return ReasonMismatch
	case "reason", "oneof":
		return ReasonInvalidValue
	default:
		return ReasonInvalidFormat
	}
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", field, fe.Param())
	case "mailbox", "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "discordid":
		return fmt.Sprintf("%s must contain 17-19 digits", field)
	case "reason":
		return fmt.Sprintf("%s is not a known reason", field)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}
