// Package forms validates CLI form input before anything is sent to the
// backend. The backend repeats these checks; these only save a round trip.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

type Register struct {
	Username string `json:"username" validate:"required,min=3,username"`
	Email    string `json:"email" validate:"required,mailbox"`
	Password string `json:"password" validate:"required,min=8,haslower,hasupper,hasdigit"`
}

type Login struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPassword struct {
	Email string `json:"email" validate:"required"`
}

type ResetPassword struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,haslower,hasupper,hasdigit"`
}

// FieldErrors maps a form field to the first problem found with it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fe[k])
	}
	return strings.Join(parts, "; ")
}

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	mailboxRe  = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	must := func(tag string, fn func(string) bool) {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	must("username", usernameRe.MatchString)
	must("mailbox", mailboxRe.MatchString)
	must("haslower", containsFunc(unicode.IsLower))
	must("hasupper", containsFunc(unicode.IsUpper))
	must("hasdigit", containsFunc(unicode.IsDigit))
	return v
}

func containsFunc(pred func(rune) bool) func(string) bool {
	return func(s string) bool { return strings.IndexFunc(s, pred) >= 0 }
}

var labels = map[string]string{
	"username": "Username",
	"email":    "Email",
	"password": "Password",
	"token":    "Reset token",
}

func message(e validator.FieldError) string {
	label := labels[e.Field()]
	if label == "" {
		label = e.Field()
	}
	switch e.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, e.Param())
	case "username":
		return label + " can only contain letters, numbers, and underscores"
	case "mailbox":
		return "Please enter a valid email address"
	case "haslower":
		return label + " must contain at least one lowercase letter"
	case "hasupper":
		return label + " must contain at least one uppercase letter"
	case "hasdigit":
		return label + " must contain at least one number"
	}
	return fmt.Sprintf("%s is invalid", label)
}

// Validate checks a form struct (pointer or value). It returns nil or
// FieldErrors.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	fe := make(FieldErrors, len(ves))
	for _, e := range ves {
		if _, seen := fe[e.Field()]; !seen {
			fe[e.Field()] = message(e)
		}
	}
	return fe
}
