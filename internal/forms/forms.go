// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package forms holds the field rules of the sign-in, sign-up and
// forgot-password forms.
//
// Rule failures carry resource string keys rather than text, so the same
// rules serve every locale. Field names are the json tags.
package forms

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Resource string keys of rule failures.
const (
	KeyEmailInvalid     = "validation.email_invalid"
	KeyNameMin          = "validation.name_min"
	KeyPasswordMin      = "validation.password_min"
	KeyPasswordMismatch = "validation.password_mismatch"
)

// Field names, matching the json tags.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
)

const (
	// MinNameLength is counted in characters.
	MinNameLength = 2
	// MinPasswordLength is counted in characters.
	MinPasswordLength = 6
)

// emailPattern accepts anything shaped like local@domain without whitespace.
var emailPattern = regexp.MustCompile(`^\S+@\S+$`)

// emailRules fail with the same key whether the value is empty or malformed.
func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(KeyEmailInvalid),
		validation.Match(emailPattern).Error(KeyEmailInvalid),
	}
}

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(KeyPasswordMin),
		validation.RuneLength(MinPasswordLength, 0).Error(KeyPasswordMin),
	}
}

// equals fails with KeyPasswordMismatch unless the value is want.
func equals(want string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != want {
			return errors.New(KeyPasswordMismatch)
		}
		return nil
	}
}

// =============================================================================
// FORMS
// =============================================================================

// SignIn is the sign-in form.
type SignIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements validation.Validatable.
func (f SignIn) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, emailRules()...),
		validation.Field(&f.Password, passwordRules()...),
	)
}

// SignUp is the registration form. Name is collected but the backend only
// receives email and password.
type SignUp struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate implements validation.Validatable.
func (f SignUp) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required.Error(KeyNameMin),
			validation.RuneLength(MinNameLength, 0).Error(KeyNameMin),
		),
		validation.Field(&f.Email, emailRules()...),
		validation.Field(&f.Password, passwordRules()...),
		validation.Field(&f.ConfirmPassword, validation.By(equals(f.Password))),
	)
}

// ForgotPassword is the password reset request form.
type ForgotPassword struct {
	Email string `json:"email"`
}

// Validate implements validation.Validatable.
func (f ForgotPassword) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, emailRules()...),
	)
}

// =============================================================================
// ERRORS
// =============================================================================

// Translator resolves resource string keys.
type Translator interface {
	T(key string) string
}

// FieldErrors maps a field name to the resource key of its first failure.
type FieldErrors map[string]string

// Check validates v and returns its field errors, or nil when it is valid.
// Errors that are not per-field are reported under the empty field name.
func Check(v validation.Validatable) FieldErrors {
	err := v.Validate()
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for field, ferr := range verrs {
		if ferr != nil {
			out[field] = ferr.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Localize returns the errors as display text.
func (e FieldErrors) Localize(t Translator) map[string]string {
	out := make(map[string]string, len(e))
	for field, key := range e {
		out[field] = t.T(key)
	}
	return out
}
