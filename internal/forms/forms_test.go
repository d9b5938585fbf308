// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/authshell/internal/i18n"
)

func TestSignIn(t *testing.T) {
	tests := []struct {
		name string
		form SignIn
		want FieldErrors
	}{
		{"valid", SignIn{Email: "a@b.com", Password: "secret"}, nil},
		{"empty", SignIn{}, FieldErrors{FieldEmail: KeyEmailInvalid, FieldPassword: KeyPasswordMin}},
		{"bad email", SignIn{Email: "ab.com", Password: "secret"}, FieldErrors{FieldEmail: KeyEmailInvalid}},
		{"email with space", SignIn{Email: "a @b.com", Password: "secret"}, FieldErrors{FieldEmail: KeyEmailInvalid}},
		{"short password", SignIn{Email: "a@b", Password: "12345"}, FieldErrors{FieldPassword: KeyPasswordMin}},
		{"multibyte password", SignIn{Email: "a@b", Password: "şifreş"}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Check(tc.form))
		})
	}
}

func TestSignUp(t *testing.T) {
	valid := SignUp{Name: "Al", Email: "a@b.com", Password: "secret", ConfirmPassword: "secret"}

	tests := []struct {
		name   string
		mutate func(*SignUp)
		want   FieldErrors
	}{
		{"valid", func(*SignUp) {}, nil},
		{"short name", func(f *SignUp) { f.Name = "A" }, FieldErrors{FieldName: KeyNameMin}},
		{"empty name", func(f *SignUp) { f.Name = "" }, FieldErrors{FieldName: KeyNameMin}},
		{"mismatch", func(f *SignUp) { f.ConfirmPassword = "secreT" }, FieldErrors{FieldConfirmPassword: KeyPasswordMismatch}},
		{"empty confirm", func(f *SignUp) { f.ConfirmPassword = "" }, FieldErrors{FieldConfirmPassword: KeyPasswordMismatch}},
		{"short password still must match", func(f *SignUp) { f.Password = "abc"; f.ConfirmPassword = "abc" },
			FieldErrors{FieldPassword: KeyPasswordMin}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := valid
			tc.mutate(&form)
			assert.Equal(t, tc.want, Check(form))
		})
	}
}

func TestForgotPassword(t *testing.T) {
	assert.Nil(t, Check(ForgotPassword{Email: "x@y"}))
	assert.Equal(t, FieldErrors{FieldEmail: KeyEmailInvalid}, Check(ForgotPassword{Email: "nope"}))
}

func TestLocalize(t *testing.T) {
	errs := Check(SignIn{})

	tr := errs.Localize(i18n.MustNew("tr"))
	assert.Equal(t, "Geçersiz email", tr[FieldEmail])
	assert.Equal(t, "Şifre en az 6 karakter olmalıdır", tr[FieldPassword])

	en := errs.Localize(i18n.MustNew("en"))
	assert.Equal(t, "Invalid email", en[FieldEmail])
}
