package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	var fe FieldErrors
	require.True(t, errors.As(err, &fe), "want FieldErrors, got %v", err)
	return fe
}

func TestRegister_Valid(t *testing.T) {
	require.NoError(t, Validate(Register{Username: "jane_doe", Email: "jane@example.com", Password: "Secret123"}))
}

func TestRegister_Messages(t *testing.T) {
	tests := []struct {
		name  string
		form  Register
		field string
		want  string
	}{
		{"username required", Register{Email: "a@b.io", Password: "Secret123"}, "username", "Username is required"},
		{"username short", Register{Username: "jd", Email: "a@b.io", Password: "Secret123"}, "username", "Username must be at least 3 characters long"},
		{"username chars", Register{Username: "jane doe", Email: "a@b.io", Password: "Secret123"}, "username", "Username can only contain letters, numbers, and underscores"},
		{"email format", Register{Username: "jane", Email: "jane@nowhere", Password: "Secret123"}, "email", "Please enter a valid email address"},
		{"password short", Register{Username: "jane", Email: "a@b.io", Password: "Se1"}, "password", "Password must be at least 8 characters long"},
		{"password lower", Register{Username: "jane", Email: "a@b.io", Password: "SECRET123"}, "password", "Password must contain at least one lowercase letter"},
		{"password upper", Register{Username: "jane", Email: "a@b.io", Password: "secret123"}, "password", "Password must contain at least one uppercase letter"},
		{"password digit", Register{Username: "jane", Email: "a@b.io", Password: "SecretPass"}, "password", "Password must contain at least one number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := fieldErrors(t, Validate(tt.form))
			assert.Len(t, fe, 1)
			assert.Equal(t, tt.want, fe[tt.field])
		})
	}
}

func TestLogin_RequiredOnly(t *testing.T) {
	fe := fieldErrors(t, Validate(&Login{}))
	assert.Equal(t, FieldErrors{"username": "Username is required", "password": "Password is required"}, fe)
	assert.Equal(t, "Password is required; Username is required", fe.Error())

	require.NoError(t, Validate(&Login{Username: "x", Password: "y"}))
}

func TestResetPassword(t *testing.T) {
	fe := fieldErrors(t, Validate(ResetPassword{Password: "weak"}))
	assert.Equal(t, "Reset token is required", fe["token"])
	assert.Equal(t, "Password must be at least 8 characters long", fe["password"])
}

func TestForgotPassword(t *testing.T) {
	fe := fieldErrors(t, Validate(ForgotPassword{}))
	assert.Equal(t, "Email is required", fe["email"])
}
