package validator

import (
	"errors"
	"strings"
	"testing"
)

type loginPayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	Code     string `validate:"omitempty,otp"`
}

func newTestValidator(t *testing.T) *V10 {
	t.Helper()

	v, err := NewV10()
	if err != nil {
		t.Fatalf("new v10: %v", err)
	}
	return v
}

func TestValidatePasses(t *testing.T) {

	// Arrange
	v := newTestValidator(t)

	// Act
	err := v.Validate(loginPayload{
		Email:    "jane@example.com",
		Password: "long enough pw",
		Code:     "123456",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		payload   loginPayload
		wantField string
	}{
		{"MissingEmail", loginPayload{Password: "long enough pw"}, "email"},
		{"BadEmail", loginPayload{Email: "nope", Password: "long enough pw"}, "email"},
		{"ShortPassword", loginPayload{Email: "a@b.co", Password: "short"}, "password"},
		{"BadCode", loginPayload{Email: "a@b.co", Password: "long enough pw", Code: "12ab56"}, "code"},
		{"LongCode", loginPayload{Email: "a@b.co", Password: "long enough pw", Code: "1234567"}, "code"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			// Arrange
			v := newTestValidator(t)

			// Act
			err := v.Validate(tc.payload)

			// Assert
			var fields FieldErrors
			if !errors.As(err, &fields) {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if _, ok := fields[tc.wantField]; !ok {
				t.Fatalf("expected message for %q, got %v", tc.wantField, fields)
			}
		})
	}
}

func TestOTPMessage(t *testing.T) {

	// Arrange
	v := newTestValidator(t)

	// Act
	err := v.Validate(loginPayload{Email: "a@b.co", Password: "long enough pw", Code: "12345"})

	// Assert
	var fields FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if !strings.Contains(fields["code"], "6-digit") {
		t.Fatalf("expected translated otp message, got %q", fields["code"])
	}
}

func TestPasswordUpperBound(t *testing.T) {

	// Arrange
	v := newTestValidator(t)

	// Act
	err := v.Validate(loginPayload{
		Email:    "a@b.co",
		Password: strings.Repeat("x", 73),
	})

	// Assert
	var fields FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if _, ok := fields["password"]; !ok {
		t.Fatalf("expected password rejected at 73 chars, got %v", fields)
	}
}
