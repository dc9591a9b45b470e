package tests

import (
	"net/http"
	"testing"
)

func TestVerifyCode(t *testing.T) {

	t.Run("WrongCode", func(t *testing.T) {

		// Arrange
		email, password := seededUser(t)
		if status, _ := login(t, email, password, ""); status != http.StatusOK {
			t.Fatalf("issue challenge failed: %d", status)
		}

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/v1/auth/verify-code", map[string]string{
			"email": email,
			"code":  "000000",
		}, "")

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
		errEnv := decodeError(t, body)
		if errEnv.Reason != "INVALID_2FA_CODE" {
			t.Fatalf("expected INVALID_2FA_CODE, got %q", errEnv.Reason)
		}
	})

	t.Run("UnknownAccount", func(t *testing.T) {

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/v1/auth/verify-code", map[string]string{
			"email": "nobody@example.com",
			"code":  "123456",
		}, "")

		// Assert: unknown accounts look exactly like a wrong code.
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
		errEnv := decodeError(t, body)
		if errEnv.Reason != "INVALID_2FA_CODE" {
			t.Fatalf("expected INVALID_2FA_CODE, got %q", errEnv.Reason)
		}
	})

	t.Run("Validation", func(t *testing.T) {

		// Act
		status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/verify-code", map[string]string{
			"email": "a@b.co",
			"code":  "12",
		}, "")

		// Assert
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", status)
		}
	})
}

func TestMe(t *testing.T) {

	t.Run("WithoutToken", func(t *testing.T) {

		// Act
		status, _ := doJSON(t, http.MethodGet, "/api/v1/auth/me", nil, "")

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {

		// Act
		status, _ := doJSON(t, http.MethodGet, "/api/v1/auth/me", nil, "not-a-jwt")

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
	})
}
