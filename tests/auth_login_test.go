package tests

import (
	"net/http"
	"testing"
)

func TestLogin(t *testing.T) {

	t.Run("FirstStepIssuesChallenge", func(t *testing.T) {

		// Arrange
		email, password := seededUser(t)

		// Act
		status, body := login(t, email, password, "")

		// Assert
		if status != http.StatusOK {
			errEnv := decodeError(t, body)
			t.Fatalf("login failed: status=%d message=%q", status, errEnv.Message)
		}
		var data loginData
		decodeSuccess(t, body, &data)
		if !data.ChallengeRequired {
			t.Fatal("expected challenge_required in first-step response")
		}
		if data.AccessToken != "" {
			t.Fatal("expected no token before verification")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {

		// Arrange
		email, _ := seededUser(t)

		// Act
		status, body := login(t, email, "definitely-wrong-1", "")

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
		errEnv := decodeError(t, body)
		if errEnv.Reason != "INVALID_CREDENTIALS" {
			t.Fatalf("expected INVALID_CREDENTIALS, got %q", errEnv.Reason)
		}
	})

	t.Run("UnknownAccount", func(t *testing.T) {

		// Act
		status, body := login(t, "nobody@example.com", "whatever-pass-1", "")

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
		errEnv := decodeError(t, body)
		if errEnv.Reason != "INVALID_CREDENTIALS" {
			t.Fatalf("expected INVALID_CREDENTIALS, got %q", errEnv.Reason)
		}
	})

	t.Run("WrongCode", func(t *testing.T) {

		// Arrange
		email, password := seededUser(t)
		if status, _ := login(t, email, password, ""); status != http.StatusOK {
			t.Fatalf("first step failed: %d", status)
		}

		// Act
		status, body := login(t, email, password, "000000")

		// Assert
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
		status, body := login(t, "not-an-email", "short", "")

		// Assert
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", status)
		}
		errEnv := decodeError(t, body)
		if len(errEnv.Error) == 0 {
			t.Fatal("expected field errors in response")
		}
		if errEnv.Reason != "MISSING_CREDENTIALS" {
			t.Fatalf("expected reason MISSING_CREDENTIALS, got %q", errEnv.Reason)
		}
	})
}
