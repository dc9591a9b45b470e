package tests

import (
	"net/http"
	"os"
	"testing"
)

// The seeded account the suite logs in with. The verification code lands in
// the account's inbox, so the code-bearing paths are covered by unit tests
// rather than here.
func seededUser(t *testing.T) (email, password string) {
	t.Helper()

	email = os.Getenv("OTPGATE_SEED_EMAIL")
	password = os.Getenv("OTPGATE_SEED_PASSWORD")
	if email == "" || password == "" {
		t.Skip("set OTPGATE_SEED_EMAIL and OTPGATE_SEED_PASSWORD to run seeded-account tests")
	}

	return email, password
}

type loginData struct {
	Authenticated     bool   `json:"authenticated"`
	ChallengeRequired bool   `json:"challenge_required"`
	AccessToken       string `json:"access_token"`
}

func login(t *testing.T, email, password, code string) (int, []byte) {
	t.Helper()

	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	if code != "" {
		payload["code"] = code
	}

	return doJSON(t, http.MethodPost, "/api/v1/auth/login", payload, "")
}
