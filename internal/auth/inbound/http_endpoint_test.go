package inbound

import (
	"errors"
	"net/http"
	"testing"

	"github.com/firmanbudi/otpgate/internal/auth/entity"
	"github.com/firmanbudi/otpgate/internal/pkg/goerror"
)

func TestOutcomeError(t *testing.T) {
	tests := []struct {
		name       string
		outcome    entity.LoginOutcome
		wantReason string
	}{
		{"InvalidCredentials", entity.OutcomeInvalidCredentials, entity.ReasonInvalidCredentials},
		{"InvalidCode", entity.OutcomeInvalidCode, entity.ReasonInvalidCode},
		{"CodeExpired", entity.OutcomeCodeExpired, entity.ReasonCodeExpired},
		{"UnknownFallsBackToCredentials", entity.OutcomeUnknown, entity.ReasonInvalidCredentials},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			// Act
			err := outcomeError(tc.outcome)

			// Assert
			var gerr *goerror.Error
			if !errors.As(err, &gerr) {
				t.Fatalf("expected goerror, got %v", err)
			}
			if gerr.StatusCode() != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", gerr.StatusCode())
			}
			if gerr.Reason() != tc.wantReason {
				t.Fatalf("expected reason %q, got %q", tc.wantReason, gerr.Reason())
			}
		})
	}
}
