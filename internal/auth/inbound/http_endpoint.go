package inbound

import (
	"strconv"

	"github.com/firmanbudi/otpgate/internal/auth/entity"
	"github.com/firmanbudi/otpgate/internal/auth/usecase"
	"github.com/firmanbudi/otpgate/internal/pkg/goerror"
	"github.com/firmanbudi/otpgate/internal/pkg/jwt"
	"github.com/firmanbudi/otpgate/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the authentication workflows.
type HTTPEndpoint struct {
	uc uc
}

// Login authenticates a user, returning either a session token or a
// two-factor challenge notice.
// @Summary Authenticate user
// @Description Validates credentials. Without a code, issues a verification code and returns a challenge notice. With a code, consumes the challenge and returns an access token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid credentials or code"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Code:     req.Code,
	})
	if err != nil {
		return nil, err
	}

	switch resp.Outcome {
	case entity.OutcomeAuthenticated:
		return LoginResponse{
			Authenticated: true,
			AccessToken:   resp.AccessToken,
			User: &UserResponse{
				ID:    strconv.FormatInt(resp.User.ID, 10),
				Email: resp.User.Email,
				Name:  resp.User.Name,
			},
		}, nil
	case entity.OutcomeChallengeRequired:
		return ChallengeResponse{ChallengeRequired: true}, nil
	default:
		return nil, outcomeError(resp.Outcome)
	}
}

// VerifyCode consumes a pending verification code without issuing a session.
// @Summary Verify a two-factor code
// @Description Checks the submitted code against the account's pending challenge and consumes it on success.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body VerifyCodeRequest true "Verification payload"
// @Success 200 {object} router.successResponse{data=VerifyCodeResponse} "Verification result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired code"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/verify-code [post]
func (h *HTTPEndpoint) VerifyCode(r *router.Request) (any, error) {
	var req VerifyCodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyCode(r.Context(), usecase.VerifyCodeInput{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		return nil, err
	}

	if resp.Outcome != entity.OutcomeAuthenticated {
		return nil, outcomeError(resp.Outcome)
	}

	return VerifyCodeResponse{Verified: true}, nil
}

// Me returns the identity bound to the caller's access token.
// @Summary Current session
// @Description Returns the user claims carried by the bearer token.
// @Tags Auth
// @Produce json
// @Success 200 {object} router.successResponse{data=UserResponse} "Session identity"
// @Failure 401 {object} router.errorResponse "Missing or invalid token"
// @Router /api/v1/auth/me [get]
func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	clm := jwt.GetAuth(r.Context())
	if clm == nil {
		return nil, goerror.NewUnauthorized("Authentication required", "")
	}

	return UserResponse{
		ID:    strconv.FormatInt(clm.UserID, 10),
		Email: clm.UserEmail,
		Name:  clm.UserName,
	}, nil
}

// outcomeError maps a rejected attempt to its HTTP error. Credential and code
// failures share the same status so responses do not leak which gate failed
// beyond the machine-readable reason.
func outcomeError(outcome entity.LoginOutcome) error {
	switch outcome {
	case entity.OutcomeInvalidCode:
		return goerror.NewUnauthorized("Invalid verification code", entity.ReasonInvalidCode)
	case entity.OutcomeCodeExpired:
		return goerror.NewUnauthorized("Verification code has expired", entity.ReasonCodeExpired)
	default:
		return goerror.NewUnauthorized("Invalid email or password", entity.ReasonInvalidCredentials)
	}
}
