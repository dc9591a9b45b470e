package inbound

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     string `json:"code,omitempty"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginResponse struct {
	Authenticated bool          `json:"authenticated"`
	AccessToken   string        `json:"access_token,omitempty"`
	User          *UserResponse `json:"user,omitempty"`
}

type ChallengeResponse struct {
	ChallengeRequired bool `json:"challenge_required"`
}

func (ChallengeResponse) Message() string {
	return "A verification code has been sent to your email."
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyCodeResponse struct {
	Verified bool `json:"verified"`
}

func (VerifyCodeResponse) Message() string {
	return "Verification code accepted."
}
