package entity

// LoginOutcome labels how an authentication attempt resolved. Protocol
// outcomes are values, not errors: the transport layer decides how each one
// is presented to the caller.
type LoginOutcome int

const (
	// OutcomeUnknown is the zero value and never returned on success paths.
	OutcomeUnknown LoginOutcome = iota
	// OutcomeAuthenticated means the attempt fully succeeded.
	OutcomeAuthenticated
	// OutcomeChallengeRequired means the password was correct and a
	// verification code was dispatched; the caller must retry with the code.
	OutcomeChallengeRequired
	// OutcomeInvalidCredentials covers unknown accounts, accounts without a
	// password, and wrong passwords. They are indistinguishable on purpose.
	OutcomeInvalidCredentials
	// OutcomeInvalidCode means the supplied code does not match the stored one,
	// or no code is pending.
	OutcomeInvalidCode
	// OutcomeCodeExpired means the code matched but its expiry has passed.
	OutcomeCodeExpired
)

// String returns a log-friendly name for the outcome.
func (o LoginOutcome) String() string {
	switch o {
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeChallengeRequired:
		return "challenge_required"
	case OutcomeInvalidCredentials:
		return "invalid_credentials"
	case OutcomeInvalidCode:
		return "invalid_code"
	case OutcomeCodeExpired:
		return "code_expired"
	default:
		return "unknown"
	}
}

// Stable reason tags clients branch on. These are part of the API contract.
const (
	ReasonMissingCredentials = "MISSING_CREDENTIALS"
	ReasonInvalidCredentials = "INVALID_CREDENTIALS"
	ReasonInvalidCode        = "INVALID_2FA_CODE"
	ReasonCodeExpired        = "2FA_CODE_EXPIRED"
)
