package domain

import "time"

// NamespacePasswordReset tags codes issued for seller password recovery.
const NamespacePasswordReset = "password-reset"

// CodeState is the lifecycle state of a pending verification code.
type CodeState int

const (
	CodeIssued CodeState = iota
	CodeVerified
)

func (s CodeState) String() string {
	if s == CodeVerified {
		return "verified"
	}
	return "issued"
}

// VerificationCode is a pending one-time code keyed by (Namespace, Identifier).
// At most one live code exists per key; issuing again replaces it.
type VerificationCode struct {
	Namespace  string    `json:"namespace"`
	Identifier string    `json:"identifier"`
	Code       string    `json:"-"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	State      CodeState `json:"state"`
}

// VerifyResult is the outcome of checking a candidate code.
type VerifyResult int

const (
	VerifyValid VerifyResult = iota
	VerifyExpired
	VerifyNotFound
	VerifyMismatch
)

func (r VerifyResult) String() string {
	switch r {
	case VerifyValid:
		return "valid"
	case VerifyExpired:
		return "expired"
	case VerifyNotFound:
		return "not_found"
	default:
		return "mismatch"
	}
}
