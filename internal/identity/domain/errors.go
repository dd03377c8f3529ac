package domain

import "errors"

// Error taxonomy for the identity core. Verification paths catch these
// internally and fail closed; only programmer errors (ErrNoPrivateKey) and
// storage failures surface to callers as errors.
var (
	// ErrMalformedProof reports missing or garbled proof fields.
	ErrMalformedProof = errors.New("malformed proof")

	// ErrInvalidSignature reports a cryptographic verification failure.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrProofOfWorkInvalid reports a hash or difficulty mismatch.
	ErrProofOfWorkInvalid = errors.New("proof of work invalid")

	// ErrNoPrivateKey reports a signing operation invoked on an identity
	// without a loaded private key. Programmer error; never retried.
	ErrNoPrivateKey = errors.New("no private key loaded")

	// ErrIdentityNotFound reports an unknown identity id.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrTOTPNotEnrolled reports a TOTP operation on an identity without
	// an enrolled secret.
	ErrTOTPNotEnrolled = errors.New("totp not enrolled")
)
