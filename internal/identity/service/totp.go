package service

import (
	"fmt"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTPEnrolment is returned when an identity enrols a TOTP factor.
type TOTPEnrolment struct {
	Secret string `json:"secret"` // base32
	URL    string `json:"url"`    // otpauth:// URL for QR generation
}

// EnrollTOTP generates a TOTP secret for the identity and stores it on the
// in-memory identity. Persisting the enrolment is the identity service's
// job.
func (id *Identity) EnrollTOTP(issuer string) (TOTPEnrolment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: id.ID,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return TOTPEnrolment{}, fmt.Errorf("generate totp key: %w", err)
	}

	id.SetTOTPSecret(key.Secret())

	return TOTPEnrolment{Secret: key.Secret(), URL: key.URL()}, nil
}

// CurrentTOTPCode computes the code for the current time window from the
// enrolled secret.
func (id *Identity) CurrentTOTPCode() (string, error) {
	secret := id.TOTPSecret()
	if secret == "" {
		return "", domain.ErrTOTPNotEnrolled
	}
	code, err := totp.GenerateCode(secret, id.now())
	if err != nil {
		return "", fmt.Errorf("generate totp code: %w", err)
	}
	return code, nil
}

// ValidateTOTPCode checks a code against a secret for the current window.
// Empty secrets always fail.
func ValidateTOTPCode(secret, code string) bool {
	if secret == "" || code == "" {
		return false
	}
	return totp.Validate(code, secret)
}
