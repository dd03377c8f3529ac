package service

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/Soulfra/agent-router-sub005/pkg/cryptox"
)

// signEnvelope signs a payload into the common envelope shape. The
// signature covers the canonical JSON encoding of the payload, so any
// field reordering in transit is harmless and any value change is fatal.
func signEnvelope(kp *cryptox.KeyPair, payload any, proofType domain.ProofType, now time.Time) (domain.SignedEnvelope, error) {
	if !kp.CanSign() {
		return domain.SignedEnvelope{}, domain.ErrNoPrivateKey
	}

	canonical, err := cryptox.CanonicalJSON(payload)
	if err != nil {
		return domain.SignedEnvelope{}, fmt.Errorf("sign envelope: %w", err)
	}

	sig := kp.Sign(canonical)

	return domain.SignedEnvelope{
		Data:      canonical,
		Metadata:  map[string]string{domain.MetaAction: string(proofType)},
		Signature: base64.StdEncoding.EncodeToString(sig),
		PublicKey: base64.StdEncoding.EncodeToString(kp.Public),
		Timestamp: now.UnixMilli(),
	}, nil
}

// env64 is the base64 encoding used for keys and signatures in envelopes.
func env64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// VerifyEnvelope recomputes the canonical encoding of the envelope payload
// and checks the signature against the embedded public key. It returns
// false for any malformed input and never panics: verification fails
// closed.
func VerifyEnvelope(env domain.SignedEnvelope) bool {
	pub, err := base64.StdEncoding.DecodeString(env.PublicKey)
	if err != nil {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(env.Signature)
	if err != nil {
		return false
	}

	canonical, err := cryptox.CanonicalizeJSON(env.Data)
	if err != nil {
		return false
	}

	return cryptox.VerifySignature(pub, canonical, sig)
}
