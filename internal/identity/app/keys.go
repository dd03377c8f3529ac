package app

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"

	"github.com/Soulfra/agent-router-sub005/pkg/jwtx"
)

// initSessionKey builds the signer and verifier pair for session tokens.
//
// With SessionKeyFile set, the Ed25519 seed is read from disk so tokens
// survive restarts. Without it an ephemeral key is generated on startup and
// every outstanding session token dies with the process.
func initSessionKey(cfg Config, logger *slog.Logger) (*jwtx.EdDSASigner, jwtx.Verifier, error) {
	var priv ed25519.PrivateKey

	if cfg.SessionKeyFile != "" {
		seed, err := os.ReadFile(cfg.SessionKeyFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read session key file: %w", err)
		}
		if len(seed) != ed25519.SeedSize {
			return nil, nil, fmt.Errorf("session key file must hold a %d-byte seed, got %d bytes",
				ed25519.SeedSize, len(seed))
		}
		priv = ed25519.NewKeyFromSeed(seed)
		logger.Info("session key loaded", "path", cfg.SessionKeyFile)
	} else {
		var err error
		_, priv, err = ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, nil, fmt.Errorf("generate session key: %w", err)
		}
		logger.Info("ephemeral session key generated - session tokens will not survive restarts")
	}

	signer, err := jwtx.NewEdDSASigner(priv)
	if err != nil {
		return nil, nil, err
	}
	verifier, err := jwtx.NewEdDSAVerifier(signer.Public(), cfg.Issuer)
	if err != nil {
		return nil, nil, err
	}
	return signer, verifier, nil
}
