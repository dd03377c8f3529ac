package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
)

// powCancelCheckEvery is how many nonce attempts run between context
// cancellation checks during the search.
const powCancelCheckEvery = 4096

// CreateProofOfWork searches for the smallest nonce such that
// sha256("{identityID}:{nonce}:{startTime}") has at least difficulty
// leading hex zeros, then signs the complete work record. Average cost
// grows as 16^difficulty hash attempts; difficulty is the caller's
// trust/cost dial.
//
// The search is CPU-bound and blocks the calling goroutine; it honours ctx
// cancellation so callers can abandon it. Proofs are stateless, so an
// abandoned search leaves nothing to clean up.
func (id *Identity) CreateProofOfWork(ctx context.Context, difficulty int) (domain.SignedEnvelope, error) {
	if !id.keys.CanSign() {
		return domain.SignedEnvelope{}, domain.ErrNoPrivateKey
	}
	if difficulty < 1 {
		return domain.SignedEnvelope{}, fmt.Errorf("proof of work difficulty must be >= 1, got %d", difficulty)
	}

	start := id.now().UTC()
	startMs := start.UnixMilli()

	var nonce int64
	var hash string
	for {
		if nonce%powCancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return domain.SignedEnvelope{}, fmt.Errorf("proof of work abandoned: %w", err)
			}
		}

		hash = powHash(id.ID, nonce, startMs)
		if leadingHexZeros(hash) >= difficulty {
			break
		}
		nonce++
	}

	end := id.now().UTC()

	return signEnvelope(id.keys, domain.ProofOfWorkPayload{
		IdentityID:    id.ID,
		Nonce:         nonce,
		Hash:          hash,
		Difficulty:    difficulty,
		StartTime:     startMs,
		EndTime:       end.UnixMilli(),
		ComputeTimeMs: end.UnixMilli() - startMs,
	}, domain.ProofTypeWork, end)
}

// VerifyProofOfWork recomputes the hash from the proof's own embedded
// identity id, nonce and start time, then checks hash equality, the
// minimum difficulty and the envelope signature. A proof computed at
// difficulty d verifies at any minDifficulty <= d. Fails closed.
func VerifyProofOfWork(env domain.SignedEnvelope, minDifficulty int) bool {
	var payload domain.ProofOfWorkPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return false
	}

	recomputed := powHash(payload.IdentityID, payload.Nonce, payload.StartTime)
	if recomputed != payload.Hash {
		return false
	}
	if leadingHexZeros(payload.Hash) < minDifficulty {
		return false
	}
	return VerifyEnvelope(env)
}

func powHash(identityID string, nonce, startMs int64) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%d:%d", identityID, nonce, startMs))
	return hex.EncodeToString(sum[:])
}

func leadingHexZeros(hash string) int {
	n := 0
	for _, c := range hash {
		if c != '0' {
			break
		}
		n++
	}
	return n
}
