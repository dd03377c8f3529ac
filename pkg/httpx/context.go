package httpx

import "context"

type ctxKey string

const (
	CtxKeyIdentityID ctxKey = "identity_id"
	CtxKeyTier       ctxKey = "tier"
	CtxKeyClaims     ctxKey = "claims"
)

// IdentityIDFromContext returns the authenticated identity id, if any.
func IdentityIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyIdentityID).(string); ok {
		return v
	}
	return ""
}
