package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/service"
	"github.com/Soulfra/agent-router-sub005/internal/identity/store"
	"github.com/Soulfra/agent-router-sub005/pkg/httpx"
	"github.com/Soulfra/agent-router-sub005/pkg/jwtx"
	"github.com/Soulfra/agent-router-sub005/pkg/slogx"

	_ "github.com/Soulfra/agent-router-sub005/api/identity" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	verifier     jwtx.Verifier
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store      store.Store
	Identities *service.IdentityService
	Challenges *service.ChallengeRegistry
	Admission  *service.AdmissionController
}

func NewRouter(
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	issuer, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		issuer:       issuer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerIdentity()
	r.registerAuth()
	r.registerProofs()
	r.registerAdmission()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Identity & Admission Service API
//	@version		0.1.0
//	@description	Self-sovereign identity service: Ed25519 identities with signed
//	@description	reputation ledgers, challenge-response authentication, proof of
//	@description	work, multi-factor proof bundles and a tiered admission controller.
//	@description
//	@description				Session tokens are EdDSA-signed JWTs minted after a successful
//	@description				challenge-response handshake.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerIdentity() {
	h := &IdentityHandler{Identities: r.Identities}

	// POST /identity - strict: identity creation mints key material
	r.Mux.Handle("POST /v1/identity",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/identity/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/identity/{id}/actions",
		httpx.Chain(http.HandlerFunc(h.HandleRecordAction),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/identity/{id}/actions",
		httpx.Chain(http.HandlerFunc(h.HandleListActions),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/identity/{id}/totp",
		httpx.Chain(http.HandlerFunc(h.HandleEnrollTOTP),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Prover-side operations for server-held identities.
	p := &ProverHandler{Identities: r.Identities}

	r.Mux.Handle("POST /v1/identity/{id}/respond",
		httpx.Chain(http.HandlerFunc(p.HandleRespond),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// PoW search is CPU-bound; keep the limit strict.
	r.Mux.Handle("POST /v1/identity/{id}/pow",
		httpx.Chain(http.HandlerFunc(p.HandleProofOfWork),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/identity/{id}/timeproof",
		httpx.Chain(http.HandlerFunc(p.HandleTimeProof),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/identity/{id}/multifactor",
		httpx.Chain(http.HandlerFunc(p.HandleMultiFactor),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Identities: r.Identities,
		Challenges: r.Challenges,
		Signer:     r.signer,
		Issuer:     r.issuer,
	}

	r.Mux.Handle("POST /v1/auth/challenge",
		httpx.Chain(http.HandlerFunc(h.HandleChallenge),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Verification attempts are the brute-force surface.
	r.Mux.Handle("POST /v1/auth/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProofs() {
	h := &ProofsHandler{Identities: r.Identities}

	r.Mux.Handle("POST /v1/proofs/ownership/verify",
		httpx.Chain(http.HandlerFunc(h.HandleOwnership),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/proofs/pow/verify",
		httpx.Chain(http.HandlerFunc(h.HandleProofOfWork),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/proofs/multifactor/verify",
		httpx.Chain(http.HandlerFunc(h.HandleMultiFactor),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmission() {
	h := &AdmissionHandler{
		Admission:  r.Admission,
		Identities: r.Identities,
	}

	r.Mux.Handle("POST /v1/admission/check",
		httpx.Chain(http.HandlerFunc(h.HandleCheck),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Operator endpoints require an authenticated session.
	r.Mux.Handle("POST /v1/admission/reset",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/admission/custom",
		httpx.Chain(http.HandlerFunc(h.HandleCustom),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
