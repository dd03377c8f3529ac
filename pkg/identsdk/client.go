package identsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SDKClient is a client for the identity and admission service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new identity service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs a JSON request/response round trip. A nil in skips the
// request body; a nil out discards the response body. Non-2xx responses are
// returned as *APIError.
func (c *SDKClient) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = ErrorCodeServerError
			apiErr.Description = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetLiveness checks the liveness probe endpoint.
func (c *SDKClient) GetLiveness(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/livez", "", nil, &out)
	return out, err
}

// GetReadiness checks the readiness probe endpoint, including the database
// ping.
func (c *SDKClient) GetReadiness(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/readyz", "", nil, &out)
	return out, err
}

// CreateIdentity creates a server-held identity. The response contains the
// exported identity JSON, private key included.
func (c *SDKClient) CreateIdentity(ctx context.Context, req CreateIdentityRequest) (CreateIdentityResponse, error) {
	var out CreateIdentityResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/identity", "", req, &out)
	return out, err
}

// GetIdentity fetches the public record of an identity.
func (c *SDKClient) GetIdentity(ctx context.Context, identityID string) (IdentityResponse, error) {
	var out IdentityResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/identity/"+url.PathEscape(identityID), "", nil, &out)
	return out, err
}

// RecordAction records one verified action against an identity's ledger.
func (c *SDKClient) RecordAction(ctx context.Context, identityID string, req ActionRequest) (ActionResponse, error) {
	var out ActionResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/identity/"+url.PathEscape(identityID)+"/actions", "", req, &out)
	return out, err
}

// ListActions returns the identity's most recent action records, newest
// first. A limit of 0 uses the service default.
func (c *SDKClient) ListActions(ctx context.Context, identityID string, limit int) (ActionsListResponse, error) {
	path := "/v1/identity/" + url.PathEscape(identityID) + "/actions"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out ActionsListResponse
	err := c.doJSON(ctx, http.MethodGet, path, "", nil, &out)
	return out, err
}

// EnrollTOTP enrols a TOTP factor for a server-held identity.
func (c *SDKClient) EnrollTOTP(ctx context.Context, identityID string) (TOTPEnrolResponse, error) {
	var out TOTPEnrolResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/identity/"+url.PathEscape(identityID)+"/totp", "", nil, &out)
	return out, err
}

// BeginAuth starts a challenge-response handshake.
func (c *SDKClient) BeginAuth(ctx context.Context) (ChallengeResponse, error) {
	var out ChallengeResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/challenge", "", nil, &out)
	return out, err
}

// Respond answers a challenge with a server-held identity's key.
func (c *SDKClient) Respond(ctx context.Context, identityID string, req RespondRequest) (SignedEnvelope, error) {
	var out SignedEnvelope
	err := c.doJSON(ctx, http.MethodPost, "/v1/identity/"+url.PathEscape(identityID)+"/respond", "", req, &out)
	return out, err
}

// VerifyAuth verifies a handshake response. On success the response carries
// a bearer session token.
func (c *SDKClient) VerifyAuth(ctx context.Context, req VerifyRequest) (VerifyResponse, error) {
	var out VerifyResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/verify", "", req, &out)
	return out, err
}

// CreateProofOfWork runs a proof-of-work search with a server-held
// identity's key. This blocks until the search finishes or ctx is done.
func (c *SDKClient) CreateProofOfWork(ctx context.Context, identityID string, req PoWCreateRequest) (SignedEnvelope, error) {
	var out SignedEnvelope
	err := c.doJSON(ctx, http.MethodPost, "/v1/identity/"+url.PathEscape(identityID)+"/pow", "", req, &out)
	return out, err
}

// CreateTimeProof signs an account-age attestation for a server-held
// identity.
func (c *SDKClient) CreateTimeProof(ctx context.Context, identityID string) (SignedEnvelope, error) {
	var out SignedEnvelope
	err := c.doJSON(ctx, http.MethodPost, "/v1/identity/"+url.PathEscape(identityID)+"/timeproof", "", nil, &out)
	return out, err
}

// CreateMultiFactorProof composes a multi-factor bundle for a server-held
// identity.
func (c *SDKClient) CreateMultiFactorProof(ctx context.Context, identityID string, req MultiFactorCreateRequest) (SignedEnvelope, error) {
	var out SignedEnvelope
	err := c.doJSON(ctx, http.MethodPost, "/v1/identity/"+url.PathEscape(identityID)+"/multifactor", "", req, &out)
	return out, err
}

// VerifyOwnership verifies an ownership proof.
func (c *SDKClient) VerifyOwnership(ctx context.Context, req OwnershipVerifyRequest) (ProofVerifyResponse, error) {
	var out ProofVerifyResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/proofs/ownership/verify", "", req, &out)
	return out, err
}

// VerifyProofOfWork verifies a proof-of-work envelope.
func (c *SDKClient) VerifyProofOfWork(ctx context.Context, req PoWVerifyRequest) (ProofVerifyResponse, error) {
	var out ProofVerifyResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/proofs/pow/verify", "", req, &out)
	return out, err
}

// VerifyMultiFactor verifies a multi-factor bundle.
func (c *SDKClient) VerifyMultiFactor(ctx context.Context, req MultiFactorVerifyRequest) (MultiFactorVerifyResponse, error) {
	var out MultiFactorVerifyResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/proofs/multifactor/verify", "", req, &out)
	return out, err
}

// CheckAdmission asks for an admission decision. A rejection comes back as
// a normal decision with Allowed=false, not as an error.
func (c *SDKClient) CheckAdmission(ctx context.Context, req AdmissionCheckRequest) (AdmissionDecision, error) {
	var out AdmissionDecision
	err := c.doJSON(ctx, http.MethodPost, "/v1/admission/check", "", req, &out)
	return out, err
}

// ResetAdmission refills an identity's buckets. Requires a bearer session
// token.
func (c *SDKClient) ResetAdmission(ctx context.Context, token string, req AdmissionResetRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/admission/reset", token, req, nil)
}

// SetCustomAdmission installs an operator override bucket. Requires a
// bearer session token.
func (c *SDKClient) SetCustomAdmission(ctx context.Context, token string, req AdmissionCustomRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/admission/custom", token, req, nil)
}
