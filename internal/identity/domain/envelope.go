package domain

import "encoding/json"

// SignedEnvelope is the common wire shape of every signed object this
// service produces: the canonical payload, optional metadata, a signature
// over the canonical encoding of the payload, the signer's public key and a
// Unix-millisecond timestamp. The embedded public key means verification
// never needs a key registry; the private key is never serialized anywhere.
type SignedEnvelope struct {
	Data      json.RawMessage   `json:"data"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Signature string            `json:"signature"`  // base64 (std, no padding stripped)
	PublicKey string            `json:"public_key"` // base64
	Timestamp int64             `json:"timestamp"`  // Unix ms
}

// MetaAction is the metadata key tagging what a signed envelope is for.
const MetaAction = "action"
