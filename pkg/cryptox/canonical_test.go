package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalJSONSortsKeys(t *testing.T) {
	t.Parallel()

	out, err := CanonicalJSON(map[string]any{
		"zebra":  1,
		"apple":  "x",
		"nested": map[string]any{"b": true, "a": nil},
	})
	require.NoError(t, err)
	require.Equal(t, `{"apple":"x","nested":{"a":null,"b":true},"zebra":1}`, string(out))
}

func TestCanonicalJSONIsOrderIndependent(t *testing.T) {
	t.Parallel()

	a, err := CanonicalizeJSON([]byte(`{"b":2,"a":{"y":[1,2],"x":"s"}}`))
	require.NoError(t, err)
	b, err := CanonicalizeJSON([]byte(`{"a":{"x":"s","y":[1,2]},"b":2}`))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestCanonicalJSONPreservesNumbers(t *testing.T) {
	t.Parallel()

	out, err := CanonicalizeJSON([]byte(`{"ms":1735689600000,"frac":0.5}`))
	require.NoError(t, err)
	require.Equal(t, `{"frac":0.5,"ms":1735689600000}`, string(out))
}

func TestCanonicalJSONStructFields(t *testing.T) {
	t.Parallel()

	type payload struct {
		Challenge string `json:"challenge"`
		Timestamp int64  `json:"timestamp"`
		PublicKey string `json:"public_key"`
	}

	out, err := CanonicalJSON(payload{Challenge: "abcd", Timestamp: 42, PublicKey: "pk"})
	require.NoError(t, err)
	require.Equal(t, `{"challenge":"abcd","public_key":"pk","timestamp":42}`, string(out))
}

func TestCanonicalizeJSONRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := CanonicalizeJSON([]byte(`{"unterminated":`))
	require.Error(t, err)
}
