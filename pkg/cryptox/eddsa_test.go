package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyPairSignVerify(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	require.True(t, kp.CanSign())

	msg := []byte("identity core payload")
	sig := kp.Sign(msg)
	require.True(t, VerifySignature(kp.Public, msg, sig))

	t.Run("tampered message fails", func(t *testing.T) {
		require.False(t, VerifySignature(kp.Public, []byte("other payload"), sig))
	})

	t.Run("wrong key fails", func(t *testing.T) {
		other, err := GenerateKeyPair()
		require.NoError(t, err)
		require.False(t, VerifySignature(other.Public, msg, sig))
	})

	t.Run("malformed inputs return false", func(t *testing.T) {
		require.False(t, VerifySignature(nil, msg, sig))
		require.False(t, VerifySignature(kp.Public, msg, nil))
		require.False(t, VerifySignature([]byte{0x01}, msg, sig))
		require.False(t, VerifySignature(kp.Public, msg, []byte{0x01, 0x02}))
	})
}

func TestKeyPairFromSeed(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	restored, err := KeyPairFromSeed(kp.Seed())
	require.NoError(t, err)
	require.Equal(t, kp.Public, restored.Public)

	sig := restored.Sign([]byte("data"))
	require.True(t, VerifySignature(kp.Public, []byte("data"), sig))

	_, err = KeyPairFromSeed([]byte("short"))
	require.Error(t, err)
}

func TestIdentityIDStable(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	id := IdentityID(kp.Public)
	require.Len(t, id, len("id_")+16)
	require.Equal(t, "id_", id[:3])

	// Pure function of the public key: same input, same id.
	require.Equal(t, id, IdentityID(kp.Public))

	other, err := GenerateKeyPair()
	require.NoError(t, err)
	require.NotEqual(t, id, IdentityID(other.Public))
}

func TestPublicOnlyCannotSign(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	pubOnly, err := PublicOnly(kp.Public)
	require.NoError(t, err)
	require.False(t, pubOnly.CanSign())
	require.Nil(t, pubOnly.Seed())
}
