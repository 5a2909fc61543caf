package secp256k1

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollgate/internal/core/domain"
)

func TestVerifier_Verify(t *testing.T) {
	signer, err := GenerateSigner()
	require.NoError(t, err)
	v := NewVerifier()

	digest := Digest(`{"poll_uri":"ipfs://x","validity":60}`)
	sig, err := signer.Sign(digest)
	require.NoError(t, err)
	require.Len(t, sig, SignatureLength)

	assert.True(t, v.Verify(signer.PublicKey(), digest, sig))

	uncompressed := crypto.FromECDSAPub(&signer.key.PublicKey)
	assert.True(t, v.Verify(uncompressed, digest, sig))

	recoverable := append(append([]byte(nil), sig...), 0x01)
	assert.True(t, v.Verify(signer.PublicKey(), digest, recoverable))

	other := Digest("something else")
	assert.False(t, v.Verify(signer.PublicKey(), other, sig))
	assert.False(t, v.Verify(signer.PublicKey(), digest[:31], sig))
	assert.False(t, v.Verify(signer.PublicKey(), digest, sig[:63]))
	assert.False(t, v.Verify([]byte{0x02}, digest, sig))
}

func TestVerifier_AcceptsHighS(t *testing.T) {
	signer := mustSigner(t)
	digest := Digest(`{"poll_id":0,"voter_id":42,"option":1}`)
	sig, err := signer.Sign(digest)
	require.NoError(t, err)

	n := crypto.S256().Params().N
	s := new(big.Int).SetBytes(sig[32:])
	highS := make([]byte, SignatureLength)
	copy(highS, sig[:32])
	new(big.Int).Sub(n, s).FillBytes(highS[32:])
	require.Equal(t, 1, new(big.Int).SetBytes(highS[32:]).Cmp(new(big.Int).Rsh(n, 1)))

	v := NewVerifier()
	assert.True(t, v.Verify(signer.PublicKey(), digest, highS))
	assert.True(t, v.Verify(signer.PublicKey(), digest, append(highS, 0x00)))
	assert.False(t, v.Verify(signer.PublicKey(), Digest("other"), highS))

	// the caller's slice is left as given
	assert.Equal(t, new(big.Int).Sub(n, s).Bytes(), new(big.Int).SetBytes(highS[32:]).Bytes())
}

func TestVerifier_ValidatePublicKey(t *testing.T) {
	signer, err := GenerateSigner()
	require.NoError(t, err)
	v := NewVerifier()

	assert.NoError(t, v.ValidatePublicKey(signer.PublicKey()))
	assert.Error(t, v.ValidatePublicKey(nil))
	assert.Error(t, v.ValidatePublicKey(make([]byte, CompressedLength)))
	assert.Error(t, v.ValidatePublicKey(make([]byte, 20)))
}

func TestSigner_SignInstruction(t *testing.T) {
	signer, err := SignerFromHex("0x" + mustSigner(t).PrivateKeyHex())
	require.NoError(t, err)

	signed, err := signer.SignInstruction(domain.CastVote{PollID: 1, VoterID: 2, Option: 3})
	require.NoError(t, err)

	assert.Equal(t, domain.HandleCastVote, signed.Handle)
	assert.Equal(t, crypto.Keccak256([]byte(signed.InputValues)), signed.InputHash)
	assert.True(t, NewVerifier().Verify(signer.PublicKey(), signed.InputHash, signed.Signature))

	_, err = SignerFromHex("zz")
	assert.Error(t, err)
}

func mustSigner(t *testing.T) *Signer {
	t.Helper()
	s, err := GenerateSigner()
	require.NoError(t, err)
	return s
}
