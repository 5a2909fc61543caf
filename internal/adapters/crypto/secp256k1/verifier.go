package secp256k1

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
)

const (
	DigestLength       = 32
	SignatureLength    = 64
	RecoverableLength  = 65
	CompressedLength   = 33
	UncompressedLength = 65
)

type Verifier struct{}

func NewVerifier() ports.SignatureVerifier {
	return &Verifier{}
}

func (v *Verifier) ValidatePublicKey(publicKey []byte) error {
	_, err := ParsePublicKey(publicKey)
	return err
}

// Verify accepts a 64-byte R||S signature, or the 65-byte recoverable form
// whose trailing recovery id is ignored. High-S signatures are accepted.
func (v *Verifier) Verify(publicKey, digest, signature []byte) bool {
	if len(digest) != DigestLength {
		return false
	}
	if len(signature) == RecoverableLength {
		signature = signature[:SignatureLength]
	}
	if len(signature) != SignatureLength {
		return false
	}
	if _, err := ParsePublicKey(publicKey); err != nil {
		return false
	}
	return crypto.VerifySignature(publicKey, digest, normalizeS(signature))
}

var (
	curveN     = crypto.S256().Params().N
	curveHalfN = new(big.Int).Rsh(curveN, 1)
)

// normalizeS returns a copy of sig with S replaced by N-S when S > N/2.
func normalizeS(sig []byte) []byte {
	s := new(big.Int).SetBytes(sig[32:SignatureLength])
	if s.Cmp(curveHalfN) <= 0 {
		return sig
	}
	out := make([]byte, SignatureLength)
	copy(out, sig[:32])
	new(big.Int).Sub(curveN, s).FillBytes(out[32:])
	return out
}

func ParsePublicKey(publicKey []byte) (*ecdsa.PublicKey, error) {
	switch len(publicKey) {
	case CompressedLength:
		return crypto.DecompressPubkey(publicKey)
	case UncompressedLength:
		return crypto.UnmarshalPubkey(publicKey)
	default:
		return nil, fmt.Errorf("unexpected public key length %d", len(publicKey))
	}
}
