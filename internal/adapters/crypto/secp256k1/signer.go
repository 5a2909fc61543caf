package secp256k1

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/vncsmyrnk/pollgate/internal/core/domain"
)

// Signer produces gateway envelopes. It is used by the gatewaysign tool and tests.
type Signer struct {
	key *ecdsa.PrivateKey
}

func GenerateSigner() (*Signer, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return &Signer{key: key}, nil
}

func SignerFromHex(privateKey string) (*Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &Signer{key: key}, nil
}

func (s *Signer) PrivateKeyHex() string {
	return hex.EncodeToString(crypto.FromECDSA(s.key))
}

// PublicKey returns the 33-byte compressed public key.
func (s *Signer) PublicKey() []byte {
	return crypto.CompressPubkey(&s.key.PublicKey)
}

func (s *Signer) Sign(digest []byte) ([]byte, error) {
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return nil, err
	}
	return sig[:SignatureLength], nil
}

// Digest is the hash the gateway signs for an instruction payload.
func Digest(inputValues string) []byte {
	return crypto.Keccak256([]byte(inputValues))
}

func (s *Signer) SignInstruction(in domain.Instruction) (domain.SignedInput, error) {
	inputValues, err := domain.EncodeInstruction(in)
	if err != nil {
		return domain.SignedInput{}, err
	}
	return s.SignPayload(in.Handle(), inputValues)
}

func (s *Signer) SignPayload(handle, inputValues string) (domain.SignedInput, error) {
	digest := Digest(inputValues)
	sig, err := s.Sign(digest)
	if err != nil {
		return domain.SignedInput{}, fmt.Errorf("failed to sign payload: %w", err)
	}
	return domain.SignedInput{
		Handle:      handle,
		InputValues: inputValues,
		InputHash:   digest,
		Signature:   sig,
	}, nil
}
