package signer

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
)

// ErrKeyDerivation reports a secret URI that parsed but could not be
// turned into a key pair.
var ErrKeyDerivation = errors.New("key derivation failed")

// hardJunctionTag domain-separates hard derivation steps.
const hardJunctionTag = "Secp256k1HDKD"

// Signer can sign an extrinsic payload on behalf of one account.
type Signer interface {
	Address() common.Address
	Sign(payload []byte) ([]byte, error)
}

// Keypair is a signing key pair derived deterministically from a secret
// URI. It lives only for the duration of one command invocation and is
// never persisted.
type Keypair struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// FromURI derives a key pair from a secret URI. Derivation is
// deterministic: the same URI always yields the same key pair.
func FromURI(suri string) (*Keypair, error) {
	uri, err := ParseURI(suri)
	if err != nil {
		return nil, err
	}

	seed, err := seedFromPhrase(uri.Phrase, uri.Password)
	if err != nil {
		return nil, err
	}
	for _, junction := range uri.Junctions {
		if !junction.Hard {
			return nil, fmt.Errorf("%w: soft junction %q is not supported for secp256k1 keys", ErrKeyDerivation, junction.Path)
		}
		seed = deriveHard(seed, junction.Path)
	}

	privateKey, err := crypto.ToECDSA(seed[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return &Keypair{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

func (k *Keypair) Address() common.Address { return k.address }

// Sign signs the blake2b-256 digest of the payload.
func (k *Keypair) Sign(payload []byte) ([]byte, error) {
	if k == nil || k.privateKey == nil {
		return nil, errors.New("keypair is not initialized")
	}
	digest := blake2b.Sum256(payload)
	return crypto.Sign(digest[:], k.privateKey)
}

func seedFromPhrase(phrase, password string) ([32]byte, error) {
	if strings.HasPrefix(phrase, "0x") {
		raw, err := hex.DecodeString(strings.TrimPrefix(phrase, "0x"))
		if err != nil {
			return [32]byte{}, fmt.Errorf("%w: invalid hex seed: %v", ErrKeyDerivation, err)
		}
		if len(raw) != 32 {
			return [32]byte{}, fmt.Errorf("%w: seed must be 32 bytes, got %d", ErrKeyDerivation, len(raw))
		}
		var seed [32]byte
		copy(seed[:], raw)
		return seed, nil
	}

	material := []byte(phrase)
	if password != "" {
		material = append(material, []byte("///"+password)...)
	}
	return blake2b.Sum256(material), nil
}

func deriveHard(seed [32]byte, path string) [32]byte {
	chainCode := junctionChainCode(path)
	material := make([]byte, 0, len(hardJunctionTag)+len(seed)+len(chainCode))
	material = append(material, hardJunctionTag...)
	material = append(material, seed[:]...)
	material = append(material, chainCode[:]...)
	return blake2b.Sum256(material)
}

func junctionChainCode(path string) [32]byte {
	var code [32]byte
	raw := []byte(path)
	if len(raw) > 32 {
		return blake2b.Sum256(raw)
	}
	copy(code[:], raw)
	return code
}
