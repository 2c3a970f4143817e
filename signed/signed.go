// Package signed authenticates byte strings and structs with ECDSA over
// P-256. Registry snapshots travel between authorities and verifiers as
// signed messages: a struct is marshaled to deterministic CBOR, signed, and
// shipped as a CBOR (payload, signature) pair.
package signed

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"

	"github.com/go-errors/errors"

	"github.com/Aaron1924/groupsig/cbor"
)

type (
	// Message holds a payload-signature pair produced by MarshalSign and
	// consumed by UnmarshalVerify.
	Message []byte

	envelope struct {
		Payload   []byte
		Signature []byte
	}
)

// GenerateKey produces a fresh P-256 signing key.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
}

// MarshalPublicKey serializes pk in PKIX form.
func MarshalPublicKey(pk *ecdsa.PublicKey) ([]byte, error) {
	return x509.MarshalPKIXPublicKey(pk)
}

// UnmarshalPublicKey parses a PKIX-form ECDSA public key.
func UnmarshalPublicKey(raw []byte) (*ecdsa.PublicKey, error) {
	generic, err := x509.ParsePKIXPublicKey(raw)
	if err != nil {
		return nil, err
	}
	pk, ok := generic.(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("not an ecdsa public key")
	}
	return pk, nil
}

// MarshalPrivateKey serializes sk in SEC 1 form.
func MarshalPrivateKey(sk *ecdsa.PrivateKey) ([]byte, error) {
	return x509.MarshalECPrivateKey(sk)
}

// UnmarshalPrivateKey parses a SEC 1 form ECDSA private key.
func UnmarshalPrivateKey(raw []byte) (*ecdsa.PrivateKey, error) {
	return x509.ParseECPrivateKey(raw)
}

// Sign signs the SHA-256 digest of bts, returning an ASN.1 signature.
func Sign(sk *ecdsa.PrivateKey, bts []byte) ([]byte, error) {
	hash := sha256.Sum256(bts)
	return ecdsa.SignASN1(rand.Reader, sk, hash[:])
}

// Verify checks an ASN.1 signature over the SHA-256 digest of bts.
func Verify(pk *ecdsa.PublicKey, bts, signature []byte) error {
	hash := sha256.Sum256(bts)
	if !ecdsa.VerifyASN1(pk, hash[:], signature) {
		return errors.New("invalid ecdsa signature")
	}
	return nil
}

// MarshalSign marshals message to deterministic CBOR, signs it, and returns
// the signed pair.
func MarshalSign(sk *ecdsa.PrivateKey, message interface{}) (Message, error) {
	payload, err := cbor.Marshal(message)
	if err != nil {
		return nil, err
	}
	signature, err := Sign(sk, payload)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&envelope{Payload: payload, Signature: signature})
}

// UnmarshalVerify checks the signature of a Message and unmarshals its
// payload into dst. dst is untouched unless the signature verifies.
func UnmarshalVerify(pk *ecdsa.PublicKey, signed Message, dst interface{}) error {
	var env envelope
	if err := cbor.Unmarshal(signed, &env); err != nil {
		return errors.WrapPrefix(err, "signed message", 0)
	}
	if err := Verify(pk, env.Payload, env.Signature); err != nil {
		return err
	}
	return cbor.Unmarshal(env.Payload, dst)
}
