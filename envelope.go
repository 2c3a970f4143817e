package groupsig

import (
	"encoding/json"

	"github.com/go-errors/errors"
)

// Envelope is the self-describing textual form of an Object: the scheme
// name, the object kind, and the binary serialization as a base64 payload.
type Envelope struct {
	Scheme  string `json:"scheme"`
	Kind    Kind   `json:"kind"`
	Payload []byte `json:"payload"`
}

// Seal wraps o in its tagged envelope.
func Seal(o Object) ([]byte, error) {
	return json.Marshal(&Envelope{
		Scheme:  o.SchemeName(),
		Kind:    o.Kind(),
		Payload: o.Bytes(),
	})
}

// Peek reports the scheme and kind tags of an enveloped object without
// decoding its payload.
func Peek(raw []byte) (scheme string, kind Kind, err error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", "", errors.WrapPrefix(err, "envelope", 0)
	}
	return env.Scheme, env.Kind, nil
}

// Unseal decodes an enveloped object, rejecting envelopes whose scheme or
// kind tag differs from the expected ones. The named scheme must be
// registered.
func Unseal(raw []byte, scheme string, kind Kind) (Object, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errors.WrapPrefix(err, "envelope", 0)
	}
	if env.Scheme != scheme {
		return nil, errors.Errorf("%w: expected %q, envelope carries %q", ErrSchemeMismatch, scheme, env.Scheme)
	}
	if env.Kind != kind {
		return nil, errors.Errorf("%w: expected %q, envelope carries %q", ErrKindMismatch, kind, env.Kind)
	}
	s, err := New(scheme)
	if err != nil {
		return nil, err
	}
	return s.Decode(kind, env.Payload)
}
