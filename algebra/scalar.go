package algebra

import (
	"encoding/base64"

	"github.com/go-errors/errors"
	"go.dedis.ch/kyber/v3"
)

// Scalar is an element of the shared scalar field of G1, G2 and GT,
// reduced modulo the group order.
type Scalar struct {
	v kyber.Scalar
}

// NewScalar returns the zero scalar.
func NewScalar() *Scalar {
	return &Scalar{v: suite.G1().Scalar().Zero()}
}

// ScalarFromInt64 returns the scalar v mod the group order.
func ScalarFromInt64(v int64) *Scalar {
	return &Scalar{v: suite.G1().Scalar().SetInt64(v)}
}

// RandomScalar samples a uniformly random scalar.
func RandomScalar() *Scalar {
	return &Scalar{v: suite.G1().Scalar().Pick(randomStream)}
}

// ScalarFromBytes decodes the fixed-width big-endian form of a scalar.
func ScalarFromBytes(raw []byte) (*Scalar, error) {
	if len(raw) != ScalarSize() {
		return nil, errors.Errorf("%w: scalar must be %d bytes, got %d", ErrDecode, ScalarSize(), len(raw))
	}
	v := suite.G1().Scalar()
	if err := v.UnmarshalBinary(raw); err != nil {
		return nil, errors.Errorf("%w: %v", ErrDecode, err)
	}
	return &Scalar{v: v}, nil
}

// ScalarFromBase64 decodes the Base64 text form of a scalar.
func ScalarFromBase64(s string) (*Scalar, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Errorf("%w: %v", ErrDecode, err)
	}
	return ScalarFromBytes(raw)
}

// Add returns s + b.
func (s *Scalar) Add(b *Scalar) *Scalar {
	return &Scalar{v: suite.G1().Scalar().Add(s.v, b.v)}
}

// Sub returns s - b.
func (s *Scalar) Sub(b *Scalar) *Scalar {
	return &Scalar{v: suite.G1().Scalar().Sub(s.v, b.v)}
}

// Mul returns s · b.
func (s *Scalar) Mul(b *Scalar) *Scalar {
	return &Scalar{v: suite.G1().Scalar().Mul(s.v, b.v)}
}

// Neg returns -s.
func (s *Scalar) Neg() *Scalar {
	return &Scalar{v: suite.G1().Scalar().Neg(s.v)}
}

// Inv returns the multiplicative inverse of s. Inverting zero panics, as
// in the underlying field implementation.
func (s *Scalar) Inv() *Scalar {
	return &Scalar{v: suite.G1().Scalar().Inv(s.v)}
}

// Equal reports whether s and b are the same field element.
func (s *Scalar) Equal(b *Scalar) bool {
	return s.v.Equal(b.v)
}

// IsZero reports whether s is the additive identity.
func (s *Scalar) IsZero() bool {
	return s.v.Equal(suite.G1().Scalar().Zero())
}

// Clone returns an independent copy of s.
func (s *Scalar) Clone() *Scalar {
	return &Scalar{v: s.v.Clone()}
}

// Bytes returns the fixed-width big-endian form of s.
func (s *Scalar) Bytes() []byte {
	raw, err := s.v.MarshalBinary()
	if err != nil {
		panic("algebra: " + err.Error())
	}
	return raw
}

// Base64 returns the Base64 text form of s.
func (s *Scalar) Base64() string {
	return base64.StdEncoding.EncodeToString(s.Bytes())
}

func (s *Scalar) String() string {
	return s.Base64()
}

// MarshalText implements encoding.TextMarshaler; scalars JSON-marshal to
// their Base64 form.
func (s *Scalar) MarshalText() ([]byte, error) {
	return []byte(s.Base64()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scalar) UnmarshalText(text []byte) error {
	dec, err := ScalarFromBase64(string(text))
	if err != nil {
		return err
	}
	*s = *dec
	return nil
}
