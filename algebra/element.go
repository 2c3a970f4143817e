package algebra

import (
	"encoding/base64"
	"fmt"

	"github.com/go-errors/errors"
	"go.dedis.ch/kyber/v3"
)

// Element is an opaque group element of G1, G2 or GT. The zero Element is
// not usable; obtain values from Identity, Generator, Random, HashG1,
// FromBytes or an operation on existing elements.
type Element struct {
	grp Group
	p   kyber.Point
}

// FromBytes decodes the fixed-width serialized form of an element of g.
func FromBytes(g Group, raw []byte) (*Element, error) {
	if len(raw) != g.Size() {
		return nil, errors.Errorf("%w: %s element must be %d bytes, got %d", ErrDecode, g, g.Size(), len(raw))
	}
	p := g.kyber().Point()
	if err := p.UnmarshalBinary(raw); err != nil {
		return nil, errors.Errorf("%w: %v", ErrDecode, err)
	}
	return &Element{grp: g, p: p}, nil
}

// FromBase64 decodes the Base64 text form of an element of g.
func FromBase64(g Group, s string) (*Element, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Errorf("%w: %v", ErrDecode, err)
	}
	return FromBytes(g, raw)
}

// Group returns the group tag of e.
func (e *Element) Group() Group {
	return e.grp
}

func (e *Element) check(b *Element) {
	if e.grp != b.grp {
		panic(fmt.Sprintf("algebra: mixing %s and %s elements", e.grp, b.grp))
	}
}

// Add returns e + b.
func (e *Element) Add(b *Element) *Element {
	e.check(b)
	return &Element{grp: e.grp, p: e.grp.kyber().Point().Add(e.p, b.p)}
}

// Sub returns e - b.
func (e *Element) Sub(b *Element) *Element {
	e.check(b)
	return &Element{grp: e.grp, p: e.grp.kyber().Point().Sub(e.p, b.p)}
}

// Neg returns -e.
func (e *Element) Neg() *Element {
	return &Element{grp: e.grp, p: e.grp.kyber().Point().Neg(e.p)}
}

// Mul returns the scalar multiple k·e. For GT elements this is
// exponentiation by k.
func (e *Element) Mul(k *Scalar) *Element {
	return &Element{grp: e.grp, p: e.grp.kyber().Point().Mul(k.v, e.p)}
}

// Equal reports whether e and b are the same element of the same group.
func (e *Element) Equal(b *Element) bool {
	return e.grp == b.grp && e.p.Equal(b.p)
}

// IsIdentity reports whether e is the neutral element of its group.
func (e *Element) IsIdentity() bool {
	return e.p.Equal(e.grp.kyber().Point().Null())
}

// Clone returns an independent copy of e.
func (e *Element) Clone() *Element {
	return &Element{grp: e.grp, p: e.p.Clone()}
}

// Bytes returns the fixed-width serialized form of e.
func (e *Element) Bytes() []byte {
	raw, err := e.p.MarshalBinary()
	if err != nil {
		// Elements are valid by construction; marshaling cannot fail.
		panic("algebra: " + err.Error())
	}
	return raw
}

// Base64 returns the Base64 text form of e.
func (e *Element) Base64() string {
	return base64.StdEncoding.EncodeToString(e.Bytes())
}

func (e *Element) String() string {
	return e.grp.String() + ":" + e.Base64()
}

// MarshalText implements encoding.TextMarshaler; elements JSON-marshal to
// their Base64 form.
func (e *Element) MarshalText() ([]byte, error) {
	return []byte(e.Base64()), nil
}

// UnmarshalText implements encoding.TextMarshaler. The group is inferred
// from the decoded length, which is unambiguous across G1, G2 and GT.
func (e *Element) UnmarshalText(text []byte) error {
	raw, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return errors.Errorf("%w: %v", ErrDecode, err)
	}
	g, ok := groupOfSize(len(raw))
	if !ok {
		return errors.Errorf("%w: no group element is %d bytes", ErrDecode, len(raw))
	}
	dec, err := FromBytes(g, raw)
	if err != nil {
		return err
	}
	*e = *dec
	return nil
}
