// Package algebra wraps the bn256 pairing suite behind small value types for
// the scalar field and the three pairing groups. Elements carry their group,
// serialize to a fixed number of bytes per group, and marshal to Base64 in
// JSON. All operations return fresh values and never mutate their operands;
// the only failing operation is decoding, which reports ErrDecode. Combining
// elements of different groups, or pairing anything other than a G1 with a
// G2, is a programming error and panics.
package algebra

import (
	"crypto/cipher"

	"github.com/go-errors/errors"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/pairing/bn256"
	"go.dedis.ch/kyber/v3/util/random"
)

// Group tags an Element with the pairing group it lives in.
type Group uint8

const (
	G1 Group = 1 + iota
	G2
	GT
)

// ErrDecode is wrapped by every error returned for malformed serialized
// scalars and elements, including wrong-length and not-on-curve input.
var ErrDecode = errors.New("malformed algebra encoding")

var suite = bn256.NewSuite()

// randomStream is the randomness source for Random, RandomScalar and the
// blinding values drawn during proving. It is backed by crypto/rand.
var randomStream cipher.Stream = random.New()

func (g Group) kyber() kyber.Group {
	switch g {
	case G1:
		return suite.G1()
	case G2:
		return suite.G2()
	case GT:
		return suite.GT()
	}
	panic("algebra: invalid group tag")
}

func (g Group) String() string {
	switch g {
	case G1:
		return "G1"
	case G2:
		return "G2"
	case GT:
		return "GT"
	}
	return "G?"
}

// Size returns the fixed serialized length in bytes of an element of g.
// The three lengths are pairwise distinct, and distinct from ScalarSize,
// which keeps the Base64 text form self-describing.
func (g Group) Size() int {
	return g.kyber().PointLen()
}

// ScalarSize returns the fixed serialized length in bytes of a Scalar.
func ScalarSize() int {
	return suite.G1().ScalarLen()
}

// groupOfSize maps a serialized length back to its group tag.
func groupOfSize(n int) (Group, bool) {
	for _, g := range []Group{G1, G2, GT} {
		if g.Size() == n {
			return g, true
		}
	}
	return 0, false
}

// Identity returns the neutral element of g.
func Identity(g Group) *Element {
	return &Element{grp: g, p: g.kyber().Point().Null()}
}

// Generator returns the standard generator of G1 or G2, and e(g1, g2) for GT.
func Generator(g Group) *Element {
	if g == GT {
		return Pair(Generator(G1), Generator(G2))
	}
	return &Element{grp: g, p: g.kyber().Point().Base()}
}

// Random samples a uniformly random element of g.
func Random(g Group) *Element {
	return &Element{grp: g, p: g.kyber().Point().Pick(randomStream)}
}

// Pair evaluates the bilinear map on a G1 and a G2 element.
func Pair(a, b *Element) *Element {
	if a.grp != G1 || b.grp != G2 {
		panic("algebra: Pair requires a G1 and a G2 element")
	}
	return &Element{grp: GT, p: suite.Pair(a.p, b.p)}
}
