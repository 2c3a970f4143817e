package algebra

import (
	"crypto/sha256"
	"encoding/binary"

	"go.dedis.ch/kyber/v3"
)

// hashablePoint is satisfied by the backend's G1 implementation.
type hashablePoint interface {
	Hash([]byte) kyber.Point
}

// HashG1 deterministically maps arbitrary bytes to a G1 element,
// quasi-uniformly over the group. The backend provides hashing to G1 only.
func HashG1(data []byte) *Element {
	hp, ok := suite.G1().Point().(hashablePoint)
	if !ok {
		panic("algebra: backend does not support hashing to G1")
	}
	return &Element{grp: G1, p: hp.Hash(data)}
}

// HashScalar maps an ordered sequence of byte strings to a scalar via
// SHA-256, reduced modulo the group order. Each chunk is length-prefixed so
// that distinct sequences can never collide by concatenation.
func HashScalar(chunks ...[]byte) *Scalar {
	h := sha256.New()
	var n [4]byte
	for _, c := range chunks {
		binary.BigEndian.PutUint32(n[:], uint32(len(c)))
		h.Write(n[:])
		h.Write(c)
	}
	v := suite.G1().Scalar().SetBytes(h.Sum(nil))
	return &Scalar{v: v}
}
