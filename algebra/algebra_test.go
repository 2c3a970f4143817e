package algebra

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarArithmetic(t *testing.T) {
	a := RandomScalar()
	b := RandomScalar()

	assert.True(t, a.Add(b).Sub(b).Equal(a), "a+b-b does not equal a")
	assert.True(t, a.Sub(a).IsZero(), "a-a is not zero")
	assert.True(t, a.Mul(a.Inv()).Equal(ScalarFromInt64(1)), "a·a⁻¹ is not one")
	assert.True(t, a.Add(a.Neg()).IsZero(), "a+(-a) is not zero")
	assert.True(t, NewScalar().IsZero(), "fresh scalar is not zero")

	// Operands must survive the operation untouched.
	c := a.Clone()
	_ = a.Add(b)
	_ = a.Mul(b)
	assert.True(t, a.Equal(c), "operand was mutated by pure operation")
}

func TestScalarRoundTrip(t *testing.T) {
	a := RandomScalar()

	dec, err := ScalarFromBytes(a.Bytes())
	require.NoError(t, err)
	assert.True(t, dec.Equal(a), "scalar bytes round-trip changed the value")
	assert.Equal(t, ScalarSize(), len(a.Bytes()))

	dec, err = ScalarFromBase64(a.Base64())
	require.NoError(t, err)
	assert.True(t, dec.Equal(a), "scalar base64 round-trip changed the value")

	js, err := json.Marshal(a)
	require.NoError(t, err)
	var back Scalar
	require.NoError(t, json.Unmarshal(js, &back))
	assert.True(t, back.Equal(a), "scalar JSON round-trip changed the value")
}

func TestElementRoundTrip(t *testing.T) {
	for _, g := range []Group{G1, G2, GT} {
		e := Random(g)

		raw := e.Bytes()
		assert.Equal(t, g.Size(), len(raw), "unexpected serialized size for %s", g)
		dec, err := FromBytes(g, raw)
		require.NoError(t, err)
		assert.True(t, dec.Equal(e), "%s bytes round-trip changed the element", g)

		dec, err = FromBase64(g, e.Base64())
		require.NoError(t, err)
		assert.True(t, dec.Equal(e), "%s base64 round-trip changed the element", g)

		js, err := json.Marshal(e)
		require.NoError(t, err)
		var back Element
		require.NoError(t, json.Unmarshal(js, &back))
		assert.True(t, back.Equal(e), "%s JSON round-trip changed the element", g)
		assert.Equal(t, g, back.Group(), "JSON round-trip lost the group tag")
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	_, err := ScalarFromBytes([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrDecode, "short scalar was accepted")

	_, err = FromBytes(G1, make([]byte, G2.Size()))
	assert.ErrorIs(t, err, ErrDecode, "wrong-length element was accepted")

	junk := make([]byte, G1.Size())
	for i := range junk {
		junk[i] = 0xff
	}
	_, err = FromBytes(G1, junk)
	assert.ErrorIs(t, err, ErrDecode, "off-curve bytes were accepted as a G1 element")

	_, err = FromBase64(G1, "@@@not-base64@@@")
	assert.ErrorIs(t, err, ErrDecode, "invalid base64 was accepted")

	var e Element
	err = e.UnmarshalText([]byte("AAEC"))
	assert.ErrorIs(t, err, ErrDecode, "element of impossible size was accepted")
}

func TestPairingBilinear(t *testing.T) {
	a := RandomScalar()
	b := RandomScalar()

	left := Pair(Generator(G1).Mul(a), Generator(G2).Mul(b))
	right := Generator(GT).Mul(a.Mul(b))
	assert.True(t, left.Equal(right), "e(a·g1, b·g2) does not equal ab·e(g1,g2)")

	assert.True(t, Pair(Identity(G1), Generator(G2)).IsIdentity(),
		"pairing with the identity is not the identity")
}

func TestIdentity(t *testing.T) {
	for _, g := range []Group{G1, G2, GT} {
		assert.True(t, Identity(g).IsIdentity())
		assert.False(t, Generator(g).IsIdentity(), "%s generator is the identity", g)

		e := Random(g)
		assert.True(t, e.Add(Identity(g)).Equal(e), "adding the %s identity changed the element", g)
		assert.True(t, e.Sub(e).IsIdentity(), "e-e is not the %s identity", g)
	}
}

func TestHashG1(t *testing.T) {
	h1 := HashG1([]byte("some input"))
	h2 := HashG1([]byte("some input"))
	h3 := HashG1([]byte("other input"))

	assert.True(t, h1.Equal(h2), "hashing the same input twice gave different points")
	assert.False(t, h1.Equal(h3), "hashing different inputs gave the same point")
	assert.False(t, h1.IsIdentity(), "hash landed on the identity")
	assert.Equal(t, G1, h1.Group())
}

func TestHashScalarFraming(t *testing.T) {
	// The chunk framing must be injective: moving a byte across a chunk
	// boundary has to change the digest.
	a := HashScalar([]byte("ab"), []byte("c"))
	b := HashScalar([]byte("a"), []byte("bc"))
	assert.False(t, a.Equal(b), "chunk boundaries are not bound into the hash")

	assert.True(t, HashScalar([]byte("x")).Equal(HashScalar([]byte("x"))),
		"hash-to-scalar is not deterministic")
}
