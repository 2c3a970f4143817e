package cpy06

import (
	"github.com/go-errors/errors"

	"github.com/Aaron1924/groupsig"
	"github.com/Aaron1924/groupsig/algebra"
	"github.com/Aaron1924/groupsig/spk"
)

// Signature is a CPY06 group signature. T1, T2 and T3 encrypt the
// signer's credential towards the combined opening trapdoor; T4 and T5
// form the tracing commitment tested against CRL entries; c and the six
// responses prove possession of a certified credential with the signed
// message bound into the challenge.
type Signature struct {
	T1 *algebra.Element `json:"T1"`
	T2 *algebra.Element `json:"T2"`
	T3 *algebra.Element `json:"T3"`
	T4 *algebra.Element `json:"T4"`
	T5 *algebra.Element `json:"T5"`

	C   *algebra.Scalar `json:"c"`
	Sx  *algebra.Scalar `json:"sx"`
	St  *algebra.Scalar `json:"st"`
	Sr1 *algebra.Scalar `json:"sr1"`
	Sr2 *algebra.Scalar `json:"sr2"`
	Sd1 *algebra.Scalar `json:"sd1"`
	Sd2 *algebra.Scalar `json:"sd2"`
}

var _ groupsig.Signature = (*Signature)(nil)

// Sign produces a group signature over msg. The randomness drawn here
// makes every signature unlinkable to the member's other signatures.
func Sign(msg []byte, gk *GroupKey, key *MemberKey) (*Signature, error) {
	if gk == nil || key == nil || key.X == nil || key.T == nil || key.A == nil {
		return nil, errors.New("cpy06: incomplete signing input")
	}

	r1, r2, r3 := algebra.RandomScalar(), algebra.RandomScalar(), algebra.RandomScalar()
	d1, d2 := key.T.Mul(r1), key.T.Mul(r2)

	sig := &Signature{
		T1: gk.X.Mul(r1),
		T2: gk.Y.Mul(r2),
		T3: key.A.Add(gk.Z.Mul(r1.Add(r2))),
		T4: gk.W.Mul(r3),
		T5: gk.eG1W.Mul(r3.Mul(key.X)),
	}

	proof, err := spk.Prove(signStatement(gk, sig), spk.Witnesses{
		"x": key.X, "t": key.T, "r1": r1, "r2": r2, "d1": d1, "d2": d2,
	}, msg)
	if err != nil {
		return nil, err
	}
	sig.C = proof.C
	sig.Sx, sig.St = proof.S["x"], proof.S["t"]
	sig.Sr1, sig.Sr2 = proof.S["r1"], proof.S["r2"]
	sig.Sd1, sig.Sd2 = proof.S["d1"], proof.S["d2"]
	return sig, nil
}

// Verify reports whether sig is a valid group signature over msg under gk.
// No secret material is involved.
func Verify(msg []byte, gk *GroupKey, sig *Signature) bool {
	if gk == nil || !sig.wellFormed() {
		return false
	}
	return spk.Verify(signStatement(gk, sig), sig.proof(), msg)
}

// signStatement builds the relations a signature proves: T1 and T2 are
// encryptions under X and Y with exponents r1 and r2, d1 and d2 equal
// those exponents times t, the big pairing relation ties T3 to a
// credential certified under R, and the last relation ties T5 to the
// tracing commitment T4 under the signer's x.
func signStatement(gk *GroupKey, sig *Signature) spk.Statement {
	g1, g2 := algebra.Generator(algebra.G1), algebra.Generator(algebra.G2)
	zero := algebra.Identity(algebra.G1)
	negEZR, negEZG2 := gk.eZR.Neg(), gk.eZG2.Neg()

	return spk.Statement{
		{Y: sig.T1, Terms: []spk.Term{{Witness: "r1", Base: gk.X}}},
		{Y: sig.T2, Terms: []spk.Term{{Witness: "r2", Base: gk.Y}}},
		{Y: zero, Terms: []spk.Term{
			{Witness: "t", Base: sig.T1},
			{Witness: "d1", Base: gk.X.Neg()},
		}},
		{Y: zero, Terms: []spk.Term{
			{Witness: "t", Base: sig.T2},
			{Witness: "d2", Base: gk.Y.Neg()},
		}},
		{Y: gk.eQG2.Sub(algebra.Pair(sig.T3, gk.R)), Terms: []spk.Term{
			{Witness: "t", Base: algebra.Pair(sig.T3, g2)},
			{Witness: "r1", Base: negEZR},
			{Witness: "r2", Base: negEZR},
			{Witness: "d1", Base: negEZG2},
			{Witness: "d2", Base: negEZG2},
			{Witness: "x", Base: gk.eG1G2.Neg()},
		}},
		{Y: sig.T5, Terms: []spk.Term{
			{Witness: "x", Base: algebra.Pair(g1, sig.T4)},
		}},
	}
}

// proof reassembles the named responses for the statement verifier.
func (sig *Signature) proof() *spk.Proof {
	return &spk.Proof{C: sig.C, S: map[string]*algebra.Scalar{
		"x": sig.Sx, "t": sig.St,
		"r1": sig.Sr1, "r2": sig.Sr2,
		"d1": sig.Sd1, "d2": sig.Sd2,
	}}
}

// wellFormed reports whether every field is present in its proper group,
// which the arithmetic over the signature relies on.
func (sig *Signature) wellFormed() bool {
	if sig == nil {
		return false
	}
	for _, f := range []struct {
		e *algebra.Element
		g algebra.Group
	}{
		{sig.T1, algebra.G1}, {sig.T2, algebra.G1}, {sig.T3, algebra.G1},
		{sig.T4, algebra.G2}, {sig.T5, algebra.GT},
	} {
		if f.e == nil || f.e.Group() != f.g {
			return false
		}
	}
	for _, s := range []*algebra.Scalar{sig.C, sig.Sx, sig.St, sig.Sr1, sig.Sr2, sig.Sd1, sig.Sd2} {
		if s == nil {
			return false
		}
	}
	return true
}

func (sig *Signature) SchemeName() string  { return Name }
func (sig *Signature) Kind() groupsig.Kind { return groupsig.KindSignature }

// Bytes returns the fixed 928-byte serialization
// T1‖T2‖T3‖T4‖T5‖c‖sx‖st‖sr1‖sr2‖sd1‖sd2.
func (sig *Signature) Bytes() []byte {
	var raw []byte
	for _, e := range []*algebra.Element{sig.T1, sig.T2, sig.T3, sig.T4, sig.T5} {
		raw = append(raw, e.Bytes()...)
	}
	for _, s := range []*algebra.Scalar{sig.C, sig.Sx, sig.St, sig.Sr1, sig.Sr2, sig.Sd1, sig.Sd2} {
		raw = append(raw, s.Bytes()...)
	}
	return raw
}

// DecodeSignature decodes the output of Signature.Bytes.
func DecodeSignature(raw []byte) (*Signature, error) {
	r := newReader(raw)
	sig := &Signature{
		T1:  r.element(algebra.G1),
		T2:  r.element(algebra.G1),
		T3:  r.element(algebra.G1),
		T4:  r.element(algebra.G2),
		T5:  r.element(algebra.GT),
		C:   r.scalar(),
		Sx:  r.scalar(),
		St:  r.scalar(),
		Sr1: r.scalar(),
		Sr2: r.scalar(),
		Sd1: r.scalar(),
		Sd2: r.scalar(),
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return sig, nil
}
