package spk

import (
	"github.com/Aaron1924/groupsig/algebra"
)

// dlogWitness is the single witness name used by the discrete-log
// specialization; it is bound into the challenge like any other name.
const dlogWitness = "x"

// DlogStatement is the single-relation statement y = x·base.
func DlogStatement(y, base *algebra.Element) Statement {
	return Statement{{Y: y, Terms: []Term{{Witness: dlogWitness, Base: base}}}}
}

// ProveDlog proves knowledge of x with y = x·base, in any of the three
// groups.
func ProveDlog(y, base *algebra.Element, x *algebra.Scalar, binding []byte) (*Proof, error) {
	return Prove(DlogStatement(y, base), Witnesses{dlogWitness: x}, binding)
}

// VerifyDlog checks a ProveDlog proof.
func VerifyDlog(y, base *algebra.Element, p *Proof, binding []byte) bool {
	return Verify(DlogStatement(y, base), p, binding)
}
