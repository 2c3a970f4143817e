// Package spk builds and verifies non-interactive zero-knowledge proofs of
// knowledge of a linear representation: "I know scalars w₁..wₙ such that
// yⱼ = Σ wᵢ·gᵢ holds for every relation j", made non-interactive with the
// Fiat-Shamir transform. Statements are typed lists of (witness, base)
// terms; witnesses are shared across relations by name, and relations may
// live in different groups, including GT relations over cached pairings.
//
// The challenge hash binds every public value: the binding message, the
// statement values, the bases, the witness-name and grouping structure, and
// the commitments. Omitting any of these would break soundness.
package spk

import (
	"encoding/binary"

	"github.com/go-errors/errors"

	"github.com/Aaron1924/groupsig/algebra"
)

var (
	// ErrEmptyStatement is returned when proving a statement with no relations.
	ErrEmptyStatement = errors.New("spk: statement has no relations")
	// ErrMissingWitness is returned when a witness named by the statement
	// is not supplied to Prove.
	ErrMissingWitness = errors.New("spk: missing witness")
)

type (
	// Term is a single wᵢ·gᵢ contribution to a relation, referring to its
	// witness by name.
	Term struct {
		Witness string
		Base    *algebra.Element
	}

	// Relation asserts Y = Σ Terms. All bases of one relation live in the
	// same group as Y; distinct relations may use distinct groups.
	Relation struct {
		Y     *algebra.Element
		Terms []Term
	}

	// Statement is an ordered list of relations sharing one witness set.
	Statement []Relation

	// Witnesses maps witness names to their secret values.
	Witnesses map[string]*algebra.Scalar

	// Proof is a Fiat-Shamir proof for a Statement: the challenge and one
	// response per witness name.
	Proof struct {
		C *algebra.Scalar            `json:"c"`
		S map[string]*algebra.Scalar `json:"s"`
	}
)

// witnessNames returns the statement's witness names in order of first
// appearance. The order is part of the hashed structure and of response
// serialization, so it must be deterministic.
func (st Statement) witnessNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, rel := range st {
		for _, term := range rel.Terms {
			if !seen[term.Witness] {
				seen[term.Witness] = true
				names = append(names, term.Witness)
			}
		}
	}
	return names
}

// WitnessNames returns the names a Proof for st must carry responses for,
// in canonical order.
func (st Statement) WitnessNames() []string {
	return st.witnessNames()
}

// combine evaluates Σ scalars[term.Witness]·term.Base for one relation.
func (rel Relation) combine(scalars map[string]*algebra.Scalar) *algebra.Element {
	sum := algebra.Identity(rel.Y.Group())
	for _, term := range rel.Terms {
		sum = sum.Add(term.Base.Mul(scalars[term.Witness]))
	}
	return sum
}

// challenge computes the Fiat-Shamir challenge over the binding message,
// the full statement structure and the per-relation commitments. Every
// chunk is length-prefixed by the hash, and the counts are hashed
// explicitly, so the encoding is injective.
func (st Statement) challenge(binding []byte, comms []*algebra.Element) *algebra.Scalar {
	var u32 = func(n int) []byte {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(n))
		return b[:]
	}

	chunks := [][]byte{binding, u32(len(st))}
	for _, rel := range st {
		chunks = append(chunks, rel.Y.Bytes(), u32(len(rel.Terms)))
		for _, term := range rel.Terms {
			chunks = append(chunks, []byte(term.Witness), term.Base.Bytes())
		}
	}
	for _, comm := range comms {
		chunks = append(chunks, comm.Bytes())
	}
	return algebra.HashScalar(chunks...)
}

// Prove creates a proof of knowledge of witnesses w satisfying st, with
// binding mixed into the challenge. Missing witnesses are an error; the
// caller is responsible for the witnesses actually satisfying st.
func Prove(st Statement, w Witnesses, binding []byte) (*Proof, error) {
	names := st.witnessNames()
	if len(names) == 0 {
		return nil, ErrEmptyStatement
	}

	blind := make(map[string]*algebra.Scalar, len(names))
	for _, name := range names {
		if w[name] == nil {
			return nil, errors.Errorf("%w: %s", ErrMissingWitness, name)
		}
		blind[name] = algebra.RandomScalar()
	}

	comms := make([]*algebra.Element, len(st))
	for j, rel := range st {
		comms[j] = rel.combine(blind)
	}

	c := st.challenge(binding, comms)

	resp := make(map[string]*algebra.Scalar, len(names))
	for _, name := range names {
		resp[name] = blind[name].Sub(c.Mul(w[name]))
	}
	return &Proof{C: c, S: resp}, nil
}

// Verify checks a proof against st and binding. The result is a status:
// any malformed or unsatisfying proof yields false, never an error.
func Verify(st Statement, p *Proof, binding []byte) bool {
	if p == nil || p.C == nil {
		return false
	}
	names := st.witnessNames()
	if len(names) == 0 {
		return false
	}
	for _, name := range names {
		if p.S[name] == nil {
			return false
		}
	}

	// Comm'ⱼ = c·Yⱼ + Σ sᵢ·gᵢ equals the prover's commitment exactly when
	// the responses were formed as sᵢ = rᵢ − c·wᵢ over valid witnesses.
	comms := make([]*algebra.Element, len(st))
	for j, rel := range st {
		comms[j] = rel.Y.Mul(p.C).Add(rel.combine(p.S))
	}
	return st.challenge(binding, comms).Equal(p.C)
}
