// Package cpy06 implements the traceable group-signature scheme of Choi,
// Park and Yung over a BN256 pairing suite.
//
// A group is governed by two authorities. The Group Manager admits members
// through a blind issuance protocol and holds the credential-issuance
// secret gamma; the opening trapdoor is split between it and a separate
// Revocation Manager, so de-anonymizing a signature always takes one
// partial from each of them. Neither authority can identify signers alone.
// Revocation publishes a member's tracing material on the CRL, after which
// anyone can test that member's signatures against it without opening
// them.
//
// A member holds a secret x chosen during join that not even the Group
// Manager learns, a certified secret t, and a credential A satisfying
// (gamma+t)·A = x·g1 + Q. A signature encrypts A towards the combined
// trapdoor and proves in zero knowledge, with the message bound into the
// challenge, that the encrypted credential was validly certified.
//
// The package registers itself with the groupsig root package under the
// name "cpy06". The functions here mirror the generic interface with
// concrete types.
package cpy06

import (
	"github.com/go-errors/errors"

	"github.com/Aaron1924/groupsig"
	"github.com/Aaron1924/groupsig/algebra"
)

// Name is the scheme's registered name.
const Name = "cpy06"

var (
	// ErrJoinPhase is returned when a join session receives a message or
	// call that does not match its current phase.
	ErrJoinPhase = errors.New("cpy06: message does not match the join phase")

	// ErrJoinProof is returned by the issuing authority when a member's
	// commitment proof does not verify.
	ErrJoinProof = errors.New("cpy06: join commitment proof does not verify")

	// ErrCredential is returned by the joining member when the issued
	// credential fails its pairing check.
	ErrCredential = errors.New("cpy06: issued credential does not verify")

	// ErrOpenShares is returned when Open is called with anything other
	// than one well-formed partial from each authority.
	ErrOpenShares = errors.New("cpy06: open requires one partial from each authority")
)

// Setup creates a fresh group. It returns the group public key, the Group
// Manager's key and the Revocation Manager's key; the two secret keys go
// to their respective authorities and never travel together again.
func Setup() (*GroupKey, *ManagerKey, *RevocationManagerKey, error) {
	mk := &ManagerKey{
		Xi1:   algebra.RandomScalar(),
		Xi2:   algebra.RandomScalar(),
		Gamma: algebra.RandomScalar(),
	}
	rk := &RevocationManagerKey{
		Xi1: algebra.RandomScalar(),
		Xi2: algebra.RandomScalar(),
	}
	// The combined trapdoor shares are inverted below, so they must not
	// sum to zero.
	for mk.Xi1.Add(rk.Xi1).IsZero() {
		rk.Xi1 = algebra.RandomScalar()
	}
	for mk.Xi2.Add(rk.Xi2).IsZero() {
		rk.Xi2 = algebra.RandomScalar()
	}

	z := sampleBase(algebra.G1)
	gk := &GroupKey{
		Q: sampleBase(algebra.G1),
		R: algebra.Generator(algebra.G2).Mul(mk.Gamma),
		W: sampleBase(algebra.G2),
		X: z.Mul(mk.Xi1.Add(rk.Xi1).Inv()),
		Y: z.Mul(mk.Xi2.Add(rk.Xi2).Inv()),
		Z: z,
	}
	if err := gk.precompute(); err != nil {
		return nil, nil, nil, err
	}
	groupsig.Logger.Trace("cpy06: generated group keys")
	return gk, mk, rk, nil
}

// sampleBase draws a uniformly random non-identity element of g.
func sampleBase(g algebra.Group) *algebra.Element {
	for {
		e := algebra.Random(g)
		if !e.IsIdentity() {
			return e
		}
	}
}
