package cpy06

import (
	"github.com/go-errors/errors"

	"github.com/Aaron1924/groupsig"
	"github.com/Aaron1924/groupsig/algebra"
)

// Opening is split between two authorities. Each contributes a share
// computed from its own trapdoor half; only both shares together peel the
// credential out of T3. Neither authority can open alone, and garbage
// shares merely fail the GML lookup.

// Roles of the two opening authorities.
const (
	RoleManager    = "manager"
	RoleRevocation = "revocation"
)

// OpenShare is one authority's contribution to opening a signature.
type OpenShare struct {
	Role string           `json:"role"`
	U    *algebra.Element `json:"U"`
	V    *algebra.Element `json:"V"`
}

var _ groupsig.OpenShare = (*OpenShare)(nil)

func (s *OpenShare) SchemeName() string  { return Name }
func (s *OpenShare) Kind() groupsig.Kind { return groupsig.KindOpenShare }

var roleBytes = map[string]byte{RoleManager: 1, RoleRevocation: 2}

// Bytes returns the serialization role‖U‖V with the role as one byte.
func (s *OpenShare) Bytes() []byte {
	raw := []byte{roleBytes[s.Role]}
	raw = append(raw, s.U.Bytes()...)
	return append(raw, s.V.Bytes()...)
}

// DecodeOpenShare decodes the output of OpenShare.Bytes.
func DecodeOpenShare(raw []byte) (*OpenShare, error) {
	r := newReader(raw)
	role := r.byte()
	s := &OpenShare{U: r.element(algebra.G1), V: r.element(algebra.G1)}
	if err := r.finish(); err != nil {
		return nil, err
	}
	switch role {
	case 1:
		s.Role = RoleManager
	case 2:
		s.Role = RoleRevocation
	default:
		return nil, errors.Errorf("%w: unknown opener role %d", algebra.ErrDecode, role)
	}
	return s, nil
}

// OpenShare computes the group manager's share for opening sig.
func (mk *ManagerKey) OpenShare(sig *Signature) (*OpenShare, error) {
	if !sig.wellFormed() {
		return nil, errors.New("cpy06: malformed signature")
	}
	return &OpenShare{
		Role: RoleManager,
		U:    sig.T1.Mul(mk.Xi1),
		V:    sig.T2.Mul(mk.Xi2),
	}, nil
}

// OpenShare computes the revocation manager's share for opening sig.
func (rk *RevocationManagerKey) OpenShare(sig *Signature) (*OpenShare, error) {
	if !sig.wellFormed() {
		return nil, errors.New("cpy06: malformed signature")
	}
	return &OpenShare{
		Role: RoleRevocation,
		U:    sig.T1.Mul(rk.Xi1),
		V:    sig.T2.Mul(rk.Xi2),
	}, nil
}

// Open combines one share per authority to recover the credential hidden
// in sig and looks the signer up in the GML. Exactly two shares with
// distinct roles are required. When the recovered point matches no GML
// entry, for instance because a share was corrupted, Open returns
// groupsig.ErrMemberNotFound and the GML is left untouched.
func Open(sig *Signature, gml *groupsig.GML, shares ...*OpenShare) (groupsig.MemberID, error) {
	if !sig.wellFormed() {
		return "", errors.New("cpy06: malformed signature")
	}

	byRole := make(map[string]*OpenShare, 2)
	for _, s := range shares {
		if s == nil || s.U == nil || s.V == nil ||
			s.U.Group() != algebra.G1 || s.V.Group() != algebra.G1 {
			return "", errors.Errorf("%w: malformed share", ErrOpenShares)
		}
		if _, ok := roleBytes[s.Role]; !ok {
			return "", errors.Errorf("%w: unknown role %q", ErrOpenShares, s.Role)
		}
		if _, dup := byRole[s.Role]; dup {
			return "", errors.Errorf("%w: duplicate %s share", ErrOpenShares, s.Role)
		}
		byRole[s.Role] = s
	}
	mgr, rev := byRole[RoleManager], byRole[RoleRevocation]
	if mgr == nil || rev == nil {
		return "", errors.Errorf("%w: need one share per authority, got %d", ErrOpenShares, len(shares))
	}

	a := sig.T3.Sub(mgr.U.Add(rev.U)).Sub(mgr.V.Add(rev.V))

	var found groupsig.MemberID
	err := gml.ForEach(func(id groupsig.MemberID, e *groupsig.Entry) error {
		cred, err := algebra.FromBytes(algebra.G1, e.Credential)
		if err != nil {
			return err
		}
		if cred.Equal(a) {
			found = id
			return errStop
		}
		return nil
	})
	switch {
	case err == errStop:
		return found, nil
	case err != nil:
		return "", err
	}
	return "", groupsig.ErrMemberNotFound
}

// errStop aborts a registry scan once the sought entry is found.
var errStop = errors.New("cpy06: stop iteration")

// Reveal publishes the tracing trapdoor of an opened member by copying
// its GML entry to the CRL. Signatures by the member become traceable;
// nothing is removed from the GML.
func Reveal(id groupsig.MemberID, gml *groupsig.GML, crl *groupsig.CRL) error {
	e, err := gml.Get(id)
	if err != nil {
		return err
	}
	if err := crl.Append(id, e); err != nil {
		return err
	}
	groupsig.Logger.Trace("cpy06: revealed member ", id)
	return nil
}

// Trace reports whether sig was produced by any member on the CRL. It
// says nothing about which member, and nothing at all for members whose
// trapdoor was never revealed.
func Trace(sig *Signature, crl *groupsig.CRL) (bool, error) {
	if !sig.wellFormed() {
		return false, errors.New("cpy06: malformed signature")
	}

	revoked := false
	err := crl.ForEach(func(id groupsig.MemberID, e *groupsig.Entry) error {
		pi, err := algebra.FromBytes(algebra.G1, e.Commitment)
		if err != nil {
			return err
		}
		if algebra.Pair(pi, sig.T4).Equal(sig.T5) {
			groupsig.Logger.Trace("cpy06: signature traces to revoked member ", id)
			revoked = true
			return errStop
		}
		return nil
	})
	if err != nil && err != errStop {
		return false, err
	}
	return revoked, nil
}
