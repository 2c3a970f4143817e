package cpy06

import (
	"encoding/json"

	"github.com/go-errors/errors"
	"github.com/multiformats/go-multihash"

	"github.com/Aaron1924/groupsig"
	"github.com/Aaron1924/groupsig/algebra"
)

type (
	// GroupKey is the public key of one group: six points fixed at Setup,
	// plus pairings of them that every sign and verify reuses. The caches
	// are derived on construction and on decode, never read from the wire.
	GroupKey struct {
		Q *algebra.Element `json:"Q"`
		R *algebra.Element `json:"R"`
		W *algebra.Element `json:"W"`
		X *algebra.Element `json:"X"`
		Y *algebra.Element `json:"Y"`
		Z *algebra.Element `json:"Z"`

		eZG2, eZR, eG1G2, eQG2, eG1W *algebra.Element
	}

	// ManagerKey is the Group Manager's secret key: the issuance secret
	// gamma and this authority's half of the opening trapdoor.
	ManagerKey struct {
		Xi1   *algebra.Scalar `json:"xi1"`
		Xi2   *algebra.Scalar `json:"xi2"`
		Gamma *algebra.Scalar `json:"gamma"`
	}

	// RevocationManagerKey is the Revocation Manager's secret key: the
	// complementary half of the opening trapdoor.
	RevocationManagerKey struct {
		Xi1 *algebra.Scalar `json:"xi1"`
		Xi2 *algebra.Scalar `json:"xi2"`
	}

	// MemberKey is one member's signing key. X is chosen during join and
	// never leaves the member, not even towards the Group Manager.
	MemberKey struct {
		X *algebra.Scalar  `json:"x"`
		T *algebra.Scalar  `json:"t"`
		A *algebra.Element `json:"A"`
	}
)

var (
	_ groupsig.GroupKey   = (*GroupKey)(nil)
	_ groupsig.ManagerKey = (*ManagerKey)(nil)
	_ groupsig.ManagerKey = (*RevocationManagerKey)(nil)
	_ groupsig.MemberKey  = (*MemberKey)(nil)
)

// precompute validates the points' groups and fills the pairing caches.
func (gk *GroupKey) precompute() error {
	if gk.Q == nil || gk.R == nil || gk.W == nil || gk.X == nil || gk.Y == nil || gk.Z == nil {
		return errors.Errorf("%w: group key is missing points", algebra.ErrDecode)
	}
	for _, p := range []*algebra.Element{gk.Q, gk.X, gk.Y, gk.Z} {
		if p.Group() != algebra.G1 {
			return errors.Errorf("%w: group key point in %s, expected G1", algebra.ErrDecode, p.Group())
		}
	}
	for _, p := range []*algebra.Element{gk.R, gk.W} {
		if p.Group() != algebra.G2 {
			return errors.Errorf("%w: group key point in %s, expected G2", algebra.ErrDecode, p.Group())
		}
	}
	g1, g2 := algebra.Generator(algebra.G1), algebra.Generator(algebra.G2)
	gk.eZG2 = algebra.Pair(gk.Z, g2)
	gk.eZR = algebra.Pair(gk.Z, gk.R)
	gk.eG1G2 = algebra.Pair(g1, g2)
	gk.eQG2 = algebra.Pair(gk.Q, g2)
	gk.eG1W = algebra.Pair(g1, gk.W)
	return nil
}

func (gk *GroupKey) SchemeName() string  { return Name }
func (gk *GroupKey) Kind() groupsig.Kind { return groupsig.KindGroupKey }

// Bytes returns the fixed 512-byte serialization Q‖R‖W‖X‖Y‖Z.
func (gk *GroupKey) Bytes() []byte {
	var raw []byte
	for _, e := range []*algebra.Element{gk.Q, gk.R, gk.W, gk.X, gk.Y, gk.Z} {
		raw = append(raw, e.Bytes()...)
	}
	return raw
}

// DecodeGroupKey decodes the output of GroupKey.Bytes and recomputes the
// pairing caches.
func DecodeGroupKey(raw []byte) (*GroupKey, error) {
	r := newReader(raw)
	gk := &GroupKey{
		Q: r.element(algebra.G1),
		R: r.element(algebra.G2),
		W: r.element(algebra.G2),
		X: r.element(algebra.G1),
		Y: r.element(algebra.G1),
		Z: r.element(algebra.G1),
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	if err := gk.precompute(); err != nil {
		return nil, err
	}
	return gk, nil
}

// UnmarshalJSON decodes the six points and recomputes the pairing caches.
func (gk *GroupKey) UnmarshalJSON(raw []byte) error {
	type plain GroupKey
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	*gk = GroupKey(p)
	return gk.precompute()
}

func (mk *ManagerKey) SchemeName() string  { return Name }
func (mk *ManagerKey) Kind() groupsig.Kind { return groupsig.KindManagerKey }

// Bytes returns xi1‖xi2‖gamma.
func (mk *ManagerKey) Bytes() []byte {
	return append(append(mk.Xi1.Bytes(), mk.Xi2.Bytes()...), mk.Gamma.Bytes()...)
}

func DecodeManagerKey(raw []byte) (*ManagerKey, error) {
	r := newReader(raw)
	mk := &ManagerKey{Xi1: r.scalar(), Xi2: r.scalar(), Gamma: r.scalar()}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return mk, nil
}

func (rk *RevocationManagerKey) SchemeName() string  { return Name }
func (rk *RevocationManagerKey) Kind() groupsig.Kind { return groupsig.KindRevocationKey }

// Bytes returns xi1‖xi2.
func (rk *RevocationManagerKey) Bytes() []byte {
	return append(rk.Xi1.Bytes(), rk.Xi2.Bytes()...)
}

func DecodeRevocationManagerKey(raw []byte) (*RevocationManagerKey, error) {
	r := newReader(raw)
	rk := &RevocationManagerKey{Xi1: r.scalar(), Xi2: r.scalar()}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return rk, nil
}

func (k *MemberKey) SchemeName() string  { return Name }
func (k *MemberKey) Kind() groupsig.Kind { return groupsig.KindMemberKey }

// Bytes returns x‖t‖A.
func (k *MemberKey) Bytes() []byte {
	return append(append(k.X.Bytes(), k.T.Bytes()...), k.A.Bytes()...)
}

func DecodeMemberKey(raw []byte) (*MemberKey, error) {
	r := newReader(raw)
	k := &MemberKey{X: r.scalar(), T: r.scalar(), A: r.element(algebra.G1)}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return k, nil
}

// ID returns the discriminator this member is listed under in the GML: a
// multihash of the credential and the commitment to X, in base58 text.
func (k *MemberKey) ID() groupsig.MemberID {
	return memberID(k.A, algebra.Generator(algebra.G1).Mul(k.X))
}

// memberID derives the registry key of a credential pair. Holding a
// signature alone is not enough to compute it; opening recovers A first
// and scans the GML for it.
func memberID(a, pi *algebra.Element) groupsig.MemberID {
	sum, err := multihash.Sum(append(a.Bytes(), pi.Bytes()...), multihash.SHA2_256, -1)
	if err != nil {
		// sha2-256 at its default length cannot fail
		panic("cpy06: " + err.Error())
	}
	return groupsig.MemberID(sum.B58String())
}
