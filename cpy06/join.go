package cpy06

import (
	"github.com/Aaron1924/groupsig"
	"github.com/Aaron1924/groupsig/algebra"
	"github.com/Aaron1924/groupsig/spk"
)

// Joining is a three-message conversation. The manager opens with a
// JoinChallenge, the candidate answers with a JoinCommitment whose proof
// is bound to that challenge, and the manager closes with a
// JoinCredential. Neither party learns the other's secret: the manager
// never sees the member key x, the member never sees gamma.

// joinPhase tracks where a join conversation stands. Each message is
// accepted only in the phase that expects it.
type joinPhase uint8

const (
	phaseInit joinPhase = iota
	phaseChallenged
	phaseCommitted
	phaseDone
	phaseFailed
)

// JoinChallenge opens a join conversation. The candidate derives its
// member key as x = u*y + v from its own randomness y, so neither party
// controls x alone.
type JoinChallenge struct {
	U *algebra.Scalar `json:"u"`
	V *algebra.Scalar `json:"v"`
}

// JoinCommitment answers a challenge. Pi commits the candidate to its
// member key, I blinds the candidate's randomness, and the proof shows
// both were formed from the challenge just received.
type JoinCommitment struct {
	I     *algebra.Element `json:"I"`
	Pi    *algebra.Element `json:"pi"`
	Proof *spk.Proof       `json:"proof"`
}

// JoinCredential closes the conversation with the certified credential
// A = (gamma+t)^-1 * (pi + Q) and its certificate exponent t.
type JoinCredential struct {
	T *algebra.Scalar  `json:"t"`
	A *algebra.Element `json:"A"`
}

var (
	_ groupsig.Object = (*JoinChallenge)(nil)
	_ groupsig.Object = (*JoinCommitment)(nil)
	_ groupsig.Object = (*JoinCredential)(nil)
)

func (ch *JoinChallenge) SchemeName() string  { return Name }
func (ch *JoinChallenge) Kind() groupsig.Kind { return groupsig.KindJoinChallenge }

// Bytes returns the serialization u‖v.
func (ch *JoinChallenge) Bytes() []byte {
	return append(ch.U.Bytes(), ch.V.Bytes()...)
}

// DecodeJoinChallenge decodes the output of JoinChallenge.Bytes.
func DecodeJoinChallenge(raw []byte) (*JoinChallenge, error) {
	r := newReader(raw)
	ch := &JoinChallenge{U: r.scalar(), V: r.scalar()}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return ch, nil
}

// joinWitnesses fixes the response order in the commitment's binary form.
var joinWitnesses = []string{"x", "u", "v", "rp"}

func (m *JoinCommitment) SchemeName() string  { return Name }
func (m *JoinCommitment) Kind() groupsig.Kind { return groupsig.KindJoinCommitment }

// Bytes returns the serialization I‖pi‖c‖s_x‖s_u‖s_v‖s_rp.
func (m *JoinCommitment) Bytes() []byte {
	raw := append(m.I.Bytes(), m.Pi.Bytes()...)
	raw = append(raw, m.Proof.C.Bytes()...)
	for _, name := range joinWitnesses {
		raw = append(raw, m.Proof.S[name].Bytes()...)
	}
	return raw
}

// DecodeJoinCommitment decodes the output of JoinCommitment.Bytes.
func DecodeJoinCommitment(raw []byte) (*JoinCommitment, error) {
	r := newReader(raw)
	m := &JoinCommitment{
		I:  r.element(algebra.G1),
		Pi: r.element(algebra.G1),
	}
	proof := &spk.Proof{C: r.scalar(), S: make(map[string]*algebra.Scalar, len(joinWitnesses))}
	for _, name := range joinWitnesses {
		proof.S[name] = r.scalar()
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	m.Proof = proof
	return m, nil
}

func (cr *JoinCredential) SchemeName() string  { return Name }
func (cr *JoinCredential) Kind() groupsig.Kind { return groupsig.KindJoinCredential }

// Bytes returns the serialization t‖A.
func (cr *JoinCredential) Bytes() []byte {
	return append(cr.T.Bytes(), cr.A.Bytes()...)
}

// DecodeJoinCredential decodes the output of JoinCredential.Bytes.
func DecodeJoinCredential(raw []byte) (*JoinCredential, error) {
	r := newReader(raw)
	cr := &JoinCredential{T: r.scalar(), A: r.element(algebra.G1)}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return cr, nil
}

// joinStatement states what a commitment proves: pi is a commitment to
// some known x, and the same x together with the challenge values opens
// I, so pi was necessarily derived from this conversation's challenge.
func joinStatement(gk *GroupKey, i, pi *algebra.Element) spk.Statement {
	g1 := algebra.Generator(algebra.G1)
	return spk.Statement{
		{Y: pi, Terms: []spk.Term{{Witness: "x", Base: g1}}},
		{Y: pi, Terms: []spk.Term{
			{Witness: "u", Base: i},
			{Witness: "v", Base: g1},
			{Witness: "rp", Base: gk.Q},
		}},
	}
}

// joinBinding folds the challenge into the proof. The verifier supplies
// the u and v it sent itself, so a commitment lifted from another
// conversation does not verify.
func joinBinding(pi *algebra.Element, u, v *algebra.Scalar) []byte {
	raw := append(pi.Bytes(), u.Bytes()...)
	return append(raw, v.Bytes()...)
}

// verifyCommitment checks the commitment proof under the challenge values
// the verifier believes were used.
func verifyCommitment(gk *GroupKey, c *JoinCommitment, u, v *algebra.Scalar) bool {
	if c == nil || c.I == nil || c.Pi == nil || c.Proof == nil {
		return false
	}
	if c.I.Group() != algebra.G1 || c.Pi.Group() != algebra.G1 {
		return false
	}
	return spk.Verify(joinStatement(gk, c.I, c.Pi), c.Proof, joinBinding(c.Pi, u, v))
}

// ManagerJoin runs the issuing side of one join conversation. It retains
// the challenge it sent so Issue can hold the commitment to it. A session
// admits at most one member; start a new session per candidate.
type ManagerJoin struct {
	gk    *GroupKey
	mk    *ManagerKey
	gml   *groupsig.GML
	phase joinPhase

	u, v *algebra.Scalar
}

// NewManagerJoin starts a join conversation on the manager side. Members
// admitted by the session are recorded in gml.
func NewManagerJoin(gk *GroupKey, mk *ManagerKey, gml *groupsig.GML) *ManagerJoin {
	return &ManagerJoin{gk: gk, mk: mk, gml: gml}
}

// Challenge draws the opening challenge of the conversation.
func (j *ManagerJoin) Challenge() (*JoinChallenge, error) {
	if j.phase != phaseInit {
		return nil, ErrJoinPhase
	}
	j.u, j.v = algebra.RandomScalar(), algebra.RandomScalar()
	j.phase = phaseChallenged
	return &JoinChallenge{U: j.u, V: j.v}, nil
}

// Issue verifies the candidate's commitment against the challenge this
// session sent and certifies the member, recording it in the GML.
func (j *ManagerJoin) Issue(c *JoinCommitment) (*JoinCredential, error) {
	if j.phase != phaseChallenged {
		return nil, ErrJoinPhase
	}
	if !verifyCommitment(j.gk, c, j.u, j.v) {
		j.phase = phaseFailed
		groupsig.Logger.Warn("cpy06: rejecting join commitment with invalid proof")
		return nil, ErrJoinProof
	}

	// gamma+t is inverted below, so resample the rare t that cancels it.
	t := algebra.RandomScalar()
	for j.mk.Gamma.Add(t).IsZero() {
		t = algebra.RandomScalar()
	}
	a := c.Pi.Add(j.gk.Q).Mul(j.mk.Gamma.Add(t).Inv())

	id := memberID(a, c.Pi)
	if err := j.gml.Append(id, &groupsig.Entry{
		Credential: a.Bytes(),
		Commitment: c.Pi.Bytes(),
	}); err != nil {
		j.phase = phaseFailed
		return nil, err
	}

	j.phase = phaseDone
	j.u, j.v = nil, nil
	groupsig.Logger.Trace("cpy06: admitted member ", id)
	return &JoinCredential{T: t, A: a}, nil
}

// MemberJoin runs the candidate side of one join conversation.
type MemberJoin struct {
	gk    *GroupKey
	phase joinPhase

	x   *algebra.Scalar
	key *MemberKey
}

// NewMemberJoin starts a join conversation on the candidate side.
func NewMemberJoin(gk *GroupKey) *MemberJoin {
	return &MemberJoin{gk: gk}
}

// Commit answers the manager's challenge. The member key x = u*y + v is
// fixed here and never leaves the candidate; only the commitment pi and
// the proof of its construction go back.
func (j *MemberJoin) Commit(ch *JoinChallenge) (*JoinCommitment, error) {
	if j.phase != phaseInit {
		return nil, ErrJoinPhase
	}
	if ch == nil || ch.U == nil || ch.V == nil {
		return nil, ErrJoinProof
	}

	g1 := algebra.Generator(algebra.G1)
	y, r := algebra.RandomScalar(), algebra.RandomScalar()
	i := g1.Mul(y).Add(j.gk.Q.Mul(r))
	x := ch.U.Mul(y).Add(ch.V)
	pi := g1.Mul(x)

	proof, err := spk.Prove(joinStatement(j.gk, i, pi), spk.Witnesses{
		"x":  x,
		"u":  ch.U,
		"v":  ch.V,
		"rp": ch.U.Mul(r).Neg(),
	}, joinBinding(pi, ch.U, ch.V))
	if err != nil {
		return nil, err
	}

	j.x = x
	j.phase = phaseCommitted
	return &JoinCommitment{I: i, Pi: pi, Proof: proof}, nil
}

// Finish accepts the issued credential after checking it certifies this
// session's member key, and assembles the member key material.
func (j *MemberJoin) Finish(cr *JoinCredential) (*MemberKey, error) {
	if j.phase != phaseCommitted {
		return nil, ErrJoinPhase
	}
	if cr == nil || cr.T == nil || cr.A == nil || cr.A.Group() != algebra.G1 {
		j.phase = phaseFailed
		return nil, ErrCredential
	}

	g1, g2 := algebra.Generator(algebra.G1), algebra.Generator(algebra.G2)
	lhs := algebra.Pair(cr.A, g2.Mul(cr.T).Add(j.gk.R))
	rhs := algebra.Pair(g1.Mul(j.x).Add(j.gk.Q), g2)
	if !lhs.Equal(rhs) {
		j.phase = phaseFailed
		return nil, ErrCredential
	}

	j.key = &MemberKey{X: j.x, T: cr.T, A: cr.A}
	j.phase = phaseDone
	return j.key, nil
}

// Key returns the member key once the conversation has completed.
func (j *MemberJoin) Key() (*MemberKey, error) {
	if j.phase != phaseDone {
		return nil, ErrJoinPhase
	}
	return j.key, nil
}
