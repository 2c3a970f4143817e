package cpy06

import (
	"github.com/go-errors/errors"

	"github.com/Aaron1924/groupsig"
)

// scheme adapts the package's concrete API to the scheme-agnostic
// interfaces of the parent package.
type scheme struct{}

var (
	_ groupsig.Scheme   = scheme{}
	_ groupsig.Opener   = scheme{}
	_ groupsig.Revealer = scheme{}
	_ groupsig.Tracer   = scheme{}
)

func init() {
	groupsig.Register(scheme{})
}

func (scheme) Name() string { return Name }

func (scheme) Setup() (*groupsig.KeySet, error) {
	gk, mk, rk, err := Setup()
	if err != nil {
		return nil, err
	}
	return &groupsig.KeySet{
		Group:    gk,
		Managers: []groupsig.ManagerKey{mk, rk},
	}, nil
}

func groupKey(k groupsig.GroupKey) (*GroupKey, error) {
	gk, ok := k.(*GroupKey)
	if !ok {
		return nil, errors.Errorf("%w: foreign group key %T", groupsig.ErrSchemeMismatch, k)
	}
	return gk, nil
}

func (scheme) NewManagerJoin(k groupsig.GroupKey, m groupsig.ManagerKey, gml *groupsig.GML) (groupsig.JoinSession, error) {
	gk, err := groupKey(k)
	if err != nil {
		return nil, err
	}
	mk, ok := m.(*ManagerKey)
	if !ok {
		return nil, errors.Errorf("%w: admission needs the group manager key, got %T", groupsig.ErrSchemeMismatch, m)
	}
	return &managerSession{j: NewManagerJoin(gk, mk, gml)}, nil
}

func (scheme) NewMemberJoin(k groupsig.GroupKey) (groupsig.MemberJoin, error) {
	gk, err := groupKey(k)
	if err != nil {
		return nil, err
	}
	return &memberSession{j: NewMemberJoin(gk)}, nil
}

func (scheme) Sign(msg []byte, k groupsig.GroupKey, m groupsig.MemberKey) (groupsig.Signature, error) {
	gk, err := groupKey(k)
	if err != nil {
		return nil, err
	}
	key, ok := m.(*MemberKey)
	if !ok {
		return nil, errors.Errorf("%w: foreign member key %T", groupsig.ErrSchemeMismatch, m)
	}
	sig, err := Sign(msg, gk, key)
	if err != nil {
		return nil, err
	}
	return sig, nil
}

func (scheme) Verify(msg []byte, k groupsig.GroupKey, s groupsig.Signature) bool {
	gk, ok := k.(*GroupKey)
	sig, sok := s.(*Signature)
	return ok && sok && Verify(msg, gk, sig)
}

func (scheme) OpenShare(s groupsig.Signature, authority groupsig.ManagerKey) (groupsig.OpenShare, error) {
	sig, ok := s.(*Signature)
	if !ok {
		return nil, errors.Errorf("%w: foreign signature %T", groupsig.ErrSchemeMismatch, s)
	}
	switch mk := authority.(type) {
	case *ManagerKey:
		return mk.OpenShare(sig)
	case *RevocationManagerKey:
		return mk.OpenShare(sig)
	}
	return nil, errors.Errorf("%w: foreign authority key %T", groupsig.ErrSchemeMismatch, authority)
}

func (scheme) Open(s groupsig.Signature, gml *groupsig.GML, shares ...groupsig.OpenShare) (groupsig.MemberID, error) {
	sig, ok := s.(*Signature)
	if !ok {
		return "", errors.Errorf("%w: foreign signature %T", groupsig.ErrSchemeMismatch, s)
	}
	own := make([]*OpenShare, len(shares))
	for i, share := range shares {
		if own[i], ok = share.(*OpenShare); !ok {
			return "", errors.Errorf("%w: foreign open share %T", groupsig.ErrSchemeMismatch, share)
		}
	}
	return Open(sig, gml, own...)
}

func (scheme) Reveal(id groupsig.MemberID, gml *groupsig.GML, crl *groupsig.CRL) error {
	return Reveal(id, gml, crl)
}

func (scheme) Trace(s groupsig.Signature, crl *groupsig.CRL) (bool, error) {
	sig, ok := s.(*Signature)
	if !ok {
		return false, errors.Errorf("%w: foreign signature %T", groupsig.ErrSchemeMismatch, s)
	}
	return Trace(sig, crl)
}

func (scheme) Decode(kind groupsig.Kind, raw []byte) (groupsig.Object, error) {
	switch kind {
	case groupsig.KindGroupKey:
		return DecodeGroupKey(raw)
	case groupsig.KindManagerKey:
		return DecodeManagerKey(raw)
	case groupsig.KindRevocationKey:
		return DecodeRevocationManagerKey(raw)
	case groupsig.KindMemberKey:
		return DecodeMemberKey(raw)
	case groupsig.KindSignature:
		return DecodeSignature(raw)
	case groupsig.KindOpenShare:
		return DecodeOpenShare(raw)
	case groupsig.KindJoinChallenge:
		return DecodeJoinChallenge(raw)
	case groupsig.KindJoinCommitment:
		return DecodeJoinCommitment(raw)
	case groupsig.KindJoinCredential:
		return DecodeJoinCredential(raw)
	}
	return nil, errors.Errorf("%w: %q", groupsig.ErrKindMismatch, kind)
}

// managerSession frames the authority side of a join conversation in
// envelopes for transport through the generic interface.
type managerSession struct {
	j *ManagerJoin
}

func (s *managerSession) Advance(in []byte) ([]byte, bool, error) {
	if in == nil {
		ch, err := s.j.Challenge()
		if err != nil {
			return nil, false, err
		}
		out, err := groupsig.Seal(ch)
		return out, false, err
	}

	obj, err := groupsig.Unseal(in, Name, groupsig.KindJoinCommitment)
	if err != nil {
		return nil, false, err
	}
	cr, err := s.j.Issue(obj.(*JoinCommitment))
	if err != nil {
		return nil, false, err
	}
	out, err := groupsig.Seal(cr)
	return out, true, err
}

// memberSession frames the candidate side of a join conversation.
type memberSession struct {
	j *MemberJoin
}

func (s *memberSession) Advance(in []byte) ([]byte, bool, error) {
	switch s.j.phase {
	case phaseInit:
		obj, err := groupsig.Unseal(in, Name, groupsig.KindJoinChallenge)
		if err != nil {
			return nil, false, err
		}
		m, err := s.j.Commit(obj.(*JoinChallenge))
		if err != nil {
			return nil, false, err
		}
		out, err := groupsig.Seal(m)
		return out, false, err
	case phaseCommitted:
		obj, err := groupsig.Unseal(in, Name, groupsig.KindJoinCredential)
		if err != nil {
			return nil, false, err
		}
		if _, err := s.j.Finish(obj.(*JoinCredential)); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}
	return nil, false, ErrJoinPhase
}

func (s *memberSession) Key() (groupsig.MemberKey, error) {
	key, err := s.j.Key()
	if err != nil {
		return nil, err
	}
	return key, nil
}
