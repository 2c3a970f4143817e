package groupsig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaron1924/groupsig"
	"github.com/Aaron1924/groupsig/cpy06"
)

// admitMember drives a complete admission over enveloped messages, the way
// the two parties would talk over a network.
func admitMember(t *testing.T, s groupsig.Scheme, ks *groupsig.KeySet, gml *groupsig.GML) groupsig.MemberKey {
	t.Helper()

	mgr, err := s.NewManagerJoin(ks.Group, ks.Managers[0], gml)
	require.NoError(t, err)
	mem, err := s.NewMemberJoin(ks.Group)
	require.NoError(t, err)

	challenge, done, err := mgr.Advance(nil)
	require.NoError(t, err)
	require.False(t, done)

	commitment, done, err := mem.Advance(challenge)
	require.NoError(t, err)
	require.False(t, done)

	credential, done, err := mgr.Advance(commitment)
	require.NoError(t, err)
	require.True(t, done)

	out, done, err := mem.Advance(credential)
	require.NoError(t, err)
	require.True(t, done)
	require.Nil(t, out)

	key, err := mem.Key()
	require.NoError(t, err)
	return key
}

func TestGroupSignatureLifecycle(t *testing.T) {
	s, err := groupsig.New(cpy06.Name)
	require.NoError(t, err)

	ks, err := s.Setup()
	require.NoError(t, err)
	gml := groupsig.NewGML(groupsig.NewMemStore())
	crl := groupsig.NewCRL(groupsig.NewMemStore())

	alice := admitMember(t, s, ks, gml)
	bob := admitMember(t, s, ks, gml)
	assert.NotEqual(t, alice.ID(), bob.ID())

	// Sign and verify through the envelope a relying party would receive.
	msg := []byte("ballot 42: yes")
	sig, err := s.Sign(msg, ks.Group, alice)
	require.NoError(t, err)
	sealed, err := groupsig.Seal(sig)
	require.NoError(t, err)

	schemeName, kind, err := groupsig.Peek(sealed)
	require.NoError(t, err)
	assert.Equal(t, cpy06.Name, schemeName)
	assert.Equal(t, groupsig.KindSignature, kind)

	obj, err := groupsig.Unseal(sealed, cpy06.Name, groupsig.KindSignature)
	require.NoError(t, err)
	received := obj.(groupsig.Signature)
	assert.True(t, s.Verify(msg, ks.Group, received))
	assert.False(t, s.Verify([]byte("ballot 42: no"), ks.Group, received))

	// The verifier learns nothing about the signer; opening takes a share
	// from each authority.
	opener, ok := s.(groupsig.Opener)
	require.True(t, ok)
	mgrShare, err := opener.OpenShare(received, ks.Managers[0])
	require.NoError(t, err)
	revShare, err := opener.OpenShare(received, ks.Managers[1])
	require.NoError(t, err)
	id, err := opener.Open(received, gml, mgrShare, revShare)
	require.NoError(t, err)
	assert.Equal(t, alice.ID(), id)

	// Revealing the opened member makes its signatures traceable, old and
	// new, while bob stays anonymous.
	revealer, ok := s.(groupsig.Revealer)
	require.True(t, ok)
	require.NoError(t, revealer.Reveal(id, gml, crl))

	tracer, ok := s.(groupsig.Tracer)
	require.True(t, ok)
	revoked, err := tracer.Trace(received, crl)
	require.NoError(t, err)
	assert.True(t, revoked)

	later, err := s.Sign([]byte("still alice"), ks.Group, alice)
	require.NoError(t, err)
	revoked, err = tracer.Trace(later, crl)
	require.NoError(t, err)
	assert.True(t, revoked)

	bobSig, err := s.Sign(msg, ks.Group, bob)
	require.NoError(t, err)
	revoked, err = tracer.Trace(bobSig, crl)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemberKeyTravelsInEnvelope(t *testing.T) {
	s, err := groupsig.New(cpy06.Name)
	require.NoError(t, err)
	ks, err := s.Setup()
	require.NoError(t, err)
	gml := groupsig.NewGML(groupsig.NewMemStore())
	key := admitMember(t, s, ks, gml)

	sealed, err := groupsig.Seal(key)
	require.NoError(t, err)
	obj, err := groupsig.Unseal(sealed, cpy06.Name, groupsig.KindMemberKey)
	require.NoError(t, err)

	restored, ok := obj.(groupsig.MemberKey)
	require.True(t, ok)
	assert.Equal(t, key.ID(), restored.ID())

	sig, err := s.Sign([]byte("restored key"), ks.Group, restored)
	require.NoError(t, err)
	assert.True(t, s.Verify([]byte("restored key"), ks.Group, sig))
}

func TestJoinSessionRejectsWrongMessage(t *testing.T) {
	s, err := groupsig.New(cpy06.Name)
	require.NoError(t, err)
	ks, err := s.Setup()
	require.NoError(t, err)
	gml := groupsig.NewGML(groupsig.NewMemStore())

	mgr, err := s.NewManagerJoin(ks.Group, ks.Managers[0], gml)
	require.NoError(t, err)
	mem, err := s.NewMemberJoin(ks.Group)
	require.NoError(t, err)

	challenge, _, err := mgr.Advance(nil)
	require.NoError(t, err)

	// Feeding the challenge back to the manager, or a commitment to a
	// fresh member, trips the kind check.
	_, _, err = mgr.Advance(challenge)
	assert.ErrorIs(t, err, groupsig.ErrKindMismatch)

	commitment, _, err := mem.Advance(challenge)
	require.NoError(t, err)
	other, err := s.NewMemberJoin(ks.Group)
	require.NoError(t, err)
	_, _, err = other.Advance(commitment)
	assert.ErrorIs(t, err, groupsig.ErrKindMismatch)

	_, _, err = mem.Advance([]byte("not an envelope"))
	assert.Error(t, err)
}
