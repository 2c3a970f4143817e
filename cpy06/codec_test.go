package cpy06

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaron1924/groupsig"
)

func TestBinaryCodecs(t *testing.T) {
	gk, mk, rk := newGroup(t)
	gml := groupsig.NewGML(groupsig.NewMemStore())
	key := admit(t, gk, mk, gml)

	msg := []byte("serialize me")
	sig, err := Sign(msg, gk, key)
	require.NoError(t, err)
	share, err := mk.OpenShare(sig)
	require.NoError(t, err)
	revShare, err := rk.OpenShare(sig)
	require.NoError(t, err)

	// One extra conversation supplies the three join messages.
	mgr := NewManagerJoin(gk, mk, gml)
	mem := NewMemberJoin(gk)
	ch, err := mgr.Challenge()
	require.NoError(t, err)
	com, err := mem.Commit(ch)
	require.NoError(t, err)
	cred, err := mgr.Issue(com)
	require.NoError(t, err)

	for _, obj := range []groupsig.Object{gk, mk, rk, key, sig, share, revShare, ch, com, cred} {
		kind := obj.Kind()
		raw := obj.Bytes()

		dec, err := scheme{}.Decode(kind, raw)
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, raw, dec.Bytes(), "kind %s", kind)
		assert.Equal(t, Name, dec.SchemeName())
		assert.Equal(t, kind, dec.Kind())

		_, err = scheme{}.Decode(kind, raw[:len(raw)-1])
		assert.Error(t, err, "kind %s accepted truncated input", kind)
		_, err = scheme{}.Decode(kind, append(append([]byte(nil), raw...), 0))
		assert.Error(t, err, "kind %s accepted trailing bytes", kind)
	}

	_, err = scheme{}.Decode(groupsig.Kind("no-such-kind"), nil)
	assert.ErrorIs(t, err, groupsig.ErrKindMismatch)
}

func TestDecodedGroupKeyIsUsable(t *testing.T) {
	gk, mk, _ := newGroup(t)
	gml := groupsig.NewGML(groupsig.NewMemStore())
	key := admit(t, gk, mk, gml)

	msg := []byte("verified under a decoded key")
	sig, err := Sign(msg, gk, key)
	require.NoError(t, err)

	// Both decode paths must rebuild the pairing cache.
	dec, err := DecodeGroupKey(gk.Bytes())
	require.NoError(t, err)
	assert.True(t, Verify(msg, dec, sig))

	text, err := json.Marshal(gk)
	require.NoError(t, err)
	var fromJSON GroupKey
	require.NoError(t, json.Unmarshal(text, &fromJSON))
	assert.True(t, Verify(msg, &fromJSON, sig))
}

func TestMemberIDDerivation(t *testing.T) {
	gk, mk, _ := newGroup(t)
	gml := groupsig.NewGML(groupsig.NewMemStore())
	key := admit(t, gk, mk, gml)

	decoded, err := DecodeMemberKey(key.Bytes())
	require.NoError(t, err)
	assert.Equal(t, key.ID(), decoded.ID())

	// IDs are multihashes in base58 text form.
	assert.NotEmpty(t, key.ID())
	assert.Equal(t, uint8('Q'), key.ID()[0])
}

func TestSignatureJSON(t *testing.T) {
	gk, mk, _ := newGroup(t)
	gml := groupsig.NewGML(groupsig.NewMemStore())
	key := admit(t, gk, mk, gml)

	msg := []byte("json form")
	sig, err := Sign(msg, gk, key)
	require.NoError(t, err)

	text, err := json.Marshal(sig)
	require.NoError(t, err)
	var back Signature
	require.NoError(t, json.Unmarshal(text, &back))
	assert.True(t, Verify(msg, gk, &back))
	assert.Equal(t, sig.Bytes(), back.Bytes())
}
