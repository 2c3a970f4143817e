package cpy06

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaron1924/groupsig"
)

func TestSchemeIsRegistered(t *testing.T) {
	s, err := groupsig.New(Name)
	require.NoError(t, err)
	assert.Equal(t, Name, s.Name())
	assert.Contains(t, groupsig.Schemes(), Name)

	_, isOpener := s.(groupsig.Opener)
	_, isRevealer := s.(groupsig.Revealer)
	_, isTracer := s.(groupsig.Tracer)
	assert.True(t, isOpener)
	assert.True(t, isRevealer)
	assert.True(t, isTracer)
}

func TestKeySetShape(t *testing.T) {
	s, err := groupsig.New(Name)
	require.NoError(t, err)
	ks, err := s.Setup()
	require.NoError(t, err)

	assert.IsType(t, &GroupKey{}, ks.Group)
	require.Len(t, ks.Managers, 2)
	assert.IsType(t, &ManagerKey{}, ks.Managers[0])
	assert.IsType(t, &RevocationManagerKey{}, ks.Managers[1])
	assert.Equal(t, groupsig.KindManagerKey, ks.Managers[0].Kind())
	assert.Equal(t, groupsig.KindRevocationKey, ks.Managers[1].Kind())
}

// foreignKey satisfies all the key interfaces but belongs to no registered
// scheme.
type foreignKey struct{}

func (foreignKey) SchemeName() string    { return "elsewhere" }
func (foreignKey) Kind() groupsig.Kind   { return groupsig.KindGroupKey }
func (foreignKey) Bytes() []byte         { return nil }
func (foreignKey) ID() groupsig.MemberID { return "" }

func TestForeignObjectsRejected(t *testing.T) {
	s, err := groupsig.New(Name)
	require.NoError(t, err)

	gk, mk, rk := newGroup(t)
	gml := groupsig.NewGML(groupsig.NewMemStore())
	key := admit(t, gk, mk, gml)
	sig, err := Sign([]byte("msg"), gk, key)
	require.NoError(t, err)

	_, err = s.Sign([]byte("msg"), foreignKey{}, key)
	assert.ErrorIs(t, err, groupsig.ErrSchemeMismatch)
	_, err = s.Sign([]byte("msg"), gk, foreignKey{})
	assert.ErrorIs(t, err, groupsig.ErrSchemeMismatch)
	assert.False(t, s.Verify([]byte("msg"), foreignKey{}, sig))

	_, err = s.NewManagerJoin(foreignKey{}, mk, gml)
	assert.ErrorIs(t, err, groupsig.ErrSchemeMismatch)
	_, err = s.NewMemberJoin(foreignKey{})
	assert.ErrorIs(t, err, groupsig.ErrSchemeMismatch)

	// Admission is the group manager's job; the revocation manager's key
	// cannot stand in.
	_, err = s.NewManagerJoin(gk, rk, gml)
	assert.ErrorIs(t, err, groupsig.ErrSchemeMismatch)

	opener := s.(groupsig.Opener)
	_, err = opener.OpenShare(sig, foreignKey{})
	assert.ErrorIs(t, err, groupsig.ErrSchemeMismatch)
	_, err = opener.Open(sig, gml, foreignKey{}, foreignKey{})
	assert.ErrorIs(t, err, groupsig.ErrSchemeMismatch)
}
