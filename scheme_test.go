package groupsig

import (
	"testing"

	"github.com/go-errors/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScheme exercises the envelope and registry plumbing without any
// cryptography. Only Decode does real work.
type (
	stubScheme struct{}

	stubObject struct {
		kind Kind
		raw  []byte
	}
)

func (stubObject) SchemeName() string { return "stub" }
func (o stubObject) Kind() Kind       { return o.kind }
func (o stubObject) Bytes() []byte    { return o.raw }

func (stubScheme) Name() string            { return "stub" }
func (stubScheme) Setup() (*KeySet, error) { return nil, errors.New("stub") }

func (stubScheme) NewManagerJoin(GroupKey, ManagerKey, *GML) (JoinSession, error) {
	return nil, errors.New("stub")
}

func (stubScheme) NewMemberJoin(GroupKey) (MemberJoin, error) {
	return nil, errors.New("stub")
}

func (stubScheme) Sign([]byte, GroupKey, MemberKey) (Signature, error) {
	return nil, errors.New("stub")
}

func (stubScheme) Verify([]byte, GroupKey, Signature) bool { return false }

func (stubScheme) Decode(kind Kind, raw []byte) (Object, error) {
	return stubObject{kind: kind, raw: raw}, nil
}

func init() {
	Register(stubScheme{})
}

func TestSchemeRegistry(t *testing.T) {
	s, err := New("stub")
	require.NoError(t, err)
	assert.Equal(t, "stub", s.Name())

	_, err = New("no-such-scheme")
	assert.ErrorIs(t, err, ErrUnknownScheme)

	assert.Contains(t, Schemes(), "stub")

	assert.Panics(t, func() { Register(stubScheme{}) },
		"registering the same scheme name twice must panic")
}
