package signed

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// test struct for signing, verifying and (un)marshaling
type record struct {
	Name    string
	Entries map[string][]byte
	Child   *record // allow recursion
}

func TestSignedRoundTrip(t *testing.T) {
	sk, err := GenerateKey()
	require.NoError(t, err)

	var (
		before = record{
			Name:    "crl",
			Entries: map[string][]byte{"a": {1, 2, 3}, "b": {4}},
			Child:   &record{Name: "inner"},
		}
		after record
	)

	signedmsg, err := MarshalSign(sk, before)
	require.NoError(t, err)

	require.NoError(t, UnmarshalVerify(&sk.PublicKey, signedmsg, &after))
	require.True(t, reflect.DeepEqual(before, after))
}

func TestSignedRejectsTamper(t *testing.T) {
	sk, err := GenerateKey()
	require.NoError(t, err)
	other, err := GenerateKey()
	require.NoError(t, err)

	signedmsg, err := MarshalSign(sk, record{Name: "gml"})
	require.NoError(t, err)

	var dst record
	assert.Error(t, UnmarshalVerify(&other.PublicKey, signedmsg, &dst),
		"message verified under the wrong key")

	flipped := append(Message{}, signedmsg...)
	flipped[len(flipped)/2] ^= 0x01
	assert.Error(t, UnmarshalVerify(&sk.PublicKey, flipped, &dst),
		"tampered message verified")
}

func TestKeyRoundTrip(t *testing.T) {
	sk, err := GenerateKey()
	require.NoError(t, err)

	skRaw, err := MarshalPrivateKey(sk)
	require.NoError(t, err)
	skBack, err := UnmarshalPrivateKey(skRaw)
	require.NoError(t, err)
	require.True(t, sk.Equal(skBack))

	pkRaw, err := MarshalPublicKey(&sk.PublicKey)
	require.NoError(t, err)
	pkBack, err := UnmarshalPublicKey(pkRaw)
	require.NoError(t, err)
	require.True(t, sk.PublicKey.Equal(pkBack))
}
