package cpy06

import (
	"github.com/go-errors/errors"

	"github.com/Aaron1924/groupsig/algebra"
	"github.com/Aaron1924/groupsig/spk"
)

// Claim proves that the holder of key produced sig, without involving any
// authority. The proof shows knowledge of the x relating T5 to T4 and is
// bound to the signature bytes, so it claims exactly this signature.
func Claim(sig *Signature, key *MemberKey) (*spk.Proof, error) {
	if !sig.wellFormed() {
		return nil, errors.New("cpy06: malformed signature")
	}
	if key == nil || key.X == nil {
		return nil, errors.New("cpy06: incomplete member key")
	}
	base := algebra.Pair(algebra.Generator(algebra.G1), sig.T4)
	return spk.ProveDlog(sig.T5, base, key.X, sig.Bytes())
}

// VerifyClaim reports whether proof is a valid claim of authorship of sig.
func VerifyClaim(sig *Signature, proof *spk.Proof) bool {
	if !sig.wellFormed() || proof == nil {
		return false
	}
	base := algebra.Pair(algebra.Generator(algebra.G1), sig.T4)
	return spk.VerifyDlog(sig.T5, base, proof, sig.Bytes())
}
