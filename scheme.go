package groupsig

import (
	"sort"
	"sync"

	"github.com/go-errors/errors"
)

// Kind names the type of a serialized object inside an envelope.
type Kind string

const (
	KindGroupKey       Kind = "group-key"
	KindManagerKey     Kind = "manager-key"
	KindRevocationKey  Kind = "revocation-key"
	KindMemberKey      Kind = "member-key"
	KindSignature      Kind = "signature"
	KindOpenShare      Kind = "open-share"
	KindJoinChallenge  Kind = "join-challenge"
	KindJoinCommitment Kind = "join-commitment"
	KindJoinCredential Kind = "join-credential"
)

// MemberID is the discriminator under which a member is listed in the GML
// and CRL: a multihash of its credential material in base58 text form.
// Members can compute their own ID from their member key; nobody can
// compute it from a signature without opening it first.
type MemberID string

type (
	// Object is any key, signature or protocol message that serializes to
	// the scheme's fixed binary layout and travels in a tagged envelope.
	Object interface {
		// SchemeName returns the name of the scheme this object belongs to.
		SchemeName() string
		// Kind returns the object's envelope kind tag.
		Kind() Kind
		// Bytes returns the fixed-width binary serialization.
		Bytes() []byte
	}

	// GroupKey is the public key of a group, shared by all parties.
	GroupKey interface {
		Object
	}

	// ManagerKey is the secret key of one group authority. Schemes with
	// split trust have several, distinguished by their Kind.
	ManagerKey interface {
		Object
	}

	// MemberKey is one member's secret signing key.
	MemberKey interface {
		Object
		// ID returns the discriminator this member is listed under.
		ID() MemberID
	}

	// Signature is an unlinkable group signature over some message.
	Signature interface {
		Object
	}

	// OpenShare is one authority's partial result towards de-anonymizing a
	// signature. A single share on its own identifies nobody.
	OpenShare interface {
		Object
	}
)

// KeySet is the result of running a scheme's setup: the group public key
// and the authority keys, in scheme-defined order.
type KeySet struct {
	Group    GroupKey
	Managers []ManagerKey
}

// JoinSession is one side of a single member admission. Sessions hold the
// state of one conversation and are not safe for concurrent use; run one
// session per joining member. Advance consumes the peer's latest enveloped
// message (nil where the protocol starts with this side) and produces the
// next enveloped message to send, until done. A message whose kind does not
// match the session's current phase fails with an error and aborts the
// session.
type JoinSession interface {
	Advance(in []byte) (out []byte, done bool, err error)
}

// MemberJoin is the joining member's side of an admission.
type MemberJoin interface {
	JoinSession
	// Key returns the member key established by the session once it has
	// completed successfully.
	Key() (MemberKey, error)
}

// Scheme is a group-signature scheme. Implementations are stateless;
// everything an operation needs arrives through its parameters. Schemes
// whose design supports it additionally implement Opener, Revealer,
// Tracer, Linker or Blinder.
type Scheme interface {
	// Name returns the scheme's registered name.
	Name() string

	// Setup generates a fresh group: the group public key and the
	// authority keys.
	Setup() (*KeySet, error)

	// NewManagerJoin starts the authority side of one member admission.
	// Completed admissions are recorded in gml.
	NewManagerJoin(gk GroupKey, mk ManagerKey, gml *GML) (JoinSession, error)

	// NewMemberJoin starts the member side of one admission.
	NewMemberJoin(gk GroupKey) (MemberJoin, error)

	// Sign produces a group signature over msg.
	Sign(msg []byte, gk GroupKey, key MemberKey) (Signature, error)

	// Verify reports whether sig is a valid group signature over msg.
	Verify(msg []byte, gk GroupKey, sig Signature) bool

	// Decode deserializes the binary form of one of the scheme's objects.
	Decode(kind Kind, raw []byte) (Object, error)
}

// Opener is implemented by schemes that can de-anonymize signatures.
// Opening is split across the group's authorities: each produces a share
// from its own key, and only the full set of shares resolves an identity.
type Opener interface {
	// OpenShare computes the partial opening of sig under one authority key.
	OpenShare(sig Signature, authority ManagerKey) (OpenShare, error)

	// Open combines one share from every authority and looks the resulting
	// credential up in gml. It returns ErrMemberNotFound when the signer is
	// not listed.
	Open(sig Signature, gml *GML, shares ...OpenShare) (MemberID, error)
}

// Revealer is implemented by schemes that can revoke a member by
// publishing its tracing trapdoor.
type Revealer interface {
	// Reveal copies the member's registry entry from gml to crl. The GML
	// keeps its entry; revealing twice is idempotent.
	Reveal(id MemberID, gml *GML, crl *CRL) error
}

// Tracer is implemented by schemes whose signatures can be tested against
// a revocation list without opening them.
type Tracer interface {
	// Trace reports whether sig was produced by any member listed in crl.
	Trace(sig Signature, crl *CRL) (bool, error)
}

// Linker is implemented by schemes that can prove two signatures share a
// signer without identifying them. No scheme in this module implements it.
type Linker interface {
	Link(gk GroupKey, key MemberKey, msgs [][]byte, sigs []Signature) (Object, error)
	VerifyLink(gk GroupKey, proof Object, msgs [][]byte, sigs []Signature) bool
}

// Blinder is implemented by schemes supporting blinded conversion of
// signatures for third-party auditing. No scheme in this module implements
// it.
type Blinder interface {
	Blind(gk GroupKey, sig Signature) (Object, error)
	Convert(gk GroupKey, mk ManagerKey, blinded []Object) ([]Object, error)
	Unblind(blinded Object) (Object, error)
}

var (
	schemesMu sync.RWMutex
	schemes   = make(map[string]Scheme)
)

// Register makes a scheme available to New under its own name. It is
// intended to be called from the init function of the package implementing
// the scheme, so that the set of available schemes is fixed by the import
// graph. Registering the same name twice panics.
func Register(s Scheme) {
	schemesMu.Lock()
	defer schemesMu.Unlock()
	name := s.Name()
	if _, dup := schemes[name]; dup {
		panic("groupsig: scheme " + name + " registered twice")
	}
	schemes[name] = s
}

// New returns the scheme registered under name, or ErrUnknownScheme.
func New(name string) (Scheme, error) {
	schemesMu.RLock()
	defer schemesMu.RUnlock()
	s, ok := schemes[name]
	if !ok {
		return nil, errors.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	return s, nil
}

// Schemes returns the names of all registered schemes, sorted.
func Schemes() []string {
	schemesMu.RLock()
	defer schemesMu.RUnlock()
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
