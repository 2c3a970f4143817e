// Package groupsig implements group signatures: members of a group sign
// messages anonymously on the group's behalf, designated authorities can
// de-anonymize or revoke individual members, and verifiers need nothing
// beyond the group public key.
//
// The package itself is scheme-agnostic. It defines the object model (keys,
// signatures, join messages, open shares), the registries a group manager
// maintains (group membership list and revocation list, over a pluggable
// Store), and a textual envelope format for moving objects between parties.
// Concrete schemes live in subpackages and register themselves on import;
// see the cpy06 subpackage for the traceable scheme of Choi, Park and Yung.
// For end-to-end usage, see groupsig_test.go.
package groupsig
