// Package derive turns a validated resolve.Model into an ArtifactSet, the
// abstract description of every generated declaration. Derivation is pure
// and deterministic: identical models yield identical artifact sets, which
// is what makes generated output reproducible byte for byte.
//
// The set describes shapes, not source text. Rendering them into Go is the
// gen package's job.
package derive
