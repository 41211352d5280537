// Package resolve turns a raw record declaration into a fully-resolved,
// validated model: attribute pairs merged with defaults, every field
// classified as required, optional, or catch-all, and every generated
// identifier finalized.
//
// Resolution is a single synchronous pass per record and is all-or-nothing:
// any error diagnostic means no model is produced. Stages run in a fixed
// order — configuration, classification, naming, validation — because the
// validator checks collisions between finalized names.
package resolve
