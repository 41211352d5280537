// Package diagnostic provides structured errors and warnings for the
// record generator.
//
// Key capabilities:
//   - Generation-time failures carrying the offending record and field
//   - "Did you mean" suggestions for misspelled attribute keys
//   - All-or-nothing semantics: any error halts derivation for its record
package diagnostic
