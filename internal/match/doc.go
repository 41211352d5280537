// Package match provides Levenshtein distance calculation and suggestion
// ranking. The generator uses it to offer "did you mean" alternatives when a
// schema carries an unrecognized attribute key.
package match
