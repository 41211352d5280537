// Package gen renders artifact sets into Go source files. Rendering is
// template driven: a builder flattens each ArtifactSet into plain template
// data, a single file template emits the source, and go/format normalizes
// it. When formatting fails the raw output is kept beside the intended file
// for inspection.
package gen
