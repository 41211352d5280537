// Package schema defines the declaration model the generator consumes: a
// record declaration is a named, ordered field list plus raw attribute
// key/value pairs at record and field granularity.
//
// The package also carries the static attribute model (every recognized key
// and its accepted value shape), the backing-kind registry, a structural
// type-expression parser, and the YAML front end that produces declarations
// from schema files. Front ends normalize into this model; everything past
// resolution never touches raw syntax again.
package schema
