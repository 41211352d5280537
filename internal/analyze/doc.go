// Package analyze is the Go-source front end: it loads packages at syntax
// level and extracts record declarations from struct types carrying a
// //record: directive. Field configuration rides in record struct tags.
//
// Extraction is purely syntactic. The declarations it produces are raw
// schema input; resolution owns validation and defaulting, exactly as for
// the YAML front end.
package analyze
