// Package astfmt renders built items as Rust-like source text.
//
// The output is canonical: one attribute per line, one field per line in
// brace structs, a trailing comma after every brace field, and `///` for
// sugared doc attributes.
package astfmt
