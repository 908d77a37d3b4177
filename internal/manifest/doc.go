// Package manifest reads struct declarations from an aster.toml file and
// lowers them to ast items through the aster builders.
//
//	[[struct]]
//	name = "Config"
//	pub = true
//	attrs = ["derive(Debug, Clone)"]
//
//	  [[struct.field]]
//	  name = "port"
//	  type = "u16"
//
// Type and attribute strings use a small Rust-like grammar, see ParseType
// and ParseMeta.
package manifest
