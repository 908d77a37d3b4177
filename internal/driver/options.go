package driver

import (
	"fmt"
	"strings"

	"aster/internal/astfmt"
	"aster/internal/source"
)

// Emit selects what Generate produces for each manifest.
type Emit uint8

const (
	EmitSource  Emit = iota // Rust-like surface syntax
	EmitMsgpack             // astcodec binary form
	EmitJSON                // astcodec JSON form
)

func (e Emit) String() string {
	switch e {
	case EmitSource:
		return "source"
	case EmitMsgpack:
		return "msgpack"
	case EmitJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Ext is the output file extension, with the dot.
func (e Emit) Ext() string {
	switch e {
	case EmitMsgpack:
		return ".astpack"
	case EmitJSON:
		return ".json"
	default:
		return ".rs"
	}
}

func ParseEmit(s string) (Emit, error) {
	switch strings.ToLower(s) {
	case "source", "src", "":
		return EmitSource, nil
	case "msgpack", "mp":
		return EmitMsgpack, nil
	case "json":
		return EmitJSON, nil
	default:
		return EmitSource, fmt.Errorf("invalid emit kind: %q (expected: source|msgpack|json)", s)
	}
}

// Options configures Generate.
type Options struct {
	Emit   Emit
	Format astfmt.Options
	// Jobs limits concurrent manifests; <= 0 means GOMAXPROCS.
	Jobs int
	// OutDir, when set, receives one output file per manifest.
	OutDir string
	// Cache, when set, short-circuits manifests whose content and options
	// were generated before.
	Cache *DiskCache
	// Files receives the loaded manifests; a fresh set is used when nil.
	Files *source.FileSet
	// Progress, when set, receives per-manifest stage events.
	Progress ProgressSink
}

// fingerprint identifies the options that shape the output.
func (o Options) fingerprint() []byte {
	return fmt.Appendf(nil, "emit=%s indent=%d tabs=%t align=%t",
		o.Emit, o.Format.IndentWidth, o.Format.UseTabs, o.Format.AlignFields)
}
