package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"aster/internal/source"
)

// FileName is the manifest looked up by Find.
const FileName = "aster.toml"

// Struct kinds accepted in `kind`.
const (
	KindNamed = "named"
	KindTuple = "tuple"
	KindUnit  = "unit"
)

// Manifest is a decoded manifest file.
type Manifest struct {
	Path    string
	File    source.FileID
	Structs []StructDecl
}

// StructDecl is one `[[struct]]` table.
type StructDecl struct {
	Name     string      `toml:"name"`
	Kind     string      `toml:"kind"`
	Pub      bool        `toml:"pub"`
	Doc      string      `toml:"doc"`
	Attrs    []string    `toml:"attrs"`
	Generics []string    `toml:"generics"`
	Fields   []FieldDecl `toml:"field"`
	// Span covers the `[[struct]]` header line.
	Span source.Span `toml:"-"`
}

// FieldDecl is one `[[struct.field]]` table.
type FieldDecl struct {
	Name  string   `toml:"name"`
	Type  string   `toml:"type"`
	Pub   bool     `toml:"pub"`
	Doc   string   `toml:"doc"`
	Attrs []string `toml:"attrs"`
	// Span covers the `[[struct.field]]` header line.
	Span source.Span `toml:"-"`
}

type document struct {
	Structs []StructDecl `toml:"struct"`
}

// Find walks up from startDir looking for aster.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path into fs and decodes it.
func Load(fs *source.FileSet, path string) (*Manifest, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return decode(fs, id)
}

// Parse decodes content registered under name as a virtual file.
func Parse(fs *source.FileSet, name string, content []byte) (*Manifest, error) {
	return decode(fs, fs.AddVirtual(name, content))
}

func decode(fs *source.FileSet, id source.FileID) (*Manifest, error) {
	file := fs.Get(id)
	var doc document
	meta, err := toml.Decode(string(file.Content), &doc)
	if err != nil {
		return nil, tomlError(fs, file, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		key := undecoded[0]
		sp := keySpan(file, key[len(key)-1])
		return nil, newError(fs, sp, fmt.Sprintf("unknown key %q", key.String()), nil)
	}
	if !meta.IsDefined("struct") {
		return nil, newError(fs, lineSpan(file, 0), "no [[struct]] tables", nil)
	}

	headers := scanHeaders(file)
	for i := range doc.Structs {
		st := &doc.Structs[i]
		if i < len(headers) {
			st.Span = headers[i].span
			for j := range st.Fields {
				if j < len(headers[i].fields) {
					st.Fields[j].Span = headers[i].fields[j]
				}
			}
		}
		if err := validateStruct(fs, st); err != nil {
			return nil, err
		}
	}
	return &Manifest{Path: file.Path, File: id, Structs: doc.Structs}, nil
}

func validateStruct(fs *source.FileSet, st *StructDecl) error {
	if strings.TrimSpace(st.Name) == "" {
		return newError(fs, st.Span, "missing struct name", nil)
	}
	switch st.Kind {
	case "":
		st.Kind = KindNamed
	case KindNamed, KindTuple, KindUnit:
	default:
		return newError(fs, st.Span, fmt.Sprintf("struct %s: unknown kind %q (want named, tuple or unit)", st.Name, st.Kind), nil)
	}
	if st.Kind == KindUnit && len(st.Fields) > 0 {
		return newError(fs, st.Fields[0].Span, fmt.Sprintf("struct %s: unit struct cannot have fields", st.Name), nil)
	}
	for i := range st.Fields {
		f := &st.Fields[i]
		switch {
		case st.Kind == KindNamed && strings.TrimSpace(f.Name) == "":
			return newError(fs, f.Span, fmt.Sprintf("struct %s: field %d has no name", st.Name, i), nil)
		case st.Kind == KindTuple && f.Name != "":
			return newError(fs, f.Span, fmt.Sprintf("struct %s: tuple field %q cannot be named", st.Name, f.Name), nil)
		case strings.TrimSpace(f.Type) == "":
			return newError(fs, f.Span, fmt.Sprintf("struct %s: field %d has no type", st.Name, i), nil)
		}
	}
	return nil
}

func tomlError(fs *source.FileSet, file *source.File, err error) error {
	var perr toml.ParseError
	if errors.As(err, &perr) {
		start, cerr := safecast.Conv[uint32](perr.Position.Start)
		if cerr != nil || perr.Position.Start > len(file.Content) {
			start = 0
		}
		sp := source.Span{File: file.ID, Start: start, End: start}
		return newError(fs, sp, "invalid TOML: "+perr.Message, err)
	}
	return newError(fs, lineSpan(file, 0), "invalid TOML", err)
}
