package manifest

import (
	"bytes"
	"strings"

	"aster/internal/source"
)

// toml decoding drops positions, so struct and field spans come from the
// table headers, matched in document order.

type structHeader struct {
	span   source.Span
	fields []source.Span
}

func scanHeaders(file *source.File) []structHeader {
	var out []structHeader
	forEachLine(file, func(line string, sp source.Span) bool {
		switch headerName(line) {
		case "struct":
			out = append(out, structHeader{span: sp})
		case "struct.field":
			if n := len(out); n > 0 {
				out[n-1].fields = append(out[n-1].fields, sp)
			}
		}
		return true
	})
	return out
}

// headerName returns "x.y" for a `[[ x . y ]]` line, "" otherwise.
func headerName(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[[") || !strings.HasSuffix(line, "]]") {
		return ""
	}
	return strings.ReplaceAll(strings.TrimSpace(line[2:len(line)-2]), " ", "")
}

// keySpan finds the first line assigning key, falling back to the first line.
func keySpan(file *source.File, key string) source.Span {
	found := lineSpan(file, 0)
	forEachLine(file, func(line string, sp source.Span) bool {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), key)
		if !ok {
			return true
		}
		rest = strings.TrimSpace(rest)
		if strings.HasPrefix(rest, "=") {
			found = sp
			return false
		}
		return true
	})
	return found
}

// lineSpan returns the span of the n-th (0-based) line.
func lineSpan(file *source.File, n int) source.Span {
	found := source.Span{File: file.ID}
	i := 0
	forEachLine(file, func(_ string, sp source.Span) bool {
		if i == n {
			found = sp
			return false
		}
		i++
		return true
	})
	return found
}

// forEachLine calls fn with each line (without the newline) and its span,
// with leading indentation excluded from the span.
func forEachLine(file *source.File, fn func(line string, sp source.Span) bool) {
	content := file.Content
	var off uint32
	for len(content) > 0 {
		end := bytes.IndexByte(content, '\n')
		next := end + 1
		if end < 0 {
			end = len(content)
			next = end
		}
		line := string(content[:end])
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		// #nosec G115 -- offsets are bounded by the file size, which FileSet keeps in uint32
		sp := source.Span{File: file.ID, Start: off + uint32(indent), End: off + uint32(len(line))}
		if !fn(line, sp) {
			return
		}
		off += uint32(next) // #nosec G115
		content = content[next:]
	}
}
