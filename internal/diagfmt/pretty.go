package diagfmt

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"aster/internal/source"
)

// Pretty пишет сообщение в человекочитаемом виде:
// <path>:<line>:<col>: <severity>: <msg>
// затем строку контекста с подчёркиванием ^~~~ по span.
// Для span без файла печатается только заголовок.
func Pretty(w io.Writer, fs *source.FileSet, sp source.Span, msg string, opts PrettyOpts) error {
	sev := opts.Severity
	if sev == "" {
		sev = "error"
	}
	sevColor := paint(opts.Color, color.FgRed, color.Bold)
	gutter := paint(opts.Color, color.FgBlue, color.Bold)

	var f *source.File
	if fs != nil {
		f = fs.Get(sp.File)
	}
	if f == nil {
		_, err := fmt.Fprintf(w, "%s %s\n", sevColor.Sprint(sev+":"), msg)
		return err
	}

	start, _ := fs.Resolve(sp)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s:%d:%d: %s %s\n",
		displayPath(f.Path, opts), start.Line, start.Col, sevColor.Sprint(sev+":"), msg)

	first := max(int(start.Line)-opts.Context, 1)
	numWidth := len(strconv.Itoa(int(start.Line)))
	for ln := first; ln <= int(start.Line); ln++ {
		fmt.Fprintf(&buf, "%s %s\n",
			gutter.Sprintf("%*d |", numWidth, ln), lineText(f, ln))
	}

	line := lineText(f, int(start.Line))
	col := min(int(start.Col)-1, len(line))
	fmt.Fprintf(&buf, "%s %s%s\n",
		gutter.Sprintf("%*s |", numWidth, ""),
		markerPad(line[:col]),
		sevColor.Sprint(underline(line[col:], int(sp.Len()))))

	_, err := w.Write(buf.Bytes())
	return err
}

func paint(on bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// lineText returns line ln (1-based) without its terminator.
// LineIdx holds the offsets of '\n' bytes.
func lineText(f *source.File, ln int) string {
	if ln < 1 || ln > len(f.LineIdx)+1 {
		return ""
	}
	begin := 0
	if ln > 1 {
		begin = int(f.LineIdx[ln-2]) + 1
	}
	end := len(f.Content)
	if ln <= len(f.LineIdx) {
		end = int(f.LineIdx[ln-1])
	}
	return strings.TrimRight(string(f.Content[begin:end]), "\r")
}

// markerPad keeps tabs so the caret lines up with the excerpt above it.
func markerPad(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func underline(rest string, spanLen int) string {
	if spanLen > len(rest) {
		spanLen = len(rest)
	}
	width := runewidth.StringWidth(rest[:spanLen])
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", width-1)
}

func displayPath(p string, opts PrettyOpts) string {
	switch opts.PathMode {
	case PathModeBasename:
		return filepath.Base(p)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}

	base := opts.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return p
		}
		base = wd
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return p
	}
	if opts.PathMode == PathModeAuto && strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}
