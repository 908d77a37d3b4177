package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows paths relative to BaseDir when they live under it.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of a located message.
type PrettyOpts struct {
	Color    bool
	Context  int // строк перед строкой с ошибкой
	PathMode PathMode
	BaseDir  string // "" - текущая директория
	Severity string // "" означает "error"
}
