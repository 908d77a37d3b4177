package manifest

import "aster/internal/source"

// Error is a manifest problem tied to a position in the file.
type Error struct {
	Pos  string // path:line:col
	Span source.Span
	Msg  string
	Err  error
}

func newError(fs *source.FileSet, sp source.Span, msg string, err error) *Error {
	return &Error{Pos: fs.Position(sp), Span: sp, Msg: msg, Err: err}
}

func (e *Error) Error() string { return e.Pos + ": " + e.Message() }

// Message is the error text without the position prefix.
func (e *Error) Message() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }
