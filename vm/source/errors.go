package source

import "fmt"

// ParseError is a lexical or semantic assembly failure tied to a source
// location.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// ErrorDirective reports a malformed or unrecognised `.` preprocessor
// directive.
type ErrorDirective struct {
	File    string
	Line    int
	Message string
}

func (e *ErrorDirective) Error() string {
	return fmt.Sprintf("%s:%d: directive error: %s", e.File, e.Line, e.Message)
}
