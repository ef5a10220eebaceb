package domain

import "fmt"

// InvalidInputError reports a root path that is missing or not a directory.
// It is fatal to the whole request.
type InvalidInputError struct {
	Path   string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid directory path %s: %s", e.Path, e.Reason)
}

// FileParseWarning records a file that was skipped because it could not be parsed.
type FileParseWarning struct {
	File  string `json:"file"`
	Cause error  `json:"-"`
}

func (w FileParseWarning) Error() string {
	return fmt.Sprintf("skipped %s: %v", w.File, w.Cause)
}

func (w FileParseWarning) Unwrap() error { return w.Cause }

// Message is the cause text, used for JSON output.
func (w FileParseWarning) Message() string {
	if w.Cause == nil {
		return ""
	}
	return w.Cause.Error()
}

// RenderingError wraps a failure of the external diagram renderer.
type RenderingError struct {
	Format string
	Err    error
}

func (e *RenderingError) Error() string {
	return fmt.Sprintf("rendering %s diagram: %v", e.Format, e.Err)
}

func (e *RenderingError) Unwrap() error { return e.Err }

// ToolError reports an external tool that exited unsuccessfully.
type ToolError struct {
	Tool     string
	ExitCode int
	Output   string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
}

// AccessDeniedError reports a path outside the allowed base directory.
type AccessDeniedError struct {
	Path string
	Base string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("Invalid directory path: Must be within %s", e.Base)
}
