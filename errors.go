// FILE: lixenwraith/tomldir/errors.go
package tomldir

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax reports input the document parser rejected.
	ErrSyntax = errors.New("tomldir: syntax error")

	// ErrRootNotTable reports a document whose root is not a table (e.g. a JSON array).
	ErrRootNotTable = errors.New("tomldir: document root is not a table")

	// ErrConfigNotFound reports a missing configuration file.
	ErrConfigNotFound = errors.New("tomldir: configuration file not found")

	// ErrFileTooLarge reports a file exceeding LoadOptions.MaxFileSize.
	ErrFileTooLarge = errors.New("tomldir: configuration file too large")

	// ErrUnsupportedFormat reports an unknown or undetectable document format.
	ErrUnsupportedFormat = errors.New("tomldir: unsupported format")

	// ErrFrozen reports a write to a configuration already handed out through Shared.
	ErrFrozen = errors.New("tomldir: configuration is shared and read-only")

	// ErrInvalidPath reports a malformed dotted path passed to a write operation.
	ErrInvalidPath = errors.New("tomldir: invalid path")
)

// ParseError is returned by the loader when a document cannot become a Config.
// Kind is ErrSyntax or ErrRootNotTable.
type ParseError struct {
	Kind   error
	Format Format
	Source string // file path, empty for in-memory input
	Err    error  // underlying parser error, nil for structural errors
}

func (e *ParseError) Error() string {
	where := string(e.Format)
	if e.Source != "" {
		where += " " + e.Source
	}
	if e.Err == nil {
		return fmt.Sprintf("%v (%s)", e.Kind, where)
	}
	return fmt.Sprintf("%v (%s): %v", e.Kind, where, e.Err)
}

// Unwrap exposes both the kind sentinel and the parser error to errors.Is/As.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func syntaxError(format Format, err error) *ParseError {
	return &ParseError{Kind: ErrSyntax, Format: format, Err: err}
}

func rootNotTableError(format Format, got string) *ParseError {
	return &ParseError{Kind: ErrRootNotTable, Format: format, Err: fmt.Errorf("root is %s", got)}
}
