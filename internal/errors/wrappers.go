package errors

import "fmt"

// Common error constructors used throughout the codebase so every layer
// reports the same shapes.

// WrapReadError wraps a file read failure as an IOError
func WrapReadError(path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to read source file '%s'", path)
	return Wrap(IOErrorCode, message, cause).
		WithContext("path", path).
		WithSuggestion("Check that the file exists and is readable")
}

// WrapWriteError wraps a file write failure as an IOError
func WrapWriteError(path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to write file '%s'", path)
	return Wrap(IOErrorCode, message, cause).
		WithContext("path", path).
		WithSuggestion("Check write permissions for the target directory")
}

// NewParseError creates a ParseError carrying the syntax diagnostic location
func NewParseError(loc SourceLocation, message string) *BaseError {
	return New(ParseErrorCode, message).
		WithLocation(loc).
		WithSuggestion("Fix the syntax error in the source file and re-run pyforge")
}

// NewDirectiveError creates a DirectiveError for a malformed forge:: comment
func NewDirectiveError(loc SourceLocation, message string) *BaseError {
	return New(DirectiveErrorCode, message).
		WithLocation(loc).
		WithSuggestion("Supported directives are '# forge::skip' and '# forge::name <identifier>'")
}

// WrapValidationError wraps a descriptor invariant violation
func WrapValidationError(callable string, cause error) *BaseError {
	message := fmt.Sprintf("invalid callable descriptor '%s'", callable)
	return Wrap(ValidationErrorCode, message, cause).
		WithContext("callable", callable)
}

// NewAlreadyExistsError reports a destination test file that is present
// without an explicit overwrite directive. Callers treat it as a non-fatal
// skip, not a failure.
func NewAlreadyExistsError(path string) *BaseError {
	message := fmt.Sprintf("file '%s' already exists", path)
	return New(AlreadyExistsErrorCode, message).
		WithContext("path", path).
		WithSuggestion("Use --overwrite to replace the existing test file")
}

// NewNotFoundError reports a requested callable filter that matched nothing
func NewNotFoundError(name, sourcePath string) *BaseError {
	message := fmt.Sprintf("function '%s' not found in source", name)
	return New(NotFoundErrorCode, message).
		WithContext("function", name).
		WithContext("source", sourcePath)
}
