package mdto

import "errors"

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	obj, err := mdto.FromFile("archiefstuk.xml")
//	if errors.Is(err, mdto.ErrSchemaViolation) {
//	    // Handle a document that does not follow the MDTO schema
//	}
var (
	// ErrSchemaViolation indicates a document's structure does not follow
	// the MDTO schema: an unknown child element, a duplicated singular
	// element, or a malformed wrapper.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrFormatValue indicates content could not be parsed into its
	// declared form, such as a non-numeric omvang or broken XML.
	ErrFormatValue = errors.New("malformed value")

	// ErrMissingField indicates a required field was absent at
	// serialization time.
	ErrMissingField = errors.New("missing required field")

	// ErrValidation indicates validation violations were escalated to an
	// error under strict mode.
	ErrValidation = errors.New("validation failed")

	// ErrDetection indicates the external format detection tool is missing
	// or reported a failure.
	ErrDetection = errors.New("format detection failed")

	// ErrInvalidInput indicates invalid arguments to a generation
	// operation, such as mismatched kenmerk and bron counts.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutputExists indicates an output file already exists and
	// overwriting was not approved.
	ErrOutputExists = errors.New("output file exists")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrSchemaViolation):
		return ExitSchemaViolation
	case errors.Is(err, ErrMissingField):
		return ExitSchemaViolation
	case errors.Is(err, ErrFormatValue):
		return ExitFormatError
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrDetection):
		return ExitDetectionError
	case errors.Is(err, ErrInvalidInput):
		return ExitUsageError
	case errors.Is(err, ErrOutputExists):
		return ExitOutputConflict
	}

	return ExitGeneralError
}
