package mdto

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitSchemaViolation = 10 // Document structure violates the MDTO schema
	ExitValidationError = 11 // Validation violations escalated under strict mode
	ExitFormatError     = 12 // Malformed value inside a document
	ExitDetectionError  = 13 // External format detection failed
	ExitOutputConflict  = 14 // Refused to overwrite an existing output file
)

const (
	// Namespace is the MDTO XML namespace.
	Namespace = "https://www.nationaalarchief.nl/mdto"

	// XSINamespace is the XML Schema instance namespace.
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

	// SchemaLocation pairs the MDTO namespace with its published XSD.
	SchemaLocation = Namespace + " https://www.nationaalarchief.nl/mdto/MDTO-XML1.0.1.xsd"
)

// MaxNaamLength is the longest naam the MDTO schema accepts, counted in
// characters rather than bytes. Longer names are reported as validation
// violations; the value itself is kept as given.
const MaxNaamLength = 80
