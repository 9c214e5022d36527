// Package mdto maps MDTO metadata documents to typed records and back.
//
// MDTO (Metagegevens voor Duurzaam Toegankelijke Overheidsinformatie) is the
// Dutch government standard for exchanging archival metadata as XML. The
// package models every composite MDTO type as a struct, drives serialization
// and deserialization from per-type field tables, and wraps objects in the
// MDTO document element with the published namespace and schema location.
//
// The two top-level objects are Informatieobject (the description of an
// archival piece, dossier or series) and Bestand (the description of a file
// holding a representation of an information object). Both implement Object
// and travel through Marshal, Unmarshal, FromFile and WriteDocument.
//
// Output is canonical: an XML declaration, tab indentation, full end tags
// and a trailing newline. Parsing a document the package wrote and writing
// it again reproduces the input byte for byte, which keeps generated
// metadata diffable under version control.
//
// The field tables give every type a closed schema. Unknown child elements,
// duplicated singular elements and malformed typed values fail decoding with
// ErrSchemaViolation or ErrFormatValue. Validation is a separate, read-only
// pass: Validate reports violations such as over-long names or invalid URLs,
// and the caller decides whether to log them or, under strict mode, escalate
// them to an error wrapping ErrValidation.
package mdto
