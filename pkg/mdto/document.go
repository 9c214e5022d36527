package mdto

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
)

// BuildDocument assembles the complete document tree for an object: the XML
// declaration, the MDTO wrapper element carrying the namespace attributes,
// and the serialized object. The tree comes back indented with tabs, the
// convention of the published MDTO examples.
func BuildDocument(o Object) (*etree.Document, error) {
	el, err := marshalRecord(o, o.Tag())
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("MDTO")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("xmlns:xsi", XSINamespace)
	root.CreateAttr("xsi:schemaLocation", SchemaLocation)
	root.AddChild(el)

	doc.WriteSettings = etree.WriteSettings{
		CanonicalEndTags: true,
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	doc.IndentTabs()
	return doc, nil
}

// WriteDocument writes the object as a canonical MDTO document: tab
// indentation, full end tags and a trailing newline. The form is stable
// under round-tripping; writing, parsing and writing again produces
// identical bytes. The indented writer already terminates the document
// with a newline, so nothing is appended here.
func WriteDocument(w io.Writer, o Object) error {
	doc, err := BuildDocument(o)
	if err != nil {
		return err
	}
	_, err = doc.WriteTo(w)
	return err
}

// Marshal returns the object as canonical MDTO document bytes.
func Marshal(o Object) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses MDTO document bytes into the object they wrap. The
// concrete type is *Informatieobject or *Bestand, depending on the single
// child of the MDTO wrapper.
func Unmarshal(data []byte) (Object, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormatValue, err)
	}
	return unwrap(doc)
}

// FromFile reads and parses the MDTO document stored at path.
func FromFile(path string) (Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read MDTO document: %w", err)
	}
	obj, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

// FromReader parses an MDTO document from a stream.
func FromReader(r io.Reader) (Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read MDTO document: %w", err)
	}
	return Unmarshal(data)
}

// unwrap locates the single object element inside the MDTO wrapper and
// decodes it. Tag matching ignores namespace prefixes, so both the default
// namespace form and a prefixed form are accepted.
func unwrap(doc *etree.Document) (Object, error) {
	root := doc.Root()
	if root == nil {
		// The parser accepts bare character data without complaint, so a
		// missing root element means the input was not XML at all.
		return nil, fmt.Errorf("%w: document has no root element", ErrFormatValue)
	}
	if root.Tag != "MDTO" {
		return nil, fmt.Errorf("%w: root element is <%s>, expected <MDTO>", ErrSchemaViolation, root.Tag)
	}

	kids := root.ChildElements()
	if len(kids) != 1 {
		return nil, fmt.Errorf("%w: <MDTO> must wrap exactly one object, found %d elements",
			ErrSchemaViolation, len(kids))
	}

	var obj Object
	switch kids[0].Tag {
	case "informatieobject":
		obj = &Informatieobject{}
	case "bestand":
		obj = &Bestand{}
	default:
		return nil, fmt.Errorf("%w: unknown object element <%s> in <MDTO>", ErrSchemaViolation, kids[0].Tag)
	}
	if err := unmarshalRecord(kids[0], obj); err != nil {
		return nil, err
	}
	return obj, nil
}
