package mdto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// cardinality describes how often a child element may occur within its
// parent.
type cardinality int

const (
	one      cardinality = iota // exactly once
	optional                    // zero or one
	many                        // zero or more
)

// field binds one child element slot of a composite record to the struct
// field that stores it. emit appends the field's current value to parent as
// child elements; absorb stores parsed child elements back into the struct
// field. Per-type tables of fields drive both directions of the codec, so
// the element order and the closed set of known tags live in exactly one
// place per type.
type field struct {
	name   string
	card   cardinality
	emit   func(parent *etree.Element) error
	absorb func(children []*etree.Element) error
}

// record is implemented by every composite MDTO type. fields returns the
// field table in schema order, bound to the receiver.
type record interface {
	fields() []field
}

// elementUnmarshaler overrides the table-driven decode path for types that
// are decoded by element structure instead of by tag lookup.
type elementUnmarshaler interface {
	unmarshalElement(el *etree.Element) error
}

// recordPtr constrains PT to a pointer to T implementing record, so the
// generic field helpers work for value fields, pointer fields and slices of
// values alike.
type recordPtr[T any] interface {
	*T
	record
}

// text declares a required text element.
func text(name string, p *string) field {
	return field{
		name: name,
		card: one,
		emit: func(parent *etree.Element) error {
			if *p == "" {
				return fmt.Errorf("%w: <%s>", ErrMissingField, name)
			}
			parent.CreateElement(name).SetText(*p)
			return nil
		},
		absorb: func(children []*etree.Element) error {
			if len(children) == 0 {
				return nil
			}
			*p = children[0].Text()
			return nil
		},
	}
}

// optText declares an optional text element. The empty string means absent;
// absent fields are omitted from output entirely.
func optText(name string, p *string) field {
	f := text(name, p)
	f.card = optional
	f.emit = func(parent *etree.Element) error {
		if *p != "" {
			parent.CreateElement(name).SetText(*p)
		}
		return nil
	}
	return f
}

// texts declares a repeatable text element.
func texts(name string, p *[]string) field {
	return field{
		name: name,
		card: many,
		emit: func(parent *etree.Element) error {
			for _, v := range *p {
				parent.CreateElement(name).SetText(v)
			}
			return nil
		},
		absorb: func(children []*etree.Element) error {
			for _, el := range children {
				*p = append(*p, el.Text())
			}
			return nil
		},
	}
}

// number declares a required integer element. Zero is a valid value (an
// empty file has omvang 0), so the element is always emitted.
func number(name string, p *int64) field {
	return field{
		name: name,
		card: one,
		emit: func(parent *etree.Element) error {
			parent.CreateElement(name).SetText(strconv.FormatInt(*p, 10))
			return nil
		},
		absorb: func(children []*etree.Element) error {
			if len(children) == 0 {
				return nil
			}
			raw := children[0].Text()
			v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return fmt.Errorf("%w: <%s> holds %q, expected an integer", ErrFormatValue, name, raw)
			}
			*p = v
			return nil
		},
	}
}

// rec declares a required nested record stored by value. Absence surfaces
// through the nested record's own required fields at serialization time.
func rec[T any, PT recordPtr[T]](name string, p *T) field {
	return field{
		name: name,
		card: one,
		emit: func(parent *etree.Element) error {
			el, err := marshalRecord(PT(p), name)
			if err != nil {
				return err
			}
			parent.AddChild(el)
			return nil
		},
		absorb: func(children []*etree.Element) error {
			if len(children) == 0 {
				return nil
			}
			return unmarshalRecord(children[0], PT(p))
		},
	}
}

// optRec declares an optional nested record stored by pointer.
func optRec[T any, PT recordPtr[T]](name string, p **T) field {
	return field{
		name: name,
		card: optional,
		emit: func(parent *etree.Element) error {
			if *p == nil {
				return nil
			}
			el, err := marshalRecord(PT(*p), name)
			if err != nil {
				return err
			}
			parent.AddChild(el)
			return nil
		},
		absorb: func(children []*etree.Element) error {
			if len(children) == 0 {
				return nil
			}
			v := new(T)
			if err := unmarshalRecord(children[0], PT(v)); err != nil {
				return err
			}
			*p = v
			return nil
		},
	}
}

// recs declares a repeatable nested record stored as a slice of values.
func recs[T any, PT recordPtr[T]](name string, p *[]T) field {
	return field{
		name: name,
		card: many,
		emit: func(parent *etree.Element) error {
			for i := range *p {
				el, err := marshalRecord(PT(&(*p)[i]), name)
				if err != nil {
					return err
				}
				parent.AddChild(el)
			}
			return nil
		},
		absorb: func(children []*etree.Element) error {
			for _, el := range children {
				var v T
				if err := unmarshalRecord(el, PT(&v)); err != nil {
					return err
				}
				*p = append(*p, v)
			}
			return nil
		},
	}
}

// recsRequired declares a repeatable nested record that must occur at least
// once.
func recsRequired[T any, PT recordPtr[T]](name string, p *[]T) field {
	f := recs[T, PT](name, p)
	inner := f.emit
	f.emit = func(parent *etree.Element) error {
		if len(*p) == 0 {
			return fmt.Errorf("%w: <%s>", ErrMissingField, name)
		}
		return inner(parent)
	}
	return f
}

// marshalRecord serializes a record to an element named tag. Fields are
// emitted in table order; absent optional fields are omitted entirely, never
// written as empty elements.
func marshalRecord(r record, tag string) (*etree.Element, error) {
	el := etree.NewElement(tag)
	for _, f := range r.fields() {
		if err := f.emit(el); err != nil {
			return nil, fmt.Errorf("<%s>: %w", tag, err)
		}
	}
	return el, nil
}

// unmarshalRecord decodes an element into a record. Children are bucketed by
// tag with the namespace prefix stripped, unknown tags are rejected, and
// each field absorbs its bucket in table order. The zero, one or many
// collapse happens inside the field closures, at the record boundary.
func unmarshalRecord(el *etree.Element, r record) error {
	if u, ok := r.(elementUnmarshaler); ok {
		return u.unmarshalElement(el)
	}

	specs := r.fields()
	known := make(map[string]struct{}, len(specs))
	for _, f := range specs {
		known[f.name] = struct{}{}
	}

	buckets := make(map[string][]*etree.Element)
	for _, child := range el.ChildElements() {
		if _, ok := known[child.Tag]; !ok {
			return fmt.Errorf("%w: unknown element <%s> in <%s>", ErrSchemaViolation, child.Tag, el.Tag)
		}
		buckets[child.Tag] = append(buckets[child.Tag], child)
	}

	for _, f := range specs {
		kids := buckets[f.name]
		if f.card != many && len(kids) > 1 {
			return fmt.Errorf("%w: element <%s> occurs %d times in <%s>, at most one allowed",
				ErrSchemaViolation, f.name, len(kids), el.Tag)
		}
		if err := f.absorb(kids); err != nil {
			return fmt.Errorf("<%s>: %w", el.Tag, err)
		}
	}
	return nil
}
