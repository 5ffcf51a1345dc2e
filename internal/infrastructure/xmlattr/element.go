// Package xmlattr provides an attribute store backed by the attribute set of
// an XML root element.
//
// The telemetry file is read in two shapes: key/value pairs written directly
// as attributes of the root element, and <Attr name="..." value="..."/>
// children of the root. Both are folded into one flat namespace. Any other
// content is ignored.
package xmlattr

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultRootName is used when an Element without a name is encoded.
const DefaultRootName = "Attributes"

// ErrMalformed marks a document that could not be decoded, typically because
// the producing process was still writing it.
var ErrMalformed = errors.New("malformed attributes document")

// Element is the attribute set of an XML root element. It implements
// attributes.Store. Set mutates the set in place; new keys are appended so
// the original order is kept.
type Element struct {
	Name  xml.Name
	attrs []xml.Attr
	index map[string]int
}

// NewElement returns an empty element with the given root name.
func NewElement(name string) *Element {
	return &Element{
		Name:  xml.Name{Local: name},
		index: make(map[string]int),
	}
}

// Decode reads one root element from r. Decoding failures wrap ErrMalformed.
func Decode(r io.Reader) (*Element, error) {
	e := &Element{}
	if err := xml.NewDecoder(r).Decode(e); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return e, nil
}

// Parse decodes a document held in memory.
func Parse(data []byte) (*Element, error) {
	return Decode(bytes.NewReader(data))
}

// ReadFile decodes the document stored at path.
func ReadFile(path string) (*Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading attributes file: %w", err)
	}
	return Parse(data)
}

// Get returns the value stored under key.
func (e *Element) Get(key string) (string, bool) {
	i, ok := e.index[key]
	if !ok {
		return "", false
	}
	return e.attrs[i].Value, true
}

// Set stores value under key.
func (e *Element) Set(key, value string) {
	if e.index == nil {
		e.index = make(map[string]int)
	}
	if i, ok := e.index[key]; ok {
		e.attrs[i].Value = value
		return
	}
	e.index[key] = len(e.attrs)
	e.attrs = append(e.attrs, xml.Attr{Name: xml.Name{Local: key}, Value: value})
}

// Len returns the number of attributes.
func (e *Element) Len() int {
	return len(e.attrs)
}

// Keys returns the attribute keys in document order.
func (e *Element) Keys() []string {
	keys := make([]string, len(e.attrs))
	for i, a := range e.attrs {
		keys[i] = a.Name.Local
	}
	return keys
}

// UnmarshalXML implements xml.Unmarshaler.
func (e *Element) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	e.Name = start.Name
	e.attrs = nil
	e.index = make(map[string]int, len(start.Attr))
	for _, a := range start.Attr {
		e.Set(a.Name.Local, a.Value)
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "Attr" {
				if name, ok := attrValue(t.Attr, "name"); ok {
					value, _ := attrValue(t.Attr, "value")
					e.Set(name, value)
				}
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// MarshalXML implements xml.Marshaler. Every key is written as an attribute
// of the root element.
func (e *Element) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	start.Name = e.Name
	if start.Name.Local == "" {
		start.Name = xml.Name{Local: DefaultRootName}
	}
	start.Attr = make([]xml.Attr, len(e.attrs))
	copy(start.Attr, e.attrs)

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

// WriteTo encodes the element to w.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	data, err := xml.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("encoding attributes: %w", err)
	}
	n, err := w.Write(data)
	return int64(n), err
}

func attrValue(attrs []xml.Attr, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}
