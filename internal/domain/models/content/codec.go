package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingCourses is returned when a document has no "courses" array
var ErrMissingCourses = errors.New(`document must contain a "courses" array`)

// shape catches a missing or null "courses" key, which a plain Document would decode as empty
type shape struct {
	Courses *[]Course `json:"courses" yaml:"courses"`
}

func (s shape) document() (*Document, error) {
	if s.Courses == nil {
		return nil, ErrMissingCourses
	}
	doc := &Document{Courses: *s.Courses}
	doc.Normalize()
	return doc, nil
}

// DecodeJSON parses a document and rejects one without a "courses" array
func DecodeJSON(data []byte) (*Document, error) {
	var s shape
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode json document: %w", err)
	}
	return s.document()
}

// DecodeYAML parses a YAML document with the same shape rules as DecodeJSON
func DecodeYAML(data []byte) (*Document, error) {
	var s shape
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode yaml document: %w", err)
	}
	return s.document()
}

// EncodeJSON renders the document with two-space indentation
func EncodeJSON(doc *Document) ([]byte, error) {
	doc.Normalize()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json document: %w", err)
	}
	return data, nil
}

// EncodeYAML renders the document as YAML
func EncodeYAML(doc *Document) ([]byte, error) {
	doc.Normalize()
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml document: %w", err)
	}
	return buf.Bytes(), nil
}
