// Package pages holds the static page configuration of the scrapbook: an
// ordered list of page descriptors loaded from YAML and validated against an
// embedded JSON Schema.
package pages

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

//go:embed schema.json
var schemaJSON []byte

// Variant is the presentation type of a page.
type Variant string

const (
	VariantCover     Variant = "cover"
	VariantBackCover Variant = "back-cover"
	VariantContent   Variant = "content"
	VariantImage     Variant = "image"
	VariantPostcard  Variant = "postcard"
)

// IsCover reports whether the variant is the front or back cover.
func (v Variant) IsCover() bool {
	return v == VariantCover || v == VariantBackCover
}

// Note is a sticky note placed on a content page. Offsets are CSS-style
// percentages ("50%") measured from the named edge.
type Note struct {
	Text   string `yaml:"text" json:"text"`
	Color  string `yaml:"color" json:"color"`
	Top    string `yaml:"top,omitempty" json:"top,omitempty"`
	Left   string `yaml:"left,omitempty" json:"left,omitempty"`
	Right  string `yaml:"right,omitempty" json:"right,omitempty"`
	Bottom string `yaml:"bottom,omitempty" json:"bottom,omitempty"`
}

// Side is the text printed on one face of a page.
type Side struct {
	Title    string `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Message  string `yaml:"message,omitempty" json:"message,omitempty"`
}

// Postcard is the content of a postcard page.
type Postcard struct {
	Title string `yaml:"title" json:"title"`
	Sent  string `yaml:"sent,omitempty" json:"sent,omitempty"`
	To    string `yaml:"to,omitempty" json:"to,omitempty"`
	From  string `yaml:"from,omitempty" json:"from,omitempty"`
}

// Image is the picture of an image page.
type Image struct {
	Caption string `yaml:"caption" json:"caption"`
	Alt     string `yaml:"alt,omitempty" json:"alt,omitempty"`
	Source  string `yaml:"source,omitempty" json:"source,omitempty"`
}

// Descriptor describes one page.
type Descriptor struct {
	Variant  Variant   `yaml:"variant" json:"variant"`
	Title    string    `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle string    `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Header   string    `yaml:"header,omitempty" json:"header,omitempty"`
	Body     string    `yaml:"body,omitempty" json:"body,omitempty"`
	Notes    []Note    `yaml:"notes,omitempty" json:"notes,omitempty"`
	Front    *Side     `yaml:"front,omitempty" json:"front,omitempty"`
	Back     *Side     `yaml:"back,omitempty" json:"back,omitempty"`
	Postcard *Postcard `yaml:"postcard,omitempty" json:"postcard,omitempty"`
	Image    *Image    `yaml:"image,omitempty" json:"image,omitempty"`
}

// FrontSide returns the front face text, derived from the page title when no
// explicit front is configured.
func (d Descriptor) FrontSide() Side {
	if d.Front != nil {
		return *d.Front
	}
	if d.Postcard != nil {
		return Side{Title: d.Postcard.Title, Message: d.Postcard.Sent}
	}
	return Side{Title: d.Title, Subtitle: d.Subtitle, Message: d.Body}
}

// BackSide returns the back face text. Pages without one have a blank back.
func (d Descriptor) BackSide() Side {
	if d.Back != nil {
		return *d.Back
	}
	return Side{}
}

type document struct {
	Pages []Descriptor `yaml:"pages"`
}

var compiled *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("pages.json", bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("pages: invalid embedded schema: %v", err))
	}
	s, err := compiler.Compile("pages.json")
	if err != nil {
		panic(fmt.Sprintf("pages: failed to compile embedded schema: %v", err))
	}
	compiled = s
}

// Default returns the built-in pages.
func Default() []Descriptor {
	descs, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("pages: invalid embedded default: %v", err))
	}
	return descs
}

// DefaultYAML returns the built-in page file, for writing out as a starting
// point.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// Load reads and validates a page file. An empty path returns Default().
func Load(path string) ([]Descriptor, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages file: %w", err)
	}
	descs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return descs, nil
}

// Parse validates YAML page data against the schema and decodes it.
func Parse(data []byte) ([]Descriptor, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode pages: %w", err)
	}
	return doc.Pages, nil
}

// Validate checks YAML page data against the embedded schema.
func Validate(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse pages: %w", err)
	}

	// Round-trip through JSON so the validator sees JSON types only.
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to parse pages: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse pages: %w", err)
	}

	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("invalid pages: %w", err)
	}
	return nil
}
