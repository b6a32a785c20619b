// Provides a live, mutable SVG scene graph.
// Documents are parsed into an etree DOM which keeps every node
// (unknown elements and attributes included), so that the display
// engine can reshape it and write it back unchanged otherwise.
package svgscene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
	"github.com/benoitkugler/svgshow/svgpath"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements and invalid attributes
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for unsupported elements and invalid attributes
	WarnErrorMode
	// StrictErrorMode returns an error on the first unsupported element or invalid attribute
	StrictErrorMode
)

// ErrNotFound is returned when no element has the requested id.
var ErrNotFound = errors.New("element not found")

var errAlreadyWrapped = errors.New("layer already wrapped")

// elements whose geometry is not computed: they are
// ignored when computing bounding boxes
var unsupportedGeometry = map[string]bool{
	"text":          true,
	"tspan":         true,
	"textPath":      true,
	"foreignObject": true,
}

// Document is a parsed SVG document.
type Document struct {
	doc  *etree.Document
	root *etree.Element

	ids map[string]*etree.Element
	// transform of the layer groups, as authored:
	// the display overrides the attribute
	authored map[*etree.Element]svgpath.Matrix2D

	errorMode ErrorMode
	log       logrus.FieldLogger
}

// Options customizes the loading of a document. The zero value is valid.
type Options struct {
	// ErrorMode determines if the document ignores, errors out, or logs a warning
	// for elements whose geometry is not supported, and for invalid
	// transform or path data.
	ErrorMode ErrorMode
	// Logger receives the warnings. It defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// Load reads the SVG document from the given io.Reader.
func Load(stream io.Reader, opts Options) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := doc.ReadFrom(stream); err != nil {
		return nil, fmt.Errorf("invalid svg xml document: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return nil, errors.New("invalid svg xml document: missing <svg> root")
	}
	d := &Document{
		doc:       doc,
		root:      root,
		ids:       make(map[string]*etree.Element),
		authored:  make(map[*etree.Element]svgpath.Matrix2D),
		errorMode: opts.ErrorMode,
		log:       opts.Logger,
	}
	if d.log == nil {
		d.log = logrus.StandardLogger()
	}
	if err := d.index(root); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadFile reads the SVG document from the named file.
func LoadFile(fileName string, opts Options) (*Document, error) {
	fin, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return Load(fin, opts)
}

func (d *Document) handleError(err error) error {
	switch d.errorMode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		d.log.Warn(err)
	}
	return nil
}

// isSVG is false for elements of foreign namespaces,
// such as editor metadata
func (d *Document) isSVG(el *etree.Element) bool {
	return el.Space == d.root.Space
}

// index registers the ids and checks the attributes used by
// the geometry computations
func (d *Document) index(el *etree.Element) error {
	if id := el.SelectAttrValue("id", ""); id != "" {
		d.ids[id] = el
	}
	if d.isSVG(el) {
		if unsupportedGeometry[el.Tag] {
			err := d.handleError(fmt.Errorf("cannot compute the geometry of svg element <%s>", el.Tag))
			if err != nil {
				return err
			}
		}
		if v := el.SelectAttrValue("transform", ""); v != "" {
			if _, err := svgpath.ParseTransform(v); err != nil {
				if err = d.handleError(err); err != nil {
					return err
				}
			}
		}
		if el.Tag == "path" {
			if _, err := svgpath.CompilePath(el.SelectAttrValue("d", "")); err != nil {
				if err = d.handleError(err); err != nil {
					return err
				}
			}
		}
	}
	for _, child := range el.ChildElements() {
		if err := d.index(child); err != nil {
			return err
		}
	}
	return nil
}

// Root returns the top level <svg> element.
func (d *Document) Root() *Element { return &Element{doc: d, el: d.root} }

// ElementByID returns the element with the given id, or
// an error wrapping ErrNotFound.
func (d *Document) ElementByID(id string) (*Element, error) {
	el, ok := d.ids[id]
	if !ok {
		return nil, fmt.Errorf("svg element %q: %w", id, ErrNotFound)
	}
	return &Element{doc: d, el: el}, nil
}

// WriteTo serializes the document, including the modifications
// made by the display.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}

// WriteFile serializes the document in the named file.
func (d *Document) WriteFile(fileName string) error {
	return d.doc.WriteToFile(fileName)
}

// tag returns the qualified name for a new element, using
// the prefix of the root element
func (d *Document) tag(name string) string {
	if d.root.Space == "" {
		return name
	}
	return d.root.Space + ":" + name
}
