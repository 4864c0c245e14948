package svgdoc

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	errs "github.com/matzehuels/takitaro/pkg/errors"
)

// Namespace URIs used by Inkscape documents.
const (
	NamespaceSVG      = "http://www.w3.org/2000/svg"
	NamespaceInkscape = "http://www.inkscape.org/namespaces/inkscape"
)

// Document is a parsed SVG element tree.
type Document struct {
	doc *etree.Document
}

// Parse reads an SVG document from r.
//
// The root element must be an svg element. Parse returns an
// INVALID_DOCUMENT error for malformed XML or a foreign root element.
func Parse(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "parse svg")
	}
	root := doc.Root()
	if root == nil {
		return nil, errs.New(errs.ErrCodeInvalidDocument, "document has no root element")
	}
	if root.Tag != "svg" {
		return nil, errs.New(errs.ErrCodeInvalidDocument, "root element is <%s>, want <svg>", root.FullTag())
	}
	return &Document{doc: doc}, nil
}

// ParseBytes is Parse over an in-memory buffer.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// ReadFile opens path and parses it with [Parse].
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Root returns the svg root element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// Layers returns every Inkscape layer in document order, nested sub-layers
// included.
func (d *Document) Layers() []*etree.Element {
	var layers []*etree.Element
	walk(d.Root(), func(el *etree.Element) bool {
		if IsLayer(el) {
			layers = append(layers, el)
		}
		return true
	})
	return layers
}

// ElementByID returns the first element whose id attribute equals id, or nil.
func (d *Document) ElementByID(id string) *etree.Element {
	if id == "" {
		return nil
	}
	var found *etree.Element
	walk(d.Root(), func(el *etree.Element) bool {
		if ID(el) == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// StyleSheet returns the id-keyed style elements of the document.
func (d *Document) StyleSheet() *StyleSheet {
	return newStyleSheet(d.Root())
}

// Clone returns a deep copy of the document. Mutating the copy never
// affects d.
func (d *Document) Clone() *Document {
	return &Document{doc: d.doc.Copy()}
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	b, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "serialize svg")
	}
	return b, nil
}

// WriteFile serializes the document to path. The content is written to a
// temporary file in the same directory and renamed into place.
func (d *Document) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeOutputWrite, err, "write %s", path)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, perm); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

// =============================================================================
// Element helpers
// =============================================================================

// ID returns the id attribute of el, or "".
func ID(el *etree.Element) string {
	return el.SelectAttrValue("id", "")
}

// Label returns the inkscape:label attribute of el, or "".
func Label(el *etree.Element) string {
	return inkscapeAttr(el, "label")
}

// IsLayer reports whether el is an Inkscape layer group.
func IsLayer(el *etree.Element) bool {
	return el.Tag == "g" && inkscapeAttr(el, "groupmode") == "layer"
}

// IsPath reports whether el is an SVG path element.
func IsPath(el *etree.Element) bool {
	return el.Tag == "path" && (el.Space == "" || el.NamespaceURI() == NamespaceSVG || el.Space == "svg")
}

// Paths returns every path element below el in document order. Elements of
// any other kind are skipped, but their descendants are still searched.
func Paths(el *etree.Element) []*etree.Element {
	var paths []*etree.Element
	for _, c := range el.ChildElements() {
		walk(c, func(e *etree.Element) bool {
			if IsPath(e) {
				paths = append(paths, e)
			}
			return true
		})
	}
	return paths
}

// inkscapeAttr looks up an attribute in the Inkscape namespace. Documents
// normally bind it to the "inkscape" prefix, but any prefix resolving to the
// Inkscape namespace URI is accepted.
func inkscapeAttr(el *etree.Element, key string) string {
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key != key || a.Space == "" {
			continue
		}
		if a.Space == "inkscape" || a.NamespaceURI() == NamespaceInkscape {
			return a.Value
		}
	}
	return ""
}

// walk visits el and its descendants depth-first in document order until fn
// returns false.
func walk(el *etree.Element, fn func(*etree.Element) bool) bool {
	if el == nil {
		return true
	}
	if !fn(el) {
		return false
	}
	for _, c := range el.ChildElements() {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// =============================================================================
// Visibility
// =============================================================================

// SetVisible sets the display declaration of el's style attribute to inline
// or none. Other declarations in the style attribute are kept.
func SetVisible(el *etree.Element, visible bool) {
	value := "none"
	if visible {
		value = "inline"
	}
	decls := parseStyle(el.SelectAttrValue("style", ""))
	replaced := false
	for i := range decls {
		if decls[i].prop == "display" {
			decls[i].value = value
			replaced = true
		}
	}
	if !replaced {
		decls = append([]declaration{{prop: "display", value: value}}, decls...)
	}
	el.CreateAttr("style", formatStyle(decls))
}

// Visible reports whether el's style attribute does not hide it. Elements
// without a display declaration are visible.
func Visible(el *etree.Element) bool {
	for _, d := range parseStyle(el.SelectAttrValue("style", "")) {
		if d.prop == "display" {
			return d.value != "none"
		}
	}
	return true
}

type declaration struct {
	prop, value string
}

func parseStyle(s string) []declaration {
	var out []declaration
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		out = append(out, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return out
}

func formatStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ":" + d.value
	}
	return strings.Join(parts, ";")
}
