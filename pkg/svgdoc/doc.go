// Package svgdoc wraps an Inkscape SVG document for layer-wise export.
//
// # Overview
//
// A [Document] is an in-memory element tree (backed by github.com/beevik/etree)
// with the handful of operations the export pipeline needs:
//
//   - Locating Inkscape layers (g elements with inkscape:groupmode="layer")
//   - Looking up elements by id and collecting path elements of a layer
//   - Toggling layer visibility through the display declaration of the
//     style attribute
//   - Maintaining a [StyleSheet], a set of <style id="..."> elements keyed
//     by id with insert-or-replace semantics
//   - Cloning and serializing the tree, with all-or-nothing file writes
//
// # Reading
//
// Use [ReadFile] or [Parse]. Input in a non-UTF-8 encoding is decoded through
// golang.org/x/net/html/charset when the XML declaration names a charset:
//
//	doc, err := svgdoc.ReadFile("drawing.svg")
//	if err != nil {
//	    return err
//	}
//	for _, layer := range doc.Layers() {
//	    fmt.Println(svgdoc.ID(layer), svgdoc.Label(layer))
//	}
//
// # Writing
//
// [Document.WriteFile] writes to a temporary file next to the destination and
// renames it into place, so a failed write never leaves a truncated file.
package svgdoc
