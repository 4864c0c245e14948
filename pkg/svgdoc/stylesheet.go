package svgdoc

import (
	"github.com/beevik/etree"
)

// StyleSheet maps rule ids to CSS text. Each rule lives in its own
// <style id="..."> element; at most one element exists per id.
type StyleSheet struct {
	root  *etree.Element
	rules map[string]*etree.Element
	order []string
}

func newStyleSheet(root *etree.Element) *StyleSheet {
	s := &StyleSheet{root: root, rules: make(map[string]*etree.Element)}
	walk(root, func(el *etree.Element) bool {
		if el.Tag != "style" {
			return true
		}
		id := ID(el)
		if id == "" {
			return true
		}
		if _, dup := s.rules[id]; dup {
			// Hand-edited documents may repeat an id; keep the first.
			el.Parent().RemoveChild(el)
			return true
		}
		s.rules[id] = el
		s.order = append(s.order, id)
		return true
	})
	return s
}

// Upsert sets the CSS text of rule id. An existing rule keeps its position
// in the document; a new rule is appended to the root element.
func (s *StyleSheet) Upsert(id, css string) {
	if el, ok := s.rules[id]; ok {
		el.SetText(css)
		return
	}
	el := s.root.CreateElement("style")
	el.CreateAttr("id", id)
	el.SetText(css)
	s.rules[id] = el
	s.order = append(s.order, id)
}

// Get returns the CSS text of rule id.
func (s *StyleSheet) Get(id string) (string, bool) {
	el, ok := s.rules[id]
	if !ok {
		return "", false
	}
	return el.Text(), true
}

// IDs returns the rule ids in the order they were first seen or added.
func (s *StyleSheet) IDs() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of rules.
func (s *StyleSheet) Len() int {
	return len(s.rules)
}
