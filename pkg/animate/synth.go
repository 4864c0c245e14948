package animate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	errs "github.com/matzehuels/takitaro/pkg/errors"
	"github.com/matzehuels/takitaro/pkg/svgdoc"
)

// DefaultTimingFunction is the animation-timing-function used when none is
// configured.
const DefaultTimingFunction = "ease"

// PathRulePrefix prefixes the style rule id of each animated path.
const PathRulePrefix = "pathanim_"

// StyleRule is CSS text stored under an idempotency key.
type StyleRule struct {
	ID  string
	CSS string
}

// AnimationID returns the class name shared by the paths animated in the
// export step with the given 0-based ordinal.
func AnimationID(ordinal int) string {
	return fmt.Sprintf("anim_%d", ordinal)
}

// Synthesizer emits the style rules of a layer animation.
type Synthesizer struct {
	// TimingFunction is the CSS animation-timing-function of the class rule.
	TimingFunction string
}

// Rules returns one rule per measured path followed by the class rule keyed
// by animationID. alloc must be the allocation of ms. No rules are returned
// for empty measurements.
func (s *Synthesizer) Rules(ms []PathMeasurement, alloc []Allocation, animationID string) ([]StyleRule, error) {
	if len(ms) != len(alloc) {
		return nil, errs.New(errs.ErrCodeInternal, "%d measurements but %d allocations", len(ms), len(alloc))
	}
	if len(ms) == 0 {
		return nil, nil
	}

	// The timeline starts at the integer 0 and a clamped end is the integer
	// 100; each start repeats the previous end as printed.
	total := TotalLength(ms)
	rules := make([]StyleRule, 0, len(ms)+1)
	start := "0"
	for i, m := range ms {
		end := formatNumber(alloc[i].End)
		if total > 0 && alloc[i].Start+round3(m.Length/total*100) > 100 {
			end = "100"
		}
		rules = append(rules, StyleRule{
			ID:  PathRulePrefix + m.ID,
			CSS: pathRule(cssIdent(m.ID), formatNumber(m.Length), start, end),
		})
		start = end
	}
	rules = append(rules, StyleRule{
		ID:  animationID,
		CSS: classRule(animationID, s.timingFunction()),
	})
	return rules, nil
}

// Apply upserts the rules of ms into sheet and sets the class of every
// measured path to animationID, replacing any previous class.
func (s *Synthesizer) Apply(sheet *svgdoc.StyleSheet, ms []PathMeasurement, alloc []Allocation, animationID string) error {
	rules, err := s.Rules(ms, alloc, animationID)
	if err != nil {
		return err
	}
	for _, r := range rules {
		sheet.Upsert(r.ID, r.CSS)
	}
	for _, m := range ms {
		m.Element.CreateAttr("class", animationID)
	}
	return nil
}

func (s *Synthesizer) timingFunction() string {
	if s.TimingFunction == "" {
		return DefaultTimingFunction
	}
	return s.TimingFunction
}

// pathRule renders the selector and keyframes of one path. ident must
// already be escaped with cssIdent.
func pathRule(ident, length, start, end string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n#%s {\n", ident)
	fmt.Fprintf(&b, "  animation-name: %s;\n", ident)
	fmt.Fprintf(&b, "  stroke-dasharray: %s !important;\n", length)
	b.WriteString("}\n")
	fmt.Fprintf(&b, "@keyframes %s {\n", ident)
	fmt.Fprintf(&b, "  0%%, %s%% {stroke-dashoffset: %s;}\n", start, length)
	fmt.Fprintf(&b, "  %s%%, 100%% {stroke-dashoffset: 0;}\n", end)
	b.WriteString("}\n")
	return b.String()
}

func classRule(animationID, timing string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n.%s {\n", animationID)
	b.WriteString("  animation-duration: 1s;\n")
	fmt.Fprintf(&b, "  animation-timing-function: %s;\n", timing)
	b.WriteString("  animation-delay: 0s;\n")
	b.WriteString("  animation-iteration-count: 1;\n")
	b.WriteString("  animation-fill-mode: forwards;\n")
	b.WriteString("}\n")
	return b.String()
}

// formatNumber prints v in its shortest round-trip form, always with a
// fractional part ("40.0"), switching to exponent notation below 1e-4 and
// from 1e16 on ("1e-05").
func formatNumber(v float64) string {
	if abs := math.Abs(v); v != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// cssIdent escapes id for use as a CSS identifier in id selectors,
// animation-name and @keyframes, following the CSSOM serialization rules.
// Plain ids made of letters, digits, '-' and '_' are returned unchanged.
func cssIdent(id string) string {
	var b strings.Builder
	for i, r := range id {
		switch {
		case r == 0:
			b.WriteRune(utf8.RuneError)
		case r < 0x20 || r == 0x7f,
			i == 0 && r >= '0' && r <= '9',
			i == 1 && r >= '0' && r <= '9' && id[0] == '-':
			fmt.Fprintf(&b, "\\%x ", r)
		case i == 0 && r == '-' && len(id) == 1:
			b.WriteString("\\-")
		case r >= 0x80 || r == '-' || r == '_' ||
			r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// =============================================================================
// Timing functions
// =============================================================================

var timingKeywords = map[string]bool{
	"ease":        true,
	"ease-in":     true,
	"ease-out":    true,
	"ease-in-out": true,
	"linear":      true,
	"step-start":  true,
	"step-end":    true,
}

var timingFunctions = []string{"cubic-bezier(", "steps(", "linear("}

// ValidateTimingFunction checks that s can be used as an
// animation-timing-function value.
func ValidateTimingFunction(s string) error {
	v := strings.TrimSpace(s)
	if v == "" {
		return errs.New(errs.ErrCodeInvalidOption, "animation style is empty")
	}
	if strings.ContainsAny(v, ";{}<>") {
		return errs.New(errs.ErrCodeInvalidOption, "animation style %q contains forbidden characters", s)
	}
	if timingKeywords[v] {
		return nil
	}
	for _, fn := range timingFunctions {
		if strings.HasPrefix(v, fn) && strings.HasSuffix(v, ")") && len(v) > len(fn)+1 {
			return nil
		}
	}
	return errs.New(errs.ErrCodeInvalidOption,
		"invalid animation style: %q (must be ease, ease-in, ease-out, ease-in-out, linear, step-start, step-end, cubic-bezier(...), steps(...) or linear(...))", s)
}
