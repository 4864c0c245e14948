package animate

import (
	"context"
	"fmt"
	"strings"
	"testing"

	errs "github.com/matzehuels/takitaro/pkg/errors"
	"github.com/matzehuels/takitaro/pkg/svgdoc"
)

const animSVG = `<svg xmlns="http://www.w3.org/2000/svg"
     xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">
  <g id="L2" inkscape:groupmode="layer" inkscape:label="sky">
    <path id="p1" class="old" d="M0 0 H10"/>
    <path id="p2" d="M0 0 V10"/>
    <path id="p3" d="M0 0 L3 4"/>
  </g>
</svg>`

func TestSynthesizerRules(t *testing.T) {
	ms := []PathMeasurement{{ID: "p1", Length: 10}, {ID: "p2", Length: 12.5}}
	alloc := []Allocation{{0, 44.444}, {44.444, 100}}

	s := &Synthesizer{TimingFunction: "ease-in"}
	rules, err := s.Rules(ms, alloc, "anim_0")
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 3 {
		t.Fatalf("got %d rules, want 3", len(rules))
	}

	wantP2 := `
#p2 {
  animation-name: p2;
  stroke-dasharray: 12.5 !important;
}
@keyframes p2 {
  0%, 44.444% {stroke-dashoffset: 12.5;}
  100.0%, 100% {stroke-dashoffset: 0;}
}
`
	if rules[1].ID != "pathanim_p2" || rules[1].CSS != wantP2 {
		t.Errorf("path rule = %s %q, want pathanim_p2 %q", rules[1].ID, rules[1].CSS, wantP2)
	}

	wantClass := `
.anim_0 {
  animation-duration: 1s;
  animation-timing-function: ease-in;
  animation-delay: 0s;
  animation-iteration-count: 1;
  animation-fill-mode: forwards;
}
`
	if rules[2].ID != "anim_0" || rules[2].CSS != wantClass {
		t.Errorf("class rule = %s %q, want anim_0 %q", rules[2].ID, rules[2].CSS, wantClass)
	}
}

func TestSynthesizerRulesEmpty(t *testing.T) {
	rules, err := (&Synthesizer{}).Rules(nil, nil, "anim_0")
	if err != nil || len(rules) != 0 {
		t.Errorf("Rules(nil) = %v, %v; want no rules", rules, err)
	}
}

func TestSynthesizerRulesMismatch(t *testing.T) {
	_, err := (&Synthesizer{}).Rules([]PathMeasurement{{ID: "a", Length: 1}}, nil, "anim_0")
	if !errs.Is(err, errs.ErrCodeInternal) {
		t.Errorf("Rules() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestSynthesizerDefaultTiming(t *testing.T) {
	rules, err := (&Synthesizer{}).Rules([]PathMeasurement{{ID: "a", Length: 1}}, []Allocation{{0, 100}}, "anim_3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rules[1].CSS, "animation-timing-function: ease;") {
		t.Errorf("class rule %q should default to ease", rules[1].CSS)
	}
}

func TestSynthesizerApply(t *testing.T) {
	doc, err := svgdoc.ParseBytes([]byte(animSVG))
	if err != nil {
		t.Fatal(err)
	}
	sheet := doc.StyleSheet()
	layer := doc.ElementByID("L2")

	ms, err := NewAnalyzer(nil, nil, nil, nil).Measure(context.Background(), layer)
	if err != nil {
		t.Fatal(err)
	}
	s := &Synthesizer{TimingFunction: "linear"}
	if err := s.Apply(sheet, ms, Allocate(ms), "anim_1"); err != nil {
		t.Fatal(err)
	}

	wantIDs := []string{"pathanim_p1", "pathanim_p2", "pathanim_p3", "anim_1"}
	if got := sheet.IDs(); strings.Join(got, ",") != strings.Join(wantIDs, ",") {
		t.Errorf("IDs() = %v, want %v", got, wantIDs)
	}
	for _, id := range []string{"p1", "p2", "p3"} {
		if got := doc.ElementByID(id).SelectAttrValue("class", ""); got != "anim_1" {
			t.Errorf("%s class = %q, want anim_1", id, got)
		}
	}

	css, _ := sheet.Get("pathanim_p3")
	for _, want := range []string{
		"stroke-dasharray: 5.0 !important;",
		"0%, 80.0% {stroke-dashoffset: 5.0;}",
		"100.0%, 100% {stroke-dashoffset: 0;}",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("pathanim_p3 missing %q:\n%s", want, css)
		}
	}
}

func TestSynthesizerApplyIsIdempotent(t *testing.T) {
	doc, err := svgdoc.ParseBytes([]byte(animSVG))
	if err != nil {
		t.Fatal(err)
	}
	layer := doc.ElementByID("L2")
	a := NewAnalyzer(nil, nil, nil, nil)

	for _, timing := range []string{"ease", "ease-out"} {
		ms, err := a.Measure(context.Background(), layer)
		if err != nil {
			t.Fatal(err)
		}
		s := &Synthesizer{TimingFunction: timing}
		if err := s.Apply(doc.StyleSheet(), ms, Allocate(ms), "anim_0"); err != nil {
			t.Fatal(err)
		}
	}

	sheet := doc.StyleSheet()
	if sheet.Len() != 4 {
		t.Errorf("Len() = %d, want 4", sheet.Len())
	}
	styles := 0
	for _, el := range doc.Root().ChildElements() {
		if el.Tag == "style" {
			styles++
		}
	}
	if styles != 4 {
		t.Errorf("document has %d style elements, want 4", styles)
	}
	css, _ := sheet.Get("anim_0")
	if !strings.Contains(css, "ease-out") {
		t.Errorf("anim_0 = %q, want content of the second insertion", css)
	}
}

func TestAnimationID(t *testing.T) {
	if got := AnimationID(7); got != "anim_7" {
		t.Errorf("AnimationID(7) = %q, want anim_7", got)
	}
}

func TestValidateTimingFunction(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"ease", false},
		{"ease-in", false},
		{"ease-out", false},
		{"ease-in-out", false},
		{"linear", false},
		{"step-start", false},
		{"step-end", false},
		{"cubic-bezier(0.1, 0.7, 1.0, 0.1)", false},
		{"steps(4, jump-end)", false},
		{"linear(0, 0.25, 1)", false},
		{" ease ", false},
		{"", true},
		{"   ", true},
		{"bounce", true},
		{"cubic-bezier()", true},
		{"cubic-bezier(0,0,1,1", true},
		{"ease; color: red", true},
		{"ease} svg {display:none", true},
		{"</style>", true},
	}

	for _, tt := range tests {
		err := ValidateTimingFunction(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTimingFunction(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidOption) {
			t.Errorf("ValidateTimingFunction(%q) code = %v, want INVALID_OPTION", tt.value, errs.GetCode(err))
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0.0"},
		{40, "40.0"},
		{12.5, "12.5"},
		{44.444, "44.444"},
		{0.1 + 0.2, "0.30000000000000004"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{0.000015, "1.5e-05"},
		{123456789012345.6, "123456789012345.6"},
		{1e16, "1e+16"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.v); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestSynthesizerRulesClampedTimeline(t *testing.T) {
	ms := make([]PathMeasurement, 6)
	for i := range ms {
		ms[i] = PathMeasurement{ID: fmt.Sprintf("p%d", i), Length: 1}
	}
	rules, err := (&Synthesizer{}).Rules(ms, Allocate(ms), "anim_0")
	if err != nil {
		t.Fatal(err)
	}

	first, last := rules[0].CSS, rules[5].CSS
	if !strings.Contains(first, "  0%, 0% {stroke-dashoffset: 1.0;}") || !strings.Contains(first, "  16.667%, 100% {") {
		t.Errorf("first path rule = %s", first)
	}
	if !strings.Contains(last, "  0%, 83.33500000000001% {stroke-dashoffset: 1.0;}") || !strings.Contains(last, "  100%, 100% {") {
		t.Errorf("clamped path rule = %s", last)
	}
}

func TestCSSIdent(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"path123", "path123"},
		{"path-4_b", "path-4_b"},
		{"tête", "tête"},
		{"a.b", `a\.b`},
		{"a b:c", `a\ b\:c`},
		{"1abc", `\31 abc`},
		{"-2x", `-\32 x`},
		{"-", `\-`},
		{"x\x01", `x\1 `},
		{"a\x00", "a\uFFFD"},
	}
	for _, tt := range tests {
		if got := cssIdent(tt.id); got != tt.want {
			t.Errorf("cssIdent(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestSynthesizerRulesEscapesIDs(t *testing.T) {
	ms := []PathMeasurement{{ID: "wing.left", Length: 4}}
	rules, err := (&Synthesizer{}).Rules(ms, Allocate(ms), "anim_0")
	if err != nil {
		t.Fatal(err)
	}
	if rules[0].ID != "pathanim_wing.left" {
		t.Errorf("rule id = %q, want the raw path id", rules[0].ID)
	}
	for _, want := range []string{`#wing\.left {`, `animation-name: wing\.left;`, `@keyframes wing\.left {`} {
		if !strings.Contains(rules[0].CSS, want) {
			t.Errorf("path rule missing %q:\n%s", want, rules[0].CSS)
		}
	}
}
