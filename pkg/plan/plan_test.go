package plan

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/matzehuels/takitaro/pkg/svgdoc"
)

var birdLayers = []Layer{
	{ID: "L1", Label: "bg"},
	{ID: "L2", Label: "sky"},
	{ID: "L3", Label: "bird"},
}

func TestListLayers(t *testing.T) {
	doc, err := svgdoc.ParseBytes([]byte(`<svg xmlns="http://www.w3.org/2000/svg"
     xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">
  <g id="bird" inkscape:groupmode="layer" inkscape:label="Bird"/>
  <g id="other"/>
  <g id="sky" inkscape:groupmode="layer" inkscape:label="SKY"/>
  <g id="bg" inkscape:groupmode="layer"/>
</svg>`))
	if err != nil {
		t.Fatal(err)
	}

	got := ListLayers(doc)
	want := []Layer{
		{ID: "bg", Label: ""},
		{ID: "sky", Label: "sky"},
		{ID: "bird", Label: "bird"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListLayers() = %v, want %v", got, want)
	}
}

func TestPlanExports(t *testing.T) {
	tests := []struct {
		name   string
		layers []Layer
		opts   Options
		want   []ExportStep
	}{
		{
			name:   "enumerated without background",
			layers: birdLayers,
			opts:   Options{Enumerate: true},
			want: []ExportStep{
				{Index: 1, Visible: []string{"L1", "L2"}, FileName: "002_sky"},
				{Index: 2, Visible: []string{"L1", "L2", "L3"}, FileName: "003_bird"},
			},
		},
		{
			name:   "labels with background",
			layers: birdLayers,
			opts:   Options{IncludeBackground: true},
			want: []ExportStep{
				{Index: 0, Visible: []string{"L1"}, FileName: "bg"},
				{Index: 1, Visible: []string{"L1", "L2"}, FileName: "sky"},
				{Index: 2, Visible: []string{"L1", "L2", "L3"}, FileName: "bird"},
			},
		},
		{
			name:   "single layer without background",
			layers: birdLayers[:1],
			opts:   Options{Enumerate: true},
			want:   nil,
		},
		{
			name:   "single layer with background",
			layers: birdLayers[:1],
			opts:   Options{IncludeBackground: true, Enumerate: true},
			want:   []ExportStep{{Index: 0, Visible: []string{"L1"}, FileName: "001_bg"}},
		},
		{
			name:   "no layers",
			layers: nil,
			opts:   Options{IncludeBackground: true},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanExports(tt.layers, tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PlanExports() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlanExportsProperties(t *testing.T) {
	for n := 0; n <= 6; n++ {
		layers := make([]Layer, n)
		for i := range layers {
			layers[i] = Layer{ID: fmt.Sprintf("L%d", i), Label: fmt.Sprintf("layer%d", i)}
		}

		for _, bg := range []bool{false, true} {
			t.Run(fmt.Sprintf("n=%d/background=%v", n, bg), func(t *testing.T) {
				steps := PlanExports(layers, Options{IncludeBackground: bg})

				want := n
				if !bg && n > 0 {
					want = n - 1
				}
				if len(steps) != want {
					t.Fatalf("got %d steps, want %d", len(steps), want)
				}

				for i, s := range steps {
					if s.Top() != layers[s.Index].ID {
						t.Errorf("step %d: Top() = %s, want %s", i, s.Top(), layers[s.Index].ID)
					}
					for j := 0; j <= s.Index; j++ {
						if !s.Contains(layers[j].ID) {
							t.Errorf("step %d: missing layer %s", i, layers[j].ID)
						}
					}
					if len(s.Visible) != s.Index+1 {
						t.Errorf("step %d: %d visible layers, want %d", i, len(s.Visible), s.Index+1)
					}
					if i > 0 {
						prev := steps[i-1]
						if len(s.Visible) != len(prev.Visible)+1 {
							t.Errorf("step %d is not a strict superset of step %d", i, i-1)
						}
						for _, id := range prev.Visible {
							if !s.Contains(id) {
								t.Errorf("step %d dropped layer %s", i, id)
							}
						}
					}
				}
			})
		}
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		i         int
		label     string
		enumerate bool
		want      string
	}{
		{0, "bg", false, "bg"},
		{0, "bg", true, "001_bg"},
		{41, "sky", true, "042_sky"},
		{999, "x", true, "1000_x"},
		{2, "", true, "003_"},
		{2, "", false, ""},
	}

	for _, tt := range tests {
		if got := FileName(tt.i, tt.label, tt.enumerate); got != tt.want {
			t.Errorf("FileName(%d, %q, %v) = %q, want %q", tt.i, tt.label, tt.enumerate, got, tt.want)
		}
	}
}

func TestDuplicateFileNames(t *testing.T) {
	steps := PlanExports([]Layer{
		{ID: "a", Label: "bg"},
		{ID: "b", Label: "x"},
		{ID: "c", Label: "y"},
		{ID: "d", Label: "x"},
		{ID: "e", Label: "x"},
	}, Options{})

	if got := DuplicateFileNames(steps); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("DuplicateFileNames() = %v, want [x]", got)
	}

	enumerated := PlanExports(birdLayers, Options{Enumerate: true})
	if got := DuplicateFileNames(enumerated); len(got) != 0 {
		t.Errorf("DuplicateFileNames() = %v, want none", got)
	}
}

func TestExportStepTopEmpty(t *testing.T) {
	if got := (ExportStep{}).Top(); got != "" {
		t.Errorf("Top() = %q, want empty", got)
	}
}

func ExamplePlanExports() {
	layers := []Layer{
		{ID: "L1", Label: "bg"},
		{ID: "L2", Label: "sky"},
		{ID: "L3", Label: "bird"},
	}
	for _, s := range PlanExports(layers, Options{Enumerate: true}) {
		fmt.Println(s.Visible, s.FileName)
	}
	// Output:
	// [L1 L2] 002_sky
	// [L1 L2 L3] 003_bird
}
