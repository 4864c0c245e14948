package animate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/takitaro/pkg/cache"
	errs "github.com/matzehuels/takitaro/pkg/errors"
	"github.com/matzehuels/takitaro/pkg/geometry"
	"github.com/matzehuels/takitaro/pkg/observability"
	"github.com/matzehuels/takitaro/pkg/svgdoc"
)

// ErrNoAnimatablePaths matches, via errors.Is, the error returned for a layer
// without measurable path elements.
var ErrNoAnimatablePaths = errs.Sentinel(errs.ErrCodeNoAnimatablePaths)

// NoPathsHint is shown to users when a layer has nothing to animate.
const NoPathsHint = "Please convert all objects to paths before running this extension."

// idNamespace seeds generated path ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/takitaro/path"))

// PathMeasurement is the animatable length of one path element.
type PathMeasurement struct {
	Element *etree.Element
	ID      string
	Length  float64
}

// Analyzer measures the paths of a layer.
type Analyzer struct {
	Geometry geometry.Measurer
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger

	// SkipUnmeasurable drops paths whose data cannot be measured instead of
	// failing the layer.
	SkipUnmeasurable bool
}

// NewAnalyzer returns an Analyzer. A nil measurer defaults to a
// [geometry.PathMeasurer], a nil cache disables caching and a nil logger
// discards output.
func NewAnalyzer(m geometry.Measurer, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Analyzer {
	if m == nil {
		m = geometry.NewPathMeasurer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Analyzer{Geometry: m, Cache: c, Keyer: keyer, Logger: logger}
}

// Measure returns the animatable length of every path below layer, in
// document order. Paths without an id get a generated one so that CSS rules
// can target them.
//
// A layer without paths yields an error matching [ErrNoAnimatablePaths].
// Unmeasurable path data yields a GEOMETRY_FAILURE error unless
// SkipUnmeasurable is set.
func (a *Analyzer) Measure(ctx context.Context, layer *etree.Element) ([]PathMeasurement, error) {
	layerID := svgdoc.ID(layer)
	paths := svgdoc.Paths(layer)
	if len(paths) == 0 {
		return nil, errs.New(errs.ErrCodeNoAnimatablePaths, "layer %q has no path elements", layerID)
	}

	out := make([]PathMeasurement, 0, len(paths))
	for i, p := range paths {
		id := svgdoc.ID(p)
		if id == "" {
			id = generatedID(layerID, i)
			p.CreateAttr("id", id)
			a.Logger.Debug("assigned path id", "layer", layerID, "path", id)
		}

		m, err := a.measure(ctx, p.SelectAttrValue("d", ""))
		if err != nil {
			if a.SkipUnmeasurable {
				a.Logger.Warn("skipping unmeasurable path", "layer", layerID, "path", id, "err", err)
				continue
			}
			return nil, errs.Wrap(errs.ErrCodeGeometry, err, "measure path %q", id)
		}
		out = append(out, PathMeasurement{Element: p, ID: id, Length: m.Longest()})
	}

	if len(out) == 0 {
		return nil, errs.New(errs.ErrCodeNoAnimatablePaths, "layer %q has no measurable path elements", layerID)
	}
	return out, nil
}

func (a *Analyzer) measure(ctx context.Context, d string) (geometry.Measurement, error) {
	key := a.Keyer.MeasurementKey(d)

	if data, hit, err := a.Cache.Get(ctx, key); err == nil && hit {
		var m geometry.Measurement
		if err := json.Unmarshal(data, &m); err == nil {
			observability.Cache().OnCacheHit(ctx, "measure")
			return m, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "measure")

	m, err := a.Geometry.Measure(d)
	if err != nil {
		return geometry.Measurement{}, err
	}

	if data, err := json.Marshal(m); err == nil {
		if err := a.Cache.Set(ctx, key, data, cache.MeasurementTTL); err != nil {
			a.Logger.Debug("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "measure", len(data))
		}
	}
	return m, nil
}

// generatedID derives a stable id for the i-th path of a layer.
func generatedID(layerID string, i int) string {
	return "path-" + uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%s/%d", layerID, i))).String()
}

// TotalLength sums the lengths of ms.
func TotalLength(ms []PathMeasurement) float64 {
	var total float64
	for _, m := range ms {
		total += m.Length
	}
	return total
}
