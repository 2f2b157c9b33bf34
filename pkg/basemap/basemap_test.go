package basemap

import (
	"context"
	"math"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/pinmap/pkg/cache"
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/geo"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/region"
)

func TestGraticuleAspect(t *testing.T) {
	ctx := context.Background()
	g := NewGraticule(WithWidth(300))

	tests := []struct {
		area region.Area
		proj projection.Projection
	}{
		{region.USContinental, projection.WebMercator},
		{region.EuropeArea, projection.Robinson},
		{region.WorldArea, projection.EqualEarth},
		{region.HawaiiInset, projection.WebMercator},
	}
	for _, tt := range tests {
		t.Run(tt.area.Name+"/"+string(tt.proj), func(t *testing.T) {
			img, err := g.Generate(ctx, tt.area, tt.proj)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if img.Width != 300 {
				t.Errorf("Width = %d, want 300", img.Width)
			}
			want := tt.proj.Extent(tt.area.Bounds).Aspect()
			// Rounding the height to whole pixels bounds the error.
			tol := want / float64(img.Height)
			if math.Abs(img.Aspect()-want) > tol {
				t.Errorf("Aspect() = %.4f, want %.4f ± %.4f", img.Aspect(), want, tol)
			}

			decoded, err := Decode(img.PNG)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if decoded.Width != img.Width || decoded.Height != img.Height {
				t.Errorf("decoded %dx%d, want %dx%d", decoded.Width, decoded.Height, img.Width, img.Height)
			}
		})
	}
}

func TestGraticuleDeterministic(t *testing.T) {
	ctx := context.Background()
	g := NewGraticule(WithWidth(120))
	a, err := g.Generate(ctx, region.UKArea, projection.WebMercator)
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Generate(ctx, region.UKArea, projection.WebMercator)
	if err != nil {
		t.Fatal(err)
	}
	if string(a.PNG) != string(b.PNG) {
		t.Error("two renders of the same area differ")
	}
}

func TestGraticuleDegenerate(t *testing.T) {
	ctx := context.Background()
	g := NewGraticule(WithWidth(100))

	flat := region.Area{Name: "flat", Bounds: geo.Bounds{North: 10, South: 0, East: 5, West: 5}}
	if _, err := g.Generate(ctx, flat, projection.WebMercator); !errors.Is(err, errors.ErrCodeDegenerateBounds) {
		t.Errorf("zero-width area: error = %v, want DEGENERATE_BOUNDS", err)
	}

	inverted := region.Area{Name: "inverted", Bounds: geo.Bounds{North: 0, South: 10, East: 5, West: 0}}
	if _, err := g.Generate(ctx, inverted, projection.WebMercator); err == nil {
		t.Error("inverted area: expected error")
	}
}

func TestGraticuleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewGraticule().Generate(ctx, region.USContinental, projection.WebMercator); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not a png")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Decode() error = %v, want INVALID_FORMAT", err)
	}
}

type countingGenerator struct {
	*Graticule
	calls atomic.Int32
}

func (c *countingGenerator) Generate(ctx context.Context, area region.Area, p projection.Projection) (Image, error) {
	c.calls.Add(1)
	return c.Graticule.Generate(ctx, area, p)
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	gen := &countingGenerator{Graticule: NewGraticule(WithWidth(100))}
	c := NewCached(gen, fc, nil)

	first, hit, err := c.GenerateWithCacheInfo(ctx, region.UKArea, projection.WebMercator)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first call should miss")
	}
	second, hit, err := c.GenerateWithCacheInfo(ctx, region.UKArea, projection.WebMercator)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second call should hit")
	}
	if gen.calls.Load() != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls.Load())
	}
	if string(first.PNG) != string(second.PNG) || second.Width != first.Width || second.Height != first.Height {
		t.Error("cached image differs from generated image")
	}

	fresh := c.Refreshed()
	if _, hit, _ := fresh.GenerateWithCacheInfo(ctx, region.UKArea, projection.WebMercator); hit {
		t.Error("refresh should bypass the cache")
	}
	if gen.calls.Load() != 2 {
		t.Errorf("generator calls = %d, want 2", gen.calls.Load())
	}
	if _, hit, _ := c.GenerateWithCacheInfo(ctx, region.UKArea, projection.WebMercator); !hit {
		t.Error("the original should still read the cache")
	}
}

func TestCachedKeyDependsOnSettings(t *testing.T) {
	a := NewCached(NewGraticule(WithWidth(100)), nil, nil)
	b := NewCached(NewGraticule(WithWidth(200)), nil, nil)
	c := NewCached(NewGraticule(WithWidth(100), WithoutLabels()), nil, nil)

	ka := a.Key(region.UKArea, projection.WebMercator)
	if ka == b.Key(region.UKArea, projection.WebMercator) {
		t.Error("width should change the key")
	}
	if ka == c.Key(region.UKArea, projection.WebMercator) {
		t.Error("labels should change the key")
	}
	if ka == a.Key(region.UKArea, projection.Robinson) {
		t.Error("projection should change the key")
	}
}

func TestCachedCorruptEntry(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	gen := &countingGenerator{Graticule: NewGraticule(WithWidth(80))}
	c := NewCached(gen, fc, nil)

	key := c.Key(region.UKArea, projection.WebMercator)
	if err := fc.Set(ctx, key, []byte("junk"), 0); err != nil {
		t.Fatal(err)
	}
	img, hit, err := c.GenerateWithCacheInfo(ctx, region.UKArea, projection.WebMercator)
	if err != nil {
		t.Fatal(err)
	}
	if hit || gen.calls.Load() != 1 {
		t.Errorf("corrupt entry: hit = %v, calls = %d", hit, gen.calls.Load())
	}
	if img.Width != 80 {
		t.Errorf("Width = %d, want 80", img.Width)
	}
}

func TestAspectFunc(t *testing.T) {
	aspectOf := AspectFunc(context.Background(), NewGraticule(WithWidth(400)))
	got, err := aspectOf(region.USContinental, projection.WebMercator)
	if err != nil {
		t.Fatal(err)
	}
	want := projection.WebMercator.Extent(region.USContinental.Bounds).Aspect()
	if math.Abs(got-want) > 0.02 {
		t.Errorf("aspect = %.4f, want about %.4f", got, want)
	}
}

func TestGridStep(t *testing.T) {
	tests := []struct {
		span, want float64
	}{
		{360, 30},
		{59, 10},
		{20, 5},
		{6, 1},
		{2, 0.5},
	}
	for _, tt := range tests {
		if got := gridStep(tt.span); got != tt.want {
			t.Errorf("gridStep(%v) = %v, want %v", tt.span, got, tt.want)
		}
	}
}

func TestLabels(t *testing.T) {
	if got := latLabel(40); got != "40N" {
		t.Errorf("latLabel(40) = %q", got)
	}
	if got := latLabel(-22.5); got != "22.5S" {
		t.Errorf("latLabel(-22.5) = %q", got)
	}
	if got := lngLabel(-120); got != "120W" {
		t.Errorf("lngLabel(-120) = %q", got)
	}
	if got := lngLabel(0); got != "0" {
		t.Errorf("lngLabel(0) = %q", got)
	}
}

type countingTransformer struct {
	projection.Catalog
	calls atomic.Int64
}

func (c *countingTransformer) Forward(srid string, lng, lat float64) (float64, float64, error) {
	c.calls.Add(1)
	return c.Catalog.Forward(srid, lng, lat)
}

type refusingTransformer struct{}

func (refusingTransformer) Forward(srid string, _, _ float64) (float64, float64, error) {
	return 0, 0, errors.New(errors.ErrCodeUnsupported, "no transform for %s", srid)
}

func TestGraticuleTransformer(t *testing.T) {
	ctx := context.Background()
	tr := &countingTransformer{}
	img, err := NewGraticule(WithWidth(120), WithTransformer(tr)).Generate(ctx, region.UKArea, projection.Robinson)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 120 {
		t.Errorf("Width = %d, want 120", img.Width)
	}
	if tr.calls.Load() <= 2 {
		t.Errorf("transformer calls = %d, want graticule vertices projected through it", tr.calls.Load())
	}

	_, err = NewGraticule(WithWidth(120), WithTransformer(refusingTransformer{})).Generate(ctx, region.UKArea, projection.Robinson)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("refusing transformer: error = %v, want UNSUPPORTED", err)
	}
}

func TestGraticuleSampling(t *testing.T) {
	tests := []struct {
		proj      projection.Projection
		wantSteps int
	}{
		{projection.WebMercator, 1},
		{projection.Robinson, segments},
		{projection.EqualEarth, segments},
	}
	for _, tt := range tests {
		t.Run(string(tt.proj), func(t *testing.T) {
			pj := pixelProjector{straight: tt.proj.Cylindrical()}
			if got := pj.steps(); got != tt.wantSteps {
				t.Errorf("steps() = %d, want %d", got, tt.wantSteps)
			}
		})
	}

	ctx := context.Background()
	calls := map[projection.Projection]int64{}
	for _, p := range []projection.Projection{projection.WebMercator, projection.Robinson} {
		tr := &countingTransformer{}
		g := NewGraticule(WithWidth(120), WithoutLabels(), WithTransformer(tr))
		if _, err := g.Generate(ctx, region.UKArea, p); err != nil {
			t.Fatal(err)
		}
		calls[p] = tr.calls.Load()
	}
	if calls[projection.WebMercator] >= calls[projection.Robinson] {
		t.Errorf("mercator projected %d vertices, robinson %d; straight lines need fewer",
			calls[projection.WebMercator], calls[projection.Robinson])
	}
}
