package style

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/pinmap/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#dc3545", RGB{0xdc, 0x35, 0x45}, false},
		{"dc3545", RGB{0xdc, 0x35, 0x45}, false},
		{"#FFF", RGB{0xff, 0xff, 0xff}, false},
		{"#0a0", RGB{0x00, 0xaa, 0x00}, false},
		{" #000000 ", RGB{}, false},
		{"", RGB{}, true},
		{"#12", RGB{}, true},
		{"#1234567", RGB{}, true},
		{"#gg0000", RGB{}, true},
		{"#+12345", RGB{}, true},
		{"red", RGB{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidColor) {
					t.Errorf("code = %v, want INVALID_COLOR", errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseShape(t *testing.T) {
	tests := map[string]Shape{
		"circle":   Circle,
		"Square":   Square,
		"triangle": Triangle,
		"star":     Star,
		"hexagon":  Circle,
		"":         Circle,
	}
	for in, want := range tests {
		if got := ParseShape(in); got != want {
			t.Errorf("ParseShape(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestResolveEmptyIsDefaults(t *testing.T) {
	r := NewResolver(Defaults())
	got, err := r.Resolve(Override{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != Defaults() {
		t.Errorf("Resolve({}) = %+v, want %+v", got, Defaults())
	}
}

func TestResolveFieldsIndependently(t *testing.T) {
	r := NewResolver(Defaults())
	got, err := r.Resolve(Override{
		Color:      ptr("#0d6efd"),
		Shape:      ptr("star"),
		ShowLabels: ptr(false),
		Size:       ptr(0.35),
	})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	want := Defaults()
	want.Color = RGB{0x0d, 0x6e, 0xfd}
	want.Shape = Star
	want.ShowLabels = false
	want.Size = 0.35
	if got != want {
		t.Errorf("Resolve = %+v, want %+v", got, want)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		o    Override
		code errors.Code
	}{
		{"bad marker color", Override{Color: ptr("#zzzzzz")}, errors.ErrCodeInvalidColor},
		{"short label color", Override{LabelBgColor: ptr("#ff")}, errors.ErrCodeInvalidColor},
		{"zero size", Override{Size: ptr(0.0)}, errors.ErrCodeInvalidInput},
		{"negative outline", Override{OutlineWidth: ptr(-1.0)}, errors.ErrCodeInvalidInput},
		{"zero font", Override{LabelFontSize: ptr(0.0)}, errors.ErrCodeInvalidInput},
		{"nan size", Override{Size: ptr(math.NaN())}, errors.ErrCodeInvalidInput},
		{"infinite size", Override{Size: ptr(math.Inf(1))}, errors.ErrCodeInvalidInput},
		{"nan outline", Override{OutlineWidth: ptr(math.NaN())}, errors.ErrCodeInvalidInput},
		{"nan font", Override{LabelFontSize: ptr(math.NaN())}, errors.ErrCodeInvalidInput},
	}
	r := NewResolver(Defaults())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.o)
			if !errors.Is(err, tt.code) {
				t.Errorf("Resolve error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestResolverDefaultsAreIsolated(t *testing.T) {
	d := Defaults()
	r := NewResolver(d)
	d.Color = RGB{1, 2, 3}
	if r.Defaults().Color == d.Color {
		t.Error("resolver must keep its own copy of defaults")
	}
	if Defaults().Color != (RGB{0xdc, 0x35, 0x45}) {
		t.Error("Defaults() must return a fresh value")
	}
}

func TestOverrideMerge(t *testing.T) {
	base := Override{Color: ptr("#111111"), Shape: ptr("square")}
	top := Override{Color: ptr("#222222"), ShowShadow: ptr(true)}
	got := base.Merge(top)
	if *got.Color != "#222222" || *got.Shape != "square" || !*got.ShowShadow {
		t.Errorf("Merge = %+v", got)
	}
	if *base.Color != "#111111" {
		t.Error("Merge must not modify the receiver's fields")
	}
	if !(Override{}).IsZero() || got.IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestOverrideJSONNames(t *testing.T) {
	var o Override
	data := []byte(`{"markerColor":"#00ff00","markerShape":"triangle","labelBold":false}`)
	if err := json.Unmarshal(data, &o); err != nil {
		t.Fatal(err)
	}
	if o.Color == nil || *o.Color != "#00ff00" || o.Shape == nil || o.LabelBold == nil || *o.LabelBold {
		t.Errorf("Unmarshal = %+v", o)
	}
	if o.Size != nil {
		t.Error("absent field must stay nil")
	}
}

func TestStyleJSONColors(t *testing.T) {
	data, err := json.Marshal(Defaults())
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m["markerColor"] != "#dc3545" {
		t.Errorf("markerColor = %v", m["markerColor"])
	}
	var back Style
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != Defaults() {
		t.Errorf("round trip = %+v", back)
	}
}

func TestLoadPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brand.toml")
	content := `
markerColor = "#0d6efd"
markerShape = "square"
markerSize = 0.25
showShadow = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	o, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset error: %v", err)
	}
	if *o.Color != "#0d6efd" || *o.Shape != "square" || *o.Size != 0.25 || !*o.ShowShadow {
		t.Errorf("LoadPreset = %+v", o)
	}
	if o.ShowLabels != nil {
		t.Error("unset key must stay nil")
	}
}

func TestLoadPresetErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadPreset(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := ParsePreset([]byte(`colour = "#fff"`)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown key error = %v", err)
	}
	if _, err := ParsePreset([]byte(`markerColor = `)); err == nil {
		t.Error("syntax error should fail")
	}

	// TOML spells NaN; the preset parses but never resolves.
	o, err := ParsePreset([]byte("markerSize = nan\n"))
	if err != nil {
		t.Fatalf("ParsePreset(nan) error = %v", err)
	}
	if _, err := NewResolver(Defaults()).Resolve(o); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Resolve(nan preset) error = %v, want INVALID_INPUT", err)
	}
}
