package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pinmap/pkg/buildinfo"
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/geo"
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/location"
	"github.com/matzehuels/pinmap/pkg/pipeline"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/region"
	"github.com/matzehuels/pinmap/pkg/render"
)

// Response headers describing how a result was produced.
const (
	CacheHeader    = "X-Pinmap-Cache"
	WarningsHeader = "X-Pinmap-Warnings"
)

// uploadField is the multipart form field holding the file.
const uploadField = "file"

// =============================================================================
// Catalog
// =============================================================================

type statusResponse struct {
	Message string         `json:"message"`
	Build   buildinfo.Info `json:"build"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Message: "pinmap API is running",
		Build:   buildinfo.Get(),
	})
}

type regionEntry struct {
	Code  region.Code `json:"code"`
	Label string      `json:"label"`
	Area  region.Area `json:"area"`
}

type projectionEntry struct {
	Name  projection.Projection `json:"name"`
	Label string                `json:"label"`
	SRID  string                `json:"srid"`
}

type aspectEntry struct {
	Name layout.Aspect `json:"name"`
	Size geo.Size      `json:"size"`
}

type catalogResponse struct {
	Regions     []regionEntry     `json:"regions"`
	Projections []projectionEntry `json:"projections"`
	Aspects     []aspectEntry     `json:"aspects"`
	Areas       []region.Area     `json:"areas"`
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	var resp catalogResponse
	for _, c := range region.All() {
		resp.Regions = append(resp.Regions, regionEntry{Code: c, Label: c.Label(), Area: c.FixedArea()})
	}
	for _, p := range projection.All() {
		resp.Projections = append(resp.Projections, projectionEntry{Name: p, Label: p.Label(), SRID: p.SRID()})
	}
	for _, a := range layout.Aspects() {
		resp.Aspects = append(resp.Aspects, aspectEntry{Name: a, Size: a.Size()})
	}
	resp.Areas = region.Areas()
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Base maps
// =============================================================================

type extentResponse struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

type boundsResponse struct {
	Area       region.Area           `json:"area"`
	Projection projection.Projection `json:"projection"`
	SRID       string                `json:"srid"`
	Extent     extentResponse        `json:"extent"`
	Aspect     float64               `json:"aspect"`
	Warnings   []layout.Warning      `json:"warnings,omitempty"`
}

func (s *Server) handleMapBounds(w http.ResponseWriter, r *http.Request) {
	area, p, warnings, err := s.areaQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ext := p.Extent(area.Bounds)
	writeJSON(w, http.StatusOK, boundsResponse{
		Area:       area,
		Projection: p,
		SRID:       p.SRID(),
		Extent:     extentResponse{West: ext.West, South: ext.South, East: ext.East, North: ext.North},
		Aspect:     ext.Aspect(),
		Warnings:   warnings,
	})
}

func (s *Server) handleMapImage(w http.ResponseWriter, r *http.Request) {
	area, p, warnings, err := s.areaQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	img, err := s.runner.BaseMaps.Generate(r.Context(), area, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set(WarningsHeader, fmt.Sprint(len(warnings)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.PNG)
}

// areaQuery resolves the area and projection named by the query string.
// "area" selects a named area; otherwise "region" (and, for the US,
// "variant") picks one. Unknown region and projection names fall back to
// the configured defaults with a warning; an unknown region always shows the
// continental US frame. Unknown areas and variants fail.
func (s *Server) areaQuery(r *http.Request) (region.Area, projection.Projection, []layout.Warning, error) {
	q := r.URL.Query()
	var warnings []layout.Warning
	warn := func(err error) {
		warnings = append(warnings, layout.Warning{
			Code:    errors.GetCodeOr(err, errors.ErrCodeConfiguration),
			Message: errors.UserMessage(err),
		})
	}

	p, err := resolveProjection(orDefault(q.Get("projection"), s.defaults.Projection))
	if err != nil {
		warn(err)
	}

	if name := q.Get("area"); name != "" {
		a, ok := region.AreaByName(name)
		if !ok {
			return region.Area{}, "", nil, errors.New(errors.ErrCodeNotFound, "unknown area %q", name)
		}
		return a, p, warnings, nil
	}

	code, err := region.ParseCode(orDefault(q.Get("region"), s.defaults.Region))
	if err != nil {
		warn(err)
		return region.Resolve(region.Unrecognized, nil).Area, p, warnings, nil
	}
	area := code.FixedArea()
	if v := q.Get("variant"); v != "" {
		if code != region.US {
			return region.Area{}, "", nil, errors.New(errors.ErrCodeInvalidInput, "variant only applies to region %s", region.US)
		}
		variant, err := parseVariant(v)
		if err != nil {
			return region.Area{}, "", nil, err
		}
		area = variant.Area()
	}
	return area, p, warnings, nil
}

func resolveProjection(name string) (projection.Projection, error) {
	p, err := projection.Lookup(name)
	if err == nil {
		return p, nil
	}
	if sp, srErr := projection.FromSRID(name); srErr == nil {
		return sp, nil
	}
	return p, err
}

func parseVariant(s string) (region.Variant, error) {
	for _, v := range []region.Variant{region.Continental, region.WithAlaska, region.WithHawaii, region.Full} {
		if string(v) == s {
			return v, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown variant %q", s)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// =============================================================================
// Ingest
// =============================================================================

type uploadResponse struct {
	Set      location.Set `json:"set"`
	Total    int          `json:"total"`
	Valid    int          `json:"valid"`
	Excluded int          `json:"excluded"`
	// Extent bounds the valid points; absent when there are none.
	Extent *geo.Bounds `json:"extent,omitempty"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody())
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read multipart field %q", uploadField))
		return
	}
	defer file.Close()

	set, err := pipeline.ReadUpload(header.Filename, file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	valid := len(set.Valid())
	resp := uploadResponse{
		Set:      set,
		Total:    len(set.Points),
		Valid:    valid,
		Excluded: len(set.Points) - valid,
	}
	if b, ok := location.Extent(set); ok {
		resp.Extent = &b
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Layout and rendering
// =============================================================================

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	plan, hit, err := s.runner.PlanWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set(CacheHeader, hitText(hit))
	w.Header().Set(WarningsHeader, fmt.Sprint(len(plan.Warnings)))
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f, err := requestedFormat(r, opts.Formats)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{string(f)}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set(CacheHeader, hitText(result.CacheInfo.PlanHit && result.CacheInfo.RenderHit))
	w.Header().Set(WarningsHeader, fmt.Sprint(len(result.Plan.Warnings)))
	writeArtifact(w, f, result.Artifacts[f])
}

// =============================================================================
// Stored plans
// =============================================================================

type savedPlanResponse struct {
	ID   string       `json:"id"`
	Plan *layout.Plan `json:"plan"`
}

func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "plan storage is disabled"))
		return
	}
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	plan, err := s.runner.Plan(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.store.Save(r.Context(), plan)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/plans/"+id)
	writeJSON(w, http.StatusCreated, savedPlanResponse{ID: id, Plan: plan})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "plan storage is disabled"))
		return
	}
	id := chi.URLParam(r, "id")
	if err := errors.ValidatePlanID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	plan, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	f, err := requestedFormat(r, []string{string(render.FormatJSON)})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if f == render.FormatJSON {
		writeJSON(w, http.StatusOK, plan)
		return
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), plan, pipeline.Options{Formats: []string{string(f)}})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set(CacheHeader, hitText(hit))
	writeArtifact(w, f, artifacts[f])
}

// =============================================================================
// Helpers
// =============================================================================

// decodeOptions reads pipeline options from the JSON body and applies the
// configured layout defaults to unset fields.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody()))
	if err := dec.Decode(&opts); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	opts.Region = orDefault(opts.Region, s.defaults.Region)
	opts.Projection = orDefault(opts.Projection, s.defaults.Projection)
	opts.Aspect = orDefault(opts.Aspect, s.defaults.Aspect)
	opts.Logger = s.logger.With("request_id", RequestIDFrom(r.Context()))
	return opts, nil
}

// requestedFormat takes the "format" query parameter, else the first of
// fallback, else SVG.
func requestedFormat(r *http.Request, fallback []string) (render.Format, error) {
	name := r.URL.Query().Get("format")
	if name == "" && len(fallback) > 0 {
		name = fallback[0]
	}
	if name == "" {
		return render.FormatSVG, nil
	}
	return render.ParseFormat(name)
}

func writeArtifact(w http.ResponseWriter, f render.Format, data []byte) {
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="map%s"`, f.Extension()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) maxBody() int64 {
	if s.cfg.MaxUploadBytes > 0 {
		return s.cfg.MaxUploadBytes
	}
	return 10 << 20
}

func hitText(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
