package render

import (
	"encoding/json"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/layout"
)

// MarshalPlan encodes a plan as indented JSON.
func MarshalPlan(plan *layout.Plan) ([]byte, error) {
	return json.MarshalIndent(plan, "", "  ")
}

// UnmarshalPlan decodes a plan written by [MarshalPlan] and rebuilds its
// mappers.
func UnmarshalPlan(data []byte) (*layout.Plan, error) {
	var plan layout.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse plan")
	}
	if len(plan.Canvases) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "plan has no canvases")
	}
	if err := plan.Rebuild(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "rebuild plan")
	}
	return &plan, nil
}
