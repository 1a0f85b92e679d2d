package handlers

import (
	"context"
	"math"

	"github.com/RMahshie/basscalc/internal/params"
	"github.com/RMahshie/basscalc/internal/processing"
	"github.com/RMahshie/basscalc/pkg/models"
	"github.com/rs/zerolog/log"
)

// ParameterHandler handles parameter-related HTTP requests
type ParameterHandler struct {
	svc processing.Service
}

// NewParameterHandler creates a new parameter handler
func NewParameterHandler(svc processing.Service) *ParameterHandler {
	return &ParameterHandler{svc: svc}
}

// ListParameters returns every parameter grouped for display
func (h *ParameterHandler) ListParameters(ctx context.Context, _ *struct{}) (*models.ListParametersResponse, error) {
	return h.groups(), nil
}

// GetParameter returns one parameter with its inputs and dependents
func (h *ParameterHandler) GetParameter(ctx context.Context, req *models.GetParameterRequest) (*models.GetParameterResponse, error) {
	d, err := h.svc.Parameter(req.Name)
	if err != nil {
		return nil, statusError("Parameter not found", err)
	}
	return &models.GetParameterResponse{Body: toDetail(d)}, nil
}

// UpdateParameter edits the value, percent or precision of one parameter
func (h *ParameterHandler) UpdateParameter(ctx context.Context, req *models.UpdateParameterRequest) (*models.GetParameterResponse, error) {
	log.Info().Str("parameter", req.Name).Msg("Parameter update request received")

	d, err := h.svc.UpdateParameter(req.Name, processing.Update{
		Value:     req.Body.Value,
		Percent:   req.Body.Percent,
		Precision: req.Body.Precision,
	})
	if err != nil {
		return nil, statusError("Failed to update parameter", err)
	}
	return &models.GetParameterResponse{Body: toDetail(d)}, nil
}

// Recompute runs a recompute pass and returns the new values
func (h *ParameterHandler) Recompute(ctx context.Context, _ *struct{}) (*models.ListParametersResponse, error) {
	h.svc.Recompute()
	return h.groups(), nil
}

// Reset restores the default model
func (h *ParameterHandler) Reset(ctx context.Context, _ *struct{}) (*models.ListParametersResponse, error) {
	h.svc.Reset()
	return h.groups(), nil
}

func (h *ParameterHandler) groups() *models.ListParametersResponse {
	all := h.svc.Parameters()

	resp := &models.ListParametersResponse{}
	for _, g := range params.Groups() {
		group := models.ParameterGroup{Name: g.String()}
		for _, p := range all {
			if p.Group == g {
				group.Parameters = append(group.Parameters, toParameter(p))
			}
		}
		resp.Body.Groups = append(resp.Body.Groups, group)
	}
	return resp
}

// toParameter converts to the API view. JSON has no NaN or Inf, so
// non-finite values are reported as zero with Finite unset.
func toParameter(p params.Parameter) models.Parameter {
	out := models.Parameter{
		Name:      p.Name,
		Unit:      p.Unit,
		Value:     p.Value,
		Display:   p.FormatValue(),
		Min:       p.Min,
		Max:       p.Max,
		Percent:   p.Percent(),
		Precision: p.Precision,
		Group:     p.Group.String(),
		Derived:   p.Derived(),
		Finite:    isFinite(p.Value),
	}
	if !out.Finite {
		out.Value = 0
	}
	if !isFinite(out.Percent) {
		out.Percent = 0
	}
	return out
}

func toDetail(d processing.Detail) models.ParameterDetail {
	inputs, dependents := d.Inputs, d.Dependents
	if inputs == nil {
		inputs = []string{}
	}
	if dependents == nil {
		dependents = []string{}
	}
	return models.ParameterDetail{
		Parameter:  toParameter(d.Parameter),
		Inputs:     inputs,
		Dependents: dependents,
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
