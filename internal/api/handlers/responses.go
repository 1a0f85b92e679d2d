package handlers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/RMahshie/basscalc/internal/chart"
	"github.com/RMahshie/basscalc/internal/processing"
	"github.com/RMahshie/basscalc/internal/transfer"
	"github.com/RMahshie/basscalc/pkg/models"
	"github.com/rs/zerolog/log"
)

// ResponseHandler serves sampled frequency responses
type ResponseHandler struct {
	svc      processing.Service
	defaults transfer.Sweep
}

// NewResponseHandler creates a new response handler. Requests that omit
// min, max or step are filled in from defaults.
func NewResponseHandler(svc processing.Service, defaults transfer.Sweep) *ResponseHandler {
	return &ResponseHandler{svc: svc, defaults: defaults}
}

// sweep builds the requested sweep, taking zero bounds and step from the
// configured defaults.
func (h *ResponseHandler) sweep(req *models.GetResponseRequest) transfer.Sweep {
	s := transfer.Sweep{
		Min:    req.Min,
		Max:    req.Max,
		Step:   req.Step,
		Log:    req.Log,
		Points: req.Points,
	}
	if s.Min == 0 {
		s.Min = h.defaults.Min
	}
	if s.Max == 0 {
		s.Max = h.defaults.Max
	}
	if s.Step == 0 {
		s.Step = h.defaults.Step
	}
	return s
}

func (h *ResponseHandler) curve(req *models.GetResponseRequest) (processing.Curve, error) {
	variant, err := transfer.ParseVariant(req.Variant)
	if err != nil {
		return processing.Curve{}, statusError("Unknown response variant", err)
	}

	curve, err := h.svc.Response(variant, h.sweep(req))
	if err != nil {
		return processing.Curve{}, statusError("Invalid sweep", err)
	}
	return curve, nil
}

// GetResponse samples one response variant
func (h *ResponseHandler) GetResponse(ctx context.Context, req *models.GetResponseRequest) (*models.GetResponseResponse, error) {
	curve, err := h.curve(req)
	if err != nil {
		return nil, err
	}

	body := models.ResponseCurveBody{
		Variant:       curve.Variant.String(),
		Coefficients:  coefficients(curve.Data),
		FrequencyData: make([]models.FrequencyPoint, len(curve.Points)),
	}

	for i, p := range curve.Points {
		fp := models.FrequencyPoint{Frequency: p.Frequency}
		if p.Valid {
			fp.Magnitude = finitePtr(p.Magnitude)
			fp.Level = finitePtr(p.Level())
			if curve.Variant == transfer.Impedance {
				fp.Ohms = finitePtr(curve.Ohms(p))
			}
		}
		if fp.Magnitude == nil {
			body.Gaps++
		}
		body.FrequencyData[i] = fp
	}

	if body.Gaps > 0 {
		log.Warn().Str("variant", body.Variant).Int("gaps", body.Gaps).Msg("Response has non-finite samples")
	}
	return &models.GetResponseResponse{Body: body}, nil
}

// GetChart renders one response variant as an HTML chart
func (h *ResponseHandler) GetChart(ctx context.Context, req *models.GetResponseRequest) (*models.ChartResponse, error) {
	curve, err := h.curve(req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	o, line := chartLine(curve)
	o.LogX = req.Log
	if err := chart.HTML(&buf, o, line); err != nil {
		return nil, statusError("Failed to render chart", err)
	}

	return &models.ChartResponse{
		ContentType: "text/html; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}

// chartLine picks the plotted quantity for a variant: ohms for impedance,
// dB for everything else.
func chartLine(curve processing.Curve) (chart.Options, chart.Line) {
	name := curve.Variant.String()
	if curve.Variant == transfer.Impedance {
		return chart.Options{Title: "Voice-coil impedance", YLabel: "ohm"},
			chart.FromPoints(name, curve.Points, curve.Ohms)
	}
	return chart.Options{Title: fmt.Sprintf("%s response", name), YLabel: "dB"},
		chart.FromPoints(name, curve.Points, chart.Level)
}

func coefficients(data transfer.BassFnData) models.Coefficients {
	c := models.Coefficients{Finite: true}
	c.Numerator, c.Finite = finiteSlice(data.Numerator, c.Finite)
	c.Denominator, c.Finite = finiteSlice(data.Denominator, c.Finite)
	return c
}

func finiteSlice(xs []float64, finite bool) ([]*float64, bool) {
	out := make([]*float64, len(xs))
	for i, x := range xs {
		out[i] = finitePtr(x)
		finite = finite && out[i] != nil
	}
	return out, finite
}

func finitePtr(x float64) *float64 {
	if !isFinite(x) {
		return nil
	}
	return &x
}
