package handlers

import (
	"context"

	"github.com/RMahshie/basscalc/internal/processing"
	"github.com/RMahshie/basscalc/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DesignHandler handles saved design requests
type DesignHandler struct {
	svc processing.Service
}

// NewDesignHandler creates a new design handler
func NewDesignHandler(svc processing.Service) *DesignHandler {
	return &DesignHandler{svc: svc}
}

// CreateDesign saves the current inputs as a design
func (h *DesignHandler) CreateDesign(ctx context.Context, req *models.CreateDesignRequest) (*models.DesignResponse, error) {
	design, err := h.svc.SaveDesign(ctx, req.Body.Name, req.Body.Description)
	if err != nil {
		return nil, statusError("Failed to save design", err)
	}
	return &models.DesignResponse{Body: design}, nil
}

// ListDesigns lists stored designs
func (h *DesignHandler) ListDesigns(ctx context.Context, _ *struct{}) (*models.ListDesignsResponse, error) {
	designs, err := h.svc.ListDesigns(ctx)
	if err != nil {
		return nil, statusError("Failed to list designs", err)
	}

	resp := &models.ListDesignsResponse{}
	resp.Body.Designs = designs
	if resp.Body.Designs == nil {
		resp.Body.Designs = []*models.Design{}
	}
	return resp, nil
}

// ApplyDesign restores a stored design into the model
func (h *DesignHandler) ApplyDesign(ctx context.Context, req *models.DesignIDRequest) (*models.DesignResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid design ID", err)
	}

	log.Info().Str("designID", id.String()).Msg("Design apply request received")
	design, err := h.svc.ApplyDesign(ctx, id)
	if err != nil {
		return nil, statusError("Failed to apply design", err)
	}
	return &models.DesignResponse{Body: design}, nil
}

// DeleteDesign removes a stored design
func (h *DesignHandler) DeleteDesign(ctx context.Context, req *models.DesignIDRequest) (*struct{}, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid design ID", err)
	}

	if err := h.svc.DeleteDesign(ctx, id); err != nil {
		return nil, statusError("Failed to delete design", err)
	}
	return nil, nil
}
