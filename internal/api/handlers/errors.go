package handlers

import (
	"errors"

	"github.com/RMahshie/basscalc/internal/params"
	"github.com/RMahshie/basscalc/internal/processing"
	"github.com/RMahshie/basscalc/internal/repository"
	"github.com/RMahshie/basscalc/internal/storage"
	"github.com/RMahshie/basscalc/internal/transfer"
	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

// statusError maps service errors onto HTTP status errors
func statusError(msg string, err error) error {
	switch {
	case errors.Is(err, params.ErrUnknownParameter),
		errors.Is(err, repository.ErrDesignNotFound),
		errors.Is(err, storage.ErrPresetNotFound):
		return huma.Error404NotFound(msg, err)
	case errors.Is(err, processing.ErrDerivedParameter):
		return huma.Error409Conflict(msg, err)
	case errors.Is(err, processing.ErrInvalidUpdate),
		errors.Is(err, transfer.ErrInvalidSweep):
		return huma.Error422UnprocessableEntity(msg, err)
	case errors.Is(err, transfer.ErrUnknownVariant),
		errors.Is(err, storage.ErrInvalidPresetName):
		return huma.Error400BadRequest(msg, err)
	case errors.Is(err, processing.ErrUnavailable):
		return huma.Error503ServiceUnavailable(msg, err)
	default:
		log.Error().Err(err).Msg(msg)
		return huma.Error500InternalServerError(msg, err)
	}
}
