package processing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/RMahshie/basscalc/internal/model"
	"github.com/RMahshie/basscalc/internal/params"
	"github.com/RMahshie/basscalc/internal/preset"
	"github.com/RMahshie/basscalc/internal/repository"
	"github.com/RMahshie/basscalc/internal/storage"
	"github.com/RMahshie/basscalc/internal/transfer"
	"github.com/RMahshie/basscalc/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrDerivedParameter is returned when a value edit targets a derived parameter
	ErrDerivedParameter = errors.New("parameter is derived")
	// ErrInvalidUpdate is returned for edits that set nothing, or both value and percent
	ErrInvalidUpdate = errors.New("invalid parameter update")
	// ErrUnavailable is returned when the backing store or repository is not configured
	ErrUnavailable = errors.New("backend not configured")
)

// Update describes one parameter edit
type Update struct {
	Value     *float64
	Percent   *float64
	Precision *int
}

// Detail is a snapshot of one parameter with its dependency edges
type Detail struct {
	Parameter  params.Parameter
	Inputs     []string
	Dependents []string
}

// Curve is a sampled response
type Curve struct {
	Variant transfer.Variant
	Data    transfer.BassFnData
	Points  []transfer.Point
	// LoopResistance is Re+Rg at assembly time, used to scale impedance curves
	LoopResistance float64
}

// Ohms converts the magnitude of an impedance sample into ohms
func (c Curve) Ohms(p transfer.Point) float64 {
	return c.LoopResistance / p.Magnitude
}

// Service owns the parameter model shared by every request
type Service interface {
	Parameters() []params.Parameter
	Parameter(name string) (Detail, error)
	UpdateParameter(name string, update Update) (Detail, error)
	Recompute()
	Reset()
	Response(variant transfer.Variant, sweep transfer.Sweep) (Curve, error)

	ImportPreset(r io.Reader) (preset.Report, error)
	ExportPreset(w io.Writer) error
	ListPresets(ctx context.Context) ([]storage.Object, error)
	LoadPreset(ctx context.Context, name string) (preset.Report, error)
	SavePreset(ctx context.Context, name string) (storage.Object, error)
	DeletePreset(ctx context.Context, name string) error
	PresetURL(ctx context.Context, name string) (string, error)

	SaveDesign(ctx context.Context, name, description string) (*models.Design, error)
	ApplyDesign(ctx context.Context, id uuid.UUID) (*models.Design, error)
	ListDesigns(ctx context.Context) ([]*models.Design, error)
	DeleteDesign(ctx context.Context, id uuid.UUID) error
}

type service struct {
	mu       sync.Mutex // guards graph; every edit and its recompute happen under one hold
	graph    *params.Graph
	defaults *params.Graph // never mutated after NewService

	presets storage.PresetStore
	designs repository.DesignRepository
}

// NewService builds the default model. The store and repository are
// optional; operations that need a missing one return ErrUnavailable.
func NewService(presets storage.PresetStore, designs repository.DesignRepository) (Service, error) {
	g, err := model.New()
	if err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}
	return &service{
		graph:    g,
		defaults: g.Clone(),
		presets:  presets,
		designs:  designs,
	}, nil
}

// Parameters returns a copy of every parameter in display order
func (s *service) Parameters() []params.Parameter {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.graph.All()
	out := make([]params.Parameter, len(all))
	for i, p := range all {
		out[i] = *p
	}
	return out
}

func (s *service) Parameter(name string) (Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail(name)
}

// detail must be called with s.mu held
func (s *service) detail(name string) (Detail, error) {
	p, ok := s.graph.Lookup(name)
	if !ok {
		return Detail{}, &params.UnknownError{Name: name}
	}
	inputs, err := s.graph.Inputs(name)
	if err != nil {
		return Detail{}, err
	}
	dependents, err := s.graph.Dependents(name)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Parameter: *p, Inputs: inputs, Dependents: dependents}, nil
}

// UpdateParameter applies one edit. A value or percent edit is followed by a
// recompute pass before the lock is released.
func (s *service) UpdateParameter(name string, update Update) (Detail, error) {
	valueEdit := update.Value != nil || update.Percent != nil
	if update.Value != nil && update.Percent != nil {
		return Detail{}, fmt.Errorf("%w: value and percent are exclusive", ErrInvalidUpdate)
	}
	if !valueEdit && update.Precision == nil {
		return Detail{}, fmt.Errorf("%w: nothing to update", ErrInvalidUpdate)
	}
	if update.Precision != nil && *update.Precision < 0 {
		return Detail{}, fmt.Errorf("%w: precision must not be negative", ErrInvalidUpdate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.graph.Lookup(name)
	if !ok {
		return Detail{}, &params.UnknownError{Name: name}
	}
	if valueEdit && p.Derived() {
		return Detail{}, fmt.Errorf("%w: %s", ErrDerivedParameter, name)
	}

	if update.Precision != nil {
		if err := s.graph.SetPrecision(name, *update.Precision); err != nil {
			return Detail{}, err
		}
	}

	switch {
	case update.Value != nil:
		if err := s.graph.SetValue(name, *update.Value); err != nil {
			return Detail{}, err
		}
	case update.Percent != nil:
		if err := s.graph.SetPercent(name, *update.Percent); err != nil {
			return Detail{}, err
		}
	}
	if valueEdit {
		s.graph.RecomputeAll()
		log.Info().Str("parameter", name).Float64("value", p.Value).Msg("Parameter updated")
	}

	return s.detail(name)
}

func (s *service) Recompute() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.RecomputeAll()
}

// Reset restores the raw default values and precisions
func (s *service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.CopyValuesFrom(s.defaults)
	log.Info().Msg("Model reset to defaults")
}

// Response assembles the transfer function under the lock and samples it
// after releasing it; the coefficients are an immutable snapshot.
func (s *service) Response(variant transfer.Variant, sweep transfer.Sweep) (Curve, error) {
	if err := sweep.Validate(); err != nil {
		return Curve{}, err
	}

	s.mu.Lock()
	data := transfer.Assemble(variant, s.graph)
	loop := transfer.LoopResistance(s.graph)
	s.mu.Unlock()

	points := transfer.Sample(data, sweep)
	return Curve{
		Variant:        variant,
		Data:           data,
		Points:         points,
		LoopResistance: loop,
	}, nil
}

// ImportPreset applies a preset and recomputes
func (s *service) ImportPreset(r io.Reader) (preset.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := preset.Load(r, s.graph)
	if err != nil {
		return report, err
	}
	s.graph.RecomputeAll()
	return report, nil
}

func (s *service) ExportPreset(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return preset.Encode(w, s.graph)
}

func (s *service) ListPresets(ctx context.Context) ([]storage.Object, error) {
	if s.presets == nil {
		return nil, fmt.Errorf("%w: preset store", ErrUnavailable)
	}
	return s.presets.List(ctx)
}

// LoadPreset downloads a stored preset and applies it
func (s *service) LoadPreset(ctx context.Context, name string) (preset.Report, error) {
	if s.presets == nil {
		return preset.Report{}, fmt.Errorf("%w: preset store", ErrUnavailable)
	}

	data, err := s.presets.Get(ctx, name)
	if err != nil {
		return preset.Report{}, err
	}

	report, err := s.ImportPreset(bytes.NewReader(data))
	if err != nil {
		return report, err
	}
	log.Info().Str("preset", name).Int("applied", len(report.Applied)).Int("skipped", len(report.Skipped)).Msg("Applied stored preset")
	return report, nil
}

// SavePreset stores the current model under name
func (s *service) SavePreset(ctx context.Context, name string) (storage.Object, error) {
	if s.presets == nil {
		return storage.Object{}, fmt.Errorf("%w: preset store", ErrUnavailable)
	}

	var buf bytes.Buffer
	if err := s.ExportPreset(&buf); err != nil {
		return storage.Object{}, err
	}
	return s.presets.Put(ctx, name, buf.Bytes())
}

func (s *service) DeletePreset(ctx context.Context, name string) error {
	if s.presets == nil {
		return fmt.Errorf("%w: preset store", ErrUnavailable)
	}
	return s.presets.Delete(ctx, name)
}

func (s *service) PresetURL(ctx context.Context, name string) (string, error) {
	if s.presets == nil {
		return "", fmt.Errorf("%w: preset store", ErrUnavailable)
	}
	return s.presets.GenerateDownloadURL(ctx, name)
}

// SaveDesign stores the independent inputs of the current model
func (s *service) SaveDesign(ctx context.Context, name, description string) (*models.Design, error) {
	if s.designs == nil {
		return nil, fmt.Errorf("%w: design repository", ErrUnavailable)
	}

	design := &models.Design{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Values:      make(map[string]float64),
		Precisions:  make(map[string]int),
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	for _, p := range s.graph.All() {
		design.Precisions[p.Name] = p.Precision
		if !p.Derived() {
			design.Values[p.Name] = p.Value
		}
	}
	s.mu.Unlock()

	if err := s.designs.Create(ctx, design); err != nil {
		return nil, fmt.Errorf("failed to save design: %w", err)
	}
	log.Info().Str("designID", design.ID).Str("name", name).Msg("Design saved")
	return design, nil
}

// ApplyDesign restores the inputs of a stored design and recomputes.
// Names the model does not know, and values for derived parameters, are
// ignored with a warning.
func (s *service) ApplyDesign(ctx context.Context, id uuid.UUID) (*models.Design, error) {
	if s.designs == nil {
		return nil, fmt.Errorf("%w: design repository", ErrUnavailable)
	}

	design, err := s.designs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for name, value := range design.Values {
		p, ok := s.graph.Lookup(name)
		if !ok || p.Derived() {
			log.Warn().Str("designID", design.ID).Str("parameter", name).Msg("Ignoring design value")
			continue
		}
		p.Value = value
	}
	for name, precision := range design.Precisions {
		if err := s.graph.SetPrecision(name, precision); err != nil {
			log.Warn().Str("designID", design.ID).Str("parameter", name).Msg("Ignoring design precision")
		}
	}
	s.graph.RecomputeAll()

	log.Info().Str("designID", design.ID).Msg("Design applied")
	return design, nil
}

func (s *service) ListDesigns(ctx context.Context) ([]*models.Design, error) {
	if s.designs == nil {
		return nil, fmt.Errorf("%w: design repository", ErrUnavailable)
	}
	return s.designs.List(ctx)
}

func (s *service) DeleteDesign(ctx context.Context, id uuid.UUID) error {
	if s.designs == nil {
		return fmt.Errorf("%w: design repository", ErrUnavailable)
	}
	return s.designs.Delete(ctx, id)
}
