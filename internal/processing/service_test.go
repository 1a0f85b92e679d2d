package processing

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/RMahshie/basscalc/internal/equations"
	"github.com/RMahshie/basscalc/internal/params"
	"github.com/RMahshie/basscalc/internal/repository"
	"github.com/RMahshie/basscalc/internal/storage"
	"github.com/RMahshie/basscalc/internal/transfer"
	"github.com/RMahshie/basscalc/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, store storage.PresetStore, repo repository.DesignRepository) Service {
	t.Helper()
	svc, err := NewService(store, repo)
	require.NoError(t, err)
	return svc
}

func ptr[T any](v T) *T { return &v }

func value(t *testing.T, svc Service, name string) float64 {
	t.Helper()
	d, err := svc.Parameter(name)
	require.NoError(t, err)
	return d.Parameter.Value
}

func TestUpdateParameter(t *testing.T) {
	t.Run("value edit recomputes dependents", func(t *testing.T) {
		svc := newTestService(t, nil, nil)

		d, err := svc.UpdateParameter(equations.Sd, Update{Value: ptr(20.0)})
		require.NoError(t, err)
		assert.Equal(t, 20.0, d.Parameter.Value)
		assert.Contains(t, d.Dependents, equations.Vd)
		assert.Empty(t, d.Inputs)

		assert.InEpsilon(t, 0.006, value(t, svc, equations.Vd), 1e-12)
	})

	t.Run("percent edit", func(t *testing.T) {
		svc := newTestService(t, nil, nil)

		// Xmax spans 0..100 mm
		d, err := svc.UpdateParameter(equations.Xmax, Update{Percent: ptr(0.25)})
		require.NoError(t, err)
		assert.Equal(t, 25.0, d.Parameter.Value)
	})

	t.Run("precision only leaves values alone", func(t *testing.T) {
		svc := newTestService(t, nil, nil)

		d, err := svc.UpdateParameter(equations.Ts, Update{Precision: ptr(6)})
		require.NoError(t, err)
		assert.Equal(t, 6, d.Parameter.Precision)
		assert.Equal(t, 0.02, d.Parameter.Value, "no recompute on a precision edit")
	})

	t.Run("derived value is rejected", func(t *testing.T) {
		svc := newTestService(t, nil, nil)

		_, err := svc.UpdateParameter(equations.Ts, Update{Value: ptr(0.01)})
		assert.ErrorIs(t, err, ErrDerivedParameter)
		assert.Equal(t, 0.02, value(t, svc, equations.Ts))
	})

	t.Run("invalid edits", func(t *testing.T) {
		svc := newTestService(t, nil, nil)

		_, err := svc.UpdateParameter(equations.Sd, Update{})
		assert.ErrorIs(t, err, ErrInvalidUpdate)
		_, err = svc.UpdateParameter(equations.Sd, Update{Value: ptr(1.0), Percent: ptr(0.5)})
		assert.ErrorIs(t, err, ErrInvalidUpdate)
		_, err = svc.UpdateParameter(equations.Sd, Update{Precision: ptr(-1)})
		assert.ErrorIs(t, err, ErrInvalidUpdate)
	})

	t.Run("unknown parameter", func(t *testing.T) {
		svc := newTestService(t, nil, nil)

		_, err := svc.UpdateParameter("Qx", Update{Value: ptr(1.0)})
		assert.ErrorIs(t, err, params.ErrUnknownParameter)
		_, err = svc.Parameter("Qx")
		assert.ErrorIs(t, err, params.ErrUnknownParameter)
	})
}

func TestParametersAreSnapshots(t *testing.T) {
	svc := newTestService(t, nil, nil)

	all := svc.Parameters()
	require.Len(t, all, 46)
	all[0].Value = -1

	assert.NotEqual(t, -1.0, value(t, svc, all[0].Name))
}

func TestResetRestoresDefaults(t *testing.T) {
	svc := newTestService(t, nil, nil)

	_, err := svc.UpdateParameter(equations.Sd, Update{Value: ptr(300.0), Precision: ptr(3)})
	require.NoError(t, err)

	svc.Reset()
	d, err := svc.Parameter(equations.Sd)
	require.NoError(t, err)
	assert.Equal(t, 10.0, d.Parameter.Value)
	assert.Equal(t, 1, d.Parameter.Precision)
	assert.Equal(t, 0.02, value(t, svc, equations.Ts))
}

func TestResponse(t *testing.T) {
	svc := newTestService(t, nil, nil)

	curve, err := svc.Response(transfer.Radiator, transfer.DefaultSweep())
	require.NoError(t, err)
	require.Len(t, curve.Points, 181)
	assert.Equal(t, transfer.Radiator, curve.Variant)
	assert.InEpsilon(t, 0.9527116674782456, curve.Points[0].Magnitude, 1e-10)
	assert.InEpsilon(t, 1.002199027053445, curve.Points[180].Magnitude, 1e-10)

	_, err = svc.Response(transfer.Cone, transfer.Sweep{Min: 100, Max: 10, Step: 1})
	assert.ErrorIs(t, err, transfer.ErrInvalidSweep)
}

func TestResponse_ImpedanceOhms(t *testing.T) {
	svc := newTestService(t, nil, nil)
	_, err := svc.UpdateParameter(equations.Rg, Update{Value: ptr(0.5)})
	require.NoError(t, err)

	curve, err := svc.Response(transfer.Impedance, transfer.Sweep{Min: 0.001, Max: 0.001, Step: 1})
	require.NoError(t, err)
	require.Len(t, curve.Points, 1)
	assert.InDelta(t, 4.5, curve.LoopResistance, 1e-12)
}

func TestConcurrentEditsAndResponses(t *testing.T) {
	svc := newTestService(t, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := svc.UpdateParameter(equations.Sd, Update{Value: ptr(float64(10 + i))})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			_, err := svc.Response(transfer.Cone, transfer.DefaultSweep())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// whichever edit landed last, its recompute landed with it
	sd := value(t, svc, equations.Sd)
	assert.InEpsilon(t, 1e-4*sd*3, value(t, svc, equations.Vd), 1e-12)
}

func TestPresets(t *testing.T) {
	ctx := context.Background()

	t.Run("load from store", func(t *testing.T) {
		store := new(MockPresetStore)
		store.On("Get", ctx, "woofer").Return([]byte("Sd, 200, -, -, 1, -\nBogus, 1, -, -, 1, -\n"), nil)
		svc := newTestService(t, store, nil)

		report, err := svc.LoadPreset(ctx, "woofer")
		require.NoError(t, err)
		assert.Equal(t, []string{equations.Sd}, report.Applied)
		require.Len(t, report.Skipped, 1)
		assert.Equal(t, "Bogus", report.Skipped[0].Name)

		assert.Equal(t, 200.0, value(t, svc, equations.Sd))
		assert.InEpsilon(t, 0.06, value(t, svc, equations.Vd), 1e-12, "load is followed by a recompute")
		store.AssertExpectations(t)
	})

	t.Run("store errors pass through", func(t *testing.T) {
		store := new(MockPresetStore)
		store.On("Get", ctx, "missing").Return([]byte(nil), storage.ErrPresetNotFound)
		svc := newTestService(t, store, nil)

		_, err := svc.LoadPreset(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrPresetNotFound)
	})

	t.Run("save current model", func(t *testing.T) {
		store := new(MockPresetStore)
		store.On("Put", ctx, "mine", mock.MatchedBy(func(data []byte) bool {
			return bytes.Contains(data, []byte("Xmax,3,0,100,1,mm"))
		})).Return(storage.Object{Name: "mine", Key: "presets/mine.bass"}, nil)
		svc := newTestService(t, store, nil)

		obj, err := svc.SavePreset(ctx, "mine")
		require.NoError(t, err)
		assert.Equal(t, "presets/mine.bass", obj.Key)
		store.AssertExpectations(t)
	})

	t.Run("list delete and url", func(t *testing.T) {
		store := new(MockPresetStore)
		store.On("List", ctx).Return([]storage.Object{{Name: "a"}, {Name: "b"}}, nil)
		store.On("Delete", ctx, "a").Return(nil)
		store.On("GenerateDownloadURL", ctx, "b").Return("http://minio/presets/b.bass?sig", nil)
		svc := newTestService(t, store, nil)

		objs, err := svc.ListPresets(ctx)
		require.NoError(t, err)
		assert.Len(t, objs, 2)
		require.NoError(t, svc.DeletePreset(ctx, "a"))
		url, err := svc.PresetURL(ctx, "b")
		require.NoError(t, err)
		assert.Contains(t, url, "b.bass")
		store.AssertExpectations(t)
	})

	t.Run("import and export round trip", func(t *testing.T) {
		src := newTestService(t, nil, nil)
		_, err := src.UpdateParameter(equations.Cab, Update{Value: ptr(4.0)})
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, src.ExportPreset(&buf))

		dst := newTestService(t, nil, nil)
		report, err := dst.ImportPreset(strings.NewReader(buf.String()))
		require.NoError(t, err)
		assert.Empty(t, report.Skipped)
		assert.Equal(t, src.Parameters(), dst.Parameters())
	})

	t.Run("no store configured", func(t *testing.T) {
		svc := newTestService(t, nil, nil)

		_, err := svc.ListPresets(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)
		_, err = svc.LoadPreset(ctx, "x")
		assert.ErrorIs(t, err, ErrUnavailable)
		_, err = svc.SavePreset(ctx, "x")
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, svc.DeletePreset(ctx, "x"), ErrUnavailable)
		_, err = svc.PresetURL(ctx, "x")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestDesigns(t *testing.T) {
	ctx := context.Background()

	t.Run("save keeps inputs only", func(t *testing.T) {
		repo := new(MockDesignRepository)
		var saved *models.Design
		repo.On("Create", ctx, mock.AnythingOfType("*models.Design")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Design) }).
			Return(nil)
		svc := newTestService(t, nil, repo)

		design, err := svc.SaveDesign(ctx, "sealed", "notes")
		require.NoError(t, err)
		require.Same(t, saved, design)

		_, err = uuid.Parse(design.ID)
		assert.NoError(t, err)
		assert.Equal(t, "sealed", design.Name)
		assert.Contains(t, design.Values, equations.Sd)
		assert.NotContains(t, design.Values, equations.Ts)
		assert.Len(t, design.Precisions, 46)
		repo.AssertExpectations(t)
	})

	t.Run("apply restores inputs and recomputes", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockDesignRepository)
		repo.On("GetByID", ctx, id).Return(&models.Design{
			ID:         id.String(),
			Name:       "big",
			Values:     map[string]float64{equations.Sd: 50, equations.Vd: 1, "Nope": 3},
			Precisions: map[string]int{equations.Sd: 2, "Nope": 1},
		}, nil)
		svc := newTestService(t, nil, repo)

		design, err := svc.ApplyDesign(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "big", design.Name)

		d, err := svc.Parameter(equations.Sd)
		require.NoError(t, err)
		assert.Equal(t, 50.0, d.Parameter.Value)
		assert.Equal(t, 2, d.Parameter.Precision)
		assert.InEpsilon(t, 0.015, value(t, svc, equations.Vd), 1e-12)
	})

	t.Run("missing design", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockDesignRepository)
		repo.On("GetByID", ctx, id).Return(nil, repository.ErrDesignNotFound)
		svc := newTestService(t, nil, repo)

		_, err := svc.ApplyDesign(ctx, id)
		assert.ErrorIs(t, err, repository.ErrDesignNotFound)
	})

	t.Run("repository failure on save", func(t *testing.T) {
		repo := new(MockDesignRepository)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused"))
		svc := newTestService(t, nil, repo)

		_, err := svc.SaveDesign(ctx, "x", "")
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("list and delete", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockDesignRepository)
		repo.On("List", ctx).Return([]*models.Design{{ID: id.String()}}, nil)
		repo.On("Delete", ctx, id).Return(nil)
		svc := newTestService(t, nil, repo)

		designs, err := svc.ListDesigns(ctx)
		require.NoError(t, err)
		assert.Len(t, designs, 1)
		assert.NoError(t, svc.DeleteDesign(ctx, id))
		repo.AssertExpectations(t)
	})

	t.Run("no repository configured", func(t *testing.T) {
		svc := newTestService(t, nil, nil)

		_, err := svc.SaveDesign(ctx, "x", "")
		assert.ErrorIs(t, err, ErrUnavailable)
		_, err = svc.ApplyDesign(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrUnavailable)
		_, err = svc.ListDesigns(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, svc.DeleteDesign(ctx, uuid.New()), ErrUnavailable)
	})
}
