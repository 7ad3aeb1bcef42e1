package proxy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/entityproxy/core"
	"github.com/hupe1980/entityproxy/internal/testutil"
)

// MockLoader for asserting call expectations on the loader boundary.
type MockLoader struct{ mock.Mock }

func (m *MockLoader) Fetch(ctx context.Context, id any) (core.Record, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(core.Record)
	return rec, args.Error(1)
}

func (m *MockLoader) Invalidate(id any) {
	m.Called(id)
}

func TestEntityLoader_MissingLoaders(t *testing.T) {
	cls := MustDefine(Definition{EntityType: "User"})
	h, err := cls.New(1, core.NewContext())
	require.NoError(t, err)

	_, err = h.Get(context.Background(), "entityLoader")
	var cfg *core.ConfigurationError
	require.ErrorAs(t, err, &cfg)
	assert.Contains(t, err.Error(), "pass a loaders object")
	assert.Contains(t, err.Error(), "override entityLoader")
}

func TestEntityLoader_MissingEntry(t *testing.T) {
	cls := MustDefine(Definition{EntityType: "User"})
	cctx := core.NewContext().WithLoader("Post", testutil.NewRecordingLoader())
	h, err := cls.New(1, cctx)
	require.NoError(t, err)

	_, err = h.Get(context.Background(), "entityLoader")
	var cfg *core.ConfigurationError
	require.ErrorAs(t, err, &cfg)
	assert.Contains(t, err.Error(), "No loader is defined for proxy `User`")
}

func TestEntityLoader_Override(t *testing.T) {
	l := testutil.NewRecordingLoader().WithRecord(1, core.Record{"name": "custom"})
	cls := MustDefine(Definition{
		EntityType: "User",
		Getters: map[string]any{
			"entityLoader": func(_ context.Context, _ *Handle) (any, error) { return l, nil },
		},
	})
	// No loaders in the context at all; the override supplies everything.
	h, err := cls.New(1, nil)
	require.NoError(t, err)

	v, err := h.Get(context.Background(), "name")
	require.NoError(t, err)
	assert.Equal(t, "custom", v)
}

func TestDataValues_RequiresFetchCapability(t *testing.T) {
	cls := MustDefine(Definition{
		EntityType: "User",
		Getters: map[string]any{
			"entityLoader": func(_ context.Context, _ *Handle) (any, error) { return "not a loader", nil },
		},
	})
	h, err := cls.New(1, nil)
	require.NoError(t, err)

	_, err = h.Get(context.Background(), "dataValues")
	var cfg *core.ConfigurationError
	require.ErrorAs(t, err, &cfg)
	assert.Contains(t, err.Error(), "entityLoader.fetch should be a function")
	assert.Contains(t, err.Error(), "override dataValues")
}

func TestDataValues_NotFound(t *testing.T) {
	l := testutil.NewRecordingLoader()
	h := newUserHandle(t, Definition{}, 46, l)

	_, err := h.Get(context.Background(), "dataValues")
	var nf *core.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, `Entity `+"`User`"+` with id "46" does not exist.`, err.Error())
}

func TestDataValues_SingleFlightAcrossProperties(t *testing.T) {
	ml := &MockLoader{}
	ml.On("Fetch", mock.Anything, 46).Return(core.Record{"name": "Elon", "email": "elon@spacex.com"}, nil).Once()

	h := newUserHandle(t, Definition{}, 46, ml)
	ctx := context.Background()

	v, err := h.Get(ctx, "dataValues")
	require.NoError(t, err)
	assert.Equal(t, core.Record{"name": "Elon", "email": "elon@spacex.com"}, v)

	// exists and the fallback both ride the cached record.
	exists, err := h.Get(ctx, "exists")
	require.NoError(t, err)
	assert.Equal(t, true, exists)

	name, err := h.Get(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, "Elon", name)

	ml.AssertExpectations(t)
}

func TestExists_SwallowsFailure(t *testing.T) {
	notFound := testutil.NewRecordingLoader()
	h := newUserHandle(t, Definition{}, 1, notFound)

	v, err := h.Get(context.Background(), "exists")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	boom := errors.New("connection reset")
	failing := testutil.NewRecordingLoader().FailWith(boom)
	h2 := newUserHandle(t, Definition{}, 1, failing)

	v, err = h2.Get(context.Background(), "exists")
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestExists_TrueOnSuccess(t *testing.T) {
	l := testutil.NewRecordingLoader().WithRecord(1, core.Record{})
	h := newUserHandle(t, Definition{}, 1, l)

	v, err := h.Get(context.Background(), "exists")
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestAssertExists_ReRaisesUnchanged(t *testing.T) {
	boom := errors.New("connection reset")
	h := newUserHandle(t, Definition{}, 1, testutil.NewRecordingLoader().FailWith(boom))

	_, err := h.Call(context.Background(), "assertExists")
	assert.ErrorIs(t, err, boom)

	ok := testutil.NewRecordingLoader().WithRecord(2, core.Record{"a": 1})
	h2 := newUserHandle(t, Definition{}, 2, ok)
	_, err = h2.Call(context.Background(), "assertExists")
	assert.NoError(t, err)
}

func TestClearCache_RequiresInvalidateCapability(t *testing.T) {
	inner := testutil.NewRecordingLoader().WithRecord(1, core.Record{"name": "Elon"})
	h := newUserHandle(t, Definition{}, 1, testutil.FetchOnly{Inner: inner})

	ctx := context.Background()
	_, err := h.Get(ctx, "name")
	require.NoError(t, err)
	cached := h.Cache().Len()

	_, err = h.Call(ctx, "clearCache")
	var cfg *core.ConfigurationError
	require.ErrorAs(t, err, &cfg)
	assert.Contains(t, err.Error(), "entityLoader.invalidate")
	assert.Contains(t, err.Error(), "override clearCache")

	// Capability is checked before anything is cleared.
	assert.Equal(t, cached, h.Cache().Len())
}

func TestClearCache_InvalidatesWithHandleID(t *testing.T) {
	ml := &MockLoader{}
	ml.On("Fetch", mock.Anything, 46).Return(core.Record{"name": "Elon"}, nil).Twice()
	ml.On("Invalidate", 46).Return().Once()

	h := newUserHandle(t, Definition{}, 46, ml)
	ctx := context.Background()

	_, err := h.Get(ctx, "name")
	require.NoError(t, err)

	_, err = h.Call(ctx, "clearCache")
	require.NoError(t, err)

	// The next read refetches.
	v, err := h.Get(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, "Elon", v)

	ml.AssertExpectations(t)
}

func TestEndToEnd_UserScenario(t *testing.T) {
	l := testutil.NewRecordingLoader().WithRecord(46, core.Record{"name": "Elon", "email": "elon@spacex.com"})
	cls := MustDefine(Definition{EntityType: "User"})
	h, err := cls.New(46, core.NewContext().WithLoader("User", l))
	require.NoError(t, err)

	ctx := context.Background()

	name, err := h.Get(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, "Elon", name)

	rec, err := h.Get(ctx, "dataValues")
	require.NoError(t, err)
	assert.Equal(t, core.Record{"name": "Elon", "email": "elon@spacex.com"}, rec)

	exists, err := h.Get(ctx, "exists")
	require.NoError(t, err)
	assert.Equal(t, true, exists)
	assert.Len(t, l.FetchCalls(), 1)

	_, err = h.Call(ctx, "clearCache")
	require.NoError(t, err)
	assert.Equal(t, []any{46}, l.InvalidateCalls())

	name, err = h.Get(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, "Elon", name)
	assert.Equal(t, []any{46, 46}, l.FetchCalls())
}
