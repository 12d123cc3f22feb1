package tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecouncil/internal/dataflow"
	"tradecouncil/pkg/errors"
)

func echoTool(name string) Tool {
	return New(name, "echoes its input", func(ctx context.Context, args map[string]interface{}) (string, error) {
		return name, nil
	})
}

func TestRegistryPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(echoTool("alpha"))
	r.Register(echoTool("beta"))
	r.Register(echoTool("gamma"))

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, r.Names())
	assert.Equal(t, 3, r.Len())
}

func TestRegistryReplaceKeepsPosition(t *testing.T) {
	r := NewRegistry()
	r.Register(echoTool("alpha"))
	r.Register(echoTool("beta"))

	replacement := New("alpha", "replacement", func(ctx context.Context, args map[string]interface{}) (string, error) {
		return "new", nil
	})
	r.Register(replacement)

	assert.Equal(t, []string{"alpha", "beta"}, r.Names())

	got, ok := r.Resolve("alpha")
	require.True(t, ok)
	out, err := got.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "new", out)
}

func TestRegistryResolveUnknown(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Resolve("missing")
	assert.False(t, ok)
}

func TestRegistryDescribe(t *testing.T) {
	r := NewRegistry()
	r.Register(New("first", "does the first thing", nil))
	r.Register(New("second", "does the second thing", nil))

	want := "- first: does the first thing\n- second: does the second thing\n"
	assert.Equal(t, want, r.Describe())
}

func catalogRegistry(t *testing.T) *Registry {
	t.Helper()

	asOf := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	agg := dataflow.NewAggregator(nil, nil, nil, 60)

	r := NewRegistry()
	RegisterCatalog(r, agg, asOf)
	return r
}

func TestCatalogRegistersFourTools(t *testing.T) {
	r := catalogRegistry(t)

	assert.Equal(t, []string{
		"get_fundamentals",
		"get_market_indicators",
		"get_news",
		"get_social_sentiment",
	}, r.Names())
}

func TestCatalogFundamentals(t *testing.T) {
	r := catalogRegistry(t)

	tool, ok := r.Resolve("get_fundamentals")
	require.True(t, ok)

	out, err := tool.Call(context.Background(), map[string]interface{}{"symbol": "tsla"})
	require.NoError(t, err)

	var f dataflow.Fundamental
	require.NoError(t, json.Unmarshal([]byte(out), &f))
	assert.Equal(t, "TSLA", f.Symbol)
	assert.True(t, f.Price.IsPositive())
}

func TestCatalogNewsLimit(t *testing.T) {
	r := catalogRegistry(t)

	tool, ok := r.Resolve("get_news")
	require.True(t, ok)

	out, err := tool.Call(context.Background(), map[string]interface{}{
		"symbol": "TSLA",
		"limit":  float64(3),
	})
	require.NoError(t, err)

	var items []dataflow.NewsItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Len(t, items, 3)
}

func TestCatalogMissingSymbol(t *testing.T) {
	r := catalogRegistry(t)

	for _, name := range r.Names() {
		tool, ok := r.Resolve(name)
		require.True(t, ok)

		_, err := tool.Call(context.Background(), map[string]interface{}{})
		assert.True(t, errors.Is(err, errors.ErrInvalidInput), "tool %s", name)
	}
}
