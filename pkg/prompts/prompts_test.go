package prompts

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	out := Substitute("Hello {symbol} on {date}", map[string]string{
		"symbol": "TSLA",
		"date":   "2025-10-31",
	})
	assert.Equal(t, "Hello TSLA on 2025-10-31", out)
}

func TestSubstituteLeavesUnmatchedVerbatim(t *testing.T) {
	out := Substitute("Hello {symbol} on {date}", map[string]string{
		"symbol": "TSLA",
	})
	assert.Equal(t, "Hello TSLA on {date}", out)
}

func TestSubstituteIdempotentWithoutPlaceholders(t *testing.T) {
	in := "no placeholders here"
	assert.Equal(t, in, Substitute(in, map[string]string{"symbol": "TSLA"}))
	assert.Equal(t, in, Substitute(in, nil))
}

func TestRegistryPathToKey(t *testing.T) {
	fsys := fstest.MapFS{
		"react/analyst/market/system.txt": {Data: []byte("market system prompt")},
		"react/analyst/market/prompt.txt": {Data: []byte("analyze {symbol}")},
		"notes/readme.md":                 {Data: []byte("ignored")},
		"react/empty.txt":                 {Data: []byte("   \n")},
	}

	r, err := NewRegistryFromFS(fsys)
	require.NoError(t, err)

	got, ok := r.Lookup("react.analyst.market.system")
	require.True(t, ok)
	assert.Equal(t, "market system prompt", got)

	got, ok = r.Lookup("react.analyst.market.prompt")
	require.True(t, ok)
	assert.Equal(t, "analyze {symbol}", got)

	// non-txt files are not loaded
	_, ok = r.Lookup("notes.readme")
	assert.False(t, ok)

	// blank templates resolve as missing
	_, ok = r.Lookup("react.empty")
	assert.False(t, ok)
}

func TestNullProvider(t *testing.T) {
	_, ok := Null{}.Lookup("react.analyst.market.system")
	assert.False(t, ok)
}

func TestEmbeddedAssets(t *testing.T) {
	r := Embedded()

	// every analyst role ships a system and a user template
	for _, role := range []string{"market", "fundamentals", "news", "social"} {
		system, ok := r.Lookup("react.analyst." + role + ".system")
		require.True(t, ok, role)
		assert.Contains(t, system, "{tools}")

		prompt, ok := r.Lookup("react.analyst." + role + ".prompt")
		require.True(t, ok, role)
		assert.Contains(t, prompt, "{symbol}")
	}
}
