package cactus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemVault/internal/config"
	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

func testConfig(baseURL string) config.CactusConfig {
	return config.CactusConfig{
		SourceConfig: config.SourceConfig{
			BaseURL: baseURL,
			Timeout: 2 * time.Second,
			Enabled: true,
		},
	}
}

func fieldServer(fields map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		field := parts[len(parts)-1]
		if value, ok := fields[field]; ok {
			w.Write([]byte(value))
			return
		}
		http.NotFound(w, r)
	}))
}

func TestTryResolveFullRecord(t *testing.T) {
	srv := fieldServer(map[string]string{
		"iupac_name": "ethanol",
		"cas":        "8024-45-1\n64-17-5\n1337-24-8",
		"formula":    "C2H6O",
		"mw":         "46.0684",
	})
	defer srv.Close()

	src := New(testConfig(srv.URL), nil)
	res := src.TryResolve(context.Background(), "CCO", chemistry.ResolutionHints{})

	require.Equal(t, chemistry.StatusFound, res.Status)
	assert.Equal(t, "ethanol", res.Record.PreferredName)
	assert.Equal(t, "8024-45-1", res.Record.RegistryNumber)
	assert.Equal(t, "C2H6O", res.Record.Formula)
	assert.InDelta(t, 46.0684, res.Record.ExactWeight, 0.0001)
	assert.Equal(t, chemistry.SourceSecondaryDatabase, res.Record.Source)
	assert.Equal(t, chemistry.ConfidenceMedium, res.Record.Confidence)
}

func TestTryResolvePartialRecord(t *testing.T) {
	// Name known, everything else missing: still a hit with partial fields.
	srv := fieldServer(map[string]string{"iupac_name": "2-acetyloxybenzoic acid"})
	defer srv.Close()

	src := New(testConfig(srv.URL), nil)
	res := src.TryResolve(context.Background(), "CC(=O)Oc1ccccc1C(=O)O", chemistry.ResolutionHints{})

	require.Equal(t, chemistry.StatusFound, res.Status)
	assert.Equal(t, "2-acetyloxybenzoic acid", res.Record.PreferredName)
	assert.Empty(t, res.Record.RegistryNumber)
}

func TestTryResolveSkipsInvalidRegistryLines(t *testing.T) {
	srv := fieldServer(map[string]string{
		"iupac_name": "something",
		"cas":        "not-a-number\n1-11-1\n64-17-5",
	})
	defer srv.Close()

	src := New(testConfig(srv.URL), nil)
	res := src.TryResolve(context.Background(), "CCO", chemistry.ResolutionHints{})

	require.Equal(t, chemistry.StatusFound, res.Status)
	assert.Equal(t, "64-17-5", res.Record.RegistryNumber)
}

func TestTryResolveNotFound(t *testing.T) {
	srv := fieldServer(nil)
	defer srv.Close()

	src := New(testConfig(srv.URL), nil)
	res := src.TryResolve(context.Background(), "CCO", chemistry.ResolutionHints{})
	assert.Equal(t, chemistry.StatusNotFound, res.Status)
}

func TestTryResolveAllTransportFailures(t *testing.T) {
	src := New(testConfig("http://127.0.0.1:1"), nil)
	res := src.TryResolve(context.Background(), "CCO", chemistry.ResolutionHints{})
	assert.Equal(t, chemistry.StatusFailed, res.Status)
	assert.NotEmpty(t, res.FailReason)
}

func TestTryResolveMultilineName(t *testing.T) {
	srv := fieldServer(map[string]string{"iupac_name": "first name\nsecond name"})
	defer srv.Close()

	src := New(testConfig(srv.URL), nil)
	res := src.TryResolve(context.Background(), "CCO", chemistry.ResolutionHints{})

	require.Equal(t, chemistry.StatusFound, res.Status)
	assert.Equal(t, "first name", res.Record.PreferredName)
}
