package pubchem

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

func testConfig(baseURL string) config.PubChemConfig {
	return config.PubChemConfig{
		SourceConfig: config.SourceConfig{
			BaseURL: baseURL,
			Timeout: 2 * time.Second,
			Enabled: true,
		},
		RequestsPerSecond: 1000,
		Burst:             100,
	}
}

func TestTryResolveFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/cids/JSON"):
			w.Write([]byte(`{"IdentifierList":{"CID":[2244]}}`))
		case strings.HasSuffix(r.URL.Path, "/synonyms/JSON"):
			w.Write([]byte(`{"InformationList":{"Information":[
				{"Synonym":["aspirin","ACETYLSALICYLIC ACID","50-78-2","NSC-27223"]}]}}`))
		case strings.Contains(r.URL.Path, "/property/"):
			w.Write([]byte(`{"PropertyTable":{"Properties":[
				{"IUPACName":"2-acetyloxybenzoic acid","MolecularFormula":"C9H8O4","MolecularWeight":"180.16"}]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := New(testConfig(srv.URL), nil)
	res := src.TryResolve(context.Background(), "CC(=O)Oc1ccccc1C(=O)O", chemistry.ResolutionHints{})

	require.Equal(t, chemistry.StatusFound, res.Status)
	assert.Equal(t, "50-78-2", res.Record.RegistryNumber)
	assert.Equal(t, "2-acetyloxybenzoic acid", res.Record.PreferredName)
	assert.Equal(t, "C9H8O4", res.Record.Formula)
	assert.InDelta(t, 180.16, res.Record.ExactWeight, 0.001)
	assert.Equal(t, chemistry.SourcePrimaryDatabase, res.Record.Source)
	assert.Equal(t, chemistry.ConfidenceHigh, res.Record.Confidence)
}

func TestTryResolveSkipsMalformedSynonyms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/cids/JSON"):
			w.Write([]byte(`{"IdentifierList":{"CID":[702]}}`))
		case strings.HasSuffix(r.URL.Path, "/synonyms/JSON"):
			// No entry satisfies the registry grammar.
			w.Write([]byte(`{"InformationList":{"Information":[
				{"Synonym":["ethanol","1-78","12345678-12-3","EtOH"]}]}}`))
		case strings.Contains(r.URL.Path, "/property/"):
			w.Write([]byte(`{"PropertyTable":{"Properties":[
				{"IUPACName":"ethanol","MolecularFormula":"C2H6O","MolecularWeight":"46.07"}]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := New(testConfig(srv.URL), nil)
	res := src.TryResolve(context.Background(), "CCO", chemistry.ResolutionHints{})

	require.Equal(t, chemistry.StatusFound, res.Status)
	assert.Empty(t, res.Record.RegistryNumber)
	assert.Equal(t, "ethanol", res.Record.PreferredName)
}

func TestTryResolveNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := New(testConfig(srv.URL), nil)
	res := src.TryResolve(context.Background(), "CCO", chemistry.ResolutionHints{})
	assert.Equal(t, chemistry.StatusNotFound, res.Status)
}

func TestTryResolveEmptyCIDList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"IdentifierList":{"CID":[]}}`))
	}))
	defer srv.Close()

	src := New(testConfig(srv.URL), nil)
	res := src.TryResolve(context.Background(), "CCO", chemistry.ResolutionHints{})
	assert.Equal(t, chemistry.StatusNotFound, res.Status)
}

func TestTryResolveServerErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	src := New(testConfig(srv.URL), nil)
	res := src.TryResolve(context.Background(), "CCO", chemistry.ResolutionHints{})
	assert.Equal(t, chemistry.StatusFailed, res.Status)
	assert.NotEmpty(t, res.FailReason)
}

func TestTryResolveMalformedPayloadFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	src := New(testConfig(srv.URL), nil)
	res := src.TryResolve(context.Background(), "CCO", chemistry.ResolutionHints{})
	assert.Equal(t, chemistry.StatusFailed, res.Status)
}

func TestTryResolveUnreachableHostFails(t *testing.T) {
	src := New(testConfig("http://127.0.0.1:1"), nil)
	res := src.TryResolve(context.Background(), "CCO", chemistry.ResolutionHints{})
	assert.Equal(t, chemistry.StatusFailed, res.Status)
}
