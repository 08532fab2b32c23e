// Package pubchem implements the primary structural-database link of the
// resolution chain: an exact-structure lookup that yields a compound
// identifier, followed by a synonym scan for registry numbers and a property
// pull for the preferred name, formula, and weight.
package pubchem

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/turtacn/ChemVault/internal/config"
	"github.com/turtacn/ChemVault/internal/domain/identity"
	"github.com/turtacn/ChemVault/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

// maxBodyBytes caps response reads; synonym lists for common compounds run
// to thousands of entries but stay well under this.
const maxBodyBytes = 4 << 20

// Source is the PubChem-backed resolution source.
type Source struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
	logger  logging.Logger
}

// New constructs the source from config.  The rate limiter enforces the
// service's published per-client request budget across all goroutines
// sharing this Source.
func New(cfg config.PubChemConfig, logger logging.Logger) *Source {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = config.DefaultPubChemRPS
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Source{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger.Named("pubchem"),
	}
}

func (s *Source) Name() string { return "pubchem" }

// TryResolve performs the three-step lookup.  A clean miss at any step is
// NotFound; transport errors, bad payloads, and rate-limit rejections are
// Failed and never abort the chain.
func (s *Source) TryResolve(ctx context.Context, descriptor string, _ chemistry.ResolutionHints) chemistry.SourceResult {
	if err := s.limiter.Wait(ctx); err != nil {
		return chemistry.Failed(fmt.Sprintf("rate limiter: %v", err))
	}

	cid, result := s.lookupCID(ctx, descriptor)
	if result != nil {
		return *result
	}

	record := chemistry.IdentityRecord{
		Source:     chemistry.SourcePrimaryDatabase,
		Confidence: chemistry.ConfidenceHigh,
	}

	synonyms, err := s.fetchSynonyms(ctx, cid)
	if err != nil {
		s.logger.Warn("synonym fetch failed", logging.Int("cid", cid), logging.Err(err))
	}
	for _, syn := range synonyms {
		if identity.ValidRegistryNumber(syn) {
			record.RegistryNumber = syn
			break
		}
	}

	props, err := s.fetchProperties(ctx, cid)
	if err != nil {
		s.logger.Warn("property fetch failed", logging.Int("cid", cid), logging.Err(err))
	} else {
		record.PreferredName = props.IUPACName
		record.Formula = props.MolecularFormula
		if w, convErr := props.MolecularWeight.Float64(); convErr == nil {
			record.ExactWeight = w
		}
	}

	if !record.HasIdentity() {
		return chemistry.NotFound()
	}
	return chemistry.Found(record)
}

// lookupCID resolves descriptor to a compound identifier.  The second
// return value, when non-nil, is the terminal outcome for this attempt.
func (s *Source) lookupCID(ctx context.Context, descriptor string) (int, *chemistry.SourceResult) {
	var payload struct {
		IdentifierList struct {
			CID []int `json:"CID"`
		} `json:"IdentifierList"`
	}

	endpoint := fmt.Sprintf("%s/compound/smiles/%s/cids/JSON",
		s.baseURL, url.PathEscape(descriptor))
	status, err := s.getJSON(ctx, endpoint, &payload)
	switch {
	case err != nil:
		r := chemistry.Failed(err.Error())
		return 0, &r
	case status == http.StatusNotFound:
		r := chemistry.NotFound()
		return 0, &r
	case len(payload.IdentifierList.CID) == 0:
		r := chemistry.NotFound()
		return 0, &r
	}
	return payload.IdentifierList.CID[0], nil
}

func (s *Source) fetchSynonyms(ctx context.Context, cid int) ([]string, error) {
	var payload struct {
		InformationList struct {
			Information []struct {
				Synonym []string `json:"Synonym"`
			} `json:"Information"`
		} `json:"InformationList"`
	}

	endpoint := fmt.Sprintf("%s/compound/cid/%d/synonyms/JSON", s.baseURL, cid)
	if _, err := s.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if len(payload.InformationList.Information) == 0 {
		return nil, nil
	}
	return payload.InformationList.Information[0].Synonym, nil
}

type compoundProperties struct {
	IUPACName        string      `json:"IUPACName"`
	MolecularFormula string      `json:"MolecularFormula"`
	MolecularWeight  json.Number `json:"MolecularWeight"`
}

func (s *Source) fetchProperties(ctx context.Context, cid int) (*compoundProperties, error) {
	var payload struct {
		PropertyTable struct {
			Properties []compoundProperties `json:"Properties"`
		} `json:"PropertyTable"`
	}

	endpoint := fmt.Sprintf(
		"%s/compound/cid/%d/property/IUPACName,MolecularFormula,MolecularWeight/JSON",
		s.baseURL, cid)
	if _, err := s.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if len(payload.PropertyTable.Properties) == 0 {
		return nil, fmt.Errorf("empty property table for cid %d", cid)
	}
	return &payload.PropertyTable.Properties[0], nil
}

// getJSON performs one GET and decodes the body into out.  A 404 returns
// the status with out untouched so callers can treat it as a miss; other
// non-2xx statuses are errors.
func (s *Source) getJSON(ctx context.Context, endpoint string, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("unexpected status %s from %s",
			strconv.Itoa(resp.StatusCode), endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("malformed payload from %s: %w", endpoint, err)
	}
	return resp.StatusCode, nil
}
