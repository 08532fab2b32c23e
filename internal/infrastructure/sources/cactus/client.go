// Package cactus implements the secondary name/identifier link of the
// resolution chain, backed by a CIR-style resolver that answers one field
// per request in plain text.  Partial answers are normal: a name without a
// registry number is still a hit.
package cactus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/turtacn/ChemVault/internal/config"
	"github.com/turtacn/ChemVault/internal/domain/identity"
	"github.com/turtacn/ChemVault/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

const maxBodyBytes = 1 << 20

// Source is the CIR-backed resolution source.
type Source struct {
	client  *http.Client
	baseURL string
	logger  logging.Logger
}

// New constructs the source from config.
func New(cfg config.CactusConfig, logger logging.Logger) *Source {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Source{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		logger:  logger.Named("cactus"),
	}
}

func (s *Source) Name() string { return "cactus" }

// TryResolve queries the name, registry number, formula, and weight fields
// independently and merges whatever came back.  The attempt fails only when
// every field request failed at the transport level; per-field misses are
// normal partial results.
func (s *Source) TryResolve(ctx context.Context, descriptor string, hints chemistry.ResolutionHints) chemistry.SourceResult {
	record := chemistry.IdentityRecord{
		Source:     chemistry.SourceSecondaryDatabase,
		Confidence: chemistry.ConfidenceMedium,
	}
	failures := 0
	requests := 0

	lookup := func(field string) (string, bool) {
		requests++
		value, err := s.fetchField(ctx, descriptor, field)
		if err != nil {
			failures++
			s.logger.Warn("field lookup failed",
				logging.String("field", field), logging.Err(err))
			return "", false
		}
		return value, value != ""
	}

	if name, ok := lookup("iupac_name"); ok {
		record.PreferredName = firstLine(name)
	}
	if cas, ok := lookup("cas"); ok {
		record.RegistryNumber = firstValidRegistryNumber(cas)
	}
	if formula, ok := lookup("formula"); ok {
		record.Formula = firstLine(formula)
	}
	if mw, ok := lookup("mw"); ok {
		if w, err := strconv.ParseFloat(firstLine(mw), 64); err == nil {
			record.ExactWeight = w
		}
	}

	if failures == requests {
		return chemistry.Failed("all field lookups failed")
	}
	if !record.HasIdentity() {
		return chemistry.NotFound()
	}
	return chemistry.Found(record)
}

// fetchField performs one plain-text field request.  A 404 means the
// resolver does not know the field for this structure and returns "".
func (s *Source) fetchField(ctx context.Context, descriptor, field string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", s.baseURL, url.PathEscape(descriptor), field)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d for field %s", resp.StatusCode, field)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// firstLine keeps only the first line of a multi-line answer.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// firstValidRegistryNumber scans a multi-line registry-number answer for
// the first grammar-conformant entry.
func firstValidRegistryNumber(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if identity.ValidRegistryNumber(line) {
			return line
		}
	}
	return ""
}
