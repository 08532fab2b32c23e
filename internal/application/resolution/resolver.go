// Package resolution provides the application-level orchestration of the
// identity resolution chain: the Source contract, the chain Resolver, and
// the facade callers use to turn a raw descriptor into a full
// ResolutionResult.
package resolution

import (
	"context"
	"time"

	"github.com/turtacn/ChemVault/internal/domain/identity"
	"github.com/turtacn/ChemVault/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

// Source is one link of the resolution chain.  Implementations must honour
// ctx cancellation and report failure through the SourceResult status, never
// through panics or fatal errors.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string
	TryResolve(ctx context.Context, descriptor string, hints chemistry.ResolutionHints) chemistry.SourceResult
}

// ResolverCache lets the caller wire a cache around the chain.  The engine
// never caches on its own; a nil cache means every call runs the chain.
type ResolverCache interface {
	Get(ctx context.Context, key string) (chemistry.IdentityRecord, bool)
	Set(ctx context.Context, key string, record chemistry.IdentityRecord)
}

// Recorder receives resolution metrics.  Implementations live in the
// monitoring layer; a nil Recorder disables instrumentation.
type Recorder interface {
	ObserveSourceAttempt(source string, status chemistry.SourceStatus, elapsed time.Duration)
	ObserveResolution(source chemistry.IdentitySource, confidence chemistry.Confidence, elapsed time.Duration)
}

// Resolver runs the ordered source chain with a per-source timeout.
type Resolver struct {
	sources  []Source
	timeout  time.Duration
	cache    ResolverCache
	recorder Recorder
	logger   logging.Logger
}

// DefaultSourceTimeout bounds one source attempt when the caller passes no
// explicit timeout.
const DefaultSourceTimeout = 12 * time.Second

// NewResolver constructs a Resolver over the given ordered sources.  Nil
// cache, recorder, and logger are all valid and disable the corresponding
// concern.
func NewResolver(sources []Source, timeout time.Duration, cache ResolverCache, recorder Recorder, logger logging.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultSourceTimeout
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Resolver{
		sources:  sources,
		timeout:  timeout,
		cache:    cache,
		recorder: recorder,
		logger:   logger,
	}
}

// Resolve walks the chain and returns the first record carrying a registry
// number or preferred name.  Failed sources count as misses: the chain
// always proceeds and always terminates with a record, falling back to a
// synthetic identity even if no configured source produced one.
func (r *Resolver) Resolve(ctx context.Context, descriptor string, hints chemistry.ResolutionHints) chemistry.IdentityRecord {
	started := time.Now()

	if r.cache != nil {
		if record, ok := r.cache.Get(ctx, descriptor); ok {
			r.logger.Debug("identity served from cache",
				logging.String("descriptor", descriptor))
			return record
		}
	}

	record, resolved := r.runChain(ctx, descriptor, hints)
	if !resolved {
		// Terminal guarantee: even a resolver constructed with no sources
		// (or all sources missing) yields a synthetic identity.
		record = identity.NewSyntheticSource().
			TryResolve(ctx, descriptor, hints).Record
	}

	if r.cache != nil {
		r.cache.Set(ctx, descriptor, record)
	}
	if r.recorder != nil {
		r.recorder.ObserveResolution(record.Source, record.Confidence, time.Since(started))
	}
	return record
}

func (r *Resolver) runChain(ctx context.Context, descriptor string, hints chemistry.ResolutionHints) (chemistry.IdentityRecord, bool) {
	for _, src := range r.sources {
		if ctx.Err() != nil {
			r.logger.Warn("resolution cancelled mid-chain",
				logging.String("source", src.Name()),
				logging.Err(ctx.Err()))
			break
		}

		attemptStart := time.Now()
		res := r.tryWithTimeout(ctx, src, descriptor, hints)
		if r.recorder != nil {
			r.recorder.ObserveSourceAttempt(src.Name(), res.Status, time.Since(attemptStart))
		}

		switch res.Status {
		case chemistry.StatusFound:
			if res.Record.HasIdentity() {
				r.logger.Info("identity resolved",
					logging.String("source", src.Name()),
					logging.String("confidence", string(res.Record.Confidence)))
				return res.Record, true
			}
			// Found without a critical field: treat as a miss.
		case chemistry.StatusFailed:
			r.logger.Warn("resolution source failed",
				logging.String("source", src.Name()),
				logging.String("reason", res.FailReason))
		}
	}
	return chemistry.IdentityRecord{}, false
}

func (r *Resolver) tryWithTimeout(ctx context.Context, src Source, descriptor string, hints chemistry.ResolutionHints) chemistry.SourceResult {
	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return src.TryResolve(attemptCtx, descriptor, hints)
}
