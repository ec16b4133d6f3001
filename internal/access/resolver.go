package access

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/melodify-live/melodify-client/internal/adapter"
	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/ledger"
	"github.com/melodify-live/melodify-client/internal/logger"
	"github.com/melodify-live/melodify-client/internal/txbuilder"
)

// Decision is the outcome of an access resolution
type Decision struct {
	Granted      bool
	CapabilityID string
}

// Resolver determines listen entitlement for a (user, track) pair.
//
// The flow is stateless and safe to call repeatedly; it caches nothing, so
// callers must re-resolve after any transaction that could have minted or
// invalidated a capability. Every upstream failure resolves to a denial:
// an unreachable ledger is never interpreted as access granted.
//
//go:generate mockgen -source=resolver.go -destination=../mocks/access_resolver.go -package=mocks -mock_names=Resolver=MockAccessResolver
type Resolver interface {
	// ResolveAccess reports whether user may play trackID right now. A grant
	// requires an unexpired matching capability and a successful dry-run of
	// the authorization entry point with that capability as proof.
	// The returned error, when set, accompanies a denial and exists only so
	// the caller can offer a retry.
	ResolveAccess(ctx context.Context, user string, trackID string) (Decision, error)

	// HasCapability performs only the local capability scan and expiry check.
	// It backs ownership badges; it must not gate media access, because
	// authorization rules can encode conditions (revocation) beyond expiry
	// that only the ledger-side simulation observes.
	HasCapability(ctx context.Context, user string, trackID string) (Decision, error)
}

type resolver struct {
	ledger    ledger.Client
	builder   *txbuilder.Builder
	clock     adapter.Clock
	packageID string
}

// NewResolver creates an access resolver over the given ledger client
func NewResolver(ledgerClient ledger.Client, builder *txbuilder.Builder, clock adapter.Clock, packageID string) Resolver {
	return &resolver{
		ledger:    ledgerClient,
		builder:   builder,
		clock:     clock,
		packageID: packageID,
	}
}

func (r *resolver) ResolveAccess(ctx context.Context, user string, trackID string) (Decision, error) {
	candidates, err := r.unexpiredCapabilities(ctx, user, trackID)
	if err != nil {
		// Fail closed: the ledger being unreachable is a denial, surfaced
		// for retry, never a grant
		return Decision{}, err
	}

	var lastErr error
	for _, cap := range candidates {
		desc, err := r.builder.BuildApproveAccess(cap.ID)
		if err != nil {
			lastErr = err
			continue
		}

		sim, err := r.ledger.DryRun(ctx, user, desc)
		if err != nil {
			logger.DebugCtx(ctx, "authorization simulation failed",
				zap.String("capability", cap.ID), zap.Error(err))
			lastErr = err
			continue
		}
		if sim.Success() {
			return Decision{Granted: true, CapabilityID: cap.ID}, nil
		}
		logger.DebugCtx(ctx, "authorization simulation rejected capability",
			zap.String("capability", cap.ID), zap.String("reason", sim.Error))
	}

	return Decision{}, lastErr
}

func (r *resolver) HasCapability(ctx context.Context, user string, trackID string) (Decision, error) {
	candidates, err := r.unexpiredCapabilities(ctx, user, trackID)
	if err != nil {
		return Decision{}, err
	}
	if len(candidates) == 0 {
		return Decision{}, nil
	}
	return Decision{Granted: true, CapabilityID: candidates[0].ID}, nil
}

// unexpiredCapabilities scans every capability the user owns and keeps those
// matching trackID that have not lapsed. An expired match never short-circuits
// the scan; a later candidate may still be valid.
func (r *resolver) unexpiredCapabilities(ctx context.Context, user string, trackID string) ([]domain.ListenCapability, error) {
	records, err := r.ledger.GetOwnedObjects(ctx, user, ledger.ListenCapType(r.packageID))
	if err != nil {
		return nil, fmt.Errorf("%w: capability lookup: %v", domain.ErrAccessDenied, err)
	}

	now := r.clock.Now()
	var matches []domain.ListenCapability
	for i := range records {
		cap, err := ledger.ParseListenCapability(&records[i])
		if err != nil {
			logger.DebugCtx(ctx, "skipping undecodable capability record",
				zap.String("object", records[i].ObjectID), zap.Error(err))
			continue
		}
		if cap.Grants(trackID, now) {
			matches = append(matches, *cap)
		}
	}

	return matches, nil
}
