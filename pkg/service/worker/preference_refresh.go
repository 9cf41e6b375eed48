package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/central-square/centralsquare/pkg/domain/interfaces"
	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/service/aihost"
	"github.com/central-square/centralsquare/pkg/utils/async"
	"github.com/central-square/centralsquare/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// minTranscriptLength is the transcript length below which extraction is
// not worth running. Matches the inline learning threshold of the chat
// flow.
const minTranscriptLength = 4

// maxConcurrentRefreshes bounds the per-host fan-out of one cycle
const maxConcurrentRefreshes = 4

// PreferenceRefreshWorker periodically re-runs preference extraction for
// hosts whose conversation has grown since the profile was last learned.
// It covers the gap left by the inline learning pass: extraction that
// produced nothing at chat time, or a backend that was down and has since
// recovered.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type PreferenceRefreshWorker struct {
	repo      interfaces.Repository
	extractor *aihost.Extractor
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewPreferenceRefreshWorker creates a new worker for refreshing profiles
func NewPreferenceRefreshWorker(repo interfaces.Repository, extractor *aihost.Extractor, interval time.Duration) *PreferenceRefreshWorker {
	return &PreferenceRefreshWorker{
		repo:      repo,
		extractor: extractor,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background refresh loop. Does not block server startup.
func (w *PreferenceRefreshWorker) Start(ctx context.Context) {
	logging.Default().Info("preference refresh worker starting",
		"interval", w.interval.String())

	go w.run(ctx)
}

// Stop signals the worker to stop and waits for completion
func (w *PreferenceRefreshWorker) Stop() {
	logging.Default().Info("preference refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("preference refresh worker stopped")
}

func (w *PreferenceRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// The cycle runs detached so a slow store never delays the
			// next tick or worker shutdown.
			async.Dispatch(ctx, w.RunOnce)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("preference refresh worker context cancelled")
			return
		}
	}
}

// RunOnce performs a single refresh cycle over all hosts. Per-host failures
// are logged and do not abort the cycle.
func (w *PreferenceRefreshWorker) RunOnce(ctx context.Context) error {
	startTime := time.Now()

	hosts, err := w.repo.Host().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list hosts for preference refresh")
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentRefreshes)

	var refreshed atomic.Int64
	for _, host := range hosts {
		eg.Go(func() error {
			updated, err := w.refreshHost(ctx, host)
			if err != nil {
				logging.From(ctx).Error("preference refresh failed for host",
					"hostID", host.ID,
					"error", err.Error(),
				)
				return nil
			}
			if updated {
				refreshed.Add(1)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return goerr.Wrap(err, "preference refresh cycle aborted")
	}

	logging.From(ctx).Info("preference refresh cycle completed",
		"hosts", len(hosts),
		"refreshed", refreshed.Load(),
		"duration", time.Since(startTime).String(),
	)
	return nil
}

// refreshHost re-extracts one host's profile when the transcript has grown
// past the learning threshold since the last successful extraction.
func (w *PreferenceRefreshWorker) refreshHost(ctx context.Context, host *model.AIHost) (bool, error) {
	// Cheap length check before loading the full transcript
	count, err := w.repo.Conversation().CountTurns(ctx, host.ID)
	if err != nil {
		return false, goerr.Wrap(err, "failed to count turns")
	}
	if count < minTranscriptLength {
		return false, nil
	}

	turns, err := w.repo.Conversation().ListTurns(ctx, host.ID)
	if err != nil {
		return false, goerr.Wrap(err, "failed to load transcript")
	}
	if len(turns) < minTranscriptLength {
		return false, nil
	}

	if profile, err := w.repo.Preference().Get(ctx, host.UserID); err == nil {
		lastTurn := turns[len(turns)-1]
		if !lastTurn.CreatedAt.After(profile.LastLearnedAt) {
			// Nothing new since the profile was learned
			return false, nil
		}
	}

	extraction := w.extractor.Extract(ctx, turns)
	if !extraction.HasSignal() {
		return false, nil
	}

	if _, err := w.repo.Preference().Upsert(ctx, &model.PreferenceProfile{
		UserID:    host.UserID,
		Interests: extraction.Interests,
		Values:    extraction.Values,
		Goals:     extraction.Goals,
		Dislikes:  extraction.Dislikes,
	}); err != nil {
		return false, goerr.Wrap(err, "failed to store refreshed profile")
	}

	return true, nil
}
