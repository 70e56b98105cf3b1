package trends

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// TrendSource produces snapshots. The Collector is the production source;
// tests substitute fakes.
type TrendSource interface {
	Collect(ctx context.Context) (Snapshot, error)
}

// Runner drives the collect-analyze-publish cycle. A run is skipped when
// the rankings have not moved enough since the previous run, unless forced.
type Runner struct {
	source    TrendSource
	analyzer  *Analyzer
	store     *Store
	publisher Publisher
	interval  time.Duration
	force     bool
	log       *zap.Logger
}

// NewRunner creates a Runner over the given source, analyzer, and store.
// Publishing defaults to a no-op and the interval to one hour.
func NewRunner(source TrendSource, analyzer *Analyzer, store *Store) *Runner {
	return &Runner{
		source:    source,
		analyzer:  analyzer,
		store:     store,
		publisher: NopPublisher{},
		interval:  time.Hour,
		log:       zap.NewNop(),
	}
}

// WithPublisher sets the publisher invoked after each report write.
func (r *Runner) WithPublisher(p Publisher) *Runner {
	r.publisher = p
	return r
}

// WithInterval sets the delay between continuous runs.
func (r *Runner) WithInterval(d time.Duration) *Runner {
	if d > 0 {
		r.interval = d
	}
	return r
}

// WithForce makes every run analyze and publish even when nothing changed.
func (r *Runner) WithForce(force bool) *Runner {
	r.force = force
	return r
}

// WithLogger sets the logger.
func (r *Runner) WithLogger(log *zap.Logger) *Runner {
	r.log = log
	return r
}

// RunOnce performs one full cycle. It reports whether a fresh report was
// published; false means the rankings were unchanged and the run stopped
// after saving the snapshot.
func (r *Runner) RunOnce(ctx context.Context) (bool, error) {
	snap, err := r.source.Collect(ctx)
	if err != nil {
		return false, err
	}
	if err := r.store.SaveSnapshot(snap); err != nil {
		return false, err
	}

	changed := true
	last, err := r.store.LoadLastRun()
	switch {
	case errors.Is(err, ErrNoSnapshot):
		r.log.Info("no previous run, treating as changed")
	case err != nil:
		return false, err
	default:
		changed = trendsChanged(snap, last)
	}

	if err := r.store.SaveLastRun(snap); err != nil {
		return false, err
	}

	if !changed && !r.force {
		r.log.Info("rankings unchanged, skipping analysis")
		return false, nil
	}

	report := r.analyzer.Analyze(snap)
	if err := r.store.SaveReport(report); err != nil {
		return false, err
	}
	if err := r.publisher.Publish(ctx, r.store.ArtifactPaths()); err != nil {
		return false, err
	}

	r.log.Info("run complete", zap.Bool("forced", r.force && !changed))
	return true, nil
}

// Run loops RunOnce on the configured interval until the context is
// canceled. Individual run failures are logged, not fatal.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.log.Error("run failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// trendsChanged reports whether the rankings moved enough to warrant a new
// report: at least two new hashtags in the 7-day top five, or a new song in
// the trending top three.
func trendsChanged(current, last Snapshot) bool {
	lastTags := make(map[string]bool)
	for _, h := range topHashtags(last.Hashtags7d, 5) {
		lastTags[h.Hashtag] = true
	}
	newTags := 0
	for _, h := range topHashtags(current.Hashtags7d, 5) {
		if !lastTags[h.Hashtag] {
			newTags++
		}
	}
	if newTags >= 2 {
		return true
	}

	lastSongs := make(map[string]bool)
	for _, s := range topSongs(last.TrendingSongs, 3) {
		lastSongs[s.Label()] = true
	}
	for _, s := range topSongs(current.TrendingSongs, 3) {
		if !lastSongs[s.Label()] {
			return true
		}
	}
	return false
}

func topHashtags(records []HashtagRecord, n int) []HashtagRecord {
	if len(records) > n {
		return records[:n]
	}
	return records
}

func topSongs(records []SongRecord, n int) []SongRecord {
	if len(records) > n {
		return records[:n]
	}
	return records
}
