package nettest

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"yanyucloud-api/pkg/cache"
)

// Result is one completed measurement.
type Result struct {
	TestID       string  `json:"testId"`
	Timestamp    string  `json:"timestamp"`
	LatencyMs    float64 `json:"latencyMs"`
	JitterMs     float64 `json:"jitterMs"`
	DownloadMbps float64 `json:"downloadMbps"`
	UploadMbps   float64 `json:"uploadMbps"`
	Score        int     `json:"score"`
	Grade        string  `json:"grade"`
}

const (
	// activeTTL guards against overlapping tests from one client. It
	// outlives any plausible test duration so a crashed run cannot wedge
	// the client for long.
	activeTTL = 30 * time.Second

	// resultTTL keeps completed results queryable for one hour.
	resultTTL = time.Hour
)

// Service runs simulated measurements and serves cached results.
type Service struct {
	Cache  *cache.Cache
	Logger *slog.Logger

	// StageDelay is how long each simulated stage takes. Zero makes tests
	// instantaneous.
	StageDelay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a Service seeded for non-reproducible measurements.
func NewService(store *cache.Cache, logger *slog.Logger, stageDelay time.Duration) *Service {
	return &Service{
		Cache:      store,
		Logger:     logger,
		StageDelay: stageDelay,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run executes a measurement for clientID. Returns ErrTestInProgress if the
// client already has an active test. The four stages run concurrently; the
// result is cached under its test id for one hour.
func (s *Service) Run(ctx context.Context, clientID string) (*Result, error) {
	activeKey := "nettest:active:" + clientID
	if _, running := s.Cache.Get(activeKey); running {
		return nil, ErrTestInProgress
	}
	s.Cache.Set(activeKey, true, activeTTL)
	defer s.Cache.Delete(activeKey)

	// Draw the simulated readings up front: the stage goroutines share no
	// state, only the pre-drawn values and the clock.
	var (
		latency  = s.draw(5, 80)
		jitter   = s.draw(0.5, 15)
		download = s.draw(20, 500)
		upload   = s.draw(10, 200)
	)

	result := &Result{
		TestID:    "nt-" + uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.stage(gctx, func() { result.LatencyMs = round1(latency) }) })
	g.Go(func() error { return s.stage(gctx, func() { result.JitterMs = round1(jitter) }) })
	g.Go(func() error { return s.stage(gctx, func() { result.DownloadMbps = round1(download) }) })
	g.Go(func() error { return s.stage(gctx, func() { result.UploadMbps = round1(upload) }) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("network test aborted: %w", err)
	}

	result.Score = scoreOf(result)
	result.Grade = gradeOf(result.Score)

	s.Cache.Set("nettest:result:"+result.TestID, result, resultTTL)

	s.Logger.Info("network test completed",
		slog.String("test_id", result.TestID),
		slog.String("client", clientID),
		slog.Int("score", result.Score),
		slog.String("grade", result.Grade),
	)
	return result, nil
}

// Lookup returns the cached result for testID.
func (s *Service) Lookup(testID string) (*Result, error) {
	if strings.TrimSpace(testID) == "" {
		return nil, ErrMissingTestID
	}
	v, ok := s.Cache.Get("nettest:result:" + testID)
	if !ok {
		return nil, ErrTestNotFound
	}
	result, ok := v.(*Result)
	if !ok {
		return nil, fmt.Errorf("unexpected cached value type %T for test %s", v, testID)
	}
	return result, nil
}

// stage simulates one measurement stage, honoring cancellation.
func (s *Service) stage(ctx context.Context, record func()) error {
	if s.StageDelay > 0 {
		timer := time.NewTimer(s.StageDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	record()
	return nil
}

func (s *Service) draw(min, max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Float64()*(max-min)
}

// Scoring bands per stage, weighted latency 30%, jitter 20%, download 30%,
// upload 20%.
func scoreOf(r *Result) int {
	latency := bandScore(r.LatencyMs, []band{{20, 100}, {50, 85}, {100, 70}, {200, 50}}, 30)
	jitter := bandScore(r.JitterMs, []band{{2, 100}, {5, 85}, {10, 70}, {20, 50}}, 30)
	download := bandScoreDesc(r.DownloadMbps, []band{{300, 100}, {100, 85}, {50, 70}, {20, 50}}, 30)
	upload := bandScoreDesc(r.UploadMbps, []band{{100, 100}, {50, 85}, {20, 70}, {10, 50}}, 30)

	total := 0.3*latency + 0.2*jitter + 0.3*download + 0.2*upload
	return int(total + 0.5)
}

type band struct {
	limit float64
	score float64
}

// bandScore scores a lower-is-better metric: the first band whose limit the
// value does not exceed wins.
func bandScore(value float64, bands []band, floor float64) float64 {
	for _, b := range bands {
		if value <= b.limit {
			return b.score
		}
	}
	return floor
}

// bandScoreDesc scores a higher-is-better metric: the first band whose limit
// the value meets wins.
func bandScoreDesc(value float64, bands []band, floor float64) float64 {
	for _, b := range bands {
		if value >= b.limit {
			return b.score
		}
	}
	return floor
}

func gradeOf(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 75:
		return "good"
	case score >= 60:
		return "fair"
	default:
		return "poor"
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
