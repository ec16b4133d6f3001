package views

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/melodify-live/melodify-client/internal/adapter"
	"github.com/melodify-live/melodify-client/internal/logger"
)

// ChartPoint is one bar of the simulated popularity chart
type ChartPoint struct {
	HourOffset int
	Listens    int
}

// Chart is one simulated popularity series
type Chart struct {
	ID          string
	GeneratedAt time.Time
	Points      []ChartPoint
}

// chartHours is the window a simulated chart covers
const chartHours = 24

// ChartSimulator regenerates a mock popularity chart on a fixed cadence.
// Real listen counts update only when a transaction settles, which makes a
// static page; the simulator keeps the chart moving between settlements.
// Run blocks until its context is cancelled.
type ChartSimulator struct {
	clock    adapter.Clock
	interval time.Duration
	rng      *rand.Rand

	mu    sync.Mutex
	chart Chart
}

// NewChartSimulator creates a simulator with the given regeneration cadence
func NewChartSimulator(clock adapter.Clock, interval time.Duration, seed int64) *ChartSimulator {
	s := &ChartSimulator{
		clock:    clock,
		interval: interval,
		rng:      rand.New(rand.NewSource(seed)),
	}
	s.regenerate()
	return s
}

// Run regenerates the chart every interval until ctx is cancelled
func (s *ChartSimulator) Run(ctx context.Context) {
	logger.InfoCtx(ctx, "chart simulator started")
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "chart simulator stopped")
			return
		case <-s.clock.After(s.interval):
			s.regenerate()
		}
	}
}

// regenerate produces a fresh random-walk series
func (s *ChartSimulator) regenerate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := make([]ChartPoint, chartHours)
	listens := 50 + s.rng.Intn(200)
	for i := range points {
		// Random walk, floored at zero
		listens += s.rng.Intn(41) - 20
		if listens < 0 {
			listens = 0
		}
		points[i] = ChartPoint{HourOffset: i - chartHours + 1, Listens: listens}
	}

	s.chart = Chart{
		ID:          ulid.Make().String(),
		GeneratedAt: s.clock.Now(),
		Points:      points,
	}
}

// Current returns the latest simulated chart
func (s *ChartSimulator) Current() Chart {
	s.mu.Lock()
	defer s.mu.Unlock()
	chart := s.chart
	chart.Points = append([]ChartPoint(nil), s.chart.Points...)
	return chart
}
