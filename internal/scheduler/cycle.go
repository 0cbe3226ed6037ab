package scheduler

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"PulseBoard/internal/alert"
	"PulseBoard/internal/calculator"
	"PulseBoard/internal/collector"
	"PulseBoard/internal/model"
	"PulseBoard/internal/notifier"

	"github.com/google/uuid"
)

// ErrCycleInProgress is returned by Run while another cycle is still running.
var ErrCycleInProgress = errors.New("refresh cycle already in progress")

// State is the phase a refresh cycle is in.
type State int32

const (
	StateIdle State = iota
	StateFetching
	StateEvaluating
	StateNotifying
	StateRendering
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateEvaluating:
		return "evaluating"
	case StateNotifying:
		return "notifying"
	case StateRendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// Publisher receives the bundle produced at the end of every cycle.
type Publisher interface {
	Publish(bundle *model.RenderBundle)
}

// Cycle runs one refresh pass, from fetching through rendering. Nothing is kept
// between runs; at most one run is in flight at a time.
type Cycle struct {
	Collector  *collector.Collector
	Thresholds alert.Thresholds
	Sender     notifier.Sender
	Publisher  Publisher

	running atomic.Bool
	state   atomic.Int32
	now     func() time.Time
}

// NewCycle creates a Cycle. pub may be nil.
func NewCycle(col *collector.Collector, th alert.Thresholds, sender notifier.Sender, pub Publisher) *Cycle {
	return &Cycle{
		Collector:  col,
		Thresholds: th,
		Sender:     sender,
		Publisher:  pub,
		now:        time.Now,
	}
}

// State returns the phase of the cycle currently running, or StateIdle.
func (c *Cycle) State() State { return State(c.state.Load()) }

func (c *Cycle) enter(s State) { c.state.Store(int32(s)) }

// tickerResult is the evaluated outcome for one configured symbol.
type tickerResult struct {
	Symbol string
	Series model.Fetched[model.PriceSeries]
	Change float64
	Ok     bool
}

// Run executes a full cycle and returns the bundle it published. Provider and
// mail failures are logged and degrade the output; the only error is
// ErrCycleInProgress.
func (c *Cycle) Run(ctx context.Context) (*model.RenderBundle, error) {
	if !c.running.CompareAndSwap(false, true) {
		return nil, ErrCycleInProgress
	}
	defer c.running.Store(false)
	defer c.enter(StateIdle)

	id := uuid.NewString()
	start := c.now()
	log.Printf("[INFO] cycle=%s refresh started", id)

	c.enter(StateFetching)
	snap := c.Collector.Collect(ctx)

	c.enter(StateEvaluating)
	tickers, input := c.evaluate(id, snap)

	c.enter(StateNotifying)
	events := alert.Evaluate(input, c.Thresholds)
	c.notify(ctx, id, events)

	c.enter(StateRendering)
	bundle := buildBundle(id, c.now(), c.Collector.LookbackDays, tickers, snap.Weather, events)
	if c.Publisher != nil {
		c.Publisher.Publish(bundle)
	}

	log.Printf("[INFO] cycle=%s refresh finished in %v (%d alerts)", id, c.now().Sub(start).Round(time.Millisecond), len(events))
	return bundle, nil
}

func (c *Cycle) evaluate(id string, snap collector.Snapshot) ([]tickerResult, alert.Input) {
	var input alert.Input
	tickers := make([]tickerResult, len(c.Collector.Symbols))

	for i, symbol := range c.Collector.Symbols {
		tr := tickerResult{Symbol: symbol}
		if i < len(snap.Series) {
			tr.Series = snap.Series[i]
		}
		if !tr.Series.Ok() {
			log.Printf("[WARN] cycle=%s %s unavailable, skipping its alert: %v", id, symbol, tr.Series.Err)
		} else if change, err := calculator.PercentageChange(tr.Series.Value); err != nil {
			log.Printf("[WARN] cycle=%s %s weekly change: %v", id, symbol, err)
		} else {
			tr.Change, tr.Ok = change, true
			input.StockChanges = append(input.StockChanges, alert.StockChange{Symbol: symbol, Change: change})
		}
		tickers[i] = tr
	}

	if !snap.Weather.Ok() {
		log.Printf("[WARN] cycle=%s forecast unavailable, skipping rain alert: %v", id, snap.Weather.Err)
	} else if maxPrecip, err := calculator.MaxPrecipitation(snap.Weather.Value); err != nil {
		log.Printf("[WARN] cycle=%s max precipitation: %v", id, err)
	} else {
		input.MaxPrecip = &maxPrecip
	}

	return tickers, input
}

func (c *Cycle) notify(ctx context.Context, id string, events []model.AlertEvent) {
	for _, evt := range events {
		subject, body := notifier.FormatAlert(evt)
		if err := c.Sender.Send(ctx, subject, body); err != nil {
			log.Printf("[ERROR] cycle=%s send %q: %v", id, subject, err)
		}
	}
}
