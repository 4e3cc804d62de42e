package batch

import (
	"context"

	"github.com/muhammadchandra19/batch-matcher/internal/app/engine"
	ledgerv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/ledger/v1"
	matchpublisherv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/match-publisher/v1"
	orderreaderv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/snapshot/v1"
	orderreader "github.com/muhammadchandra19/batch-matcher/internal/usecase/order-reader"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"github.com/muhammadchandra19/batch-matcher/pkg/util"
	"golang.org/x/sync/errgroup"
)

// Sinks are the destinations of a finished run. Nil sinks are skipped.
type Sinks struct {
	Writer       ledgerv1.Writer
	Repositories []ledgerv1.Repository
	Publisher    matchpublisherv1.TradePublisher
	Snapshots    snapshotv1.Store
}

// Runner reads a batch of events, matches every instrument on its own engine and hands
// the combined ledger to the sinks.
type Runner struct {
	source orderreaderv1.Source
	sinks  Sinks
	logger logger.Interface

	parallelism int
	traceEvents bool
}

// Result is the matched output of a batch.
type Result struct {
	Run       *ledgerv1.Run
	Snapshots []*snapshotv1.Snapshot
}

type instrumentOutcome struct {
	ledger   []orderbookv1.OrderResult
	trades   []orderbookv1.Trade
	snapshot *snapshotv1.Snapshot
}

// NewRunner creates a runner reading from source.
func NewRunner(source orderreaderv1.Source, sinks Sinks, log logger.Interface, opts ...Option) *Runner {
	options := DefaultRunnerOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Runner{
		source:      source,
		sinks:       sinks,
		logger:      log,
		parallelism: options.Parallelism,
		traceEvents: options.TraceEvents,
	}
}

// Run executes one batch. The run id is taken from ctx, or generated when absent.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if util.GetRunID(ctx) == "" {
		ctx = util.WithRunID(ctx, "")
	}
	runID := util.GetRunID(ctx)

	orders, err := r.source.ReadAll(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, err, logger.Field{Key: "operation", Value: "ReadAll"})
		return nil, err
	}

	result, err := r.Match(ctx, runID, orders)
	if err != nil {
		return nil, err
	}

	if err := r.deliver(ctx, result); err != nil {
		return result, err
	}

	r.logger.InfoContext(ctx, "Run completed",
		logger.Field{Key: "events", Value: len(orders)},
		logger.Field{Key: "entries", Value: len(result.Run.Ledger)},
		logger.Field{Key: "trades", Value: len(result.Run.Trades)},
		logger.Field{Key: "instruments", Value: len(result.Snapshots)},
	)
	return result, nil
}

// Match runs one engine per instrument and concatenates their ledgers and trades in
// ascending instrument order. Events keep their delivery order within an instrument.
func (r *Runner) Match(ctx context.Context, runID string, orders []orderbookv1.Order) (*Result, error) {
	groups, instruments := orderreader.GroupByInstrument(orders)
	outcomes := make([]instrumentOutcome, len(instruments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)

	for i, instrument := range instruments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.TracerFromError(err)
			}
			outcomes[i] = r.matchInstrument(util.WithInstrument(gctx, instrument), runID, instrument, groups[instrument])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Run: &ledgerv1.Run{ID: runID}}
	for _, outcome := range outcomes {
		result.Run.Ledger = append(result.Run.Ledger, outcome.ledger...)
		result.Run.Trades = append(result.Run.Trades, outcome.trades...)
		if outcome.snapshot != nil {
			result.Snapshots = append(result.Snapshots, outcome.snapshot)
		}
	}
	return result, nil
}

func (r *Runner) matchInstrument(ctx context.Context, runID, instrument string, events []orderbookv1.Order) instrumentOutcome {
	e := engine.NewEngine(r.logger,
		engine.WithInstrument(instrument),
		engine.WithTraceEvents(r.traceEvents),
	)
	ledger := e.ProcessAll(ctx, events)

	outcome := instrumentOutcome{
		ledger: ledger,
		trades: e.Trades(),
	}

	// Records with an unreadable instrument have no book worth keeping.
	if instrument != "" {
		bids, asks := e.Snapshot()
		outcome.snapshot = snapshotv1.NewSnapshot(runID, instrument, lastTimestamp(events), bids, asks)
	}
	return outcome
}

// deliver writes the ledger first, then feeds the remaining sinks concurrently.
func (r *Runner) deliver(ctx context.Context, result *Result) error {
	if r.sinks.Writer != nil {
		if err := r.sinks.Writer.Write(result.Run.Ledger); err != nil {
			r.logger.ErrorContext(ctx, err, logger.Field{Key: "sink", Value: "writer"})
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, repo := range r.sinks.Repositories {
		g.Go(func() error {
			return repo.StoreRun(gctx, result.Run)
		})
	}

	if r.sinks.Publisher != nil && len(result.Run.Trades) > 0 {
		g.Go(func() error {
			events := make([]*matchpublisherv1.TradeEvent, 0, len(result.Run.Trades))
			for _, trade := range result.Run.Trades {
				events = append(events, matchpublisherv1.CreateFromTrade(result.Run.ID, trade))
			}
			return r.sinks.Publisher.PublishTradeEvents(gctx, events...)
		})
	}

	if r.sinks.Snapshots != nil {
		g.Go(func() error {
			for _, snapshot := range result.Snapshots {
				if err := r.sinks.Snapshots.Store(gctx, snapshot); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

func lastTimestamp(events []orderbookv1.Order) int64 {
	var last int64
	for _, event := range events {
		if event.Timestamp > last {
			last = event.Timestamp
		}
	}
	return last
}
