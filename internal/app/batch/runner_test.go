package batch

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/golang/mock/gomock"
	ledgerv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/ledger/v1"
	ledgerv1_mock "github.com/muhammadchandra19/batch-matcher/internal/domain/ledger/v1/mock"
	matchpublisherv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/match-publisher/v1"
	matchpublisherv1_mock "github.com/muhammadchandra19/batch-matcher/internal/domain/match-publisher/v1/mock"
	orderreaderv1_mock "github.com/muhammadchandra19/batch-matcher/internal/domain/order-reader/v1/mock"
	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/snapshot/v1"
	snapshotv1_mock "github.com/muhammadchandra19/batch-matcher/internal/domain/snapshot/v1/mock"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"github.com/muhammadchandra19/batch-matcher/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limit(ts, id int64, instrument string, side orderbookv1.Side, qty int64, price string) orderbookv1.Order {
	return orderbookv1.Order{
		Timestamp:  ts,
		ID:         id,
		Instrument: instrument,
		Side:       side,
		Type:       orderbookv1.OrderTypeLimit,
		Quantity:   qty,
		Price:      decimal.RequireFromString(price),
		Action:     orderbookv1.ActionNew,
	}
}

// Two instruments delivered interleaved; each crosses once.
func mixedBatch() []orderbookv1.Order {
	return []orderbookv1.Order{
		limit(1, 1, "MSFT", orderbookv1.SideBuy, 10, "300"),
		limit(2, 2, "AAPL", orderbookv1.SideBuy, 100, "150"),
		limit(3, 3, "MSFT", orderbookv1.SideSell, 4, "299"),
		limit(4, 4, "AAPL", orderbookv1.SideSell, 60, "150"),
		limit(5, 5, "AAPL", orderbookv1.SideSell, 5, "155"),
	}
}

type runnerMocks struct {
	source    *orderreaderv1_mock.MockSource
	writer    *ledgerv1_mock.MockWriter
	repo      *ledgerv1_mock.MockRepository
	publisher *matchpublisherv1_mock.MockTradePublisher
	snapshots *snapshotv1_mock.MockStore
}

func TestRunner_Run(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(t *testing.T, m runnerMocks)
		assertFn func(t *testing.T, result *Result, err error)
	}{
		{
			name: "success",
			mockFn: func(t *testing.T, m runnerMocks) {
				m.source.EXPECT().ReadAll(gomock.Any()).Return(mixedBatch(), nil)
				m.writer.EXPECT().Write(gomock.Any()).DoAndReturn(func(results []orderbookv1.OrderResult) error {
					require.Len(t, results, 7)
					assert.Equal(t, "AAPL", results[0].Order.Instrument)
					assert.Equal(t, "MSFT", results[len(results)-1].Order.Instrument)
					return nil
				})
				m.repo.EXPECT().StoreRun(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *ledgerv1.Run) error {
					assert.Equal(t, "run-1", run.ID)
					assert.Len(t, run.Trades, 2)
					return nil
				})
				m.publisher.EXPECT().PublishTradeEvents(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, events ...*matchpublisherv1.TradeEvent) error {
						require.Len(t, events, 2)
						assert.Equal(t, "AAPL", events[0].Instrument)
						assert.Equal(t, "150", events[0].Price)
						assert.Equal(t, "MSFT", events[1].Instrument)
						assert.Equal(t, "300", events[1].Price)
						assert.Equal(t, "run-1", events[1].RunID)
						return nil
					})
				m.snapshots.EXPECT().Store(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, snapshot *snapshotv1.Snapshot) error {
					switch snapshot.Instrument {
					case "AAPL":
						assert.Equal(t, int64(5), snapshot.TakenAt)
						require.Len(t, snapshot.Bids, 1)
						assert.Equal(t, int64(40), snapshot.Bids[0].Quantity)
						require.Len(t, snapshot.Asks, 1)
						assert.Equal(t, int64(5), snapshot.Asks[0].OrderID)
					case "MSFT":
						require.Len(t, snapshot.Bids, 1)
						assert.Equal(t, int64(6), snapshot.Bids[0].Quantity)
						assert.Empty(t, snapshot.Asks)
					default:
						t.Errorf("unexpected instrument %q", snapshot.Instrument)
					}
					return nil
				}).Times(2)
			},
			assertFn: func(t *testing.T, result *Result, err error) {
				require.NoError(t, err)
				assert.Equal(t, "run-1", result.Run.ID)
				assert.Len(t, result.Snapshots, 2)
			},
		},
		{
			name: "source error stops the run",
			mockFn: func(t *testing.T, m runnerMocks) {
				m.source.EXPECT().ReadAll(gomock.Any()).Return(nil, goerrors.New("broker down"))
			},
			assertFn: func(t *testing.T, result *Result, err error) {
				assert.EqualError(t, err, "broker down")
				assert.Nil(t, result)
			},
		},
		{
			name: "writer error skips the other sinks",
			mockFn: func(t *testing.T, m runnerMocks) {
				m.source.EXPECT().ReadAll(gomock.Any()).Return(mixedBatch(), nil)
				m.writer.EXPECT().Write(gomock.Any()).Return(goerrors.New("disk full"))
			},
			assertFn: func(t *testing.T, result *Result, err error) {
				assert.EqualError(t, err, "disk full")
				require.NotNil(t, result)
				assert.Len(t, result.Run.Ledger, 7)
			},
		},
		{
			name: "repository error is returned",
			mockFn: func(t *testing.T, m runnerMocks) {
				m.source.EXPECT().ReadAll(gomock.Any()).Return(mixedBatch(), nil)
				m.writer.EXPECT().Write(gomock.Any()).Return(nil)
				m.repo.EXPECT().StoreRun(gomock.Any(), gomock.Any()).Return(goerrors.New("constraint violation"))
				m.publisher.EXPECT().PublishTradeEvents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				m.snapshots.EXPECT().Store(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			assertFn: func(t *testing.T, result *Result, err error) {
				assert.EqualError(t, err, "constraint violation")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := runnerMocks{
				source:    orderreaderv1_mock.NewMockSource(ctrl),
				writer:    ledgerv1_mock.NewMockWriter(ctrl),
				repo:      ledgerv1_mock.NewMockRepository(ctrl),
				publisher: matchpublisherv1_mock.NewMockTradePublisher(ctrl),
				snapshots: snapshotv1_mock.NewMockStore(ctrl),
			}
			tc.mockFn(t, m)

			runner := NewRunner(m.source, Sinks{
				Writer:       m.writer,
				Repositories: []ledgerv1.Repository{m.repo},
				Publisher:    m.publisher,
				Snapshots:    m.snapshots,
			}, logger.NewNopLogger())

			ctx := util.WithRunID(context.Background(), "run-1")
			result, err := runner.Run(ctx)
			tc.assertFn(t, result, err)
		})
	}
}

func TestRunner_RunGeneratesRunID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := orderreaderv1_mock.NewMockSource(ctrl)
	source.EXPECT().ReadAll(gomock.Any()).Return(nil, nil)

	result, err := NewRunner(source, Sinks{}, logger.NewNopLogger()).Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Run.ID)
	assert.Empty(t, result.Run.Ledger)
}

func TestRunner_MatchIsIndependentOfParallelism(t *testing.T) {
	ctx := context.Background()
	batch := mixedBatch()
	for i := int64(0); i < 20; i++ {
		instrument := []string{"AAPL", "MSFT", "TSLA", "NVDA"}[i%4]
		side := orderbookv1.SideBuy
		if i%3 == 0 {
			side = orderbookv1.SideSell
		}
		batch = append(batch, limit(10+i, 100+i, instrument, side, 5+i, "150"))
	}

	sequential, err := NewRunner(nil, Sinks{}, logger.NewNopLogger(), WithParallelism(1)).Match(ctx, "run", batch)
	require.NoError(t, err)
	parallel, err := NewRunner(nil, Sinks{}, logger.NewNopLogger(), WithParallelism(8)).Match(ctx, "run", batch)
	require.NoError(t, err)

	assert.Equal(t, sequential.Run.Ledger, parallel.Run.Ledger)
	require.Len(t, parallel.Run.Trades, len(sequential.Run.Trades))
	for i := range sequential.Run.Trades {
		assert.Equal(t, sequential.Run.Trades[i].Quantity, parallel.Run.Trades[i].Quantity)
		assert.Equal(t, sequential.Run.Trades[i].BuyOrderID, parallel.Run.Trades[i].BuyOrderID)
	}
}

func TestRunner_MatchSkipsSnapshotWithoutInstrument(t *testing.T) {
	bad := orderbookv1.Order{Timestamp: 1, Type: orderbookv1.OrderTypeBadInput, Action: orderbookv1.ActionNew, Price: decimal.Zero}

	result, err := NewRunner(nil, Sinks{}, logger.NewNopLogger()).Match(context.Background(), "run", []orderbookv1.Order{bad})
	require.NoError(t, err)
	require.Len(t, result.Run.Ledger, 1)
	assert.Equal(t, orderbookv1.StatusRejected, result.Run.Ledger[0].Status)
	assert.Empty(t, result.Snapshots)
}

func TestWithParallelism(t *testing.T) {
	options := DefaultRunnerOptions()
	WithParallelism(0)(options)
	assert.Equal(t, 4, options.Parallelism)

	WithParallelism(2)(options)
	assert.Equal(t, 2, options.Parallelism)
}
