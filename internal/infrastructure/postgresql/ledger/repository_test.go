package ledger

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	ledgerv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/ledger/v1"
	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	mockLogger "github.com/muhammadchandra19/batch-matcher/pkg/logger/mock"
	mockPg "github.com/muhammadchandra19/batch-matcher/pkg/postgresql/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(ctx context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeRow struct {
	count int64
	err   error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	*dest[0].(*int64) = f.count
	return nil
}

func drain(t *testing.T, src pgx.CopyFromSource) [][]any {
	var rows [][]any
	for src.Next() {
		values, err := src.Values()
		require.NoError(t, err)
		rows = append(rows, values)
	}
	require.NoError(t, src.Err())
	return rows
}

func sampleRun() *ledgerv1.Run {
	buy := orderbookv1.Order{Timestamp: 1, ID: 1, Instrument: "AAPL", Side: orderbookv1.SideBuy, Type: orderbookv1.OrderTypeLimit, Quantity: 100, Price: decimal.RequireFromString("150"), Action: orderbookv1.ActionNew}
	sell := orderbookv1.Order{Timestamp: 2, ID: 2, Instrument: "AAPL", Side: orderbookv1.SideSell, Type: orderbookv1.OrderTypeLimit, Quantity: 0, Price: decimal.RequireFromString("149.5"), Action: orderbookv1.ActionNew}
	filled := buy
	filled.Timestamp = 2
	filled.Quantity = 40

	return &ledgerv1.Run{
		ID: "run-1",
		Ledger: []orderbookv1.OrderResult{
			orderbookv1.NewResult(buy, orderbookv1.StatusPending),
			orderbookv1.NewExecutionResult(sell, orderbookv1.StatusExecuted, 60, buy.Price, 1),
			orderbookv1.NewExecutionResult(filled, orderbookv1.StatusPartiallyExecuted, 60, buy.Price, 2),
		},
		Trades: []orderbookv1.Trade{
			{ID: "01TRADE", Timestamp: 2, BuyOrderID: 1, SellOrderID: 2, Instrument: "AAPL", Quantity: 60, Price: buy.Price},
		},
	}
}

func TestLedger_StoreRun(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name     string
		mockFn   func(t *testing.T, mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, tx *fakeTx)
		assertFn func(t *testing.T, err error, tx *fakeTx)
	}{
		{
			name: "success",
			mockFn: func(t *testing.T, mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, tx *fakeTx) {
				mockpg.EXPECT().Begin(ctx).Return(tx, nil)

				mockpg.EXPECT().
					CopyFrom(gomock.Any(), pgx.Identifier{"ledger_entries"}, ledgerColumns, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pgx.Identifier, _ []string, src pgx.CopyFromSource) (int64, error) {
						rows := drain(t, src)
						require.Len(t, rows, 3)
						assert.Equal(t, "run-1", rows[0][0])
						assert.Equal(t, int64(1), rows[0][1])
						assert.Equal(t, int64(3), rows[2][1])
						assert.Equal(t, "PARTIALLY_EXECUTED", rows[2][10])
						return int64(len(rows)), nil
					})

				mockpg.EXPECT().
					CopyFrom(gomock.Any(), pgx.Identifier{"trades"}, tradeColumns, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pgx.Identifier, _ []string, src pgx.CopyFromSource) (int64, error) {
						rows := drain(t, src)
						require.Len(t, rows, 1)
						assert.Equal(t, "01TRADE", rows[0][1])
						return int64(len(rows)), nil
					})

				mockLogger.EXPECT().
					Info("Inserted run",
						logger.Field{Key: "runID", Value: "run-1"},
						logger.Field{Key: "entries", Value: int64(3)},
						logger.Field{Key: "trades", Value: int64(1)},
					)
			},
			assertFn: func(t *testing.T, err error, tx *fakeTx) {
				assert.NoError(t, err)
				assert.True(t, tx.committed)
				assert.False(t, tx.rolledBack)
			},
		},
		{
			name: "copy failure rolls back",
			mockFn: func(t *testing.T, mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, tx *fakeTx) {
				mockpg.EXPECT().Begin(ctx).Return(tx, nil)
				mockpg.EXPECT().
					CopyFrom(gomock.Any(), pgx.Identifier{"ledger_entries"}, ledgerColumns, gomock.Any()).
					Return(int64(0), errors.New("duplicate key"))

				mockLogger.EXPECT().Error(gomock.Any(), logger.Field{Key: "runID", Value: "run-1"})
			},
			assertFn: func(t *testing.T, err error, tx *fakeTx) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "duplicate key")
				assert.True(t, tx.rolledBack)
				assert.False(t, tx.committed)
			},
		},
		{
			name: "begin failure",
			mockFn: func(t *testing.T, mockpg *mockPg.MockPostgreSQLClient, mockLogger *mockLogger.MockInterface, tx *fakeTx) {
				mockpg.EXPECT().Begin(ctx).Return(nil, errors.New("connection refused"))
				mockLogger.EXPECT().Error(gomock.Any(), logger.Field{Key: "runID", Value: "run-1"})
			},
			assertFn: func(t *testing.T, err error, tx *fakeTx) {
				require.Error(t, err)
				assert.False(t, tx.committed)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			log := mockLogger.NewMockInterface(ctrl)
			tx := &fakeTx{}

			repo := NewRepository(pg, log)
			tc.mockFn(t, pg, log, tx)

			err := repo.StoreRun(ctx, sampleRun())
			tc.assertFn(t, err, tx)
		})
	}
}

func TestLedger_GetEntries(t *testing.T) {
	ctx := context.Background()
	query := `SELECT run_id, seq, timestamp, order_id, instrument, side, type, quantity, price::text, action, status, executed_quantity, execution_price::text, counterparty_id, reason FROM ledger_entries WHERE run_id = $1 ORDER BY seq`

	testCases := []struct {
		name     string
		mockFn   func(mockpg *mockPg.MockPostgreSQLClient, mockRows *mockPg.MockRowsInterface)
		assertFn func(t *testing.T, entries []ledgerv1.Entry, err error)
	}{
		{
			name: "success",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRows *mockPg.MockRowsInterface) {
				mockpg.EXPECT().Query(ctx, query, "run-1").Return(mockRows, nil)

				mockRows.EXPECT().Next().Return(true)
				mockRows.EXPECT().
					Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
					*dest[0].(*string) = "run-1"
					*dest[1].(*int64) = 1
					*dest[2].(*int64) = 1
					*dest[3].(*int64) = 1
					*dest[4].(*string) = "AAPL"
					*dest[5].(*string) = "BUY"
					*dest[6].(*string) = "LIMIT"
					*dest[7].(*int64) = 100
					*dest[8].(*string) = "150"
					*dest[9].(*string) = "NEW"
					*dest[10].(*string) = "PENDING"
					*dest[11].(*int64) = 0
					*dest[12].(*string) = "0"
					*dest[13].(*int64) = 0
					*dest[14].(*string) = ""
					return nil
				})
				mockRows.EXPECT().Next().Return(false)
				mockRows.EXPECT().Err().Return(nil)
				mockRows.EXPECT().Close()
			},
			assertFn: func(t *testing.T, entries []ledgerv1.Entry, err error) {
				require.NoError(t, err)
				require.Len(t, entries, 1)
				assert.Equal(t, "150", entries[0].Price)
				assert.Equal(t, "PENDING", entries[0].Status)
			},
		},
		{
			name: "failed to query",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRows *mockPg.MockRowsInterface) {
				mockpg.EXPECT().Query(ctx, query, "run-1").Return(nil, errors.New("error"))
			},
			assertFn: func(t *testing.T, entries []ledgerv1.Entry, err error) {
				assert.Error(t, err)
				assert.Nil(t, entries)
			},
		},
		{
			name: "failed to scan",
			mockFn: func(mockpg *mockPg.MockPostgreSQLClient, mockRows *mockPg.MockRowsInterface) {
				mockpg.EXPECT().Query(ctx, query, "run-1").Return(mockRows, nil)
				mockRows.EXPECT().Next().Return(true)
				mockRows.EXPECT().Scan(gomock.Any()).Return(errors.New("error"))
				mockRows.EXPECT().Close()
			},
			assertFn: func(t *testing.T, entries []ledgerv1.Entry, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			rows := mockPg.NewMockRowsInterface(ctrl)
			log := mockLogger.NewMockInterface(ctrl)

			repo := NewRepository(pg, log)
			tc.mockFn(pg, rows)

			entries, err := repo.GetEntries(ctx, "run-1")
			tc.assertFn(t, entries, err)
		})
	}
}

func TestLedger_CountTrades(t *testing.T) {
	ctx := context.Background()
	query := `SELECT COUNT(*) FROM trades WHERE run_id = $1`

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := mockPg.NewMockPostgreSQLClient(ctrl)
	repo := NewRepository(pg, mockLogger.NewMockInterface(ctrl))

	pg.EXPECT().QueryRow(ctx, query, "run-1").Return(fakeRow{count: 4})
	count, err := repo.CountTrades(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	pg.EXPECT().QueryRow(ctx, query, "run-2").Return(fakeRow{err: pgx.ErrNoRows})
	_, err = repo.CountTrades(ctx, "run-2")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestLedger_Migrate(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := mockPg.NewMockPostgreSQLClient(ctrl)
	log := mockLogger.NewMockInterface(ctrl)
	rows := mockPg.NewMockRowsInterface(ctrl)
	tx := &fakeTx{}
	repo := NewRepository(pg, log)

	gomock.InOrder(
		pg.EXPECT().Exec(ctx, gomock.Any()).Return(pgconn.CommandTag{}, nil),
		pg.EXPECT().Query(ctx, "SELECT id FROM public."+MigrationTable+" ORDER BY id").Return(rows, nil),
		pg.EXPECT().Begin(ctx).Return(tx, nil),
		pg.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(pgconn.CommandTag{}, nil),
		pg.EXPECT().Exec(gomock.Any(), gomock.Any(), "000001_create_ledger", "create_ledger").Return(pgconn.CommandTag{}, nil),
	)
	rows.EXPECT().Next().Return(false)
	rows.EXPECT().Err().Return(nil)
	rows.EXPECT().Close()

	log.EXPECT().Info("Applied migration", logger.Field{Key: "migration", Value: "000001_create_ledger"})
	log.EXPECT().Info("Ledger schema migrated", logger.Field{Key: "applied", Value: 1})

	require.NoError(t, repo.Migrate(ctx))
	assert.True(t, tx.committed)
}

func TestMigrations(t *testing.T) {
	files, err := fs.Glob(Migrations(), "*.sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"000001_create_ledger.up.sql", "000001_create_ledger.down.sql"}, files)
}

func TestNumeric(t *testing.T) {
	n, err := numeric("150.25")
	require.NoError(t, err)
	assert.True(t, n.Valid)

	_, err = numeric("abc")
	assert.Error(t, err)
}
