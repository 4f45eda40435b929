package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"qrdine/internal/domain"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return NewPostgresRepository(db), mock
}

func TestOccupyTable(t *testing.T) {
	ctx := context.Background()
	tableID := uuid.New()
	sessionID := uuid.New()

	t.Run("claims_the_row", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE restaurant_tables`).
			WithArgs(domain.TableOccupied, sessionID, tableID, domain.TableAvailable, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.OccupyTable(ctx, tableID, sessionID, 3))
	})

	t.Run("zero_rows_means_lost_race", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE restaurant_tables`).
			WithArgs(domain.TableOccupied, sessionID, tableID, domain.TableAvailable, 3).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.OccupyTable(ctx, tableID, sessionID, 3), domain.ErrConflict)
	})
}

func TestGetTable_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	tableID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM restaurant_tables WHERE id`).
		WithArgs(tableID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetTable(context.Background(), tableID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateTable_DuplicateNumber(t *testing.T) {
	repo, mock := newMockRepo(t)
	table := &domain.Table{ID: uuid.New(), RestaurantID: uuid.New(), TableNumber: "T1", Capacity: 4, QRCode: "TBL-ABCDE12345", Status: domain.TableAvailable}

	mock.ExpectQuery(`INSERT INTO restaurant_tables`).
		WithArgs(table.ID, table.RestaurantID, table.TableNumber, table.Capacity,
			table.LocationDescription, table.QRCode, table.Status).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	assert.ErrorIs(t, repo.CreateTable(context.Background(), table), domain.ErrConflict)
}

func TestSumActiveOrderTotals(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("excludes_cancelled_and_refunded", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`COALESCE\(SUM\(total_amount\), 0\)`).
			WithArgs(sessionID, domain.OrderCancelled, domain.OrderRefunded).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(47.25))

		total, err := repo.SumActiveOrderTotals(ctx, sessionID)
		assert.NoError(t, err)
		assert.Equal(t, 47.25, total)
	})

	t.Run("empty_session_sums_to_zero", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`COALESCE\(SUM\(total_amount\), 0\)`).
			WithArgs(sessionID, domain.OrderCancelled, domain.OrderRefunded).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.0))

		total, err := repo.SumActiveOrderTotals(ctx, sessionID)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, total)
	})
}

func TestIncrementVoucherUsage_LimitReached(t *testing.T) {
	repo, mock := newMockRepo(t)
	voucherID := uuid.New()

	mock.ExpectExec(`UPDATE vouchers`).
		WithArgs(voucherID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.IncrementVoucherUsage(context.Background(), voucherID), domain.ErrConflict)
}

func TestUpdateSession_VersionConflict(t *testing.T) {
	repo, mock := newMockRepo(t)
	session := domain.NewDiningSession(uuid.New(), uuid.New(), "AB12CD", "Alice", "")
	session.Version = 2

	mock.ExpectExec(`UPDATE dining_sessions`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.UpdateSession(context.Background(), session), domain.ErrConflict)
}

func TestSaveCart_ReplacesItemsTransactionally(t *testing.T) {
	repo, mock := newMockRepo(t)
	cart := domain.NewCart(uuid.New(), uuid.New())
	assert.NoError(t, cart.AddItem(domain.CartItem{ID: uuid.New(), GuestID: uuid.New(), Name: "Pad Thai", UnitPrice: 12.00, Quantity: 2}))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO carts`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM cart_items`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO cart_items`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.SaveCart(context.Background(), cart))
}

func TestPromoteCart_CommitsOrderAndCartRemoval(t *testing.T) {
	repo, mock := newMockRepo(t)
	cartID := uuid.New()
	order := &domain.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-AAAA1111",
		Status:      domain.OrderConfirmed,
		Items:       []domain.OrderItem{{ID: uuid.New(), GuestID: uuid.New(), MenuItemID: uuid.New(), Name: "Pad Thai", Quantity: 2, UnitPrice: 12.00, TotalPrice: 24.00}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM carts`).
		WithArgs(cartID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.PromoteCart(context.Background(), cartID, order))
}

func TestPromoteCart_RollsBackWhenCartRemovalFails(t *testing.T) {
	repo, mock := newMockRepo(t)
	cartID := uuid.New()
	order := &domain.Order{ID: uuid.New(), OrderNumber: "ORD-AAAA1111", Status: domain.OrderConfirmed}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM carts`).
		WithArgs(cartID).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	assert.Error(t, repo.PromoteCart(context.Background(), cartID, order))
}

func TestPromoteCart_DuplicateOrderNumberIsConflict(t *testing.T) {
	repo, mock := newMockRepo(t)
	cartID := uuid.New()
	order := &domain.Order{ID: uuid.New(), OrderNumber: "ORD-AAAA1111", Status: domain.OrderConfirmed}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WillReturnError(&pq.Error{Code: uniqueViolation})
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.PromoteCart(context.Background(), cartID, order), domain.ErrConflict)
}

func TestSaveCart_RollsBackOnItemFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	cart := domain.NewCart(uuid.New(), uuid.New())
	assert.NoError(t, cart.AddItem(domain.CartItem{ID: uuid.New(), GuestID: uuid.New(), Name: "Pad Thai", UnitPrice: 12.00, Quantity: 2}))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO carts`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM cart_items`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO cart_items`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	assert.Error(t, repo.SaveCart(context.Background(), cart))
}
