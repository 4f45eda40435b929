package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"qrdine/internal/domain"
	"qrdine/internal/mocks"
	"qrdine/internal/service"
)

func TestBoardConsumer_Process(t *testing.T) {
	ctx := context.Background()
	restaurantID := uuid.New()

	t.Run("session_started_marks_table", func(t *testing.T) {
		store := mocks.NewBoardStore(t)
		consumer := service.NewBoardConsumer(nil, store)

		store.On("UpdateTable", ctx, restaurantID, "T1", "ACTIVE", 0.0).Return(nil).Once()

		consumer.Process(ctx, domain.Event{
			Type:         domain.EventSessionStarted,
			RestaurantID: restaurantID,
			TableNumber:  "T1",
			Status:       "ACTIVE",
			Timestamp:    time.Now(),
		})
	})

	t.Run("session_closed_records_final_amount", func(t *testing.T) {
		store := mocks.NewBoardStore(t)
		consumer := service.NewBoardConsumer(nil, store)

		store.On("UpdateTable", ctx, restaurantID, "T1", "COMPLETED", 77.50).Return(nil).Once()

		consumer.Process(ctx, domain.Event{
			Type:         domain.EventSessionClosed,
			RestaurantID: restaurantID,
			TableNumber:  "T1",
			Status:       "COMPLETED",
			Amount:       77.50,
			Timestamp:    time.Now(),
		})
	})

	t.Run("waiter_call_flags_the_table", func(t *testing.T) {
		store := mocks.NewBoardStore(t)
		consumer := service.NewBoardConsumer(nil, store)

		store.On("RecordWaiterCall", ctx, restaurantID, "T3").Return(nil).Once()

		consumer.Process(ctx, domain.Event{
			Type:         domain.EventWaiterCalled,
			RestaurantID: restaurantID,
			TableNumber:  "T3",
			Timestamp:    time.Now(),
		})
	})

	t.Run("events_without_a_table_are_skipped", func(t *testing.T) {
		store := mocks.NewBoardStore(t)
		consumer := service.NewBoardConsumer(nil, store)

		consumer.Process(ctx, domain.Event{
			Type:         domain.EventOrderSubmitted,
			RestaurantID: restaurantID,
			Timestamp:    time.Now(),
		})
	})
}
