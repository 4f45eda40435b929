package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"qrdine/internal/domain"
)

// BoardConsumer tails the lifecycle stream and maintains the live floor
// board in Redis so staff dashboards poll a cache instead of the database.
type BoardConsumer struct {
	Reader *kafka.Reader
	Store  BoardStore
}

func NewBoardConsumer(reader *kafka.Reader, store BoardStore) *BoardConsumer {
	return &BoardConsumer{
		Reader: reader,
		Store:  store,
	}
}

func (c *BoardConsumer) Start(ctx context.Context) {
	log.Println("[board-svc] starting floor board consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[board-svc] error reading message: %v", err)
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("[board-svc] error unmarshaling message: %v", err)
			continue
		}

		c.Process(ctx, event)
	}
}

// Process applies one lifecycle event to the board. Events without a table
// number cannot be placed on the board and are skipped.
func (c *BoardConsumer) Process(ctx context.Context, event domain.Event) {
	if event.TableNumber == "" {
		return
	}

	switch event.Type {
	case domain.EventSessionStarted:
		if err := c.Store.UpdateTable(ctx, event.RestaurantID, event.TableNumber, event.Status, 0); err != nil {
			log.Printf("[board-svc] error updating board for table %s: %v", event.TableNumber, err)
		}
	case domain.EventSessionClosed:
		if err := c.Store.UpdateTable(ctx, event.RestaurantID, event.TableNumber, event.Status, event.Amount); err != nil {
			log.Printf("[board-svc] error updating board for table %s: %v", event.TableNumber, err)
		}
	case domain.EventWaiterCalled:
		if err := c.Store.RecordWaiterCall(ctx, event.RestaurantID, event.TableNumber); err != nil {
			log.Printf("[board-svc] error recording waiter call for table %s: %v", event.TableNumber, err)
		}
	}
}
