package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

// SessionWithHost is returned from session creation so the caller receives
// the host's join token exactly once.
type SessionWithHost struct {
	Session *domain.DiningSession `json:"session"`
	Host    *domain.SessionGuest  `json:"host"`
}

// SessionSummary is a closed-out session with derived statistics, used for
// history views.
type SessionSummary struct {
	Session           domain.DiningSession `json:"session"`
	DurationMinutes   int64                `json:"duration_minutes"`
	TotalOrders       int                  `json:"total_orders"`
	AverageOrderValue float64              `json:"average_order_value"`
}

// SessionService owns the dining-session state machine. Table occupancy goes
// through the table registry; host admission through the guest registry.
type SessionService struct {
	repo      SessionRepository
	orders    OrderRepository
	tables    TableRegistry
	guests    GuestRegistry
	publisher EventPublisher
}

func NewSessionService(repo SessionRepository, orders OrderRepository, tables TableRegistry, guests GuestRegistry, publisher EventPublisher) *SessionService {
	return &SessionService{
		repo:      repo,
		orders:    orders,
		tables:    tables,
		guests:    guests,
		publisher: publisher,
	}
}

// Create starts a session on a table: claims the table atomically, persists
// the session under a fresh collision-checked code, and admits the host.
// Exactly one of two concurrent Create calls on the same table succeeds.
func (s *SessionService) Create(ctx context.Context, tableID uuid.UUID, hostName, hostPhone string) (*SessionWithHost, error) {
	if hostName == "" {
		return nil, domain.Validationf("host name is required")
	}

	table, err := s.tables.Get(ctx, tableID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetActiveSessionByTable(ctx, tableID); err == nil && existing != nil {
		return nil, domain.Conflictf("table", table.TableNumber, "already has an active session")
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	sessionID := uuid.New()
	if err := s.tables.Occupy(ctx, tableID, sessionID); err != nil {
		return nil, err
	}

	session, err := s.createWithFreshCode(ctx, sessionID, table, hostName, hostPhone)
	if err != nil {
		// The table claim must not outlive a failed session create.
		if relErr := s.tables.Release(ctx, tableID); relErr != nil {
			log.Printf("[session-svc] failed to release table %s after create error: %v", tableID, relErr)
		}
		return nil, err
	}

	host, err := s.guests.AdmitHost(ctx, session, hostName, hostPhone)
	if err != nil {
		// A session whose host never joined must not survive: cancel it and
		// give the table back, mirroring the create-failure path above.
		if cancelErr := session.Cancel(); cancelErr == nil {
			if updErr := s.repo.UpdateSession(ctx, session); updErr != nil {
				log.Printf("[session-svc] failed to cancel session %s after host admission error: %v", session.SessionCode, updErr)
			}
		}
		if relErr := s.tables.Release(ctx, tableID); relErr != nil {
			log.Printf("[session-svc] failed to release table %s after host admission error: %v", tableID, relErr)
		}
		return nil, err
	}

	s.publish(ctx, domain.Event{
		Type:         domain.EventSessionStarted,
		RestaurantID: session.RestaurantID,
		SessionID:    session.ID,
		TableNumber:  table.TableNumber,
		Status:       string(session.Status),
		Timestamp:    time.Now(),
	})

	return &SessionWithHost{Session: session, Host: host}, nil
}

func (s *SessionService) createWithFreshCode(ctx context.Context, sessionID uuid.UUID, table *domain.Table, hostName, hostPhone string) (*domain.DiningSession, error) {
	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := NewSessionCode()
		if err != nil {
			return nil, err
		}
		session := domain.NewDiningSession(table.RestaurantID, table.ID, code, hostName, hostPhone)
		session.ID = sessionID
		if err := s.repo.CreateSession(ctx, session); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return session, nil
	}
	return nil, lastErr
}

func (s *SessionService) Get(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	return s.repo.GetSession(ctx, sessionID)
}

func (s *SessionService) GetByCode(ctx context.Context, code string) (*domain.DiningSession, error) {
	return s.repo.GetSessionByCode(ctx, code)
}

func (s *SessionService) Pause(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Pause()
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Resume(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Resume()
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RequestPayment freezes the bill: the running total is recomputed from all
// non-cancelled orders plus tip, then the session escalates to
// AWAITING_PAYMENT. There is no way back.
func (s *SessionService) RequestPayment(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.SumActiveOrderTotals(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.RequestPayment(total); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Complete(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	return s.close(ctx, sessionID, false)
}

func (s *SessionService) Cancel(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	return s.close(ctx, sessionID, true)
}

func (s *SessionService) close(ctx context.Context, sessionID uuid.UUID, cancelled bool) (*domain.DiningSession, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cancelled {
		err = session.Cancel()
	} else {
		err = session.Complete()
	}
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	tableNumber := s.tableNumber(ctx, session.TableID)
	if err := s.tables.Release(ctx, session.TableID); err != nil {
		log.Printf("[session-svc] failed to release table %s for session %s: %v", session.TableID, session.SessionCode, err)
	}

	s.publish(ctx, domain.Event{
		Type:         domain.EventSessionClosed,
		RestaurantID: session.RestaurantID,
		SessionID:    session.ID,
		TableNumber:  tableNumber,
		Status:       string(session.Status),
		Amount:       session.TotalAmount,
		Timestamp:    time.Now(),
	})
	return session, nil
}

func (s *SessionService) CallWaiter(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.IsTerminal() {
		return domain.InvalidStatef("session", session.SessionCode, string(session.Status))
	}
	session.CallWaiter()
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return err
	}

	s.publish(ctx, domain.Event{
		Type:         domain.EventWaiterCalled,
		RestaurantID: session.RestaurantID,
		SessionID:    session.ID,
		TableNumber:  s.tableNumber(ctx, session.TableID),
		Timestamp:    time.Now(),
	})
	return nil
}

func (s *SessionService) tableNumber(ctx context.Context, tableID uuid.UUID) string {
	table, err := s.tables.Get(ctx, tableID)
	if err != nil {
		return ""
	}
	return table.TableNumber
}

func (s *SessionService) WaiterResponded(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	session.WaiterResponded()
	return s.repo.UpdateSession(ctx, session)
}

func (s *SessionService) SetTip(ctx context.Context, sessionID uuid.UUID, amount float64) (*domain.DiningSession, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.SumActiveOrderTotals(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SetTip(amount, total); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RecalculateTotal re-derives the running total from the order store. The
// cart engine calls this after every submit or cancellation.
func (s *SessionService) RecalculateTotal(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.SumActiveOrderTotals(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.RecalculateTotal(total)
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) ListActive(ctx context.Context, restaurantID uuid.UUID) ([]domain.DiningSession, error) {
	return s.repo.ListActiveSessions(ctx, restaurantID)
}

func (s *SessionService) History(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]SessionSummary, error) {
	sessions, err := s.repo.ListSessionHistory(ctx, restaurantID, limit, offset)
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		orders, err := s.orders.ListSessionOrders(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		active := 0
		orderTotal := 0.0
		for _, order := range orders {
			if order.IsActive() {
				active++
				orderTotal += order.TotalAmount
			}
		}
		// Averaged over order totals only; the tip belongs to the session,
		// not to any order.
		avg := 0.0
		if active > 0 {
			avg = domain.Round2(orderTotal / float64(active))
		}
		summaries = append(summaries, SessionSummary{
			Session:           session,
			DurationMinutes:   session.DurationMinutes(),
			TotalOrders:       active,
			AverageOrderValue: avg,
		})
	}
	return summaries, nil
}

func (s *SessionService) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("[session-svc] failed to publish %s event: %v", event.Type, err)
	}
}

var _ SessionServiceInterface = (*SessionService)(nil)
