package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

// GuestService is the guest registry for dining sessions. Every guest holds a
// join token that authorizes their cart and order actions; tokens are cached
// in Redis in front of the store.
type GuestService struct {
	sessions SessionRepository
	tables   TableRepository
	repo     GuestRepository
	cache    GuestTokenCache
}

func NewGuestService(sessions SessionRepository, tables TableRepository, repo GuestRepository, cache GuestTokenCache) *GuestService {
	return &GuestService{
		sessions: sessions,
		tables:   tables,
		repo:     repo,
		cache:    cache,
	}
}

// AdmitHost creates the session's first guest. Called exactly once, from
// session creation; the session row already carries GuestCount == 1.
func (s *GuestService) AdmitHost(ctx context.Context, session *domain.DiningSession, name, phone string) (*domain.SessionGuest, error) {
	token, err := NewJoinToken()
	if err != nil {
		return nil, err
	}
	host := domain.NewSessionGuest(session.ID, name, phone, token, true)
	if err := s.repo.CreateGuest(ctx, host); err != nil {
		return nil, err
	}
	s.cacheToken(ctx, host)
	return host, nil
}

// AdmitGuest appends a joiner to an active session, enforcing the table
// capacity: once guestCount equals capacity the next join fails.
func (s *GuestService) AdmitGuest(ctx context.Context, sessionID uuid.UUID, name, phone string) (*domain.SessionGuest, error) {
	if name == "" {
		return nil, domain.Validationf("guest name is required")
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive() {
		return nil, domain.InvalidStatef("session", session.SessionCode, string(session.Status))
	}

	table, err := s.tables.GetTable(ctx, session.TableID)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountSessionGuests(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if count >= table.Capacity {
		return nil, domain.ErrCapacityExceeded
	}

	token, err := NewJoinToken()
	if err != nil {
		return nil, err
	}
	guest := domain.NewSessionGuest(sessionID, name, phone, token, false)
	if err := s.repo.CreateGuest(ctx, guest); err != nil {
		return nil, err
	}

	session.GuestCount = count + 1
	if err := s.sessions.UpdateSession(ctx, session); err != nil {
		// The guest row must not outlive a failed headcount update, or the
		// next join would count a guest who was never admitted.
		if delErr := s.repo.DeleteGuest(ctx, guest.ID); delErr != nil {
			log.Printf("[guest-svc] failed to remove guest %s after session update error: %v", guest.ID, delErr)
		}
		return nil, err
	}

	s.cacheToken(ctx, guest)
	return guest, nil
}

// ResolveByToken authorizes a guest-scoped action. The cache answers most
// lookups; a miss falls through to the store and refills it.
func (s *GuestService) ResolveByToken(ctx context.Context, token string) (*domain.SessionGuest, error) {
	if token == "" {
		return nil, domain.NotFoundf("guest token", "(empty)")
	}

	if s.cache != nil {
		if guestID, err := s.cache.LookupToken(ctx, token); err == nil {
			if guest, err := s.repo.GetGuest(ctx, guestID); err == nil {
				return guest, nil
			}
		}
	}

	guest, err := s.repo.GetGuestByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	s.cacheToken(ctx, guest)
	return guest, nil
}

func (s *GuestService) TouchActivity(ctx context.Context, guestID uuid.UUID) error {
	return s.repo.UpdateGuestActivity(ctx, guestID, time.Now())
}

func (s *GuestService) ListGuests(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionGuest, error) {
	return s.repo.ListSessionGuests(ctx, sessionID)
}

// Leave removes a guest from the session and drops their token. The host
// cannot leave; hosts end the session instead.
func (s *GuestService) Leave(ctx context.Context, sessionID uuid.UUID, token string) error {
	guest, err := s.repo.GetGuestByToken(ctx, token)
	if err != nil {
		return err
	}
	if guest.SessionID != sessionID {
		return domain.NotFoundf("guest", guest.ID)
	}
	if guest.IsHost {
		return domain.InvalidStatef("guest", guest.GuestName, "host")
	}

	if err := s.repo.DeleteGuest(ctx, guest.ID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.DropToken(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
			log.Printf("[guest-svc] failed to drop token from cache: %v", err)
		}
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	count, err := s.repo.CountSessionGuests(ctx, sessionID)
	if err != nil {
		return err
	}
	session.GuestCount = count
	return s.sessions.UpdateSession(ctx, session)
}

func (s *GuestService) cacheToken(ctx context.Context, guest *domain.SessionGuest) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheToken(ctx, guest.JoinToken, guest.ID); err != nil {
		log.Printf("[guest-svc] failed to cache join token: %v", err)
	}
}

var _ GuestServiceInterface = (*GuestService)(nil)
var _ GuestRegistry = (*GuestService)(nil)
