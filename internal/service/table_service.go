package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

// TableService is the table registry: it owns occupancy state and the
// per-table QR codes guests scan.
type TableService struct {
	repo      TableRepository
	qrEncoder QRGenerator
}

func NewTableService(repo TableRepository, qr QRGenerator) *TableService {
	return &TableService{repo: repo, qrEncoder: qr}
}

func (s *TableService) Register(ctx context.Context, table *domain.Table) error {
	if table.TableNumber == "" {
		return domain.Validationf("table number is required")
	}
	if table.Capacity < 1 {
		return domain.Validationf("capacity %d must be at least 1", table.Capacity)
	}

	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	qrCode, err := NewTableQRCode()
	if err != nil {
		return err
	}
	table.QRCode = qrCode
	table.Status = domain.TableAvailable

	if err := s.repo.CreateTable(ctx, table); err != nil {
		return err
	}

	if s.qrEncoder != nil {
		if png, err := s.qrEncoder.Generate(table.QRCode); err == nil {
			_ = s.repo.SaveTableQRImage(ctx, table.ID, png)
		}
	}
	return nil
}

func (s *TableService) Get(ctx context.Context, tableID uuid.UUID) (*domain.Table, error) {
	return s.repo.GetTable(ctx, tableID)
}

func (s *TableService) GetByQRCode(ctx context.Context, qrCode string) (*domain.Table, error) {
	return s.repo.GetTableByQRCode(ctx, qrCode)
}

func (s *TableService) List(ctx context.Context, restaurantID uuid.UUID) ([]domain.Table, error) {
	return s.repo.ListTables(ctx, restaurantID)
}

// Occupy claims the table for a session. Status and session reference change
// in one conditional update so concurrent claims cannot double-book: the
// loser of the race sees Conflict.
func (s *TableService) Occupy(ctx context.Context, tableID, sessionID uuid.UUID) error {
	table, err := s.repo.GetTable(ctx, tableID)
	if err != nil {
		return err
	}
	if !table.IsAvailable() {
		return domain.Conflictf("table", table.TableNumber, "not available")
	}
	return s.repo.OccupyTable(ctx, tableID, sessionID, table.Version)
}

func (s *TableService) Release(ctx context.Context, tableID uuid.UUID) error {
	return s.repo.ReleaseTable(ctx, tableID)
}

func (s *TableService) MarkNeedsCleaning(ctx context.Context, tableID uuid.UUID) error {
	return s.repo.SetTableStatus(ctx, tableID, domain.TableNeedsCleaning)
}

// QRImage returns the table's QR PNG, regenerating it if the stored copy is
// missing.
func (s *TableService) QRImage(ctx context.Context, tableID uuid.UUID) ([]byte, error) {
	png, err := s.repo.GetTableQRImage(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if len(png) == 0 && s.qrEncoder != nil {
		table, err := s.repo.GetTable(ctx, tableID)
		if err != nil {
			return nil, err
		}
		regenerated, err := s.qrEncoder.Generate(table.QRCode)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SaveTableQRImage(ctx, tableID, regenerated); err != nil {
			log.Printf("[table-svc] failed to cache regenerated QR for table %s: %v", tableID, err)
		}
		return regenerated, nil
	}
	return png, nil
}

var _ TableServiceInterface = (*TableService)(nil)
var _ TableRegistry = (*TableService)(nil)
