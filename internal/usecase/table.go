package usecase

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

// TableUseCase manages the dining room floor plan.
type TableUseCase struct {
	tables repository.TableRepository
	newQR  func() string
}

// NewTableUseCase constructs TableUseCase.
func NewTableUseCase(tables repository.TableRepository) *TableUseCase {
	return &TableUseCase{tables: tables, newQR: uuid.NewString}
}

func validateTable(t *model.Table) error {
	if t.Number <= 0 {
		return domainErrors.RuleViolation("table number must be positive")
	}
	if t.Capacity <= 0 {
		return domainErrors.RuleViolation("capacity must be positive")
	}
	return nil
}

// CreateTable registers a free table with a fresh QR code.
func (u *TableUseCase) CreateTable(ctx context.Context, number, capacity int) (*model.Table, error) {
	table := &model.Table{Number: number, Capacity: capacity, Status: model.TableStatusFree, QRCode: u.newQR()}
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return u.tables.Create(ctx, table)
}

// UpdateTable replaces number, capacity and status of a table.
func (u *TableUseCase) UpdateTable(ctx context.Context, id int64, number, capacity int, status model.TableStatus) (*model.Table, error) {
	table, err := u.tables.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	table.Number, table.Capacity = number, capacity
	if status != "" {
		table.Status = status
	}
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if err := u.tables.Update(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// Occupy marks a table as seated.
func (u *TableUseCase) Occupy(ctx context.Context, id int64) (*model.Table, error) {
	return u.setStatus(ctx, id, model.TableStatusOccupied)
}

// Free marks a table as available.
func (u *TableUseCase) Free(ctx context.Context, id int64) (*model.Table, error) {
	return u.setStatus(ctx, id, model.TableStatusFree)
}

func (u *TableUseCase) setStatus(ctx context.Context, id int64, status model.TableStatus) (*model.Table, error) {
	table, err := u.tables.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	table.Status = status
	if err := u.tables.Update(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (u *TableUseCase) GetTable(ctx context.Context, id int64) (*model.Table, error) {
	return u.tables.GetByID(ctx, id)
}

func (u *TableUseCase) GetByNumber(ctx context.Context, number int) (*model.Table, error) {
	return u.tables.GetByNumber(ctx, number)
}

func (u *TableUseCase) GetByQRCode(ctx context.Context, code string) (*model.Table, error) {
	return u.tables.GetByQRCode(ctx, code)
}

func (u *TableUseCase) ListTables(ctx context.Context) ([]model.Table, error) {
	return u.tables.List(ctx)
}

func (u *TableUseCase) DeleteTable(ctx context.Context, id int64) error {
	return u.tables.Delete(ctx, id)
}
