package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	infraRepo "github.com/smartbiz/smartbiz-api/internal/infrastructure/repository"
	"github.com/smartbiz/smartbiz-api/pkg/apperror"
	"github.com/smartbiz/smartbiz-api/pkg/pagination"
	"github.com/smartbiz/smartbiz-api/pkg/quantity"
)

// ExpenseService handles expense bookkeeping
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// ExpenseInput represents create/update expense input
type ExpenseInput struct {
	Name     string
	Category *string
	Amount   decimal.Decimal
	Date     time.Time
	Notes    *string
}

func (in *ExpenseInput) validate() error {
	var fieldErrors []apperror.FieldError
	if in.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if !in.Amount.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "amount must be positive"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateExpense creates a new expense
func (s *ExpenseService) CreateExpense(ctx context.Context, input *ExpenseInput) (*entity.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	businessID, ok := infraRepo.GetBusinessID(ctx)
	if !ok {
		return nil, apperror.ErrForbidden
	}

	expense := &entity.Expense{
		BusinessID: businessID,
		Name:       input.Name,
		Category:   input.Category,
		Amount:     quantity.QuantizeMoney(input.Amount),
		Date:       input.Date,
		Notes:      input.Notes,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, params repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// UpdateExpense updates an expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, input *ExpenseInput) (*entity.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	expense, err := s.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	expense.Name = input.Name
	expense.Category = input.Category
	expense.Amount = quantity.QuantizeMoney(input.Amount)
	expense.Date = input.Date
	expense.Notes = input.Notes

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// DeleteExpense soft-deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetExpense(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}
