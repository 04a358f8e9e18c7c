package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
	"farmbook/internal/pagination"
)

// expenseService handles season expense bookkeeping. Expense mutations are
// refused once the season has reached a terminal status, and every expense
// date must fall within the season bounds.
type expenseService struct {
	db        *gorm.DB
	ownership OwnershipResolver
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, ownership OwnershipResolver) ExpenseServicer {
	return &expenseService{db: db, ownership: ownership}
}

// CreateExpense records a cost item against an owned, open season.
func (s *expenseService) CreateExpense(ownerID, seasonID uint, itemName string, unitPrice, quantity float64, expenseDate time.Time) (*models.Expense, error) {
	season, err := s.ownership.ResolveOwnedSeason(ownerID, seasonID)
	if err != nil {
		return nil, err
	}
	if err := validateExpenseMutation(season, itemName, unitPrice, quantity, expenseDate); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      ownerID,
		SeasonID:    season.ID,
		ItemName:    strings.TrimSpace(itemName),
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		TotalCost:   unitPrice * quantity,
		ExpenseDate: expenseDate,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetExpense returns one expense when its season chain is owned by ownerID.
func (s *expenseService) GetExpense(ownerID, expenseID uint) (*models.Expense, error) {
	return s.findOwnedExpense(ownerID, expenseID)
}

// ListSeasonExpenses returns the expenses of one owned season, newest first,
// with optional date, amount, and item-name filters.
func (s *expenseService) ListSeasonExpenses(ownerID, seasonID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	season, err := s.ownership.ResolveOwnedSeason(ownerID, seasonID)
	if err != nil {
		return nil, err
	}

	page.Defaults()
	base := s.db.Model(&models.Expense{}).Where("season_id = ?", season.ID)
	if filter.From != nil {
		base = base.Where("expense_date >= ?", *filter.From)
	}
	if filter.To != nil {
		base = base.Where("expense_date <= ?", *filter.To)
	}
	if filter.MinAmount != nil {
		base = base.Where("total_cost >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		base = base.Where("total_cost <= ?", *filter.MaxAmount)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		base = base.Where("LOWER(item_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	err = base.Order("expense_date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateExpense rewrites an expense, re-deriving the total cost. The season
// must still accept changes and the new date must stay within its bounds.
func (s *expenseService) UpdateExpense(ownerID, expenseID uint, itemName string, unitPrice, quantity float64, expenseDate time.Time) (*models.Expense, error) {
	expense, err := s.findOwnedExpense(ownerID, expenseID)
	if err != nil {
		return nil, err
	}
	season, err := s.ownership.ResolveOwnedSeason(ownerID, expense.SeasonID)
	if err != nil {
		return nil, err
	}
	if err := validateExpenseMutation(season, itemName, unitPrice, quantity, expenseDate); err != nil {
		return nil, err
	}

	expense.ItemName = strings.TrimSpace(itemName)
	expense.UnitPrice = unitPrice
	expense.Quantity = quantity
	expense.TotalCost = unitPrice * quantity
	expense.ExpenseDate = expenseDate
	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense removes an expense from an owned, still-open season.
func (s *expenseService) DeleteExpense(ownerID, expenseID uint) error {
	expense, err := s.findOwnedExpense(ownerID, expenseID)
	if err != nil {
		return err
	}
	season, err := s.ownership.ResolveOwnedSeason(ownerID, expense.SeasonID)
	if err != nil {
		return err
	}
	if season.Status.Terminal() {
		return apperrors.ErrExpensePeriodLocked
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *expenseService) findOwnedExpense(ownerID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.Model(&models.Expense{}).
		Joins("JOIN seasons ON seasons.id = expenses.season_id AND seasons.deleted_at IS NULL").
		Joins("JOIN plots ON plots.id = seasons.plot_id AND plots.deleted_at IS NULL").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("expenses.id = ? AND farms.owner_id = ?", expenseID, ownerID).
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// validateExpenseMutation enforces the expense business rules against the
// target season.
func validateExpenseMutation(season *models.Season, itemName string, unitPrice, quantity float64, expenseDate time.Time) error {
	if season.Status.Terminal() {
		return apperrors.ErrExpensePeriodLocked
	}
	if strings.TrimSpace(itemName) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Item name is required")
	}
	if unitPrice*quantity <= 0 {
		return apperrors.ErrExpenseAmountInvalid
	}
	return validateDateWithinSeason(season, expenseDate)
}

// validateDateWithinSeason checks start <= date <= end, where the upper bound
// falls back to the planned harvest date when no end date is set. A season
// with neither bound only enforces the start date.
func validateDateWithinSeason(season *models.Season, date time.Time) error {
	if date.Before(startOfDay(season.StartDate)) {
		return apperrors.ErrInvalidSeasonDates
	}
	upper := season.EndDate
	if upper == nil {
		upper = season.PlannedHarvestDate
	}
	if upper != nil && date.After(endOfDay(*upper)) {
		return apperrors.ErrInvalidSeasonDates
	}
	return nil
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
