package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"fintrack/models"

	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("record not found")
)

// UserStore holds user identities. Emails are unique across all users.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByID(ctx context.Context, id uint) (*models.User, error)
	UpdateProfileImage(ctx context.Context, id uint, ref string) (*models.User, error)
}

// RecordStore holds per-user income and expense records. Lists are ordered
// by occurrence date descending; deletes are owner-scoped so a cross-owner
// attempt reports ErrNotFound.
type RecordStore interface {
	AddIncome(ctx context.Context, income *models.Income) error
	ListIncomes(ctx context.Context, userID uint) ([]models.Income, error)
	DeleteIncome(ctx context.Context, userID, id uint) error
	AddExpense(ctx context.Context, expense *models.Expense) error
	ListExpenses(ctx context.Context, userID uint) ([]models.Expense, error)
	DeleteExpense(ctx context.Context, userID, id uint) error
}

type gormStore struct {
	db *gorm.DB
}

func newGormStore(db *gorm.DB) *gormStore {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, user *models.User) error {
	// pre-check existing (optimistic)
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrDuplicateEmail
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) { // race after the initial check
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *gormStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) UpdateProfileImage(ctx context.Context, id uint, ref string) (*models.User, error) {
	user, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.ProfileImage = ref
	if err := s.db.WithContext(ctx).Model(user).Update("profile_image", ref).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *gormStore) AddIncome(ctx context.Context, income *models.Income) error {
	if err := income.Validate(); err != nil {
		return err
	}
	if income.Date.IsZero() {
		income.Date = time.Now()
	}
	return s.db.WithContext(ctx).Create(income).Error
}

func (s *gormStore) ListIncomes(ctx context.Context, userID uint) ([]models.Income, error) {
	var items []models.Income
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc").Find(&items).Error
	return items, err
}

func (s *gormStore) DeleteIncome(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Income{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) AddExpense(ctx context.Context, expense *models.Expense) error {
	if err := expense.Validate(); err != nil {
		return err
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	return s.db.WithContext(ctx).Create(expense).Error
}

func (s *gormStore) ListExpenses(ctx context.Context, userID uint) ([]models.Expense, error) {
	var items []models.Expense
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc").Find(&items).Error
	return items, err
}

func (s *gormStore) DeleteExpense(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
