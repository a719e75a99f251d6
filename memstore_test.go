package main

import (
	"context"
	"sort"
	"sync"
	"time"

	"fintrack/models"
)

// memStore is an in-memory UserStore + RecordStore used to exercise the
// handlers without a database. It mirrors the gorm store's semantics:
// unique emails, owner-scoped lists ordered by date descending, owner-scoped
// deletes reporting ErrNotFound.
type memStore struct {
	mu       sync.Mutex
	users    []models.User
	incomes  []models.Income
	expenses []models.Expense
	nextID   uint
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	user.ID = m.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users = append(m.users, *user)
	return nil
}

func (m *memStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) ByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) UpdateProfileImage(_ context.Context, id uint, ref string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].ProfileImage = ref
			cp := m.users[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) removeUser(id uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return
		}
	}
}

func (m *memStore) AddIncome(_ context.Context, income *models.Income) error {
	if err := income.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if income.Date.IsZero() {
		income.Date = time.Now()
	}
	income.ID = m.id()
	m.incomes = append(m.incomes, *income)
	return nil
}

func (m *memStore) ListIncomes(_ context.Context, userID uint) ([]models.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Income
	for _, r := range m.incomes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memStore) DeleteIncome(_ context.Context, userID, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.incomes {
		if r.ID == id && r.UserID == userID {
			m.incomes = append(m.incomes[:i], m.incomes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) AddExpense(_ context.Context, expense *models.Expense) error {
	if err := expense.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	expense.ID = m.id()
	m.expenses = append(m.expenses, *expense)
	return nil
}

func (m *memStore) ListExpenses(_ context.Context, userID uint) ([]models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Expense
	for _, r := range m.expenses {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memStore) DeleteExpense(_ context.Context, userID, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.expenses {
		if r.ID == id && r.UserID == userID {
			m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
