package main

import (
	"net/http"
	"time"

	"fintrack/models"
	"fintrack/pkg/ledger"

	"github.com/gin-gonic/gin"
)

const (
	recentLimit   = 10
	expenseWindow = 30 // days
)

func incomeEntries(incomes []models.Income) []ledger.Entry {
	out := make([]ledger.Entry, len(incomes))
	for i, r := range incomes {
		out[i] = ledger.Entry{
			ID:          r.ID,
			Kind:        ledger.KindIncome,
			Title:       r.Title,
			Amount:      r.Amount,
			Category:    r.Category,
			Description: r.Description,
			Date:        r.Date,
		}
	}
	return out
}

func expenseEntries(expenses []models.Expense) []ledger.Entry {
	out := make([]ledger.Entry, len(expenses))
	for i, r := range expenses {
		out[i] = ledger.Entry{
			ID:          r.ID,
			Kind:        ledger.KindExpense,
			Title:       r.Title,
			Amount:      r.Amount,
			Category:    r.Category,
			Description: r.Description,
			Date:        r.Date,
		}
	}
	return out
}

// fetchBoth loads the caller's records of both kinds. Each fetch observes a
// consistent snapshot; the store provides per-operation isolation.
func (s *server) fetchBoth(c *gin.Context) ([]ledger.Entry, []ledger.Entry, bool) {
	userID := currentUser(c).ID
	incomes, err := s.records.ListIncomes(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "error fetching dashboard data", err)
		return nil, nil, false
	}
	expenses, err := s.records.ListExpenses(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "error fetching dashboard data", err)
		return nil, nil, false
	}
	return incomeEntries(incomes), expenseEntries(expenses), true
}

func (s *server) summaryHandler(c *gin.Context) {
	incomes, expenses, ok := s.fetchBoth(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ledger.Summarize(incomes, expenses))
}

func (s *server) recentTransactionsHandler(c *gin.Context) {
	incomes, expenses, ok := s.fetchBoth(c)
	if !ok {
		return
	}
	recent := ledger.Recent(incomes, expenses, recentLimit)
	if recent == nil {
		recent = []ledger.Entry{}
	}
	c.JSON(http.StatusOK, recent)
}

func (s *server) incomeCategoriesHandler(c *gin.Context) {
	incomes, err := s.records.ListIncomes(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		internalError(c, "error fetching income categories data", err)
		return
	}
	rollup := ledger.CategoryRollup(incomeEntries(incomes))
	if rollup == nil {
		rollup = []ledger.CategoryAmount{}
	}
	c.JSON(http.StatusOK, rollup)
}

func (s *server) expenseCategoriesHandler(c *gin.Context) {
	expenses, err := s.records.ListExpenses(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		internalError(c, "error fetching expense categories data", err)
		return
	}
	rollup := ledger.CategoryRollup(expenseEntries(expenses))
	if rollup == nil {
		rollup = []ledger.CategoryAmount{}
	}
	c.JSON(http.StatusOK, rollup)
}

func (s *server) last30DaysExpensesHandler(c *gin.Context) {
	expenses, err := s.records.ListExpenses(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		internalError(c, "error fetching last 30 days expenses", err)
		return
	}
	daily := ledger.DailyExpenses(expenseEntries(expenses), expenseWindow, time.Now())
	if daily == nil {
		daily = []ledger.DailyAmount{}
	}
	c.JSON(http.StatusOK, daily)
}
