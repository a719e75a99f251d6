package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type recordRequest struct {
	Title       string `json:"title" binding:"required"`
	Amount      *int64 `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date"` // optional RFC3339, defaults to now
}

func (r recordRequest) occurredAt() time.Time {
	if r.Date != "" {
		if t, err := time.Parse(time.RFC3339, r.Date); err == nil {
			return t
		}
	}
	return time.Time{} // store fills in the insertion time
}

func (s *server) addIncomeHandler(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	income := &models.Income{
		UserID:      currentUser(c).ID,
		Title:       req.Title,
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.occurredAt(),
	}
	if err := s.records.AddIncome(c.Request.Context(), income); err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, "error adding income", err)
		return
	}
	c.JSON(http.StatusCreated, income)
}

func (s *server) listIncomesHandler(c *gin.Context) {
	incomes, err := s.records.ListIncomes(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		internalError(c, "error fetching income records", err)
		return
	}
	if incomes == nil {
		incomes = []models.Income{}
	}
	c.JSON(http.StatusOK, incomes)
}

func (s *server) deleteIncomeHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "income record not found"})
		return
	}
	if err := s.records.DeleteIncome(c.Request.Context(), currentUser(c).ID, uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "income record not found"})
			return
		}
		internalError(c, "error deleting income record", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "income record deleted successfully"})
}

func (s *server) addExpenseHandler(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expense := &models.Expense{
		UserID:      currentUser(c).ID,
		Title:       req.Title,
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.occurredAt(),
	}
	if err := s.records.AddExpense(c.Request.Context(), expense); err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, "error adding expense", err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (s *server) listExpensesHandler(c *gin.Context) {
	expenses, err := s.records.ListExpenses(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		internalError(c, "error fetching expense records", err)
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	c.JSON(http.StatusOK, expenses)
}

func (s *server) deleteExpenseHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense record not found"})
		return
	}
	if err := s.records.DeleteExpense(c.Request.Context(), currentUser(c).ID, uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "expense record not found"})
			return
		}
		internalError(c, "error deleting expense record", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense record deleted successfully"})
}

// exportRow is one flat line of a spreadsheet export.
type exportRow struct {
	Title       string
	Amount      int64
	Category    string
	Description string
	Date        time.Time
}

func (s *server) exportIncomesHandler(c *gin.Context) {
	incomes, err := s.records.ListIncomes(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		internalError(c, "error exporting income data", err)
		return
	}
	rows := make([]exportRow, len(incomes))
	for i, r := range incomes {
		rows[i] = exportRow{r.Title, r.Amount, r.Category, r.Description, r.Date}
	}
	writeSpreadsheet(c, "Income Data", "income_data.xlsx", rows)
}

func (s *server) exportExpensesHandler(c *gin.Context) {
	expenses, err := s.records.ListExpenses(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		internalError(c, "error exporting expense data", err)
		return
	}
	rows := make([]exportRow, len(expenses))
	for i, r := range expenses {
		rows[i] = exportRow{r.Title, r.Amount, r.Category, r.Description, r.Date}
	}
	writeSpreadsheet(c, "Expense Data", "expense_data.xlsx", rows)
}

func writeSpreadsheet(c *gin.Context, sheet, filename string, rows []exportRow) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		internalError(c, "error building spreadsheet", err)
		return
	}
	headers := []string{"Title", "Amount", "Category", "Description", "Date"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, r := range rows {
		values := []interface{}{r.Title, float64(r.Amount) / 100, r.Category, r.Description, r.Date.Format("2006-01-02")}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := f.Write(c.Writer); err != nil {
		internalError(c, "error writing spreadsheet", err)
	}
}
