package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"fintrack/models"
	"fintrack/pkg/token"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// server bundles the stores and the token issuer behind the HTTP surface.
// Everything a handler needs arrives through here, nothing through globals.
type server struct {
	users     UserStore
	records   RecordStore
	tokens    *token.Issuer
	uploadDir string
}

func newServer(users UserStore, records RecordStore, tokens *token.Issuer, uploadDir string) *server {
	return &server{users: users, records: records, tokens: tokens, uploadDir: uploadDir}
}

func (s *server) routes(r *gin.Engine) {
	api := r.Group("/api")
	api.POST("/auth/register", s.registerHandler)
	api.POST("/auth/login", s.loginHandler)

	auth := api.Group("")
	auth.Use(s.authRequired())
	auth.GET("/auth/user", s.userHandler)
	auth.POST("/auth/profile-image", s.profileImageHandler)

	auth.POST("/income", s.addIncomeHandler)
	auth.GET("/income", s.listIncomesHandler)
	auth.GET("/income/export", s.exportIncomesHandler)
	auth.DELETE("/income/:id", s.deleteIncomeHandler)

	auth.POST("/expenses", s.addExpenseHandler)
	auth.GET("/expenses", s.listExpensesHandler)
	auth.GET("/expenses/export", s.exportExpensesHandler)
	auth.DELETE("/expenses/:id", s.deleteExpenseHandler)

	auth.GET("/dashboard/summary", s.summaryHandler)
	auth.GET("/dashboard/recent-transactions", s.recentTransactionsHandler)
	auth.GET("/dashboard/income-categories", s.incomeCategoriesHandler)
	auth.GET("/dashboard/expense-categories", s.expenseCategoriesHandler)
	auth.GET("/dashboard/last-30-days-expenses", s.last30DaysExpensesHandler)
}

// authRequired resolves the Bearer token into a full User before any
// protected handler runs. The user is re-fetched by id on every request so a
// token referencing a since-removed identity is rejected.
func (s *server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}
		userID, err := s.tokens.Validate(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			slog.Debug("token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		user, err := s.users.ByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// currentUser returns the user resolved by authRequired.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userContextKey).(*models.User)
}

// internalError logs the cause and reports a generic failure to the caller.
func internalError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func isValidationError(err error) bool {
	return errors.Is(err, models.ErrEmptyTitle) ||
		errors.Is(err, models.ErrNegativeAmount) ||
		errors.Is(err, models.ErrUnknownCategory)
}
