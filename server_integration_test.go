package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"fintrack/pkg/token"

	"github.com/gin-gonic/gin"
)

// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them
// against a real Postgres.
func setupIntegrationServer(t *testing.T) *gin.Engine {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	db, err := openDB(os.Getenv("DB_DSN"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	autoMigrate(db)
	store := newGormStore(db)
	issuer := token.NewIssuer([]byte("integration-secret"), token.DefaultTTL)
	srv := newServer(store, store, issuer, t.TempDir())
	r := gin.Default()
	srv.routes(r)
	return r
}

func TestFullFlow(t *testing.T) {
	r := setupIntegrationServer(t)
	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())

	// 1. Register
	regBody, _ := json.Marshal(map[string]string{"name": "Test User", "email": email, "password": "pass-123"})
	resp := performRequest(r, http.MethodPost, "/api/auth/register", bytes.NewBuffer(regBody), "", "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 2. Login
	loginBody, _ := json.Marshal(map[string]string{"email": email, "password": "pass-123"})
	resp = performRequest(r, http.MethodPost, "/api/auth/login", bytes.NewBuffer(loginBody), "", "application/json")
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var loginResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	tok, _ := loginResp["token"].(string)
	if tok == "" {
		t.Fatalf("empty token in login response: %+v", loginResp)
	}

	// 3. Add an income and an expense
	incBody, _ := json.Marshal(map[string]any{"title": "salary", "amount": 500000, "category": "Salary"})
	resp = performRequest(r, http.MethodPost, "/api/income", bytes.NewBuffer(incBody), tok, "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("add income failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	expBody, _ := json.Marshal(map[string]any{"title": "rent", "amount": 300000, "category": "Bills"})
	resp = performRequest(r, http.MethodPost, "/api/expenses", bytes.NewBuffer(expBody), tok, "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("add expense failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 4. List records
	resp = performRequest(r, http.MethodGet, "/api/income", nil, tok, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list income failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/api/expenses", nil, tok, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list expenses failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 5. Dashboard views
	for _, path := range []string{
		"/api/dashboard/summary",
		"/api/dashboard/recent-transactions",
		"/api/dashboard/income-categories",
		"/api/dashboard/expense-categories",
		"/api/dashboard/last-30-days-expenses",
	} {
		resp = performRequest(r, http.MethodGet, path, nil, tok, "")
		if resp.Code != http.StatusOK {
			t.Fatalf("%s failed status=%d body=%s", path, resp.Code, resp.Body.String())
		}
	}

	// 6. Export
	resp = performRequest(r, http.MethodGet, "/api/expenses/export", nil, tok, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("export failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 7. Unauthorized access to a protected endpoint should be 401
	unauth := performRequest(r, http.MethodGet, "/api/income", nil, "", "")
	if unauth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthorized list income, got %d", unauth.Code)
	}
}
