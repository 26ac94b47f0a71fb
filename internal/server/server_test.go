package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/White-Devil2839/peerflow/internal/auth"
	"github.com/White-Devil2839/peerflow/internal/service"
	"github.com/White-Devil2839/peerflow/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "peerflow-server-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	locks := service.NewGroupLocks()
	tokens := auth.NewJWTManager("test-secret", time.Hour)
	balances := service.NewBalanceService(store, logger)

	srv := New(Services{
		Auth:     service.NewAuthService(auth.NewPasswordAuthenticator(store), tokens, store, logger),
		Groups:   service.NewGroupService(store, 50000, logger),
		Expenses: service.NewExpenseService(store, locks, logger),
		Payments: service.NewPaymentService(store, locks, balances, logger),
		Balances: balances,
		Overdue:  service.NewOverdueService(store, locks, logger),
	}, tokens, logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON sends a JSON request and decodes the response body into out
// when out is non-nil.
func doJSON(t *testing.T, method, url, token string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func registerUser(t *testing.T, ts *httptest.Server, name string) (userID, token string) {
	t.Helper()
	var resp struct {
		User  struct{ ID string }
		Token string
	}
	status := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    name + "@example.com",
		"password": "strongpass1",
	}, &resp)
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d", name, status)
	}
	return resp.User.ID, resp.Token
}

func TestServerEndToEnd(t *testing.T) {
	ts := newTestServer(t)

	aliceID, aliceToken := registerUser(t, ts, "alice")
	bobID, bobToken := registerUser(t, ts, "bob")
	_, carolToken := registerUser(t, ts, "carol")

	var group struct {
		ID       string `json:"id"`
		JoinCode string `json:"joinCode"`
	}
	if status := doJSON(t, http.MethodPost, ts.URL+"/api/groups", aliceToken, map[string]any{
		"name": "Goa Trip",
	}, &group); status != http.StatusCreated {
		t.Fatalf("create group: status %d", status)
	}

	for _, token := range []string{bobToken, carolToken} {
		if status := doJSON(t, http.MethodPost, ts.URL+"/api/groups/join", token, map[string]string{
			"joinCode": group.JoinCode,
		}, nil); status != http.StatusOK {
			t.Fatalf("join group: status %d", status)
		}
	}

	var expense struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if status := doJSON(t, http.MethodPost, ts.URL+"/api/expenses", aliceToken, map[string]any{
		"groupId":     group.ID,
		"description": "Dinner",
		"totalAmount": 30000,
		"paidBy":      aliceID,
	}, &expense); status != http.StatusCreated {
		t.Fatalf("create expense: status %d", status)
	}
	if expense.Status != "pending" {
		t.Errorf("expense status = %s, want pending", expense.Status)
	}

	voteURL := fmt.Sprintf("%s/api/expenses/%s/vote", ts.URL, expense.ID)
	if status := doJSON(t, http.MethodPost, voteURL, bobToken, map[string]string{"vote": "approve"}, nil); status != http.StatusOK {
		t.Fatalf("bob vote: status %d", status)
	}
	if status := doJSON(t, http.MethodPost, voteURL, carolToken, map[string]string{"vote": "approve"}, &expense); status != http.StatusOK {
		t.Fatalf("carol vote: status %d", status)
	}
	if expense.Status != "approved" {
		t.Errorf("expense status = %s, want approved after majority", expense.Status)
	}

	var overview struct {
		Balances []struct {
			UserID string `json:"userId"`
			Net    int64  `json:"net"`
		} `json:"balances"`
		SimplifiedGraph []struct {
			From   string `json:"from"`
			To     string `json:"to"`
			Amount int64  `json:"amount"`
		} `json:"simplifiedGraph"`
	}
	balancesURL := fmt.Sprintf("%s/api/groups/%s/balances", ts.URL, group.ID)
	if status := doJSON(t, http.MethodGet, balancesURL, aliceToken, nil, &overview); status != http.StatusOK {
		t.Fatalf("balances: status %d", status)
	}
	nets := map[string]int64{}
	for _, b := range overview.Balances {
		nets[b.UserID] = b.Net
	}
	if nets[aliceID] != 20000 {
		t.Errorf("alice net = %d, want 20000", nets[aliceID])
	}
	if len(overview.SimplifiedGraph) != 2 {
		t.Errorf("got %d settlements, want 2", len(overview.SimplifiedGraph))
	}

	paymentsURL := fmt.Sprintf("%s/api/groups/%s/payments", ts.URL, group.ID)
	if status := doJSON(t, http.MethodPost, paymentsURL, bobToken, map[string]any{
		"fromUserId": bobID,
		"toUserId":   aliceID,
		"amount":     10000,
	}, nil); status != http.StatusCreated {
		t.Fatalf("record payment: status %d", status)
	}

	// Overpaying the now-settled debt maps to a 400.
	if status := doJSON(t, http.MethodPost, paymentsURL, bobToken, map[string]any{
		"fromUserId": bobID,
		"toUserId":   aliceID,
		"amount":     1000,
	}, nil); status != http.StatusBadRequest {
		t.Errorf("settled payer payment: status %d, want 400", status)
	}
}

func TestServerErrorMapping(t *testing.T) {
	ts := newTestServer(t)
	_, token := registerUser(t, ts, "alice")

	t.Run("missing token is 401", func(t *testing.T) {
		if status := doJSON(t, http.MethodGet, ts.URL+"/api/groups", "", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", status)
		}
	})

	t.Run("unknown group is 404", func(t *testing.T) {
		if status := doJSON(t, http.MethodGet, ts.URL+"/api/groups/nope/balances", token, nil, nil); status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		status := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
			"name":     "alice2",
			"email":    "alice@example.com",
			"password": "strongpass1",
		}, nil)
		if status != http.StatusConflict {
			t.Errorf("status = %d, want 409", status)
		}
	})

	t.Run("wrong group password is 403", func(t *testing.T) {
		var group struct {
			JoinCode string `json:"joinCode"`
		}
		if status := doJSON(t, http.MethodPost, ts.URL+"/api/groups", token, map[string]any{
			"name":     "Vault",
			"password": "sesame88",
		}, &group); status != http.StatusCreated {
			t.Fatalf("create group: status %d", status)
		}

		_, bobToken := registerUser(t, ts, "bob")
		status := doJSON(t, http.MethodPost, ts.URL+"/api/groups/join", bobToken, map[string]string{
			"joinCode": group.JoinCode,
			"password": "wrong",
		}, nil)
		if status != http.StatusForbidden {
			t.Errorf("status = %d, want 403", status)
		}
	})

	t.Run("health check is open", func(t *testing.T) {
		if status := doJSON(t, http.MethodGet, ts.URL+"/api/health", "", nil, nil); status != http.StatusOK {
			t.Errorf("status = %d, want 200", status)
		}
	})
}
