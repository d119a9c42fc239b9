package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gastos/internal/auth"
	"gastos/internal/blob/memory"
	"gastos/internal/ledger"
	"gastos/internal/services"
)

const testPassword = "hunter2"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := ledger.NewStore(memory.New(), nil)
	svc := services.NewLedgerService(store, nil, "Gastos.xlsx")
	gate := auth.NewGate(testPassword, time.Hour)
	srv := NewServer(":0", svc, gate, nil)
	ts := httptest.NewServer(srv.Server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func login(t *testing.T, ts *httptest.Server) *http.Cookie {
	t.Helper()
	body := fmt.Sprintf(`{"password":%q}`, testPassword)
	resp, err := http.Post(ts.URL+"/api/login", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("login response carries no session cookie")
	return nil
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, cookie *http.Cookie, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/login", "application/json", bytes.NewBufferString(`{"password":"wrong"}`))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	if len(resp.Cookies()) != 0 {
		t.Fatal("failed login must not set a session cookie")
	}
}

func TestSessionGate(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/overview", "/api/pending", "/api/history"} {
		resp := doJSON(t, ts, http.MethodGet, path, nil, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s without session: status = %d, want %d", path, resp.StatusCode, http.StatusUnauthorized)
		}
	}

	resp := doJSON(t, ts, http.MethodGet, "/healthz", nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz must not require a session, got %d", resp.StatusCode)
	}
}

func TestCreateMovementAndOverview(t *testing.T) {
	ts := newTestServer(t)
	cookie := login(t, ts)

	today := time.Now().UTC().Format("2006-01-02")
	resp := doJSON(t, ts, http.MethodPost, "/api/movements", cookie, movementPayload{
		Date: today, Concept: "Sueldo", Detail: "agosto", Amount: "1000", Status: "Confirmado",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	var created movementJSON
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created movement: %v", err)
	}
	resp.Body.Close()
	if created.ID == 0 {
		t.Fatal("created movement has no row id")
	}
	if created.Category != "Ingresos" {
		t.Fatalf("Category = %q, want %q (resolved from the seeded concept table)", created.Category, "Ingresos")
	}

	resp = doJSON(t, ts, http.MethodPost, "/api/movements", cookie, movementPayload{
		Date: today, Concept: "Supermercado", Detail: "", Amount: "-300", Status: "Confirmado",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	resp = doJSON(t, ts, http.MethodPost, "/api/movements", cookie, movementPayload{
		Date: today, Concept: "Supermercado", Detail: "", Amount: "-150", Status: "Pendiente",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	resp = doJSON(t, ts, http.MethodGet, "/api/overview", cookie, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("overview status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var ov overviewJSON
	if err := json.NewDecoder(resp.Body).Decode(&ov); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	resp.Body.Close()

	if ov.CashBalance != "700.00" {
		t.Errorf("CashBalance = %q, want %q", ov.CashBalance, "700.00")
	}
	if ov.PendingTotal != "150.00" {
		t.Errorf("PendingTotal = %q, want %q", ov.PendingTotal, "150.00")
	}
	if ov.ProjectedBalance != "550.00" {
		t.Errorf("ProjectedBalance = %q, want %q", ov.ProjectedBalance, "550.00")
	}
	if len(ov.Concepts) == 0 {
		t.Error("overview carries no concepts for the entry form")
	}
}

func TestCreateMovementValidation(t *testing.T) {
	ts := newTestServer(t)
	cookie := login(t, ts)
	today := time.Now().UTC().Format("2006-01-02")

	cases := []struct {
		name    string
		payload movementPayload
	}{
		{"bad date", movementPayload{Date: "30/08/2026", Concept: "Supermercado", Amount: "-10", Status: "Confirmado"}},
		{"bad amount", movementPayload{Date: today, Concept: "Supermercado", Amount: "abc", Status: "Confirmado"}},
		{"bad status", movementPayload{Date: today, Concept: "Supermercado", Amount: "-10", Status: "Hecho"}},
		{"empty concept", movementPayload{Date: today, Concept: "  ", Amount: "-10", Status: "Confirmado"}},
		{"sentinel without detail", movementPayload{Date: today, Concept: "Varios", Detail: "", Amount: "-10", Status: "Confirmado"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, ts, http.MethodPost, "/api/movements", cookie, tc.payload)
			resp.Body.Close()
			if resp.StatusCode != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
			}
		})
	}
}

func TestUpdatePendingMerge(t *testing.T) {
	ts := newTestServer(t)
	cookie := login(t, ts)
	today := time.Now().UTC().Format("2006-01-02")

	for _, amount := range []string{"-100", "-200"} {
		resp := doJSON(t, ts, http.MethodPost, "/api/movements", cookie, movementPayload{
			Date: today, Concept: "Supermercado", Amount: amount, Status: "Pendiente",
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}
	}

	resp := doJSON(t, ts, http.MethodGet, "/api/pending", cookie, nil)
	var pending []movementJSON
	if err := json.NewDecoder(resp.Body).Decode(&pending); err != nil {
		t.Fatalf("decode pending: %v", err)
	}
	resp.Body.Close()
	if len(pending) != 2 {
		t.Fatalf("len(pending) = %d, want 2", len(pending))
	}

	// Confirm the first row, leave the second untouched.
	edit := editedMovementPayload{ID: pending[0].ID}
	edit.Date = pending[0].Date
	edit.Concept = pending[0].Concept
	edit.Detail = pending[0].Detail
	edit.Amount = pending[0].Amount
	edit.Status = "Confirmado"
	resp = doJSON(t, ts, http.MethodPost, "/api/pending", cookie, []editedMovementPayload{edit})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	resp = doJSON(t, ts, http.MethodGet, "/api/pending", cookie, nil)
	var after []movementJSON
	if err := json.NewDecoder(resp.Body).Decode(&after); err != nil {
		t.Fatalf("decode pending: %v", err)
	}
	resp.Body.Close()
	if len(after) != 1 {
		t.Fatalf("len(pending) after confirm = %d, want 1", len(after))
	}
	if after[0].ID != pending[1].ID {
		t.Fatalf("remaining pending id = %d, want %d", after[0].ID, pending[1].ID)
	}

	resp = doJSON(t, ts, http.MethodGet, "/api/history", cookie, nil)
	var history []movementJSON
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	resp.Body.Close()
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	for _, m := range history {
		if m.ID == pending[0].ID && m.Status != "Confirmado" {
			t.Errorf("edited row status = %q, want Confirmado", m.Status)
		}
		if m.Category != "Alimentos" {
			t.Errorf("Category = %q, want the snapshot %q", m.Category, "Alimentos")
		}
	}
}
