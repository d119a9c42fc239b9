package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gastos/internal/auth"
	"gastos/internal/core"
	"gastos/internal/ledger"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.start).String(),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.gate.Login(req.Password)
	if errors.Is(err, auth.ErrBadPassword) {
		writeError(w, http.StatusUnauthorized, "wrong password")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.gate.Logout(sessionToken(r))
	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.svc.Overview(r.Context(), core.Today())
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	concepts := make([]conceptJSON, 0, len(ov.Concepts))
	for _, c := range ov.Concepts {
		concepts = append(concepts, conceptJSON{Name: c.Name, Category: c.Category, Kind: c.Kind})
	}
	writeJSON(w, http.StatusOK, overviewJSON{
		Year:             ov.KPIs.Year,
		Month:            ov.KPIs.Month,
		CashBalance:      ov.KPIs.CashBalance.String(),
		PendingTotal:     ov.KPIs.PendingTotal.String(),
		ProjectedBalance: ov.KPIs.ProjectedBalance.String(),
		Concepts:         concepts,
	})
}

func (s *Server) handleCreateMovement(w http.ResponseWriter, r *http.Request) {
	var req movementPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := req.toTransaction()
	if err != nil {
		writeValidationOr500(w, err)
		return
	}

	created, err := s.svc.CreateTransaction(r.Context(), tx)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMovementJSON(created))
}

func (s *Server) handlePending(w http.ResponseWriter, r *http.Request) {
	pending, err := s.svc.PendingTransactions(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMovementList(pending))
}

func (s *Server) handleUpdatePending(w http.ResponseWriter, r *http.Request) {
	var req []editedMovementPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	edited := make([]core.Transaction, 0, len(req))
	for _, e := range req {
		tx, err := e.toTransaction()
		if err != nil {
			writeValidationOr500(w, err)
			return
		}
		edited = append(edited, tx)
	}

	if err := s.svc.UpdatePending(r.Context(), edited); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "updated": len(edited)})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.svc.History(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMovementList(history))
}

// writeLedgerError maps core and store errors onto HTTP statuses. The
// in-memory ledger is already unchanged by the time any of these surface.
func writeLedgerError(w http.ResponseWriter, err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
		return
	}
	var lerr *ledger.LoadError
	if errors.As(err, &lerr) {
		writeError(w, http.StatusBadGateway, lerr.Error())
		return
	}
	var serr *ledger.SaveError
	if errors.As(err, &serr) {
		writeError(w, http.StatusBadGateway, serr.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeValidationOr500(w http.ResponseWriter, err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
