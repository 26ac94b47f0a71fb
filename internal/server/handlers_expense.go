package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/White-Devil2839/peerflow/internal/middleware"
	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/service"
)

type createExpenseRequest struct {
	GroupID      string             `json:"groupId"`
	Description  string             `json:"description"`
	TotalAmount  int64              `json:"totalAmount"`
	PaidBy       string             `json:"paidBy"`
	Participants []string           `json:"participants"`
	Splits       []models.Split     `json:"splits"`
	Recurring    bool               `json:"recurring"`
	Recurrence   *models.Recurrence `json:"recurrence"`
}

type voteRequest struct {
	Vote models.VoteChoice `json:"vote"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense, err := s.services.Expenses.Create(r.Context(), service.CreateExpenseInput{
		GroupID:      req.GroupID,
		Description:  req.Description,
		TotalAmount:  req.TotalAmount,
		PaidBy:       req.PaidBy,
		Participants: req.Participants,
		Splits:       req.Splits,
		Recurring:    req.Recurring,
		Recurrence:   req.Recurrence,
	}, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.services.Expenses.Get(r.Context(), mux.Vars(r)["expenseId"], middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleVoteExpense(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense, err := s.services.Expenses.Vote(r.Context(), mux.Vars(r)["expenseId"], middleware.GetUserID(r.Context()), req.Vote)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.services.Expenses.ListGroup(r.Context(), mux.Vars(r)["groupId"], middleware.GetUserID(r.Context()), "")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleListPendingExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.services.Expenses.ListGroup(r.Context(), mux.Vars(r)["groupId"], middleware.GetUserID(r.Context()), models.ExpensePending)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}
