package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/White-Devil2839/peerflow/internal/middleware"
	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/service"
)

type recordPaymentRequest struct {
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
	Amount     int64  `json:"amount"`
}

type overdueVoteRequest struct {
	Vote models.OverdueChoice `json:"vote"`
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	payment, err := s.services.Payments.Record(r.Context(), service.RecordPaymentInput{
		GroupID:    mux.Vars(r)["groupId"],
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
	}, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.services.Payments.ListGroup(r.Context(), mux.Vars(r)["groupId"], middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	overview, err := s.services.Balances.FullOverview(r.Context(), mux.Vars(r)["groupId"], middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleOverdueVote(w http.ResponseWriter, r *http.Request) {
	var req overdueVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vars := mux.Vars(r)
	standing, err := s.services.Overdue.CastVote(r.Context(), vars["groupId"], vars["userId"], middleware.GetUserID(r.Context()), req.Vote)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standing)
}

func (s *Server) handleOverdueStatus(w http.ResponseWriter, r *http.Request) {
	standings, err := s.services.Overdue.Status(r.Context(), mux.Vars(r)["groupId"], middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}
