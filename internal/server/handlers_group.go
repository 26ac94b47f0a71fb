package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/White-Devil2839/peerflow/internal/middleware"
	"github.com/White-Devil2839/peerflow/internal/service"
)

type createGroupRequest struct {
	Name                string `json:"name"`
	Password            string `json:"password"`
	SettlementThreshold int64  `json:"settlementThreshold"`
}

type joinGroupRequest struct {
	JoinCode string `json:"joinCode"`
	Password string `json:"password"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group, err := s.services.Groups.Create(r.Context(), service.CreateGroupInput{
		Name:      req.Name,
		Password:  req.Password,
		Threshold: req.SettlementThreshold,
	}, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	var req joinGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group, err := s.services.Groups.Join(r.Context(), req.JoinCode, req.Password, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.services.Groups.ListForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.services.Groups.Get(r.Context(), mux.Vars(r)["groupId"], middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}
