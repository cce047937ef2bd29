package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
)

func (s *Server) registerMember(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.uc.RegisterMember.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) getMember(w http.ResponseWriter, r *http.Request) {
	resp, err := s.uc.MemberQueries.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.uc.MemberQueries.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
