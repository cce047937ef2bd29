package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
)

func (s *Server) getSavings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.uc.Savings.Get(r.Context(), mux.Vars(r)["memberId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) withdrawSavings(w http.ResponseWriter, r *http.Request) {
	var req dto.SavingsTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.uc.Savings.Withdraw(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) accrueSavingsInterest(w http.ResponseWriter, r *http.Request) {
	count, err := s.uc.Savings.AccrueInterest(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"accountsCredited": count})
}
