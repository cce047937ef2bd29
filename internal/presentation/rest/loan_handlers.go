package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
)

func (s *Server) createLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.uc.CreateLoan.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.LoansCreated.Inc()
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) calculateLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.uc.CalculateLoan.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getLoan(w http.ResponseWriter, r *http.Request) {
	resp, err := s.uc.GetLoan.Execute(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listLoans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := s.uc.ListLoans.Execute(r.Context(), q.Get("memberId"), q.Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) loanEligibility(w http.ResponseWriter, r *http.Request) {
	amount := decimal.Zero
	if raw := r.URL.Query().Get("amount"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "amount must be numeric"})
			return
		}
		amount = parsed
	}

	resp, err := s.uc.Eligibility.Execute(r.Context(), mux.Vars(r)["memberId"], amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) overdueLoans(w http.ResponseWriter, r *http.Request) {
	resp, err := s.uc.LoanReports.Overdue(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) dueToday(w http.ResponseWriter, r *http.Request) {
	resp, err := s.uc.LoanReports.DueToday(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) upcomingDues(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "days must be a positive integer"})
			return
		}
		days = parsed
	}

	resp, err := s.uc.LoanReports.UpcomingDues(r.Context(), time.Now().UTC(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) loanStats(w http.ResponseWriter, r *http.Request) {
	resp, err := s.uc.LoanReports.Stats(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
