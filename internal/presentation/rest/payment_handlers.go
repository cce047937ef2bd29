package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
)

func (s *Server) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.uc.RecordPayment.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.PaymentsRecorded.WithLabelValues(string(resp.Payment.Kind)).Inc()
		if resp.Payment.LateCharges.IsPositive() {
			s.metrics.LateFeesCharged.Inc()
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) getPayment(w http.ResponseWriter, r *http.Request) {
	resp, err := s.uc.PaymentQueries.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := s.uc.PaymentQueries.List(r.Context(), q.Get("memberId"), q.Get("loanId"), q.Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) paymentReceipt(w http.ResponseWriter, r *http.Request) {
	resp, err := s.uc.PaymentQueries.Receipt(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) paymentStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := time.Now().UTC()

	from := now.AddDate(0, -1, 0)
	if raw := q.Get("from"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "from must be YYYY-MM-DD"})
			return
		}
		from = parsed
	}

	to := now
	if raw := q.Get("to"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "to must be YYYY-MM-DD"})
			return
		}
		to = parsed
	}

	resp, err := s.uc.PaymentQueries.Stats(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
