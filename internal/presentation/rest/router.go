package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/usecase"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/observability"
)

// UseCases bundles the application services the HTTP layer dispatches to.
type UseCases struct {
	CreateLoan     *usecase.CreateLoanUseCase
	CalculateLoan  *usecase.CalculateLoanUseCase
	GetLoan        *usecase.GetLoanUseCase
	ListLoans      *usecase.ListLoansUseCase
	LoanReports    *usecase.LoanReportsUseCase
	Eligibility    *usecase.CheckEligibilityUseCase
	RecordPayment  *usecase.RecordPaymentUseCase
	PaymentQueries *usecase.PaymentQueriesUseCase
	RegisterMember *usecase.RegisterMemberUseCase
	MemberQueries  *usecase.MemberQueriesUseCase
	Savings        *usecase.SavingsUseCase
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	uc      UseCases
	pinger  Pinger
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewServer(uc UseCases, pinger Pinger, metrics *observability.Metrics, logger *slog.Logger) *Server {
	return &Server{uc: uc, pinger: pinger, metrics: metrics, logger: logger}
}

// Router builds the full route table with logging and metrics middleware
// applied to the API routes.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.liveness).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.readiness).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.requestLogging, s.requestMetrics)

	api.HandleFunc("/loans", s.createLoan).Methods(http.MethodPost)
	api.HandleFunc("/loans", s.listLoans).Methods(http.MethodGet)
	api.HandleFunc("/loans/calculate", s.calculateLoan).Methods(http.MethodPost)
	api.HandleFunc("/loans/eligibility/{memberId}", s.loanEligibility).Methods(http.MethodGet)
	api.HandleFunc("/loans/overdue", s.overdueLoans).Methods(http.MethodGet)
	api.HandleFunc("/loans/due-today", s.dueToday).Methods(http.MethodGet)
	api.HandleFunc("/loans/upcoming", s.upcomingDues).Methods(http.MethodGet)
	api.HandleFunc("/loans/stats", s.loanStats).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}", s.getLoan).Methods(http.MethodGet)

	api.HandleFunc("/payments", s.recordPayment).Methods(http.MethodPost)
	api.HandleFunc("/payments", s.listPayments).Methods(http.MethodGet)
	api.HandleFunc("/payments/stats", s.paymentStats).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id}", s.getPayment).Methods(http.MethodGet)
	api.HandleFunc("/payments/{id}/receipt", s.paymentReceipt).Methods(http.MethodGet)

	api.HandleFunc("/members", s.registerMember).Methods(http.MethodPost)
	api.HandleFunc("/members", s.listMembers).Methods(http.MethodGet)
	api.HandleFunc("/members/{id}", s.getMember).Methods(http.MethodGet)

	api.HandleFunc("/savings/withdraw", s.withdrawSavings).Methods(http.MethodPost)
	api.HandleFunc("/savings/accrue-interest", s.accrueSavingsInterest).Methods(http.MethodPost)
	api.HandleFunc("/savings/{memberId}", s.getSavings).Methods(http.MethodGet)

	return r
}
