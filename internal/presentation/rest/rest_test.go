package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/usecase"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/events"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/infrastructure/persistence/redisstore"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/observability"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/presentation/rest"
)

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, events.DomainEvent) error { return nil }
func (noopPublisher) Close() error                                      { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := redisstore.NewWithClient(client)

	loanRepo := redisstore.NewLoanRepository(store)
	paymentRepo := redisstore.NewPaymentRepository(store)
	memberRepo := redisstore.NewMemberRepository(store)
	savingsRepo := redisstore.NewSavingsRepository(store)
	sequences := redisstore.NewSequences(store)

	society := config.DefaultSocietyConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := noopPublisher{}

	server := rest.NewServer(rest.UseCases{
		CreateLoan:     usecase.NewCreateLoanUseCase(loanRepo, memberRepo, sequences, publisher, society, logger),
		CalculateLoan:  usecase.NewCalculateLoanUseCase(society),
		GetLoan:        usecase.NewGetLoanUseCase(loanRepo),
		ListLoans:      usecase.NewListLoansUseCase(loanRepo),
		LoanReports:    usecase.NewLoanReportsUseCase(loanRepo, memberRepo),
		Eligibility:    usecase.NewCheckEligibilityUseCase(loanRepo, memberRepo, society),
		RecordPayment:  usecase.NewRecordPaymentUseCase(loanRepo, paymentRepo, memberRepo, savingsRepo, sequences, publisher, logger),
		PaymentQueries: usecase.NewPaymentQueriesUseCase(paymentRepo, memberRepo, sequences),
		RegisterMember: usecase.NewRegisterMemberUseCase(memberRepo, savingsRepo, sequences, publisher, society, logger),
		MemberQueries:  usecase.NewMemberQueriesUseCase(memberRepo, loanRepo, savingsRepo),
		Savings:        usecase.NewSavingsUseCase(savingsRepo, society, logger),
	}, store, observability.NewMetrics("test"), logger)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func registerMember(t *testing.T, ts *httptest.Server) dto.MemberResponse {
	t.Helper()
	resp := postJSON(t, ts, "/api/members", dto.RegisterMemberRequest{
		Name:  "Lakshmi Devi",
		Phone: "9876543210",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[dto.MemberResponse](t, resp)
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp := getJSON(t, ts, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, ts, "/readyz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterMemberOpensSavingsAccount(t *testing.T) {
	ts := newTestServer(t)

	member := registerMember(t, ts)
	assert.Equal(t, "MEM-00001", member.Member.MemberID)
	require.NotNil(t, member.Savings)
	assert.Equal(t, "SAV-000001", member.Savings.AccountID)
}

func TestLoanLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	member := registerMember(t, ts)

	resp := postJSON(t, ts, "/api/loans", dto.CreateLoanRequest{
		MemberID:         member.Member.ID,
		LoanAmount:       dec(120000),
		TenureMonths:     12,
		DisbursementDate: "2026-01-05",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[dto.LoanResponse](t, resp)
	assert.Equal(t, "LOAN-2026-00001", created.Loan.LoanID)
	require.NotNil(t, created.NextEMI)
	assert.Equal(t, 1, created.NextEMI.EMINumber)

	// A second active loan for the same member is refused.
	resp = postJSON(t, ts, "/api/loans", dto.CreateLoanRequest{
		MemberID:     member.Member.ID,
		LoanAmount:   dec(60000),
		TenureMonths: 6,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts, "/api/payments", dto.RecordPaymentRequest{
		MemberID:    member.Member.ID,
		LoanID:      created.Loan.LoanID,
		Amount:      created.Loan.Summary.MonthlyEMI,
		Kind:        "loan_emi",
		PaymentDate: "2026-02-05",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	paid := decodeBody[dto.PaymentResponse](t, resp)
	assert.Equal(t, "PAY-000001", paid.Payment.PaymentID)
	require.NotNil(t, paid.Loan)
	assert.True(t, paid.Loan.Schedule[0].IsPaid())

	resp = getJSON(t, ts, "/api/loans/"+created.Loan.LoanID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[dto.LoanResponse](t, resp)
	require.NotNil(t, fetched.NextEMI)
	assert.Equal(t, 2, fetched.NextEMI.EMINumber)
}

func TestLoanEligibilityOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	member := registerMember(t, ts)

	resp := getJSON(t, ts, "/api/loans/eligibility/"+member.Member.ID+"?amount=120000")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	check := decodeBody[dto.EligibilityResponse](t, resp)
	assert.True(t, check.Eligible)

	resp = postJSON(t, ts, "/api/loans", dto.CreateLoanRequest{
		MemberID:     member.Member.ID,
		LoanAmount:   dec(120000),
		TenureMonths: 12,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, ts, "/api/loans/eligibility/"+member.Member.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	check = decodeBody[dto.EligibilityResponse](t, resp)
	assert.False(t, check.Eligible)
	assert.NotEmpty(t, check.Issues)
}

func TestCreateLoanValidationErrors(t *testing.T) {
	ts := newTestServer(t)
	member := registerMember(t, ts)

	resp := postJSON(t, ts, "/api/loans", dto.CreateLoanRequest{
		MemberID:     member.Member.ID,
		LoanAmount:   dec(1000),
		TenureMonths: 12,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[map[string]any](t, resp)
	assert.NotEmpty(t, body["error"])
}

func TestGetLoanNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp := getJSON(t, ts, "/api/loans/LOAN-2026-09999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCalculateLoanQuote(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/loans/calculate", dto.CalculateLoanRequest{
		LoanAmount:   dec(120000),
		TenureMonths: 12,
		IsNewMember:  true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	quote := decodeBody[dto.LoanQuoteResponse](t, resp)
	assert.Len(t, quote.Schedule, 12)
	assert.True(t, quote.InitialCollection.Total.IsPositive())
}

func TestUpcomingDuesRejectsBadWindow(t *testing.T) {
	ts := newTestServer(t)

	resp := getJSON(t, ts, "/api/loans/upcoming?days=zero")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
