package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/usecase"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/infrastructure/messaging"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/infrastructure/persistence/redisstore"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/observability"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}, cfg.ServiceName)

	society, err := config.LoadSociety(cfg.SocietyFile)
	if err != nil {
		logger.Error("failed to load society config", "error", err)
		os.Exit(1)
	}
	logger.Info("starting loan-society-service",
		"http_port", cfg.HTTPPort,
		"society", society.Society.Name,
	)

	storeCtx, storeCancel := context.WithTimeout(ctx, 10*time.Second)
	defer storeCancel()

	store, err := redisstore.New(storeCtx, cfg.Redis)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("connected to redis", "addr", cfg.Redis.Addr)

	loanRepo := redisstore.NewLoanRepository(store)
	paymentRepo := redisstore.NewPaymentRepository(store)
	memberRepo := redisstore.NewMemberRepository(store)
	savingsRepo := redisstore.NewSavingsRepository(store)
	sequences := redisstore.NewSequences(store)

	publisher := messaging.NewKafkaEventPublisher(cfg.Kafka, logger)
	defer publisher.Close()

	metrics := observability.NewMetrics(cfg.ServiceName)

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
	}, store, metrics, logger)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loan-society-service stopped")
}
