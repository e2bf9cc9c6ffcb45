package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/config"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/db"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/grpcapi"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/httpapi"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/service"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store/fsstore"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store/sqlite"
)

func main() {
	logger := log.New(os.Stdout, "strazhnik-server ", log.LstdFlags|log.LUTC)

	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Fatalf("load .env: %v", err)
	}
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores
	creds := fsstore.NewCredentialStore(cfg.CredentialsPath)
	if err := creds.EnsureInitialized(ctx); err != nil {
		logger.Fatalf("credentials: %v", err)
	}

	fileRequests := fsstore.NewRequestStore(cfg.RequestsDir)
	var requests store.RequestStore = fileRequests

	if cfg.RequestBackend == config.BackendSQLite {
		conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath})
		if err != nil {
			logger.Fatalf("open db: %v", err)
		}
		defer conn.Close()

		writer := db.NewWorker(conn)
		defer writer.Close()

		sqlRequests := sqlite.NewRequestStore(conn, writer)
		n, err := sqlRequests.ImportFrom(ctx, fileRequests)
		if err != nil {
			logger.Fatalf("import requests from %s: %v", cfg.RequestsDir, err)
		}
		if n > 0 {
			logger.Printf("imported %d request files into %s", n, cfg.DBPath)
		}
		requests = sqlRequests
	}

	docs := fsstore.NewDocumentStore(cfg.DocsDir)

	// Services
	sessions := service.NewSessionRegistry()
	authSvc := service.NewAuthService(creds, sessions)
	docSvc := service.NewDocumentService(docs, logger)
	reqSvc := service.NewRequestService(requests, service.Catalog{
		Departments: cfg.Departments,
		Employees:   cfg.Employees,
	}, logger)

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:          logger,
		Addr:            cfg.HTTPAddr,
		AuthService:     authSvc,
		DocumentService: docSvc,
		RequestService:  reqSvc,
		Sessions:        sessions,
	})

	go func() {
		logger.Printf("listening on %s env=%s backend=%s", cfg.HTTPAddr, cfg.Env, cfg.RequestBackend)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("server error: %v", err)
			stop()
		}
	}()

	// gRPC health
	var health *grpcapi.HealthServer
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logger.Fatalf("grpc listen %s: %v", cfg.GRPCAddr, err)
		}
		health = grpcapi.NewHealthServer(logger)
		health.SetServing(true)
		go func() {
			if err := health.Serve(lis); err != nil {
				logger.Printf("grpc server error: %v", err)
				stop()
			}
		}()
	}

	<-ctx.Done()

	if health != nil {
		health.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
