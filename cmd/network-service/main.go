package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/herbamart/network-service/internal/config"
	"github.com/herbamart/network-service/internal/delivery/http/handlers"
	"github.com/herbamart/network-service/internal/infrastructure/flip"
	publisher "github.com/herbamart/network-service/internal/infrastructure/kafka"
	"github.com/herbamart/network-service/internal/infrastructure/metrics"
	"github.com/herbamart/network-service/internal/infrastructure/migrate"
	"github.com/herbamart/network-service/internal/infrastructure/postgres"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/repository"
	"github.com/herbamart/network-service/internal/infrastructure/wablas"
	"github.com/herbamart/network-service/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.NetworkDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.NetworkDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Kafka event publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	kafkaPublisher := publisher.NewDefaultKafkaPublisher(brokers)
	events := publisher.NewEventPublisher(kafkaPublisher, cfg.KafkaService.Topic)

	// External gateways
	flipClient, err := flip.NewClient(cfg.FlipService)
	if err != nil {
		log.Fatalf("failed to init transfer gateway: %v", err)
	}
	wablasClient := wablas.NewClient(cfg.WablasService)
	notifier := wablas.NewNotifier(wablasClient, cfg.WablasService.Timeout)

	networkMetrics := metrics.NewNetworkMetrics()

	// Init repositories
	agentRepo := repository.NewDefaultAgentRepository(db)
	networkRepo := repository.NewDefaultNetworkRepository(db)
	trxRepo := repository.NewDefaultTransactionRepository(db)
	scheduleRepo := repository.NewDefaultScheduleRepository(db)
	commissionRepo := repository.NewDefaultCommissionRepository(db)
	withdrawalRepo := repository.NewDefaultWithdrawalRepository(db)
	rewardRepo := repository.NewDefaultRewardRepository(db)

	// Init usecases
	agentUc := usecase.NewDefaultAgentUsecase(
		agentRepo,
		networkRepo,
		events,
		notifier,
		networkMetrics,
		cfg.Network.MaxDepth,
		cfg.Network.ReferralBaseURL,
	)
	commissionUc := usecase.NewDefaultCommissionUsecase(
		commissionRepo,
		scheduleRepo,
		networkRepo,
		trxRepo,
		agentRepo,
		events,
		notifier,
		networkMetrics,
		cfg.Network.MaxDepth,
	)
	trxUc := usecase.NewDefaultTransactionUsecase(trxRepo, agentRepo, commissionUc)
	withdrawalUc := usecase.NewDefaultWithdrawalUsecase(
		withdrawalRepo,
		commissionRepo,
		agentRepo,
		flipClient,
		events,
		notifier,
		networkMetrics,
		cfg.Network.StuckWithdrawalAge,
	)
	rewardUc := usecase.NewDefaultRewardUsecase(rewardRepo, agentRepo, notifier, networkMetrics)

	// Stuck-withdrawal reconciler
	go withdrawalUc.StartWorker(context.Background())

	// Standalone metrics endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsAddr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			log.Fatalf("metrics server failed: %v", err)
		}
	}()

	// API server
	server := handlers.NewServer(agentUc, trxUc, commissionUc, withdrawalUc, rewardUc)
	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("network service listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}
