package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/repository"
	agentdto "github.com/herbamart/network-service/internal/usecase/dto/agent"
	transactiondto "github.com/herbamart/network-service/internal/usecase/dto/transaction"
)

type testEnv struct {
	db           *gorm.DB
	agentRepo    *repository.DefaultAgentRepository
	networkRepo  *repository.DefaultNetworkRepository
	trxRepo      *repository.DefaultTransactionRepository
	scheduleRepo *repository.DefaultScheduleRepository
	commRepo     *repository.DefaultCommissionRepository
	wdRepo       *repository.DefaultWithdrawalRepository
	rewardRepo   *repository.DefaultRewardRepository

	gateway *fakeGateway

	agentUc      *DefaultAgentUsecase
	commissionUc *DefaultCommissionUsecase
	trxUc        *DefaultTransactionUsecase
	withdrawalUc *DefaultWithdrawalUsecase
	rewardUc     *DefaultRewardUsecase
}

// fakeGateway stands in for the bank transfer API.
type fakeGateway struct {
	failTransfer bool
	status       domain.TransferStatus
	transfers    int
}

func (g *fakeGateway) Transfer(ctx context.Context, req *domain.TransferRequest) (*domain.TransferResult, error) {
	g.transfers++
	if g.failTransfer {
		return nil, fmt.Errorf("%w: disbursement refused", domain.ErrUpstreamFailure)
	}
	return &domain.TransferResult{
		TransferID: fmt.Sprintf("tr-%d", g.transfers),
		Status:     g.status,
		Fee:        g.Fee(req.Amount),
	}, nil
}

func (g *fakeGateway) CheckStatus(ctx context.Context, transferID string) (domain.TransferStatus, error) {
	return g.status, nil
}

func (g *fakeGateway) Fee(amount decimal.Decimal) decimal.Decimal {
	fee := amount.Mul(decimal.NewFromFloat(0.002)).Round(2)
	min := decimal.NewFromInt(5000)
	if fee.LessThan(min) {
		return min
	}
	return fee
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.AgentModel{},
		&models.NetworkEdgeModel{},
		&models.TransactionModel{},
		&models.UpgradeModel{},
		&models.ScheduleEntryModel{},
		&models.CommissionEntryModel{},
		&models.WithdrawalModel{},
		&models.RewardModel{},
		&models.RewardClaimModel{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	env := &testEnv{
		db:           db,
		agentRepo:    repository.NewDefaultAgentRepository(db),
		networkRepo:  repository.NewDefaultNetworkRepository(db),
		trxRepo:      repository.NewDefaultTransactionRepository(db),
		scheduleRepo: repository.NewDefaultScheduleRepository(db),
		commRepo:     repository.NewDefaultCommissionRepository(db),
		wdRepo:       repository.NewDefaultWithdrawalRepository(db),
		rewardRepo:   repository.NewDefaultRewardRepository(db),
		gateway:      &fakeGateway{status: domain.TransferPending},
	}

	env.agentUc = NewDefaultAgentUsecase(env.agentRepo, env.networkRepo, nil, nil, nil, 15, "https://herbamart.id/ref")
	env.commissionUc = NewDefaultCommissionUsecase(env.commRepo, env.scheduleRepo, env.networkRepo, env.trxRepo, env.agentRepo, nil, nil, nil, 15)
	env.trxUc = NewDefaultTransactionUsecase(env.trxRepo, env.agentRepo, env.commissionUc)
	env.withdrawalUc = NewDefaultWithdrawalUsecase(env.wdRepo, env.commRepo, env.agentRepo, env.gateway, nil, nil, nil, 10*time.Minute)
	env.rewardUc = NewDefaultRewardUsecase(env.rewardRepo, env.agentRepo, nil, nil)

	return env
}

func (env *testEnv) registerAgent(t *testing.T, userID uint, sponsorCode string) *agentdto.RegisterAgentOutput {
	t.Helper()
	output, err := env.agentUc.RegisterAgent(&agentdto.RegisterAgentInput{
		UserID:      userID,
		FullName:    fmt.Sprintf("Agent %d", userID),
		Phone:       fmt.Sprintf("0812345678%02d", userID),
		Province:    "Jawa Barat",
		City:        "Bandung",
		SponsorCode: sponsorCode,
		PackageTier: domain.TierSilver,
	})
	if err != nil {
		t.Fatalf("failed to register agent for user %d: %v", userID, err)
	}
	return output
}

func (env *testEnv) seedSchedule(t *testing.T, kind domain.CommissionKind, tier *domain.PackageTier, nominals map[int]int64) {
	t.Helper()
	for level, nominal := range nominals {
		if err := env.scheduleRepo.UpsertEntry(&domain.ScheduleEntry{
			Kind:        kind,
			PackageTier: tier,
			Level:       level,
			Nominal:     decimal.NewFromInt(nominal),
		}); err != nil {
			t.Fatalf("failed to seed schedule %s level %d: %v", kind, level, err)
		}
	}
}

func (env *testEnv) advanceToDone(t *testing.T, trxID uint) {
	t.Helper()
	pipeline := []domain.TransactionStatus{
		domain.TxStatusPacked,
		domain.TxStatusShipped,
		domain.TxStatusArrivedAtCity,
		domain.TxStatusReceived,
		domain.TxStatusDone,
	}
	for _, next := range pipeline {
		if err := env.trxUc.AdvanceStatus(&transactiondto.AdvanceStatusInput{
			TransactionID: trxID,
			NextStatus:    next,
		}); err != nil {
			t.Fatalf("failed to advance transaction %d to %s: %v", trxID, next, err)
		}
	}
}
