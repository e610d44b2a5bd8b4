package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/herbamart/network-service/internal/domain"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
	// One connection keeps every session on the same in-memory database.
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
	return db
}

// registerTestAgent creates an agent sponsored by sponsorID (nil for a root).
func registerTestAgent(t *testing.T, repo *DefaultAgentRepository, userID uint, sponsorID *uint) *domain.Agent {
	t.Helper()
	agent, err := repo.CreateAgentWithNetwork(&domain.Agent{
		UserID:      userID,
		FullName:    "Test Agent",
		Phone:       "6281234567890",
		Province:    "Jawa Barat",
		SponsorID:   sponsorID,
		PackageTier: domain.TierSilver,
		Rank:        domain.RankAgen,
		Type:        domain.AgentTypeAgen,
	}, "JB-26", 15)
	if err != nil {
		t.Fatalf("failed to create agent for user %d: %v", userID, err)
	}
	return agent
}
