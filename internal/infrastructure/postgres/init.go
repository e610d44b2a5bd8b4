package postgres

import (
	"log"

	"github.com/herbamart/network-service/internal/config"
	"github.com/herbamart/network-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.NetworkConfig) *gorm.DB {
	dsn := cfg.NetworkDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.AgentModel{},
		&models.NetworkEdgeModel{},
		&models.TransactionModel{},
		&models.UpgradeModel{},
		&models.ScheduleEntryModel{},
		&models.CommissionEntryModel{},
		&models.WithdrawalModel{},
		&models.RewardModel{},
		&models.RewardClaimModel{},
	)

	return db
}
