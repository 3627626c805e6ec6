package infra

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"constellation/pkg/utils"
)

func InitPostgresql() *gorm.DB {

	dsn := os.Getenv("POSTGRES_URL")

	// TranslateError surfaces unique violations as gorm.ErrDuplicatedKey.
	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error connecting to database")
	}

	return connectionPool
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		utils.Logger.WithError(err).Error("Error getting database instance")
		return
	}

	if err := sqlDB.Close(); err != nil {
		utils.Logger.WithError(err).Error("Error closing database connection")
	} else {
		utils.Logger.Info("PostgreSQL database connection closed")
	}
}
