package data

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/factlens/factlens/src/web/types"
)

func MustMySQL(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Setting{},
		&types.Analysis{},
		&types.AnalysisClaim{},
		&types.ExternalReview{},
	); err != nil {
		log.Fatalf("mysql migrate: %v", err)
	}
	return db
}
