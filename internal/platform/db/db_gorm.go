// Package db opens the local store and runs schema migrations.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	chartadapters "stocksync/internal/feature/chart/adapters"
	companyentity "stocksync/internal/feature/company/domain/entity"
	direntity "stocksync/internal/feature/directory/domain/entity"
	newsentity "stocksync/internal/feature/news/domain/entity"
	quoteentity "stocksync/internal/feature/quotes/domain/entity"
)

// OpenDB opens the local store. With DB_HOST set it connects to
// Postgres, retrying for up to 60 seconds; otherwise it opens the
// SQLite file named by DB_PATH (default "stocksync.db"), which is the
// embedded client-side mode.
func OpenDB() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if host := os.Getenv("DB_HOST"); host != "" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host,
			os.Getenv("DB_PORT"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
		)

		deadline := time.Now().Add(60 * time.Second)
		for {
			db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
			if err == nil {
				break
			}
			if time.Now().After(deadline) {
				log.Fatalf("DB connect failed after 60s: %v", err)
			}
			log.Printf("DB connect failed, retrying...: %v", err)
			time.Sleep(3 * time.Second)
		}
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "stocksync.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open sqlite store: %v", err)
		}
	}

	if err := db.AutoMigrate(
		&quoteentity.Quote{},
		&quoteentity.MostActiveRanking{},
		&chartadapters.PriceModel{},
		&newsentity.News{},
		&companyentity.CompanyInfo{},
		&direntity.Symbol{},
		&direntity.TrackedSymbol{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
