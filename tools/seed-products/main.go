// Command seed-products loads the bundled fallback catalog into the
// products table. Existing rows with the same id are overwritten.
package main

import (
	"flag"
	"log"
	"os"

	"storefront-service/catalog"
	"storefront-service/database"
	"storefront-service/models"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

func main() {
	var dsn string
	var dryRun bool
	flag.StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	flag.BoolVar(&dryRun, "dry-run", false, "print what would be written without touching the database")
	flag.Parse()

	products := catalog.Fallback()
	records := make([]models.ProductRecord, 0, len(products))
	for _, p := range products {
		records = append(records, models.ProductRecordFromProduct(p))
	}

	if dryRun {
		for _, r := range records {
			log.Printf("product %d %q price=%s falcon=%v", r.ID, r.Name, r.Price.String(), r.FalconPrice)
		}
		log.Printf("dry run: %d products", len(records))
		return
	}
	if dsn == "" {
		log.Fatal("DATABASE_URL must be set or provided via -dsn")
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	db, err := database.ConnectPostgres(database.PostgresConfig{URL: dsn}, zapLogger)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&records).Error; err != nil {
		log.Fatalf("seed products: %v", err)
	}

	// Explicit ids leave the serial sequence behind; move it past them.
	if err := db.Exec(
		"SELECT setval(pg_get_serial_sequence('products', 'id'), (SELECT MAX(id) FROM products))",
	).Error; err != nil {
		log.Printf("warning: could not advance products id sequence: %v", err)
	}

	log.Printf("seeded %d products", len(records))
}
