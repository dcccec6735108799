// Package export writes the generated tables into a single SQLite file for
// ad-hoc SQL. The sink is optional; stages skip it when no path is set.
package export

import (
	"fmt"

	"github.com/quickcart/commerce-analytics/internal/dataset"
	pkgerrors "github.com/quickcart/commerce-analytics/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const insertBatchSize = 500

// Sink owns one SQLite database holding the four base tables.
type Sink struct {
	db *gorm.DB
}

// Open connects to the SQLite file at path and migrates the schema.
func Open(path string) (*Sink, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeIO, err, fmt.Sprintf("opening sqlite %s", path))
	}
	if err := db.AutoMigrate(&ProductRow{}, &CustomerRow{}, &StoreRow{}, &OrderRow{}, &PaymentRow{}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeIO, err, "migrating sqlite schema")
	}
	return &Sink{db: db}, nil
}

// Close releases the underlying connection.
func (s *Sink) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, err, "closing sqlite")
	}
	return sqlDB.Close()
}

// Counts reports the rows written per table.
type Counts struct {
	Products  int
	Customers int
	Stores    int
	Orders    int
	Payments  int
}

// WriteTables inserts all five tables in batches and returns per-table row
// counts.
func (s *Sink) WriteTables(products []dataset.Product, customers []dataset.Customer, stores []dataset.Store, orders []dataset.Order, payments []dataset.Payment) (Counts, error) {
	counts := Counts{
		Products:  len(products),
		Customers: len(customers),
		Stores:    len(stores),
		Orders:    len(orders),
		Payments:  len(payments),
	}

	if err := insertBatch(s.db, "products", productRows(products)); err != nil {
		return Counts{}, err
	}
	if err := insertBatch(s.db, "customers", customerRows(customers)); err != nil {
		return Counts{}, err
	}
	if err := insertBatch(s.db, "stores", storeRows(stores)); err != nil {
		return Counts{}, err
	}
	if err := insertBatch(s.db, "orders", orderRows(orders)); err != nil {
		return Counts{}, err
	}
	if err := insertBatch(s.db, "payments", paymentRows(payments)); err != nil {
		return Counts{}, err
	}
	return counts, nil
}

func insertBatch[T any](db *gorm.DB, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := db.CreateInBatches(rows, insertBatchSize).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, err, fmt.Sprintf("inserting %s", table))
	}
	return nil
}
