package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"insider-sentiment/internal/interfaces"
	"insider-sentiment/internal/types"
)

// EnrichedTrade is one archived output row.
type EnrichedTrade struct {
	ID              uint   `gorm:"primaryKey"`
	RunID           string `gorm:"index"`
	Ticker          string `gorm:"index"`
	InsiderName     string
	InsiderRole     string
	TradeDate       string `gorm:"index"`
	TransactionType string
	Shares          string
	Price           string
	Notional        string // shares * price, empty when either does not parse
	Score           float64
	Label           string
	HeadlinesCount  int
	FetchError      string
	CreatedAt       time.Time
}

// Store archives enriched rows in SQLite.
type Store struct {
	db *gorm.DB
}

var _ interfaces.RecordSink = (*Store)(nil)

// Open creates or opens the database at path and migrates the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	if err := db.AutoMigrate(&EnrichedTrade{}); err != nil {
		return nil, fmt.Errorf("migrate archive: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Name() string { return "archive" }

// Save inserts all records of a run in one transaction.
func (s *Store) Save(ctx context.Context, runID string, records []types.EnrichedRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]EnrichedTrade, 0, len(records))
	for _, r := range records {
		row := EnrichedTrade{
			RunID:           runID,
			Ticker:          r.Trade.Ticker,
			InsiderName:     r.Trade.InsiderName,
			InsiderRole:     r.Trade.InsiderRole,
			TradeDate:       r.Trade.TradeDate,
			TransactionType: r.Trade.TransactionType,
			Shares:          r.Trade.SharesRaw,
			Price:           r.Trade.PriceRaw,
			Score:           r.Score,
			Label:           string(r.Label),
			HeadlinesCount:  r.HeadlinesCount,
			FetchError:      r.FetchError,
		}
		if n, ok := r.Trade.Notional(); ok {
			row.Notional = n.String()
		}
		rows = append(rows, row)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("archive run %s: %w", runID, err)
		}
		return nil
	})
}

// RunRecords returns the archived rows of one run in insertion order.
func (s *Store) RunRecords(ctx context.Context, runID string) ([]EnrichedTrade, error) {
	var rows []EnrichedTrade
	err := s.db.WithContext(ctx).Where("run_id = ?", runID).Order("id").Find(&rows).Error
	return rows, err
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
