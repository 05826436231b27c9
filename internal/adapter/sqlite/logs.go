package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heartmarshall/nutrition-backend/internal/adapter/snapshot"
	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// logRow keeps the indexed columns next to the full JSON document.
type logRow struct {
	ID         string `gorm:"primaryKey;size:36"`
	TenantID   string `gorm:"not null;index:idx_log_tenant_date,priority:1"`
	LogDate    string `gorm:"not null;size:10;index:idx_log_tenant_date,priority:2"`
	ConsumedAt int64  `gorm:"not null"`
	Data       []byte `gorm:"not null"`
}

func (logRow) TableName() string { return "log_entries" }

// LogStore persists log entries in SQLite.
type LogStore struct {
	db *gorm.DB
}

// NewLogStore creates a LogStore on an opened database.
func NewLogStore(db *gorm.DB) *LogStore {
	return &LogStore{db: db}
}

// Save inserts a new entry.
func (s *LogStore) Save(ctx context.Context, e domain.LogEntry) error {
	row, err := toRow(e)
	if err != nil {
		return err
	}
	if err := conn(ctx, s.db).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("log entry %s already exists: %w", e.ID, domain.ErrValidation)
		}
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

// FindByID returns the tenant's entry or domain.ErrNotFound.
func (s *LogStore) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (domain.LogEntry, error) {
	var row logRow
	err := conn(ctx, s.db).
		Where("tenant_id = ? AND id = ?", tenantID, id.String()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.LogEntry{}, fmt.Errorf("log entry %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("find log entry: %w", err)
	}
	return snapshot.DecodeEntry(row.Data)
}

// FindByDate returns the tenant's entries for one day.
func (s *LogStore) FindByDate(ctx context.Context, tenantID string, date time.Time) ([]domain.LogEntry, error) {
	return s.FindByDateRange(ctx, tenantID, date, date)
}

// FindByDateRange returns entries with start <= log date <= end ordered by
// date and consumption time.
func (s *LogStore) FindByDateRange(ctx context.Context, tenantID string, start, end time.Time) ([]domain.LogEntry, error) {
	var rows []logRow
	err := conn(ctx, s.db).
		Where("tenant_id = ? AND log_date BETWEEN ? AND ?", tenantID, domain.FormatDate(start), domain.FormatDate(end)).
		Order("log_date, consumed_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}

	entries := make([]domain.LogEntry, 0, len(rows))
	for _, r := range rows {
		e, err := snapshot.DecodeEntry(r.Data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Update replaces the document of an existing entry.
func (s *LogStore) Update(ctx context.Context, e domain.LogEntry) error {
	row, err := toRow(e)
	if err != nil {
		return err
	}
	res := conn(ctx, s.db).
		Model(&logRow{}).
		Where("tenant_id = ? AND id = ?", row.TenantID, row.ID).
		Updates(map[string]any{
			"log_date":    row.LogDate,
			"consumed_at": row.ConsumedAt,
			"data":        row.Data,
		})
	if res.Error != nil {
		return fmt.Errorf("update log entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("log entry %s: %w", e.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the entry and reports whether it existed.
func (s *LogStore) Delete(ctx context.Context, tenantID string, id uuid.UUID) (bool, error) {
	res := conn(ctx, s.db).
		Where("tenant_id = ? AND id = ?", tenantID, id.String()).
		Delete(&logRow{})
	if res.Error != nil {
		return false, fmt.Errorf("delete log entry: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func toRow(e domain.LogEntry) (logRow, error) {
	data, err := snapshot.EncodeEntry(e)
	if err != nil {
		return logRow{}, fmt.Errorf("encode log entry: %w", err)
	}
	return logRow{
		ID:         e.ID.String(),
		TenantID:   e.TenantID,
		LogDate:    domain.FormatDate(e.LogDate),
		ConsumedAt: e.ConsumedAt.UnixNano(),
		Data:       data,
	}, nil
}
