package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hancomics/prodboard/internal/domain/delivery"
	"github.com/hancomics/prodboard/internal/repository"
)

// DeliveryRepository implements delivery.Repository for SQLite. Episode sets
// and schedules are stored as JSON documents; counts are never stored.
type DeliveryRepository struct {
	db *DB
}

// NewDeliveryRepository creates a new DeliveryRepository
func NewDeliveryRepository(db *DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// GetRecord loads one (title, platform) delivery record.
func (r *DeliveryRepository) GetRecord(ctx context.Context, title, platformID string) (delivery.DeliveryRecord, error) {
	var episodesJSON, scheduleJSON string
	err := r.db.QueryRowContext(ctx, `
		SELECT episodes, schedule FROM delivery_records
		WHERE title = ? AND platform_id = ?
	`, title, platformID).Scan(&episodesJSON, &scheduleJSON)
	if err == sql.ErrNoRows {
		return delivery.DeliveryRecord{}, repository.ErrNotFound
	}
	if err != nil {
		return delivery.DeliveryRecord{}, fmt.Errorf("failed to get delivery record: %w", err)
	}

	rec := delivery.DeliveryRecord{Title: title, PlatformID: platformID}
	if err := json.Unmarshal([]byte(episodesJSON), &rec.Episodes); err != nil {
		return delivery.DeliveryRecord{}, fmt.Errorf("failed to decode episodes: %w", err)
	}
	if err := json.Unmarshal([]byte(scheduleJSON), &rec.Schedule); err != nil {
		return delivery.DeliveryRecord{}, fmt.Errorf("failed to decode schedule: %w", err)
	}
	return rec, nil
}

// UpsertRecord writes a delivery record.
func (r *DeliveryRepository) UpsertRecord(ctx context.Context, rec delivery.DeliveryRecord) error {
	episodesJSON, err := json.Marshal(rec.Episodes)
	if err != nil {
		return fmt.Errorf("failed to encode episodes: %w", err)
	}
	scheduleJSON, err := json.Marshal(rec.Schedule)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	if rec.Schedule == nil {
		scheduleJSON = []byte("{}")
	}
	if rec.Episodes == nil {
		episodesJSON = []byte("{}")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO delivery_records (title, platform_id, episodes, schedule)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(title, platform_id) DO UPDATE SET
			episodes = excluded.episodes,
			schedule = excluded.schedule
	`, rec.Title, rec.PlatformID, string(episodesJSON), string(scheduleJSON))
	if err != nil {
		return fmt.Errorf("failed to upsert delivery record: %w", err)
	}
	return nil
}

// DeleteRecord prunes one delivery record. Explicit admin action only.
func (r *DeliveryRepository) DeleteRecord(ctx context.Context, title, platformID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM delivery_records WHERE title = ? AND platform_id = ?`,
		title, platformID)
	if err != nil {
		return fmt.Errorf("failed to delete delivery record: %w", err)
	}
	return requireRow(result)
}

// GetCommonSchedule loads a title's shared open/due schedule.
func (r *DeliveryRepository) GetCommonSchedule(ctx context.Context, title string) (delivery.CommonSchedule, error) {
	var openJSON, dueJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT open, due FROM common_schedules WHERE title = ?`, title).Scan(&openJSON, &dueJSON)
	if err == sql.ErrNoRows {
		return delivery.CommonSchedule{}, repository.ErrNotFound
	}
	if err != nil {
		return delivery.CommonSchedule{}, fmt.Errorf("failed to get common schedule: %w", err)
	}

	schedule := delivery.CommonSchedule{Title: title}
	if err := json.Unmarshal([]byte(openJSON), &schedule.Open); err != nil {
		return delivery.CommonSchedule{}, fmt.Errorf("failed to decode open dates: %w", err)
	}
	if err := json.Unmarshal([]byte(dueJSON), &schedule.Due); err != nil {
		return delivery.CommonSchedule{}, fmt.Errorf("failed to decode due dates: %w", err)
	}
	return schedule, nil
}

// UpsertCommonSchedule writes a title's shared schedule.
func (r *DeliveryRepository) UpsertCommonSchedule(ctx context.Context, schedule delivery.CommonSchedule) error {
	openJSON, err := json.Marshal(schedule.Open)
	if err != nil {
		return fmt.Errorf("failed to encode open dates: %w", err)
	}
	dueJSON, err := json.Marshal(schedule.Due)
	if err != nil {
		return fmt.Errorf("failed to encode due dates: %w", err)
	}
	if schedule.Open == nil {
		openJSON = []byte("{}")
	}
	if schedule.Due == nil {
		dueJSON = []byte("{}")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO common_schedules (title, open, due) VALUES (?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET open = excluded.open, due = excluded.due
	`, schedule.Title, string(openJSON), string(dueJSON))
	if err != nil {
		return fmt.Errorf("failed to upsert common schedule: %w", err)
	}
	return nil
}

// GetTitleMeta loads a title's delivery metadata.
func (r *DeliveryRepository) GetTitleMeta(ctx context.Context, title string) (delivery.TitleMeta, error) {
	var day string
	err := r.db.QueryRowContext(ctx,
		`SELECT delivery_day FROM title_meta WHERE title = ?`, title).Scan(&day)
	if err == sql.ErrNoRows {
		return delivery.TitleMeta{}, repository.ErrNotFound
	}
	if err != nil {
		return delivery.TitleMeta{}, fmt.Errorf("failed to get title meta: %w", err)
	}
	return delivery.TitleMeta{Title: title, DeliveryDay: delivery.DeliveryDay(day)}, nil
}

// SetTitleMeta writes a title's delivery metadata.
func (r *DeliveryRepository) SetTitleMeta(ctx context.Context, meta delivery.TitleMeta) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO title_meta (title, delivery_day) VALUES (?, ?)
		ON CONFLICT(title) DO UPDATE SET delivery_day = excluded.delivery_day
	`, meta.Title, string(meta.DeliveryDay))
	if err != nil {
		return fmt.Errorf("failed to set title meta: %w", err)
	}
	return nil
}

// ListTitleMeta returns all title metadata rows.
func (r *DeliveryRepository) ListTitleMeta(ctx context.Context) ([]delivery.TitleMeta, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT title, delivery_day FROM title_meta`)
	if err != nil {
		return nil, fmt.Errorf("failed to list title meta: %w", err)
	}
	defer rows.Close()

	var out []delivery.TitleMeta
	for rows.Next() {
		var meta delivery.TitleMeta
		var day string
		if err := rows.Scan(&meta.Title, &day); err != nil {
			return nil, fmt.Errorf("failed to scan title meta: %w", err)
		}
		meta.DeliveryDay = delivery.DeliveryDay(day)
		out = append(out, meta)
	}
	return out, rows.Err()
}
