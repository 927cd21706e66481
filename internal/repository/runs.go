package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"aimscope/internal/analysis"
	"aimscope/internal/database"
	"aimscope/internal/models"
)

// ErrDuplicateRun means a run for the same capture file (source + first
// sample timestamp) is already stored. The watcher can fire more than once
// for one recording; the unique index makes re-imports harmless.
var ErrDuplicateRun = errors.New("repository: run already stored for this recording")

// ErrRunNotFound is returned when no run exists for the given ID.
var ErrRunNotFound = errors.New("repository: run not found")

const uniqueViolation = "23505"

// SaveResult persists one analysis result with all its labeled events in a
// single transaction.
func SaveResult(ctx context.Context, res *analysis.Result) (*models.Run, error) {
	run := &models.Run{
		ID:                   res.RunID,
		Source:               res.Source,
		StartedAt:            res.StartedAt,
		SampleCount:          res.SampleCount,
		MoveCount:            res.MoveCount,
		MinDuration:          res.Options.MinDuration,
		MinDistance:          res.Options.MinDistance,
		JitterThreshold:      res.Thresholds.Jitter,
		VelocityVarThreshold: res.Thresholds.VelocityVariance,
		EfficiencyThreshold:  res.Thresholds.Efficiency,
		SmoothCount:          len(res.Smooth),
		JitteryCount:         len(res.Jittery),
	}
	for i, ev := range res.Events() {
		run.Events = append(run.Events, models.NewEventRecord(run.ID, i, ev))
	}

	if err := database.DB.WithContext(ctx).Create(run).Error; err != nil {
		return nil, translateSaveError(err)
	}
	return run, nil
}

// translateSaveError maps a unique-index violation on (source, started_at) to
// ErrDuplicateRun. The postgres driver speaks pgx, so constraint violations
// surface as *pgconn.PgError.
func translateSaveError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateRun
	}
	return fmt.Errorf("save run: %w", err)
}

// ListRuns returns all stored runs, newest first, without their events.
func ListRuns(ctx context.Context) ([]models.Run, error) {
	var runs []models.Run
	err := database.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// GetRun loads one run with its events in segmentation order.
func GetRun(ctx context.Context, id string) (*models.Run, error) {
	var run models.Run
	err := database.DB.WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &run, nil
}

// DeleteRun removes a run and its events.
func DeleteRun(ctx context.Context, id string) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", id).Delete(&models.EventRecord{}).Error; err != nil {
			return fmt.Errorf("delete events: %w", err)
		}
		result := tx.Delete(&models.Run{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete run: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrRunNotFound
		}
		return nil
	})
}

// Partitions splits a stored run's events back into the smooth and jittery
// partitions, preserving segmentation order.
func Partitions(run *models.Run) (smooth, jittery []models.AimingEvent) {
	for _, rec := range run.Events {
		ev := rec.Event()
		if ev.Label == models.LabelJittery {
			jittery = append(jittery, ev)
		} else {
			smooth = append(smooth, ev)
		}
	}
	return smooth, jittery
}
