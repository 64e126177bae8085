package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"atithi/internal/domain"
)

type HousekeepingRepository struct {
	db *gorm.DB
}

func NewHousekeepingRepository(db *gorm.DB) *HousekeepingRepository {
	return &HousekeepingRepository{db: db}
}

func (r *HousekeepingRepository) Create(ctx context.Context, task *domain.HousekeepingTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *HousekeepingRepository) GetByID(ctx context.Context, id int64) (*domain.HousekeepingTask, error) {
	var task domain.HousekeepingTask
	if err := r.db.WithContext(ctx).Preload("Room").First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *HousekeepingRepository) ListPending(ctx context.Context) ([]domain.HousekeepingTask, error) {
	var tasks []domain.HousekeepingTask
	err := r.db.WithContext(ctx).Preload("Room").
		Where("status = ?", domain.TaskPending).
		Order("CASE priority WHEN 'HIGH' THEN 0 ELSE 1 END, created_at").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Complete marks a pending task done; completing an already-done task
// reports stale state so the caller refreshes its view.
func (r *HousekeepingRepository) Complete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&domain.HousekeepingTask{}).
		Where("id = ? AND status = ?", id, domain.TaskPending).
		Updates(map[string]any{"status": domain.TaskDone, "completed_at": now})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrStaleState
	}
	return nil
}
