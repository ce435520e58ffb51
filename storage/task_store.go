package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/andrey156p/taskflow/models"
	"github.com/andrey156p/taskflow/services"
)

// GormTaskStore implements services.TaskStore over the sqlite database.
// Every statement runs under a bounded timeout so a hung storage call cannot
// pin a request forever.
type GormTaskStore struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGormTaskStore(db *gorm.DB, timeout time.Duration) *GormTaskStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GormTaskStore{db: db, timeout: timeout}
}

func (s *GormTaskStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GormTaskStore) Create(ctx context.Context, task *models.Task) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.WithContext(ctx).Create(task).Error
}

func (s *GormTaskStore) GetByID(ctx context.Context, id uint) (models.Task, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var task models.Task
	err := s.db.WithContext(ctx).First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Task{}, services.ErrTaskNotFound
	}
	return task, err
}

func (s *GormTaskStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res := s.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrTaskNotFound
	}
	return nil
}

func (s *GormTaskStore) ListActive(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var tasks []models.Task
	err := s.db.WithContext(ctx).Where("status <> ?", models.StatusArchived).Find(&tasks).Error
	return tasks, err
}

func (s *GormTaskStore) ListAll(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var tasks []models.Task
	err := s.db.WithContext(ctx).Find(&tasks).Error
	return tasks, err
}
