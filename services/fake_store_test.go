package services

import (
	"context"
	"sync"
	"time"

	"github.com/andrey156p/taskflow/models"
)

// fakeStore is an in-memory TaskStore for exercising the lifecycle engine
// without a database.
type fakeStore struct {
	mu     sync.RWMutex
	nextID uint
	tasks  map[uint]models.Task
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID: 1,
		tasks:  make(map[uint]models.Task),
	}
}

func (f *fakeStore) Create(_ context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	task.ID = f.nextID
	f.nextID++
	task.CreatedAt = time.Now()
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint) (models.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	task, ok := f.tasks[id]
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}
	return task, nil
}

func (f *fakeStore) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}

	for name, value := range fields {
		switch name {
		case "description":
			task.Description = value.(string)
		case "performer":
			task.Performer = value.(string)
		case "contractor":
			task.Contractor = value.(string)
		case "contractor_contact":
			task.ContractorContact = value.(string)
		case "person_in_charge":
			task.PersonInCharge = value.(string)
		case "materials":
			task.Materials = value.(string)
		case "supplier":
			task.Supplier = value.(string)
		case "supplier_contact":
			task.SupplierContact = value.(string)
		case "start_date":
			task.StartDate = value.(string)
		case "due_date":
			task.DueDate = value.(string)
		case "extension_reason":
			task.ExtensionReason = value.(string)
		case "priority":
			task.Priority = value.(models.Priority)
		case "status":
			task.Status = value.(models.Status)
		}
	}

	f.tasks[id] = task
	return nil
}

func (f *fakeStore) ListActive(_ context.Context) ([]models.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []models.Task
	for _, task := range f.tasks {
		if task.Status != models.StatusArchived {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]models.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]models.Task, 0, len(f.tasks))
	for _, task := range f.tasks {
		out = append(out, task)
	}
	return out, nil
}
