package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/andrey156p/taskflow/models"
	"github.com/andrey156p/taskflow/utils"
)

// TaskStore is the storage contract the lifecycle engine runs against.
type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (models.Task, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	ListActive(ctx context.Context) ([]models.Task, error)
	ListAll(ctx context.Context) ([]models.Task, error)
}

// TaskService enforces the task lifecycle: which transitions exist and which
// fields each one may touch.
type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

func validateRequired(req models.CreateTaskRequest) error {
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if !utils.IsValidDate(req.StartDate) {
		return fmt.Errorf("%w: start_date must be a valid YYYY-MM-DD date", ErrValidation)
	}
	if !utils.IsValidDate(req.DueDate) {
		return fmt.Errorf("%w: due_date must be a valid YYYY-MM-DD date", ErrValidation)
	}
	return nil
}

// Create inserts a new task. Status and extension reason are forced to their
// initial values regardless of caller input.
func (s *TaskService) Create(ctx context.Context, req models.CreateTaskRequest) (uint, error) {
	if err := validateRequired(req); err != nil {
		return 0, err
	}

	priority := req.Priority
	if priority != models.PriorityImportant {
		priority = models.PriorityNormal
	}

	task := models.Task{
		Description:       req.Description,
		Performer:         req.Performer,
		Contractor:        req.Contractor,
		ContractorContact: req.ContractorContact,
		PersonInCharge:    req.PersonInCharge,
		Materials:         req.Materials,
		Supplier:          req.Supplier,
		SupplierContact:   req.SupplierContact,
		StartDate:         req.StartDate,
		DueDate:           req.DueDate,
		Priority:          priority,
		Status:            models.StatusInProgress,
		ExtensionReason:   "",
	}
	if err := s.store.Create(ctx, &task); err != nil {
		return 0, err
	}
	return task.ID, nil
}

// ExtendDueDate pushes the due date of an in-progress task. The new date must
// differ from the current one and the reason must not be blank; both rules are
// enforced here even though the client checks them first.
func (s *TaskService) ExtendDueDate(ctx context.Context, id uint, newDueDate, reason string) error {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task.Status != models.StatusInProgress {
		return fmt.Errorf("%w: only in-progress tasks can be extended", ErrInvalidTransition)
	}
	if !utils.IsValidDate(newDueDate) {
		return fmt.Errorf("%w: due_date must be a valid YYYY-MM-DD date", ErrValidation)
	}
	if newDueDate == task.DueDate {
		return fmt.Errorf("%w: new due date equals the current one", ErrValidation)
	}
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: extension reason is required", ErrValidation)
	}

	return s.store.UpdateFields(ctx, id, map[string]interface{}{
		"due_date":         newDueDate,
		"extension_reason": reason,
	})
}

// MarkDone completes a task. Calling it on an already-done task is a no-op
// success; archived tasks stay archived.
func (s *TaskService) MarkDone(ctx context.Context, id uint) error {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch task.Status {
	case models.StatusDone:
		return nil
	case models.StatusArchived:
		return fmt.Errorf("%w: archived tasks cannot be completed", ErrInvalidTransition)
	}
	return s.store.UpdateFields(ctx, id, map[string]interface{}{
		"status": models.StatusDone,
	})
}

// Archive soft-deletes a task in place. The row survives for reporting.
// Idempotent.
func (s *TaskService) Archive(ctx context.Context, id uint) error {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task.Status == models.StatusArchived {
		return nil
	}
	return s.store.UpdateFields(ctx, id, map[string]interface{}{
		"status": models.StatusArchived,
	})
}

// Edit overwrites every editable field in one statement. Status and extension
// reason are out of its reach, and completed tasks are frozen history.
func (s *TaskService) Edit(ctx context.Context, id uint, req models.CreateTaskRequest) error {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task.Status == models.StatusDone {
		return fmt.Errorf("%w: completed tasks cannot be edited", ErrInvalidTransition)
	}
	if err := validateRequired(req); err != nil {
		return err
	}

	priority := req.Priority
	if priority != models.PriorityImportant {
		priority = models.PriorityNormal
	}

	return s.store.UpdateFields(ctx, id, map[string]interface{}{
		"description":        req.Description,
		"performer":          req.Performer,
		"contractor":         req.Contractor,
		"contractor_contact": req.ContractorContact,
		"person_in_charge":   req.PersonInCharge,
		"materials":          req.Materials,
		"supplier":           req.Supplier,
		"supplier_contact":   req.SupplierContact,
		"start_date":         req.StartDate,
		"due_date":           req.DueDate,
		"priority":           priority,
	})
}

func statusRank(s models.Status) int {
	if s == models.StatusDone {
		return 1
	}
	return 0
}

func priorityRank(p models.Priority) int {
	if p == models.PriorityImportant {
		return 0
	}
	return 1
}

// List returns the live task list: archived rows excluded, in-progress before
// done, important before normal, earliest due date first. The ordering is the
// attention policy of the board, not an accident of storage.
func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if a, b := statusRank(tasks[i].Status), statusRank(tasks[j].Status); a != b {
			return a < b
		}
		if a, b := priorityRank(tasks[i].Priority), priorityRank(tasks[j].Priority); a != b {
			return a < b
		}
		return tasks[i].DueDate < tasks[j].DueDate
	})

	return tasks, nil
}

// ListAll returns every task including archived ones, ordered by due date.
// This is the report feed: archiving hides a task from the board, not from
// the audit trail.
func (s *TaskService) ListAll(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueDate < tasks[j].DueDate
	})
	return tasks, nil
}
