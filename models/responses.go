package models

import "time"

// TaskResponse is a task as returned by GET /api/tasks, with the derived
// progress percentage attached.
type TaskResponse struct {
	ID                uint      `json:"id"`
	Description       string    `json:"description"`
	Performer         string    `json:"performer"`
	Contractor        string    `json:"contractor"`
	ContractorContact string    `json:"contractor_contact"`
	PersonInCharge    string    `json:"person_in_charge"`
	Materials         string    `json:"materials"`
	Supplier          string    `json:"supplier"`
	SupplierContact   string    `json:"supplier_contact"`
	StartDate         string    `json:"start_date"`
	DueDate           string    `json:"due_date"`
	Priority          Priority  `json:"priority"`
	Status            Status    `json:"status"`
	ExtensionReason   string    `json:"extension_reason"`
	CreatedAt         time.Time `json:"created_at"`
	Progress          int       `json:"progress"`
}

// NewTaskResponse builds the response view of a task at a given instant.
func NewTaskResponse(t Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:                t.ID,
		Description:       t.Description,
		Performer:         t.Performer,
		Contractor:        t.Contractor,
		ContractorContact: t.ContractorContact,
		PersonInCharge:    t.PersonInCharge,
		Materials:         t.Materials,
		Supplier:          t.Supplier,
		SupplierContact:   t.SupplierContact,
		StartDate:         t.StartDate,
		DueDate:           t.DueDate,
		Priority:          t.Priority,
		Status:            t.Status,
		ExtensionReason:   t.ExtensionReason,
		CreatedAt:         t.CreatedAt,
		Progress:          t.Progress(now),
	}
}
