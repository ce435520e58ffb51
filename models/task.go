package models

import (
	"time"

	"github.com/andrey156p/taskflow/utils"
)

// Status is the task lifecycle state. The wire format is the English token;
// the Hebrew label appears only in the exported spreadsheet.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusArchived   Status = "archived"
)

// Label returns the Hebrew display label used in the report.
func (s Status) Label() string {
	switch s {
	case StatusDone:
		return "בוצע"
	case StatusArchived:
		return "בארכיון"
	default:
		return "בתהליך"
	}
}

// Priority marks a task as normal or important.
type Priority string

const (
	PriorityNormal    Priority = "normal"
	PriorityImportant Priority = "important"
)

func (p Priority) Label() string {
	if p == PriorityImportant {
		return "חשוב"
	}
	return "רגיל"
}

// Task is the only persisted entity.
type Task struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Description       string    `gorm:"type:text" json:"description"`
	Performer         string    `gorm:"type:varchar(100)" json:"performer"`
	Contractor        string    `gorm:"type:varchar(100)" json:"contractor"`
	ContractorContact string    `gorm:"type:varchar(100)" json:"contractor_contact"`
	PersonInCharge    string    `gorm:"type:varchar(100)" json:"person_in_charge"`
	Materials         string    `gorm:"type:text" json:"materials"`
	Supplier          string    `gorm:"type:varchar(100)" json:"supplier"`
	SupplierContact   string    `gorm:"type:varchar(100)" json:"supplier_contact"`
	StartDate         string    `gorm:"type:varchar(10)" json:"start_date"`
	DueDate           string    `gorm:"type:varchar(10)" json:"due_date"`
	Priority          Priority  `gorm:"type:varchar(20);default:normal" json:"priority"`
	Status            Status    `gorm:"type:varchar(20);default:in_progress" json:"status"`
	ExtensionReason   string    `gorm:"type:text" json:"extension_reason"`
	CreatedAt         time.Time `json:"created_at"`
}

// Progress is the derived elapsed-time percentage, clamped to [0, 100].
// It is recomputed on every read and never persisted.
func (t *Task) Progress(now time.Time) int {
	start, err := utils.ParseDate(t.StartDate)
	if err != nil {
		return 0
	}
	due, err := utils.ParseDate(t.DueDate)
	if err != nil {
		return 0
	}
	if !due.After(start) {
		return 100
	}
	if now.Before(start) {
		return 0
	}
	if now.After(due) {
		return 100
	}
	// Divide before scaling: multiplying the nanosecond duration by 100
	// first overflows int64 on spans past ~2.9 years.
	total := due.Sub(start)
	elapsed := now.Sub(start)
	return int(float64(elapsed) / float64(total) * 100)
}
