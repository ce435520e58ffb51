package models

// LoginRequest carries the shared passphrase.
type LoginRequest struct {
	Password string `json:"password"`
}

// CreateTaskRequest is the body of POST /api/tasks. Status and extension
// reason are never taken from the caller on create.
type CreateTaskRequest struct {
	Description       string   `json:"description"`
	Performer         string   `json:"performer"`
	Contractor        string   `json:"contractor"`
	ContractorContact string   `json:"contractor_contact"`
	PersonInCharge    string   `json:"person_in_charge"`
	Materials         string   `json:"materials"`
	Supplier          string   `json:"supplier"`
	SupplierContact   string   `json:"supplier_contact"`
	StartDate         string   `json:"start_date"`
	DueDate           string   `json:"due_date"`
	Priority          Priority `json:"priority"`
}

// Update operations for PUT /api/tasks/:id, selected by an explicit
// discriminator instead of sniffing which fields happen to be present.
const (
	OpExtend = "extend"
	OpDone   = "done"
	OpEdit   = "edit"
)

// UpdateTaskRequest is the body of PUT /api/tasks/:id. Op decides which of
// the remaining fields are read.
type UpdateTaskRequest struct {
	Op string `json:"op" binding:"required"`

	// op=extend
	DueDate         string `json:"due_date"`
	ExtensionReason string `json:"extension_reason"`

	// op=edit
	Fields *CreateTaskRequest `json:"fields"`
}
