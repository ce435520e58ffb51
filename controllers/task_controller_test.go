package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/andrey156p/taskflow/config"
	"github.com/andrey156p/taskflow/models"
	"github.com/andrey156p/taskflow/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Logger = zap.NewNop().Sugar()
	m.Run()
}

// mockTaskManager implements TaskManager with overridable per-method funcs.
type mockTaskManager struct {
	CreateFunc        func(ctx context.Context, req models.CreateTaskRequest) (uint, error)
	ExtendDueDateFunc func(ctx context.Context, id uint, newDueDate, reason string) error
	MarkDoneFunc      func(ctx context.Context, id uint) error
	ArchiveFunc       func(ctx context.Context, id uint) error
	EditFunc          func(ctx context.Context, id uint, req models.CreateTaskRequest) error
	ListFunc          func(ctx context.Context) ([]models.Task, error)
	ListAllFunc       func(ctx context.Context) ([]models.Task, error)
}

func (m *mockTaskManager) Create(ctx context.Context, req models.CreateTaskRequest) (uint, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return 1, nil
}

func (m *mockTaskManager) ExtendDueDate(ctx context.Context, id uint, newDueDate, reason string) error {
	if m.ExtendDueDateFunc != nil {
		return m.ExtendDueDateFunc(ctx, id, newDueDate, reason)
	}
	return nil
}

func (m *mockTaskManager) MarkDone(ctx context.Context, id uint) error {
	if m.MarkDoneFunc != nil {
		return m.MarkDoneFunc(ctx, id)
	}
	return nil
}

func (m *mockTaskManager) Archive(ctx context.Context, id uint) error {
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, id)
	}
	return nil
}

func (m *mockTaskManager) Edit(ctx context.Context, id uint, req models.CreateTaskRequest) error {
	if m.EditFunc != nil {
		return m.EditFunc(ctx, id, req)
	}
	return nil
}

func (m *mockTaskManager) List(ctx context.Context) ([]models.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockTaskManager) ListAll(ctx context.Context) ([]models.Task, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func newTestRouter(mock *mockTaskManager) *gin.Engine {
	r := gin.New()
	tc := NewTaskController(mock)
	ec := NewExportController(mock, services.NewReportService())

	api := r.Group("/api")
	api.GET("/tasks", tc.List)
	api.POST("/tasks", tc.Create)
	api.PUT("/tasks/:id", tc.Update)
	api.DELETE("/tasks/:id", tc.Delete)
	api.GET("/export", ec.Export)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList_ReturnsProgress(t *testing.T) {
	mock := &mockTaskManager{
		ListFunc: func(ctx context.Context) ([]models.Task, error) {
			return []models.Task{
				{ID: 1, Description: "pour foundation", StartDate: "2000-01-01", DueDate: "2000-01-10",
					Status: models.StatusInProgress, Priority: models.PriorityNormal},
			}, nil
		},
	}
	r := newTestRouter(mock)

	w := doJSON(t, r, http.MethodGet, "/api/tasks", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var out []models.TaskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 task, got %d", len(out))
	}
	// the window ended decades ago, so progress is pinned at 100
	if out[0].Progress != 100 {
		t.Errorf("expected progress 100, got %d", out[0].Progress)
	}
}

func TestCreate_ReturnsID(t *testing.T) {
	var captured models.CreateTaskRequest
	mock := &mockTaskManager{
		CreateFunc: func(ctx context.Context, req models.CreateTaskRequest) (uint, error) {
			captured = req
			return 7, nil
		},
	}
	r := newTestRouter(mock)

	w := doJSON(t, r, http.MethodPost, "/api/tasks", models.CreateTaskRequest{
		Description: "pour foundation",
		StartDate:   "2024-01-01",
		DueDate:     "2024-01-10",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]uint
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["id"] != 7 {
		t.Errorf("expected id 7, got %d", resp["id"])
	}
	if captured.Description != "pour foundation" {
		t.Errorf("request did not reach the service: %+v", captured)
	}
}

func TestCreate_ValidationErrorMapsTo400(t *testing.T) {
	mock := &mockTaskManager{
		CreateFunc: func(ctx context.Context, req models.CreateTaskRequest) (uint, error) {
			return 0, services.ErrValidation
		},
	}
	r := newTestRouter(mock)

	w := doJSON(t, r, http.MethodPost, "/api/tasks", models.CreateTaskRequest{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdate_DispatchesByOp(t *testing.T) {
	var gotExtend, gotDone, gotEdit bool
	mock := &mockTaskManager{
		ExtendDueDateFunc: func(ctx context.Context, id uint, newDueDate, reason string) error {
			gotExtend = true
			if id != 5 || newDueDate != "2024-02-01" || reason != "supplier delay" {
				t.Errorf("extend args wrong: id=%d date=%q reason=%q", id, newDueDate, reason)
			}
			return nil
		},
		MarkDoneFunc: func(ctx context.Context, id uint) error {
			gotDone = true
			return nil
		},
		EditFunc: func(ctx context.Context, id uint, req models.CreateTaskRequest) error {
			gotEdit = true
			return nil
		},
	}
	r := newTestRouter(mock)

	w := doJSON(t, r, http.MethodPut, "/api/tasks/5", models.UpdateTaskRequest{
		Op:              models.OpExtend,
		DueDate:         "2024-02-01",
		ExtensionReason: "supplier delay",
	})
	if w.Code != http.StatusOK || !gotExtend {
		t.Errorf("extend dispatch failed: code=%d called=%v", w.Code, gotExtend)
	}

	w = doJSON(t, r, http.MethodPut, "/api/tasks/5", models.UpdateTaskRequest{Op: models.OpDone})
	if w.Code != http.StatusOK || !gotDone {
		t.Errorf("done dispatch failed: code=%d called=%v", w.Code, gotDone)
	}

	w = doJSON(t, r, http.MethodPut, "/api/tasks/5", models.UpdateTaskRequest{
		Op:     models.OpEdit,
		Fields: &models.CreateTaskRequest{Description: "x", StartDate: "2024-01-01", DueDate: "2024-01-10"},
	})
	if w.Code != http.StatusOK || !gotEdit {
		t.Errorf("edit dispatch failed: code=%d called=%v", w.Code, gotEdit)
	}
}

func TestUpdate_RejectsUnknownOpAndMissingFields(t *testing.T) {
	r := newTestRouter(&mockTaskManager{})

	w := doJSON(t, r, http.MethodPut, "/api/tasks/5", map[string]string{"op": "complete"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown op: expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/api/tasks/5", map[string]string{"op": "edit"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("edit without fields: expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/api/tasks/abc", map[string]string{"op": "done"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}
}

func TestUpdate_NotFoundMapsTo404(t *testing.T) {
	mock := &mockTaskManager{
		MarkDoneFunc: func(ctx context.Context, id uint) error {
			return services.ErrTaskNotFound
		},
	}
	r := newTestRouter(mock)

	w := doJSON(t, r, http.MethodPut, "/api/tasks/99", models.UpdateTaskRequest{Op: models.OpDone})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDelete_Archives(t *testing.T) {
	var archivedID uint
	mock := &mockTaskManager{
		ArchiveFunc: func(ctx context.Context, id uint) error {
			archivedID = id
			return nil
		},
	}
	r := newTestRouter(mock)

	w := doJSON(t, r, http.MethodDelete, "/api/tasks/3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if archivedID != 3 {
		t.Errorf("expected Archive(3), got %d", archivedID)
	}

	var resp map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp["success"] {
		t.Error("expected success true")
	}
}

func TestExport_StreamsWorkbook(t *testing.T) {
	mock := &mockTaskManager{
		ListAllFunc: func(ctx context.Context) ([]models.Task, error) {
			return []models.Task{
				{ID: 1, Description: "pour foundation", StartDate: "2024-01-01", DueDate: "2024-01-08",
					Status: models.StatusArchived, Priority: models.PriorityNormal},
			}, nil
		},
	}
	r := newTestRouter(mock)

	w := doJSON(t, r, http.MethodGet, "/api/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != services.ReportMIME {
		t.Errorf("unexpected content type %q", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") || !strings.Contains(cd, services.ReportFilename) {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("expected non-empty workbook body")
	}
}
