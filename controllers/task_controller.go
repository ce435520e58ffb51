package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrey156p/taskflow/config"
	"github.com/andrey156p/taskflow/models"
	"github.com/andrey156p/taskflow/services"
)

const (
	taskListCacheKey = "tasks:active"
	taskListCacheTTL = 30 * time.Second
)

// TaskManager is the slice of the lifecycle engine the HTTP layer uses.
type TaskManager interface {
	Create(ctx context.Context, req models.CreateTaskRequest) (uint, error)
	ExtendDueDate(ctx context.Context, id uint, newDueDate, reason string) error
	MarkDone(ctx context.Context, id uint) error
	Archive(ctx context.Context, id uint) error
	Edit(ctx context.Context, id uint, req models.CreateTaskRequest) error
	List(ctx context.Context) ([]models.Task, error)
	ListAll(ctx context.Context) ([]models.Task, error)
}

type TaskController struct {
	svc TaskManager
}

func NewTaskController(svc TaskManager) *TaskController {
	return &TaskController{svc: svc}
}

// respondError maps engine errors onto the HTTP taxonomy. Storage failures
// stay generic on the wire and detailed in the log.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		config.Logger.Errorw("storage operation failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return uint(id), true
}

// invalidateListCache drops the cached list after any mutation so the next
// fetch sees fresh rows.
func invalidateListCache() {
	if config.RedisClient == nil {
		return
	}
	if err := config.RedisClient.Del(context.Background(), taskListCacheKey).Err(); err != nil {
		config.Logger.Warnw("task list cache invalidation failed", "error", err)
	}
}

// List handles GET /api/tasks: the ordered live board, archived rows hidden,
// each task carrying its derived progress percentage.
func (tc *TaskController) List(c *gin.Context) {
	if config.RedisClient != nil {
		if cached, err := config.RedisClient.Get(c.Request.Context(), taskListCacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	tasks, err := tc.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	out := make([]models.TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = models.NewTaskResponse(t, now)
	}

	if config.RedisClient != nil {
		if body, err := json.Marshal(out); err == nil {
			if err := config.RedisClient.Set(c.Request.Context(), taskListCacheKey, body, taskListCacheTTL).Err(); err != nil {
				config.Logger.Warnw("task list cache write failed", "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, out)
}

// Create handles POST /api/tasks.
func (tc *TaskController) Create(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := tc.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateListCache()
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Update handles PUT /api/tasks/:id. The op field picks the operation
// explicitly; the old habit of guessing from which fields were present is
// gone.
func (tc *TaskController) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	switch req.Op {
	case models.OpExtend:
		err = tc.svc.ExtendDueDate(c.Request.Context(), id, req.DueDate, req.ExtensionReason)
	case models.OpDone:
		err = tc.svc.MarkDone(c.Request.Context(), id)
	case models.OpEdit:
		if req.Fields == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "op edit requires fields"})
			return
		}
		err = tc.svc.Edit(c.Request.Context(), id, *req.Fields)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown op"})
		return
	}

	if err != nil {
		respondError(c, err)
		return
	}

	invalidateListCache()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete handles DELETE /api/tasks/:id. The row is archived in place, never
// removed; it keeps showing up in the exported report.
func (tc *TaskController) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := tc.svc.Archive(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	invalidateListCache()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
