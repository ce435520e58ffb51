package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/andrey156p/taskflow/config"
	"github.com/andrey156p/taskflow/controllers"
	"github.com/andrey156p/taskflow/services"
)

// RegisterRoutes wires the API. There is no per-request auth middleware: the
// login gate is enforced by the client page, per the single-passphrase model.
func RegisterRoutes(r *gin.Engine, conf config.Config, tasks controllers.TaskManager, report *services.ReportService) {
	authController := controllers.NewAuthController(conf)
	taskController := controllers.NewTaskController(tasks)
	exportController := controllers.NewExportController(tasks, report)

	api := r.Group("/api")
	{
		api.POST("/login", authController.Login)
		api.GET("/tasks", taskController.List)
		api.POST("/tasks", taskController.Create)
		api.PUT("/tasks/:id", taskController.Update)
		api.DELETE("/tasks/:id", taskController.Delete)
		api.GET("/export", exportController.Export)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
