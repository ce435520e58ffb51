package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrey156p/taskflow/config"
	"github.com/andrey156p/taskflow/models"
)

// AuthController guards the board behind a single shared passphrase. There is
// no session or token: the client only remembers that login succeeded.
type AuthController struct {
	password string
}

func NewAuthController(conf config.Config) *AuthController {
	if conf.AdminPassword == "" {
		config.Logger.Warnw("ADMIN_PASSWORD is not set, login will always fail")
	}
	return &AuthController{password: conf.AdminPassword}
}

// Login handles POST /api/login. Wrong passwords get a 401 and nothing else:
// no lockout, no rate limit.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	if ac.password == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(ac.password)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
