package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leonard1379/MyDjangoProject/internal/models"
	"github.com/Leonard1379/MyDjangoProject/internal/utils"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	u, ok := models.FindUser(req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	token, err := utils.GenerateJWTToken(h.jwtSecret, u.ID, u.Username, u.Role)
	if err != nil {
		log.Printf("generate token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
