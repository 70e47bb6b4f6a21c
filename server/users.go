package server

import (
	"errors"
	"net/http"

	"github.com/example/glowmart/pkg/models"
	"github.com/example/glowmart/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to fetch users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"users": []models.User{},
			"error": "Gagal mengambil data user",
		})
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type updateUserRequest struct {
	ID       string  `json:"id"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

func (s *Server) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID user wajib"})
		return
	}
	if req.Role != nil && !models.ValidRole(*req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role tidak valid"})
		return
	}
	// An admin may not change their own role or active flag.
	if actor := c.GetHeader("X-User-ID"); actor != "" && actor == req.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tidak dapat mengubah akun sendiri"})
		return
	}

	err := s.users.Update(c.Request.Context(), req.ID, req.Role, req.IsActive)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User tidak ditemukan"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to update user", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) deleteUser(c *gin.Context) {
	var req deleteRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID user wajib"})
		return
	}
	if actor := c.GetHeader("X-User-ID"); actor != "" && actor == req.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tidak dapat menghapus akun sendiri"})
		return
	}

	err := s.users.Delete(c.Request.Context(), req.ID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User tidak ditemukan"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to delete user", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal hapus user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
