package server

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/example/glowmart/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}

	user, err := s.users.FindByUsername(c.Request.Context(), strings.ToLower(req.Username))
	if err != nil {
		s.logger.Error("Login lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Terjadi kesalahan saat login",
		})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Username atau password salah",
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Username atau password salah",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":          user.ID.Hex(),
			"username":    user.Username,
			"fullName":    user.FullName,
			"role":        user.Role,
			"permissions": user.Permissions,
		},
		"message": "Login berhasil",
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Username, email, dan password wajib diisi",
		})
		return
	}

	role := strings.ToLower(req.Role)
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Role tidak valid",
		})
		return
	}

	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Password minimal 6 karakter",
		})
		return
	}

	if !emailPattern.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Format email tidak valid",
		})
		return
	}

	username := strings.ToLower(req.Username)
	email := strings.ToLower(req.Email)
	ctx := c.Request.Context()

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.registerError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Username sudah terdaftar",
		})
		return
	}

	existing, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		s.registerError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Email sudah terdaftar",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.registerError(c, err)
		return
	}

	user := models.User{
		Username:    username,
		Email:       email,
		Password:    string(hash),
		FullName:    req.FullName,
		Role:        role,
		IsActive:    true,
		Permissions: []string{},
	}
	if _, err := s.users.Create(ctx, &user); err != nil {
		s.registerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
	})
}

func (s *Server) registerError(c *gin.Context, err error) {
	s.logger.Error("Registration failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Terjadi kesalahan saat registrasi",
	})
}
