package server

import (
	"net/http"

	"github.com/example/glowmart/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) adminStats(c *gin.Context) {
	ctx := c.Request.Context()

	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		s.adminStatsError(c, err)
		return
	}
	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		s.adminStatsError(c, err)
		return
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		s.adminStatsError(c, err)
		return
	}
	recent, err := s.orders.Recent(ctx, 5)
	if err != nil {
		s.adminStatsError(c, err)
		return
	}

	recentOrders := make([]gin.H, 0, len(recent))
	for _, order := range recent {
		status := order.OrderStatus
		if status == "" {
			status = models.StatusPending
		}
		recentOrders = append(recentOrders, gin.H{
			"id":     order.ID.Hex(),
			"status": status,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalProducts": totalProducts,
		"totalOrders":   totalOrders,
		"totalUsers":    totalUsers,
		"recentOrders":  recentOrders,
	})
}

func (s *Server) adminStatsError(c *gin.Context, err error) {
	s.logger.Error("Failed to build admin stats", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal mengambil statistik admin"})
}
