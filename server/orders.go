package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/example/glowmart/pkg/models"
	"github.com/example/glowmart/pkg/repository"
	"github.com/example/glowmart/pkg/reporting"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) listTransactions(c *gin.Context) {
	userID := c.Query("userId")

	orders, err := s.orders.List(c.Request.Context(), userID)
	if err != nil {
		s.logger.Error("Failed to fetch transactions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch transactions",
		})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": orders,
	})
}

func (s *Server) createTransaction(c *gin.Context) {
	var order models.Order
	if err := c.BindJSON(&order); err != nil {
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if order.OrderStatus == "" {
		order.OrderStatus = models.StatusPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = "pending"
	}
	if order.OrderDate == "" {
		order.OrderDate = now
	}

	if err := order.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	id, err := s.orders.Create(c.Request.Context(), &order)
	if err != nil {
		s.logger.Error("Failed to save transaction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to save transaction",
		})
		return
	}

	orderNumber := order.OrderNumber
	if orderNumber == "" {
		orderNumber = fmt.Sprintf("ORD-%s", id)
	}

	if s.cache != nil && order.PaymentMethod == models.PaymentQRIS && order.PaymentDetails.QRISReference != "" {
		if err := s.cache.StoreQRISReference(c.Request.Context(), order.PaymentDetails.QRISReference, orderNumber); err != nil {
			s.logger.Warn("Failed to store qris reference", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"orderNumber": orderNumber,
		"id":          id,
	})
}

type updateStatusRequest struct {
	ID          string             `json:"id"`
	OrderStatus models.OrderStatus `json:"orderStatus"`
}

func (s *Server) updateTransactionStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}
	if req.ID == "" || req.OrderStatus == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID dan status wajib diisi"})
		return
	}
	if !req.OrderStatus.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status pesanan tidak valid"})
		return
	}

	order, err := s.orders.Get(c.Request.Context(), req.ID)
	if err != nil {
		s.logger.Error("Failed to load order", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Gagal update status pesanan"})
		return
	}
	if order == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Pesanan tidak ditemukan"})
		return
	}
	if !models.CanTransition(order.OrderStatus, req.OrderStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status pesanan sudah final"})
		return
	}

	if err := s.orders.UpdateStatus(c.Request.Context(), req.ID, req.OrderStatus); err != nil {
		s.logger.Error("Failed to update order status",
			zap.String("id", req.ID),
			zap.String("status", string(req.OrderStatus)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Gagal update status pesanan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) transactionStats(c *gin.Context) {
	filter := repository.StatsFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Kasir:     c.Query("kasir"),
	}
	// Only daily grouping is supported; the period parameter is accepted
	// for compatibility.
	_ = c.Query("period")

	orders, err := s.orders.Range(c.Request.Context(), filter)
	if err != nil {
		s.logger.Error("Failed to fetch stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch stats",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"stats":             reporting.Daily(orders),
		"totalTransactions": len(orders),
	})
}
