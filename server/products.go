package server

import (
	"net/http"

	"github.com/example/glowmart/pkg/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *Server) listProducts(c *gin.Context) {
	if s.cache != nil {
		if products, err := s.cache.GetCatalog(c.Request.Context()); err == nil {
			c.JSON(http.StatusOK, products)
			return
		}
	}

	products, err := s.products.List(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to fetch products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	if s.cache != nil {
		if err := s.cache.CacheCatalog(c.Request.Context(), products); err != nil {
			s.logger.Warn("Failed to cache catalog", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, products)
}

type createProductRequest struct {
	Name        string  `json:"nama"`
	Price       float64 `json:"harga"`
	Image       string  `json:"gambar"`
	Category    string  `json:"kategori"`
	Description string  `json:"deskripsi"`
}

func (s *Server) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}
	if req.Name == "" || req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nama dan harga wajib diisi"})
		return
	}

	exists, err := s.products.ExistsByName(c.Request.Context(), req.Name)
	if err != nil {
		s.logger.Error("Failed to check product name", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu dengan nama tersebut sudah ada"})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Description: req.Description,
	}
	if _, err := s.products.Create(c.Request.Context(), &product); err != nil {
		s.logger.Error("Failed to add product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product"})
		return
	}

	s.invalidateCatalog(c)
	c.JSON(http.StatusOK, product)
}

type updateProductRequest struct {
	ID          string   `json:"id"`
	Name        *string  `json:"nama"`
	Price       *float64 `json:"harga"`
	Image       *string  `json:"gambar"`
	Category    *string  `json:"kategori"`
	Description *string  `json:"deskripsi"`
}

func (s *Server) updateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	fields := bson.M{}
	resp := gin.H{"message": "Menu updated successfully", "id": req.ID}
	if req.Name != nil {
		fields["nama"] = *req.Name
		resp["nama"] = *req.Name
	}
	if req.Price != nil {
		fields["harga"] = *req.Price
		resp["harga"] = *req.Price
	}
	if req.Image != nil {
		fields["gambar"] = *req.Image
		resp["gambar"] = *req.Image
	}
	if req.Category != nil {
		fields["kategori"] = *req.Category
		resp["kategori"] = *req.Category
	}
	if req.Description != nil {
		fields["deskripsi"] = *req.Description
		resp["deskripsi"] = *req.Description
	}

	if err := s.products.Update(c.Request.Context(), req.ID, fields); err != nil {
		s.logger.Error("Failed to update product", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	s.invalidateCatalog(c)
	c.JSON(http.StatusOK, resp)
}

type deleteRequest struct {
	ID string `json:"id"`
}

func (s *Server) deleteProduct(c *gin.Context) {
	var req deleteRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	if err := s.products.Delete(c.Request.Context(), req.ID); err != nil {
		s.logger.Error("Failed to delete product", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	s.invalidateCatalog(c)
	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted successfully", "id": req.ID})
}

func (s *Server) invalidateCatalog(c *gin.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCatalog(c.Request.Context()); err != nil {
		s.logger.Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
}
