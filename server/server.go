package server

import (
	"context"
	"net/http"
	"time"

	"github.com/example/glowmart/pkg/config"
	"github.com/example/glowmart/pkg/models"
	"github.com/example/glowmart/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ProductStore is the catalog persistence boundary.
type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, p *models.Product) (string, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// OrderStore is the transaction persistence boundary.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) (string, error)
	List(ctx context.Context, userID string) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	Range(ctx context.Context, f repository.StatsFilter) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int64) ([]models.Order, error)
}

// UserStore is the account persistence boundary.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) (string, error)
	Update(ctx context.Context, id string, role *string, isActive *bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// Cache is the optional Redis layer. Every cache failure degrades to a
// store read and is never surfaced to clients.
type Cache interface {
	CacheCatalog(ctx context.Context, products []models.Product) error
	GetCatalog(ctx context.Context) ([]models.Product, error)
	InvalidateCatalog(ctx context.Context) error
	StoreQRISReference(ctx context.Context, reference, orderNumber string) error
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	products ProductStore
	orders   OrderStore
	users    UserStore
	cache    Cache
}

func New(cfg *config.Config, logger *zap.Logger, products ProductStore, orders OrderStore, users UserStore, cache Cache) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Server{
		config:   cfg,
		logger:   logger,
		router:   router,
		products: products,
		orders:   orders,
		users:    users,
		cache:    cache,
	}
}

func (s *Server) SetupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	products := s.router.Group("/products")
	{
		products.GET("", s.listProducts)
		products.POST("", s.createProduct)
		products.PUT("", s.updateProduct)
		products.DELETE("", s.deleteProduct)
	}

	transactions := s.router.Group("/transactions")
	{
		transactions.GET("", s.listTransactions)
		transactions.POST("", s.createTransaction)
		transactions.PUT("", s.updateTransactionStatus)
		transactions.GET("/stats", s.transactionStats)
	}

	users := s.router.Group("/users")
	{
		users.GET("", s.listUsers)
		users.PUT("", s.updateUser)
		users.DELETE("", s.deleteUser)
	}

	auth := s.router.Group("/auth")
	{
		auth.POST("/login", s.login)
		auth.POST("/register", s.register)
	}

	s.router.GET("/admin/stats", s.adminStats)
}

func (s *Server) Start() error {
	addr := s.config.Server.Addr()
	s.logger.Info("Storefront API starting", zap.String("address", addr))
	return s.router.Run(addr)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
