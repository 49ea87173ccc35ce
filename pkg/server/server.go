package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/pkg/core/model"
)

// ConstraintsStore is the document store behind the API
type ConstraintsStore interface {
	Load() (*model.Constraints, error)
	AddRestriction(developer, entry string) ([]string, error)
	RemoveRestriction(developer string, index int) ([]string, error)
	ClearRestrictions(developer string) error
	SetPeriod(month, year int) (*model.Constraints, error)
}

// Options configures the API
type Options struct {
	Users      []model.User
	Secret     []byte
	ReviewMode bool
}

// Handler contains dependencies for the route handlers
type Handler struct {
	store      ConstraintsStore
	users      []model.User
	secret     []byte
	reviewMode bool
	logger     *zap.Logger
	now        func() time.Time
}

// NewHandler creates the route handlers
func NewHandler(store ConstraintsStore, opts Options, logger *zap.Logger) *Handler {
	return &Handler{
		store:      store,
		users:      opts.Users,
		secret:     opts.Secret,
		reviewMode: opts.ReviewMode,
		logger:     logger,
		now:        time.Now,
	}
}

// New builds the gin engine with every route registered
func New(store ConstraintsStore, opts Options, logger *zap.Logger) *gin.Engine {
	return NewHandler(store, opts, logger).Routes()
}

// Routes registers the handlers on a fresh engine
func (h *Handler) Routes() *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(h.logger), gin.Recovery())

	r.GET("/health", h.Health)

	authGroup := r.Group("/api/auth")
	authGroup.POST("/login", h.Login)
	authGroup.GET("/me", h.AuthMiddleware(), h.Me)

	api := r.Group("/api", h.AuthMiddleware())
	api.GET("/review-mode", h.ReviewMode)
	api.GET("/developers", h.ListDevelopers)
	api.GET("/month", h.GetMonth)
	api.POST("/month", h.UpdateMonth)

	cons := api.Group("/constraints", h.ReviewModeMiddleware())
	cons.GET("", h.ListConstraints)
	cons.GET("/:developer", h.GetConstraints)
	cons.POST("/:developer", h.AddConstraint)
	cons.DELETE("/:developer", h.ClearConstraints)
	cons.DELETE("/:developer/:index", h.DeleteConstraint)

	return r
}

// RequestLogger logs each request once it completes
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if email := c.GetString(ctxEmail); email != "" {
			fields = append(fields, zap.String("user", email))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("Request failed", fields...)
		case c.Writer.Status() >= 400:
			logger.Info("Request rejected", fields...)
		default:
			logger.Debug("Request handled", fields...)
		}
	}
}
