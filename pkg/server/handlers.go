package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-scheduler/pkg/constraints"
	"github.com/jakechorley/oncall-scheduler/pkg/core/allocator"
	"github.com/jakechorley/oncall-scheduler/pkg/core/model"
)

const (
	ctxEmail  = "email"
	ctxClaims = "claims"
)

// AuthMiddleware verifies the bearer token and stores the claims on the context
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must use the Bearer scheme"})
			return
		}

		claims, err := VerifyToken(h.secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ctxEmail, claims.Email)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// ReviewModeMiddleware rejects mutating requests while review mode is on
func (h *Handler) ReviewModeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.reviewMode && c.Request.Method != http.MethodGet {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "Review mode is active - changes are not allowed",
				"reviewMode": true,
			})
			return
		}
		c.Next()
	}
}

func claimsFrom(c *gin.Context) *Claims {
	return c.MustGet(ctxClaims).(*Claims)
}

// canAccess reports whether the caller may read or edit a developer's entry
func canAccess(claims *Claims, developer string) bool {
	return claims.IsAdmin() || claims.Developer == developer
}

// Health reports that the server is up
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Login checks the password and returns a signed token
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
		return
	}

	user, ok := findUser(h.users, req.Email)
	if !ok || !CheckPasswordHash(req.Password, user.PasswordHash) {
		h.logger.Info("Failed login attempt", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := CreateToken(h.secret, user, h.now())
	if err != nil {
		h.logger.Error("Failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"email":        user.Email,
		"developer":    user.Developer,
		"isAdmin":      user.IsAdmin(),
	})
}

// Me returns the logged in user
func (h *Handler) Me(c *gin.Context) {
	claims := claimsFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"email":     claims.Email,
		"developer": claims.Developer,
		"isAdmin":   claims.IsAdmin(),
	})
}

// ReviewMode reports whether edits are currently blocked
func (h *Handler) ReviewMode(c *gin.Context) {
	message := "Edit mode active"
	if h.reviewMode {
		message = "Review mode active - no changes allowed"
	}
	c.JSON(http.StatusOK, gin.H{"reviewMode": h.reviewMode, "message": message})
}

// ListDevelopers returns every developer for admins and only the caller otherwise
func (h *Handler) ListDevelopers(c *gin.Context) {
	doc, ok := h.loadDocument(c, "Failed to read developers")
	if !ok {
		return
	}

	summaries := constraints.Summaries(doc)
	claims := claimsFrom(c)
	if claims.IsAdmin() {
		c.JSON(http.StatusOK, summaries)
		return
	}

	for _, s := range summaries {
		if s.Name == claims.Developer {
			c.JSON(http.StatusOK, []model.DeveloperSummary{s})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Developer not found"})
}

// ListConstraints returns the document, filtered to the caller's entry for non-admins
func (h *Handler) ListConstraints(c *gin.Context) {
	doc, ok := h.loadDocument(c, "Failed to read constraints")
	if !ok {
		return
	}

	claims := claimsFrom(c)
	if !claims.IsAdmin() {
		own := make(map[string]*model.DeveloperConstraints, 1)
		if dev, exists := doc.Developers[claims.Developer]; exists {
			own[claims.Developer] = dev
		}
		doc.Developers = own
	}
	c.JSON(http.StatusOK, doc)
}

// GetConstraints returns one developer's restrictions
func (h *Handler) GetConstraints(c *gin.Context) {
	developer := c.Param("developer")
	if !canAccess(claimsFrom(c), developer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	doc, ok := h.loadDocument(c, "Failed to read constraints")
	if !ok {
		return
	}

	dev, exists := doc.Developers[developer]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Developer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"developer":    developer,
		"email":        dev.Email,
		"restrictions": dev.Restrictions,
	})
}

// AddConstraint appends a restriction such as "14/04 Night"
func (h *Handler) AddConstraint(c *gin.Context) {
	developer := c.Param("developer")
	if !canAccess(claimsFrom(c), developer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req struct {
		Restriction string `json:"restriction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Restriction) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restriction is required"})
		return
	}

	restrictions, err := h.store.AddRestriction(developer, strings.TrimSpace(req.Restriction))
	if err != nil {
		h.writeStoreError(c, err, "Failed to add constraint")
		return
	}

	h.logger.Info("Restriction added",
		zap.String("developer", developer),
		zap.String("restriction", req.Restriction),
		zap.String("by", c.GetString(ctxEmail)))
	c.JSON(http.StatusOK, gin.H{"success": true, "developer": developer, "restrictions": restrictions})
}

// DeleteConstraint removes the restriction at the given index
func (h *Handler) DeleteConstraint(c *gin.Context) {
	developer := c.Param("developer")
	if !canAccess(claimsFrom(c), developer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
		return
	}

	restrictions, err := h.store.RemoveRestriction(developer, index)
	if err != nil {
		h.writeStoreError(c, err, "Failed to delete constraint")
		return
	}

	h.logger.Info("Restriction removed",
		zap.String("developer", developer),
		zap.Int("index", index),
		zap.String("by", c.GetString(ctxEmail)))
	c.JSON(http.StatusOK, gin.H{"success": true, "developer": developer, "restrictions": restrictions})
}

// ClearConstraints empties a developer's restrictions
func (h *Handler) ClearConstraints(c *gin.Context) {
	developer := c.Param("developer")
	if !canAccess(claimsFrom(c), developer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := h.store.ClearRestrictions(developer); err != nil {
		h.writeStoreError(c, err, "Failed to clear constraints")
		return
	}

	h.logger.Info("Restrictions cleared",
		zap.String("developer", developer),
		zap.String("by", c.GetString(ctxEmail)))
	c.JSON(http.StatusOK, gin.H{"success": true, "developer": developer, "restrictions": []string{}})
}

// GetMonth returns the period the document targets
func (h *Handler) GetMonth(c *gin.Context) {
	doc, ok := h.loadDocument(c, "Failed to read month")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": doc.Month, "year": doc.Year})
}

// UpdateMonth changes the target period. Admin only.
func (h *Handler) UpdateMonth(c *gin.Context) {
	if !claimsFrom(c).IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin only"})
		return
	}

	var req struct {
		Month int `json:"month"`
		Year  int `json:"year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.store.SetPeriod(req.Month, req.Year)
	if err != nil {
		h.writeStoreError(c, err, "Failed to update month")
		return
	}

	h.logger.Info("Target period updated",
		zap.Int("month", doc.Month),
		zap.Int("year", doc.Year),
		zap.String("by", c.GetString(ctxEmail)))
	c.JSON(http.StatusOK, gin.H{"success": true, "month": doc.Month, "year": doc.Year})
}

func (h *Handler) loadDocument(c *gin.Context, failure string) (*model.Constraints, bool) {
	doc, err := h.store.Load()
	if err != nil {
		h.logger.Error(failure, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
		return nil, false
	}
	return doc, true
}

// writeStoreError maps store errors onto response codes
func (h *Handler) writeStoreError(c *gin.Context, err error, failure string) {
	switch {
	case errors.Is(err, constraints.ErrDeveloperNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Developer not found"})
	case errors.Is(err, constraints.ErrDuplicateRestriction):
		c.JSON(http.StatusConflict, gin.H{"error": "Restriction already exists"})
	case errors.Is(err, constraints.ErrInvalidIndex):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
	case errors.Is(err, constraints.ErrInvalidMonth):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month (1-12)"})
	case errors.Is(err, allocator.ErrMalformedRestriction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error(failure, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
	}
}
