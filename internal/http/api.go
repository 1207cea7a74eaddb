package http

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users         service.UserService
	tasks         service.TaskService
	issuer        *auth.TokenIssuer
	tokenTTL      time.Duration
	baseURL       string
	staticDir     string
	secureCookies bool
	logger        *logrus.Logger
}

func NewHandler(users service.UserService, tasks service.TaskService, issuer *auth.TokenIssuer, tokenTTL time.Duration, baseURL, staticDir string, logger *logrus.Logger) *Handler {
	return &Handler{
		users:         users,
		tasks:         tasks,
		issuer:        issuer,
		tokenTTL:      tokenTTL,
		baseURL:       baseURL,
		staticDir:     staticDir,
		secureCookies: strings.HasPrefix(baseURL, "https://"),
		logger:        logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		authAPI := api.Group("/auth")
		{
			authAPI.POST("/register", h.register)
			authAPI.POST("/login", h.login)
			authAPI.POST("/logout", h.logout)
			authAPI.GET("/me", h.requireAuth(), h.me)
		}

		tasksAPI := api.Group("/tasks", h.requireAuth())
		{
			tasksAPI.POST("", h.createTask)
			tasksAPI.GET("", h.listTasks)
			tasksAPI.PUT("/:id", h.updateTask)
			tasksAPI.DELETE("/:id", h.deleteTask)
		}

		api.GET("/config", h.getConfig)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	h.registerStatic(router)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// getConfig exposes the externally visible base URL to the browser client.
// The value is resolved once at startup from configuration.
func (h *Handler) getConfig(c *gin.Context) {
	base := h.baseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	c.JSON(http.StatusOK, gin.H{"backendUrl": base})
}

// registerStatic serves the browser client when a static directory is
// configured: /assets for scripts and styles, bare /<page> paths mapped to
// <page>.html, and index.html as the fallback.
func (h *Handler) registerStatic(router *gin.Engine) {
	if h.staticDir == "" {
		return
	}

	router.Static("/assets", filepath.Join(h.staticDir, "assets"))

	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}

		page := strings.Trim(c.Request.URL.Path, "/")
		if page == "" {
			page = "index"
		}
		if !strings.Contains(page, ".") && !strings.Contains(page, "/") {
			file := filepath.Join(h.staticDir, page+".html")
			if _, err := os.Stat(file); err == nil {
				c.File(file)
				return
			}
		}

		index := filepath.Join(h.staticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})
}

// respondError translates service errors into the API's error taxonomy.
// Anything outside the taxonomy is logged and surfaced as a generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
	case errors.Is(err, repository.ErrNotFound):
		// a valid token whose user record no longer exists
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	UserID      string            `json:"user_id"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func taskToResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
}
