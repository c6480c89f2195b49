package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/incredible-trails/trips-service/internal/domain"
	"github.com/incredible-trails/trips-service/internal/queue"
	"github.com/incredible-trails/trips-service/internal/repo"
	"github.com/incredible-trails/trips-service/internal/security"
)

// Store is what the handlers need from persistence. *repo.Store satisfies
// it; tests inject fakes.
type Store interface {
	CreateUser(ctx context.Context, u *domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreatePlan(ctx context.Context, p *domain.Plan) error
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	Ping(ctx context.Context) error
}

type Handler struct {
	Store      Store
	Events     queue.Publisher
	Log        *zap.Logger
	JWTSecret  string
	AccessTTL  time.Duration
	BcryptCost int
}

func NewHandler(store Store, pub queue.Publisher, logger *zap.Logger, jwtSecret string, accessTTLDays, bcryptCost int) *Handler {
	return &Handler{
		Store:      store,
		Events:     pub,
		Log:        logger,
		JWTSecret:  jwtSecret,
		AccessTTL:  time.Duration(accessTTLDays) * 24 * time.Hour,
		BcryptCost: bcryptCost,
	}
}

// publish fires an event without holding up the response. The request
// context is already done by then, so a fresh one is used.
func (h *Handler) publish(key string, event any, reqID string) {
	go func() {
		if err := h.Events.Publish(context.Background(), queue.Exchange, key, event, reqID); err != nil {
			h.Log.Warn("event publish failed", zap.String("key", key), zap.Error(err))
		}
	}()
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResp struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    userPayload `json:"user"`
}

// Register godoc
// @Summary Register user
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerReq true "email, password, name(optional)"
// @Success 200 {object} authResp
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/register [post]
func (h *Handler) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := repo.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
		return
	}
	if !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}

	hash, err := security.HashPassword(in.Password, h.BcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	u := &domain.User{Email: email, PasswordHash: hash, Name: strings.TrimSpace(in.Name)}

	// Uniqueness is enforced by the store's unique index, so two racing
	// registrations for the same email yield one success and one conflict.
	if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
		if err == repo.ErrEmailExists {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		h.Log.Error("create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	tok, err := security.MakeAccess(h.JWTSecret, u.ID.Hex(), u.Email, h.AccessTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	h.publish(queue.KeyUserRegistered,
		queue.UserRegistered{UserID: u.ID, Email: u.Email, Name: u.Name},
		c.GetString(RequestIDKey))

	c.JSON(http.StatusOK, authResp{
		Message: "Registered",
		Token:   tok,
		User:    userPayload{ID: u.ID.Hex(), Email: u.Email, Name: u.Name},
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "email, password"
// @Success 200 {object} authResp
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := repo.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
		return
	}

	u, err := h.Store.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		h.Log.Error("find user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	// Unknown email and wrong password answer identically.
	if u == nil || !security.CheckPassword(u.PasswordHash, in.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tok, err := security.MakeAccess(h.JWTSecret, u.ID.Hex(), u.Email, h.AccessTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	h.publish(queue.KeyUserLoggedIn,
		queue.UserLoggedIn{UserID: u.ID, Email: u.Email},
		c.GetString(RequestIDKey))

	c.JSON(http.StatusOK, authResp{
		Message: "Logged in",
		Token:   tok,
		User:    userPayload{ID: u.ID.Hex(), Email: u.Email, Name: u.Name},
	})
}

type createPlanReq struct {
	Destination string   `json:"destination"`
	Budget      *float64 `json:"budget"`
	Weather     string   `json:"weather"`
	Itinerary   string   `json:"itinerary"`
}

type planResp struct {
	Message string      `json:"message"`
	Plan    domain.Plan `json:"plan"`
}

// CreatePlan godoc
// @Summary Create plan
// @Tags plans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body createPlanReq true "destination, budget/weather/itinerary(optional)"
// @Success 200 {object} planResp
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/plans [post]
func (h *Handler) CreatePlan(c *gin.Context) {
	var in createPlanReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(in.Destination) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Destination required"})
		return
	}

	p := &domain.Plan{
		Destination: strings.TrimSpace(in.Destination),
		Budget:      in.Budget,
		Weather:     in.Weather,
		Itinerary:   in.Itinerary,
	}
	if err := h.Store.CreatePlan(c.Request.Context(), p); err != nil {
		h.Log.Error("create plan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan creation failed"})
		return
	}

	h.publish(queue.KeyPlanCreated,
		queue.PlanCreated{PlanID: p.ID, Destination: p.Destination},
		c.GetString(RequestIDKey))

	c.JSON(http.StatusOK, planResp{Message: "Plan created", Plan: *p})
}

// ListPlans godoc
// @Summary List all plans
// @Tags plans
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Plan
// @Failure 401 {object} map[string]string
// @Router /api/plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.Store.ListPlans(c.Request.Context())
	if err != nil {
		h.Log.Error("list plans", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
