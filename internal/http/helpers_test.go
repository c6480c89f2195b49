package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/incredible-trails/trips-service/internal/domain"
	api "github.com/incredible-trails/trips-service/internal/http"
	"github.com/incredible-trails/trips-service/internal/queue"
	"github.com/incredible-trails/trips-service/internal/repo"
)

const testJWTSecret = "handler-test-secret"

// fakeStore is an in-memory api.Store. It enforces email uniqueness under
// its own lock, so the concurrent-registration test exercises the same
// one-winner guarantee the Mongo unique index provides.
type fakeStore struct {
	mu    sync.Mutex
	users map[string]domain.User
	plans []domain.Plan

	createUserCalls int
	createPlanCalls int
	listPlanCalls   int

	pingErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]domain.User)}
}

func (f *fakeStore) CreateUser(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createUserCalls++
	email := repo.NormalizeEmail(u.Email)
	if _, ok := f.users[email]; ok {
		return repo.ErrEmailExists
	}
	u.ID = primitive.NewObjectID()
	u.Email = email
	u.CreatedAt = time.Now().UTC()
	f.users[email] = *u
	return nil
}

func (f *fakeStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[repo.NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

func (f *fakeStore) CreatePlan(ctx context.Context, p *domain.Plan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createPlanCalls++
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	f.plans = append(f.plans, *p)
	return nil
}

func (f *fakeStore) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listPlanCalls++
	return append([]domain.Plan{}, f.plans...), nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.pingErr }

func newTestRouter(t *testing.T, store api.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	// bcrypt.MinCost is 4; production cost would make these tests crawl
	h := api.NewHandler(store, queue.NewNoop(), zap.NewNop(), testJWTSecret, 7, 4)
	return api.NewRouter(h, nil, 0, zap.NewNop())
}

var errPingDown = errors.New("mongo down")

// mustToken registers a throwaway user and returns its bearer token.
func mustToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := do(r, "POST", "/api/register",
		`{"email":"traveler@example.com","password":"StrongP@ss1","name":"T"}`, nil)
	if w.Code != 200 {
		t.Fatalf("register: code=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("token parse: %v; body=%s", err, w.Body.String())
	}
	return resp.Token
}

func do(r *gin.Engine, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
