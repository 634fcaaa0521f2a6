package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"study-planner/backend/config"
	"study-planner/backend/internal/api/handler"
	"study-planner/backend/internal/repository"
	"study-planner/backend/internal/service"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:  config.ServerConfig{Port: 8080, MaxBodyBytes: 1 << 20},
		Planner: config.PlannerConfig{Timezone: "UTC", CacheTTL: time.Minute, ReminderMinutes: []int{30, 10}},
	}
	logger := zap.NewNop()
	svc, err := service.NewService(cfg, repository.NewRepository(nil), logger)
	if err != nil {
		t.Fatalf("初始化服务失败: %v", err)
	}
	return Setup(cfg, handler.NewHandler(svc), nil, logger)
}

const planBody = `{
  "today": "2026-10-19",
  "courses": [
    {"id": "c-1", "name": "线性代数", "deadline": "2026-10-24", "difficulty": 3, "topics": ["矩阵", "行列式"], "hours_available": 8},
    {"id": "c-2", "name": "英语写作", "deadline": "2026-11-08", "difficulty": 1, "hours_available": 4}
  ]
}`

func TestRouter_Health(t *testing.T) {
	r := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRouter_GeneratePlan(t *testing.T) {
	r := setupRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/plans", strings.NewReader(planBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{`"reference_date":"2026-10-19"`, `"Monday"`, `"线性代数"`} {
		if !strings.Contains(body, want) {
			t.Errorf("response should contain %s", want)
		}
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRouter_ExportICS(t *testing.T) {
	r := setupRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/plans/export/ics", strings.NewReader(planBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.HasPrefix(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Error("expected iCalendar body")
	}
}

func TestRouter_InvalidCourse(t *testing.T) {
	r := setupRouter(t)
	w := httptest.NewRecorder()
	body := `{"today":"2026-10-19","courses":[{"id":"a","name":"A","deadline":"2026-11-01","difficulty":2,"hours_available":3},{"id":"a","name":"B","deadline":"2026-11-01","difficulty":2,"hours_available":3}]}`
	req := httptest.NewRequest("POST", "/api/v1/plans", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("duplicate ids should be rejected with 422, got %d", w.Code)
	}
}
