package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alertd/internal/connection"
	"alertd/internal/controllers"
	"alertd/internal/models"
	"alertd/internal/providers"
	"alertd/internal/structures"
)

// --- minimal mocks for routes test ---

type routeTestLogger struct{}

func (m *routeTestLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Close()                                                  {}

type routeTestCache struct{}

func (m *routeTestCache) Get(_ string) ([]byte, bool) { return nil, false }
func (m *routeTestCache) Set(_ string, _ []byte)      {}

type routeTestService struct{}

func (m *routeTestService) Run(_ context.Context, _ <-chan *models.AlertEvent) {}
func (m *routeTestService) OnEvent(_ *models.AlertEvent)                       {}
func (m *routeTestService) History() []models.AlertRecord                      { return nil }
func (m *routeTestService) UnreadCount() int                                   { return 0 }
func (m *routeTestService) HistorySize() int                                   { return 0 }
func (m *routeTestService) TodayCount() int                                    { return 0 }
func (m *routeTestService) MarkRead(_ string)                                  {}
func (m *routeTestService) MarkUnread(_ string)                                {}
func (m *routeTestService) MarkAllRead()                                       {}
func (m *routeTestService) Delete(_ string)                                    {}
func (m *routeTestService) ClearHistory()                                      {}
func (m *routeTestService) Admitted() <-chan models.AlertRecord                { return nil }
func (m *routeTestService) Generation() uint64                                 { return 0 }

type routeTestConn struct{}

func (m *routeTestConn) Connect() error                    { return nil }
func (m *routeTestConn) Disconnect()                       {}
func (m *routeTestConn) Subscribe(_ []string) error        { return nil }
func (m *routeTestConn) Unsubscribe(_ []string) error      { return nil }
func (m *routeTestConn) State() connection.State           { return connection.Disconnected }
func (m *routeTestConn) Events() <-chan *models.AlertEvent { return nil }
func (m *routeTestConn) LatestScores() map[string]int      { return nil }

func newRouteTestController() *controllers.ApiController {
	return controllers.NewApiController(&routeTestLogger{}, &routeTestService{}, &routeTestConn{}, &routeTestCache{})
}

func TestInitRoutes_RegistersNineRoutes(t *testing.T) {
	router := InitRoutes(newRouteTestController(), &structures.Config{})
	routes := router.GetRoutes()

	require.Len(t, routes, 9)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/alerts")
	assert.Contains(t, urls, "/alerts/unread")
	assert.Contains(t, urls, "/scores")
	assert.Contains(t, urls, "/status")
	assert.Contains(t, urls, "/alerts/mark_read")
	assert.Contains(t, urls, "/alerts/mark_unread")
	assert.Contains(t, urls, "/alerts/read_all")
	assert.Contains(t, urls, "/alerts/delete")
	assert.Contains(t, urls, "/alerts/clear")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	router := InitRoutes(newRouteTestController(), &structures.Config{})

	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	// GET /alerts with POST should fail
	req := httptest.NewRequest(http.MethodPost, "/alerts", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// POST /alerts/read_all with GET should fail
	req = httptest.NewRequest(http.MethodGet, "/alerts/read_all", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
