package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/session"
	"github.com/noah-isme/journal-portal/pkg/logger"
)

type stubAuth struct{}

func (stubAuth) Login(_ context.Context, role models.Role, _ interface{}) (*models.LoginResponse, error) {
	return &models.LoginResponse{Token: "tok", User: models.Identity{ID: "u1", Name: "User", Role: role}}, nil
}

func (stubAuth) Verify(context.Context, string) error { return nil }

type singleStore struct{ store *session.Store }

func (s singleStore) Get(string) *session.Store { return s.store }

type blockingStorage struct {
	*session.MemoryStorage
	gate chan struct{}
}

func (b *blockingStorage) Load(ctx context.Context, clientID string) (session.Persisted, error) {
	select {
	case <-b.gate:
	case <-ctx.Done():
	}
	return b.MemoryStorage.Load(ctx, clientID)
}

func signedIn(t *testing.T, role models.Role) *session.Store {
	t.Helper()
	store := session.NewStore("c1", session.NewMemoryStorage(), stubAuth{}, nil, nil, session.Options{})
	creds := models.Credentials{Email: "user@example.com", Name: "Ivan Ivanov", GroupName: "IS-21", Password: "secret1"}
	_, err := store.Login(context.Background(), role, creds)
	require.NoError(t, err)
	return store
}

func signedOut() *session.Store {
	return session.NewStore("c1", session.NewMemoryStorage(), stubAuth{}, nil, nil, session.Options{})
}

func newRouter(stores StoreProvider, watcher StoreWatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cookies := NewCookieStore(CookieOptions{Name: "portal", Secret: "0123456789abcdef0123456789abcdef", MaxAge: time.Hour}, nil)
	router := gin.New()
	router.Use(ClientInstance(cookies, "portal", stores, watcher, nil))
	return router
}

type recordingWatcher struct {
	mu      sync.Mutex
	watched int
}

func (w *recordingWatcher) Watch(*session.Store) {
	w.mu.Lock()
	w.watched++
	w.mu.Unlock()
}

func TestClientInstanceKeepsIdentityAcrossRequests(t *testing.T) {
	watcher := &recordingWatcher{}
	router := newRouter(singleStore{signedOut()}, watcher)
	router.GET("/whoami", func(c *gin.Context) {
		assert.NotNil(t, StoreFrom(c))
		c.String(http.StatusOK, c.GetString(logger.ClientIDKey))
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, first.Code)
	clientID := first.Body.String()
	require.NotEmpty(t, clientID)
	cookies := first.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	second := httptest.NewRecorder()
	router.ServeHTTP(second, req)
	assert.Equal(t, clientID, second.Body.String())
	assert.Empty(t, second.Result().Cookies(), "known client instances are not re-issued")
	assert.Equal(t, 2, watcher.watched)

	tampered := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	tampered.AddCookie(&http.Cookie{Name: "portal", Value: "forged"})
	third := httptest.NewRecorder()
	router.ServeHTTP(third, tampered)
	assert.NotEqual(t, clientID, third.Body.String())
}

func TestGuardRedirectsSignedOutAndRemembersPath(t *testing.T) {
	router := newRouter(singleStore{signedOut()}, nil)
	teacher := router.Group("/teacher", Guard(time.Second))
	teacher.GET("/schedule", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/login", func(c *gin.Context) { c.String(http.StatusOK, TakeReturnPath(c)) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teacher/schedule?date=2024-09-03", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?from="+url.QueryEscape("/teacher/schedule?date=2024-09-03"), rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(cookies[len(cookies)-1])
	login := httptest.NewRecorder()
	router.ServeHTTP(login, req)
	assert.Equal(t, "/teacher/schedule?date=2024-09-03", login.Body.String())
}

func TestGuardSendsOtherRolesToTheirRoot(t *testing.T) {
	router := newRouter(singleStore{signedIn(t, models.RoleStudent)}, nil)
	router.Group("/admin", Guard(time.Second)).GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.Group("/student", Guard(time.Second)).GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/student", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardWaitsWhileSessionLoads(t *testing.T) {
	storage := &blockingStorage{MemoryStorage: session.NewMemoryStorage(), gate: make(chan struct{})}
	manager := session.NewManager(storage, stubAuth{}, nil, nil, session.ManagerOptions{})
	defer manager.Close()
	defer close(storage.gate)

	router := newRouter(manager, nil)
	router.Group("/teacher", Guard(1500*time.Millisecond)).GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teacher", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Empty(t, rec.Header().Get("Location"))
}

type fakeLessons struct {
	open      map[string]string
	discarded []string
}

func (f *fakeLessons) OpenLessonID(clientID string) (string, bool) {
	id, ok := f.open[clientID]
	return id, ok
}

func (f *fakeLessons) Discard(clientID string) {
	f.discarded = append(f.discarded, clientID)
	delete(f.open, clientID)
}

func TestLeaveLessonDiscardsOnOtherPages(t *testing.T) {
	lessons := &fakeLessons{open: map[string]string{"c1": "l1"}}
	router := newRouter(singleStore{signedIn(t, models.RoleTeacher)}, nil)
	teacher := router.Group("/teacher", LeaveLesson(lessons))
	teacher.GET("/lesson/:lessonId", func(c *gin.Context) { c.Status(http.StatusOK) })
	teacher.GET("/schedule", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teacher/lesson/l1", nil))
	assert.Empty(t, lessons.discarded)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teacher/schedule", nil))
	assert.Equal(t, []string{"c1"}, lessons.discarded)
}

type recordedRequest struct {
	method, path string
	status       int
}

type fakeObserver struct{ requests []recordedRequest }

func (f *fakeObserver) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method, path, status})
}

func TestMetricsUsesRouteTemplates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &fakeObserver{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.GET("/teacher/lesson/:lessonId", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teacher/lesson/l1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	require.Len(t, observer.requests, 2)
	assert.Equal(t, recordedRequest{http.MethodGet, "/teacher/lesson/:lessonId", http.StatusOK}, observer.requests[0])
	assert.Equal(t, recordedRequest{http.MethodGet, unmatchedRoute, http.StatusNotFound}, observer.requests[1])
}

func TestAuditLogsSuccessfulWrites(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := newRouter(singleStore{signedIn(t, models.RoleAdmin)}, nil)
	admin := router.Group("/admin", Audit(zap.New(core), "admin"))
	admin.GET("/groups", func(c *gin.Context) { c.Status(http.StatusOK) })
	admin.PUT("/groups/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	admin.DELETE("/groups/:id", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/groups", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/admin/groups/g1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/admin/groups/g1", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/admin/groups/:id", fields["route"])
	assert.Equal(t, "g1", fields["resource_id"])
	assert.Equal(t, "u1", fields["user_id"])
}
