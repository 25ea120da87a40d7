package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"program-catalog/internal/auth"
	"program-catalog/internal/cache"
	cerrors "program-catalog/internal/common/errors"
	"program-catalog/internal/config"
	"program-catalog/internal/modulestore"
	"program-catalog/internal/storage"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeUserStore is an in-memory storage.Storage for tests
type fakeUserStore struct {
	users map[string]*storage.User
}

func newFakeUserStore(usernames ...string) *fakeUserStore {
	store := &fakeUserStore{users: make(map[string]*storage.User)}
	for i, username := range usernames {
		store.users[username] = &storage.User{
			ID:       int64(i + 1),
			Username: username,
			Email:    username + "@example.com",
			IsActive: true,
		}
	}
	return store
}

func (f *fakeUserStore) GetUserByUsername(ctx context.Context, username string) (*storage.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, cerrors.NotFoundError("user").WithContext("username", username)
}

func (f *fakeUserStore) CreateUser(ctx context.Context, username, email, password string) (*storage.User, error) {
	user := &storage.User{Username: username, Email: email, IsActive: true}
	f.users[username] = user
	return user, nil
}

func (f *fakeUserStore) ValidateUser(ctx context.Context, username, password string) (*storage.User, error) {
	return f.GetUserByUsername(ctx, username)
}

func (f *fakeUserStore) Health() error { return nil }
func (f *fakeUserStore) Close() error  { return nil }

// fakeCourseStore is an in-memory modulestore.Store for tests
type fakeCourseStore struct {
	courses map[string]*modulestore.CourseDescriptor
	lookups int
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[string]*modulestore.CourseDescriptor)}
}

func (f *fakeCourseStore) addCourse(key string, instructors ...Instructor) {
	info, _ := json.Marshal(instructorInfo{Instructors: instructors})
	f.courses[key] = &modulestore.CourseDescriptor{
		Key:            key,
		InstructorInfo: info,
	}
}

func (f *fakeCourseStore) GetCourse(ctx context.Context, key string) (*modulestore.CourseDescriptor, error) {
	f.lookups++
	if descriptor, ok := f.courses[key]; ok {
		return descriptor, nil
	}
	return nil, nil
}

func (f *fakeCourseStore) Close() error { return nil }

// countingCache wraps a cache and records key activity
type countingCache struct {
	inner cache.Cache
	mu    sync.Mutex
	gets  int
	sets  map[string]int
}

func newCountingCache() *countingCache {
	return &countingCache{
		inner: cache.NewLocalCache(time.Minute, time.Minute),
		sets:  make(map[string]int),
	}
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	c.gets++
	c.mu.Unlock()
	return c.inner.Get(ctx, key)
}

func (c *countingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.sets[key]++
	c.mu.Unlock()
	return c.inner.Set(ctx, key, value, ttl)
}

func (c *countingCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *countingCache) setCount(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets[key]
}

func (c *countingCache) touched() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets > 0 || len(c.sets) > 0
}

// testEnv wires a catalog service against a fake catalog API server
type testEnv struct {
	service     *Service
	integration *config.CatalogIntegration
	users       *fakeUserStore
	courses     *fakeCourseStore
	cache       *countingCache
	server      *httptest.Server
	mu          sync.Mutex
	requests    []*http.Request
}

// catalogHandler serves canned payloads keyed by URL path
type catalogHandler struct {
	env      *testEnv
	payloads map[string]interface{}
}

func (h *catalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.env.mu.Lock()
	clone := r.Clone(r.Context())
	h.env.requests = append(h.env.requests, clone)
	h.env.mu.Unlock()

	payload, ok := h.payloads[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		panic(err)
	}
}

func newTestEnv(t *testing.T, payloads map[string]interface{}) *testEnv {
	t.Helper()

	env := &testEnv{
		users:   newFakeUserStore("catalog_service_worker"),
		courses: newFakeCourseStore(),
		cache:   newCountingCache(),
	}

	env.server = httptest.NewServer(&catalogHandler{env: env, payloads: payloads})
	t.Cleanup(env.server.Close)

	env.integration = &config.CatalogIntegration{
		Enabled:         true,
		InternalAPIURL:  env.server.URL,
		ServiceUsername: "catalog_service_worker",
		CacheTTL:        time.Minute,
		CacheKeyPrefix:  "catalog.api.data",
		TokenExpiry:     time.Minute,
	}

	builder := auth.NewTokenBuilder(testSecret, "program-catalog-test")
	env.service = New(
		func() *config.CatalogIntegration { return env.integration },
		env.users,
		env.courses,
		env.cache,
		builder,
		env.server.Client(),
		nil,
	)

	return env
}

func (e *testEnv) requestCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.requests)
}

func (e *testEnv) lastRequest(t *testing.T) *http.Request {
	t.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	require.NotEmpty(t, e.requests)
	return e.requests[len(e.requests)-1]
}

// listPage wraps results in the catalog's pagination envelope
func listPage(next string, results ...interface{}) map[string]interface{} {
	if results == nil {
		results = []interface{}{}
	}
	return map[string]interface{}{
		"count":    len(results),
		"next":     next,
		"previous": "",
		"results":  results,
	}
}

func testProgram(uuid, slug, typeName string, courses ...Course) Program {
	return Program{
		UUID:          uuid,
		Title:         "Program " + uuid,
		MarketingSlug: slug,
		Type:          typeName,
		Courses:       courses,
	}
}
