package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domcategory "example.com/catalog-dashboard/internal/domain/category"
	domproduct "example.com/catalog-dashboard/internal/domain/product"
	domprofile "example.com/catalog-dashboard/internal/domain/profile"
	domuser "example.com/catalog-dashboard/internal/domain/user"
	"example.com/catalog-dashboard/internal/infra/security"
	authuc "example.com/catalog-dashboard/internal/usecase/auth"
	categoryuc "example.com/catalog-dashboard/internal/usecase/category"
	prefsuc "example.com/catalog-dashboard/internal/usecase/prefs"
	productuc "example.com/catalog-dashboard/internal/usecase/product"
	useruc "example.com/catalog-dashboard/internal/usecase/user"
)

type mockProductRepository struct {
	products map[int64]*domproduct.Product
	links    map[int64][]int64
	nextID   int64
	clock    time.Time
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[int64]*domproduct.Product),
		links:    make(map[int64][]int64),
		nextID:   1,
		clock:    time.Now(),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	p.ID = m.nextID
	m.nextID++
	m.clock = m.clock.Add(time.Second)
	p.CreatedAt = m.clock
	p.UpdatedAt = m.clock
	m.products[p.ID] = p
	return p, nil
}

func (m *mockProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	if _, ok := m.products[p.ID]; !ok {
		return nil, domproduct.ErrProductNotFound
	}
	p.UpdatedAt = time.Now()
	m.products[p.ID] = p
	return p, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return domproduct.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	if p, ok := m.products[id]; ok {
		cloned := *p
		cloned.CategoryIDs = m.links[id]
		return &cloned, nil
	}
	return nil, domproduct.ErrProductNotFound
}

func (m *mockProductRepository) List(ctx context.Context, scope domproduct.Scope, preds []domproduct.Predicate) ([]*domproduct.Product, error) {
	var result []*domproduct.Product
	for _, p := range m.products {
		if scope.OwnerID != nil && (p.OwnerID == nil || *p.OwnerID != *scope.OwnerID) {
			continue
		}
		if scope.PublicOnly && !p.IsPublic {
			continue
		}
		if productMatches(p, preds) {
			cloned := *p
			result = append(result, &cloned)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockProductRepository) ReplaceCategories(ctx context.Context, productID int64, categoryIDs []int64) error {
	m.links[productID] = categoryIDs
	return nil
}

func productMatches(p *domproduct.Product, preds []domproduct.Predicate) bool {
	for _, pred := range preds {
		switch pr := pred.(type) {
		case domproduct.TextContains:
			needle := strings.ToLower(pr.Value)
			hit := false
			for _, f := range pr.Fields {
				hay := p.Description
				if f == domproduct.FieldName {
					hay = p.Name
				}
				if strings.Contains(strings.ToLower(hay), needle) {
					hit = true
				}
			}
			if !hit {
				return false
			}
		case domproduct.Equals:
			if p.IsPublic != pr.Value.(bool) {
				return false
			}
		case domproduct.Range:
			bound := pr.Min
			if bound == "" {
				bound = pr.Max
			}
			var cmp int
			if pr.Field == domproduct.FieldPrice {
				cmp = p.Price.Cmp(decimal.RequireFromString(bound))
			} else {
				b, _ := strconv.ParseInt(bound, 10, 64)
				switch {
				case p.Stock < b:
					cmp = -1
				case p.Stock > b:
					cmp = 1
				}
			}
			if pr.Min != "" && cmp < 0 {
				return false
			}
			if pr.Max != "" && cmp > 0 {
				return false
			}
		}
	}
	return true
}

type mockUserRepository struct {
	users  map[int64]*domuser.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*domuser.User), nextID: 1}
}

func (m *mockUserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, domuser.ErrEmailAlreadyUsed
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return u, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domuser.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domuser.ErrUserNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	if _, ok := m.users[u.ID]; !ok {
		return nil, domuser.ErrUserNotFound
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return domuser.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

type mockProfileRepository struct {
	profiles map[int64]*domprofile.Profile
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{profiles: make(map[int64]*domprofile.Profile)}
}

func (m *mockProfileRepository) Create(ctx context.Context, p *domprofile.Profile) (*domprofile.Profile, error) {
	m.profiles[p.UserID] = p
	return p, nil
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domprofile.Profile, error) {
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return nil, domprofile.ErrProfileNotFound
}

func (m *mockProfileRepository) Update(ctx context.Context, p *domprofile.Profile) (*domprofile.Profile, error) {
	m.profiles[p.UserID] = p
	return p, nil
}

type mockCategoryRepository struct {
	categories map[int64]*domcategory.Category
	nextID     int64
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[int64]*domcategory.Category), nextID: 1}
}

func (m *mockCategoryRepository) Create(ctx context.Context, c *domcategory.Category) (*domcategory.Category, error) {
	for _, existing := range m.categories {
		if existing.Slug == c.Slug {
			return nil, domcategory.ErrCategorySlugExists
		}
	}
	c.ID = m.nextID
	m.nextID++
	m.categories[c.ID] = c
	return c, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, c *domcategory.Category) (*domcategory.Category, error) {
	if _, ok := m.categories[c.ID]; !ok {
		return nil, domcategory.ErrCategoryNotFound
	}
	m.categories[c.ID] = c
	return c, nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.categories[id]; !ok {
		return domcategory.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*domcategory.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, domcategory.ErrCategoryNotFound
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domcategory.Category, error) {
	var result []*domcategory.Category
	for _, c := range m.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type memorySessionStore struct {
	filters  map[string]domproduct.FilterState
	themes   map[string]string
	viewMode map[string]string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{
		filters:  make(map[string]domproduct.FilterState),
		themes:   make(map[string]string),
		viewMode: make(map[string]string),
	}
}

func (m *memorySessionStore) Filters(ctx context.Context, sid string) (*domproduct.FilterState, error) {
	if f, ok := m.filters[sid]; ok {
		return &f, nil
	}
	return nil, nil
}

func (m *memorySessionStore) SetFilters(ctx context.Context, sid string, state domproduct.FilterState) error {
	m.filters[sid] = state
	return nil
}

func (m *memorySessionStore) ClearFilters(ctx context.Context, sid string) error {
	delete(m.filters, sid)
	return nil
}

func (m *memorySessionStore) Theme(ctx context.Context, sid string) (string, error) {
	return m.themes[sid], nil
}

func (m *memorySessionStore) SetTheme(ctx context.Context, sid, theme string) error {
	m.themes[sid] = theme
	return nil
}

func (m *memorySessionStore) ViewMode(ctx context.Context, sid string) (string, error) {
	return m.viewMode[sid], nil
}

func (m *memorySessionStore) SetViewMode(ctx context.Context, sid, mode string) error {
	m.viewMode[sid] = mode
	return nil
}

func (m *memorySessionStore) Flush(ctx context.Context, sid string) error {
	delete(m.filters, sid)
	delete(m.themes, sid)
	delete(m.viewMode, sid)
	return nil
}

// testEnv wires the whole API against in-memory backends, with real
// bcrypt and JWT so the auth flow is exercised end to end.
type testEnv struct {
	router   chi.Router
	products *mockProductRepository
	users    *mockUserRepository
	profiles *mockProfileRepository
	sessions *memorySessionStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	products := newMockProductRepository()
	users := newMockUserRepository()
	profiles := newMockProfileRepository()
	categories := newMockCategoryRepository()
	sessions := newMemorySessionStore()

	hasher := security.NewBcryptHasher(4)
	tokens := security.NewJWTService("test-secret", time.Hour)

	api := NewAPI(Dependencies{
		AuthService:     authuc.NewService(users, profiles, sessions, hasher, tokens),
		UserService:     useruc.NewService(users),
		ProductService:  productuc.NewService(products),
		CategoryService: categoryuc.NewService(categories),
		PrefsService:    prefsuc.NewService(sessions, profiles),
		Sessions:        sessions,
		TokenService:    tokens,
	})

	return &testEnv{
		router:   api.Router(),
		products: products,
		users:    users,
		profiles: profiles,
		sessions: sessions,
	}
}

type call struct {
	method string
	path   string
	body   any
	token  string
	sid    string
}

func (e *testEnv) do(t *testing.T, c call) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if c.body != nil {
		raw, err := json.Marshal(c.body)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(c.method, c.path, body)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.sid != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.sid})
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

// register creates an account and signs it in, returning the token.
func (e *testEnv) register(t *testing.T, username, email, password string) string {
	t.Helper()

	rec := e.do(t, call{method: http.MethodPost, path: "/api/v1/auth/register", body: map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, call{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{
		"email":    email,
		"password": password,
	}})
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeBody(t, rec)["token"].(string)
}
