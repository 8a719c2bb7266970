package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domcategory "example.com/catalog-dashboard/internal/domain/category"
	domproduct "example.com/catalog-dashboard/internal/domain/product"
	domsession "example.com/catalog-dashboard/internal/domain/session"
	domuser "example.com/catalog-dashboard/internal/domain/user"
	authuc "example.com/catalog-dashboard/internal/usecase/auth"
	categoryuc "example.com/catalog-dashboard/internal/usecase/category"
	prefsuc "example.com/catalog-dashboard/internal/usecase/prefs"
	productuc "example.com/catalog-dashboard/internal/usecase/product"
	useruc "example.com/catalog-dashboard/internal/usecase/user"
)

type API struct {
	authSvc     *authuc.Service
	userSvc     *useruc.Service
	productSvc  *productuc.Service
	categorySvc *categoryuc.Service
	prefsSvc    *prefsuc.Service
	sessions    domsession.Store
	tokenSvc    authuc.TokenService
	validator   *validator.Validate
	logger      *zap.Logger
}

type Dependencies struct {
	AuthService     *authuc.Service
	UserService     *useruc.Service
	ProductService  *productuc.Service
	CategoryService *categoryuc.Service
	PrefsService    *prefsuc.Service
	Sessions        domsession.Store
	TokenService    authuc.TokenService
	Logger          *zap.Logger
}

func NewAPI(deps Dependencies) *API {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		authSvc:     deps.AuthService,
		userSvc:     deps.UserService,
		productSvc:  deps.ProductService,
		categorySvc: deps.CategoryService,
		prefsSvc:    deps.PrefsService,
		sessions:    deps.Sessions,
		tokenSvc:    deps.TokenService,
		validator:   validator.New(),
		logger:      logger,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))
	r.Use(a.sessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", a.handleRegister)
		r.Post("/auth/login", a.handleLogin)

		r.Get("/catalog", a.handleCatalog)
		r.Post("/view-mode/{mode}", a.handleSetViewMode)

		r.Group(func(or chi.Router) {
			or.Use(a.optionalAuthMiddleware)
			or.Get("/products/{id}", a.handleGetProduct)
			or.Post("/theme/toggle", a.handleToggleTheme)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(a.authMiddleware)
			pr.Post("/auth/logout", a.handleLogout)

			pr.Get("/me/products", a.handleDashboardProducts)
			pr.Post("/me/products", a.handleCreateProduct)
			pr.Put("/me/products/{id}", a.handleUpdateProduct)
			pr.Delete("/me/products/{id}", a.handleDeleteProduct)

			pr.Get("/me/profile", a.handleGetProfile)
			pr.Put("/me/profile", a.handleUpdateProfile)
			pr.Delete("/me/account", a.handleDeleteAccount)

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", a.handleListCategories)
				cr.Post("/", a.handleCreateCategory)
				cr.Get("/{id}", a.handleGetCategory)
				cr.Put("/{id}", a.handleUpdateCategory)
				cr.Delete("/{id}", a.handleDeleteCategory)
			})
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func mapUser(u *domuser.User) map[string]any {
	return map[string]any{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	}
}

func mapProduct(p *domproduct.Product) map[string]any {
	categoryIDs := p.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []int64{}
	}
	return map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"description":  p.Description,
		"price":        p.Price.StringFixed(2),
		"stock":        p.Stock,
		"is_public":    p.IsPublic,
		"category_ids": categoryIDs,
		"created_at":   p.CreatedAt,
		"updated_at":   p.UpdatedAt,
	}
}

func mapProducts(products []*domproduct.Product) []map[string]any {
	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p))
	}
	return resp
}

func mapStats(s domproduct.Stats) map[string]any {
	return map[string]any{
		"total_count": s.TotalCount,
		"total_stock": s.TotalStock,
		"total_value": s.TotalValue.StringFixed(2),
	}
}

func mapCategory(c *domcategory.Category) map[string]any {
	return map[string]any{
		"id":          c.ID,
		"name":        c.Name,
		"slug":        c.Slug,
		"description": c.Description,
		"color":       c.Color,
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domproduct.ErrInvalidPriceFormat),
		errors.Is(err, domcategory.ErrCategoryInvalidName),
		errors.Is(err, domcategory.ErrCategoryInvalidSlug),
		errors.Is(err, domuser.ErrInvalidCredential):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domcategory.ErrCategorySlugExists),
		errors.Is(err, domuser.ErrEmailAlreadyUsed):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domcategory.ErrCategoryNotFound),
		errors.Is(err, domuser.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domproduct.ErrProductForbidden):
		respondError(w, http.StatusForbidden, err)
	case errors.Is(err, domuser.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
