package http

import (
	"fmt"
	"net/http"

	domproduct "example.com/catalog-dashboard/internal/domain/product"
	productuc "example.com/catalog-dashboard/internal/usecase/product"
)

// handleDashboardProducts lists the requester's products with sticky
// filters: parameters present in the request override the stored
// state, absent ones fall back to it, and the merged state is written
// back for the next visit. ?clear drops the stored state and sends
// the caller back to the unfiltered list.
func (a *API) handleDashboardProducts(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	sid := sessionID(r.Context())
	query := r.URL.Query()

	if query.Has("clear") {
		if err := a.sessions.ClearFilters(r.Context(), sid); err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}

	stored := domproduct.FilterState{}
	if s, err := a.sessions.Filters(r.Context(), sid); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	} else if s != nil {
		stored = *s
	}

	effective, preds := domproduct.ResolveFilters(query, stored)
	if err := a.sessions.SetFilters(r.Context(), sid, effective); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	result, err := a.productSvc.Dashboard(r.Context(), user.UserID, preds)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": mapProducts(result.Products),
		"stats":    mapStats(result.Stats),
		"filters":  effective,
	})
}

// handleCatalog is the public listing: visibility-scoped, filtered
// straight from the URL, nothing persisted.
func (a *API) handleCatalog(w http.ResponseWriter, r *http.Request) {
	preds := domproduct.CatalogPredicates(r.URL.Query())

	result, err := a.productSvc.Catalog(r.Context(), preds)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": mapProducts(result.Products),
		"stats":    mapStats(result.Stats),
	})
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var requester *int64
	if user := getAuthUser(r.Context()); user != nil {
		requester = &user.UserID
	}

	p, err := a.productSvc.Detail(r.Context(), requester, id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Stock       int64    `json:"stock"`
	IsPublic    bool     `json:"is_public"`
	CategoryIDs *[]int64 `json:"category_ids"`
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())

	var req productRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	in := productuc.CreateInput{
		OwnerID:     user.UserID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsPublic:    req.IsPublic,
	}
	if req.CategoryIDs != nil {
		in.CategoryIDs = *req.CategoryIDs
	}

	p, err := a.productSvc.Create(r.Context(), in)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"product": mapProduct(p),
		"message": fmt.Sprintf("Produto %q criado com sucesso!", p.Name),
	})
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req productRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	p, err := a.productSvc.Update(r.Context(), productuc.UpdateInput{
		OwnerID:     user.UserID,
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsPublic:    req.IsPublic,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product": mapProduct(p),
		"message": fmt.Sprintf("Produto %q atualizado com sucesso!", p.Name),
	})
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	p, err := a.productSvc.Delete(r.Context(), user.UserID, id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Produto %q removido permanentemente.", p.Name),
	})
}
