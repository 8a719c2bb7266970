package product

import "net/url"

// Filter keys as they appear in query strings and stored session
// state.
const (
	keyQuery    = "q"
	keyStatus   = "status"
	keyMinPrice = "min_price"
	keyMaxPrice = "max_price"
	keyMinStock = "min_stock"
	keyMaxStock = "max_stock"
)

// Status filter values.
const (
	StatusPublic  = "public"
	StatusPrivate = "private"
)

// FilterState holds the six dashboard filter values. An empty string
// means a filter is unset. The whole state is rewritten on every list
// request, so a stored state always carries all six keys.
type FilterState struct {
	Query    string `json:"q"`
	Status   string `json:"status"`
	MinPrice string `json:"min_price"`
	MaxPrice string `json:"max_price"`
	MinStock string `json:"min_stock"`
	MaxStock string `json:"max_stock"`
}

// IsZero reports whether no filter is set.
func (f FilterState) IsZero() bool {
	return f == FilterState{}
}

// Field identifies the product attribute a predicate applies to.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldVisibility  Field = "visibility"
	FieldPrice       Field = "price"
	FieldStock       Field = "stock"
)

// Predicate is one restriction over the product collection. The
// datastore AND-combines predicates in the order given.
type Predicate interface {
	predicate()
}

// TextContains keeps products where any of Fields contains Value,
// case-insensitively.
type TextContains struct {
	Fields []Field
	Value  string
}

// Equals keeps products where Field equals Value.
type Equals struct {
	Field Field
	Value any
}

// Range keeps products where Field satisfies the given inclusive
// bound. Exactly one of Min and Max is set; values are passed through
// as typed by the user and coerced by the datastore.
type Range struct {
	Field Field
	Min   string
	Max   string
}

func (TextContains) predicate() {}
func (Equals) predicate()       {}
func (Range) predicate()        {}

// ResolveFilters reconciles incoming query parameters with the
// previously stored filter state. A key present in the request wins
// even when its value is empty; absent keys keep their stored value.
// The returned state replaces the stored one wholesale; persisting it
// is the caller's job.
func ResolveFilters(incoming url.Values, stored FilterState) (FilterState, []Predicate) {
	effective := FilterState{
		Query:    pick(incoming, keyQuery, stored.Query),
		Status:   pick(incoming, keyStatus, stored.Status),
		MinPrice: pick(incoming, keyMinPrice, stored.MinPrice),
		MaxPrice: pick(incoming, keyMaxPrice, stored.MaxPrice),
		MinStock: pick(incoming, keyMinStock, stored.MinStock),
		MaxStock: pick(incoming, keyMaxStock, stored.MaxStock),
	}
	return effective, effective.Predicates()
}

func pick(incoming url.Values, key, stored string) string {
	if incoming.Has(key) {
		return incoming.Get(key)
	}
	return stored
}

// Predicates translates the state into ordered restrictions: text
// search over name and description first, then visibility, then the
// price and stock bounds. Each non-empty key yields exactly one
// predicate.
func (f FilterState) Predicates() []Predicate {
	var preds []Predicate
	if f.Query != "" {
		preds = append(preds, TextContains{
			Fields: []Field{FieldName, FieldDescription},
			Value:  f.Query,
		})
	}
	switch f.Status {
	case StatusPublic:
		preds = append(preds, Equals{Field: FieldVisibility, Value: true})
	case StatusPrivate:
		preds = append(preds, Equals{Field: FieldVisibility, Value: false})
	}
	if f.MinPrice != "" {
		preds = append(preds, Range{Field: FieldPrice, Min: f.MinPrice})
	}
	if f.MaxPrice != "" {
		preds = append(preds, Range{Field: FieldPrice, Max: f.MaxPrice})
	}
	if f.MinStock != "" {
		preds = append(preds, Range{Field: FieldStock, Min: f.MinStock})
	}
	if f.MaxStock != "" {
		preds = append(preds, Range{Field: FieldStock, Max: f.MaxStock})
	}
	return preds
}

// CatalogPredicates builds the public catalog restrictions straight
// from the request. The public view has no sticky state and no status
// filter; visibility scoping is handled by the listing scope.
func CatalogPredicates(incoming url.Values) []Predicate {
	f := FilterState{
		Query:    incoming.Get(keyQuery),
		MinPrice: incoming.Get(keyMinPrice),
		MaxPrice: incoming.Get(keyMaxPrice),
		MinStock: incoming.Get(keyMinStock),
		MaxStock: incoming.Get(keyMaxStock),
	}
	return f.Predicates()
}
