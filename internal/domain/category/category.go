package category

// Category is an editable label attached to products (many-to-many).
// It plays no role in dashboard filtering.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Color       string
}
