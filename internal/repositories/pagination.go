package repositories

// Pagination carries the page window and sort order for product listings.
type Pagination struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// sortColumns whitelists the request sort fields against real columns.
var sortColumns = map[string]string{
	"productName": "product_name",
	"description": "description",
	"price":       "price",
	"color":       "color",
	"rating":      "rating",
	"brand":       "brand",
	"createdAt":   "created_at",
}

// NewPagination applies the listing defaults: page 1, limit 10.
func NewPagination(page, limit int, sortBy, sortOrder string) Pagination {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return Pagination{Page: page, Limit: limit, SortBy: sortBy, SortOrder: sortOrder}
}

// Offset returns the row offset of the requested page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause translates the sort request into a SQL order expression,
// ignoring unknown sort fields.
func (p Pagination) OrderClause() string {
	column, ok := sortColumns[p.SortBy]
	if !ok {
		column = "created_at"
	}
	if p.SortOrder == "desc" {
		return column + " desc"
	}
	return column + " asc"
}
