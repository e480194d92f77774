package specialist

import (
	"math"
	"strings"

	"gorm.io/gorm"

	domain "specialist-app/internal/domain/specialist"
)

// Listing query composition. Every helper takes and returns a *gorm.DB
// so the same filter chain backs both the count query and the data
// query.

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type ListParams struct {
	Page   int
	Limit  int
	Search string
	Status string
	Tab    string // all | drafts | published
	SortBy string // created_at | price | duration | purchases
	Order  string // asc | desc
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

func NormalizePageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func ApplyTabFilter(q *gorm.DB, tab string) *gorm.DB {
	switch tab {
	case "drafts":
		return q.Where("is_draft = ?", true)
	case "published":
		return q.Where("is_draft = ?", false)
	}
	return q
}

// ApplySearch matches the term as a case-insensitive substring of
// title or slug. Blank terms apply no filter.
func ApplySearch(q *gorm.DB, term string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" {
		return q
	}
	like := "%" + strings.ToLower(term) + "%"
	return q.Where("LOWER(title) LIKE ? OR LOWER(slug) LIKE ?", like, like)
}

// ApplyStatusFilter filters on the verification status. Values outside
// the closed enum are ignored rather than rejected.
func ApplyStatusFilter(q *gorm.DB, value string) *gorm.DB {
	value = strings.TrimSpace(value)
	if value == "" || !domain.IsValidStatus(value) {
		return q
	}
	return q.Where("verification_status = ?", value)
}

// sortColumns is the whitelist mapping logical sort keys to columns.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"price":      "final_price",
	"duration":   "duration_days",
	"purchases":  "purchase_count",
}

func ApplySort(q *gorm.DB, sortBy, order string) *gorm.DB {
	col, ok := sortColumns[sortBy]
	if !ok {
		return q.Order("created_at DESC")
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	return q.Order(col + " " + dir)
}

func BuildMeta(page, limit int, total int64) Meta {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// listQuery composes the shared filter predicate for list views; count
// and data queries both start from here so their row sets agree.
func listQuery(db *gorm.DB, p ListParams) *gorm.DB {
	q := db.Model(&domain.Specialist{})
	q = ApplyTabFilter(q, p.Tab)
	q = ApplySearch(q, p.Search)
	q = ApplyStatusFilter(q, p.Status)
	return q
}

// thumbnailSelect pulls at most one media row per specialist (slot 0,
// image, not deleted) as a correlated subquery, avoiding the row
// duplication a one-to-many join would cause.
const thumbnailSelect = "specialists.*, (SELECT m.file_name FROM media m WHERE m.specialist_id = specialists.id AND m.display_order = 0 AND m.media_type = 'image' AND m.deleted_at IS NULL LIMIT 1) AS thumbnail"
