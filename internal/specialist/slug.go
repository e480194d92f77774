package specialist

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	domain "specialist-app/internal/domain/specialist"
)

// defaultSlug is the fallback when a title slugifies to nothing.
const defaultSlug = "specialist"

// Slugify lowers and trims the title, collapses every run of
// non-alphanumeric characters into a single hyphen and strips hyphens
// from both ends.
func Slugify(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	lastDash := false
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// SlugChecker is the narrow view of persistence the slug builder needs.
type SlugChecker interface {
	Exists(slug string) (bool, error)
}

// BuildUniqueSlug starts from Slugify(title) and appends -2, -3, ...
// until no live row claims the candidate. The search loop is a
// best-effort pre-check only; the partial unique index on the slug
// column stays the authoritative guard, and a racing create that trips
// it is retried once by the caller.
func BuildUniqueSlug(repo SlugChecker, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = defaultSlug
	}

	slug := base
	for n := 2; ; n++ {
		taken, err := repo.Exists(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// gormSlugChecker scopes existence checks to non-deleted specialists.
type gormSlugChecker struct {
	tx *gorm.DB
}

func (r gormSlugChecker) Exists(slug string) (bool, error) {
	var count int64
	err := r.tx.Model(&domain.Specialist{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
