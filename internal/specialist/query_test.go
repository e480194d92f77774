package specialist

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "specialist-app/internal/domain/specialist"
)

func TestNormalizePageLimit(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{1, 10, 1, 10},
		{0, 10, 1, 10},
		{-5, 0, 1, 10},
		{3, 250, 3, 100},
		{2, 1, 2, 1},
	}
	for _, tc := range cases {
		page, limit := NormalizePageLimit(tc.page, tc.limit)
		assert.Equal(t, tc.wantPage, page)
		assert.Equal(t, tc.wantLimit, limit)
	}
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(1, 10, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrev)

	meta = BuildMeta(3, 10, 25)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = BuildMeta(1, 10, 0)
	assert.Equal(t, 1, meta.TotalPages, "totalPages floors at 1")
	assert.False(t, meta.HasNext)
}

func seedListing(t *testing.T, db *gorm.DB, title string, draft bool, status domain.VerificationStatus, price string, createdAt time.Time) string {
	t.Helper()
	sp := domain.Specialist{
		Title:              title,
		Slug:               Slugify(title),
		IsDraft:            draft,
		BasePrice:          price,
		PlatformFee:        "0.00",
		FinalPrice:         price,
		VerificationStatus: status,
		DurationDays:       3,
		AverageRating:      "0.00",
	}
	require.NoError(t, db.Create(&sp).Error)
	require.NoError(t, db.Model(&sp).Update("created_at", createdAt).Error)
	return sp.ID
}

func seedThumbnail(t *testing.T, db *gorm.DB, specialistID, url string) {
	t.Helper()
	m := domain.Media{
		SpecialistID: specialistID,
		FileName:     url,
		FileID:       "key-" + specialistID,
		MimeType:     domain.MimeJPEG,
		MediaType:    domain.MediaImage,
		DisplayOrder: 0,
	}
	require.NoError(t, db.Create(&m).Error)
}

func TestList_TabAndSearchComposition(t *testing.T) {
	svc, db := newTestService(t, newFakeGateway())
	now := time.Now()

	seedListing(t, db, "ABC consulting", true, domain.StatusPending, "10.00", now)
	seedListing(t, db, "abc teaching", false, domain.StatusPending, "20.00", now)
	seedListing(t, db, "Gardening", true, domain.StatusPending, "30.00", now)
	deleted := seedListing(t, db, "abc deleted", true, domain.StatusPending, "40.00", now)
	require.NoError(t, db.Delete(&domain.Specialist{}, "id = ?", deleted).Error)

	items, meta, err := svc.List(context.Background(), ListParams{Tab: "drafts", Search: "abc"})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "ABC consulting", items[0].Title)
	assert.Equal(t, "Draft", items[0].PublishStatus)
	assert.EqualValues(t, 1, meta.Total, "count uses the same predicate as the data query")
}

func TestList_SearchMatchesSlugToo(t *testing.T) {
	svc, db := newTestService(t, newFakeGateway())
	seedListing(t, db, "Interview Prep", false, domain.StatusApproved, "10.00", time.Now())

	items, _, err := svc.List(context.Background(), ListParams{Search: "interview-prep"})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestList_StatusFilterIgnoresUnknownValues(t *testing.T) {
	svc, db := newTestService(t, newFakeGateway())
	now := time.Now()
	seedListing(t, db, "One", true, domain.StatusApproved, "10.00", now)
	seedListing(t, db, "Two", true, domain.StatusPending, "10.00", now)

	items, _, err := svc.List(context.Background(), ListParams{Status: "approved"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "One", items[0].Title)

	// An unrecognized status applies no filter rather than erroring.
	items, _, err = svc.List(context.Background(), ListParams{Status: "bogus"})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestList_SortWhitelist(t *testing.T) {
	svc, db := newTestService(t, newFakeGateway())
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedListing(t, db, "Cheap", true, domain.StatusPending, "5.00", base)
	seedListing(t, db, "Pricey", true, domain.StatusPending, "50.00", base.Add(time.Hour))

	items, _, err := svc.List(context.Background(), ListParams{SortBy: "price", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Cheap", items[0].Title)

	// Unknown sort keys fall back to created_at DESC.
	items, _, err = svc.List(context.Background(), ListParams{SortBy: "evil; DROP TABLE", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Pricey", items[0].Title)
}

func TestList_PaginationWindow(t *testing.T) {
	svc, db := newTestService(t, newFakeGateway())
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedListing(t, db, fmt.Sprintf("Listing %02d", i), true, domain.StatusPending, "10.00", base.Add(time.Duration(i)*time.Minute))
	}

	items, meta, err := svc.List(context.Background(), ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.EqualValues(t, 25, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	items, meta, err = svc.List(context.Background(), ListParams{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestList_ThumbnailIsSlotZeroOnly(t *testing.T) {
	svc, db := newTestService(t, newFakeGateway())
	id := seedListing(t, db, "With Images", true, domain.StatusPending, "10.00", time.Now())
	seedThumbnail(t, db, id, "https://cdn.test/thumb")

	// A second image at a higher slot must not duplicate the row.
	m := domain.Media{
		SpecialistID: id,
		FileName:     "https://cdn.test/other",
		FileID:       "key-other",
		MimeType:     domain.MimeJPEG,
		MediaType:    domain.MediaImage,
		DisplayOrder: 1,
	}
	require.NoError(t, db.Create(&m).Error)

	items, meta, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 1, meta.Total)
	assert.Equal(t, "https://cdn.test/thumb", items[0].Thumbnail)
}

func TestGetPublished_NewestFirstMinimalShape(t *testing.T) {
	svc, db := newTestService(t, newFakeGateway())
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	older := seedListing(t, db, "Older", false, domain.StatusApproved, "10.00", base)
	newer := seedListing(t, db, "Newer", false, domain.StatusApproved, "20.00", base.Add(time.Hour))
	seedListing(t, db, "Hidden Draft", true, domain.StatusApproved, "30.00", base.Add(2*time.Hour))
	seedThumbnail(t, db, newer, "https://cdn.test/newer-thumb")

	items, err := svc.GetPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer, items[0].ID)
	assert.Equal(t, older, items[1].ID)
	assert.Equal(t, "20.00", items[0].BasePrice)
	assert.Equal(t, "https://cdn.test/newer-thumb", items[0].Thumbnail)
	assert.Empty(t, items[1].Thumbnail)
}
