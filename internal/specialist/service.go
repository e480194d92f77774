// Package specialist implements the service-listing core: slug
// generation, transactional writes, remote media upload with
// compensating cleanup, and list query composition.
package specialist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"specialist-app/config"
	"specialist-app/internal/apperr"
	domain "specialist-app/internal/domain/specialist"
	"specialist-app/internal/imaging"
	"specialist-app/internal/storage"
)

// platformFee is fixed for now; finalPrice = basePrice + platformFee.
const platformFee = "0.00"

type Service struct {
	db      *gorm.DB
	gateway storage.Gateway
	log     *zap.Logger

	// compress is the raw-file -> compressed-file transform applied
	// before every upload.
	compress func(string) (string, error)
	tempDir  string
}

func NewService(db *gorm.DB, gateway storage.Gateway, log *zap.Logger) *Service {
	return &Service{
		db:       db,
		gateway:  gateway,
		log:      log,
		compress: imaging.CompressToWebP,
		tempDir:  config.TEMP_UPLOAD_DIR,
	}
}

// CreateInput carries already-validated listing fields. The service
// trusts its input; field validation lives at the API boundary.
type CreateInput struct {
	Title        string
	Description  string
	Status       string
	DurationDays int
	BasePrice    string
}

type UpdateInput = CreateInput

// UploadFile is one image staged on local disk, ready for upload.
type UploadFile struct {
	LocalPath string
	Size      int64
	MimeType  domain.MimeType
}

// Create inserts a draft specialist with exactly 3 image slots. The row
// writes and the remote uploads share one logical operation: if
// anything fails, the transaction rolls back and every asset uploaded
// in this call is compensately deleted.
func (s *Service) Create(ctx context.Context, in CreateInput, files []UploadFile) (string, error) {
	if len(files) != 3 {
		return "", apperr.Validation("Exactly 3 images are required", nil)
	}

	status, ok := domain.StatusFromToken(in.Status)
	if !ok {
		return "", apperr.Validation("Unknown status value", map[string]string{"status": "must be one of pending, under-review, approved, rejected"})
	}

	finalPrice, err := addMoney(in.BasePrice, platformFee)
	if err != nil {
		return "", apperr.Validation("Invalid price", map[string]string{"price": err.Error()})
	}

	id, err := s.createOnce(ctx, in, status, finalPrice, files)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a slug race to a concurrent create; the pre-check loop
		// will pick a fresh suffix on the second pass.
		id, err = s.createOnce(ctx, in, status, finalPrice, files)
	}
	if err != nil {
		return "", err
	}

	storage.ReclaimTempDir(s.tempDir, s.log)
	return id, nil
}

func (s *Service) createOnce(ctx context.Context, in CreateInput, status domain.VerificationStatus, finalPrice string, files []UploadFile) (string, error) {
	var (
		id       string
		uploaded []string
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := BuildUniqueSlug(gormSlugChecker{tx: tx}, in.Title)
		if err != nil {
			return err
		}

		sp := domain.Specialist{
			Title:              in.Title,
			Slug:               slug,
			Description:        in.Description,
			IsDraft:            true,
			BasePrice:          in.BasePrice,
			PlatformFee:        platformFee,
			FinalPrice:         finalPrice,
			VerificationStatus: status,
			IsVerified:         in.Status == "approved",
			DurationDays:       in.DurationDays,
			AverageRating:      "0.00",
		}
		if err := tx.Create(&sp).Error; err != nil {
			return err
		}

		now := time.Now()
		rows := make([]domain.Media, 0, len(files))
		for i, f := range files {
			compressed, err := s.compress(f.LocalPath)
			if err != nil {
				return apperr.Upload(fmt.Sprintf("Error uploading image %d", i+1))
			}
			asset, err := s.gateway.Upload(ctx, compressed)
			if err != nil {
				return apperr.Upload(fmt.Sprintf("Error uploading image %d", i+1))
			}
			uploaded = append(uploaded, asset.ID)

			rows = append(rows, domain.Media{
				SpecialistID: sp.ID,
				FileName:     asset.URL,
				FileID:       asset.ID,
				FileSize:     f.Size,
				MimeType:     f.MimeType,
				MediaType:    domain.MediaImage,
				DisplayOrder: i,
				UploadedAt:   &now,
			})
		}

		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		id = sp.ID
		return nil
	})

	if err != nil && len(uploaded) > 0 {
		// The DB rolled back; reclaim whatever reached the gateway in
		// this call so no remote asset outlives its rows.
		if failed := s.deleteRemote(ctx, uploaded); anyFailed(failed) {
			s.logOrphans(uploaded, failed)
		}
	}
	return id, err
}

// Publish flips a draft live. Re-publishing a published specialist is a
// conflict, not a no-op.
func (s *Service) Publish(ctx context.Context, id string) (string, error) {
	var sp domain.Specialist
	if err := s.db.WithContext(ctx).First(&sp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("Specialist not found")
		}
		return "", err
	}

	if !sp.IsDraft {
		return "", apperr.Conflict("Specialist is already published")
	}

	if err := s.db.WithContext(ctx).Model(&sp).Update("is_draft", false).Error; err != nil {
		return "", err
	}
	return sp.ID, nil
}

// Update overwrites the listing fields and replaces the images named in
// changed (slot index -> replacement file). Replacement follows
// upload-first ordering: every new asset must be stored remotely before
// any old asset is deleted, so a failure part-way never loses data.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, changed map[int]UploadFile) (string, error) {
	status, ok := domain.StatusFromToken(in.Status)
	if !ok {
		return "", apperr.Validation("Unknown status value", map[string]string{"status": "must be one of pending, under-review, approved, rejected"})
	}

	finalPrice, err := addMoney(in.BasePrice, platformFee)
	if err != nil {
		return "", apperr.Validation("Invalid price", map[string]string{"price": err.Error()})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sp domain.Specialist
		if err := tx.First(&sp, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Specialist not found")
			}
			return err
		}

		if in.Title != sp.Title {
			slug, err := BuildUniqueSlug(gormSlugChecker{tx: tx}, in.Title)
			if err != nil {
				return err
			}
			sp.Slug = slug
		}

		// The update payload is authoritative for every non-image
		// field; nothing is merged from the stored row.
		sp.Title = in.Title
		sp.Description = in.Description
		sp.DurationDays = in.DurationDays
		sp.BasePrice = in.BasePrice
		sp.PlatformFee = platformFee
		sp.FinalPrice = finalPrice
		sp.VerificationStatus = status
		sp.IsVerified = in.Status == "approved"

		if err := tx.Save(&sp).Error; err != nil {
			return err
		}

		if len(changed) == 0 {
			return nil
		}
		return s.replaceSlots(ctx, tx, &sp, changed)
	})
	if err != nil {
		return "", err
	}

	if len(changed) > 0 {
		storage.ReclaimTempDir(s.tempDir, s.log)
	}
	return id, nil
}

func (s *Service) replaceSlots(ctx context.Context, tx *gorm.DB, sp *domain.Specialist, changed map[int]UploadFile) error {
	slots := make([]int, 0, len(changed))
	for slot := range changed {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	// Phase 1: upload every replacement. A failure here deletes the
	// uploads already made in this call and aborts.
	newAssets := make(map[int]*storage.Asset, len(slots))
	newIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		f := changed[slot]
		compressed, err := s.compress(f.LocalPath)
		if err == nil {
			var asset *storage.Asset
			asset, err = s.gateway.Upload(ctx, compressed)
			if err == nil {
				newAssets[slot] = asset
				newIDs = append(newIDs, asset.ID)
				continue
			}
		}
		if failed := s.deleteRemote(ctx, newIDs); anyFailed(failed) {
			s.logOrphans(newIDs, failed)
		}
		return apperr.Upload(fmt.Sprintf("Error uploading image for slot %d", slot))
	}

	var existing []domain.Media
	if err := tx.Where("specialist_id = ? AND display_order IN ?", sp.ID, slots).Find(&existing).Error; err != nil {
		return err
	}
	oldBySlot := make(map[int]domain.Media, len(existing))
	oldIDs := make([]string, 0, len(existing))
	for _, m := range existing {
		oldBySlot[m.DisplayOrder] = m
		if m.FileID != "" {
			oldIDs = append(oldIDs, m.FileID)
		}
	}

	// Phase 2: only now remove the replaced assets. If any old-asset
	// delete fails the update fails as a whole; the new uploads are
	// compensately deleted (best effort) so neither side leaks.
	if len(oldIDs) > 0 {
		if failed := s.deleteRemote(ctx, oldIDs); anyFailed(failed) {
			if alsoFailed := s.deleteRemote(ctx, newIDs); anyFailed(alsoFailed) {
				s.logOrphans(newIDs, alsoFailed)
			}
			return apperr.DeletionAborted("Could not remove replaced media; update aborted")
		}
	}

	// Phase 3: upsert rows for the changed slots. From here a rollback
	// can no longer restore the old remote assets, so failures are
	// logged as reconciliation work instead of compensated.
	now := time.Now()
	for _, slot := range slots {
		f := changed[slot]
		asset := newAssets[slot]
		if row, ok := oldBySlot[slot]; ok {
			row.FileName = asset.URL
			row.FileID = asset.ID
			row.FileSize = f.Size
			row.MimeType = f.MimeType
			row.UploadedAt = &now
			if err := tx.Save(&row).Error; err != nil {
				s.logOrphans(newIDs, nil)
				return err
			}
		} else {
			m := domain.Media{
				SpecialistID: sp.ID,
				FileName:     asset.URL,
				FileID:       asset.ID,
				FileSize:     f.Size,
				MimeType:     f.MimeType,
				MediaType:    domain.MediaImage,
				DisplayOrder: slot,
				UploadedAt:   &now,
			}
			if err := tx.Create(&m).Error; err != nil {
				s.logOrphans(newIDs, nil)
				return err
			}
		}
	}
	return nil
}

// Delete soft-deletes a specialist together with its media, but only
// after every remote asset is confirmed gone. One failed remote delete
// aborts the whole operation with no rows touched.
func (s *Service) Delete(ctx context.Context, id string) error {
	var sp domain.Specialist
	if err := s.db.WithContext(ctx).First(&sp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Specialist not found")
		}
		return err
	}

	var media []domain.Media
	if err := s.db.WithContext(ctx).Where("specialist_id = ?", sp.ID).Find(&media).Error; err != nil {
		return err
	}

	fileIDs := make([]string, 0, len(media))
	for _, m := range media {
		if m.FileID != "" {
			fileIDs = append(fileIDs, m.FileID)
		}
	}

	if len(fileIDs) > 0 {
		if failed := s.deleteRemote(ctx, fileIDs); anyFailed(failed) {
			return apperr.DeletionAborted("Could not delete all media assets; specialist not removed")
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(media) > 0 {
			if err := tx.Where("specialist_id = ?", sp.ID).Delete(&domain.Media{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&sp).Error
	})
}

// GetByID loads one specialist with its media ordered by slot.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Specialist, error) {
	var sp domain.Specialist
	err := s.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&sp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Specialist not found")
		}
		return nil, err
	}
	return &sp, nil
}

// ListItem is the admin table row shape.
type ListItem struct {
	ID            string                    `json:"id"`
	Title         string                    `json:"title"`
	Price         string                    `json:"price"`
	Purchases     int                       `json:"purchases"`
	DurationDays  int                       `json:"durationDays"`
	Status        domain.VerificationStatus `json:"status"`
	PublishStatus string                    `json:"publishStatus"`
	Thumbnail     string                    `json:"thumbnail,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
}

type listRow struct {
	ID                 string
	Title              string
	FinalPrice         string
	PurchaseCount      int
	DurationDays       int
	VerificationStatus domain.VerificationStatus
	IsDraft            bool
	Thumbnail          *string
	CreatedAt          time.Time
}

// List runs one count query and one data query over the identical
// filter predicate, then shapes the rows for the dashboard table.
func (s *Service) List(ctx context.Context, p ListParams) ([]ListItem, Meta, error) {
	page, limit := NormalizePageLimit(p.Page, p.Limit)

	var total int64
	if err := listQuery(s.db.WithContext(ctx), p).Count(&total).Error; err != nil {
		return nil, Meta{}, err
	}

	var rows []listRow
	q := listQuery(s.db.WithContext(ctx), p).Select(thumbnailSelect)
	q = ApplySort(q, p.SortBy, p.Order)
	if err := q.Offset((page - 1) * limit).Limit(limit).Scan(&rows).Error; err != nil {
		return nil, Meta{}, err
	}

	items := make([]ListItem, 0, len(rows))
	for _, r := range rows {
		item := ListItem{
			ID:            r.ID,
			Title:         r.Title,
			Price:         r.FinalPrice,
			Purchases:     r.PurchaseCount,
			DurationDays:  r.DurationDays,
			Status:        r.VerificationStatus,
			PublishStatus: "Published",
			CreatedAt:     r.CreatedAt,
		}
		if r.IsDraft {
			item.PublishStatus = "Draft"
		}
		if r.Thumbnail != nil {
			item.Thumbnail = *r.Thumbnail
		}
		items = append(items, item)
	}

	return items, BuildMeta(page, limit, total), nil
}

// PublishedItem is the public marketplace card shape.
type PublishedItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	BasePrice string `json:"basePrice"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// GetPublished lists every published specialist newest-first, no
// pagination.
func (s *Service) GetPublished(ctx context.Context) ([]PublishedItem, error) {
	var rows []struct {
		ID        string
		Title     string
		BasePrice string
		Thumbnail *string
	}
	err := s.db.WithContext(ctx).
		Model(&domain.Specialist{}).
		Select(thumbnailSelect).
		Where("is_draft = ?", false).
		Order("created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]PublishedItem, 0, len(rows))
	for _, r := range rows {
		item := PublishedItem{ID: r.ID, Title: r.Title, BasePrice: r.BasePrice}
		if r.Thumbnail != nil {
			item.Thumbnail = *r.Thumbnail
		}
		items = append(items, item)
	}
	return items, nil
}

// deleteRemote issues the deletes concurrently and returns one result
// per id; callers apply the aggregate policy (abort-if-any-failed or
// best-effort).
func (s *Service) deleteRemote(ctx context.Context, ids []string) []error {
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, fileID := range ids {
		wg.Add(1)
		go func(i int, fileID string) {
			defer wg.Done()
			errs[i] = s.gateway.Delete(ctx, fileID)
		}(i, fileID)
	}
	wg.Wait()
	return errs
}

func anyFailed(errs []error) bool {
	for _, err := range errs {
		if err != nil {
			return true
		}
	}
	return false
}

// logOrphans records asset ids that may have outlived their rows so
// they can be reconciled manually.
func (s *Service) logOrphans(ids []string, errs []error) {
	s.log.Warn("possible orphaned remote assets, manual reconciliation needed",
		zap.Strings("file_ids", ids), zap.Errors("delete_errors", errs))
}
