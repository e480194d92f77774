package specialist

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerificationStatus string

const (
	StatusPending     VerificationStatus = "pending"
	StatusUnderReview VerificationStatus = "under-review"
	StatusApproved    VerificationStatus = "approved"
	StatusRejected    VerificationStatus = "rejected"
)

// StatusFromToken maps an input status token to the stored enum.
// Both "pending" and "under-review" land on pending, matching how
// submissions enter the review pipeline.
func StatusFromToken(token string) (VerificationStatus, bool) {
	switch token {
	case "pending", "under-review":
		return StatusPending, true
	case "approved":
		return StatusApproved, true
	case "rejected":
		return StatusRejected, true
	}
	return "", false
}

// AllStatuses is the closed set accepted by list filters.
var AllStatuses = []VerificationStatus{StatusPending, StatusUnderReview, StatusApproved, StatusRejected}

func IsValidStatus(v string) bool {
	for _, s := range AllStatuses {
		if string(s) == v {
			return true
		}
	}
	return false
}

type MimeType string

const (
	MimeJPEG MimeType = "image/jpeg"
	MimePNG  MimeType = "image/png"
	MimeWebP MimeType = "image/webp"
	MimeMP4  MimeType = "video/mp4"
)

type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
)

type Specialist struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Title string `gorm:"size:200;not null" json:"title"`
	// Unique among rows that are not soft-deleted, so a deleted listing
	// frees its slug for reuse.
	Slug        string `gorm:"size:220;not null;uniqueIndex:idx_specialists_slug,where:deleted_at IS NULL" json:"slug"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	IsDraft bool `gorm:"not null;default:true" json:"is_draft"`

	// Monetary amounts are decimal columns carried as strings.
	BasePrice   string `gorm:"type:decimal(12,2);default:0" json:"base_price"`
	PlatformFee string `gorm:"type:decimal(12,2);default:0" json:"platform_fee"`
	FinalPrice  string `gorm:"type:decimal(12,2);default:0" json:"final_price"`

	VerificationStatus VerificationStatus `gorm:"type:text;not null;default:'under-review';index" json:"verification_status"`
	IsVerified         bool               `gorm:"not null;default:false" json:"is_verified"`

	DurationDays int `gorm:"not null;default:0" json:"duration_days"`

	// Placeholder metrics, written as zero until ratings/orders land.
	AverageRating string `gorm:"type:decimal(3,2);default:0" json:"average_rating"`
	PurchaseCount int    `gorm:"not null;default:0" json:"purchase_count"`

	Media []Media `gorm:"foreignKey:SpecialistID;constraint:OnDelete:CASCADE;" json:"media,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Specialist) TableName() string { return "specialists" }

func (s *Specialist) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Media struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	SpecialistID string `gorm:"type:uuid;not null;index:idx_media_specialist_slot,priority:1" json:"specialist_id"`

	// FileName holds the hosted URL of the asset, FileID the storage
	// gateway's object key needed to request deletion.
	FileName string `gorm:"size:255;not null" json:"file_name"`
	FileID   string `gorm:"size:150;not null" json:"file_id"`

	FileSize  int64     `gorm:"not null;default:0" json:"file_size"`
	MimeType  MimeType  `gorm:"type:text;not null" json:"mime_type"`
	MediaType MediaType `gorm:"type:text;not null" json:"media_type"`

	// 0-based slot position; slot 0 is the thumbnail.
	DisplayOrder int `gorm:"not null;default:0;index:idx_media_specialist_slot,priority:2" json:"display_order"`

	UploadedAt *time.Time `json:"uploaded_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Media) TableName() string { return "media" }

func (m *Media) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
