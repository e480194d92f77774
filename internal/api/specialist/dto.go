package specialist

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	domain "specialist-app/internal/domain/specialist"
)

const (
	descriptionMaxWords = 500
	maxImageBytes       = 4 * 1024 * 1024
)

var acceptedImageMimes = map[string]domain.MimeType{
	"image/png":  domain.MimePNG,
	"image/jpeg": domain.MimeJPEG,
	"image/webp": domain.MimeWebP,
}

// SpecialistForm is the multipart text-field contract shared by create
// and update.
type SpecialistForm struct {
	Title         string `form:"title" validate:"required,max=200"`
	Description   string `form:"description" validate:"required,maxwords"`
	Status        string `form:"status" validate:"required,oneof=pending under-review approved rejected"`
	EstimatedDays int    `form:"estimatedDays" validate:"required,min=1"`
	Price         string `form:"price" validate:"required,money"`
	// JSON-encoded string array from the dashboard form; accepted for
	// contract compatibility, not persisted.
	AdditionalOfferings string `form:"additionalOfferings"`
}

type PublishRequest struct {
	ServiceID string `json:"serviceId" validate:"required,uuid4"`
}

var moneyRe = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		return moneyRe.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	v.RegisterValidation("maxwords", func(fl validator.FieldLevel) bool {
		return countWords(fl.Field().String()) <= descriptionMaxWords
	})
	return v
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// fieldErrors turns validator failures into one message per offending
// field.
func fieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			fields[name] = "This field is required"
		case "max":
			fields[name] = "Maximum length is " + fe.Param() + " characters"
		case "min":
			fields[name] = "Must be at least " + fe.Param()
		case "oneof":
			fields[name] = "Must be one of: " + fe.Param()
		case "money":
			fields[name] = "Use a valid amount (e.g. 0.00, 10, 10.50)"
		case "maxwords":
			fields[name] = "Maximum 500 words"
		case "uuid4":
			fields[name] = "Invalid service id"
		default:
			fields[name] = "Invalid value"
		}
	}
	return fields
}
