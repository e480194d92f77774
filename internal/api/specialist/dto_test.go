package specialist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() SpecialistForm {
	return SpecialistForm{
		Title:         "Resume Review",
		Description:   "A thorough review of your resume",
		Status:        "under-review",
		EstimatedDays: 5,
		Price:         "100.00",
	}
}

func TestSpecialistForm_Valid(t *testing.T) {
	assert.NoError(t, validate.Struct(validForm()))
}

func TestSpecialistForm_PriceFormat(t *testing.T) {
	for _, price := range []string{"0.00", "10", "10.5", "10.50"} {
		form := validForm()
		form.Price = price
		assert.NoError(t, validate.Struct(form), "price %q should pass", price)
	}
	for _, price := range []string{"", "10.505", "-5", "1,000", "ten"} {
		form := validForm()
		form.Price = price
		err := validate.Struct(form)
		require.Error(t, err, "price %q should fail", price)
		assert.Contains(t, fieldErrors(err), "price")
	}
}

func TestSpecialistForm_DescriptionWordCount(t *testing.T) {
	form := validForm()
	form.Description = strings.Repeat("word ", 500)
	assert.NoError(t, validate.Struct(form))

	form.Description = strings.Repeat("word ", 501)
	err := validate.Struct(form)
	require.Error(t, err)
	assert.Equal(t, "Maximum 500 words", fieldErrors(err)["description"])
}

func TestSpecialistForm_StatusTokens(t *testing.T) {
	for _, status := range []string{"pending", "under-review", "approved", "rejected"} {
		form := validForm()
		form.Status = status
		assert.NoError(t, validate.Struct(form))
	}

	form := validForm()
	form.Status = "live"
	err := validate.Struct(form)
	require.Error(t, err)
	assert.Contains(t, fieldErrors(err), "status")
}

func TestSpecialistForm_RequiredFields(t *testing.T) {
	err := validate.Struct(SpecialistForm{})
	require.Error(t, err)

	fields := fieldErrors(err)
	for _, name := range []string{"title", "description", "status", "estimatedDays", "price"} {
		assert.Contains(t, fields, name)
	}
}

func TestPublishRequest_RequiresUUID(t *testing.T) {
	assert.NoError(t, validate.Struct(PublishRequest{ServiceID: "3e3c7df2-9a3b-4a57-9a39-5f2d1a0d9f5f"}))

	err := validate.Struct(PublishRequest{ServiceID: "not-a-uuid"})
	require.Error(t, err)
	assert.Equal(t, "Invalid service id", fieldErrors(err)["serviceID"])
}
