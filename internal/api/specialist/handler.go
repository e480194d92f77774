package specialist

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"specialist-app/config"
	"specialist-app/internal/api/response"
	"specialist-app/internal/apperr"
	core "specialist-app/internal/specialist"
)

type Handler struct {
	svc *core.Service
	log *zap.Logger
}

func NewHandler(svc *core.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// POST /specialist
func (h *Handler) Create(c *gin.Context) {
	var form SpecialistForm
	if err := c.ShouldBind(&form); err != nil {
		response.Fail(c, apperr.Validation("Invalid form data", nil))
		return
	}
	if err := validate.Struct(form); err != nil {
		response.Fail(c, apperr.Validation("Validation failed", fieldErrors(err)))
		return
	}

	mf, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, apperr.Validation("Invalid multipart form", nil))
		return
	}
	headers := mf.File["images"]
	if len(headers) != 3 {
		response.Fail(c, apperr.Validation("Exactly 3 images are required", nil))
		return
	}

	files, aerr := h.stageFiles(c, headers)
	if aerr != nil {
		response.Fail(c, aerr)
		return
	}

	id, err := h.svc.Create(c.Request.Context(), formToInput(form), files)
	if err != nil {
		h.log.Error("create specialist failed", zap.Error(err))
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "Service created successfully! Specialist & Media Tables Updated.", gin.H{"id": id})
}

// GET /specialist
func (h *Handler) List(c *gin.Context) {
	params := core.ListParams{
		Page:   atoiDefault(c.Query("page"), 1),
		Limit:  atoiDefault(c.Query("limit"), 10),
		Search: c.Query("search"),
		Status: c.Query("status"),
		Tab:    c.DefaultQuery("tab", "all"),
		SortBy: c.Query("sortBy"),
		Order:  c.Query("order"),
	}

	items, meta, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		h.log.Error("list specialists failed", zap.Error(err))
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Specialists fetched successfully", gin.H{
		"items": items,
		"meta":  meta,
	})
}

// GET /specialist/all-published
func (h *Handler) GetPublished(c *gin.Context) {
	items, err := h.svc.GetPublished(c.Request.Context())
	if err != nil {
		h.log.Error("list published specialists failed", zap.Error(err))
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Published specialists fetched successfully", items)
}

// GET /specialist/:id
func (h *Handler) GetByID(c *gin.Context) {
	sp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Specialist fetched successfully", sp)
}

// PUT /specialist/:id
func (h *Handler) Update(c *gin.Context) {
	var form SpecialistForm
	if err := c.ShouldBind(&form); err != nil {
		response.Fail(c, apperr.Validation("Invalid form data", nil))
		return
	}
	if err := validate.Struct(form); err != nil {
		response.Fail(c, apperr.Validation("Validation failed", fieldErrors(err)))
		return
	}

	// Replacement images arrive as sparse fields image0..image2; absent
	// slots stay untouched.
	changed := make(map[int]core.UploadFile)
	for slot := 0; slot < 3; slot++ {
		fh, err := c.FormFile(fmt.Sprintf("image%d", slot))
		if err != nil {
			continue
		}
		staged, aerr := h.stageFiles(c, []*multipart.FileHeader{fh})
		if aerr != nil {
			response.Fail(c, aerr)
			return
		}
		changed[slot] = staged[0]
	}

	id, err := h.svc.Update(c.Request.Context(), c.Param("id"), formToInput(form), changed)
	if err != nil {
		h.log.Error("update specialist failed", zap.String("id", c.Param("id")), zap.Error(err))
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Specialist updated successfully", gin.H{"id": id})
}

// POST /specialist/publish
func (h *Handler) Publish(c *gin.Context) {
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.Validation("Invalid request body", nil))
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Fail(c, apperr.Validation("Validation failed", fieldErrors(err)))
		return
	}

	id, err := h.svc.Publish(c.Request.Context(), req.ServiceID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Specialist published successfully", gin.H{"id": id})
}

// DELETE /specialist/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Error("delete specialist failed", zap.String("id", c.Param("id")), zap.Error(err))
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Specialist deleted successfully", nil)
}

// stageFiles guards size/type and writes the uploads into the temp
// directory the compression and reclaim steps work from.
func (h *Handler) stageFiles(c *gin.Context, headers []*multipart.FileHeader) ([]core.UploadFile, *apperr.Error) {
	if err := os.MkdirAll(config.TEMP_UPLOAD_DIR, 0o755); err != nil {
		return nil, apperr.Internal("Could not stage uploads")
	}

	files := make([]core.UploadFile, 0, len(headers))
	for i, fh := range headers {
		contentType := fh.Header.Get("Content-Type")
		mimeType, ok := acceptedImageMimes[contentType]
		if !ok {
			return nil, apperr.Validation("Validation failed", map[string]string{
				fmt.Sprintf("images[%d]", i): "Accepted: JPG, PNG, WEBP",
			})
		}
		if fh.Size > maxImageBytes {
			return nil, apperr.Validation("Validation failed", map[string]string{
				fmt.Sprintf("images[%d]", i): "Maximum file size: 4MB",
			})
		}

		dst := filepath.Join(config.TEMP_UPLOAD_DIR, uuid.NewString()+filepath.Ext(fh.Filename))
		if err := c.SaveUploadedFile(fh, dst); err != nil {
			h.log.Error("staging upload failed", zap.Error(err))
			return nil, apperr.Internal("Could not stage uploads")
		}

		files = append(files, core.UploadFile{
			LocalPath: dst,
			Size:      fh.Size,
			MimeType:  mimeType,
		})
	}
	return files, nil
}

func formToInput(form SpecialistForm) core.CreateInput {
	return core.CreateInput{
		Title:        form.Title,
		Description:  form.Description,
		Status:       form.Status,
		DurationDays: form.EstimatedDays,
		BasePrice:    form.Price,
	}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
