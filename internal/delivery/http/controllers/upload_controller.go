package controllers

import (
	"log/slog"
	"net/http"

	"experano/internal/delivery/http/helpers"
	"experano/internal/domain"
)

// maxUploadBytes caps event image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// UploadController handles event image uploads to the media host.
type UploadController struct {
	Logger   *slog.Logger
	Uploader domain.MediaUploader
}

// NewUploadController creates an UploadController with the given logger and uploader.
func NewUploadController(logger *slog.Logger, uploader domain.MediaUploader) *UploadController {
	return &UploadController{
		Logger:   logger,
		Uploader: uploader,
	}
}

// Upload godoc
// @Summary Upload an event image
// @Description Accepts a multipart form with a "file" part, stores it with the media host, and returns the hosted URL.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} domain.UploadResult
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /api/upload [post]
func (c *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file is required")
		return
	}
	defer file.Close()

	result, err := c.Uploader.Upload(r.Context(), header.Filename, file)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, result)
}
