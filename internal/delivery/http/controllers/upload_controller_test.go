package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"experano/internal/delivery/http/helpers"
	"experano/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadController_Upload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uploader := &fakeUploader{result: &domain.UploadResult{
			URL:      "https://res.example.com/poster.png",
			PublicID: "events/poster",
		}}
		ctrl := NewUploadController(testLogger(), uploader)

		body, contentType := multipartBody(t, "file", "poster.png", []byte("png-bytes"))
		req := httptest.NewRequest(http.MethodPost, "http://test/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.Upload(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var result domain.UploadResult
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
		assert.Equal(t, "https://res.example.com/poster.png", result.URL)
		assert.Equal(t, "events/poster", result.PublicID)
		assert.Equal(t, "poster.png", uploader.lastFilename)
		assert.Equal(t, []byte("png-bytes"), uploader.lastBytes)
	})

	t.Run("missing file part", func(t *testing.T) {
		ctrl := NewUploadController(testLogger(), &fakeUploader{})

		body, contentType := multipartBody(t, "attachment", "poster.png", []byte("png-bytes"))
		req := httptest.NewRequest(http.MethodPost, "http://test/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.Upload(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, helpers.ErrCodeBadRequest, decodeError(t, rr).Error.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		ctrl := NewUploadController(testLogger(), &fakeUploader{})
		req := httptest.NewRequest(http.MethodPost, "http://test/api/upload", bytes.NewBufferString("plain body"))
		rr := httptest.NewRecorder()

		ctrl.Upload(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("uploader failure", func(t *testing.T) {
		ctrl := NewUploadController(testLogger(), &fakeUploader{err: assert.AnError})

		body, contentType := multipartBody(t, "file", "poster.png", []byte("png-bytes"))
		req := httptest.NewRequest(http.MethodPost, "http://test/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		ctrl.Upload(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, helpers.ErrCodeInternalError, decodeError(t, rr).Error.Code)
	})
}
