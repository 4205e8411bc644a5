// Package cloudinary implements the media-upload port against the Cloudinary
// REST upload API (signed multipart POST).
package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"experano/internal/domain"
)

const defaultBaseURL = "https://api.cloudinary.com"

// Config holds the Cloudinary account credentials and upload settings.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	// Folder is the target folder for uploads, e.g. "event-images".
	Folder string
	// BaseURL overrides the API host; tests point it at a local server.
	BaseURL string
}

type client struct {
	cfg        Config
	httpClient *http.Client
	now        func() time.Time
}

// NewClient returns a MediaUploader that uploads images to Cloudinary.
func NewClient(cfg Config, httpClient *http.Client) domain.MediaUploader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &client{cfg: cfg, httpClient: httpClient, now: time.Now}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

func (c *client) Upload(ctx context.Context, filename string, file io.Reader) (*domain.UploadResult, error) {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	signature := c.sign(timestamp)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy file: %w", err)
	}
	fields := map[string]string{
		"api_key":   c.cfg.APIKey,
		"timestamp": timestamp,
		"signature": signature,
		"folder":    c.cfg.Folder,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", c.cfg.BaseURL, c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloudinary api returned status: %d", resp.StatusCode)
	}

	var data uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode cloudinary response: %w", err)
	}
	return &domain.UploadResult{URL: data.SecureURL, PublicID: data.PublicID}, nil
}

// sign builds the SHA-1 request signature over the alphabetically ordered
// upload parameters plus the API secret, per Cloudinary's signing scheme.
func (c *client) sign(timestamp string) string {
	params := fmt.Sprintf("folder=%s&timestamp=%s", c.cfg.Folder, timestamp)
	sum := sha1.Sum([]byte(params + c.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}
