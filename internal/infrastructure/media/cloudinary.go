// Package media uploads profile photos to a Cloudinary-compatible image host.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const uploadTimeout = 30 * time.Second

// Config names the upload endpoint and the unsigned preset.
type Config struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
}

// CloudinaryUploader posts images with an unsigned upload preset.
type CloudinaryUploader struct {
	cfg    Config
	client *http.Client
}

func NewCloudinaryUploader(cfg Config, client *http.Client) *CloudinaryUploader {
	if client == nil {
		client = &http.Client{Timeout: uploadTimeout}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &CloudinaryUploader{cfg: cfg, client: client}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Upload sends one image and returns its secure_url. There is no retry.
func (u *CloudinaryUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if u.cfg.CloudName == "" || u.cfg.UploadPreset == "" {
		return "", errors.New("media: cloud name and upload preset are required")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.WriteField("upload_preset", u.cfg.UploadPreset)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", u.cfg.BaseURL, u.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		return "", fmt.Errorf("media: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("media: upload: %w", err)
	}
	defer resp.Body.Close()

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("media: decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		if body.Error != nil && body.Error.Message != "" {
			msg = body.Error.Message
		}
		return "", fmt.Errorf("media: upload rejected: %s", msg)
	}
	if body.SecureURL == "" {
		return "", errors.New("media: response without secure_url")
	}
	return body.SecureURL, nil
}
