package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrUploadNotConfigured is returned when no imgbb API key was provided.
var ErrUploadNotConfigured = errors.New("imgbb api key is not configured")

// ImgBBService uploads claim documents to the imgbb image host and returns
// the publicly retrievable URL.
type ImgBBService struct {
	apiKey string
	client *http.Client
	log    *zap.Logger
}

// NewImgBBService creates an upload client with an explicit timeout.
func NewImgBBService(apiKey string, log *zap.Logger) *ImgBBService {
	return &ImgBBService{
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
}

// Upload sends the file contents as a multipart form and returns the hosted
// display URL.
func (s *ImgBBService) Upload(filename string, contents io.Reader) (string, error) {
	if s.apiKey == "" {
		return "", ErrUploadNotConfigured
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, contents); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("https://api.imgbb.com/1/upload?key=%s", s.apiKey)
	resp, err := s.client.Post(endpoint, writer.FormDataContentType(), &buf)
	if err != nil {
		s.log.Error("document upload failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("document host returned unexpected status", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("imgbb returned status %d", resp.StatusCode)
	}

	var parsed imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if !parsed.Success {
		return "", errors.New("imgbb rejected the upload")
	}

	if parsed.Data.DisplayURL != "" {
		return parsed.Data.DisplayURL, nil
	}
	return parsed.Data.URL, nil
}
