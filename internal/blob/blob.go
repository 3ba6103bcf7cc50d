// Package blob uploads cover images to HTTP blob storage and returns the
// retrievable URL for the stored object.
package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// uploadResponse is the blob service's answer to a successful upload.
type uploadResponse struct {
	URL     string `json:"url"`
	Key     string `json:"key"`
	Success bool   `json:"success"`
}

// Client talks to the blob storage endpoint. Objects go under the covers/
// prefix with generated, collision-resistant names.
type Client struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// UploadDataURI stores an inline image payload (data URI) and returns its
// public URL. The object key is derived from the upload timestamp plus a
// random suffix so concurrent uploads cannot collide.
func (c *Client) UploadDataURI(ctx context.Context, dataURI string) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("blob endpoint not configured")
	}

	payload, ext, err := splitDataURI(dataURI)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("covers/cover_%d_%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	if err := writer.WriteField("key", key); err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	if err := writer.WriteField("image", payload); err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	if err := writer.WriteField("type", "base64"); err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/upload", &requestBody)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload rejected: status %d", resp.StatusCode)
	}

	var uploaded uploadResponse
	if err := json.Unmarshal(body, &uploaded); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if !uploaded.Success || uploaded.URL == "" {
		return "", fmt.Errorf("upload failed: no url in response")
	}
	return uploaded.URL, nil
}

// splitDataURI pulls the base64 payload out of a data URI and picks a file
// extension from the declared MIME type.
func splitDataURI(dataURI string) (payload, ext string, err error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", "", fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(dataURI, ",")
	if !ok || payload == "" {
		return "", "", fmt.Errorf("malformed data URI")
	}

	switch {
	case strings.Contains(meta, "image/png"):
		ext = ".png"
	case strings.Contains(meta, "image/gif"):
		ext = ".gif"
	case strings.Contains(meta, "image/webp"):
		ext = ".webp"
	default:
		ext = ".jpg"
	}
	return payload, ext, nil
}
