// Package avatar uploads profile photos to the imgbb image host. The
// upload is best-effort: a failure leaves the profile without an avatar
// and never blocks saving it.
package avatar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nhle/study-planner/internal/credential"
)

// CredentialKey is the keyring entry holding the imgbb API key.
const CredentialKey = "imgbb-api-key"

const defaultBaseURL = "https://api.imgbb.com/1/upload"

// Uploader posts base64-encoded images to the imgbb upload endpoint.
type Uploader struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewUploader creates an uploader with the given API key.
func NewUploader(apiKey string) *Uploader {
	return &Uploader{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewFromKeyring creates an uploader using the API key stored in the
// system keyring. Returns an error when no key has been configured.
func NewFromKeyring() (*Uploader, error) {
	apiKey, err := credential.Get(CredentialKey)
	if err != nil {
		return nil, fmt.Errorf("loading imgbb api key: %w", err)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("imgbb api key is empty")
	}
	return NewUploader(apiKey), nil
}

// uploadResponse mirrors the subset of the imgbb response we consume.
type uploadResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload posts a base64-encoded image and returns its hosted URL.
func (u *Uploader) Upload(ctx context.Context, imageBase64 string) (string, error) {
	form := url.Values{}
	form.Set("key", u.apiKey)
	form.Set("image", imageBase64)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing upload request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading upload response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d from image host: %s",
			resp.StatusCode, string(body))
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing upload response: %w", err)
	}
	if !parsed.Success || parsed.Data.URL == "" {
		return "", fmt.Errorf("image host rejected upload (status %d)", parsed.Status)
	}

	return parsed.Data.URL, nil
}
