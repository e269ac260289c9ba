// pkg/pumpfun/metadata/ipfs.go
package metadata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// DefaultIPFSEndpoint is the pump.fun metadata upload API.
const DefaultIPFSEndpoint = "https://pump.fun/api/ipfs"

// IPFSUploader uploads metadata through the pump.fun IPFS endpoint.
type IPFSUploader struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewIPFSUploader creates an uploader. An empty endpoint selects
// DefaultIPFSEndpoint; a nil client gets a 30s timeout.
func NewIPFSUploader(endpoint string, httpClient *http.Client, logger *zap.Logger) *IPFSUploader {
	if endpoint == "" {
		endpoint = DefaultIPFSEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IPFSUploader{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger.Named("ipfs"),
	}
}

// Upload posts the image and fields as multipart form data.
func (u *IPFSUploader) Upload(ctx context.Context, meta CreateTokenMetadata) (*TokenMetadataResponse, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	body, contentType, err := buildForm(meta)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	u.logger.Debug("Uploading token metadata",
		zap.String("endpoint", u.endpoint),
		zap.String("symbol", meta.Symbol))

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload metadata: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upload metadata: unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	out, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	u.logger.Info("Token metadata uploaded", zap.String("uri", out.MetadataURI))
	return out, nil
}

func buildForm(meta CreateTokenMetadata) (io.Reader, string, error) {
	f, err := os.Open(meta.File)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(meta.File))
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copy image: %w", err)
	}

	fields := []struct{ key, value string }{
		{"name", meta.Name},
		{"symbol", meta.Symbol},
		{"description", meta.Description},
		{"twitter", meta.Twitter},
		{"telegram", meta.Telegram},
		{"website", meta.Website},
		{"showName", "true"},
	}
	for _, field := range fields {
		if err := w.WriteField(field.key, field.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field.key, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func parseResponse(raw []byte) (*TokenMetadataResponse, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("upload metadata: response is not JSON")
	}
	res := gjson.ParseBytes(raw)
	uri := res.Get("metadataUri").String()
	if uri == "" {
		return nil, fmt.Errorf("upload metadata: response has no metadataUri")
	}

	m := res.Get("metadata")
	return &TokenMetadataResponse{
		Metadata: TokenMetadata{
			Name:        m.Get("name").String(),
			Symbol:      m.Get("symbol").String(),
			Description: m.Get("description").String(),
			Image:       m.Get("image").String(),
			ShowName:    m.Get("showName").Bool(),
			CreatedOn:   m.Get("createdOn").String(),
			Twitter:     m.Get("twitter").String(),
			Telegram:    m.Get("telegram").String(),
			Website:     m.Get("website").String(),
		},
		MetadataURI: uri,
	}, nil
}
