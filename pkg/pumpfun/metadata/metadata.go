// =============================
// File: pkg/pumpfun/metadata/metadata.go
// =============================

// Package metadata uploads token metadata for new Pump.fun launches.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMetadata is returned when required metadata fields are missing.
var ErrInvalidMetadata = errors.New("invalid token metadata")

// CreateTokenMetadata describes a token to be launched. File is a local
// path to the token image.
type CreateTokenMetadata struct {
	Name        string
	Symbol      string
	Description string
	File        string
	Twitter     string
	Telegram    string
	Website     string
}

// Validate checks the fields the upload endpoint requires.
func (m CreateTokenMetadata) Validate() error {
	var missing []string
	if strings.TrimSpace(m.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(m.Symbol) == "" {
		missing = append(missing, "symbol")
	}
	if strings.TrimSpace(m.File) == "" {
		missing = append(missing, "file")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidMetadata, strings.Join(missing, ", "))
	}
	return nil
}

// TokenMetadata is the metadata document stored on IPFS.
type TokenMetadata struct {
	Name        string
	Symbol      string
	Description string
	Image       string
	ShowName    bool
	CreatedOn   string
	Twitter     string
	Telegram    string
	Website     string
}

// TokenMetadataResponse is the result of an upload.
type TokenMetadataResponse struct {
	Metadata    TokenMetadata
	MetadataURI string
}

// Uploader stores token metadata and returns its URI.
type Uploader interface {
	Upload(ctx context.Context, meta CreateTokenMetadata) (*TokenMetadataResponse, error)
}
