package filehost

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"trading_journal/internal/platform/config"
	infrahttp "trading_journal/internal/platform/http"
)

const (
	deleteFilesPath = "/v6/deleteFiles"
	apiKeyHeader    = "X-Uploadthing-Api-Key"
)

// UploadThing deletes files through the UploadThing REST API.
type UploadThing struct {
	client *resty.Client
}

type deleteFilesRequest struct {
	FileKeys []string `json:"fileKeys"`
}

type deleteFilesResponse struct {
	Success      bool `json:"success"`
	DeletedCount int  `json:"deletedCount"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewUploadThing creates a client for cfg.BaseURL authenticated with cfg.APIKey.
func NewUploadThing(cfg config.UploadThing) *UploadThing {
	client := resty.NewWithClient(infrahttp.NewHTTPClient(cfg.Timeout)).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader(apiKeyHeader, cfg.APIKey)
	return &UploadThing{client: client}
}

// DeleteFiles deletes the given file keys in one request.
func (u *UploadThing) DeleteFiles(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	var out deleteFilesResponse
	var apiErr errorResponse
	resp, err := u.client.R().
		SetContext(ctx).
		SetBody(deleteFilesRequest{FileKeys: keys}).
		SetResult(&out).
		SetError(&apiErr).
		Post(deleteFilesPath)
	if err != nil {
		return fmt.Errorf("uploadthing delete: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		if apiErr.Error != "" {
			return fmt.Errorf("uploadthing delete: http %d: %s", resp.StatusCode(), apiErr.Error)
		}
		return fmt.Errorf("uploadthing delete: http %d", resp.StatusCode())
	}
	if !out.Success {
		return errors.New("uploadthing delete: not acknowledged")
	}
	return nil
}
