package filehost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading_journal/internal/platform/config"
)

func testAWSConfig() aws.Config {
	return aws.Config{
		Region:      "ap-south-1",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")),
	}
}

func newTestS3(t *testing.T, cfg config.S3, handler http.HandlerFunc) *S3 {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return newS3(testAWSConfig(), cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(server.URL)
		o.UsePathStyle = true
		o.RetryMaxAttempts = 1
	})
}

type postPolicy struct {
	Expiration string `json:"expiration"`
	Conditions []any  `json:"conditions"`
}

func decodePolicy(t *testing.T, fields map[string]string) postPolicy {
	t.Helper()

	raw, err := base64.StdEncoding.DecodeString(fields["policy"])
	require.NoError(t, err)
	var p postPolicy
	require.NoError(t, json.Unmarshal(raw, &p))
	return p
}

func TestS3_Presign(t *testing.T) {
	t.Parallel()

	store := newS3(testAWSConfig(), config.S3{
		Region:        "ap-south-1",
		Bucket:        "charts-bucket",
		Prefix:        "/charts/",
		PresignExpiry: 10 * time.Minute,
	})

	before := time.Now().UTC()
	up, err := store.Presign(context.Background(), "abc-nifty.png", "image/png", 4<<20)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, up.Method)
	assert.Equal(t, 10*time.Minute, up.Expires)

	parsed, err := url.Parse(up.URL)
	require.NoError(t, err)
	assert.Contains(t, parsed.Host, "charts-bucket")

	assert.Equal(t, "charts/abc-nifty.png", up.Fields["key"])
	assert.Equal(t, "image/png", up.Fields["Content-Type"])
	assert.NotEmpty(t, up.Fields["X-Amz-Signature"])
	assert.Equal(t, "AWS4-HMAC-SHA256", up.Fields["X-Amz-Algorithm"])

	policy := decodePolicy(t, up.Fields)
	assert.Contains(t, policy.Conditions, []any{"content-length-range", float64(1), float64(4 << 20)})
	assert.Contains(t, policy.Conditions, map[string]any{"Content-Type": "image/png"})
	assert.Contains(t, policy.Conditions, map[string]any{"key": "charts/abc-nifty.png"})
	assert.Contains(t, policy.Conditions, map[string]any{"bucket": "charts-bucket"})

	expires, err := time.Parse(time.RFC3339, policy.Expiration)
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(10*time.Minute), expires, time.Minute)
}

func TestS3_Presign_DefaultExpiry(t *testing.T) {
	t.Parallel()

	store := newS3(testAWSConfig(), config.S3{Bucket: "charts-bucket"})

	before := time.Now().UTC()
	up, err := store.Presign(context.Background(), "a.png", "image/webp", 100)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, up.Expires)

	policy := decodePolicy(t, up.Fields)
	assert.Contains(t, policy.Conditions, []any{"content-length-range", float64(1), float64(100)})
	assert.Contains(t, policy.Conditions, map[string]any{"Content-Type": "image/webp"})
	expires, err := time.Parse(time.RFC3339, policy.Expiration)
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(15*time.Minute), expires, time.Minute)
}

func TestS3_PublicURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.S3
		key  string
		want string
	}{
		{
			name: "virtual hosted bucket url",
			cfg:  config.S3{Region: "ap-south-1", Bucket: "charts-bucket", Prefix: "charts"},
			key:  "abc.png",
			want: "https://charts-bucket.s3.ap-south-1.amazonaws.com/charts/abc.png",
		},
		{
			name: "public base url without prefix",
			cfg:  config.S3{Bucket: "charts-bucket", PublicBaseURL: "https://cdn.example.com/"},
			key:  "abc.png",
			want: "https://cdn.example.com/abc.png",
		},
		{
			name: "key is escaped",
			cfg:  config.S3{Bucket: "b", PublicBaseURL: "https://cdn.example.com", Prefix: "c"},
			key:  "a b.png",
			want: "https://cdn.example.com/c/a%20b.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newS3(testAWSConfig(), tt.cfg)
			assert.Equal(t, tt.want, store.PublicURL(tt.key))
		})
	}
}

func TestS3_DeleteFiles(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var paths []string
	store := newTestS3(t, config.S3{Bucket: "charts-bucket", Prefix: "charts"}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	err := store.DeleteFiles(context.Background(), "a.png", "b.png")

	require.NoError(t, err)
	assert.Equal(t, []string{"/charts-bucket/charts/a.png", "/charts-bucket/charts/b.png"}, paths)
}

func TestS3_DeleteFiles_JoinsFailures(t *testing.T) {
	t.Parallel()

	store := newTestS3(t, config.S3{Bucket: "charts-bucket"}, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/ok.png") {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`))
	})

	err := store.DeleteFiles(context.Background(), "ok.png", "denied.png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=denied.png")
	assert.NotContains(t, err.Error(), "key=ok.png")
}
