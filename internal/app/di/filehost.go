package di

import (
	"context"
	"fmt"

	"trading_journal/internal/feature/charts/usecase"
	"trading_journal/internal/platform/config"
	"trading_journal/internal/platform/filehost"
)

// FileHosts holds the configured file host. S3 is non-nil only for the s3 provider,
// the one provider that can presign direct uploads.
type FileHosts struct {
	Files usecase.FileHost
	S3    *filehost.S3
}

// Deleter returns the file host that actually deletes files, or nil when the
// provider is none.
func (f FileHosts) Deleter() usecase.FileHost {
	if _, ok := f.Files.(filehost.Noop); ok {
		return nil
	}
	return f.Files
}

// NewFileHosts builds the file host selected by cfg.FileHost.Provider.
func NewFileHosts(ctx context.Context, cfg *config.Config) (FileHosts, error) {
	switch cfg.FileHost.Provider {
	case config.ProviderUploadThing:
		return FileHosts{Files: filehost.NewUploadThing(cfg.UploadThing)}, nil
	case config.ProviderS3:
		s3, err := filehost.NewS3(ctx, cfg.S3)
		if err != nil {
			return FileHosts{}, err
		}
		return FileHosts{Files: s3, S3: s3}, nil
	case config.ProviderNone:
		return FileHosts{Files: filehost.Noop{}}, nil
	default:
		return FileHosts{}, fmt.Errorf("unknown file host provider %q", cfg.FileHost.Provider)
	}
}
