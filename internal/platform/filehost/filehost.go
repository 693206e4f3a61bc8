// Package filehost talks to the services that store uploaded chart images.
//
// The service never handles image bytes itself: clients upload straight to the host,
// and the service only deletes files by key or hands out presigned upload URLs.
package filehost

import "context"

// Noop is used when no file host is configured; deletions succeed without doing anything.
type Noop struct{}

// DeleteFiles does nothing.
func (Noop) DeleteFiles(ctx context.Context, keys ...string) error {
	return nil
}
