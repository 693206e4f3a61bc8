// Package entity defines the domain models for the charts feature.
package entity

import "time"

// ChartRecord links a stored chart image to the trading session it depicts.
// Records are never mutated after creation.
type ChartRecord struct {
	ID          string    // Storage-assigned identifier (ObjectID hex or UUID)
	ImageURL    string    // Durable locator of the stored image
	TradingDate time.Time // Start of the Kolkata trading day, in UTC
	UploadedAt  time.Time // When the record was created
	CreatedAt   time.Time // Database-internal creation marker
}
