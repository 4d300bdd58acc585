package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product entity with its properties and metadata.
// Image is either empty (no picture attached) or the fully resolved public
// reference returned by the blob store after a successful upload.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
	UpdatedAt   time.Time
	CreatedAt   time.Time
}

// InitMeta initializes the product metadata including ID and timestamps.
func (p *Product) InitMeta() {
	p.ID = uuid.New()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}
