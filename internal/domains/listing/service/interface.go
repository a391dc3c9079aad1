package service

import (
	"context"

	"github.com/google/uuid"

	"realestate-listing-api/internal/domains/listing/model"
)

// Service là business logic cho Listing.
// Không validate input: handler phải gọi model.ValidateListing trước.
type Service interface {
	GetAll(ctx context.Context) ([]model.ListingResponse, error)

	// GetByID returns nil, nil when the listing does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.ListingResponse, error)

	Create(ctx context.Context, req model.CreateListingRequest) (*model.ListingResponse, error)

	// Update returns false without writing anything when the listing does not exist.
	Update(ctx context.Context, id uuid.UUID, req model.UpdateListingRequest) (bool, error)

	// Delete returns false without writing anything when the listing does not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
