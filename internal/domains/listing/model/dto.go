package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// price đi ra JSON dạng number (500000), không phải string ("500000")
	decimal.MarshalJSONWithoutQuotes = true
}

// ListingInput là phần chung của create/update payload
type ListingInput struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
	Address     *string         `json:"address"`
}

// CreateListingRequest DTO cho POST /api/Listings
type CreateListingRequest struct {
	ListingInput
}

// UpdateListingRequest DTO cho PUT /api/Listings/:id.
// Full replacement: field optional bị bỏ trống sẽ thành null.
type UpdateListingRequest struct {
	ListingInput
}

// ListingResponse DTO for API response
type ListingResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
	Address     *string         `json:"address"`
}

// NewListing builds an entity from the input; ID is assigned when staged.
func (in ListingInput) NewListing() *Listing {
	return &Listing{
		Title:       in.Title,
		Price:       in.Price,
		Description: cloneString(in.Description),
		Address:     cloneString(in.Address),
	}
}

// ApplyTo overwrites every mutable field of l.
func (in ListingInput) ApplyTo(l *Listing) {
	l.Title = in.Title
	l.Price = in.Price
	l.Description = cloneString(in.Description)
	l.Address = cloneString(in.Address)
}

// ToResponse map entity sang DTO
func ToResponse(l *Listing) *ListingResponse {
	return &ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Price:       l.Price,
		Description: cloneString(l.Description),
		Address:     cloneString(l.Address),
	}
}
