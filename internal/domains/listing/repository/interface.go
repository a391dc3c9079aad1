package repository

import (
	"context"

	"github.com/google/uuid"

	"realestate-listing-api/internal/domains/listing/model"
)

// Repository là data access cho Listing.
// Các method đọc trả về bản copy tách rời; Add/Update/Delete chỉ stage change,
// phải gọi UnitOfWork.SaveChanges để ghi xuống storage.
type Repository interface {
	GetAll(ctx context.Context) ([]model.Listing, error)

	// GetByID returns nil, nil when no listing matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Listing, error)

	// Add assigns an ID when listing.ID is zero and stages the insert.
	Add(ctx context.Context, listing *model.Listing) error
	Update(ctx context.Context, listing *model.Listing) error
	Delete(ctx context.Context, listing *model.Listing) error

	// ExistsWithTitleAndAddress ignores the listing with ignoreID when it is not nil.
	// A nil address and an empty address are treated as the same value.
	ExistsWithTitleAndAddress(ctx context.Context, title string, address *string, ignoreID *uuid.UUID) (bool, error)
}

// UnitOfWork commit tất cả change đã stage trong request, trả về số rows bị ảnh hưởng
type UnitOfWork interface {
	SaveChanges(ctx context.Context) (int, error)
}
