package model

import (
	"realestate-listing-api/internal/shared/apperror"
)

const (
	ServiceComponent    = "ListingService"
	RepositoryComponent = "ListingRepository"
	UnitOfWorkComponent = "UnitOfWork"
)

const duplicateListingMessage = "A listing with the same title and address already exists."

// NewDuplicateListing tạo lỗi Business khi (title, address) đã tồn tại
func NewDuplicateListing() *apperror.Error {
	return apperror.Business(ServiceComponent, duplicateListingMessage)
}

// NewStorageFailure bọc lỗi đọc/stage từ repository thành lỗi Technical
func NewStorageFailure(message string, err error) *apperror.Error {
	return apperror.Technical(RepositoryComponent, message, err)
}

// NewCommitFailure wraps a failed SaveChanges.
func NewCommitFailure(err error) *apperror.Error {
	return apperror.Technical(UnitOfWorkComponent, "Failed to save changes.", err)
}
