package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"realestate-listing-api/internal/domains/listing/model"
	"realestate-listing-api/internal/domains/listing/repository"
	"realestate-listing-api/pkg/database"
)

type listingService struct {
	repo repository.Repository
	uow  repository.UnitOfWork
}

// NewService nhận repository và unit of work từ container
func NewService(repo repository.Repository, uow repository.UnitOfWork) Service {
	return &listingService{repo: repo, uow: uow}
}

func (s *listingService) GetAll(ctx context.Context) ([]model.ListingResponse, error) {
	listings, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, model.NewStorageFailure("Failed to load listings.", err)
	}

	result := make([]model.ListingResponse, 0, len(listings))
	for i := range listings {
		result = append(result, *model.ToResponse(&listings[i]))
	}
	return result, nil
}

func (s *listingService) GetByID(ctx context.Context, id uuid.UUID) (*model.ListingResponse, error) {
	listing, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, nil
	}
	return model.ToResponse(listing), nil
}

func (s *listingService) Create(ctx context.Context, req model.CreateListingRequest) (*model.ListingResponse, error) {
	if err := s.ensureUnique(ctx, req.Title, req.Address, nil); err != nil {
		return nil, err
	}

	listing := req.NewListing()

	if err := s.repo.Add(ctx, listing); err != nil {
		return nil, model.NewStorageFailure("Failed to stage listing.", err)
	}
	if err := s.saveChanges(ctx); err != nil {
		return nil, err
	}

	return model.ToResponse(listing), nil
}

func (s *listingService) Update(ctx context.Context, id uuid.UUID, req model.UpdateListingRequest) (bool, error) {
	listing, err := s.findByID(ctx, id)
	if err != nil {
		return false, err
	}
	if listing == nil {
		return false, nil
	}

	if err := s.ensureUnique(ctx, req.Title, req.Address, &id); err != nil {
		return false, err
	}

	req.ApplyTo(listing)

	if err := s.repo.Update(ctx, listing); err != nil {
		return false, model.NewStorageFailure("Failed to stage listing update.", err)
	}
	if err := s.saveChanges(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *listingService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	listing, err := s.findByID(ctx, id)
	if err != nil {
		return false, err
	}
	if listing == nil {
		return false, nil
	}

	if err := s.repo.Delete(ctx, listing); err != nil {
		return false, model.NewStorageFailure("Failed to stage listing delete.", err)
	}
	if err := s.saveChanges(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *listingService) ensureUnique(ctx context.Context, title string, address *string, ignoreID *uuid.UUID) error {
	exists, err := s.repo.ExistsWithTitleAndAddress(ctx, title, address, ignoreID)
	if err != nil {
		return model.NewStorageFailure("Failed to check listing uniqueness.", err)
	}
	if exists {
		return model.NewDuplicateListing()
	}
	return nil
}

// saveChanges: unique index là lớp chặn cuối khi hai request ghi cùng lúc
func (s *listingService) saveChanges(ctx context.Context) error {
	if _, err := s.uow.SaveChanges(ctx); err != nil {
		if errors.Is(err, database.ErrUniqueViolation) {
			return model.NewDuplicateListing()
		}
		return model.NewCommitFailure(err)
	}
	return nil
}

func (s *listingService) findByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, model.NewStorageFailure("Failed to load listing.", err)
	}
	return listing, nil
}
