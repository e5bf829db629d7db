package services

import (
	"time"

	"github.com/vaaltic/crm/internal/authz"
	"github.com/vaaltic/crm/internal/models"
	"github.com/vaaltic/crm/internal/repositories"
)

type DealService struct {
	repo        repositories.DealRepository
	contactRepo repositories.ContactRepository
}

func NewDealService(repo repositories.DealRepository, contactRepo repositories.ContactRepository) *DealService {
	return &DealService{repo: repo, contactRepo: contactRepo}
}

// Create verifies the referenced contact exists before any ownership
// work, so an unresolvable contact_id is a 404 to the caller. The check
// and the insert are two statements with no transaction between them; a
// contact deleted in that window leaves a dangling reference, which is
// accepted (see DESIGN.md).
func (s *DealService) Create(principal *models.User, in *models.DealInput) (*models.Deal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.contactRepo.GetByID(in.ContactID); err != nil {
		return nil, err
	}

	deal := &models.Deal{
		Title:             in.Title,
		Value:             in.Value,
		ExpectedCloseDate: in.ExpectedCloseDate,
		Stage:             in.Stage,
		Description:       in.Description,
		ContactID:         in.ContactID,
	}
	authz.Stamp(&deal.Owned, principal, time.Now().UTC())

	if err := s.repo.Create(deal); err != nil {
		return nil, err
	}
	return deal, nil
}

func (s *DealService) List(principal *models.User) ([]*models.Deal, error) {
	return s.repo.List(authz.ScopeFor(principal))
}

func (s *DealService) Update(principal *models.User, id string, in *models.DealInput) (*models.Deal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModify(principal, current.CreatedBy) {
		return nil, models.ErrForbidden
	}

	updated := &models.Deal{
		Owned:             current.Owned,
		Title:             in.Title,
		Value:             in.Value,
		ExpectedCloseDate: in.ExpectedCloseDate,
		Stage:             in.Stage,
		Description:       in.Description,
		ContactID:         in.ContactID,
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *DealService) Delete(principal *models.User, id string) error {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !authz.CanModify(principal, current.CreatedBy) {
		return models.ErrForbidden
	}
	return s.repo.Delete(id)
}
