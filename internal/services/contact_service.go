package services

import (
	"time"

	"github.com/vaaltic/crm/internal/authz"
	"github.com/vaaltic/crm/internal/models"
	"github.com/vaaltic/crm/internal/repositories"
)

type ContactService struct {
	repo repositories.ContactRepository
}

func NewContactService(repo repositories.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) Create(principal *models.User, in *models.ContactInput) (*models.Contact, error) {
	contact := &models.Contact{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Company:  in.Company,
		Position: in.Position,
	}
	authz.Stamp(&contact.Owned, principal, time.Now().UTC())

	if err := s.repo.Create(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) List(principal *models.User) ([]*models.Contact, error) {
	return s.repo.List(authz.ScopeFor(principal))
}

func (s *ContactService) Update(principal *models.User, id string, in *models.ContactInput) (*models.Contact, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModify(principal, current.CreatedBy) {
		return nil, models.ErrForbidden
	}

	updated := &models.Contact{
		Owned:    current.Owned,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Company:  in.Company,
		Position: in.Position,
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a contact without touching deals that reference it.
// Dangling contact_id references are tolerated; see DESIGN.md.
func (s *ContactService) Delete(principal *models.User, id string) error {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !authz.CanModify(principal, current.CreatedBy) {
		return models.ErrForbidden
	}
	return s.repo.Delete(id)
}
