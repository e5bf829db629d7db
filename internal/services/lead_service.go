package services

import (
	"time"

	"github.com/vaaltic/crm/internal/authz"
	"github.com/vaaltic/crm/internal/models"
	"github.com/vaaltic/crm/internal/repositories"
)

// LeadNotifier receives best-effort notifications about new leads.
type LeadNotifier interface {
	LeadCreated(lead *models.Lead)
}

type LeadService struct {
	repo     repositories.LeadRepository
	notifier LeadNotifier
}

// NewLeadService wires the lead store; notifier may be nil.
func NewLeadService(repo repositories.LeadRepository, notifier LeadNotifier) *LeadService {
	return &LeadService{repo: repo, notifier: notifier}
}

func (s *LeadService) Create(principal *models.User, in *models.LeadInput) (*models.Lead, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	lead := &models.Lead{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Company:    in.Company,
		Stage:      in.Stage,
		Source:     in.Source,
		Notes:      in.Notes,
		AssignedTo: in.AssignedTo,
	}
	authz.Stamp(&lead.Owned, principal, time.Now().UTC())

	if err := s.repo.Create(lead); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.LeadCreated(lead)
	}
	return lead, nil
}

func (s *LeadService) List(principal *models.User) ([]*models.Lead, error) {
	return s.repo.List(authz.ScopeFor(principal))
}

func (s *LeadService) Update(principal *models.User, id string, in *models.LeadInput) (*models.Lead, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// existence first, ownership second
	current, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModify(principal, current.CreatedBy) {
		return nil, models.ErrForbidden
	}

	updated := &models.Lead{
		Owned:      current.Owned,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Company:    in.Company,
		Stage:      in.Stage,
		Source:     in.Source,
		Notes:      in.Notes,
		AssignedTo: in.AssignedTo,
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *LeadService) Delete(principal *models.User, id string) error {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !authz.CanModify(principal, current.CreatedBy) {
		return models.ErrForbidden
	}
	return s.repo.Delete(id)
}
