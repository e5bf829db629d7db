package services

import (
	"github.com/vaaltic/crm/internal/authz"
	"github.com/vaaltic/crm/internal/models"
	"github.com/vaaltic/crm/internal/repositories"
)

// AnalyticsService computes the dashboard summary under exactly the same
// visibility scope as the list endpoints.
type AnalyticsService struct {
	leads    repositories.LeadRepository
	contacts repositories.ContactRepository
	deals    repositories.DealRepository
}

func NewAnalyticsService(
	leads repositories.LeadRepository,
	contacts repositories.ContactRepository,
	deals repositories.DealRepository,
) *AnalyticsService {
	return &AnalyticsService{leads: leads, contacts: contacts, deals: deals}
}

func (s *AnalyticsService) Dashboard(principal *models.User) (*models.DashboardSummary, error) {
	scope := authz.ScopeFor(principal)

	totalLeads, err := s.leads.Count(scope)
	if err != nil {
		return nil, err
	}
	totalContacts, err := s.contacts.Count(scope)
	if err != nil {
		return nil, err
	}
	totalDeals, err := s.deals.Count(scope)
	if err != nil {
		return nil, err
	}
	wonDeals, err := s.deals.CountByStage(scope, models.DealStageWon)
	if err != nil {
		return nil, err
	}

	pipelineValue, err := s.deals.SumValueByStages(scope, models.ActivePipelineStages)
	if err != nil {
		return nil, err
	}

	// 0 when there are no deals; a division error is not an acceptable
	// answer to an empty pipeline.
	conversionRate := 0.0
	if totalDeals > 0 {
		conversionRate = float64(wonDeals) / float64(totalDeals) * 100
	}

	leadStages := make(map[models.LeadStage]int, len(models.LeadStages))
	for _, stage := range models.LeadStages {
		n, err := s.leads.CountByStage(scope, stage)
		if err != nil {
			return nil, err
		}
		leadStages[stage] = n
	}

	return &models.DashboardSummary{
		TotalLeads:     totalLeads,
		TotalContacts:  totalContacts,
		TotalDeals:     totalDeals,
		WonDeals:       wonDeals,
		PipelineValue:  pipelineValue,
		ConversionRate: conversionRate,
		LeadStages:     leadStages,
	}, nil
}
