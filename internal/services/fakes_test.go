package services

import (
	"github.com/shopspring/decimal"

	"github.com/vaaltic/crm/internal/authz"
	"github.com/vaaltic/crm/internal/models"
)

// In-memory stores standing in for the Postgres repositories.

type memUserRepo struct {
	users map[string]*models.User // keyed by email
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*models.User{}}
}

func (m *memUserRepo) Create(user *models.User) error {
	m.users[user.Email] = user
	return nil
}

func (m *memUserRepo) GetByEmail(email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByID(id string) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

type memLeadRepo struct {
	leads map[string]*models.Lead
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{leads: map[string]*models.Lead{}}
}

func (m *memLeadRepo) Create(lead *models.Lead) error {
	cp := *lead
	m.leads[lead.ID] = &cp
	return nil
}

func (m *memLeadRepo) GetByID(id string) (*models.Lead, error) {
	l, ok := m.leads[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memLeadRepo) Update(lead *models.Lead) error {
	if _, ok := m.leads[lead.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *lead
	m.leads[lead.ID] = &cp
	return nil
}

func (m *memLeadRepo) Delete(id string) error {
	delete(m.leads, id)
	return nil
}

func (m *memLeadRepo) List(scope authz.Scope) ([]*models.Lead, error) {
	out := []*models.Lead{}
	for _, l := range m.leads {
		if scope.Matches(l.CreatedBy) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memLeadRepo) Count(scope authz.Scope) (int, error) {
	n := 0
	for _, l := range m.leads {
		if scope.Matches(l.CreatedBy) {
			n++
		}
	}
	return n, nil
}

func (m *memLeadRepo) CountByStage(scope authz.Scope, stage models.LeadStage) (int, error) {
	n := 0
	for _, l := range m.leads {
		if scope.Matches(l.CreatedBy) && l.Stage == stage {
			n++
		}
	}
	return n, nil
}

type memContactRepo struct {
	contacts map[string]*models.Contact
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{contacts: map[string]*models.Contact{}}
}

func (m *memContactRepo) Create(contact *models.Contact) error {
	cp := *contact
	m.contacts[contact.ID] = &cp
	return nil
}

func (m *memContactRepo) GetByID(id string) (*models.Contact, error) {
	c, ok := m.contacts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memContactRepo) Update(contact *models.Contact) error {
	if _, ok := m.contacts[contact.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *contact
	m.contacts[contact.ID] = &cp
	return nil
}

func (m *memContactRepo) Delete(id string) error {
	delete(m.contacts, id)
	return nil
}

func (m *memContactRepo) List(scope authz.Scope) ([]*models.Contact, error) {
	out := []*models.Contact{}
	for _, c := range m.contacts {
		if scope.Matches(c.CreatedBy) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memContactRepo) Count(scope authz.Scope) (int, error) {
	n := 0
	for _, c := range m.contacts {
		if scope.Matches(c.CreatedBy) {
			n++
		}
	}
	return n, nil
}

type memDealRepo struct {
	deals map[string]*models.Deal
}

func newMemDealRepo() *memDealRepo {
	return &memDealRepo{deals: map[string]*models.Deal{}}
}

func (m *memDealRepo) Create(deal *models.Deal) error {
	cp := *deal
	m.deals[deal.ID] = &cp
	return nil
}

func (m *memDealRepo) GetByID(id string) (*models.Deal, error) {
	d, ok := m.deals[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDealRepo) Update(deal *models.Deal) error {
	if _, ok := m.deals[deal.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *deal
	m.deals[deal.ID] = &cp
	return nil
}

func (m *memDealRepo) Delete(id string) error {
	delete(m.deals, id)
	return nil
}

func (m *memDealRepo) List(scope authz.Scope) ([]*models.Deal, error) {
	out := []*models.Deal{}
	for _, d := range m.deals {
		if scope.Matches(d.CreatedBy) {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memDealRepo) Count(scope authz.Scope) (int, error) {
	n := 0
	for _, d := range m.deals {
		if scope.Matches(d.CreatedBy) {
			n++
		}
	}
	return n, nil
}

func (m *memDealRepo) CountByStage(scope authz.Scope, stage models.DealStage) (int, error) {
	n := 0
	for _, d := range m.deals {
		if scope.Matches(d.CreatedBy) && d.Stage == stage {
			n++
		}
	}
	return n, nil
}

func (m *memDealRepo) SumValueByStages(scope authz.Scope, stages []models.DealStage) (decimal.Decimal, error) {
	wanted := map[models.DealStage]bool{}
	for _, s := range stages {
		wanted[s] = true
	}
	total := decimal.Zero
	for _, d := range m.deals {
		if scope.Matches(d.CreatedBy) && wanted[d.Stage] {
			total = total.Add(d.Value)
		}
	}
	return total, nil
}
