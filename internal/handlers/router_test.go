package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaaltic/crm/internal/authz"
	"github.com/vaaltic/crm/internal/handlers"
	"github.com/vaaltic/crm/internal/middleware"
	"github.com/vaaltic/crm/internal/models"
	"github.com/vaaltic/crm/internal/routes"
	"github.com/vaaltic/crm/internal/services"
)

// In-memory stores backing a full router, so these tests exercise the
// real middleware, services and authorization rules end to end.

type memUserRepo struct{ users map[string]*models.User }

func (m *memUserRepo) Create(u *models.User) error { m.users[u.Email] = u; return nil }
func (m *memUserRepo) GetByEmail(email string) (*models.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}
func (m *memUserRepo) GetByID(id string) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

type memLeadRepo struct{ leads map[string]*models.Lead }

func (m *memLeadRepo) Create(l *models.Lead) error { m.leads[l.ID] = l; return nil }
func (m *memLeadRepo) GetByID(id string) (*models.Lead, error) {
	if l, ok := m.leads[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, models.ErrNotFound
}
func (m *memLeadRepo) Update(l *models.Lead) error { m.leads[l.ID] = l; return nil }
func (m *memLeadRepo) Delete(id string) error      { delete(m.leads, id); return nil }
func (m *memLeadRepo) List(scope authz.Scope) ([]*models.Lead, error) {
	out := []*models.Lead{}
	for _, l := range m.leads {
		if scope.Matches(l.CreatedBy) {
			out = append(out, l)
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

type memContactRepo struct{ contacts map[string]*models.Contact }

func (m *memContactRepo) Create(c *models.Contact) error { m.contacts[c.ID] = c; return nil }
func (m *memContactRepo) GetByID(id string) (*models.Contact, error) {
	if c, ok := m.contacts[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, models.ErrNotFound
}
func (m *memContactRepo) Update(c *models.Contact) error { m.contacts[c.ID] = c; return nil }
func (m *memContactRepo) Delete(id string) error         { delete(m.contacts, id); return nil }
func (m *memContactRepo) List(scope authz.Scope) ([]*models.Contact, error) {
	out := []*models.Contact{}
	for _, c := range m.contacts {
		if scope.Matches(c.CreatedBy) {
			out = append(out, c)
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

type memDealRepo struct{ deals map[string]*models.Deal }

func (m *memDealRepo) Create(d *models.Deal) error { m.deals[d.ID] = d; return nil }
func (m *memDealRepo) GetByID(id string) (*models.Deal, error) {
	if d, ok := m.deals[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, models.ErrNotFound
}
func (m *memDealRepo) Update(d *models.Deal) error { m.deals[d.ID] = d; return nil }
func (m *memDealRepo) Delete(id string) error      { delete(m.deals, id); return nil }
func (m *memDealRepo) List(scope authz.Scope) ([]*models.Deal, error) {
	out := []*models.Deal{}
	for _, d := range m.deals {
		if scope.Matches(d.CreatedBy) {
			out = append(out, d)
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

type testEnv struct {
	router  *gin.Engine
	users   *memUserRepo
	limiter *middleware.LoginRateLimiter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &memUserRepo{users: map[string]*models.User{}}
	leads := &memLeadRepo{leads: map[string]*models.Lead{}}
	contacts := &memContactRepo{contacts: map[string]*models.Contact{}}
	deals := &memDealRepo{deals: map[string]*models.Deal{}}

	authService := services.NewAuthService("test-secret", time.Hour)
	userService := services.NewUserService(users, authService, nil)
	leadService := services.NewLeadService(leads, nil)
	contactService := services.NewContactService(contacts)
	dealService := services.NewDealService(deals, contacts)
	analyticsService := services.NewAnalyticsService(leads, contacts, deals)

	limiter := middleware.NewLoginRateLimiter(1000)
	t.Cleanup(limiter.Stop)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(authService, users))
	routes.SetupRoutes(
		r,
		handlers.NewAuthHandler(userService),
		handlers.NewLeadHandler(leadService),
		handlers.NewContactHandler(contactService),
		handlers.NewDealHandler(dealService),
		handlers.NewAnalyticsHandler(analyticsService),
		limiter,
	)
	return &testEnv{router: r, users: users, limiter: limiter}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(b)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates an account and returns its bearer token.
func (e *testEnv) registerAndLogin(t *testing.T, email string, role models.Role) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "full_name": "Test " + email, "password": "pw", "role": role,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	body := gin.H{"email": "dup@example.com", "full_name": "Dup", "password": "pw"}
	w := env.do(t, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")
}

func TestLoginAndMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "me@example.com", models.RoleCustomer)

	w := env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "me@example.com")

	w = env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "me@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLeadOwnershipLifecycle(t *testing.T) {
	env := newTestEnv(t)
	tokenA := env.registerAndLogin(t, "a@example.com", models.RoleCustomer)
	tokenB := env.registerAndLogin(t, "b@example.com", models.RoleCustomer)
	tokenAdmin := env.registerAndLogin(t, "root@example.com", models.RoleAdmin)

	// A creates a lead; created_by in the payload must be ignored
	w := env.do(t, http.MethodPost, "/api/leads", tokenA, gin.H{
		"name": "Lead One", "email": "lead@example.com",
		"stage": "new", "source": "referral",
		"created_by": "spoofed-owner",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var lead models.Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lead))
	assert.Equal(t, env.users.users["a@example.com"].ID, lead.CreatedBy)
	assert.Equal(t, models.LeadStageNew, lead.Stage)
	assert.Equal(t, models.LeadSourceReferral, lead.Source)

	// B sees nothing, A sees one
	w = env.do(t, http.MethodGet, "/api/leads", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = env.do(t, http.MethodGet, "/api/leads", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, lead.ID, listed[0].ID)

	// update via A keeps ownership even with a spoofed created_by
	w = env.do(t, http.MethodPut, "/api/leads/"+lead.ID, tokenA, gin.H{
		"name": "Lead Renamed", "email": "lead@example.com", "created_by": "spoofed",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, lead.CreatedBy, updated.CreatedBy)

	// B cannot delete it, admin can; missing record is a 404
	w = env.do(t, http.MethodDelete, "/api/leads/"+lead.ID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, "/api/leads/"+lead.ID, tokenAdmin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/api/leads/"+lead.ID, tokenAdmin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDealCreationContactCheck(t *testing.T) {
	env := newTestEnv(t)
	tokenAdmin := env.registerAndLogin(t, "root@example.com", models.RoleAdmin)

	deal := gin.H{
		"title": "Big Deal", "value": 50000,
		"expected_close_date": time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
		"contact_id":          "nonexistent",
	}
	w := env.do(t, http.MethodPost, "/api/deals", tokenAdmin, deal)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/contacts", tokenAdmin, gin.H{
		"name": "Carol", "email": "carol@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var contact models.Contact
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &contact))

	deal["contact_id"] = contact.ID
	w = env.do(t, http.MethodPost, "/api/deals", tokenAdmin, deal)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created models.Deal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.DealStageProspect, created.Stage, "stage defaults to prospect")
}

func TestDashboardScopedAndComplete(t *testing.T) {
	env := newTestEnv(t)
	tokenA := env.registerAndLogin(t, "a@example.com", models.RoleCustomer)

	w := env.do(t, http.MethodPost, "/api/leads", tokenA, gin.H{
		"name": "L", "email": "l@example.com", "stage": "qualified",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/analytics/dashboard", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary struct {
		TotalLeads     int            `json:"total_leads"`
		TotalDeals     int            `json:"total_deals"`
		ConversionRate float64        `json:"conversion_rate"`
		LeadStages     map[string]int `json:"lead_stages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.TotalLeads)
	assert.Equal(t, 0, summary.TotalDeals)
	assert.Equal(t, 0.0, summary.ConversionRate)
	require.Len(t, summary.LeadStages, 4)
	assert.Equal(t, 1, summary.LeadStages["qualified"])
	assert.Equal(t, 0, summary.LeadStages["converted"])
}

func TestDeactivatedPrincipalLockedOut(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "gone@example.com", models.RoleCustomer)

	// token stays valid and unexpired; only the stored flag flips
	env.users.users["gone@example.com"].IsActive = false

	for _, path := range []string{"/api/auth/me", "/api/leads", "/api/analytics/dashboard"} {
		w := env.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestUnknownEnumRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "a@example.com", models.RoleCustomer)

	w := env.do(t, http.MethodPost, "/api/leads", token, gin.H{
		"name": "L", "email": "l@example.com", "source": "carrier-pigeon",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
