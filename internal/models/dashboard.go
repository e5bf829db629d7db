package models

import "github.com/shopspring/decimal"

// DashboardSummary is the scoped analytics payload. LeadStages always
// carries all four stage keys so the frontend never special-cases a
// missing one.
type DashboardSummary struct {
	TotalLeads     int               `json:"total_leads"`
	TotalContacts  int               `json:"total_contacts"`
	TotalDeals     int               `json:"total_deals"`
	WonDeals       int               `json:"won_deals"`
	PipelineValue  decimal.Decimal   `json:"pipeline_value"`
	ConversionRate float64           `json:"conversion_rate"`
	LeadStages     map[LeadStage]int `json:"lead_stages"`
}
