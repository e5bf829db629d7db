package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Deal values travel as plain JSON numbers, same as the rest of the API.
	decimal.MarshalJSONWithoutQuotes = true
}

type DealStage string

const (
	DealStageProspect    DealStage = "prospect"
	DealStageProposal    DealStage = "proposal"
	DealStageNegotiation DealStage = "negotiation"
	DealStageWon         DealStage = "won"
	DealStageLost        DealStage = "lost"
)

// ActivePipelineStages are the stages that count toward pipeline value;
// won and lost deals are out of the pipeline.
var ActivePipelineStages = []DealStage{DealStageProspect, DealStageProposal, DealStageNegotiation}

func (s DealStage) Valid() bool {
	switch s {
	case DealStageProspect, DealStageProposal, DealStageNegotiation, DealStageWon, DealStageLost:
		return true
	}
	return false
}

type Deal struct {
	Owned
	Title             string          `json:"title"`
	Value             decimal.Decimal `json:"value"`
	ExpectedCloseDate time.Time       `json:"expected_close_date"`
	Stage             DealStage       `json:"stage"`
	Description       *string         `json:"description"`
	ContactID         string          `json:"contact_id"`
}

type DealInput struct {
	Title             string          `json:"title" binding:"required"`
	Value             decimal.Decimal `json:"value"`
	ExpectedCloseDate time.Time       `json:"expected_close_date" binding:"required"`
	Stage             DealStage       `json:"stage"`
	Description       *string         `json:"description"`
	ContactID         string          `json:"contact_id" binding:"required"`
}

func (in *DealInput) Validate() error {
	if in.Stage == "" {
		in.Stage = DealStageProspect
	}
	if !in.Stage.Valid() {
		return NewValidationError("unknown deal stage: " + string(in.Stage))
	}
	if in.Value.IsNegative() {
		return NewValidationError("deal value must not be negative")
	}
	return nil
}
