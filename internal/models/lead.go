package models

type LeadStage string

const (
	LeadStageNew       LeadStage = "new"
	LeadStageContacted LeadStage = "contacted"
	LeadStageQualified LeadStage = "qualified"
	LeadStageConverted LeadStage = "converted"
)

// LeadStages lists every stage in a stable order; dashboard breakdowns
// must carry all of them even when a count is zero.
var LeadStages = []LeadStage{LeadStageNew, LeadStageContacted, LeadStageQualified, LeadStageConverted}

func (s LeadStage) Valid() bool {
	switch s {
	case LeadStageNew, LeadStageContacted, LeadStageQualified, LeadStageConverted:
		return true
	}
	return false
}

type LeadSource string

const (
	LeadSourceWebsite  LeadSource = "website"
	LeadSourceReferral LeadSource = "referral"
	LeadSourceCall     LeadSource = "call"
	LeadSourceCampaign LeadSource = "campaign"
)

func (s LeadSource) Valid() bool {
	switch s {
	case LeadSourceWebsite, LeadSourceReferral, LeadSourceCall, LeadSourceCampaign:
		return true
	}
	return false
}

type Lead struct {
	Owned
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      *string    `json:"phone"`
	Company    *string    `json:"company"`
	Stage      LeadStage  `json:"stage"`
	Source     LeadSource `json:"source"`
	Notes      *string    `json:"notes"`
	AssignedTo *string    `json:"assigned_to"`
}

// LeadInput is the create/update payload. Updates are full replaces of
// these fields only.
type LeadInput struct {
	Name       string     `json:"name" binding:"required"`
	Email      string     `json:"email" binding:"required,email"`
	Phone      *string    `json:"phone"`
	Company    *string    `json:"company"`
	Stage      LeadStage  `json:"stage"`
	Source     LeadSource `json:"source"`
	Notes      *string    `json:"notes"`
	AssignedTo *string    `json:"assigned_to"`
}

// Validate applies the stage/source defaults and rejects unknown values.
func (in *LeadInput) Validate() error {
	if in.Stage == "" {
		in.Stage = LeadStageNew
	}
	if in.Source == "" {
		in.Source = LeadSourceWebsite
	}
	if !in.Stage.Valid() {
		return NewValidationError("unknown lead stage: " + string(in.Stage))
	}
	if !in.Source.Valid() {
		return NewValidationError("unknown lead source: " + string(in.Source))
	}
	return nil
}
