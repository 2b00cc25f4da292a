package campaign

import "github.com/adlaunch/adlaunch-api/internal/models"

// Result of validating a draft campaign's editable fields.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

const (
	ReasonNameTooShort     = "name-too-short"
	ReasonMissingObjective = "missing-objective"
	ReasonMissingDates     = "missing-dates"
)

const minNameLength = 5

// Validate checks a campaign's fields for submittability. It is pure and
// deterministic; callers gate submission on Status == valid, not on this
// function directly.
func Validate(c models.Campaign) Result {
	var reasons []string
	if len(c.Name) < minNameLength {
		reasons = append(reasons, ReasonNameTooShort)
	}
	if c.Objective == "" {
		reasons = append(reasons, ReasonMissingObjective)
	}
	if c.StartDate == nil || c.EndDate == nil {
		reasons = append(reasons, ReasonMissingDates)
	}
	return Result{Valid: len(reasons) == 0, Errors: reasons}
}

// Status maps a validation result to the stored campaign status.
func (r Result) Status() string {
	if r.Valid {
		return models.CampaignStatusValid
	}
	return models.CampaignStatusInvalid
}
