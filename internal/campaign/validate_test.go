package campaign

import (
	"testing"
	"time"

	"github.com/adlaunch/adlaunch-api/internal/models"
	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestValidate(t *testing.T) {
	start := datePtr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	end := datePtr(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		campaign models.Campaign
		valid    bool
		errors   []string
	}{
		{
			name: "complete campaign",
			campaign: models.Campaign{
				Name:      "Spring Sale",
				Objective: models.ObjectiveLinkClicks,
				StartDate: start,
				EndDate:   end,
			},
			valid: true,
		},
		{
			name: "name below minimum length",
			campaign: models.Campaign{
				Name:      "Ad 1",
				Objective: models.ObjectiveReach,
				StartDate: start,
				EndDate:   end,
			},
			errors: []string{ReasonNameTooShort},
		},
		{
			name: "exactly five characters passes",
			campaign: models.Campaign{
				Name:      "Promo",
				Objective: models.ObjectiveReach,
				StartDate: start,
				EndDate:   end,
			},
			valid: true,
		},
		{
			name: "missing objective",
			campaign: models.Campaign{
				Name:      "Spring Sale",
				StartDate: start,
				EndDate:   end,
			},
			errors: []string{ReasonMissingObjective},
		},
		{
			name: "missing end date",
			campaign: models.Campaign{
				Name:      "Spring Sale",
				Objective: models.ObjectiveConversions,
				StartDate: start,
			},
			errors: []string{ReasonMissingDates},
		},
		{
			name: "missing start date",
			campaign: models.Campaign{
				Name:      "Spring Sale",
				Objective: models.ObjectiveConversions,
				EndDate:   end,
			},
			errors: []string{ReasonMissingDates},
		},
		{
			name:     "empty campaign accumulates every reason",
			campaign: models.Campaign{},
			errors:   []string{ReasonNameTooShort, ReasonMissingObjective, ReasonMissingDates},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.campaign)
			require.Equal(t, tt.valid, result.Valid)
			require.Equal(t, tt.errors, result.Errors)
		})
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	c := models.Campaign{Name: "Ad"}
	first := Validate(c)
	second := Validate(c)
	require.Equal(t, first, second)
}

func TestResultStatus(t *testing.T) {
	require.Equal(t, models.CampaignStatusValid, Result{Valid: true}.Status())
	require.Equal(t, models.CampaignStatusInvalid, Result{Valid: false, Errors: []string{ReasonNameTooShort}}.Status())
}
