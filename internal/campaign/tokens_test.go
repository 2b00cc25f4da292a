package campaign

import (
	"testing"
	"time"

	"github.com/adlaunch/adlaunch-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestExpandTokens(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")
	c := models.Campaign{
		Objective: models.ObjectiveLinkClicks,
		Geography: "US,CA",
		AgeRange:  "18-35",
	}

	tests := []struct {
		name         string
		template     string
		creativeName string
		want         string
	}{
		{
			name:         "all tokens",
			template:     "{date}_{creative_name}_{objective}_{geo}_{age_range}",
			creativeName: "Banner A",
			want:         today + "_Banner A_link-clicks_US,CA_18-35",
		},
		{
			name:     "no tokens passes through",
			template: "Plain Campaign Name",
			want:     "Plain Campaign Name",
		},
		{
			name:         "repeated token expands every occurrence",
			template:     "{creative_name} vs {creative_name}",
			creativeName: "Hero",
			want:         "Hero vs Hero",
		},
		{
			name:     "missing creative falls back to default",
			template: "Holiday_{creative_name}",
			want:     "Holiday_" + DefaultCreativeName,
		},
		{
			name:     "unknown token left literal",
			template: "{nope}_{date}",
			want:     "{nope}_" + today,
		},
		{
			name:     "unmatched brace left literal",
			template: "{date_{geo}",
			want:     "{date_US,CA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExpandTokens(tt.template, c, tt.creativeName))
		})
	}
}

func TestExpandTokensDoesNotMutateTemplate(t *testing.T) {
	template := "Promo_{date}"
	c := models.Campaign{}
	first := ExpandTokens(template, c, "X")
	second := ExpandTokens(template, c, "X")
	require.Equal(t, first, second)
	require.Equal(t, "Promo_{date}", template)
}
