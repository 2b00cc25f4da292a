package campaign

import (
	"strings"
	"time"

	"github.com/adlaunch/adlaunch-api/internal/models"
)

// DefaultCreativeName is substituted for {creative_name} when the campaign
// has no creative asset attached.
const DefaultCreativeName = "DefaultCreative"

// ExpandTokens replaces every occurrence of the fixed token set in a campaign
// name template. Unknown or malformed braces pass through literally; the
// stored campaign name is never mutated, only the returned copy.
func ExpandTokens(template string, c models.Campaign, creativeName string) string {
	if creativeName == "" {
		creativeName = DefaultCreativeName
	}
	replacer := strings.NewReplacer(
		"{date}", time.Now().UTC().Format("2006-01-02"),
		"{creative_name}", creativeName,
		"{objective}", c.Objective,
		"{geo}", c.Geography,
		"{age_range}", c.AgeRange,
	)
	return replacer.Replace(template)
}
