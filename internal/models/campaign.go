package models

import "time"

// Campaign statuses. A campaign moves to StatusSubmitted only when its
// submission job completes.
const (
	CampaignStatusDraft      = "draft"
	CampaignStatusValidating = "validating"
	CampaignStatusValid      = "valid"
	CampaignStatusInvalid    = "invalid"
	CampaignStatusSubmitted  = "submitted"
)

const (
	ObjectiveConversions = "conversions"
	ObjectiveLinkClicks  = "link-clicks"
	ObjectiveReach       = "reach"
	ObjectiveImpressions = "impressions"
	ObjectiveVideoViews  = "video-views"
)

func IsValidObjective(objective string) bool {
	switch objective {
	case ObjectiveConversions, ObjectiveLinkClicks, ObjectiveReach, ObjectiveImpressions, ObjectiveVideoViews:
		return true
	}
	return false
}

type Campaign struct {
	ID               string     `json:"id" db:"id"`
	UserID           string     `json:"user_id" db:"user_id"`
	AdAccountID      string     `json:"ad_account_id" db:"ad_account_id"`
	Name             string     `json:"name" db:"name"` // may contain unexpanded {tokens}
	Objective        string     `json:"objective" db:"objective"`
	Budget           float64    `json:"budget" db:"budget"`
	StartDate        *time.Time `json:"start_date" db:"start_date"`
	EndDate          *time.Time `json:"end_date" db:"end_date"`
	Geography        string     `json:"geography" db:"geography"`
	AgeRange         string     `json:"age_range" db:"age_range"`
	Gender           string     `json:"gender" db:"gender"`
	Placements       string     `json:"placements" db:"placements"`
	CreativeAssetID  *string    `json:"creative_asset_id" db:"creative_asset_id"`
	Status           string     `json:"status" db:"status"`
	RemoteCampaignID *string    `json:"remote_campaign_id" db:"remote_campaign_id"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}
