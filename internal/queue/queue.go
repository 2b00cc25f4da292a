package queue

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/adlaunch/adlaunch-api/internal/campaign"
	"github.com/adlaunch/adlaunch-api/internal/facebook"
	"github.com/adlaunch/adlaunch-api/internal/models"
	"github.com/adlaunch/adlaunch-api/internal/notification"
	"github.com/adlaunch/adlaunch-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Platform is the slice of the remote ad platform client the worker drives.
type Platform interface {
	CreateCampaign(ctx context.Context, accessToken, accountID string, p facebook.CampaignParams) (string, error)
	CreateAdSet(ctx context.Context, accessToken, accountID, campaignID string, p facebook.AdSetParams) (string, error)
	CreateAdCreative(ctx context.Context, accessToken, accountID string, p facebook.CreativeParams) (string, error)
	CreateAd(ctx context.Context, accessToken, accountID string, p facebook.AdParams) (string, error)
}

// Entry correlates a job identifier with the campaign payload to process.
// Entries live only in the in-memory queue; the moment the worker pops one it
// is gone regardless of outcome.
type Entry struct {
	JobID    string
	Campaign models.Campaign
}

type Config struct {
	Jobs          repository.JobRepository
	Campaigns     repository.CampaignRepository
	Accounts      repository.AccountRepository
	Assets        repository.AssetRepository
	Platform      Platform
	Notifications notification.Service
	Logger        zerolog.Logger
}

// Queue serializes campaign submissions: callers enqueue concurrently, a
// single drain goroutine processes entries strictly FIFO, one at a time.
type Queue struct {
	mu      sync.Mutex
	entries []Entry
	running bool

	jobs          repository.JobRepository
	campaigns     repository.CampaignRepository
	accounts      repository.AccountRepository
	assets        repository.AssetRepository
	platform      Platform
	notifications notification.Service
	logger        zerolog.Logger
}

func New(cfg Config) *Queue {
	return &Queue{
		jobs:          cfg.Jobs,
		campaigns:     cfg.Campaigns,
		accounts:      cfg.Accounts,
		assets:        cfg.Assets,
		platform:      cfg.Platform,
		notifications: cfg.Notifications,
		logger:        cfg.Logger.With().Str("component", "submission_queue").Logger(),
	}
}

// NewJobID mints an opaque short identifier for queue correlation.
func NewJobID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Enqueue appends an entry and starts the drain goroutine when idle. The job
// record row must exist before this is called. Returns immediately.
func (q *Queue) Enqueue(jobID string, c models.Campaign) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, Entry{JobID: jobID, Campaign: c})
	if !q.running {
		q.running = true
		go q.drain()
	}
}

// Cancel removes a still-queued entry. Best-effort: an entry already handed
// to the worker is not interrupted; the caller marks the record cancelled
// independently and the worker skips cancelled records it has not started.
func (q *Queue) Cancel(jobID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.entries {
		if e.JobID == jobID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Stats aggregates job record statuses from the store, not the transient queue.
func (q *Queue) Stats(userID string) (models.JobStats, error) {
	return q.jobs.Stats(userID)
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.entries) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		entry := q.entries[0]
		q.entries = q.entries[1:]
		q.mu.Unlock()

		// A job failure never halts the loop; process reports everything
		// through the job record.
		q.process(context.Background(), entry)
	}
}

func (q *Queue) process(ctx context.Context, entry Entry) {
	job, err := q.jobs.GetByJobID(entry.JobID)
	if err != nil {
		// A dequeued entry with no record indicates a caller bug; skip it.
		q.logger.Warn().Err(err).Str("job_id", entry.JobID).Msg("no record for dequeued entry, skipping")
		return
	}
	if job.Status == models.JobStatusCancelled {
		q.logger.Info().Str("job_id", entry.JobID).Msg("job cancelled before processing, skipping")
		return
	}

	if err := q.jobs.MarkProcessing(job.ID); err != nil {
		q.logger.Error().Err(err).Str("job_id", entry.JobID).Msg("failed to mark job processing")
	}

	result, err := q.runStages(ctx, job, entry.Campaign)
	if err != nil {
		kind := Classify(err)
		if failErr := q.jobs.Fail(job.ID, string(kind), err.Error()); failErr != nil {
			q.logger.Error().Err(failErr).Str("job_id", entry.JobID).Msg("failed to record job failure")
		}
		q.logger.Error().Err(err).
			Str("job_id", entry.JobID).
			Str("campaign_id", entry.Campaign.ID).
			Str("error_kind", string(kind)).
			Msg("campaign submission failed")
		q.notifyFailed(ctx, job, entry.Campaign, err.Error())
		return
	}

	if err := q.campaigns.SetSubmitted(entry.Campaign.ID, result["campaign_id"]); err != nil {
		q.logger.Error().Err(err).Str("campaign_id", entry.Campaign.ID).Msg("failed to mark campaign submitted")
	}
	if err := q.jobs.Complete(job.ID, result); err != nil {
		q.logger.Error().Err(err).Str("job_id", entry.JobID).Msg("failed to record job completion")
	}
	q.logger.Info().
		Str("job_id", entry.JobID).
		Str("campaign_id", entry.Campaign.ID).
		Str("remote_campaign_id", result["campaign_id"]).
		Msg("campaign submitted")
	q.notifySucceeded(ctx, job, entry.Campaign, result["campaign_id"])
}

// runStages drives the four remote creation calls, bumping progress before
// each one. Remote identifiers come back from the platform verbatim.
func (q *Queue) runStages(ctx context.Context, job models.SubmissionJob, c models.Campaign) (map[string]string, error) {
	if result := campaign.Validate(c); !result.Valid {
		return nil, submitErrorf(KindValidation, "campaign is not valid: %s", strings.Join(result.Errors, ", "))
	}

	account, err := q.accounts.Get(c.UserID, c.AdAccountID)
	if err != nil || account == nil {
		return nil, submitErrorf(KindAccount, "account not found")
	}

	creativeName, creativeText := q.resolveCreative(c)
	name := campaign.ExpandTokens(c.Name, c, creativeName)
	token := account.AccessToken
	accountID := account.RemoteID

	q.setProgress(job.ID, 30, "creating campaign")
	campaignID, err := q.platform.CreateCampaign(ctx, token, accountID, facebook.CampaignParams{
		Name:      name,
		Objective: graphObjective(c.Objective),
		Status:    "PAUSED",
		Budget:    c.Budget,
	})
	if err != nil {
		return nil, err
	}

	q.setProgress(job.ID, 60, "creating ad set")
	adSetID, err := q.platform.CreateAdSet(ctx, token, accountID, campaignID, facebook.AdSetParams{
		Name:             name + " - Ad Set",
		DailyBudget:      c.Budget,
		BillingEvent:     "IMPRESSIONS",
		OptimizationGoal: optimizationGoal(c.Objective),
		Targeting:        buildTargeting(c),
		Status:           "PAUSED",
	})
	if err != nil {
		return nil, err
	}

	q.setProgress(job.ID, 80, "creating ad creative")
	creativeID, err := q.platform.CreateAdCreative(ctx, token, accountID, facebook.CreativeParams{
		Name:      name + " - Creative",
		StorySpec: buildStorySpec(name, creativeText),
	})
	if err != nil {
		return nil, err
	}

	q.setProgress(job.ID, 90, "creating ad")
	adID, err := q.platform.CreateAd(ctx, token, accountID, facebook.AdParams{
		Name:       name + " - Ad",
		AdSetID:    adSetID,
		CreativeID: creativeID,
		Status:     "PAUSED",
	})
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"campaign_id": campaignID,
		"ad_set_id":   adSetID,
		"creative_id": creativeID,
		"ad_id":       adID,
	}, nil
}

func (q *Queue) resolveCreative(c models.Campaign) (name, text string) {
	if c.CreativeAssetID == nil {
		return "", ""
	}
	asset, err := q.assets.Get(c.UserID, *c.CreativeAssetID)
	if err != nil || asset == nil {
		q.logger.Warn().Str("campaign_id", c.ID).Msg("creative asset not resolvable, using default name")
		return "", ""
	}
	if asset.TextContent != nil {
		text = *asset.TextContent
	}
	return asset.Name, text
}

func (q *Queue) setProgress(jobRowID string, progress int, message string) {
	if err := q.jobs.SetProgress(jobRowID, progress, message); err != nil {
		q.logger.Error().Err(err).Str("id", jobRowID).Int("progress", progress).Msg("failed to update progress")
	}
}

func (q *Queue) notifySucceeded(ctx context.Context, job models.SubmissionJob, c models.Campaign, remoteID string) {
	if q.notifications == nil {
		return
	}
	if err := q.notifications.NotifySubmissionSucceeded(ctx, job.UserID, c.Name, job.JobID, remoteID); err != nil {
		q.logger.Warn().Err(err).Str("job_id", job.JobID).Msg("failed to publish success notification")
	}
}

func (q *Queue) notifyFailed(ctx context.Context, job models.SubmissionJob, c models.Campaign, reason string) {
	if q.notifications == nil {
		return
	}
	if err := q.notifications.NotifySubmissionFailed(ctx, job.UserID, c.Name, job.JobID, reason); err != nil {
		q.logger.Warn().Err(err).Str("job_id", job.JobID).Msg("failed to publish failure notification")
	}
}

var objectiveMap = map[string]string{
	models.ObjectiveConversions: "CONVERSIONS",
	models.ObjectiveLinkClicks:  "LINK_CLICKS",
	models.ObjectiveReach:       "REACH",
	models.ObjectiveImpressions: "IMPRESSIONS",
	models.ObjectiveVideoViews:  "VIDEO_VIEWS",
}

var optimizationMap = map[string]string{
	models.ObjectiveConversions: "OFFSITE_CONVERSIONS",
	models.ObjectiveLinkClicks:  "LINK_CLICKS",
	models.ObjectiveReach:       "REACH",
	models.ObjectiveImpressions: "IMPRESSIONS",
	models.ObjectiveVideoViews:  "THRUPLAY",
}

func graphObjective(objective string) string {
	if mapped, ok := objectiveMap[objective]; ok {
		return mapped
	}
	return strings.ToUpper(strings.ReplaceAll(objective, "-", "_"))
}

func optimizationGoal(objective string) string {
	if mapped, ok := optimizationMap[objective]; ok {
		return mapped
	}
	return "LINK_CLICKS"
}

func buildTargeting(c models.Campaign) map[string]interface{} {
	targeting := map[string]interface{}{}

	if c.Geography != "" {
		var countries []string
		for _, part := range strings.Split(c.Geography, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				countries = append(countries, trimmed)
			}
		}
		if len(countries) > 0 {
			targeting["geo_locations"] = map[string]interface{}{"countries": countries}
		}
	}

	if minAge, maxAge, ok := parseAgeRange(c.AgeRange); ok {
		targeting["age_min"] = minAge
		targeting["age_max"] = maxAge
	}

	switch strings.ToLower(c.Gender) {
	case "male":
		targeting["genders"] = []int{1}
	case "female":
		targeting["genders"] = []int{2}
	}

	if c.Placements != "" {
		var platforms []string
		for _, part := range strings.Split(c.Placements, ",") {
			if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
				platforms = append(platforms, trimmed)
			}
		}
		if len(platforms) > 0 {
			targeting["publisher_platforms"] = platforms
		}
	}

	return targeting
}

func parseAgeRange(ageRange string) (minAge, maxAge int, ok bool) {
	parts := strings.SplitN(ageRange, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	minAge, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	maxAge, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return minAge, maxAge, true
}

func buildStorySpec(name, creativeText string) map[string]interface{} {
	linkData := map[string]interface{}{"name": name}
	if creativeText != "" {
		linkData["message"] = creativeText
	}
	return map[string]interface{}{"link_data": linkData}
}
