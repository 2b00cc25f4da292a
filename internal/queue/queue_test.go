package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adlaunch/adlaunch-api/internal/facebook"
	"github.com/adlaunch/adlaunch-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeJobs is an in-memory stand-in for the job record store.
type fakeJobs struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*models.SubmissionJob
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{rows: map[string]*models.SubmissionJob{}}
}

func (f *fakeJobs) Create(userID, campaignID, jobID string) (models.SubmissionJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	job := &models.SubmissionJob{
		ID:         fmt.Sprintf("row-%d", f.seq),
		UserID:     userID,
		CampaignID: campaignID,
		JobID:      jobID,
		Status:     models.JobStatusPending,
		CreatedAt:  time.Now(),
	}
	f.rows[job.ID] = job
	return *job, nil
}

func (f *fakeJobs) Get(userID, id string) (models.SubmissionJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.rows[id]
	if !ok || job.UserID != userID {
		return models.SubmissionJob{}, errors.New("submission job not found")
	}
	return *job, nil
}

func (f *fakeJobs) GetByJobID(jobID string) (models.SubmissionJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, job := range f.rows {
		if job.JobID == jobID {
			return *job, nil
		}
	}
	return models.SubmissionJob{}, errors.New("submission job not found")
}

func (f *fakeJobs) List(userID string) ([]models.SubmissionJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var jobs []models.SubmissionJob
	for _, job := range f.rows {
		if job.UserID == userID {
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

func (f *fakeJobs) Stats(userID string) (models.JobStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var stats models.JobStats
	for _, job := range f.rows {
		if job.UserID != userID {
			continue
		}
		switch job.Status {
		case models.JobStatusPending:
			stats.Pending++
		case models.JobStatusProcessing:
			stats.Processing++
		case models.JobStatusCompleted:
			stats.Completed++
		case models.JobStatusFailed:
			stats.Failed++
		}
	}
	return stats, nil
}

func (f *fakeJobs) MarkProcessing(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.rows[id]
	if !ok {
		return errors.New("submission job not found")
	}
	now := time.Now()
	msg := "validating campaign data"
	job.Status = models.JobStatusProcessing
	job.StartedAt = &now
	job.Progress = 10
	job.ProgressMessage = &msg
	job.ErrorKind = nil
	job.ErrorMessage = nil
	return nil
}

func (f *fakeJobs) SetProgress(id string, progress int, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.rows[id]
	if !ok {
		return errors.New("submission job not found")
	}
	job.Progress = progress
	job.ProgressMessage = &message
	return nil
}

func (f *fakeJobs) Complete(id string, result map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.rows[id]
	if !ok {
		return errors.New("submission job not found")
	}
	now := time.Now()
	msg := "campaign created successfully"
	job.Status = models.JobStatusCompleted
	job.Progress = 100
	job.ProgressMessage = &msg
	job.Result = result
	job.CompletedAt = &now
	return nil
}

func (f *fakeJobs) Fail(id, kind, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.rows[id]
	if !ok {
		return errors.New("submission job not found")
	}
	now := time.Now()
	job.Status = models.JobStatusFailed
	job.ErrorKind = &kind
	job.ErrorMessage = &message
	job.CompletedAt = &now
	return nil
}

func (f *fakeJobs) MarkCancelled(userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.rows[id]
	if !ok || job.UserID != userID {
		return errors.New("submission job not found")
	}
	if job.Status != models.JobStatusPending && job.Status != models.JobStatusProcessing {
		return errors.New("job is not cancellable")
	}
	now := time.Now()
	job.Status = models.JobStatusCancelled
	job.CompletedAt = &now
	return nil
}

func (f *fakeJobs) ResetForRetry(userID, id, newJobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.rows[id]
	if !ok || job.UserID != userID {
		return errors.New("submission job not found")
	}
	job.JobID = newJobID
	job.Status = models.JobStatusPending
	job.Progress = 0
	job.ProgressMessage = nil
	job.ErrorKind = nil
	job.ErrorMessage = nil
	job.Result = nil
	job.StartedAt = nil
	job.CompletedAt = nil
	return nil
}

type fakeCampaigns struct {
	mu        sync.Mutex
	rows      map[string]*models.Campaign
	submitted map[string]string // campaign id -> remote id
}

func newFakeCampaigns() *fakeCampaigns {
	return &fakeCampaigns{rows: map[string]*models.Campaign{}, submitted: map[string]string{}}
}

func (f *fakeCampaigns) List(userID string) ([]models.Campaign, error) { return nil, nil }

func (f *fakeCampaigns) Get(userID, id string) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCampaigns) Create(c *models.Campaign) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeCampaigns) Update(c *models.Campaign) (*models.Campaign, error) { return c, nil }

func (f *fakeCampaigns) Delete(userID, id string) error { return nil }

func (f *fakeCampaigns) SetSubmitted(id, remoteCampaignID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted[id] = remoteCampaignID
	if c, ok := f.rows[id]; ok {
		c.Status = models.CampaignStatusSubmitted
		c.RemoteCampaignID = &remoteCampaignID
	}
	return nil
}

type fakeAccounts struct {
	mu   sync.Mutex
	rows map[string]*models.AdAccount
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{rows: map[string]*models.AdAccount{}}
}

func (f *fakeAccounts) List(userID string) ([]models.AdAccount, error) { return nil, nil }

func (f *fakeAccounts) Get(userID, id string) (*models.AdAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (f *fakeAccounts) Create(a *models.AdAccount) (*models.AdAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[a.ID] = a
	return a, nil
}

func (f *fakeAccounts) UpdateToken(userID, id, accessToken string, expiresAt *time.Time) (*models.AdAccount, error) {
	return nil, nil
}

func (f *fakeAccounts) Delete(userID, id string) error { return nil }

type fakeAssets struct {
	mu   sync.Mutex
	rows map[string]*models.Asset
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{rows: map[string]*models.Asset{}}
}

func (f *fakeAssets) ListFolders(userID string, parentID *string) ([]models.AssetFolder, error) {
	return nil, nil
}
func (f *fakeAssets) CreateFolder(folder *models.AssetFolder) (*models.AssetFolder, error) {
	return folder, nil
}
func (f *fakeAssets) RenameFolder(userID, id, name string) (*models.AssetFolder, error) {
	return nil, nil
}
func (f *fakeAssets) DeleteFolder(userID, id string) error { return nil }

func (f *fakeAssets) List(userID string, folderID *string) ([]models.Asset, error) { return nil, nil }

func (f *fakeAssets) Get(userID, id string) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (f *fakeAssets) Create(a *models.Asset) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[a.ID] = a
	return a, nil
}

func (f *fakeAssets) Update(a *models.Asset) (*models.Asset, error) { return a, nil }

func (f *fakeAssets) Delete(userID, id string) error { return nil }

// fakePlatform records creation calls and can be made to fail at a stage or
// block on a gate to hold the worker mid-job.
type fakePlatform struct {
	campaigns atomic.Int64
	adSets    atomic.Int64
	creatives atomic.Int64
	ads       atomic.Int64

	inFlight    atomic.Int64
	maxInFlight atomic.Int64

	mu        sync.Mutex
	failStage string
	failErr   error
	gate      chan struct{}

	lastCampaign facebook.CampaignParams
	lastAdSet    facebook.AdSetParams
}

func (f *fakePlatform) enter() func() {
	n := f.inFlight.Add(1)
	for {
		max := f.maxInFlight.Load()
		if n <= max || f.maxInFlight.CompareAndSwap(max, n) {
			break
		}
	}
	return func() { f.inFlight.Add(-1) }
}

func (f *fakePlatform) stageErr(stage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failStage == stage {
		return f.failErr
	}
	return nil
}

func (f *fakePlatform) CreateCampaign(ctx context.Context, token, accountID string, p facebook.CampaignParams) (string, error) {
	defer f.enter()()
	f.mu.Lock()
	f.lastCampaign = p
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err := f.stageErr(facebook.StageCampaign); err != nil {
		return "", err
	}
	return fmt.Sprintf("cmp-%d", f.campaigns.Add(1)), nil
}

func (f *fakePlatform) CreateAdSet(ctx context.Context, token, accountID, campaignID string, p facebook.AdSetParams) (string, error) {
	defer f.enter()()
	f.mu.Lock()
	f.lastAdSet = p
	f.mu.Unlock()
	if err := f.stageErr(facebook.StageAdSet); err != nil {
		return "", err
	}
	return fmt.Sprintf("set-%d", f.adSets.Add(1)), nil
}

func (f *fakePlatform) CreateAdCreative(ctx context.Context, token, accountID string, p facebook.CreativeParams) (string, error) {
	defer f.enter()()
	if err := f.stageErr(facebook.StageCreative); err != nil {
		return "", err
	}
	return fmt.Sprintf("cre-%d", f.creatives.Add(1)), nil
}

func (f *fakePlatform) CreateAd(ctx context.Context, token, accountID string, p facebook.AdParams) (string, error) {
	defer f.enter()()
	if err := f.stageErr(facebook.StageAd); err != nil {
		return "", err
	}
	return fmt.Sprintf("ad-%d", f.ads.Add(1)), nil
}

type fixture struct {
	jobs      *fakeJobs
	campaigns *fakeCampaigns
	accounts  *fakeAccounts
	assets    *fakeAssets
	platform  *fakePlatform
	queue     *Queue
}

func newFixture() *fixture {
	f := &fixture{
		jobs:      newFakeJobs(),
		campaigns: newFakeCampaigns(),
		accounts:  newFakeAccounts(),
		assets:    newFakeAssets(),
		platform:  &fakePlatform{},
	}
	f.queue = New(Config{
		Jobs:      f.jobs,
		Campaigns: f.campaigns,
		Accounts:  f.accounts,
		Assets:    f.assets,
		Platform:  f.platform,
		Logger:    zerolog.Nop(),
	})
	return f
}

func (f *fixture) addAccount(userID, id string) {
	f.accounts.Create(&models.AdAccount{
		ID:          id,
		UserID:      userID,
		RemoteID:    "act_900100",
		AccessToken: "token-abc",
		IsActive:    true,
	})
}

func (f *fixture) addCampaign(userID, id, accountID, name string) models.Campaign {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	c := models.Campaign{
		ID:          id,
		UserID:      userID,
		AdAccountID: accountID,
		Name:        name,
		Objective:   models.ObjectiveLinkClicks,
		Budget:      120.50,
		StartDate:   &start,
		EndDate:     &end,
		Geography:   "US,CA",
		AgeRange:    "18-35",
		Gender:      "female",
		Placements:  "facebook,instagram",
		Status:      models.CampaignStatusValid,
	}
	f.campaigns.Create(&c)
	return c
}

// submit mirrors the handler flow: record first, entry second.
func (f *fixture) submit(t *testing.T, c models.Campaign) models.SubmissionJob {
	t.Helper()
	jobID := NewJobID()
	job, err := f.jobs.Create(c.UserID, c.ID, jobID)
	require.NoError(t, err)
	f.queue.Enqueue(jobID, c)
	return job
}

func (f *fixture) waitTerminal(t *testing.T, rowID string) models.SubmissionJob {
	t.Helper()
	var job models.SubmissionJob
	require.Eventually(t, func() bool {
		f.jobs.mu.Lock()
		defer f.jobs.mu.Unlock()
		row, ok := f.jobs.rows[rowID]
		if !ok {
			return false
		}
		job = *row
		switch job.Status {
		case models.JobStatusCompleted, models.JobStatusFailed, models.JobStatusCancelled:
			return true
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)
	return job
}

func TestQueueProcessesJobToCompletion(t *testing.T) {
	f := newFixture()
	f.addAccount("user-1", "acc-1")
	c := f.addCampaign("user-1", "camp-1", "acc-1", "Spring Sale {date}")

	row := f.submit(t, c)
	job := f.waitTerminal(t, row.ID)

	require.Equal(t, models.JobStatusCompleted, job.Status)
	require.Equal(t, 100, job.Progress)
	require.Equal(t, "campaign created successfully", *job.ProgressMessage)
	require.Equal(t, "cmp-1", job.Result["campaign_id"])
	require.Equal(t, "set-1", job.Result["ad_set_id"])
	require.Equal(t, "cre-1", job.Result["creative_id"])
	require.Equal(t, "ad-1", job.Result["ad_id"])

	// Campaign moved to submitted with the platform-assigned id.
	f.campaigns.mu.Lock()
	require.Equal(t, "cmp-1", f.campaigns.submitted["camp-1"])
	f.campaigns.mu.Unlock()

	// Tokens were expanded before the name reached the platform.
	f.platform.mu.Lock()
	require.NotContains(t, f.platform.lastCampaign.Name, "{date}")
	f.platform.mu.Unlock()
}

func TestQueueDrainsFIFOAndSerially(t *testing.T) {
	f := newFixture()
	f.addAccount("user-1", "acc-1")

	const n = 8
	var rows []models.SubmissionJob
	for i := 0; i < n; i++ {
		c := f.addCampaign("user-1", fmt.Sprintf("camp-%d", i), "acc-1", fmt.Sprintf("Campaign %d", i))
		rows = append(rows, f.submit(t, c))
	}

	for _, row := range rows {
		job := f.waitTerminal(t, row.ID)
		require.Equal(t, models.JobStatusCompleted, job.Status)
	}

	require.EqualValues(t, n, f.platform.campaigns.Load())
	require.EqualValues(t, n, f.platform.ads.Load())
	// Single serial worker: no two platform calls ever overlapped.
	require.LessOrEqual(t, f.platform.maxInFlight.Load(), int64(1))

	stats, err := f.queue.Stats("user-1")
	require.NoError(t, err)
	require.Equal(t, n, stats.Completed)
	require.Zero(t, stats.Pending)
	require.Zero(t, stats.Processing)
	require.Zero(t, stats.Failed)
}

func TestQueueCancelRemovesQueuedEntry(t *testing.T) {
	f := newFixture()
	f.addAccount("user-1", "acc-1")

	gate := make(chan struct{})
	f.platform.mu.Lock()
	f.platform.gate = gate
	f.platform.mu.Unlock()

	first := f.addCampaign("user-1", "camp-1", "acc-1", "First Campaign")
	second := f.addCampaign("user-1", "camp-2", "acc-1", "Second Campaign")

	row1 := f.submit(t, first)

	// Wait until the worker is inside the first job before queueing the second.
	require.Eventually(t, func() bool {
		return f.platform.inFlight.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)

	row2 := f.submit(t, second)

	require.True(t, f.queue.Cancel(row2.JobID))
	require.NoError(t, f.jobs.MarkCancelled("user-1", row2.ID))

	// Cancelling the same entry twice finds nothing.
	require.False(t, f.queue.Cancel(row2.JobID))

	f.platform.mu.Lock()
	f.platform.gate = nil
	f.platform.mu.Unlock()
	close(gate)

	job1 := f.waitTerminal(t, row1.ID)
	require.Equal(t, models.JobStatusCompleted, job1.Status)

	job2, err := f.jobs.Get("user-1", row2.ID)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusCancelled, job2.Status)
	// The cancelled campaign never reached the platform.
	require.EqualValues(t, 1, f.platform.campaigns.Load())
}

func TestQueueSkipsCancelledRecord(t *testing.T) {
	f := newFixture()
	f.addAccount("user-1", "acc-1")
	c := f.addCampaign("user-1", "camp-1", "acc-1", "Soon Cancelled")

	// Mark the record cancelled before the entry ever reaches the worker:
	// create the record, cancel it, then enqueue.
	jobID := NewJobID()
	row, err := f.jobs.Create(c.UserID, c.ID, jobID)
	require.NoError(t, err)
	require.NoError(t, f.jobs.MarkCancelled("user-1", row.ID))

	f.queue.Enqueue(jobID, c)

	// The worker drains the entry without touching the platform.
	require.Eventually(t, func() bool {
		f.queue.mu.Lock()
		defer f.queue.mu.Unlock()
		return !f.queue.running
	}, 2*time.Second, 5*time.Millisecond)
	require.Zero(t, f.platform.campaigns.Load())
}

func TestQueueFailsJobOnRemoteError(t *testing.T) {
	f := newFixture()
	f.addAccount("user-1", "acc-1")
	c := f.addCampaign("user-1", "camp-1", "acc-1", "Doomed Campaign")

	f.platform.mu.Lock()
	f.platform.failStage = facebook.StageAdSet
	f.platform.failErr = &facebook.APIError{
		Stage:      facebook.StageAdSet,
		StatusCode: 400,
		Message:    "Invalid parameter: daily_budget must be at least 100",
	}
	f.platform.mu.Unlock()

	row := f.submit(t, c)
	job := f.waitTerminal(t, row.ID)

	require.Equal(t, models.JobStatusFailed, job.Status)
	require.Equal(t, "remote:ad_set", *job.ErrorKind)
	// The platform's raw message survives verbatim.
	require.Equal(t, "Invalid parameter: daily_budget must be at least 100", *job.ErrorMessage)

	// The campaign stage succeeded, the failing stage stops the rest.
	require.EqualValues(t, 1, f.platform.campaigns.Load())
	require.Zero(t, f.platform.creatives.Load())
	require.Zero(t, f.platform.ads.Load())

	// Campaign was never marked submitted.
	f.campaigns.mu.Lock()
	require.Empty(t, f.campaigns.submitted)
	f.campaigns.mu.Unlock()
}

func TestQueueFailsJobsWithoutAccount(t *testing.T) {
	f := newFixture()

	var rows []models.SubmissionJob
	for i := 0; i < 3; i++ {
		c := f.addCampaign("user-1", fmt.Sprintf("camp-%d", i), "acc-missing", fmt.Sprintf("Campaign %d", i))
		rows = append(rows, f.submit(t, c))
	}

	for _, row := range rows {
		job := f.waitTerminal(t, row.ID)
		require.Equal(t, models.JobStatusFailed, job.Status)
		require.Equal(t, string(KindAccount), *job.ErrorKind)
		require.Equal(t, "account not found", *job.ErrorMessage)
	}
	// One bad job never stalls the rest of the queue.
	require.Zero(t, f.platform.campaigns.Load())
}

func TestQueueFailsInvalidCampaign(t *testing.T) {
	f := newFixture()
	f.addAccount("user-1", "acc-1")

	// Dates and objective stripped after creation; the worker re-validates.
	c := f.addCampaign("user-1", "camp-1", "acc-1", "Spring Sale")
	c.Objective = ""
	c.StartDate = nil
	f.campaigns.Create(&c)

	row := f.submit(t, c)
	job := f.waitTerminal(t, row.ID)

	require.Equal(t, models.JobStatusFailed, job.Status)
	require.Equal(t, string(KindValidation), *job.ErrorKind)
	require.Contains(t, *job.ErrorMessage, "missing-objective")
	require.Contains(t, *job.ErrorMessage, "missing-dates")
	require.Zero(t, f.platform.campaigns.Load())
}

func TestQueueSkipsEntryWithoutRecord(t *testing.T) {
	f := newFixture()
	f.addAccount("user-1", "acc-1")
	c := f.addCampaign("user-1", "camp-1", "acc-1", "Orphan Entry")

	// Entry without a record: the worker logs and moves on.
	f.queue.Enqueue(NewJobID(), c)

	require.Eventually(t, func() bool {
		f.queue.mu.Lock()
		defer f.queue.mu.Unlock()
		return !f.queue.running
	}, 2*time.Second, 5*time.Millisecond)
	require.Zero(t, f.platform.campaigns.Load())
}

func TestQueueRetryReusesRecordRow(t *testing.T) {
	f := newFixture()
	c := f.addCampaign("user-1", "camp-1", "acc-1", "Retry Me Later")

	// First attempt fails: no account connected yet.
	row := f.submit(t, c)
	failed := f.waitTerminal(t, row.ID)
	require.Equal(t, models.JobStatusFailed, failed.Status)

	// Connect the account and retry on the same row with a fresh job id.
	f.addAccount("user-1", "acc-1")
	newJobID := NewJobID()
	require.NotEqual(t, failed.JobID, newJobID)
	require.NoError(t, f.jobs.ResetForRetry("user-1", row.ID, newJobID))
	f.queue.Enqueue(newJobID, c)

	job := f.waitTerminal(t, row.ID)
	require.Equal(t, row.ID, job.ID)
	require.Equal(t, newJobID, job.JobID)
	require.Equal(t, models.JobStatusCompleted, job.Status)
	require.Nil(t, job.ErrorKind)
	require.Nil(t, job.ErrorMessage)
}

func TestQueueMapsTargetingFromCampaign(t *testing.T) {
	f := newFixture()
	f.addAccount("user-1", "acc-1")
	c := f.addCampaign("user-1", "camp-1", "acc-1", "Targeted Campaign")

	row := f.submit(t, c)
	job := f.waitTerminal(t, row.ID)
	require.Equal(t, models.JobStatusCompleted, job.Status)

	f.platform.mu.Lock()
	targeting := f.platform.lastAdSet.Targeting
	f.platform.mu.Unlock()

	require.Equal(t, map[string]interface{}{"countries": []string{"US", "CA"}}, targeting["geo_locations"])
	require.Equal(t, 18, targeting["age_min"])
	require.Equal(t, 35, targeting["age_max"])
	require.Equal(t, []int{2}, targeting["genders"])
	require.Equal(t, []string{"facebook", "instagram"}, targeting["publisher_platforms"])
}

func TestNewJobID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewJobID()
		require.Len(t, id, 12)
		require.NotContains(t, id, "-")
		require.False(t, seen[id], "job ids must not repeat")
		seen[id] = true
	}
}

func TestClassify(t *testing.T) {
	require.Equal(t, KindAccount, Classify(submitErrorf(KindAccount, "account not found")))
	require.Equal(t, KindValidation, Classify(submitErrorf(KindValidation, "campaign is not valid")))
	require.Equal(t, ErrorKind("remote:creative"), Classify(&facebook.APIError{Stage: facebook.StageCreative, Message: "boom"}))
	require.Equal(t, KindIntegrity, Classify(errors.New("something unexpected")))
}
