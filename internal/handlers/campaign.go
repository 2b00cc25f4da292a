package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/adlaunch/adlaunch-api/internal/authz"
	"github.com/adlaunch/adlaunch-api/internal/campaign"
	"github.com/adlaunch/adlaunch-api/internal/models"
	"github.com/adlaunch/adlaunch-api/internal/queue"
	"github.com/adlaunch/adlaunch-api/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type CampaignHandler struct {
	repo     repository.CampaignRepository
	jobs     repository.JobRepository
	queue    *queue.Queue
	validate *validator.Validate
	logger   zerolog.Logger
}

type campaignPayload struct {
	AdAccountID     string     `json:"ad_account_id" validate:"required"`
	Name            string     `json:"name" validate:"required"`
	Objective       string     `json:"objective"`
	Budget          float64    `json:"budget" validate:"gte=0"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Geography       string     `json:"geography"`
	AgeRange        string     `json:"age_range"`
	Gender          string     `json:"gender"`
	Placements      string     `json:"placements"`
	CreativeAssetID *string    `json:"creative_asset_id"`
}

func NewCampaignHandler(repo repository.CampaignRepository, jobs repository.JobRepository, q *queue.Queue, logger zerolog.Logger) *CampaignHandler {
	return &CampaignHandler{
		repo:     repo,
		jobs:     jobs,
		queue:    q,
		validate: validator.New(),
		logger:   logger.With().Str("handler", "campaign").Logger(),
	}
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	campaigns, err := h.repo.List(uid)
	if err != nil {
		http.Error(w, "Failed to list campaigns: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaigns)
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	var payload campaignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		http.Error(w, "Invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Objective != "" && !models.IsValidObjective(payload.Objective) {
		http.Error(w, "Unknown objective", http.StatusBadRequest)
		return
	}

	c := payloadToCampaign(payload)
	c.UserID = uid
	// Status is recomputed on every edit; submission later gates on it.
	c.Status = campaign.Validate(c).Status()

	created, err := h.repo.Create(&c)
	if err != nil {
		http.Error(w, "Failed to create campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	existing, err := h.repo.Get(uid, id)
	if err != nil {
		http.Error(w, "Failed to get campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}

	var payload campaignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		http.Error(w, "Invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Objective != "" && !models.IsValidObjective(payload.Objective) {
		http.Error(w, "Unknown objective", http.StatusBadRequest)
		return
	}

	c := payloadToCampaign(payload)
	c.ID = existing.ID
	c.UserID = uid
	c.Status = campaign.Validate(c).Status()

	updated, err := h.repo.Update(&c)
	if err != nil {
		http.Error(w, "Failed to update campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.repo.Delete(uid, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Campaign not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// BulkSubmit creates one job record and one queue entry per campaign and
// returns immediately; progress is observed by polling the job records.
func (h *CampaignHandler) BulkSubmit(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	var req struct {
		CampaignIDs []string `json:"campaign_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.CampaignIDs) == 0 {
		http.Error(w, "Campaign IDs are required", http.StatusBadRequest)
		return
	}

	type submitted struct {
		JobID      string `json:"job_id"`
		CampaignID string `json:"campaign_id"`
	}
	jobs := make([]submitted, 0, len(req.CampaignIDs))

	for _, campaignID := range req.CampaignIDs {
		c, err := h.repo.Get(uid, campaignID)
		if err != nil {
			h.logger.Error().Err(err).Str("campaign_id", campaignID).Msg("failed to load campaign for submission")
			continue
		}
		if c == nil {
			continue
		}
		// Invalid campaigns are never enqueued.
		if c.Status == models.CampaignStatusInvalid {
			h.logger.Warn().Str("campaign_id", campaignID).Msg("skipping invalid campaign")
			continue
		}

		// The record must exist before the entry: the worker treats a
		// dequeued entry without a record as a caller bug.
		jobID := queue.NewJobID()
		if _, err := h.jobs.Create(uid, c.ID, jobID); err != nil {
			h.logger.Error().Err(err).Str("campaign_id", campaignID).Msg("failed to create submission job record")
			continue
		}
		h.queue.Enqueue(jobID, *c)
		jobs = append(jobs, submitted{JobID: jobID, CampaignID: c.ID})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{"jobs": jobs})
}

func payloadToCampaign(p campaignPayload) models.Campaign {
	return models.Campaign{
		AdAccountID:     p.AdAccountID,
		Name:            p.Name,
		Objective:       p.Objective,
		Budget:          p.Budget,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		Geography:       p.Geography,
		AgeRange:        p.AgeRange,
		Gender:          p.Gender,
		Placements:      p.Placements,
		CreativeAssetID: p.CreativeAssetID,
	}
}
