package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adlaunch/adlaunch-api/internal/authz"
	"github.com/adlaunch/adlaunch-api/internal/models"
	"github.com/adlaunch/adlaunch-api/internal/queue"
	"github.com/adlaunch/adlaunch-api/internal/repository"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type JobHandler struct {
	jobs      repository.JobRepository
	campaigns repository.CampaignRepository
	queue     *queue.Queue
	logger    zerolog.Logger
}

func NewJobHandler(jobs repository.JobRepository, campaigns repository.CampaignRepository, q *queue.Queue, logger zerolog.Logger) *JobHandler {
	return &JobHandler{
		jobs:      jobs,
		campaigns: campaigns,
		queue:     q,
		logger:    logger.With().Str("handler", "job").Logger(),
	}
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	jobs, err := h.jobs.List(uid)
	if err != nil {
		http.Error(w, "Failed to list jobs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	job, err := h.jobs.Get(uid, mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

func (h *JobHandler) Stats(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	stats, err := h.queue.Stats(uid)
	if err != nil {
		http.Error(w, "Failed to compute stats: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// Cancel removes the queue entry when the job is still waiting and marks the
// record cancelled. A job already handed to the worker is not interrupted; it
// runs to its own outcome and the terminal status it writes wins.
func (h *JobHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	job, err := h.jobs.Get(uid, id)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	dequeued := h.queue.Cancel(job.JobID)
	if err := h.jobs.MarkCancelled(uid, id); err != nil {
		http.Error(w, "Failed to cancel job: "+err.Error(), http.StatusConflict)
		return
	}
	h.logger.Info().Str("job_id", job.JobID).Bool("dequeued", dequeued).Msg("job cancelled")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "dequeued": dequeued})
}

// Retry resubmits a failed or cancelled job. The record row is reused with a
// fresh job identifier and cleared progress, so history reflects only the
// latest attempt.
func (h *JobHandler) Retry(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	job, err := h.jobs.Get(uid, id)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	if job.Status != models.JobStatusFailed && job.Status != models.JobStatusCancelled {
		http.Error(w, "Only failed or cancelled jobs can be retried", http.StatusConflict)
		return
	}

	c, err := h.campaigns.Get(uid, job.CampaignID)
	if err != nil {
		http.Error(w, "Failed to load campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if c == nil {
		http.Error(w, "Campaign no longer exists", http.StatusConflict)
		return
	}

	newJobID := queue.NewJobID()
	if err := h.jobs.ResetForRetry(uid, id, newJobID); err != nil {
		http.Error(w, "Failed to reset job: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.queue.Enqueue(newJobID, *c)
	h.logger.Info().Str("job_id", newJobID).Str("campaign_id", c.ID).Msg("job requeued")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"job_id": newJobID, "campaign_id": c.ID})
}
