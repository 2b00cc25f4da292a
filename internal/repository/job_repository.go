package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adlaunch/adlaunch-api/internal/models"
)

type JobRepository interface {
	Create(userID, campaignID, jobID string) (models.SubmissionJob, error)
	Get(userID, id string) (models.SubmissionJob, error)
	GetByJobID(jobID string) (models.SubmissionJob, error)
	List(userID string) ([]models.SubmissionJob, error)
	Stats(userID string) (models.JobStats, error)

	// Worker-side mutations. Each is a single UPDATE so concurrent writers
	// serialize on the row; terminal writes win.
	MarkProcessing(id string) error
	SetProgress(id string, progress int, message string) error
	Complete(id string, result map[string]string) error
	Fail(id, kind, message string) error

	// Caller-side mutations.
	MarkCancelled(userID, id string) error
	ResetForRetry(userID, id, newJobID string) error
}

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `id, user_id, campaign_id, job_id, status, progress, progress_message,
	error_kind, error_message, result, started_at, completed_at, created_at`

func (r *jobRepository) Create(userID, campaignID, jobID string) (models.SubmissionJob, error) {
	job := models.SubmissionJob{
		UserID:     userID,
		CampaignID: campaignID,
		JobID:      jobID,
		Status:     models.JobStatusPending,
	}
	const query = `
		INSERT INTO ads.submission_jobs (user_id, campaign_id, job_id, status, progress)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, userID, campaignID, jobID, job.Status).
		Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		return job, err
	}
	return job, nil
}

func (r *jobRepository) Get(userID, id string) (models.SubmissionJob, error) {
	row := r.db.QueryRow(`
		SELECT `+jobColumns+`
		FROM ads.submission_jobs
		WHERE id = $1 AND user_id = $2`, id, userID)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return job, errors.New("submission job not found")
	}
	return job, err
}

func (r *jobRepository) GetByJobID(jobID string) (models.SubmissionJob, error) {
	row := r.db.QueryRow(`
		SELECT `+jobColumns+`
		FROM ads.submission_jobs
		WHERE job_id = $1`, jobID)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return job, errors.New("submission job not found")
	}
	return job, err
}

func (r *jobRepository) List(userID string) ([]models.SubmissionJob, error) {
	rows, err := r.db.Query(`
		SELECT `+jobColumns+`
		FROM ads.submission_jobs
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.SubmissionJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepository) Stats(userID string) (models.JobStats, error) {
	const query = `
		SELECT
			COALESCE(SUM((status = 'pending')::int), 0)    AS pending,
			COALESCE(SUM((status = 'processing')::int), 0) AS processing,
			COALESCE(SUM((status = 'completed')::int), 0)  AS completed,
			COALESCE(SUM((status = 'failed')::int), 0)     AS failed
		FROM ads.submission_jobs
		WHERE user_id = $1`
	var stats models.JobStats
	err := r.db.QueryRow(query, userID).
		Scan(&stats.Pending, &stats.Processing, &stats.Completed, &stats.Failed)
	if err != nil {
		return models.JobStats{}, fmt.Errorf("job stats scan error: %w", err)
	}
	return stats, nil
}

func (r *jobRepository) MarkProcessing(id string) error {
	const query = `
		UPDATE ads.submission_jobs
		SET status = $1,
		    started_at = NOW(),
		    progress = 10,
		    progress_message = 'validating campaign data',
		    error_kind = NULL,
		    error_message = NULL
		WHERE id = $2`
	_, err := r.db.Exec(query, models.JobStatusProcessing, id)
	return err
}

func (r *jobRepository) SetProgress(id string, progress int, message string) error {
	_, err := r.db.Exec(`
		UPDATE ads.submission_jobs
		SET progress = $1, progress_message = $2
		WHERE id = $3`, progress, message, id)
	return err
}

func (r *jobRepository) Complete(id string, result map[string]string) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	const query = `
		UPDATE ads.submission_jobs
		SET status = $1,
		    progress = 100,
		    progress_message = 'campaign created successfully',
		    result = $2,
		    completed_at = NOW()
		WHERE id = $3`
	_, err = r.db.Exec(query, models.JobStatusCompleted, payload, id)
	return err
}

func (r *jobRepository) Fail(id, kind, message string) error {
	const query = `
		UPDATE ads.submission_jobs
		SET status = $1,
		    error_kind = $2,
		    error_message = $3,
		    completed_at = NOW()
		WHERE id = $4`
	_, err := r.db.Exec(query, models.JobStatusFailed, kind, message, id)
	return err
}

func (r *jobRepository) MarkCancelled(userID, id string) error {
	// Only jobs that have not reached a terminal state may be cancelled;
	// the worker's terminal write is authoritative when the two race.
	const query = `
		UPDATE ads.submission_jobs
		SET status = $1, completed_at = NOW()
		WHERE id = $2 AND user_id = $3 AND status IN ('pending', 'processing')`
	res, err := r.db.Exec(query, models.JobStatusCancelled, id, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("job is not cancellable")
	}
	return nil
}

func (r *jobRepository) ResetForRetry(userID, id, newJobID string) error {
	// Retry reuses the row: history is overwritten, not appended.
	const query = `
		UPDATE ads.submission_jobs
		SET job_id = $1,
		    status = $2,
		    progress = 0,
		    progress_message = NULL,
		    error_kind = NULL,
		    error_message = NULL,
		    result = NULL,
		    started_at = NULL,
		    completed_at = NULL
		WHERE id = $3 AND user_id = $4`
	res, err := r.db.Exec(query, newJobID, models.JobStatusPending, id, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("submission job not found")
	}
	return nil
}

func scanJob(scanner interface {
	Scan(dest ...interface{}) error
}) (models.SubmissionJob, error) {
	var (
		job             models.SubmissionJob
		progressMessage sql.NullString
		errorKind       sql.NullString
		errorMessage    sql.NullString
		result          []byte
		startedAt       sql.NullTime
		completedAt     sql.NullTime
	)
	if err := scanner.Scan(
		&job.ID,
		&job.UserID,
		&job.CampaignID,
		&job.JobID,
		&job.Status,
		&job.Progress,
		&progressMessage,
		&errorKind,
		&errorMessage,
		&result,
		&startedAt,
		&completedAt,
		&job.CreatedAt,
	); err != nil {
		return job, err
	}
	if progressMessage.Valid {
		v := progressMessage.String
		job.ProgressMessage = &v
	}
	if errorKind.Valid {
		v := errorKind.String
		job.ErrorKind = &v
	}
	if errorMessage.Valid {
		v := errorMessage.String
		job.ErrorMessage = &v
	}
	if len(result) > 0 {
		if err := json.Unmarshal(result, &job.Result); err != nil {
			return job, fmt.Errorf("unmarshal result: %w", err)
		}
	}
	if startedAt.Valid {
		t := startedAt.Time
		job.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		job.CompletedAt = &t
	}
	return job, nil
}
