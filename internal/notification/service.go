package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/adlaunch/adlaunch-api/internal/models"
	"github.com/adlaunch/adlaunch-api/internal/repository"
	"github.com/rs/zerolog"
)

type Event struct {
	UserID   string
	Event    models.NotificationEvent
	Severity models.NotificationSeverity
	Title    string
	Message  string
	Metadata map[string]interface{}
}

type Service interface {
	Publish(ctx context.Context, evt Event) (models.Notification, error)
	NotifySubmissionSucceeded(ctx context.Context, userID, campaignName, jobID, remoteCampaignID string) error
	NotifySubmissionFailed(ctx context.Context, userID, campaignName, jobID, reason string) error
	ListRecent(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) (models.Notification, error)
}

type service struct {
	repo   repository.NotificationRepository
	logger zerolog.Logger
}

func NewService(repo repository.NotificationRepository, logger zerolog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With().Str("component", "notification_service").Logger(),
	}
}

func (s *service) Publish(ctx context.Context, evt Event) (models.Notification, error) {
	if evt.Event == "" {
		return models.Notification{}, fmt.Errorf("event type is required")
	}
	if strings.TrimSpace(evt.UserID) == "" {
		return models.Notification{}, fmt.Errorf("user id is required")
	}
	if evt.Severity == "" {
		evt.Severity = models.NotificationSeverityInfo
	}
	title := strings.TrimSpace(evt.Title)
	if title == "" {
		title = string(evt.Event)
	}

	notif, err := s.repo.Create(ctx, repository.CreateNotificationParams{
		UserID:   evt.UserID,
		Event:    evt.Event,
		Severity: evt.Severity,
		Title:    title,
		Message:  strings.TrimSpace(evt.Message),
		Metadata: evt.Metadata,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("event_type", string(evt.Event)).Msg("failed to persist notification")
		return models.Notification{}, err
	}
	return notif, nil
}

func (s *service) NotifySubmissionSucceeded(ctx context.Context, userID, campaignName, jobID, remoteCampaignID string) error {
	_, err := s.Publish(ctx, Event{
		UserID:   userID,
		Event:    models.NotificationEventSubmissionSucceeded,
		Severity: models.NotificationSeverityInfo,
		Title:    fmt.Sprintf("Campaign submitted: %s", campaignName),
		Message:  fmt.Sprintf("Campaign %q was created on the ad platform.", campaignName),
		Metadata: map[string]interface{}{
			"job_id":             jobID,
			"remote_campaign_id": remoteCampaignID,
		},
	})
	return err
}

func (s *service) NotifySubmissionFailed(ctx context.Context, userID, campaignName, jobID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Unknown error"
	}
	_, err := s.Publish(ctx, Event{
		UserID:   userID,
		Event:    models.NotificationEventSubmissionFailed,
		Severity: models.NotificationSeverityError,
		Title:    fmt.Sprintf("Submission failed: %s", campaignName),
		Message:  fmt.Sprintf("Campaign %q could not be submitted: %s", campaignName, reason),
		Metadata: map[string]interface{}{
			"job_id": jobID,
			"reason": reason,
		},
	})
	return err
}

func (s *service) ListRecent(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	return s.repo.ListRecent(ctx, userID, limit)
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID string) (models.Notification, error) {
	return s.repo.MarkRead(ctx, userID, notificationID)
}
