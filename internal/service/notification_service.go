package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/interview-service/internal/config"
	"github.com/spec-kit/interview-service/internal/events"
	"github.com/spec-kit/interview-service/internal/observability"
)

// NotificationService handles emitting notifications for domain events. Its
// main job is the early-start alert: when an interview begins ahead of
// schedule the candidate should hear about it exactly once.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	redis      *redis.Client
	metrics    *observability.Metrics
}

// NewNotificationService creates the service. The Redis client and metrics
// may be nil; dedup and counters degrade gracefully.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig, redisClient *redis.Client, metrics *observability.Metrics) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		redis:      redisClient,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventInterviewCreated, n.handleInterviewCreated)
	n.dispatcher.Subscribe(events.EventInterviewStarted, n.handleInterviewStarted)
	n.dispatcher.Subscribe(events.EventInterviewStatusChanged, n.handleInterviewStatusChanged)
	n.dispatcher.Subscribe(events.EventInterviewDeleted, n.handleInterviewDeleted)
}

func (n *NotificationService) handleInterviewCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("InterviewCreated", zap.String("interview_id", event.InterviewID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleInterviewStarted(ctx context.Context, event events.Event) error {
	n.logger.Info("InterviewStarted", zap.String("interview_id", event.InterviewID), zap.Any("payload", event.Payload))

	payload, ok := event.Payload.(events.InterviewStartedPayload)
	if !ok || !payload.StartedEarly {
		return nil
	}
	if !n.claimEarlyStartAlert(ctx, event.InterviewID) {
		return nil
	}
	if n.metrics != nil {
		n.metrics.ObserveEarlyStartAlert()
	}
	n.logger.Info("early start alert",
		zap.String("interview_id", event.InterviewID),
		zap.String("candidate_id", payload.CandidateID),
		zap.Time("scheduled_start", payload.ScheduledStart),
		zap.Time("actual_start_time", payload.ActualStartTime))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleInterviewStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("InterviewStatusChanged", zap.String("interview_id", event.InterviewID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleInterviewDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("InterviewDeleted", zap.String("interview_id", event.InterviewID), zap.Any("payload", event.Payload))
	return nil
}

// claimEarlyStartAlert returns true when this process is the first to alert
// for the interview within the configured TTL. Without Redis the claim
// always succeeds.
func (n *NotificationService) claimEarlyStartAlert(ctx context.Context, interviewID string) bool {
	if n.redis == nil {
		return true
	}
	ttl := n.cfg.EarlyStartAlertTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	claimed, err := n.redis.SetNX(ctx, "early-start-alert:"+interviewID, 1, ttl).Result()
	if err != nil {
		n.logger.Warn("early start dedup unavailable", zap.Error(err))
		return true
	}
	return claimed
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("interview_id", event.InterviewID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("interview_id", event.InterviewID),
		zap.String("event_type", string(event.Type)))
}
