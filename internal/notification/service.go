package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"parkease/internal/logger"
	"parkease/internal/metrics"
)

const (
	queueKey       = "notifications"
	failedQueueKey = "notifications:failed"
	maxTries       = 3
)

// EmailLookup resolves the delivery address for a user at send time.
type EmailLookup interface {
	FindEmail(ctx context.Context, userID int) (email, name string, err error)
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Pass     string
	From     string
	FromName string
}

type Service struct {
	repo   Repository
	redis  *redis.Client
	emails EmailLookup
	smtp   SMTPConfig
}

func NewService(repo Repository, redisClient *redis.Client, emails EmailLookup, smtpCfg SMTPConfig) *Service {
	return &Service{
		repo:   repo,
		redis:  redisClient,
		emails: emails,
		smtp:   smtpCfg,
	}
}

// Notify persists the notification and queues asynchronous email delivery.
// The persisted row is authoritative; a queue failure is still reported so
// callers can log it, but the row is not rolled back.
func (s *Service) Notify(ctx context.Context, userID int, notifType, title, message string) error {
	if _, err := s.repo.Insert(ctx, userID, notifType, title, message); err != nil {
		metrics.RecordNotification(notifType, "persist_failed")
		return err
	}

	job := deliveryJob{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		metrics.RecordNotification(notifType, "queue_failed")
		logger.Error("failed to queue notification delivery", "user_id", userID, "error", err)
		return err
	}

	metrics.RecordNotification(notifType, "queued")
	return nil
}

func (s *Service) ListByUser(ctx context.Context, userID, limit, offset int) ([]Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID int) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

// Start runs the delivery worker until the context is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("notification delivery worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification delivery worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job deliveryJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("bad notification job payload", "error", err)
		return
	}

	job.Tries++
	if err := s.deliver(ctx, job); err != nil {
		logger.Error("notification delivery failed", "user_id", job.UserID, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			return
		}

		metrics.RecordNotification(job.Type, "failed")
		data, _ := json.Marshal(job)
		s.redis.LPush(context.Background(), failedQueueKey, data)
		return
	}

	metrics.RecordNotification(job.Type, "delivered")
}

func (s *Service) deliver(ctx context.Context, job deliveryJob) error {
	email, name, err := s.emails.FindEmail(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}

	message := fmt.Sprintf("From: %s <%s>\r\n", s.smtp.FromName, s.smtp.From)
	message += fmt.Sprintf("To: %s\r\n", email)
	message += fmt.Sprintf("Subject: %s\r\n", job.Title)
	message += "\r\n" + fmt.Sprintf("Hi %s,\r\n\r\n%s\r\n", name, job.Message)

	var auth smtp.Auth
	if s.smtp.User != "" && s.smtp.Pass != "" {
		auth = smtp.PlainAuth("", s.smtp.User, s.smtp.Pass, s.smtp.Host)
	}

	addr := s.smtp.Host + ":" + s.smtp.Port
	return smtp.SendMail(addr, auth, s.smtp.From, []string{email}, []byte(message))
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.NotificationQueueLength.Set(float64(length))
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}
