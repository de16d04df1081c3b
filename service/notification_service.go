package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backendjobs/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	// SystemUser is recorded as the author of generated notifications
	SystemUser = "system"

	// NotificationStatusActive marks a delivered, unread notification target
	NotificationStatusActive = 1

	defaultNotificationTitle    = "System Notification"
	defaultNotificationMessage  = "Default message"
	defaultNotificationTemplate = "Default template"
)

// NotificationService renders and stores scheduled notifications
type NotificationService struct {
	uowFactory  UnitOfWorkFactory
	queryRunner QueryRunner
	now         func() time.Time
}

// NewNotificationService creates a new notification service. queryRunner may
// be nil when no execution carries a data query.
func NewNotificationService(uowFactory UnitOfWorkFactory, queryRunner QueryRunner) *NotificationService {
	return &NotificationService{
		uowFactory:  uowFactory,
		queryRunner: queryRunner,
		now:         time.Now,
	}
}

// SendForExecution renders the notification configured on a scheduled
// execution and stores it with its target
func (s *NotificationService) SendForExecution(ctx context.Context, exec *models.CronEventExecution) error {
	logger := log.WithFields(log.Fields{
		"caseId": exec.CaseID,
		"event":  exec.Event,
	})

	message, err := s.render(ctx, exec)
	if err != nil {
		return err
	}

	notification := &models.Notification{
		ID:         uuid.NewString(),
		Title:      valueOrDefault(exec.Title, defaultNotificationTitle),
		Message:    message,
		CreatedAt:  s.now().UTC(),
		CreatedBy:  SystemUser,
		TargetType: valueOrDefault(exec.TargetType, models.NotificationTargetGlobal),
		Target:     valueOrDefault(exec.Target, models.NotificationTargetAll),
		Status:     NotificationStatusActive,
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit notification: %w", err)
	}

	logger.WithFields(log.Fields{
		"notificationId": notification.ID,
		"targetType":     notification.TargetType,
		"target":         notification.Target,
	}).Info("Notification sent")
	return nil
}

func (s *NotificationService) render(ctx context.Context, exec *models.CronEventExecution) (string, error) {
	if exec.GraphQL == nil || strings.TrimSpace(*exec.GraphQL) == "" {
		return valueOrDefault(exec.Template, defaultNotificationMessage), nil
	}
	if s.queryRunner == nil {
		return "", ErrNoQueryRunner
	}

	result, err := s.queryRunner.Execute(ctx, *exec.GraphQL, map[string]any{"id": exec.CaseID})
	if err != nil {
		return "", fmt.Errorf("failed to run notification query: %w", err)
	}
	return ReplaceTemplateVars(valueOrDefault(exec.Template, defaultNotificationTemplate), result), nil
}

func valueOrDefault(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
