package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"backendjobs/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// AlertSeverity controls how an alert is rendered
type AlertSeverity string

const (
	AlertSeverityError AlertSeverity = "danger"
	AlertSeverityInfo  AlertSeverity = "info"
)

// AlertDetail is one labelled value attached to an alert
type AlertDetail struct {
	Key   string
	Value any
}

// Detail builds an AlertDetail
func Detail(key string, value any) AlertDetail {
	return AlertDetail{Key: key, Value: value}
}

// Alert is an operational message raised by a job
type Alert struct {
	Title    string
	Message  string
	Details  []AlertDetail
	Severity AlertSeverity
}

// NewAlert classifies an alert by its title: titles mentioning "Error" are errors
func NewAlert(title, message string, details ...AlertDetail) Alert {
	severity := AlertSeverityInfo
	if strings.Contains(title, "Error") {
		severity = AlertSeverityError
	}
	return Alert{
		Title:    title,
		Message:  message,
		Details:  details,
		Severity: severity,
	}
}

// HTML renders the alert for the notification feed. Errors use a bootstrap
// alert block, everything else a plain paragraph.
func (a Alert) HTML() string {
	var b strings.Builder

	if a.Severity == AlertSeverityError {
		fmt.Fprintf(&b, `<div class="alert alert-%s" role="alert">`, a.Severity)
		fmt.Fprintf(&b, `<h4 class="alert-heading">%s</h4>`, html.EscapeString(a.Title))
		fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(a.Message))
		if len(a.Details) > 0 {
			b.WriteString("<hr>")
			for _, d := range a.Details {
				fmt.Fprintf(&b, `<p class="mb-0"><strong>%s:</strong> %s</p>`,
					html.EscapeString(d.Key), html.EscapeString(fmt.Sprint(d.Value)))
			}
		}
		b.WriteString("</div>")
		return b.String()
	}

	fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(a.Message))
	if len(a.Details) > 0 {
		b.WriteString("<hr>")
		for _, d := range a.Details {
			fmt.Fprintf(&b, `<p><strong>%s:</strong> %s</p>`,
				html.EscapeString(d.Key), html.EscapeString(fmt.Sprint(d.Value)))
		}
	}
	return b.String()
}

// alertTimeout bounds how long an alert may hold up the job that raised it
const alertTimeout = 10 * time.Second

// AlertService stores alerts as notifications to everyone and mirrors them
// to an optional publisher
type AlertService struct {
	uowFactory UnitOfWorkFactory
	publisher  AlertPublisher
	now        func() time.Time
}

// NewAlertService creates a new alert service. publisher may be nil.
func NewAlertService(uowFactory UnitOfWorkFactory, publisher AlertPublisher) *AlertService {
	return &AlertService{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Emit records the alert. Failures are logged and swallowed.
func (s *AlertService) Emit(ctx context.Context, title, message string, details ...AlertDetail) {
	alert := NewAlert(title, message, details...)

	fields := log.Fields{"title": title}
	for _, d := range details {
		fields[d.Key] = d.Value
	}
	log.WithFields(fields).Warn(message)

	ctx, cancel := context.WithTimeout(ctx, alertTimeout)
	defer cancel()

	if err := s.store(ctx, alert); err != nil {
		log.WithFields(log.Fields{
			"title": title,
			"error": err,
		}).Error("Failed to save alert notification")
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, alert); err != nil {
			log.WithFields(log.Fields{
				"title": title,
				"error": err,
			}).Error("Failed to publish alert")
		}
	}
}

func (s *AlertService) store(ctx context.Context, alert Alert) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	notification := &models.Notification{
		ID:         uuid.NewString(),
		Title:      alert.Title,
		Message:    alert.HTML(),
		CreatedAt:  s.now().UTC(),
		CreatedBy:  SystemUser,
		TargetType: models.NotificationTargetGlobal,
		Target:     models.NotificationTargetAll,
		Status:     NotificationStatusActive,
	}
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return uow.Commit()
}
