package utils

import (
	"log"
	"time"

	"academy/config"
	"academy/services"

	"github.com/go-resty/resty/v2"
)

// EventClient delivers engine events to the external messaging collaborator
// (webhook) and mirrors the student-facing ones over email. Delivery is
// fire-and-forget: failures are logged, never propagated.
type EventClient struct {
	client     *resty.Client
	webhookURL string
}

// NewEventClient builds the notifier from app config. An empty webhook URL
// disables the webhook leg; email still goes out when a sender is configured.
func NewEventClient() *EventClient {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetHeader("Content-Type", "application/json")

	return &EventClient{
		client:     client,
		webhookURL: config.AppConfig.EventWebhookURL,
	}
}

// Notify implements services.Notifier. The actual sends run on a goroutine so
// request handling never blocks on external collaborators.
func (e *EventClient) Notify(event services.Event) {
	go e.deliver(event)
}

func (e *EventClient) deliver(event services.Event) {
	if e.webhookURL != "" {
		resp, err := e.client.R().SetBody(event).Post(e.webhookURL)
		if err != nil {
			log.Printf("event webhook failed for %s: %v", event.Type, err)
		} else if resp.IsError() {
			log.Printf("event webhook failed for %s: status %d", event.Type, resp.StatusCode())
		}
	}

	if config.AppConfig.EmailSender == "" || event.UserEmail == "" {
		return
	}

	var err error
	switch event.Type {
	case services.EventCourseCompleted:
		err = SendCourseCompletedEmail(event.UserEmail, event.UserName, event.CourseTitle)
	case services.EventCertificateIssued:
		err = SendCertificateEmail(event.UserEmail, event.UserName, event.CourseTitle, event.Code)
	case services.EventCertificateRejected:
		err = SendCertificateRejectedEmail(event.UserEmail, event.UserName, event.CourseTitle, event.Reason)
	}
	if err != nil {
		log.Printf("event email failed for %s: %v", event.Type, err)
	}
}
