package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotificationService sends the "visit completed" message to the customer.
// Delivery is best-effort and at-most-once: the send runs on its own
// goroutine, failures are logged and swallowed, nothing is retried.
type NotificationService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotificationService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// VisitCompleted satisfies the Notifier interface. Returns immediately; the
// actual send happens off the request path.
func (s *NotificationService) VisitCompleted(visit *models.Visit) {
	go s.sendVisitCompleted(visit.ID)
}

func (s *NotificationService) sendVisitCompleted(visitID uuid.UUID) {
	var visit models.Visit
	if err := s.db.
		Preload("Subscription.Customer.Contacts").
		Preload("TasksCompleted", "completed = ?", true).
		Preload("MaterialsUsed").
		First(&visit, "id = ?", visitID).Error; err != nil {
		log.Printf("Visit %s: failed to load for notification: %v", visitID, err)
		return
	}

	recipient := s.recipientFor(&visit)
	if recipient == "" {
		log.Printf("Visit %s: no recipient phone, skipping notification", visitID)
		s.logNotification(visitID, "", "", "skipped", "no recipient phone", "")
		return
	}

	message := fmt.Sprintf(
		"Your maintenance visit on %s has been completed. %d task(s) done, %d material(s) used. Thank you!",
		visit.Start.Format("2006-01-02"),
		len(visit.TasksCompleted),
		len(visit.MaterialsUsed),
	)

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	to := recipient
	if strings.HasPrefix(recipient, "+") {
		to = "whatsapp:" + recipient
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	status := "sent"
	errorMsg := ""

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Visit %s: failed to send completion message to %s: %v", visitID, recipient, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Visit %s: completion message sent to %s, SID: %s", visitID, recipient, *resp.Sid)
	} else {
		log.Printf("Visit %s: completion message sent to %s, but no SID returned", visitID, recipient)
	}

	s.logNotification(visitID, recipient, message, status, errorMsg, channel)
}

// recipientFor prefers the customer's primary contact phone, falling back to
// the customer record itself.
func (s *NotificationService) recipientFor(visit *models.Visit) string {
	if visit.Subscription == nil || visit.Subscription.Customer == nil {
		return ""
	}
	customer := visit.Subscription.Customer
	for _, contact := range customer.Contacts {
		if contact.IsPrimary && contact.Active && contact.Phone != "" {
			return contact.Phone
		}
	}
	return customer.Phone
}

func (s *NotificationService) logNotification(visitID uuid.UUID, recipient, message, status, errorMsg, channel string) {
	entry := models.NotificationLog{
		VisitID:      visitID,
		Type:         "visit_completed",
		Recipient:    recipient,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Visit %s: failed to log notification: %v", visitID, err)
	}
}
