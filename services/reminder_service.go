// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"fieldops-backend/models"
	"fieldops-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService messages each technician their scheduled visits for the
// day. Same best-effort contract as the completion notification.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 7 AM
	c.AddFunc("0 7 * * *", s.SendDailyVisitReminders)

	c.Start()
	log.Println("Visit reminder scheduler started")
}

func (s *ReminderService) SendDailyVisitReminders() {
	log.Println("Starting daily visit reminder processing...")

	now := time.Now()
	dayStart := utils.BeginningOfDay(now)
	dayEnd := utils.EndOfDay(now)

	var visits []models.Visit
	if err := s.db.Scopes(models.ActiveOnly).
		Where("status = ? AND start BETWEEN ? AND ?", models.VisitScheduled, dayStart, dayEnd).
		Preload("User").
		Order("start").
		Find(&visits).Error; err != nil {
		log.Printf("Failed to fetch today's visits: %v", err)
		return
	}

	byTechnician := make(map[string][]models.Visit)
	for _, v := range visits {
		if v.User == nil || !v.User.Active || v.User.Phone == "" {
			continue
		}
		byTechnician[v.User.Phone] = append(byTechnician[v.User.Phone], v)
	}

	for phone, assigned := range byTechnician {
		s.sendReminder(phone, assigned)
	}

	log.Println("Daily visit reminder processing completed")
}

func (s *ReminderService) sendReminder(phone string, visits []models.Visit) {
	message := fmt.Sprintf("You have %d visit(s) scheduled today:", len(visits))
	for _, v := range visits {
		message += fmt.Sprintf("\n- %s at %s", v.Start.Format("15:04"), v.SiteAddress)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetBody(message)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	status := "sent"
	errorMsg := ""

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", phone, *resp.Sid)
	}

	for _, v := range visits {
		entry := models.NotificationLog{
			VisitID:      v.ID,
			Type:         "visit_reminder",
			Recipient:    phone,
			Message:      message,
			Status:       status,
			ErrorMessage: errorMsg,
			Channel:      "sms",
			SentAt:       time.Now(),
		}
		if err := s.db.Create(&entry).Error; err != nil {
			log.Printf("Failed to log reminder for visit %s: %v", v.ID, err)
		}
	}
}
