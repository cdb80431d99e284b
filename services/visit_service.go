package services

import (
	"errors"
	"time"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier delivers the "visit completed" message. Fire-and-forget: the
// implementation must never block or fail the calling request.
type Notifier interface {
	VisitCompleted(visit *models.Visit)
}

// VisitService validates visits and drives the visit status machine:
// scheduled -> in_progress -> completed, scheduled/in_progress -> canceled,
// and canceled/completed back to scheduled via Reopen.
type VisitService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewVisitService(db *gorm.DB, notifier Notifier) *VisitService {
	return &VisitService{db: db, notifier: notifier}
}

func (s *VisitService) validate(v *models.Visit) error {
	if v.End != nil && v.End.Before(v.Start) {
		return InvalidRange("end", "end cannot be before start")
	}

	var technician models.User
	if err := s.db.First(&technician, "id = ?", v.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("user")
		}
		return err
	}
	if !technician.Active {
		return InvalidReference("user", "assigned user is inactive")
	}

	var sub models.PlanSubscription
	if err := s.db.First(&sub, "id = ?", v.SubscriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("subscription")
		}
		return err
	}
	if !sub.Active {
		return InvalidReference("subscription", "subscription is inactive")
	}
	return nil
}

func (s *VisitService) Create(v *models.Visit, actor *models.User) error {
	if v.Status == "" {
		v.Status = models.VisitScheduled
	}
	if !models.ValidVisitStatus(v.Status) {
		return InvalidState("status", "unknown visit status")
	}
	if err := s.validate(v); err != nil {
		return err
	}

	v.Active = true
	stampCreate(v, actor)
	if err := s.db.Create(v).Error; err != nil {
		return err
	}

	// A visit can be created directly in completed state; that still counts
	// as a transition into completed.
	if v.Status == models.VisitCompleted {
		s.notifier.VisitCompleted(v)
	}
	return nil
}

// Save persists an already-mutated visit. prevStatus is the status the row
// held before the caller applied changes; moving into completed fires the
// notification exactly once, saves while already completed never re-fire.
func (s *VisitService) Save(v *models.Visit, prevStatus string, actor *models.User) error {
	if !models.ValidVisitStatus(v.Status) {
		return InvalidState("status", "unknown visit status")
	}
	if err := s.validate(v); err != nil {
		return err
	}

	stampUpdate(v, actor)
	if err := s.db.Save(v).Error; err != nil {
		return err
	}

	if v.Status == models.VisitCompleted && prevStatus != models.VisitCompleted {
		s.notifier.VisitCompleted(v)
	}
	return nil
}

func (s *VisitService) load(visitID uuid.UUID, activeOnly bool) (*models.Visit, error) {
	q := s.db
	if activeOnly {
		q = q.Scopes(models.ActiveOnly)
	}
	var v models.Visit
	if err := q.First(&v, "id = ?", visitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("visit")
		}
		return nil, err
	}
	return &v, nil
}

// Start moves the visit into in_progress, stamping the start time if unset.
// A canceled visit cannot be started.
func (s *VisitService) Start(visitID uuid.UUID, actor *models.User) (*models.Visit, error) {
	v, err := s.load(visitID, true)
	if err != nil {
		return nil, err
	}
	if v.Status == models.VisitCanceled {
		return nil, InvalidTransition("canceled visit cannot be started")
	}

	if v.Start.IsZero() {
		v.Start = time.Now()
	}
	v.Status = models.VisitInProgress
	stampUpdate(v, actor)
	if err := s.db.Save(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// Complete closes the visit, stamping the end time if unset, and hands the
// visit to the notifier. Completing an already-completed visit is accepted
// but does not notify again.
func (s *VisitService) Complete(visitID uuid.UUID, actor *models.User) (*models.Visit, error) {
	v, err := s.load(visitID, true)
	if err != nil {
		return nil, err
	}

	prev := v.Status
	if v.End == nil {
		now := time.Now()
		v.End = &now
	}
	v.Status = models.VisitCompleted
	stampUpdate(v, actor)
	if err := s.db.Save(v).Error; err != nil {
		return nil, err
	}

	if prev != models.VisitCompleted {
		s.notifier.VisitCompleted(v)
	}
	return v, nil
}

// Cancel stores the supplied reason and closes the end time if still open.
func (s *VisitService) Cancel(visitID uuid.UUID, reason string, actor *models.User) (*models.Visit, error) {
	v, err := s.load(visitID, true)
	if err != nil {
		return nil, err
	}

	v.Status = models.VisitCanceled
	v.CancelReason = reason
	if v.End == nil {
		now := time.Now()
		v.End = &now
	}
	stampUpdate(v, actor)
	if err := s.db.Save(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// Reopen resets a canceled or completed visit back to scheduled and clears
// the cancel reason. Works regardless of the row's own soft-delete flag.
func (s *VisitService) Reopen(visitID uuid.UUID, actor *models.User) (*models.Visit, error) {
	v, err := s.load(visitID, false)
	if err != nil {
		return nil, err
	}

	v.Status = models.VisitScheduled
	v.CancelReason = ""
	stampUpdate(v, actor)
	if err := s.db.Save(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}
