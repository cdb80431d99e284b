package services

import (
	"errors"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanService guards plan integrity: tasks cannot be written under an
// inactive plan, task names stay unique within a plan, and a plan referenced
// by subscriptions cannot be deleted.
type PlanService struct {
	db *gorm.DB
}

func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{db: db}
}

// ensurePlanUsable checks that the plan is active and that none of its tasks
// have been deactivated. Re-evaluated on every mutating call; these are
// advisory business rules, not database constraints.
func ensurePlanUsable(db *gorm.DB, planID uuid.UUID) error {
	var plan models.Plan
	if err := db.First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("plan")
		}
		return err
	}
	if !plan.Active {
		return InvalidState("plan", "plan is inactive")
	}

	var inactiveTasks int64
	if err := db.Model(&models.PlanTask{}).
		Where("plan_id = ? AND active = ?", planID, false).
		Count(&inactiveTasks).Error; err != nil {
		return err
	}
	if inactiveTasks > 0 {
		return InvalidState("plan", "plan has inactive tasks")
	}
	return nil
}

func (s *PlanService) ensureActivePlan(planID uuid.UUID) error {
	var plan models.Plan
	if err := s.db.First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("plan")
		}
		return err
	}
	if !plan.Active {
		return InvalidState("plan", "plan is inactive")
	}
	return nil
}

func (s *PlanService) ensureUniqueTaskName(task *models.PlanTask) error {
	var count int64
	if err := s.db.Model(&models.PlanTask{}).
		Where("plan_id = ? AND name = ? AND id <> ?", task.PlanID, task.Name, task.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return Conflict("name", "a task with this name already exists for the plan")
	}
	return nil
}

func (s *PlanService) CreateTask(task *models.PlanTask, actor *models.User) error {
	if err := s.ensureActivePlan(task.PlanID); err != nil {
		return err
	}
	if err := s.ensureUniqueTaskName(task); err != nil {
		return err
	}

	task.Active = true
	stampCreate(task, actor)
	return s.db.Create(task).Error
}

func (s *PlanService) SaveTask(task *models.PlanTask, actor *models.User) error {
	if err := s.ensureActivePlan(task.PlanID); err != nil {
		return err
	}
	if err := s.ensureUniqueTaskName(task); err != nil {
		return err
	}

	stampUpdate(task, actor)
	return s.db.Save(task).Error
}

// DeletePlan soft-deletes the plan unless subscriptions still reference it
// (protect-on-delete, as the subscription keeps pointing at the plan's
// price and task list).
func (s *PlanService) DeletePlan(planID uuid.UUID, actor *models.User) error {
	var refs int64
	if err := s.db.Model(&models.PlanSubscription{}).
		Where("plan_id = ?", planID).
		Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return Conflict("plan", "plan is referenced by subscriptions and cannot be deleted")
	}
	return Deactivate(s.db, &models.Plan{}, "plan", planID, actor)
}
