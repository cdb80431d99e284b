package controllers

import (
	"net/http"
	"time"

	"fieldops-backend/config"
	"fieldops-backend/models"
	"fieldops-backend/utils"

	"github.com/gin-gonic/gin"
)

type visitStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type visitDayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// monthsPerCycle converts a plan periodicity into billing cycle length in months.
func monthsPerCycle(periodicity string) float64 {
	switch periodicity {
	case models.PeriodicityMonthly:
		return 1
	case models.PeriodicityBimonthly:
		return 2
	case models.PeriodicityQuarterly:
		return 3
	case models.PeriodicitySemiannual:
		return 6
	case models.PeriodicityAnnual:
		return 12
	default:
		return 1
	}
}

// estimatedMonthlyRevenue sums plan prices of active subscriptions,
// normalized to a per-month figure by each plan's periodicity.
func estimatedMonthlyRevenue() float64 {
	var subs []models.PlanSubscription
	config.DB.Preload("Plan").
		Where("active = ? AND status = ?", true, models.SubscriptionActive).
		Find(&subs)

	var total float64
	for _, sub := range subs {
		if sub.Plan == nil {
			continue
		}
		total += sub.Plan.Price / monthsPerCycle(sub.Plan.Periodicity)
	}
	return total
}

// GetDashboardOverview returns aggregate business metrics for a date range.
// Defaults to the current calendar month when from/to are not provided.
func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = utils.EndOfDay(parsed)
	}
	if to.Before(from) {
		utils.RespondWithError(c, http.StatusBadRequest, "to must not be before from")
		return
	}

	db := config.DB

	var totalCustomers, activeCustomers int64
	db.Model(&models.Customer{}).Count(&totalCustomers)
	db.Model(&models.Customer{}).Where("active = ?", true).Count(&activeCustomers)

	var activeSubscriptions int64
	db.Model(&models.PlanSubscription{}).
		Where("active = ? AND status = ?", true, models.SubscriptionActive).
		Count(&activeSubscriptions)

	todayStart := utils.BeginningOfDay(now)
	todayEnd := utils.EndOfDay(now)

	var visitsPlannedToday, visitsCompletedToday int64
	db.Model(&models.Visit{}).
		Where("active = ? AND start BETWEEN ? AND ?", true, todayStart, todayEnd).
		Count(&visitsPlannedToday)
	db.Model(&models.Visit{}).
		Where("active = ? AND status = ? AND start BETWEEN ? AND ?",
			true, models.VisitCompleted, todayStart, todayEnd).
		Count(&visitsCompletedToday)

	var visitsCompletedInRange int64
	db.Model(&models.Visit{}).
		Where("active = ? AND status = ? AND start BETWEEN ? AND ?",
			true, models.VisitCompleted, from, to).
		Count(&visitsCompletedInRange)

	monthlyRevenue := estimatedMonthlyRevenue()

	var byStatus []visitStatusCount
	db.Model(&models.Visit{}).
		Select("status, COUNT(*) as count").
		Where("active = ? AND start BETWEEN ? AND ?", true, from, to).
		Group("status").
		Order("status").
		Scan(&byStatus)

	var byDay []visitDayCount
	db.Model(&models.Visit{}).
		Select("DATE(start) as day, COUNT(*) as count").
		Where("active = ? AND start BETWEEN ? AND ?", true, from, to).
		Group("DATE(start)").
		Order("day").
		Scan(&byDay)

	c.JSON(http.StatusOK, gin.H{
		"range": gin.H{
			"from": from.Format("2006-01-02"),
			"to":   to.Format("2006-01-02"),
		},
		"totals": gin.H{
			"total_customers":           totalCustomers,
			"active_customers":          activeCustomers,
			"active_subscriptions":      activeSubscriptions,
			"visits_planned_today":      visitsPlannedToday,
			"visits_completed_today":    visitsCompletedToday,
			"visits_completed_in_range": visitsCompletedInRange,
			"estimated_monthly_revenue": monthlyRevenue,
		},
		"charts": gin.H{
			"visits_by_status": byStatus,
			"visits_by_day":    byDay,
		},
	})
}
