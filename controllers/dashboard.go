package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/barberflow/barberflow/db"
	"github.com/barberflow/barberflow/models"
	"github.com/barberflow/barberflow/redis"
)

const dashboardCacheTTL = 60 * time.Second

type dashboardOverview struct {
	TotalAppointments int64     `json:"total_appointments"`
	PendingCount      int64     `json:"pending_count"`
	ConfirmedCount    int64     `json:"confirmed_count"`
	InProgressCount   int64     `json:"in_progress_count"`
	CompletedCount    int64     `json:"completed_count"`
	CancelledCount    int64     `json:"cancelled_count"`
	TotalServices     int64     `json:"total_services"`
	TotalClients      int64     `json:"total_clients"`
	RevenueToday      float64   `json:"revenue_today"`
	RevenueWeek       float64   `json:"revenue_week"`
	RevenueMonth      float64   `json:"revenue_month"`
	LastUpdated       time.Time `json:"last_updated"`
}

// GetDashboardOverview returns appointment counts and revenue
// aggregates for the shop. Aggregates are cached briefly in redis;
// slot availability never goes through this path.
func GetDashboardOverview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	role, _ := c.Locals("role").(string)
	cacheKey := fmt.Sprintf("dashboard:overview:%d", userID)

	if payload := redis.GetCachedJSON(cacheKey); payload != nil {
		c.Set("Content-Type", "application/json")
		return c.Send(payload)
	}

	var stats dashboardOverview

	// Each count gets a fresh query; reusing one *gorm.DB across
	// Where calls would accumulate the conditions.
	appointmentQuery := func() *gorm.DB {
		q := db.DB.Model(&models.Appointment{})
		if role == models.RoleBarber {
			q = q.Where("barber_id = ?", userID)
		}
		return q
	}

	appointmentQuery().Count(&stats.TotalAppointments)
	appointmentQuery().Where("status = ?", models.StatusPending).Count(&stats.PendingCount)
	appointmentQuery().Where("status = ?", models.StatusConfirmed).Count(&stats.ConfirmedCount)
	appointmentQuery().Where("status = ?", models.StatusInProgress).Count(&stats.InProgressCount)
	appointmentQuery().Where("status = ?", models.StatusCompleted).Count(&stats.CompletedCount)
	appointmentQuery().Where("status = ?", models.StatusCancelled).Count(&stats.CancelledCount)

	db.DB.Model(&models.Service{}).Count(&stats.TotalServices)
	db.DB.Model(&models.Client{}).Count(&stats.TotalClients)

	now := time.Now()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7).Format("2006-01-02")
	monthAgo := now.AddDate(0, -1, 0).Format("2006-01-02")

	stats.RevenueToday = completedRevenue(role, userID, today, today)
	stats.RevenueWeek = completedRevenue(role, userID, weekAgo, today)
	stats.RevenueMonth = completedRevenue(role, userID, monthAgo, today)
	stats.LastUpdated = now

	if payload, err := json.Marshal(stats); err == nil {
		redis.CacheJSON(cacheKey, payload, dashboardCacheTTL)
	}

	return c.JSON(stats)
}

// completedRevenue sums prices of completed appointments in the
// inclusive [from, to] date range. Lexicographic comparison is correct
// because dates are stored as YYYY-MM-DD.
func completedRevenue(role string, userID uint, from, to string) float64 {
	var total float64
	query := db.DB.Model(&models.Appointment{}).
		Where("status = ?", models.StatusCompleted).
		Where("date >= ? AND date <= ?", from, to)
	if role == models.RoleBarber {
		query = query.Where("barber_id = ?", userID)
	}
	query.Select("COALESCE(SUM(price), 0)").Scan(&total)
	return total
}
