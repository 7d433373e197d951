package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/barberflow/barberflow/db"
	"github.com/barberflow/barberflow/models"
	"github.com/barberflow/barberflow/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders mails clients whose confirmed appointment
// starts roughly an hour from now. Time columns are zero-padded HH:mm,
// so the window comparison is plain string ordering.
func sendAppointmentReminders() {
	// The window is centered on one hour from now and clamped to that
	// instant's date, so a run just before midnight still queries a
	// single (date, time-range) pair.
	target := time.Now().Add(60 * time.Minute)
	date := target.Format("2006-01-02")
	windowStart := target.Add(-5 * time.Minute)
	windowEnd := target.Add(5 * time.Minute)

	startClock := windowStart.Format("15:04")
	if windowStart.Format("2006-01-02") != date {
		startClock = "00:00"
	}
	endClock := windowEnd.Format("15:04")
	if windowEnd.Format("2006-01-02") != date {
		endClock = "23:59"
	}

	var appointments []models.Appointment
	err := db.DB.Preload("Client").Preload("Service").
		Where("date = ? AND status = ? AND time >= ? AND time < ?",
			date, models.StatusConfirmed, startClock, endClock).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.Client == nil || appointment.Client.Email == "" {
			continue
		}
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Client.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := "Lembrete: seu horário é daqui a pouco"
	body := fmt.Sprintf(`
		<p>Olá %s,</p>
		<p>Passando para lembrar do seu horário na barbearia daqui a uma hora.</p>
		<ul>
			<li><strong>Serviço:</strong> %s</li>
			<li><strong>Data:</strong> %s</li>
			<li><strong>Horário:</strong> %s</li>
		</ul>
		<p>Se precisar remarcar ou cancelar, fale com a gente o quanto antes.</p>
	`, appointment.Client.Name, appointment.Service.Name, appointment.Date, appointment.Time)

	return utils.SendEmail(appointment.Client.Email, subject, body)
}
