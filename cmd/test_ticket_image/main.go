package main

import (
	"fmt"
	"os"
	"time"

	"github.com/campuscare/clinic_bot/internal/model"
	"github.com/campuscare/clinic_bot/internal/ticket"
)

// Renders a sample check-in ticket to ticket.png for eyeballing layout
// changes without a running bot.
func main() {
	data := ticket.Data{
		AppointmentID: 1042,
		StudentName:   "Jordan Kiprotich",
		ServiceType:   "Medical Consultation",
		Date:          time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
		Time:          "10:30",
		Urgency:       "Normal",
		Status:        model.AppointmentStatusApproved,
	}

	png, err := ticket.Render(data)
	if err != nil {
		fmt.Printf("Failed to render ticket: %v\n", err)
		os.Exit(1)
	}

	filename := "ticket.png"
	if err := os.WriteFile(filename, png, 0644); err != nil {
		fmt.Printf("Failed to save file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Ticket saved to %s\n", filename)
	fmt.Printf("🎫 Appointment #%d, %s %s\n", data.AppointmentID, data.Date, data.Time)
}
