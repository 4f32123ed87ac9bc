// Package memory is an in-process record store. It backs the test suites and
// STORE_DRIVER=memory for local development; nothing survives a restart.
package memory

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

// DB holds every collection behind a single lock.
type DB struct {
	mu           sync.RWMutex
	users        map[string]domain.User
	doctors      map[string]domain.Doctor
	appointments map[string]domain.Appointment
	// insertion order, so listings are stable like a natural-order scan
	userOrder        []string
	doctorOrder      []string
	appointmentOrder []string

	now func() time.Time
}

// New creates an empty DB.
func New() *DB {
	return &DB{
		users:        make(map[string]domain.User),
		doctors:      make(map[string]domain.Doctor),
		appointments: make(map[string]domain.Appointment),
		now:          time.Now,
	}
}

func newID() string {
	return uuid.NewString()
}

func removeID(order []string, id string) []string {
	return slices.DeleteFunc(order, func(v string) bool { return v == id })
}

func cloneUser(u domain.User) domain.User {
	u.SeenNotifications = cloneNotifications(u.SeenNotifications)
	u.UnseenNotifications = cloneNotifications(u.UnseenNotifications)
	return u
}

func cloneNotifications(in []domain.Notification) []domain.Notification {
	out := make([]domain.Notification, len(in))
	for i, n := range in {
		n.Data = maps.Clone(n.Data)
		out[i] = n
	}
	return out
}

func cloneAppointment(a domain.Appointment) domain.Appointment {
	if a.MedicalReport != nil {
		r := *a.MedicalReport
		a.MedicalReport = &r
	}
	return a
}
