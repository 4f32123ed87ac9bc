package domain

// NotificationType represents the kind of notification.
type NotificationType string

const (
	NotificationNewAppointmentRequest NotificationType = "new-appointment-request"
	NotificationNewDoctorRequest      NotificationType = "new-doctor-request"
	NotificationDoctorRequestChanged  NotificationType = "new-doctor-request-changed"
)

// Notification is an inbox item embedded in a user document. Items have no
// identity of their own; inboxes are only ever moved or cleared in bulk.
type Notification struct {
	Type        NotificationType `json:"type" bson:"type"`
	Message     string           `json:"message" bson:"message"`
	Data        map[string]any   `json:"data,omitempty" bson:"data,omitempty"`
	OnClickPath string           `json:"onClickPath" bson:"onClickPath"`
}
