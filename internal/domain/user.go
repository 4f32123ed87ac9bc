package domain

import "time"

// User is an account document. The notification inboxes live on the user
// record itself.
type User struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Email               string         `json:"email"`
	PhoneNumber         string         `json:"phoneNumber"`
	PasswordHash        string         `json:"-"`
	IsAdmin             bool           `json:"isAdmin"`
	IsDoctor            bool           `json:"isDoctor"`
	SeenNotifications   []Notification `json:"seenNotifications"`
	UnseenNotifications []Notification `json:"unseenNotifications"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// UserSummary is the listing projection of a user, without inboxes.
type UserSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	IsAdmin     bool      `json:"isAdmin"`
	IsDoctor    bool      `json:"isDoctor"`
}

// Summary returns the listing projection of u.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		IsAdmin:     u.IsAdmin,
		IsDoctor:    u.IsDoctor,
	}
}
