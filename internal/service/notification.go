package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

// NotificationService manages the two-list inbox on a user record.
type NotificationService struct {
	users UserStore
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(users UserStore) *NotificationService {
	return &NotificationService{users: users}
}

// MarkAllSeen moves the unseen inbox into the seen inbox. The previous seen
// inbox is overwritten, not merged.
func (s *NotificationService) MarkAllSeen(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.MarkNotificationsSeen(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("mark notifications seen for %s: %w", userID, err)
	}
	return user, nil
}

// ClearAll empties both inboxes.
func (s *NotificationService) ClearAll(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.ClearNotifications(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("clear notifications for %s: %w", userID, err)
	}
	return user, nil
}
