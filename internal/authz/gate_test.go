package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

func TestAuthorizeDefaultGate(t *testing.T) {
	g := NewDefaultGate()
	ctx := context.Background()

	admin := Subject{UserID: "a1", IsAdmin: true}
	patient := Subject{UserID: "u1"}

	tests := []struct {
		name     string
		subject  Subject
		action   Action
		resource string
		target   any
		wantErr  error
	}{
		{"admin lists users", admin, ActionList, ResourceUser, nil, nil},
		{"patient lists users", patient, ActionList, ResourceUser, nil, domain.ErrForbidden},
		{"patient views self", patient, ActionView, ResourceUser, "u1", nil},
		{"patient views other", patient, ActionView, ResourceUser, "u2", domain.ErrForbidden},
		{"admin views other", admin, ActionView, ResourceUser, "u2", nil},
		{"patient books for self", patient, ActionBook, ResourceAppointment, "u1", nil},
		{"patient books for other", patient, ActionBook, ResourceAppointment, "u2", domain.ErrForbidden},
		{"patient updates status", patient, ActionUpdateStatus, ResourceAppointment, nil, domain.ErrForbidden},
		{"admin changes doctor status", admin, ActionChangeStatus, ResourceDoctor, nil, nil},
		{"patient applies", patient, ActionApply, ResourceDoctor, nil, nil},
		{"anonymous", Subject{}, ActionApply, ResourceDoctor, nil, domain.ErrUnauthorized},
		{"unknown action denied", admin, Action("explode"), ResourceUser, nil, domain.ErrForbidden},
		{"unknown resource", admin, ActionList, "invoice", nil, ErrNoPolicyDefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Authorize(ctx, tt.subject, tt.action, tt.resource, tt.target)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSelfOrAdminRejectsNonStringResource(t *testing.T) {
	if SelfOrAdmin(Subject{UserID: "u1"}, 42) {
		t.Fatal("expected denial for non-string resource")
	}
	if !SelfOrAdmin(Subject{UserID: "u1", IsAdmin: true}, 42) {
		t.Fatal("expected admin bypass")
	}
}

func TestSubjectOf(t *testing.T) {
	s := SubjectOf(&domain.User{ID: "u9", IsDoctor: true})
	if s.UserID != "u9" || !s.IsDoctor || s.IsAdmin {
		t.Errorf("unexpected subject %+v", s)
	}
	if SubjectOf(nil) != (Subject{}) {
		t.Error("expected zero subject for nil user")
	}
}
