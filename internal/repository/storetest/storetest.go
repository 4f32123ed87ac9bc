// Package storetest holds a behavioural suite every record store backend must
// pass. Backend packages call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

// Stores is one backend's set of stores.
type Stores struct {
	Users        service.UserStore
	Doctors      service.DoctorStore
	Appointments service.AppointmentStore
}

// Run executes the suite. open must return empty stores on every call.
func Run(t *testing.T, open func(t *testing.T) Stores) {
	tests := []struct {
		name string
		fn   func(*testing.T, Stores)
	}{
		{"UserCreateAndFind", testUserCreateAndFind},
		{"UserNotifications", testUserNotifications},
		{"UserDoctorFlagAndDelete", testUserDoctorFlagAndDelete},
		{"DoctorLifecycle", testDoctorLifecycle},
		{"DoctorInsertMany", testDoctorInsertMany},
		{"AppointmentLifecycle", testAppointmentLifecycle},
		{"AppointmentDeleteByDoctor", testAppointmentDeleteByDoctor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, open(t))
		})
	}
}

func mustUser(t *testing.T, s Stores, email string, admin bool) *domain.User {
	t.Helper()
	u, err := s.Users.Create(context.Background(), domain.User{
		Name: "User " + email, Email: email, PhoneNumber: "0100", PasswordHash: "hash", IsAdmin: admin,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func mustDoctor(t *testing.T, s Stores, userID string) *domain.Doctor {
	t.Helper()
	d, err := s.Doctors.Create(context.Background(), domain.Doctor{
		UserID: userID,
		Status: domain.DoctorStatusPending,
		DoctorProfile: domain.DoctorProfile{
			Prefix: "Dr.", FullName: "Noor Salem", Specialization: "Gynecology",
			FeePerConsultation: 95, FromTime: "09:00", ToTime: "17:00",
		},
	})
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return d
}

func testUserCreateAndFind(t *testing.T, s Stores) {
	ctx := context.Background()
	u := mustUser(t, s, "sara@example.com", false)
	mustUser(t, s, "admin@example.com", true)

	if u.ID == "" {
		t.Fatal("empty id")
	}
	if u.UnseenNotifications == nil || u.SeenNotifications == nil {
		t.Error("new users should have empty, non-nil inboxes")
	}

	byID, err := s.Users.FindByID(ctx, u.ID)
	if err != nil || byID.Email != u.Email || byID.PasswordHash != "hash" {
		t.Fatalf("FindByID = %+v, %v", byID, err)
	}
	byEmail, err := s.Users.FindByEmail(ctx, "sara@example.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("FindByEmail = %+v, %v", byEmail, err)
	}

	if _, err := s.Users.Create(ctx, domain.User{Name: "dup", Email: "sara@example.com", PasswordHash: "x"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate email err = %v, want ErrConflict", err)
	}
	if _, err := s.Users.FindByID(ctx, "000000000000000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing id err = %v, want ErrNotFound", err)
	}
	if _, err := s.Users.FindByEmail(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing email err = %v, want ErrNotFound", err)
	}

	all, err := s.Users.List(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("List = %d, %v", len(all), err)
	}
	admins, err := s.Users.ListAdmins(ctx)
	if err != nil || len(admins) != 1 || !admins[0].IsAdmin {
		t.Fatalf("ListAdmins = %+v, %v", admins, err)
	}
}

func testUserNotifications(t *testing.T, s Stores) {
	ctx := context.Background()
	u := mustUser(t, s, "sara@example.com", false)

	push := func(msg string) {
		t.Helper()
		err := s.Users.PushUnseenNotification(ctx, u.ID, domain.Notification{
			Type:        domain.NotificationNewAppointmentRequest,
			Message:     msg,
			Data:        map[string]any{"name": msg},
			OnClickPath: "/doctor/appointments",
		})
		if err != nil {
			t.Fatalf("push %s: %v", msg, err)
		}
	}

	push("C")
	if _, err := s.Users.MarkNotificationsSeen(ctx, u.ID); err != nil {
		t.Fatalf("MarkNotificationsSeen: %v", err)
	}
	push("A")
	push("B")

	got, err := s.Users.MarkNotificationsSeen(ctx, u.ID)
	if err != nil {
		t.Fatalf("MarkNotificationsSeen: %v", err)
	}
	if len(got.UnseenNotifications) != 0 {
		t.Errorf("unseen = %d, want 0", len(got.UnseenNotifications))
	}
	if len(got.SeenNotifications) != 2 || got.SeenNotifications[0].Message != "A" || got.SeenNotifications[1].Message != "B" {
		t.Fatalf("seen = %+v, want [A B]", got.SeenNotifications)
	}
	if got.SeenNotifications[0].Data["name"] != "A" {
		t.Errorf("data = %v", got.SeenNotifications[0].Data)
	}

	push("D")
	cleared, err := s.Users.ClearNotifications(ctx, u.ID)
	if err != nil {
		t.Fatalf("ClearNotifications: %v", err)
	}
	if len(cleared.SeenNotifications) != 0 || len(cleared.UnseenNotifications) != 0 {
		t.Errorf("after clear seen = %d unseen = %d", len(cleared.SeenNotifications), len(cleared.UnseenNotifications))
	}

	if err := s.Users.PushUnseenNotification(ctx, "000000000000000000000000", domain.Notification{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("push to missing user err = %v, want ErrNotFound", err)
	}
	if _, err := s.Users.MarkNotificationsSeen(ctx, "000000000000000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("mark seen on missing user err = %v, want ErrNotFound", err)
	}
}

func testUserDoctorFlagAndDelete(t *testing.T, s Stores) {
	ctx := context.Background()
	u := mustUser(t, s, "sara@example.com", false)

	if err := s.Users.SetDoctorFlag(ctx, u.ID, true); err != nil {
		t.Fatalf("SetDoctorFlag: %v", err)
	}
	got, err := s.Users.FindByID(ctx, u.ID)
	if err != nil || !got.IsDoctor {
		t.Fatalf("isDoctor = %v, %v", got, err)
	}

	if err := s.Users.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Users.Delete(ctx, u.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete err = %v, want ErrNotFound", err)
	}
	if err := s.Users.SetDoctorFlag(ctx, u.ID, false); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("SetDoctorFlag on deleted user err = %v, want ErrNotFound", err)
	}
}

func testDoctorLifecycle(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := mustUser(t, s, "noor@example.com", false)
	d := mustDoctor(t, s, owner.ID)

	if _, err := s.Doctors.Create(ctx, domain.Doctor{UserID: owner.ID, Status: domain.DoctorStatusPending,
		DoctorProfile: domain.DoctorProfile{FullName: "Twice", Specialization: "x"}}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second doctor for user err = %v, want ErrConflict", err)
	}

	byUser, err := s.Doctors.FindByUserID(ctx, owner.ID)
	if err != nil || byUser.ID != d.ID || byUser.FeePerConsultation != 95 {
		t.Fatalf("FindByUserID = %+v, %v", byUser, err)
	}

	approved, err := s.Doctors.UpdateStatus(ctx, d.ID, domain.DoctorStatusApproved)
	if err != nil || approved.Status != domain.DoctorStatusApproved {
		t.Fatalf("UpdateStatus = %+v, %v", approved, err)
	}
	list, err := s.Doctors.ListByStatus(ctx, domain.DoctorStatusApproved)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByStatus = %d, %v", len(list), err)
	}
	if _, err := s.Doctors.UpdateStatus(ctx, "000000000000000000000000", domain.DoctorStatusBlocked); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateStatus missing err = %v, want ErrNotFound", err)
	}

	profile := d.DoctorProfile
	profile.Address = "987 Health Center, Helwan"
	updated, err := s.Doctors.UpdateProfile(ctx, d.ID, profile)
	if err != nil || updated.Address != profile.Address || updated.Status != domain.DoctorStatusApproved {
		t.Fatalf("UpdateProfile = %+v, %v", updated, err)
	}

	deleted, err := s.Doctors.DeleteByUserID(ctx, owner.ID)
	if err != nil || deleted.ID != d.ID {
		t.Fatalf("DeleteByUserID = %+v, %v", deleted, err)
	}
	if _, err := s.Doctors.FindByID(ctx, d.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("FindByID after delete err = %v, want ErrNotFound", err)
	}
	if _, err := s.Doctors.DeleteByUserID(ctx, owner.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second DeleteByUserID err = %v, want ErrNotFound", err)
	}
}

func testDoctorInsertMany(t *testing.T, s Stores) {
	ctx := context.Background()
	var batch []domain.Doctor
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		u := mustUser(t, s, email, false)
		batch = append(batch, domain.Doctor{
			UserID:        u.ID,
			Status:        domain.DoctorStatusApproved,
			DoctorProfile: domain.DoctorProfile{FullName: email, Specialization: "Neurology"},
		})
	}

	n, err := s.Doctors.InsertMany(ctx, batch)
	if err != nil || n != 3 {
		t.Fatalf("InsertMany = %d, %v", n, err)
	}
	all, err := s.Doctors.List(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("List = %d, %v", len(all), err)
	}
}

func testAppointmentLifecycle(t *testing.T, s Stores) {
	ctx := context.Background()
	report := "reports/scan.pdf"
	a, err := s.Appointments.Create(ctx, domain.Appointment{
		UserID:        "patient-1",
		DoctorID:      "doctor-1",
		UserInfo:      domain.PatientInfo{Name: "Sara", Email: "sara@example.com"},
		DoctorInfo:    domain.DoctorInfo{UserID: "owner-1", FullName: "Noor Salem"},
		Date:          "2024-05-01",
		Time:          "10:00",
		MedicalReport: &report,
		Status:        domain.AppointmentStatusPending,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Appointments.FindByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.UserInfo.Name != "Sara" || got.DoctorInfo.UserID != "owner-1" || got.MedicalReport == nil || *got.MedicalReport != report {
		t.Errorf("appointment = %+v", got)
	}

	byUser, err := s.Appointments.ListByUser(ctx, "patient-1")
	if err != nil || len(byUser) != 1 {
		t.Fatalf("ListByUser = %d, %v", len(byUser), err)
	}
	byDoctor, err := s.Appointments.ListByDoctor(ctx, "doctor-1")
	if err != nil || len(byDoctor) != 1 {
		t.Fatalf("ListByDoctor = %d, %v", len(byDoctor), err)
	}

	updated, err := s.Appointments.UpdateStatus(ctx, a.ID, domain.AppointmentStatusRejected)
	if err != nil || updated.Status != domain.AppointmentStatusRejected {
		t.Fatalf("UpdateStatus = %+v, %v", updated, err)
	}
	if _, err := s.Appointments.UpdateStatus(ctx, "000000000000000000000000", domain.AppointmentStatusApproved); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateStatus missing err = %v, want ErrNotFound", err)
	}
}

func testAppointmentDeleteByDoctor(t *testing.T, s Stores) {
	ctx := context.Background()
	for _, doctorID := range []string{"owner-1", "doctor-1", "doctor-1", "doctor-2"} {
		if _, err := s.Appointments.Create(ctx, domain.Appointment{
			UserID: "patient-1", DoctorID: doctorID, Date: "2024-05-01", Time: "10:00",
			Status: domain.AppointmentStatusPending,
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	n, err := s.Appointments.DeleteByDoctor(ctx, "owner-1", "doctor-1")
	if err != nil || n != 3 {
		t.Fatalf("DeleteByDoctor = %d, %v", n, err)
	}
	left, err := s.Appointments.List(ctx)
	if err != nil || len(left) != 1 || left[0].DoctorID != "doctor-2" {
		t.Fatalf("remaining = %+v, %v", left, err)
	}
}
