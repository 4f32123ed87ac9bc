package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
	"github.com/Raafiya76/doctor-appointment-booking/internal/repository/memory"
)

type fixture struct {
	users        *memory.UserRepository
	doctors      *memory.DoctorRepository
	appointments *memory.AppointmentRepository

	auth          *AuthService
	accounts      *AccountService
	booking       *AppointmentService
	doctorSvc     *DoctorService
	notifications *NotificationService
}

func newFixture() *fixture {
	db := memory.New()
	f := &fixture{
		users:        memory.NewUserRepository(db),
		doctors:      memory.NewDoctorRepository(db),
		appointments: memory.NewAppointmentRepository(db),
	}
	f.auth = NewAuthService(f.users, "test-secret")
	f.auth.bcryptCost = bcrypt.MinCost
	f.accounts = NewAccountService(f.users, f.doctors, f.appointments)
	f.booking = NewAppointmentService(f.users, f.doctors, f.appointments)
	f.doctorSvc = NewDoctorService(f.users, f.doctors)
	f.notifications = NewNotificationService(f.users)
	return f
}

func (f *fixture) user(t *testing.T, name, email string) *domain.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), domain.User{Name: name, Email: email, PhoneNumber: "0100"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (f *fixture) doctor(t *testing.T, owner *domain.User) *domain.Doctor {
	t.Helper()
	d, err := f.doctors.Create(context.Background(), domain.Doctor{
		UserID: owner.ID,
		Status: domain.DoctorStatusPending,
		DoctorProfile: domain.DoctorProfile{
			Prefix: "Dr.", FullName: owner.Name, Specialization: "Cardiology",
			FromTime: "09:00", ToTime: "17:00",
		},
	})
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return d
}

func (f *fixture) reload(t *testing.T, id string) *domain.User {
	t.Helper()
	u, err := f.users.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("reload %s: %v", id, err)
	}
	return u
}

func TestBookCreatesPendingAppointmentAndNotifiesOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.user(t, "Ahmed", "owner@example.com")
	d1 := f.doctor(t, owner)
	u1 := f.user(t, "Sara", "u1@example.com")

	appt, err := f.booking.Book(ctx, BookingRequest{
		PatientID: u1.ID, DoctorID: d1.ID, Date: "2024-05-01", Time: "10:00",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if appt.Status != domain.AppointmentStatusPending {
		t.Errorf("status = %q, want pending", appt.Status)
	}
	if appt.DoctorInfo.UserID != owner.ID || appt.DoctorInfo.FullName != "Ahmed" {
		t.Errorf("doctor snapshot = %+v", appt.DoctorInfo)
	}

	list, err := f.booking.ListForUser(ctx, u1.ID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 1 || list[0].Status != domain.AppointmentStatusPending {
		t.Fatalf("patient appointments = %+v", list)
	}

	got := f.reload(t, owner.ID)
	if len(got.UnseenNotifications) != 1 {
		t.Fatalf("owner unseen = %d, want 1", len(got.UnseenNotifications))
	}
	n := got.UnseenNotifications[0]
	if n.Type != domain.NotificationNewAppointmentRequest {
		t.Errorf("type = %q", n.Type)
	}
	if n.Message != "A new appointment request has been made by Sara" {
		t.Errorf("message = %q", n.Message)
	}
	if n.OnClickPath != "/doctor/appointments" {
		t.Errorf("onClickPath = %q", n.OnClickPath)
	}
	if len(f.reload(t, u1.ID).UnseenNotifications) != 0 {
		t.Error("patient should not be notified")
	}
}

func TestBookAllowsOverlappingSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.user(t, "Ahmed", "owner@example.com")
	d := f.doctor(t, owner)
	p := f.user(t, "Sara", "p@example.com")

	for i := 0; i < 2; i++ {
		if _, err := f.booking.Book(ctx, BookingRequest{PatientID: p.ID, DoctorID: d.ID, Date: "2024-05-01", Time: "10:00"}); err != nil {
			t.Fatalf("Book: %v", err)
		}
	}
	list, _ := f.booking.ListAll(ctx)
	if len(list) != 2 {
		t.Errorf("appointments = %d, want 2", len(list))
	}
}

func TestBookUnknownReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.user(t, "Ahmed", "owner@example.com")
	d := f.doctor(t, owner)
	p := f.user(t, "Sara", "p@example.com")

	tests := []struct {
		name    string
		req     BookingRequest
		wantMsg string
	}{
		{"unknown doctor", BookingRequest{PatientID: p.ID, DoctorID: "missing", Date: "2024-05-01", Time: "10:00"}, "Doctor not found"},
		{"unknown patient", BookingRequest{PatientID: "missing", DoctorID: d.ID, Date: "2024-05-01", Time: "10:00"}, "User not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.booking.Book(ctx, tt.req)
			if !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("err = %v, want ErrNotFound", err)
			}
			var appErr *domain.Error
			if !errors.As(err, &appErr) || appErr.Message != tt.wantMsg {
				t.Errorf("message = %v, want %q", err, tt.wantMsg)
			}
		})
	}

	list, _ := f.booking.ListAll(ctx)
	if len(list) != 0 {
		t.Errorf("failed bookings stored %d appointments", len(list))
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.user(t, "Ahmed", "owner@example.com")
	d := f.doctor(t, owner)
	p := f.user(t, "Sara", "p@example.com")
	appt, err := f.booking.Book(ctx, BookingRequest{PatientID: p.ID, DoctorID: d.ID, Date: "2024-05-01", Time: "10:00"})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	updated, err := f.booking.UpdateStatus(ctx, appt.ID, domain.AppointmentStatusApproved)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.AppointmentStatusApproved {
		t.Errorf("status = %q", updated.Status)
	}

	// no re-transition guard: approved can be overwritten with rejected
	updated, err = f.booking.UpdateStatus(ctx, appt.ID, domain.AppointmentStatusRejected)
	if err != nil {
		t.Fatalf("second UpdateStatus: %v", err)
	}
	if updated.Status != domain.AppointmentStatusRejected {
		t.Errorf("status = %q, want rejected", updated.Status)
	}

	if len(f.reload(t, p.ID).UnseenNotifications) != 0 {
		t.Error("patient is not notified of status changes")
	}

	if _, err := f.booking.UpdateStatus(ctx, "missing", domain.AppointmentStatusApproved); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	all, _ := f.booking.ListAll(ctx)
	if len(all) != 1 || all[0].Status != domain.AppointmentStatusRejected {
		t.Errorf("unknown id altered the store: %+v", all)
	}
}

func TestListForDoctorOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.user(t, "Ahmed", "owner@example.com")
	d := f.doctor(t, owner)
	p := f.user(t, "Sara", "p@example.com")
	if _, err := f.booking.Book(ctx, BookingRequest{PatientID: p.ID, DoctorID: d.ID, Date: "2024-05-01", Time: "10:00"}); err != nil {
		t.Fatalf("Book: %v", err)
	}

	list, err := f.booking.ListForDoctorOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListForDoctorOwner: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("appointments = %d, want 1", len(list))
	}

	if _, err := f.booking.ListForDoctorOwner(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for a non-doctor", err)
	}
}

func TestChangeStatusFlipsDoctorFlag(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.user(t, "Ahmed", "owner@example.com")
	d := f.doctor(t, owner)

	doctors, err := f.doctorSvc.ChangeStatus(ctx, d.ID, domain.DoctorStatusApproved, owner.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if len(doctors) != 1 || doctors[0].Status != domain.DoctorStatusApproved {
		t.Fatalf("doctors = %+v", doctors)
	}
	got := f.reload(t, owner.ID)
	if !got.IsDoctor {
		t.Error("approved owner should be a doctor")
	}
	if len(got.UnseenNotifications) != 1 {
		t.Fatalf("unseen = %d, want 1", len(got.UnseenNotifications))
	}
	n := got.UnseenNotifications[0]
	if n.Type != domain.NotificationDoctorRequestChanged || n.Message != "Your doctor request has been approved" {
		t.Errorf("notification = %+v", n)
	}
	if n.Data["doctorId"] != owner.ID {
		t.Errorf("data = %v", n.Data)
	}

	if _, err := f.doctorSvc.ChangeStatus(ctx, d.ID, domain.DoctorStatusBlocked, owner.ID); err != nil {
		t.Fatalf("block: %v", err)
	}
	if f.reload(t, owner.ID).IsDoctor {
		t.Error("blocked owner should not be a doctor")
	}
}

func TestChangeStatusUnknownDoctor(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.user(t, "Ahmed", "owner@example.com")

	_, err := f.doctorSvc.ChangeStatus(ctx, "missing", domain.DoctorStatusApproved, owner.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	got := f.reload(t, owner.ID)
	if got.IsDoctor || len(got.UnseenNotifications) != 0 {
		t.Error("failed status change must not touch the owner")
	}
}

func TestApplyNotifiesAdmins(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	admin, err := f.users.Create(ctx, domain.User{Name: "Admin", Email: "admin@example.com", IsAdmin: true})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	applicant := f.user(t, "Ahmed", "ahmed@example.com")
	profile := domain.DoctorProfile{FullName: "Ahmed Hassan", Specialization: "Cardiology", FromTime: "09:00", ToTime: "17:00"}

	d, err := f.doctorSvc.Apply(ctx, applicant.ID, profile)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if d.Status != domain.DoctorStatusPending || d.UserID != applicant.ID {
		t.Errorf("doctor = %+v", d)
	}

	got := f.reload(t, admin.ID)
	if len(got.UnseenNotifications) != 1 {
		t.Fatalf("admin unseen = %d, want 1", len(got.UnseenNotifications))
	}
	if got.UnseenNotifications[0].Message != "Ahmed Hassan has applied for a doctor account" {
		t.Errorf("message = %q", got.UnseenNotifications[0].Message)
	}

	if _, err := f.doctorSvc.Apply(ctx, applicant.ID, profile); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestUpdateProfileKeepsStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.user(t, "Ahmed", "owner@example.com")
	d := f.doctor(t, owner)
	if _, err := f.doctorSvc.ChangeStatus(ctx, d.ID, domain.DoctorStatusApproved, owner.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	updated, err := f.doctorSvc.UpdateProfile(ctx, owner.ID, domain.DoctorProfile{FullName: "Ahmed H.", FeePerConsultation: 150})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FullName != "Ahmed H." || updated.FeePerConsultation != 150 {
		t.Errorf("profile = %+v", updated.DoctorProfile)
	}
	if updated.Status != domain.DoctorStatusApproved {
		t.Errorf("status = %q, want approved", updated.Status)
	}
}

func TestMarkAllSeenOverwritesSeen(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u := f.user(t, "Sara", "sara@example.com")
	push := func(msg string) {
		t.Helper()
		if err := f.users.PushUnseenNotification(ctx, u.ID, domain.Notification{Message: msg}); err != nil {
			t.Fatalf("push: %v", err)
		}
	}

	push("C")
	if _, err := f.notifications.MarkAllSeen(ctx, u.ID); err != nil {
		t.Fatalf("MarkAllSeen: %v", err)
	}
	push("A")
	push("B")

	got, err := f.notifications.MarkAllSeen(ctx, u.ID)
	if err != nil {
		t.Fatalf("MarkAllSeen: %v", err)
	}
	if len(got.UnseenNotifications) != 0 {
		t.Errorf("unseen = %d, want 0", len(got.UnseenNotifications))
	}
	if len(got.SeenNotifications) != 2 || got.SeenNotifications[0].Message != "A" || got.SeenNotifications[1].Message != "B" {
		t.Errorf("seen = %+v, want [A B]", got.SeenNotifications)
	}

	again, err := f.notifications.MarkAllSeen(ctx, u.ID)
	if err != nil {
		t.Fatalf("MarkAllSeen: %v", err)
	}
	if len(again.SeenNotifications) != 0 {
		t.Errorf("marking an empty inbox seen leaves seen = %d, want 0", len(again.SeenNotifications))
	}
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u := f.user(t, "Sara", "sara@example.com")
	for _, msg := range []string{"A", "B"} {
		if err := f.users.PushUnseenNotification(ctx, u.ID, domain.Notification{Message: msg}); err != nil {
			t.Fatalf("push: %v", err)
		}
	}
	if _, err := f.notifications.MarkAllSeen(ctx, u.ID); err != nil {
		t.Fatalf("MarkAllSeen: %v", err)
	}
	if err := f.users.PushUnseenNotification(ctx, u.ID, domain.Notification{Message: "C"}); err != nil {
		t.Fatalf("push: %v", err)
	}

	got, err := f.notifications.ClearAll(ctx, u.ID)
	if err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if len(got.SeenNotifications) != 0 || len(got.UnseenNotifications) != 0 {
		t.Errorf("seen = %d unseen = %d, want both empty", len(got.SeenNotifications), len(got.UnseenNotifications))
	}

	if _, err := f.notifications.ClearAll(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCascadesDoctorSideOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.user(t, "Ahmed", "owner@example.com")
	d := f.doctor(t, owner)
	other := f.user(t, "Laila", "laila@example.com")
	otherDoctor := f.doctor(t, other)
	p := f.user(t, "Sara", "p@example.com")

	if _, err := f.booking.Book(ctx, BookingRequest{PatientID: p.ID, DoctorID: d.ID, Date: "2024-05-01", Time: "10:00"}); err != nil {
		t.Fatalf("Book: %v", err)
	}
	// the owner also booked another doctor as a patient
	if _, err := f.booking.Book(ctx, BookingRequest{PatientID: owner.ID, DoctorID: otherDoctor.ID, Date: "2024-05-02", Time: "11:00"}); err != nil {
		t.Fatalf("Book: %v", err)
	}
	// legacy rows reference the owner's user id as doctor id
	if _, err := f.appointments.Create(ctx, domain.Appointment{UserID: p.ID, DoctorID: owner.ID, Status: domain.AppointmentStatusPending}); err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	if err := f.accounts.Delete(ctx, owner.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := f.users.FindByID(ctx, owner.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("user still present: %v", err)
	}
	if _, err := f.doctors.FindByUserID(ctx, owner.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("doctor still present: %v", err)
	}

	all, _ := f.booking.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("appointments = %d, want 1", len(all))
	}
	if all[0].UserID != owner.ID || all[0].DoctorID != otherDoctor.ID {
		t.Errorf("remaining appointment = %+v, want the owner's patient booking", all[0])
	}

	if err := f.accounts.Delete(ctx, owner.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete err = %v, want ErrNotFound", err)
	}
}

func TestAccountListProjection(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.user(t, "Sara", "sara@example.com")
	f.user(t, "Omar", "omar@example.com")

	list, err := f.accounts.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Sara" || list[1].Email != "omar@example.com" {
		t.Errorf("list = %+v", list)
	}
}

func TestSignupLoginRefresh(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	u, err := f.auth.Signup(ctx, SignupInput{Name: "Sara", Email: " Sara@Example.com ", Password: "password123"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if u.Email != "sara@example.com" || u.IsAdmin || u.IsDoctor {
		t.Errorf("user = %+v", u)
	}
	if u.PasswordHash == "password123" {
		t.Error("password stored in plain text")
	}

	if _, err := f.auth.Signup(ctx, SignupInput{Name: "Sara", Email: "sara@example.com", Password: "password123"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate err = %v, want ErrConflict", err)
	}

	if _, _, err := f.auth.Login(ctx, "sara@example.com", "nope"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("bad password err = %v, want ErrUnauthorized", err)
	}
	if _, _, err := f.auth.Login(ctx, "ghost@example.com", "password123"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("unknown email err = %v, want ErrUnauthorized", err)
	}

	_, tokens, err := f.auth.Login(ctx, "SARA@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	id, err := f.auth.ValidateToken(tokens.AccessToken)
	if err != nil || id != u.ID {
		t.Fatalf("ValidateToken = %q, %v", id, err)
	}
	if _, err := f.auth.ValidateToken(tokens.RefreshToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("refresh token accepted as access token: %v", err)
	}

	pair, err := f.auth.RefreshAccessToken(tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshAccessToken: %v", err)
	}
	if pair.AccessToken == "" {
		t.Error("empty access token")
	}

	other := NewAuthService(f.users, "other-secret")
	if _, err := other.ValidateToken(tokens.AccessToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("token signed with another secret accepted: %v", err)
	}
}
