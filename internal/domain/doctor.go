package domain

import "time"

// DoctorStatus represents the moderation state of a doctor application.
type DoctorStatus string

const (
	DoctorStatusPending  DoctorStatus = "pending"
	DoctorStatusApproved DoctorStatus = "approved"
	DoctorStatusBlocked  DoctorStatus = "blocked"
)

// DoctorProfile holds the fields a user submits when applying.
type DoctorProfile struct {
	Prefix             string  `json:"prefix" bson:"prefix"`
	FullName           string  `json:"fullName" bson:"fullName"`
	Email              string  `json:"email" bson:"email"`
	PhoneNumber        string  `json:"phoneNumber" bson:"phoneNumber"`
	Address            string  `json:"address" bson:"address"`
	Specialization     string  `json:"specialization" bson:"specialization"`
	Experience         string  `json:"experience" bson:"experience"`
	FeePerConsultation float64 `json:"feePerConsultation" bson:"feePerConsultation"`
	FromTime           string  `json:"fromTime" bson:"fromTime"`
	ToTime             string  `json:"toTime" bson:"toTime"`
}

// Doctor is a doctor application owned by a user. UserID is a plain
// back-reference; deleting the doctor never deletes the user.
type Doctor struct {
	ID     string       `json:"id"`
	UserID string       `json:"userId"`
	Status DoctorStatus `json:"status"`
	DoctorProfile
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
