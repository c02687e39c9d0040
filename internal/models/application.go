package models

import "time"

// ApplicationStatus tracks the review state of an admission application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusReviewed ApplicationStatus = "REVIEWED"
)

// Application is a submitted admission application. Applications carry PII,
// so unlike the content entities their reads are admin-only.
type Application struct {
	ID                 int64             `db:"id" json:"id"`
	ReferenceCode      string            `db:"reference_code" json:"referenceCode"`
	StudentFirstName   string            `db:"student_first_name" json:"studentFirstName"`
	StudentLastName    string            `db:"student_last_name" json:"studentLastName"`
	StudentMiddleName  *string           `db:"student_middle_name" json:"studentMiddleName,omitempty"`
	DateOfBirth        DateOnly          `db:"date_of_birth" json:"dateOfBirth"`
	Gender             string            `db:"gender" json:"gender"`
	GradeApplyingFor   string            `db:"grade_applying_for" json:"gradeApplyingFor"`
	PreviousSchool     *string           `db:"previous_school" json:"previousSchool,omitempty"`
	ParentFirstName    string            `db:"parent_first_name" json:"parentFirstName"`
	ParentLastName     string            `db:"parent_last_name" json:"parentLastName"`
	Relationship       string            `db:"relationship" json:"relationship"`
	ParentEmail        string            `db:"parent_email" json:"parentEmail"`
	ParentPhone        string            `db:"parent_phone" json:"parentPhone"`
	AlternatePhone     *string           `db:"alternate_phone" json:"alternatePhone,omitempty"`
	HomeAddress        *string           `db:"home_address" json:"homeAddress,omitempty"`
	City               *string           `db:"city" json:"city,omitempty"`
	State              *string           `db:"state" json:"state,omitempty"`
	HowDidYouHear      *string           `db:"how_did_you_hear" json:"howDidYouHear,omitempty"`
	SpecialNeeds       *string           `db:"special_needs" json:"specialNeeds,omitempty"`
	AdditionalComments *string           `db:"additional_comments" json:"additionalComments,omitempty"`
	Status             ApplicationStatus `db:"status" json:"status"`
	CreatedAt          time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time         `db:"updated_at" json:"updatedAt"`
}

// ApplicationFilter narrows the admin application listing.
type ApplicationFilter struct {
	Status ApplicationStatus
	Grade  string
}
