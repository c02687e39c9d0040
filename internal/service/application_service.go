package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yeshua-high/school-site-api/internal/models"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
	"github.com/yeshua-high/school-site-api/pkg/export"
)

type applicationRepository interface {
	List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error)
	FindByID(ctx context.Context, id int64) (*models.Application, error)
	Create(ctx context.Context, app *models.Application) error
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
}

// ApplicationService handles the admission workflow. Submission is the only
// public operation; everything else serves the admin console.
type ApplicationService struct {
	repo      applicationRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewApplicationService constructs the service.
func NewApplicationService(repo applicationRepository, validate *validator.Validate, logger *zap.Logger) *ApplicationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// SubmitApplicationRequest is the public admission form payload.
type SubmitApplicationRequest struct {
	StudentFirstName   string          `json:"student_first_name" validate:"required"`
	StudentLastName    string          `json:"student_last_name" validate:"required"`
	StudentMiddleName  *string         `json:"student_middle_name"`
	DateOfBirth        models.DateOnly `json:"date_of_birth"`
	Gender             string          `json:"gender" validate:"required,oneof=male female"`
	GradeApplyingFor   string          `json:"grade_applying_for" validate:"required"`
	PreviousSchool     *string         `json:"previous_school"`
	ParentFirstName    string          `json:"parent_first_name" validate:"required"`
	ParentLastName     string          `json:"parent_last_name" validate:"required"`
	Relationship       string          `json:"relationship" validate:"required"`
	ParentEmail        string          `json:"parent_email" validate:"required,email"`
	ParentPhone        string          `json:"parent_phone" validate:"required"`
	AlternatePhone     *string         `json:"alternate_phone"`
	HomeAddress        *string         `json:"home_address"`
	City               *string         `json:"city"`
	State              *string         `json:"state"`
	HowDidYouHear      *string         `json:"how_did_you_hear"`
	SpecialNeeds       *string         `json:"special_needs"`
	AdditionalComments *string         `json:"additional_comments"`
}

// Submit records a new admission application and returns it with the
// generated reference code.
func (s *ApplicationService) Submit(ctx context.Context, req SubmitApplicationRequest) (*models.Application, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.DateOfBirth.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date_of_birth is required")
	}
	app := &models.Application{
		ReferenceCode:      s.referenceCode(),
		StudentFirstName:   strings.TrimSpace(req.StudentFirstName),
		StudentLastName:    strings.TrimSpace(req.StudentLastName),
		StudentMiddleName:  req.StudentMiddleName,
		DateOfBirth:        req.DateOfBirth,
		Gender:             req.Gender,
		GradeApplyingFor:   strings.TrimSpace(req.GradeApplyingFor),
		PreviousSchool:     req.PreviousSchool,
		ParentFirstName:    strings.TrimSpace(req.ParentFirstName),
		ParentLastName:     strings.TrimSpace(req.ParentLastName),
		Relationship:       strings.TrimSpace(req.Relationship),
		ParentEmail:        strings.TrimSpace(req.ParentEmail),
		ParentPhone:        strings.TrimSpace(req.ParentPhone),
		AlternatePhone:     req.AlternatePhone,
		HomeAddress:        req.HomeAddress,
		City:               req.City,
		State:              req.State,
		HowDidYouHear:      req.HowDidYouHear,
		SpecialNeeds:       req.SpecialNeeds,
		AdditionalComments: req.AdditionalComments,
		Status:             models.ApplicationStatusPending,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit application")
	}
	s.logger.Info("admission application received",
		zap.Int64("id", app.ID),
		zap.String("reference_code", app.ReferenceCode),
		zap.String("grade", app.GradeApplyingFor))
	return app, nil
}

// List returns applications for the admin console.
func (s *ApplicationService) List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	if filter.Status != "" && filter.Status != models.ApplicationStatusPending && filter.Status != models.ApplicationStatusReviewed {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
	}
	apps, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	return apps, nil
}

// Get returns one application by id.
func (s *ApplicationService) Get(ctx context.Context, id int64) (*models.Application, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	return app, nil
}

// MarkReviewed moves an application to the REVIEWED status.
func (s *ApplicationService) MarkReviewed(ctx context.Context, id int64) error {
	if err := s.repo.UpdateStatus(ctx, id, models.ApplicationStatusReviewed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update application")
	}
	return nil
}

// Export renders the filtered applications as csv or pdf.
func (s *ApplicationService) Export(ctx context.Context, filter models.ApplicationFilter, format string) ([]byte, string, error) {
	apps, err := s.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	dataset := applicationDataset(apps)
	switch strings.ToLower(format) {
	case "csv", "":
		payload, err := export.RenderCSV(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := export.RenderPDF(dataset, "Admission Applications")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func applicationDataset(apps []models.Application) export.Dataset {
	headers := []string{"Reference", "Student", "Date of Birth", "Grade", "Parent", "Email", "Phone", "Status", "Submitted"}
	rows := make([]map[string]string, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, map[string]string{
			"Reference":     app.ReferenceCode,
			"Student":       app.StudentFirstName + " " + app.StudentLastName,
			"Date of Birth": app.DateOfBirth.Format("2006-01-02"),
			"Grade":         app.GradeApplyingFor,
			"Parent":        app.ParentFirstName + " " + app.ParentLastName,
			"Email":         app.ParentEmail,
			"Phone":         app.ParentPhone,
			"Status":        string(app.Status),
			"Submitted":     app.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

// referenceCode builds `APP-<year>-<uuid-fragment>` for parent-facing
// correspondence.
func (s *ApplicationService) referenceCode() string {
	fragment := strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
	return fmt.Sprintf("APP-%d-%s", s.now().Year(), fragment[:6])
}
