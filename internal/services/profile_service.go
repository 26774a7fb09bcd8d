package services

import (
	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/authz"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

// ProfileService covers the post-registration profile steps: student info,
// parent info and UI preferences.
type ProfileService interface {
	SaveStudentInfo(si *models.StudentInfo) error
	GetStudentInfo(userID uuid.UUID) (*models.StudentInfo, error)
	ListChildren(parentID uuid.UUID) ([]*models.StudentInfo, error)

	SaveParentInfo(pi *models.ParentInfo) error
	GetParentInfo(userID uuid.UUID) (*models.ParentInfo, error)

	SavePreferences(p *models.UserPreference) error
	GetPreferences(userID uuid.UUID) (*models.UserPreference, error)
}

type profileService struct {
	users    repositories.UserRepository
	students repositories.StudentRepository
	parents  repositories.ParentRepository
	prefs    repositories.PreferenceRepository
	schools  repositories.SchoolRepository
}

func NewProfileService(
	users repositories.UserRepository,
	students repositories.StudentRepository,
	parents repositories.ParentRepository,
	prefs repositories.PreferenceRepository,
	schools repositories.SchoolRepository,
) ProfileService {
	return &profileService{users: users, students: students, parents: parents, prefs: prefs, schools: schools}
}

func validGender(g string) bool {
	return g == models.GenderFemale || g == models.GenderMale
}

func (s *profileService) SaveStudentInfo(si *models.StudentInfo) error {
	user, err := s.users.GetByID(si.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	if user.RoleName != authz.RoleStudent {
		return apperrors.E(apperrors.Validation, "student info can only be set for student accounts")
	}
	if !validGender(si.Gender) {
		return apperrors.Ef(apperrors.Validation, "unknown gender %q", si.Gender)
	}
	if si.Shift != models.ShiftMorning && si.Shift != models.ShiftEvening {
		return apperrors.Ef(apperrors.Validation, "unknown shift %q", si.Shift)
	}
	school, err := s.schools.GetByID(si.SchoolID)
	if err != nil {
		return err
	}
	if school == nil {
		return apperrors.E(apperrors.NotFound, "school not found")
	}

	existing, err := s.students.GetByUserID(si.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		si.ID = existing.ID
		return s.students.Update(si)
	}
	return s.students.Create(si)
}

func (s *profileService) GetStudentInfo(userID uuid.UUID) (*models.StudentInfo, error) {
	si, err := s.students.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if si == nil {
		return nil, apperrors.E(apperrors.NotFound, "student info not found")
	}
	return si, nil
}

func (s *profileService) ListChildren(parentID uuid.UUID) ([]*models.StudentInfo, error) {
	return s.students.ListByParent(parentID)
}

func (s *profileService) SaveParentInfo(pi *models.ParentInfo) error {
	user, err := s.users.GetByID(pi.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	if user.RoleName != authz.RoleParent {
		return apperrors.E(apperrors.Validation, "parent info can only be set for parent accounts")
	}
	if !validGender(pi.Gender) {
		return apperrors.Ef(apperrors.Validation, "unknown gender %q", pi.Gender)
	}

	existing, err := s.parents.GetByUserID(pi.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		pi.ID = existing.ID
		return s.parents.Update(pi)
	}
	return s.parents.Create(pi)
}

func (s *profileService) GetParentInfo(userID uuid.UUID) (*models.ParentInfo, error) {
	pi, err := s.parents.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if pi == nil {
		return nil, apperrors.E(apperrors.NotFound, "parent info not found")
	}
	return pi, nil
}

func (s *profileService) SavePreferences(p *models.UserPreference) error {
	if p.Language != "" {
		if _, ok := models.Languages[p.Language]; !ok {
			return apperrors.Ef(apperrors.Validation, "unsupported language %q", p.Language)
		}
	}
	if p.Theme != "" {
		if _, ok := models.Themes[p.Theme]; !ok {
			return apperrors.Ef(apperrors.Validation, "unsupported theme %q", p.Theme)
		}
	}
	existing, err := s.prefs.GetByUserID(p.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		p.ID = existing.ID
		if p.Language == "" {
			p.Language = existing.Language
		}
		if p.Theme == "" {
			p.Theme = existing.Theme
		}
		return s.prefs.Update(p)
	}
	return s.prefs.Create(p)
}

func (s *profileService) GetPreferences(userID uuid.UUID) (*models.UserPreference, error) {
	p, err := s.prefs.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.E(apperrors.NotFound, "preferences not set")
	}
	return p, nil
}
