package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

type StudentRepository interface {
	Create(si *models.StudentInfo) error
	GetByUserID(userID uuid.UUID) (*models.StudentInfo, error)
	Update(si *models.StudentInfo) error
	DeleteByUserID(userID uuid.UUID) error
	// ListByParent returns student rows where the parent is father or mother.
	ListByParent(parentID uuid.UUID) ([]*models.StudentInfo, error)
}

type studentRepository struct {
	DB *sql.DB
}

func NewStudentRepository(db *sql.DB) StudentRepository {
	return &studentRepository{DB: db}
}

const studentColumns = `id, user_id, first_name, last_name, patronymic, age, gender, school_id, shift, father_id, mother_id`

func scanStudent(row interface{ Scan(...any) error }) (*models.StudentInfo, error) {
	si := &models.StudentInfo{}
	var (
		patronymic sql.NullString
		shift      sql.NullString
		gender     sql.NullString
		father     sql.NullString
		mother     sql.NullString
	)
	err := row.Scan(&si.ID, &si.UserID, &si.FirstName, &si.LastName, &patronymic,
		&si.Age, &gender, &si.SchoolID, &shift, &father, &mother)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan student info: %w", err)
	}
	si.Patronymic = patronymic.String
	si.Shift = shift.String
	si.Gender = gender.String
	if father.Valid {
		if id, err := uuid.Parse(father.String); err == nil {
			si.FatherID = &id
		}
	}
	if mother.Valid {
		if id, err := uuid.Parse(mother.String); err == nil {
			si.MotherID = &id
		}
	}
	return si, nil
}

func (r *studentRepository) Create(si *models.StudentInfo) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	const q = `
		INSERT INTO student_infos (id, user_id, first_name, last_name, patronymic, age, gender, school_id, shift, father_id, mother_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	var father, mother any
	if si.FatherID != nil {
		father = *si.FatherID
	}
	if si.MotherID != nil {
		mother = *si.MotherID
	}
	_, err := r.DB.Exec(q, si.ID, si.UserID, si.FirstName, si.LastName, si.Patronymic,
		si.Age, si.Gender, si.SchoolID, si.Shift, father, mother)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "student info already exists", err)
	}
	return err
}

func (r *studentRepository) GetByUserID(userID uuid.UUID) (*models.StudentInfo, error) {
	return scanStudent(r.DB.QueryRow(`SELECT `+studentColumns+` FROM student_infos WHERE user_id = $1`, userID))
}

func (r *studentRepository) Update(si *models.StudentInfo) error {
	const q = `
		UPDATE student_infos
		SET first_name=$1, last_name=$2, patronymic=$3, age=$4, gender=$5, school_id=$6, shift=$7, father_id=$8, mother_id=$9
		WHERE user_id=$10
	`
	var father, mother any
	if si.FatherID != nil {
		father = *si.FatherID
	}
	if si.MotherID != nil {
		mother = *si.MotherID
	}
	_, err := r.DB.Exec(q, si.FirstName, si.LastName, si.Patronymic, si.Age, si.Gender,
		si.SchoolID, si.Shift, father, mother, si.UserID)
	return err
}

func (r *studentRepository) DeleteByUserID(userID uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM student_infos WHERE user_id=$1`, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "student info not found")
	}
	return nil
}

func (r *studentRepository) ListByParent(parentID uuid.UUID) ([]*models.StudentInfo, error) {
	rows, err := r.DB.Query(`SELECT `+studentColumns+` FROM student_infos WHERE father_id = $1 OR mother_id = $1`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.StudentInfo
	for rows.Next() {
		si, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, si)
	}
	return res, rows.Err()
}

// ===== parent info =====

type ParentRepository interface {
	Create(pi *models.ParentInfo) error
	GetByUserID(userID uuid.UUID) (*models.ParentInfo, error)
	Update(pi *models.ParentInfo) error
	DeleteByUserID(userID uuid.UUID) error
}

type parentRepository struct {
	DB *sql.DB
}

func NewParentRepository(db *sql.DB) ParentRepository {
	return &parentRepository{DB: db}
}

func (r *parentRepository) Create(pi *models.ParentInfo) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	const q = `
		INSERT INTO parent_infos (id, user_id, first_name, last_name, patronymic, age, gender, passport_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	_, err := r.DB.Exec(q, pi.ID, pi.UserID, pi.FirstName, pi.LastName, pi.Patronymic, pi.Age, pi.Gender, pi.PassportID)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "parent info already exists", err)
	}
	return err
}

func (r *parentRepository) GetByUserID(userID uuid.UUID) (*models.ParentInfo, error) {
	const q = `
		SELECT id, user_id, first_name, last_name, patronymic, age, gender, passport_id
		FROM parent_infos
		WHERE user_id = $1
	`
	pi := &models.ParentInfo{}
	var patronymic, gender, passport sql.NullString
	err := r.DB.QueryRow(q, userID).Scan(&pi.ID, &pi.UserID, &pi.FirstName, &pi.LastName, &patronymic, &pi.Age, &gender, &passport)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get parent info: %w", err)
	}
	pi.Patronymic = patronymic.String
	pi.Gender = gender.String
	pi.PassportID = passport.String
	return pi, nil
}

func (r *parentRepository) Update(pi *models.ParentInfo) error {
	const q = `
		UPDATE parent_infos
		SET first_name=$1, last_name=$2, patronymic=$3, age=$4, gender=$5, passport_id=$6
		WHERE user_id=$7
	`
	_, err := r.DB.Exec(q, pi.FirstName, pi.LastName, pi.Patronymic, pi.Age, pi.Gender, pi.PassportID, pi.UserID)
	return err
}

func (r *parentRepository) DeleteByUserID(userID uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM parent_infos WHERE user_id=$1`, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "parent info not found")
	}
	return nil
}

// ===== preferences =====

type PreferenceRepository interface {
	Create(p *models.UserPreference) error
	GetByUserID(userID uuid.UUID) (*models.UserPreference, error)
	Update(p *models.UserPreference) error
	DeleteByUserID(userID uuid.UUID) error
}

type preferenceRepository struct {
	DB *sql.DB
}

func NewPreferenceRepository(db *sql.DB) PreferenceRepository {
	return &preferenceRepository{DB: db}
}

func (r *preferenceRepository) Create(p *models.UserPreference) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	const q = `INSERT INTO user_preferences (id, user_id, language, theme) VALUES ($1,$2,$3,$4)`
	_, err := r.DB.Exec(q, p.ID, p.UserID, nullable(p.Language), nullable(p.Theme))
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "preferences already exist for this user", err)
	}
	return err
}

func (r *preferenceRepository) GetByUserID(userID uuid.UUID) (*models.UserPreference, error) {
	p := &models.UserPreference{}
	var lang, theme sql.NullString
	err := r.DB.QueryRow(`SELECT id, user_id, language, theme FROM user_preferences WHERE user_id = $1`, userID).
		Scan(&p.ID, &p.UserID, &lang, &theme)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	p.Language = lang.String
	p.Theme = theme.String
	return p, nil
}

func (r *preferenceRepository) Update(p *models.UserPreference) error {
	_, err := r.DB.Exec(`UPDATE user_preferences SET language=$1, theme=$2 WHERE user_id=$3`,
		nullable(p.Language), nullable(p.Theme), p.UserID)
	return err
}

func (r *preferenceRepository) DeleteByUserID(userID uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM user_preferences WHERE user_id=$1`, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "preferences not found")
	}
	return nil
}

// nullable maps "" to NULL for optional enum columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
