package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

type SchoolFilter struct {
	RegionID   *uuid.UUID
	DistrictID *uuid.UUID
	Limit      int
	Offset     int
}

type SchoolRepository interface {
	Create(s *models.School) error
	GetByID(id uuid.UUID) (*models.School, error)
	List(f SchoolFilter) ([]*models.School, error)
	Update(s *models.School) error
	Delete(id uuid.UUID) error
}

type schoolRepository struct {
	DB *sql.DB
}

func NewSchoolRepository(db *sql.DB) SchoolRepository {
	return &schoolRepository{DB: db}
}

const schoolColumns = `id, name, region_id, district_id, address, latitude, longitude, radius, policy_id`

func scanSchool(row interface{ Scan(...any) error }) (*models.School, error) {
	s := &models.School{}
	var (
		address  sql.NullString
		lat, lon sql.NullFloat64
		radius   sql.NullFloat64
		policy   sql.NullString
	)
	err := row.Scan(&s.ID, &s.Name, &s.RegionID, &s.DistrictID, &address, &lat, &lon, &radius, &policy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan school: %w", err)
	}
	s.Address = address.String
	if lat.Valid {
		s.Latitude = &lat.Float64
	}
	if lon.Valid {
		s.Longitude = &lon.Float64
	}
	if radius.Valid {
		s.Radius = &radius.Float64
	}
	if policy.Valid {
		if id, err := uuid.Parse(policy.String); err == nil {
			s.PolicyID = &id
		}
	}
	return s, nil
}

func (r *schoolRepository) Create(s *models.School) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	const q = `
		INSERT INTO schools (id, name, region_id, district_id, address, latitude, longitude, radius, policy_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	var policy any
	if s.PolicyID != nil {
		policy = *s.PolicyID
	}
	_, err := r.DB.Exec(q, s.ID, s.Name, s.RegionID, s.DistrictID, nullable(s.Address),
		s.Latitude, s.Longitude, s.Radius, policy)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "school already exists", err)
	}
	return err
}

func (r *schoolRepository) GetByID(id uuid.UUID) (*models.School, error) {
	return scanSchool(r.DB.QueryRow(`SELECT `+schoolColumns+` FROM schools WHERE id = $1`, id))
}

func (r *schoolRepository) List(f SchoolFilter) ([]*models.School, error) {
	q := `SELECT ` + schoolColumns + ` FROM schools WHERE 1=1`
	args := []any{}
	if f.RegionID != nil {
		args = append(args, *f.RegionID)
		q += fmt.Sprintf(` AND region_id = $%d`, len(args))
	}
	if f.DistrictID != nil {
		args = append(args, *f.DistrictID)
		q += fmt.Sprintf(` AND district_id = $%d`, len(args))
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	args = append(args, f.Limit)
	q += fmt.Sprintf(` ORDER BY name LIMIT $%d`, len(args))
	args = append(args, f.Offset)
	q += fmt.Sprintf(` OFFSET $%d`, len(args))

	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.School
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func (r *schoolRepository) Update(s *models.School) error {
	const q = `
		UPDATE schools
		SET name=$1, region_id=$2, district_id=$3, address=$4, latitude=$5, longitude=$6, radius=$7, policy_id=$8
		WHERE id=$9
	`
	var policy any
	if s.PolicyID != nil {
		policy = *s.PolicyID
	}
	res, err := r.DB.Exec(q, s.Name, s.RegionID, s.DistrictID, nullable(s.Address),
		s.Latitude, s.Longitude, s.Radius, policy, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "school not found")
	}
	return nil
}

func (r *schoolRepository) Delete(id uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM schools WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "school not found")
	}
	return nil
}
