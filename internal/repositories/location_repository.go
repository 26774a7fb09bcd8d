package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

type LocationRepository interface {
	CreateRegion(region *models.Region) error
	GetRegion(id uuid.UUID) (*models.Region, error)
	ListRegions() ([]*models.Region, error)
	UpdateRegion(region *models.Region) error
	DeleteRegion(id uuid.UUID) error

	CreateDistrict(d *models.District) error
	GetDistrict(id uuid.UUID) (*models.District, error)
	ListDistricts(regionID *uuid.UUID) ([]*models.District, error)
	UpdateDistrict(d *models.District) error
	DeleteDistrict(id uuid.UUID) error

	Statistics() (*models.LocationStatistics, error)
}

type locationRepository struct {
	DB *sql.DB
}

func NewLocationRepository(db *sql.DB) LocationRepository {
	return &locationRepository{DB: db}
}

func (r *locationRepository) CreateRegion(region *models.Region) error {
	if region.ID == uuid.Nil {
		region.ID = uuid.New()
	}
	_, err := r.DB.Exec(`INSERT INTO regions (id, name, coordinate) VALUES ($1,$2,$3)`,
		region.ID, region.Name, nullable(region.Coordinate))
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "region name already exists", err)
	}
	return err
}

func (r *locationRepository) GetRegion(id uuid.UUID) (*models.Region, error) {
	region := &models.Region{}
	var coord sql.NullString
	err := r.DB.QueryRow(`SELECT id, name, coordinate FROM regions WHERE id = $1`, id).
		Scan(&region.ID, &region.Name, &coord)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get region: %w", err)
	}
	region.Coordinate = coord.String
	return region, nil
}

func (r *locationRepository) ListRegions() ([]*models.Region, error) {
	rows, err := r.DB.Query(`SELECT id, name, coordinate FROM regions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Region
	for rows.Next() {
		region := &models.Region{}
		var coord sql.NullString
		if err := rows.Scan(&region.ID, &region.Name, &coord); err != nil {
			return nil, err
		}
		region.Coordinate = coord.String
		res = append(res, region)
	}
	return res, rows.Err()
}

func (r *locationRepository) UpdateRegion(region *models.Region) error {
	res, err := r.DB.Exec(`UPDATE regions SET name=$1, coordinate=$2 WHERE id=$3`,
		region.Name, nullable(region.Coordinate), region.ID)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "region name already exists", err)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "region not found")
	}
	return nil
}

func (r *locationRepository) DeleteRegion(id uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM regions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "region not found")
	}
	return nil
}

func (r *locationRepository) CreateDistrict(d *models.District) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := r.DB.Exec(`INSERT INTO districts (id, name, coordinate, parent_region) VALUES ($1,$2,$3,$4)`,
		d.ID, d.Name, nullable(d.Coordinate), d.RegionID)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "district name already exists", err)
	}
	return err
}

func (r *locationRepository) GetDistrict(id uuid.UUID) (*models.District, error) {
	d := &models.District{}
	var coord sql.NullString
	err := r.DB.QueryRow(`SELECT id, name, coordinate, parent_region FROM districts WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &coord, &d.RegionID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get district: %w", err)
	}
	d.Coordinate = coord.String
	return d, nil
}

func (r *locationRepository) ListDistricts(regionID *uuid.UUID) ([]*models.District, error) {
	q := `SELECT id, name, coordinate, parent_region FROM districts`
	args := []any{}
	if regionID != nil {
		q += ` WHERE parent_region = $1`
		args = append(args, *regionID)
	}
	q += ` ORDER BY name`

	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.District
	for rows.Next() {
		d := &models.District{}
		var coord sql.NullString
		if err := rows.Scan(&d.ID, &d.Name, &coord, &d.RegionID); err != nil {
			return nil, err
		}
		d.Coordinate = coord.String
		res = append(res, d)
	}
	return res, rows.Err()
}

func (r *locationRepository) UpdateDistrict(d *models.District) error {
	res, err := r.DB.Exec(`UPDATE districts SET name=$1, coordinate=$2, parent_region=$3 WHERE id=$4`,
		d.Name, nullable(d.Coordinate), d.RegionID, d.ID)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "district name already exists", err)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "district not found")
	}
	return nil
}

func (r *locationRepository) DeleteDistrict(id uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM districts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "district not found")
	}
	return nil
}

func (r *locationRepository) Statistics() (*models.LocationStatistics, error) {
	stats := &models.LocationStatistics{}
	err := r.DB.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM regions),
			(SELECT COUNT(*) FROM districts),
			(SELECT COUNT(*) FROM schools)
	`).Scan(&stats.Regions, &stats.Districts, &stats.Schools)
	if err != nil {
		return nil, fmt.Errorf("location statistics: %w", err)
	}
	return stats, nil
}
