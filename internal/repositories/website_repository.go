package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

type WebsiteRepository interface {
	Create(w *models.Website) error
	GetByID(id uuid.UUID) (*models.Website, error)
	GetByDomain(domain string) (*models.Website, error)
	List(limit, offset int) ([]*models.Website, error)
	Update(w *models.Website) error
	Delete(id uuid.UUID) error
}

type websiteRepository struct {
	DB *sql.DB
}

func NewWebsiteRepository(db *sql.DB) WebsiteRepository {
	return &websiteRepository{DB: db}
}

const websiteColumns = `id, domain, icon, visit_count, type, added_at`

func scanWebsite(row interface{ Scan(...any) error }) (*models.Website, error) {
	w := &models.Website{}
	var icon, typ sql.NullString
	err := row.Scan(&w.ID, &w.Domain, &icon, &w.VisitCount, &typ, &w.AddedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan website: %w", err)
	}
	w.Icon = icon.String
	w.Type = typ.String
	return w, nil
}

func (r *websiteRepository) Create(w *models.Website) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	const q = `
		INSERT INTO websites (id, domain, icon, visit_count, type)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING added_at
	`
	err := r.DB.QueryRow(q, w.ID, w.Domain, nullable(w.Icon), w.VisitCount, nullable(w.Type)).Scan(&w.AddedAt)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "website domain already exists", err)
	}
	return err
}

func (r *websiteRepository) GetByID(id uuid.UUID) (*models.Website, error) {
	return scanWebsite(r.DB.QueryRow(`SELECT `+websiteColumns+` FROM websites WHERE id = $1`, id))
}

func (r *websiteRepository) GetByDomain(domain string) (*models.Website, error) {
	return scanWebsite(r.DB.QueryRow(`SELECT `+websiteColumns+` FROM websites WHERE domain = $1`, domain))
}

func (r *websiteRepository) List(limit, offset int) ([]*models.Website, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.DB.Query(`SELECT `+websiteColumns+` FROM websites ORDER BY domain LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Website
	for rows.Next() {
		w, err := scanWebsite(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, w)
	}
	return res, rows.Err()
}

func (r *websiteRepository) Update(w *models.Website) error {
	res, err := r.DB.Exec(`UPDATE websites SET domain=$1, icon=$2, type=$3 WHERE id=$4`,
		w.Domain, nullable(w.Icon), nullable(w.Type), w.ID)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "website domain already exists", err)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "website not found")
	}
	return nil
}

func (r *websiteRepository) Delete(id uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM websites WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "website not found")
	}
	return nil
}
