package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

type PolicyRepository interface {
	Create(p *models.Policy) error
	GetByID(id uuid.UUID) (*models.Policy, error)
	GetByRole(roleID uuid.UUID) (*models.Policy, error)
	List() ([]*models.Policy, error)
	Update(p *models.Policy) error
	Delete(id uuid.UUID) error

	AttachApp(pa *models.PolicyApp) error
	DetachApp(policyID, appID uuid.UUID) error
	ListApps(policyID uuid.UUID) ([]*models.PolicyAppDetail, error)
	AttachWeb(pw *models.PolicyWeb) error
	DetachWeb(policyID, websiteID uuid.UUID) error
	ListWebs(policyID uuid.UUID) ([]*models.PolicyWebDetail, error)
}

type policyRepository struct {
	DB *sql.DB
}

func NewPolicyRepository(db *sql.DB) PolicyRepository {
	return &policyRepository{DB: db}
}

func scanPolicy(row interface{ Scan(...any) error }) (*models.Policy, error) {
	p := &models.Policy{}
	err := row.Scan(&p.ID, &p.Name, &p.IsWhitelistApp, &p.IsWhitelistWeb, &p.TargetedRoleID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan policy: %w", err)
	}
	return p, nil
}

func (r *policyRepository) Create(p *models.Policy) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	const q = `
		INSERT INTO policies (id, name, is_whitelist_app, is_whitelist_web, targeted_role_id)
		VALUES ($1,$2,$3,$4,$5)
	`
	_, err := r.DB.Exec(q, p.ID, p.Name, p.IsWhitelistApp, p.IsWhitelistWeb, p.TargetedRoleID)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "policy already exists for role", err)
	}
	return err
}

func (r *policyRepository) GetByID(id uuid.UUID) (*models.Policy, error) {
	return scanPolicy(r.DB.QueryRow(
		`SELECT id, name, is_whitelist_app, is_whitelist_web, targeted_role_id FROM policies WHERE id=$1`, id))
}

func (r *policyRepository) GetByRole(roleID uuid.UUID) (*models.Policy, error) {
	return scanPolicy(r.DB.QueryRow(
		`SELECT id, name, is_whitelist_app, is_whitelist_web, targeted_role_id FROM policies WHERE targeted_role_id=$1`, roleID))
}

func (r *policyRepository) List() ([]*models.Policy, error) {
	rows, err := r.DB.Query(`SELECT id, name, is_whitelist_app, is_whitelist_web, targeted_role_id FROM policies ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *policyRepository) Update(p *models.Policy) error {
	res, err := r.DB.Exec(
		`UPDATE policies SET name=$1, is_whitelist_app=$2, is_whitelist_web=$3, targeted_role_id=$4 WHERE id=$5`,
		p.Name, p.IsWhitelistApp, p.IsWhitelistWeb, p.TargetedRoleID, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "policy not found")
	}
	return nil
}

func (r *policyRepository) Delete(id uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM policies WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "policy not found")
	}
	return nil
}

func (r *policyRepository) AttachApp(pa *models.PolicyApp) error {
	if pa.ID == uuid.Nil {
		pa.ID = uuid.New()
	}
	_, err := r.DB.Exec(
		`INSERT INTO policy_apps (id, policy_id, app_id, duration) VALUES ($1,$2,$3,$4)`,
		pa.ID, pa.PolicyID, pa.AppID, pa.Duration)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "app already attached to policy", err)
	}
	return err
}

func (r *policyRepository) DetachApp(policyID, appID uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM policy_apps WHERE policy_id=$1 AND app_id=$2`, policyID, appID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "app is not attached to policy")
	}
	return nil
}

func (r *policyRepository) ListApps(policyID uuid.UUID) ([]*models.PolicyAppDetail, error) {
	const q = `
		SELECT pa.id, pa.policy_id, pa.app_id, pa.duration, a.name, a.package, COALESCE(a.type,'')
		FROM policy_apps pa
		JOIN apps a ON a.id = pa.app_id
		WHERE pa.policy_id = $1
		ORDER BY a.name
	`
	rows, err := r.DB.Query(q, policyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.PolicyAppDetail
	for rows.Next() {
		d := &models.PolicyAppDetail{}
		if err := rows.Scan(&d.ID, &d.PolicyID, &d.AppID, &d.Duration, &d.Name, &d.Package, &d.Type); err != nil {
			return nil, fmt.Errorf("scan policy app: %w", err)
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func (r *policyRepository) AttachWeb(pw *models.PolicyWeb) error {
	if pw.ID == uuid.Nil {
		pw.ID = uuid.New()
	}
	_, err := r.DB.Exec(
		`INSERT INTO policy_webs (id, policy_id, website_id, duration) VALUES ($1,$2,$3,$4)`,
		pw.ID, pw.PolicyID, pw.WebsiteID, pw.Duration)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "website already attached to policy", err)
	}
	return err
}

func (r *policyRepository) DetachWeb(policyID, websiteID uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM policy_webs WHERE policy_id=$1 AND website_id=$2`, policyID, websiteID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "website is not attached to policy")
	}
	return nil
}

func (r *policyRepository) ListWebs(policyID uuid.UUID) ([]*models.PolicyWebDetail, error) {
	const q = `
		SELECT pw.id, pw.policy_id, pw.website_id, pw.duration, w.domain, COALESCE(w.type,'')
		FROM policy_webs pw
		JOIN websites w ON w.id = pw.website_id
		WHERE pw.policy_id = $1
		ORDER BY w.domain
	`
	rows, err := r.DB.Query(q, policyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.PolicyWebDetail
	for rows.Next() {
		d := &models.PolicyWebDetail{}
		if err := rows.Scan(&d.ID, &d.PolicyID, &d.WebsiteID, &d.Duration, &d.Domain, &d.Type); err != nil {
			return nil, fmt.Errorf("scan policy web: %w", err)
		}
		res = append(res, d)
	}
	return res, rows.Err()
}
