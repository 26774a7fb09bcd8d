package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

type AppRepository interface {
	Create(app *models.App) error
	GetByID(id uuid.UUID) (*models.App, error)
	GetByPackage(pkg string) (*models.App, error)
	List(limit, offset int) ([]*models.App, error)
	Update(app *models.App) error
	Delete(id uuid.UUID) error

	// unblock requests
	CreateRequest(req *models.AppRequest) error
	GetRequest(id uuid.UUID) (*models.AppRequest, error)
	ListRequests(status string) ([]*models.AppRequest, error)
	// ResolveRequest updates the status and journals the transition in
	// app_requests_logs within one transaction.
	ResolveRequest(id uuid.UUID, newStatus string, adminID uuid.UUID, basis string) error
}

type appRepository struct {
	DB *sql.DB
}

func NewAppRepository(db *sql.DB) AppRepository {
	return &appRepository{DB: db}
}

const appColumns = `id, name, package, icon, install_count, type, added_at`

func scanApp(row interface{ Scan(...any) error }) (*models.App, error) {
	app := &models.App{}
	var icon, typ sql.NullString
	err := row.Scan(&app.ID, &app.Name, &app.Package, &icon, &app.InstallCount, &typ, &app.AddedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan app: %w", err)
	}
	app.Icon = icon.String
	app.Type = typ.String
	return app, nil
}

func (r *appRepository) Create(app *models.App) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	const q = `
		INSERT INTO apps (id, name, package, icon, install_count, type)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING added_at
	`
	err := r.DB.QueryRow(q, app.ID, app.Name, app.Package, nullable(app.Icon), app.InstallCount, nullable(app.Type)).
		Scan(&app.AddedAt)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "app package already exists", err)
	}
	return err
}

func (r *appRepository) GetByID(id uuid.UUID) (*models.App, error) {
	return scanApp(r.DB.QueryRow(`SELECT `+appColumns+` FROM apps WHERE id = $1`, id))
}

func (r *appRepository) GetByPackage(pkg string) (*models.App, error) {
	return scanApp(r.DB.QueryRow(`SELECT `+appColumns+` FROM apps WHERE package = $1`, pkg))
}

func (r *appRepository) List(limit, offset int) ([]*models.App, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.DB.Query(`SELECT `+appColumns+` FROM apps ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.App
	for rows.Next() {
		app, err := scanApp(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, app)
	}
	return res, rows.Err()
}

func (r *appRepository) Update(app *models.App) error {
	res, err := r.DB.Exec(`UPDATE apps SET name=$1, package=$2, icon=$3, type=$4 WHERE id=$5`,
		app.Name, app.Package, nullable(app.Icon), nullable(app.Type), app.ID)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "app package already exists", err)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "app not found")
	}
	return nil
}

func (r *appRepository) Delete(id uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM apps WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "app not found")
	}
	return nil
}

// ===== app requests =====

func (r *appRepository) CreateRequest(req *models.AppRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.Status == "" {
		req.Status = models.AppRequestPending
	}
	const q = `INSERT INTO app_requests (id, app_id, from_user_id, reason, status) VALUES ($1,$2,$3,$4,$5)`
	if _, err := r.DB.Exec(q, req.ID, req.AppID, req.FromUserID, nullable(req.Reason), req.Status); err != nil {
		return fmt.Errorf("create app request: %w", err)
	}
	return nil
}

func (r *appRepository) GetRequest(id uuid.UUID) (*models.AppRequest, error) {
	req := &models.AppRequest{}
	var reason sql.NullString
	err := r.DB.QueryRow(`SELECT id, app_id, from_user_id, reason, status FROM app_requests WHERE id = $1`, id).
		Scan(&req.ID, &req.AppID, &req.FromUserID, &reason, &req.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get app request: %w", err)
	}
	req.Reason = reason.String
	return req, nil
}

func (r *appRepository) ListRequests(status string) ([]*models.AppRequest, error) {
	q := `SELECT id, app_id, from_user_id, reason, status FROM app_requests`
	args := []any{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.AppRequest
	for rows.Next() {
		req := &models.AppRequest{}
		var reason sql.NullString
		if err := rows.Scan(&req.ID, &req.AppID, &req.FromUserID, &reason, &req.Status); err != nil {
			return nil, err
		}
		req.Reason = reason.String
		res = append(res, req)
	}
	return res, rows.Err()
}

func (r *appRepository) ResolveRequest(id uuid.UUID, newStatus string, adminID uuid.UUID, basis string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin resolve tx: %w", err)
	}
	defer tx.Rollback()

	var statusWas string
	err = tx.QueryRow(`SELECT status FROM app_requests WHERE id = $1 FOR UPDATE`, id).Scan(&statusWas)
	if err == sql.ErrNoRows {
		return apperrors.E(apperrors.NotFound, "app request not found")
	}
	if err != nil {
		return fmt.Errorf("lock app request: %w", err)
	}
	if statusWas != models.AppRequestPending {
		return apperrors.E(apperrors.Conflict, "app request already resolved")
	}

	if _, err := tx.Exec(`UPDATE app_requests SET status=$1 WHERE id=$2`, newStatus, id); err != nil {
		return fmt.Errorf("update app request: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO app_requests_logs (id, app_request_id, status_was, status_changed_to, responsible_admin_id, basis)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, uuid.New(), id, statusWas, newStatus, adminID, nullable(basis))
	if err != nil {
		return fmt.Errorf("journal app request: %w", err)
	}

	return tx.Commit()
}

// UserAppRepository tracks which catalog apps are installed on which user devices.
type UserAppRepository interface {
	Install(ua *models.UserApp) error
	Uninstall(userDeviceID, appID uuid.UUID) error
	ListByUserDevice(userDeviceID uuid.UUID) ([]*models.UserApp, error)
	GetByID(id uuid.UUID) (*models.UserApp, error)
}

type userAppRepository struct {
	DB *sql.DB
}

func NewUserAppRepository(db *sql.DB) UserAppRepository {
	return &userAppRepository{DB: db}
}

func (r *userAppRepository) Install(ua *models.UserApp) error {
	if ua.ID == uuid.Nil {
		ua.ID = uuid.New()
	}
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin install tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO user_apps (id, user_device_id, app_id, is_active)
		VALUES ($1,$2,$3,TRUE)
		RETURNING added_at
	`, ua.ID, ua.UserDeviceID, ua.AppID).Scan(&ua.AddedAt)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "app already installed on device", err)
	}
	if err != nil {
		return fmt.Errorf("insert user app: %w", err)
	}
	if _, err := tx.Exec(`UPDATE apps SET install_count = install_count + 1 WHERE id = $1`, ua.AppID); err != nil {
		return fmt.Errorf("bump install count: %w", err)
	}
	ua.IsActive = true
	return tx.Commit()
}

func (r *userAppRepository) Uninstall(userDeviceID, appID uuid.UUID) error {
	res, err := r.DB.Exec(
		`UPDATE user_apps SET is_active = FALSE WHERE user_device_id=$1 AND app_id=$2 AND is_active`,
		userDeviceID, appID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "app is not installed on device")
	}
	return nil
}

func (r *userAppRepository) ListByUserDevice(userDeviceID uuid.UUID) ([]*models.UserApp, error) {
	rows, err := r.DB.Query(`
		SELECT id, user_device_id, app_id, added_at, is_active
		FROM user_apps WHERE user_device_id = $1 ORDER BY added_at DESC
	`, userDeviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.UserApp
	for rows.Next() {
		ua := &models.UserApp{}
		if err := rows.Scan(&ua.ID, &ua.UserDeviceID, &ua.AppID, &ua.AddedAt, &ua.IsActive); err != nil {
			return nil, fmt.Errorf("scan user app: %w", err)
		}
		res = append(res, ua)
	}
	return res, rows.Err()
}

func (r *userAppRepository) GetByID(id uuid.UUID) (*models.UserApp, error) {
	ua := &models.UserApp{}
	err := r.DB.QueryRow(`
		SELECT id, user_device_id, app_id, added_at, is_active FROM user_apps WHERE id = $1
	`, id).Scan(&ua.ID, &ua.UserDeviceID, &ua.AppID, &ua.AddedAt, &ua.IsActive)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user app: %w", err)
	}
	return ua, nil
}
