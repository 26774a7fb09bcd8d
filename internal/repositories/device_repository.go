package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

type OSRepository interface {
	Create(os *models.OS) error
	GetByID(id uuid.UUID) (*models.OS, error)
	List() ([]*models.OS, error)
	Update(os *models.OS) error
	Delete(id uuid.UUID) error
}

type osRepository struct {
	DB *sql.DB
}

func NewOSRepository(db *sql.DB) OSRepository {
	return &osRepository{DB: db}
}

func (r *osRepository) Create(os *models.OS) error {
	if os.ID == uuid.Nil {
		os.ID = uuid.New()
	}
	const q = `INSERT INTO operating_systems (id, type, version, ui, ui_version) VALUES ($1,$2,$3,$4,$5)`
	_, err := r.DB.Exec(q, os.ID, os.Type, nullable(os.Version), nullable(os.UI), nullable(os.UIVersion))
	return err
}

func scanOS(row interface{ Scan(...any) error }) (*models.OS, error) {
	os := &models.OS{}
	var version, ui, uiVersion sql.NullString
	err := row.Scan(&os.ID, &os.Type, &version, &ui, &uiVersion)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan os: %w", err)
	}
	os.Version = version.String
	os.UI = ui.String
	os.UIVersion = uiVersion.String
	return os, nil
}

func (r *osRepository) GetByID(id uuid.UUID) (*models.OS, error) {
	return scanOS(r.DB.QueryRow(`SELECT id, type, version, ui, ui_version FROM operating_systems WHERE id = $1`, id))
}

func (r *osRepository) List() ([]*models.OS, error) {
	rows, err := r.DB.Query(`SELECT id, type, version, ui, ui_version FROM operating_systems ORDER BY type, version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.OS
	for rows.Next() {
		os, err := scanOS(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, os)
	}
	return res, rows.Err()
}

func (r *osRepository) Update(os *models.OS) error {
	res, err := r.DB.Exec(`UPDATE operating_systems SET type=$1, version=$2, ui=$3, ui_version=$4 WHERE id=$5`,
		os.Type, nullable(os.Version), nullable(os.UI), nullable(os.UIVersion), os.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "operating system not found")
	}
	return nil
}

func (r *osRepository) Delete(id uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM operating_systems WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "operating system not found")
	}
	return nil
}

// ===== devices =====

type DeviceRepository interface {
	// FindOrCreate reuses a catalog row matching brand/model/os/imei.
	FindOrCreate(d *models.Device) error
	AttachUser(userID, deviceID uuid.UUID) (*models.UserDevice, error)
	ListByUser(userID uuid.UUID) ([]*models.UserDeviceDetail, error)
	GetUserDevice(id uuid.UUID) (*models.UserDevice, error)
	Deactivate(userDeviceID, userID uuid.UUID) error
}

type deviceRepository struct {
	DB *sql.DB
}

func NewDeviceRepository(db *sql.DB) DeviceRepository {
	return &deviceRepository{DB: db}
}

func (r *deviceRepository) FindOrCreate(d *models.Device) error {
	err := r.DB.QueryRow(`
		SELECT id FROM devices
		WHERE brand=$1 AND model=$2 AND os_id=$3 AND COALESCE(imei,'')=$4
		LIMIT 1
	`, d.Brand, d.Model, d.OSID, d.IMEI).Scan(&d.ID)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("find device: %w", err)
	}

	d.ID = uuid.New()
	const q = `INSERT INTO devices (id, brand, model, os_id, ram, storage, imei) VALUES ($1,$2,$3,$4,$5,$6,$7)`
	if _, err := r.DB.Exec(q, d.ID, d.Brand, d.Model, d.OSID, d.RAM, d.Storage, nullable(d.IMEI)); err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

func (r *deviceRepository) AttachUser(userID, deviceID uuid.UUID) (*models.UserDevice, error) {
	ud := &models.UserDevice{ID: uuid.New(), UserID: userID, DeviceID: deviceID, IsActive: true}
	const q = `INSERT INTO user_devices (id, user_id, device_id, is_active) VALUES ($1,$2,$3,TRUE)`
	if _, err := r.DB.Exec(q, ud.ID, ud.UserID, ud.DeviceID); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Wrap(apperrors.Conflict, "device already registered for this user", err)
		}
		return nil, fmt.Errorf("attach user device: %w", err)
	}
	return ud, nil
}

func (r *deviceRepository) ListByUser(userID uuid.UUID) ([]*models.UserDeviceDetail, error) {
	const q = `
		SELECT ud.id, ud.user_id, ud.device_id, ud.is_active,
		       d.brand, d.model, os.type, COALESCE(os.version,'')
		FROM user_devices ud
		JOIN devices d ON d.id = ud.device_id
		JOIN operating_systems os ON os.id = d.os_id
		WHERE ud.user_id = $1
		ORDER BY d.brand, d.model
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.UserDeviceDetail
	for rows.Next() {
		ud := &models.UserDeviceDetail{}
		if err := rows.Scan(&ud.ID, &ud.UserID, &ud.DeviceID, &ud.IsActive,
			&ud.Brand, &ud.Model, &ud.OSType, &ud.OSVersion); err != nil {
			return nil, err
		}
		res = append(res, ud)
	}
	return res, rows.Err()
}

func (r *deviceRepository) GetUserDevice(id uuid.UUID) (*models.UserDevice, error) {
	ud := &models.UserDevice{}
	err := r.DB.QueryRow(`SELECT id, user_id, device_id, is_active FROM user_devices WHERE id = $1`, id).
		Scan(&ud.ID, &ud.UserID, &ud.DeviceID, &ud.IsActive)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user device: %w", err)
	}
	return ud, nil
}

func (r *deviceRepository) Deactivate(userDeviceID, userID uuid.UUID) error {
	res, err := r.DB.Exec(`UPDATE user_devices SET is_active=FALSE WHERE id=$1 AND user_id=$2`, userDeviceID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "device not found for this user")
	}
	return nil
}
