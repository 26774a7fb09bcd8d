package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

// RegistrationRepository owns pending_users and otp_entries. A User row
// created by Promote is handed over to the rest of the system.
type RegistrationRepository interface {
	DeletePendingByPhone(phone string) error
	CreatePending(p *models.PendingUser) error
	GetPendingByPhone(phone string) (*models.PendingUser, error)
	CreateOTP(e *models.OTPEntry) error
	// LatestUnusedOTP returns the authoritative entry for the phone:
	// the most recently issued unused one, by expiry ordering.
	LatestUnusedOTP(phone string) (*models.OTPEntry, error)
	// Promote flips the OTP to used, materializes the pending registration
	// as a User and deletes the pending row — all in one transaction.
	Promote(otpID uuid.UUID, phone string) (*models.User, error)
}

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &registrationRepository{DB: db}
}

func (r *registrationRepository) DeletePendingByPhone(phone string) error {
	// otp_entries уходят каскадом
	if _, err := r.DB.Exec(`DELETE FROM pending_users WHERE phone_number = $1`, phone); err != nil {
		return fmt.Errorf("delete pending by phone: %w", err)
	}
	return nil
}

func (r *registrationRepository) CreatePending(p *models.PendingUser) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	const q = `
		INSERT INTO pending_users (id, phone_number, username, password_hash, role_name, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	_, err := r.DB.Exec(q, p.ID, p.PhoneNumber, p.Username, p.PasswordHash, p.RoleName, p.CreatedAt)
	if isUniqueViolation(err) {
		// гонка двух регистраций: last writer wins, вторая вставка проигрывает
		return apperrors.Wrap(apperrors.Conflict, "registration already in progress", err)
	}
	if err != nil {
		return fmt.Errorf("create pending user: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetPendingByPhone(phone string) (*models.PendingUser, error) {
	const q = `
		SELECT id, phone_number, username, password_hash, role_name, created_at
		FROM pending_users
		WHERE phone_number = $1
	`
	p := &models.PendingUser{}
	err := r.DB.QueryRow(q, phone).Scan(&p.ID, &p.PhoneNumber, &p.Username, &p.PasswordHash, &p.RoleName, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pending by phone: %w", err)
	}
	return p, nil
}

func (r *registrationRepository) CreateOTP(e *models.OTPEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	const q = `
		INSERT INTO otp_entries (id, pending_user_id, phone_number, code_hash, expires_at, used)
		VALUES ($1,$2,$3,$4,$5,FALSE)
	`
	if _, err := r.DB.Exec(q, e.ID, e.PendingUserID, e.PhoneNumber, e.CodeHash, e.ExpiresAt); err != nil {
		return fmt.Errorf("create otp entry: %w", err)
	}
	return nil
}

func (r *registrationRepository) LatestUnusedOTP(phone string) (*models.OTPEntry, error) {
	const q = `
		SELECT id, pending_user_id, phone_number, code_hash, expires_at, used
		FROM otp_entries
		WHERE phone_number = $1 AND used = FALSE
		ORDER BY expires_at DESC
		LIMIT 1
	`
	e := &models.OTPEntry{}
	err := r.DB.QueryRow(q, phone).Scan(&e.ID, &e.PendingUserID, &e.PhoneNumber, &e.CodeHash, &e.ExpiresAt, &e.Used)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest unused otp: %w", err)
	}
	return e, nil
}

func (r *registrationRepository) Promote(otpID uuid.UUID, phone string) (*models.User, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin promote tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE otp_entries SET used = TRUE WHERE id = $1 AND used = FALSE`, otpID)
	if err != nil {
		return nil, fmt.Errorf("mark otp used: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// параллельная верификация успела первой
		return nil, apperrors.E(apperrors.Conflict, "code already used")
	}

	p := &models.PendingUser{}
	err = tx.QueryRow(`
		SELECT id, phone_number, username, password_hash, role_name
		FROM pending_users
		WHERE phone_number = $1
		FOR UPDATE
	`, phone).Scan(&p.ID, &p.PhoneNumber, &p.Username, &p.PasswordHash, &p.RoleName)
	if err == sql.ErrNoRows {
		// регистрация перекрыта более новой попыткой
		return nil, apperrors.E(apperrors.Conflict, "pending registration not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load pending for promote: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     p.Username,
		PhoneNumber:  p.PhoneNumber,
		RoleName:     p.RoleName,
		PasswordHash: p.PasswordHash,
	}
	_, err = tx.Exec(`
		INSERT INTO users (id, username, phone_number, user_role_name, password_hash)
		VALUES ($1,$2,$3,$4,$5)
	`, user.ID, user.Username, user.PhoneNumber, user.RoleName, user.PasswordHash)
	if isUniqueViolation(err) {
		return nil, apperrors.Wrap(apperrors.Conflict, "user already exists", err)
	}
	if err != nil {
		return nil, fmt.Errorf("insert promoted user: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM pending_users WHERE id = $1`, p.ID); err != nil {
		return nil, fmt.Errorf("delete pending after promote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit promote: %w", err)
	}
	return user, nil
}
