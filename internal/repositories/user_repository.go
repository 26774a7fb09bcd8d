package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

// uniqueViolation is the Postgres error code every repository translates
// into a Conflict instead of letting it surface as a 500.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	GetByPhoneAndRole(phone, role string) (*models.User, error)
	Update(user *models.User) error
	UpdatePassword(id uuid.UUID, passwordHash string) error
	Delete(id uuid.UUID) error
	List(limit, offset int) ([]*models.User, error)

	// Telegram alert channel
	UpdateTelegramChat(userID uuid.UUID, chatID int64) error
	GetByChatID(chatID int64) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, username, phone_number, role_id, user_role_name, password_hash, telegram_chat_id`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var (
		roleID sql.NullString
		chatID sql.NullInt64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PhoneNumber, &roleID, &u.RoleName, &u.PasswordHash, &chatID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if roleID.Valid {
		if id, err := uuid.Parse(roleID.String); err == nil {
			u.RoleID = &id
		}
	}
	if chatID.Valid {
		u.TelegramChatID = &chatID.Int64
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	const q = `
		INSERT INTO users (id, username, phone_number, role_id, user_role_name, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	var roleID any
	if user.RoleID != nil {
		roleID = *user.RoleID
	}
	_, err := r.DB.Exec(q, user.ID, user.Username, user.PhoneNumber, roleID, user.RoleName, user.PasswordHash)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "phone already registered", err)
	}
	return err
}

func (r *userRepository) GetByID(id uuid.UUID) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByPhone(phone string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE phone_number = $1 LIMIT 1`, phone))
}

func (r *userRepository) GetByPhoneAndRole(phone, role string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1 AND user_role_name = $2`
	return scanUser(r.DB.QueryRow(q, phone, role))
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET username=$1, phone_number=$2, user_role_name=$3
		WHERE id=$4
	`
	_, err := r.DB.Exec(q, user.Username, user.PhoneNumber, user.RoleName, user.ID)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "username or phone already taken", err)
	}
	return err
}

func (r *userRepository) UpdatePassword(id uuid.UUID, passwordHash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, id)
	return err
}

func (r *userRepository) Delete(id uuid.UUID) error {
	res, err := r.DB.Exec(`DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	return nil
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	rows, err := r.DB.Query(`SELECT `+userColumns+` FROM users ORDER BY username LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) UpdateTelegramChat(userID uuid.UUID, chatID int64) error {
	_, err := r.DB.Exec(`UPDATE users SET telegram_chat_id=$1 WHERE id=$2`, chatID, userID)
	return err
}

func (r *userRepository) GetByChatID(chatID int64) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE telegram_chat_id = $1 LIMIT 1`
	return scanUser(r.DB.QueryRow(q, chatID))
}
