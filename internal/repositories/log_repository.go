package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

type ActionRepository interface {
	Create(a *models.Action) error
	GetByID(id uuid.UUID) (*models.Action, error)
	GetByName(name string) (*models.Action, error)
	List() ([]*models.Action, error)
}

type actionRepository struct {
	DB *sql.DB
}

func NewActionRepository(db *sql.DB) ActionRepository {
	return &actionRepository{DB: db}
}

func scanAction(row interface{ Scan(...any) error }) (*models.Action, error) {
	a := &models.Action{}
	err := row.Scan(&a.ID, &a.Name, &a.Degree)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan action: %w", err)
	}
	return a, nil
}

func (r *actionRepository) Create(a *models.Action) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.DB.Exec(`INSERT INTO actions (id, name, degree) VALUES ($1,$2,$3)`, a.ID, a.Name, a.Degree)
	if isUniqueViolation(err) {
		return apperrors.Wrap(apperrors.Conflict, "action already exists", err)
	}
	return err
}

func (r *actionRepository) GetByID(id uuid.UUID) (*models.Action, error) {
	return scanAction(r.DB.QueryRow(`SELECT id, name, degree FROM actions WHERE id=$1`, id))
}

func (r *actionRepository) GetByName(name string) (*models.Action, error) {
	return scanAction(r.DB.QueryRow(`SELECT id, name, degree FROM actions WHERE name=$1`, name))
}

func (r *actionRepository) List() ([]*models.Action, error) {
	rows, err := r.DB.Query(`SELECT id, name, degree FROM actions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// LogFilter narrows usage-log listings. Zero values mean "no filter".
type LogFilter struct {
	UserID       uuid.UUID // все устройства пользователя
	UserDeviceID uuid.UUID
	ActionID     uuid.UUID
	From         time.Time
	To           time.Time
	Limit        int
	Offset       int
}

type LogRepository interface {
	Create(l *models.Log) error
	List(f LogFilter) ([]*models.Log, error)
	SummaryByDay(userID uuid.UUID, from, to time.Time) ([]*models.LogDaySummary, error)
}

type logRepository struct {
	DB *sql.DB
}

func NewLogRepository(db *sql.DB) LogRepository {
	return &logRepository{DB: db}
}

func (r *logRepository) Create(l *models.Log) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.DoneAt.IsZero() {
		l.DoneAt = time.Now().UTC()
	}
	const q = `
		INSERT INTO logs (id, user_device_id, user_app_id, action_id, done_at, location, details)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	_, err := r.DB.Exec(q, l.ID, l.UserDeviceID, l.UserAppID, l.ActionID,
		l.DoneAt, nullable(l.Location), nullable(l.Details))
	return err
}

func (r *logRepository) List(f LogFilter) ([]*models.Log, error) {
	q := `
		SELECT l.id, l.user_device_id, l.user_app_id, l.action_id, l.done_at,
		       COALESCE(l.location,''), COALESCE(l.details,'')
		FROM logs l
	`
	var (
		where []string
		args  []any
	)
	if f.UserID != uuid.Nil {
		q += ` JOIN user_devices ud ON ud.id = l.user_device_id`
		args = append(args, f.UserID)
		where = append(where, fmt.Sprintf("ud.user_id = $%d", len(args)))
	}
	if f.UserDeviceID != uuid.Nil {
		args = append(args, f.UserDeviceID)
		where = append(where, fmt.Sprintf("l.user_device_id = $%d", len(args)))
	}
	if f.ActionID != uuid.Nil {
		args = append(args, f.ActionID)
		where = append(where, fmt.Sprintf("l.action_id = $%d", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		where = append(where, fmt.Sprintf("l.done_at >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		where = append(where, fmt.Sprintf("l.done_at < $%d", len(args)))
	}
	for i, w := range where {
		if i == 0 {
			q += " WHERE " + w
		} else {
			q += " AND " + w
		}
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY l.done_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	q += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Log
	for rows.Next() {
		l := &models.Log{}
		if err := rows.Scan(&l.ID, &l.UserDeviceID, &l.UserAppID, &l.ActionID,
			&l.DoneAt, &l.Location, &l.Details); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

func (r *logRepository) SummaryByDay(userID uuid.UUID, from, to time.Time) ([]*models.LogDaySummary, error) {
	const q = `
		SELECT date_trunc('day', l.done_at) AS day, a.name, a.degree, COUNT(*)
		FROM logs l
		JOIN user_devices ud ON ud.id = l.user_device_id
		JOIN actions a ON a.id = l.action_id
		WHERE ud.user_id = $1 AND l.done_at >= $2 AND l.done_at < $3
		GROUP BY day, a.name, a.degree
		ORDER BY day, a.name
	`
	rows, err := r.DB.Query(q, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.LogDaySummary
	for rows.Next() {
		s := &models.LogDaySummary{}
		if err := rows.Scan(&s.Day, &s.ActionName, &s.Degree, &s.Count); err != nil {
			return nil, fmt.Errorf("scan log summary: %w", err)
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
