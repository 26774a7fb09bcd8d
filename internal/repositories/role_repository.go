package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tikoncha/internal/models"
)

type RoleRepository interface {
	Create(role *models.Role) error
	GetByName(name string) (*models.Role, error)
	List() ([]*models.Role, error)
}

type roleRepository struct {
	DB *sql.DB
}

func NewRoleRepository(db *sql.DB) RoleRepository {
	return &roleRepository{DB: db}
}

func (r *roleRepository) Create(role *models.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	_, err := r.DB.Exec(`INSERT INTO user_roles (id, name) VALUES ($1,$2) ON CONFLICT (name) DO NOTHING`, role.ID, role.Name)
	return err
}

func (r *roleRepository) GetByName(name string) (*models.Role, error) {
	role := &models.Role{}
	err := r.DB.QueryRow(`SELECT id, name FROM user_roles WHERE name = $1`, name).Scan(&role.ID, &role.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get role by name: %w", err)
	}
	return role, nil
}

func (r *roleRepository) List() ([]*models.Role, error) {
	rows, err := r.DB.Query(`SELECT id, name FROM user_roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		res = append(res, role)
	}
	return res, rows.Err()
}
