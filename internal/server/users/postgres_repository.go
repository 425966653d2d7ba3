package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nestjs-store-microservices/auth-ms/internal/common"
	"github.com/nestjs-store-microservices/auth-ms/internal/dbx"
	"github.com/nestjs-store-microservices/auth-ms/internal/server/models"
)

// PostgresRepository stores users in PostgreSQL. The unique index on email is
// the authoritative guard against duplicate registrations; a unique violation
// on insert surfaces as common.ErrDuplicateUser.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	roles, err := marshalRoles(user.Roles)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query :=
		`INSERT INTO users (email, display_name, password_hash, is_active, roles)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.Email, user.DisplayName, user.PasswordHash, user.IsActive, roles).
		Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrDuplicateUser
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, display_name, password_hash, is_active, roles, created_at FROM users
		 WHERE email = $1
		 `

	return r.getUser(ctx, query, email)
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, display_name, password_hash, is_active, roles, created_at FROM users
		 WHERE id = $1
		 `

	return r.getUser(ctx, query, id)
}

func (r *PostgresRepository) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	var roles []byte

	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.IsActive, &roles, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if len(roles) > 0 {
		if err := json.Unmarshal(roles, &user.Roles); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
	}

	return user, nil
}

// marshalRoles encodes roles as jsonb, mapping a nil slice to the empty
// array so the column never holds JSON null.
func marshalRoles(roles []string) ([]byte, error) {
	if roles == nil {
		return []byte(`[]`), nil
	}
	return json.Marshal(roles)
}
