package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/homestay/rental-service/internal/domain"
)

const uniqueViolation = "23505"

const userColumns = `id::text, name, email, password, phone, gender, dob, address, avatar, favorites, created_at, updated_at`

// Querier is the subset of pgxpool.Pool the store needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresStore struct {
	db Querier
}

// NewPostgresStore returns a Postgres-backed credential store.
func NewPostgresStore(db Querier) CredentialStore {
	return &postgresStore{db: db}
}

func (s *postgresStore) Insert(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password, phone)
        VALUES ($1, $2, $3, $4)
        RETURNING id::text, favorites, created_at, updated_at`

	err := s.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
	).Scan(&user.ID, &user.Favorites, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *postgresStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return s.scanOne(s.db.QueryRow(ctx, query, email))
}

func (s *postgresStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return s.scanOne(s.db.QueryRow(ctx, query, id))
}

func (s *postgresStore) UpdatePartial(ctx context.Context, id string, changes domain.ProfileChanges) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	query, args := buildUpdateQuery(id, changes)
	return s.scanOne(s.db.QueryRow(ctx, query, args...))
}

// buildUpdateQuery renders the SET clause in allow-list order. Column names
// come from domain.ProfileAllowList only, never from input keys.
func buildUpdateQuery(id string, changes domain.ProfileChanges) (string, []any) {
	sets := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+1)
	for _, field := range domain.ProfileAllowList {
		val, ok := changes[field]
		if !ok {
			continue
		}
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s=$%d", field, len(args)))
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)
	return query, args
}

func (s *postgresStore) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Gender,
		&user.Dob,
		&user.Address,
		&user.Avatar,
		&user.Favorites,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
