package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sandip79g/DKN-Backend/pkg/apperrors"
	"github.com/sandip79g/DKN-Backend/pkg/database"
	"github.com/sandip79g/DKN-Backend/pkg/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// userRepository implements UserRepository using PostgreSQL.
type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{db: db}
}

var _ UserRepository = (*userRepository)(nil)

// Create inserts a new user. The unique index on email is the source of
// truth for duplicate registrations; violations map to ErrEmailTaken.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedOn = time.Now().UTC()

	query := `
		INSERT INTO users (id, name, email, password_hash, role, region, is_trusted_contributor, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Region,
		user.IsTrustedContributor,
		user.CreatedOn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by id. Returns ErrNotFound if absent.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, region, is_trusted_contributor, created_on
		FROM users
		WHERE id = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email. Returns ErrNotFound if absent.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, region, is_trusted_contributor, created_on
		FROM users
		WHERE email = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

// EmailExists reports whether a user with the given email is registered.
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *userRepository) scanOne(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Region,
		&user.IsTrustedContributor,
		&user.CreatedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
