package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skilllink/skilllink/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidRole  = errors.New("invalid role")
)

type UserService struct {
	db DBConn
}

func NewUserService(db DBConn) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if !params.Role.Valid() {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))

	user := &models.User{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, display_name, role, subject)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, email, password_hash, display_name, role, subject, created_at, updated_at`,
		email, params.PasswordHash, params.DisplayName, params.Role, params.Subject,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.Role, &user.Subject, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password_hash, display_name, role, subject, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.Role, &user.Subject, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password_hash, display_name, role, subject, created_at, updated_at
		 FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.Role, &user.Subject, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return user, nil
}

// ListProfiles returns the user directory, excluding the viewing user.
func (s *UserService) ListProfiles(ctx context.Context, currentUserID uuid.UUID, filter models.ProfileFilter) ([]models.Profile, error) {
	sql := `SELECT id, display_name, role, subject FROM users WHERE id != $1`
	args := []any{currentUserID}

	if filter.Role != "" {
		args = append(args, filter.Role)
		sql += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if subject := strings.TrimSpace(filter.Subject); subject != "" {
		args = append(args, strings.ToLower(subject))
		sql += fmt.Sprintf(" AND LOWER(subject) = $%d", len(args))
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		args = append(args, "%"+strings.ToLower(query)+"%")
		sql += fmt.Sprintf(" AND (LOWER(display_name) LIKE $%d OR LOWER(subject) LIKE $%d)", len(args), len(args))
	}
	sql += " ORDER BY display_name LIMIT 50"

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Role, &p.Subject); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if profiles == nil {
		profiles = []models.Profile{}
	}

	return profiles, nil
}

// GetProfilesByIDs returns public profiles keyed by user ID. Unknown IDs are
// simply absent from the result.
func (s *UserService) GetProfilesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Profile, error) {
	profiles := make(map[uuid.UUID]models.Profile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, display_name, role, subject FROM users WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("getting profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Role, &p.Subject); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles[p.ID] = p
	}

	return profiles, nil
}
