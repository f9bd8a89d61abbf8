package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/models"
)

var (
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrInvalidSessionDate = errors.New("session date must be dd/mm/yyyy")
	ErrMentorNameMissing  = errors.New("mentor name is required")
)

// ReflectionService stores private session feedback. Entries are only ever
// visible to their author.
type ReflectionService struct {
	db DBConn
}

func NewReflectionService(db DBConn) *ReflectionService {
	return &ReflectionService{db: db}
}

func (s *ReflectionService) Create(ctx context.Context, params models.CreateReflectionParams) (*models.Reflection, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := time.Parse("02/01/2006", params.SessionDate); err != nil {
		return nil, ErrInvalidSessionDate
	}
	if strings.TrimSpace(params.Mentor) == "" {
		return nil, ErrMentorNameMissing
	}

	reflection := &models.Reflection{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO reflections (user_id, session_date, mentor, notes, rating)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, session_date, mentor, notes, rating, created_at`,
		params.UserID, params.SessionDate, params.Mentor, params.Notes, params.Rating,
	).Scan(&reflection.ID, &reflection.UserID, &reflection.SessionDate, &reflection.Mentor, &reflection.Notes, &reflection.Rating, &reflection.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating reflection: %w", err)
	}

	return reflection, nil
}

func (s *ReflectionService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Reflection, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, session_date, mentor, notes, rating, created_at
		 FROM reflections
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reflections: %w", err)
	}
	defer rows.Close()

	var reflections []models.Reflection
	for rows.Next() {
		var r models.Reflection
		if err := rows.Scan(&r.ID, &r.UserID, &r.SessionDate, &r.Mentor, &r.Notes, &r.Rating, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning reflection: %w", err)
		}
		reflections = append(reflections, r)
	}

	if reflections == nil {
		reflections = []models.Reflection{}
	}

	return reflections, nil
}
