package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
	"github.com/emrekoch/skillbridge/internal/pkg/dberrors"
)

// CandidateFilter narrows the teacher candidate search. Zero values mean
// "no filter".
type CandidateFilter struct {
	Query        string
	SkillID      *uuid.UUID
	Category     string
	OnlineOnly   bool
	InPersonOnly bool
	VerifiedOnly bool
	MinRating    float64
	ExcludeUser  uuid.UUID
	Limit        int
}

// ProfileRepository handles database operations for user profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByID retrieves a profile by its ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT id, full_name, bio, role, location_text, latitude, longitude,
		       rating, total_reviews, verified, online_sessions, in_person_sessions,
		       created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var p models.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FullName, &p.Bio, &p.Role, &p.LocationText, &p.Latitude, &p.Longitude,
		&p.Rating, &p.TotalReviews, &p.Verified, &p.OnlineSessions, &p.InPersonSessions,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile %s: %w", id, err)
	}
	return &p, nil
}

// Upsert creates or updates the profile row for the given id. Only the
// self-service fields are written; rating, review count, verification and
// role stay server-managed.
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (id, full_name, bio, location_text, latitude, longitude, online_sessions, in_person_sessions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			bio = EXCLUDED.bio,
			location_text = EXCLUDED.location_text,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			online_sessions = EXCLUDED.online_sessions,
			in_person_sessions = EXCLUDED.in_person_sessions,
			updated_at = NOW()
		RETURNING role, rating, total_reviews, verified, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.FullName, p.Bio, p.LocationText, p.Latitude, p.Longitude,
		p.OnlineSessions, p.InPersonSessions,
	).Scan(&p.Role, &p.Rating, &p.TotalReviews, &p.Verified, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting profile %s: %w", p.ID, err)
	}
	return nil
}

// ListUserSkills retrieves a profile's declared skills with catalog data
func (r *ProfileRepository) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]*models.UserSkill, error) {
	query := `
		SELECT us.user_id, us.skill_id, us.level, us.years_experience,
		       us.can_teach, us.wants_to_learn, us.description,
		       s.name, s.category
		FROM user_skills us
		JOIN skills s ON s.id = us.skill_id
		WHERE us.user_id = $1
		ORDER BY s.name ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing skills for profile %s: %w", userID, err)
	}
	defer rows.Close()

	var skills []*models.UserSkill
	for rows.Next() {
		us := models.UserSkill{Skill: &models.Skill{}}
		err := rows.Scan(
			&us.UserID, &us.SkillID, &us.Level, &us.YearsExperience,
			&us.CanTeach, &us.WantsToLearn, &us.Description,
			&us.Skill.Name, &us.Skill.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning user skill row: %w", err)
		}
		us.Skill.ID = us.SkillID
		skills = append(skills, &us)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user skill rows: %w", err)
	}

	return skills, nil
}

// UpsertUserSkill declares or updates a skill on a profile. An unknown
// skill id surfaces as ErrSkillNotFound via the foreign key.
func (r *ProfileRepository) UpsertUserSkill(ctx context.Context, us *models.UserSkill) error {
	query := `
		INSERT INTO user_skills (user_id, skill_id, level, years_experience, can_teach, wants_to_learn, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, skill_id) DO UPDATE SET
			level = EXCLUDED.level,
			years_experience = EXCLUDED.years_experience,
			can_teach = EXCLUDED.can_teach,
			wants_to_learn = EXCLUDED.wants_to_learn,
			description = EXCLUDED.description
	`

	_, err := r.db.Exec(ctx, query,
		us.UserID, us.SkillID, us.Level, us.YearsExperience,
		us.CanTeach, us.WantsToLearn, us.Description,
	)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "user_skills_skill_id_fkey") {
			return apperrors.ErrSkillNotFound
		}
		return fmt.Errorf("error upserting skill %s for profile %s: %w", us.SkillID, us.UserID, err)
	}
	return nil
}

// DeleteUserSkill removes a declared skill from a profile
func (r *ProfileRepository) DeleteUserSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`, userID, skillID)
	if err != nil {
		return fmt.Errorf("error deleting skill %s for profile %s: %w", skillID, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSkillNotFound
	}
	return nil
}

// FindTeacherCandidates retrieves profiles with at least one teachable skill
// matching the filter, together with that skill. Radius filtering happens in
// the service layer because distance needs both coordinate pairs.
func (r *ProfileRepository) FindTeacherCandidates(ctx context.Context, filter CandidateFilter) ([]*models.Profile, error) {
	builder := squirrel.Select(
		"p.id", "p.full_name", "p.bio", "p.role", "p.location_text", "p.latitude", "p.longitude",
		"p.rating", "p.total_reviews", "p.verified", "p.online_sessions", "p.in_person_sessions",
		"p.created_at", "p.updated_at",
		"us.skill_id", "us.level", "us.years_experience", "us.description",
		"s.name", "s.category",
	).
		From("profiles p").
		Join("user_skills us ON us.user_id = p.id AND us.can_teach = TRUE").
		Join("skills s ON s.id = us.skill_id").
		Where(squirrel.NotEq{"p.id": filter.ExcludeUser}).
		OrderBy("p.rating DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.SkillID != nil {
		builder = builder.Where(squirrel.Eq{"us.skill_id": *filter.SkillID})
	}

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"p.full_name": pattern},
			squirrel.ILike{"p.bio": pattern},
			squirrel.ILike{"s.name": pattern},
		})
	}

	if filter.Category != "" {
		builder = builder.Where(squirrel.Eq{"s.category": filter.Category})
	}

	if filter.OnlineOnly {
		builder = builder.Where(squirrel.Eq{"p.online_sessions": true})
	}

	if filter.InPersonOnly {
		builder = builder.Where(squirrel.Eq{"p.in_person_sessions": true})
	}

	if filter.VerifiedOnly {
		builder = builder.Where(squirrel.Eq{"p.verified": true})
	}

	if filter.MinRating > 0 {
		builder = builder.Where(squirrel.GtOrEq{"p.rating": filter.MinRating})
	}

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building candidate query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying teacher candidates: %w", err)
	}
	defer rows.Close()

	// A profile teaching several matching skills appears once, carrying all
	// of them.
	byID := make(map[uuid.UUID]*models.Profile)
	var ordered []*models.Profile
	for rows.Next() {
		var p models.Profile
		us := models.UserSkill{Skill: &models.Skill{}}

		err := rows.Scan(
			&p.ID, &p.FullName, &p.Bio, &p.Role, &p.LocationText, &p.Latitude, &p.Longitude,
			&p.Rating, &p.TotalReviews, &p.Verified, &p.OnlineSessions, &p.InPersonSessions,
			&p.CreatedAt, &p.UpdatedAt,
			&us.SkillID, &us.Level, &us.YearsExperience, &us.Description,
			&us.Skill.Name, &us.Skill.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning candidate row: %w", err)
		}

		us.Skill.ID = us.SkillID
		us.UserID = p.ID
		us.CanTeach = true

		if existing, ok := byID[p.ID]; ok {
			existing.TeachableSkills = append(existing.TeachableSkills, &us)
			continue
		}

		p.TeachableSkills = []*models.UserSkill{&us}
		byID[p.ID] = &p
		ordered = append(ordered, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate rows: %w", err)
	}

	return ordered, nil
}

// UpdateRating recomputes a profile's aggregate rating from its reviews
func (r *ProfileRepository) UpdateRating(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE profiles p
		SET rating = COALESCE(agg.avg_rating, 0),
		    total_reviews = COALESCE(agg.review_count, 0),
		    updated_at = NOW()
		FROM (
			SELECT AVG(rating)::DOUBLE PRECISION AS avg_rating, COUNT(*) AS review_count
			FROM reviews
			WHERE reviewee_id = $1
		) agg
		WHERE p.id = $1
	`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("error updating rating for profile %s: %w", userID, err)
	}
	return nil
}
