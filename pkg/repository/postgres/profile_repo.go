package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobportal/pkg/profile"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) UpsertStudent(ctx context.Context, p profile.Student) (profile.Student, error) {
	edu, err := json.Marshal(emptyIfNil(p.Education))
	if err != nil {
		return profile.Student{}, err
	}
	exp, err := json.Marshal(emptyIfNil(p.Experience))
	if err != nil {
		return profile.Student{}, err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO student_profiles (user_id, full_name, phone, location, headline, bio, linkedin, github, portfolio, education, experience, skills, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name, phone = EXCLUDED.phone, location = EXCLUDED.location,
			headline = EXCLUDED.headline, bio = EXCLUDED.bio, linkedin = EXCLUDED.linkedin,
			github = EXCLUDED.github, portfolio = EXCLUDED.portfolio, education = EXCLUDED.education,
			experience = EXCLUDED.experience, skills = EXCLUDED.skills, updated_at = EXCLUDED.updated_at
	`, p.UserID, p.FullName, p.Phone, p.Location, p.Headline, p.Bio, p.LinkedIn, p.GitHub, p.Portfolio, edu, exp, emptyIfNil(p.Skills), p.UpdatedAt)
	if err != nil {
		return profile.Student{}, err
	}
	return p, nil
}

func (r *ProfileRepository) GetStudent(ctx context.Context, userID uuid.UUID) (profile.Student, error) {
	var (
		p        profile.Student
		edu, exp []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, full_name, phone, location, headline, bio, linkedin, github, portfolio, education, experience, skills, updated_at
		FROM student_profiles WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.FullName, &p.Phone, &p.Location, &p.Headline, &p.Bio, &p.LinkedIn, &p.GitHub, &p.Portfolio, &edu, &exp, &p.Skills, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return profile.Student{}, profile.ErrNotFound
	}
	if err != nil {
		return profile.Student{}, err
	}
	if err := json.Unmarshal(edu, &p.Education); err != nil {
		return profile.Student{}, err
	}
	if err := json.Unmarshal(exp, &p.Experience); err != nil {
		return profile.Student{}, err
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *ProfileRepository) UpsertCompany(ctx context.Context, p profile.Company) (profile.Company, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO company_profiles (user_id, company_name, website, industry, size, location, description, logo_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name, website = EXCLUDED.website, industry = EXCLUDED.industry,
			size = EXCLUDED.size, location = EXCLUDED.location, description = EXCLUDED.description,
			logo_url = EXCLUDED.logo_url, updated_at = EXCLUDED.updated_at
	`, p.UserID, p.CompanyName, p.Website, p.Industry, p.Size, p.Location, p.Description, p.LogoURL, p.UpdatedAt)
	if err != nil {
		return profile.Company{}, err
	}
	return p, nil
}

func (r *ProfileRepository) GetCompany(ctx context.Context, userID uuid.UUID) (profile.Company, error) {
	var p profile.Company
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, company_name, website, industry, size, location, description, logo_url, updated_at
		FROM company_profiles WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.CompanyName, &p.Website, &p.Industry, &p.Size, &p.Location, &p.Description, &p.LogoURL, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return profile.Company{}, profile.ErrNotFound
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, err
}
