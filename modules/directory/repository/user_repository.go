package repository

import (
	"context"
	"database/sql"

	"calendar-insights/core/database"
	"calendar-insights/core/logger"
	"calendar-insights/modules/directory/entity"

	"github.com/jmoiron/sqlx"
)

// UserRepository reads and writes the users directory table.
type UserRepository struct {
	DB database.IDatabase
}

func NewUserRepository(db database.IDatabase) *UserRepository {
	return &UserRepository{DB: db}
}

// GetByEmail returns nil without error when the email is not in the directory.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.DB.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByEmail", "email", email, "error", err)
		return nil, err
	}
	return &user, nil
}

// GetByEmails returns the subset of users found, keyed by email. Emails with
// no directory entry are simply absent from the map.
func (r *UserRepository) GetByEmails(ctx context.Context, emails []string) (map[string]entity.User, error) {
	result := make(map[string]entity.User, len(emails))
	if len(emails) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM users WHERE email IN (?)`, emails)
	if err != nil {
		return nil, err
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var users []entity.User
	if err := r.DB.SelectContext(ctx, &users, query, args...); err != nil {
		logger.Error("UserRepository:GetByEmails", "count", len(emails), "error", err)
		return nil, err
	}
	for _, user := range users {
		result[user.Email] = user
	}
	return result, nil
}

const upsertUserQuery = `
	INSERT INTO users (email, department, division, subdepartment, is_manager)
	VALUES (:email, :department, :division, :subdepartment, :is_manager)
	ON CONFLICT (email) DO UPDATE SET
		department = EXCLUDED.department,
		division = EXCLUDED.division,
		subdepartment = EXCLUDED.subdepartment,
		is_manager = EXCLUDED.is_manager,
		updated_at = CURRENT_TIMESTAMP
`

func (r *UserRepository) Upsert(ctx context.Context, user *entity.User) error {
	if _, err := r.DB.NamedExecContext(ctx, upsertUserQuery, user); err != nil {
		logger.Error("UserRepository:Upsert", "email", user.Email, "error", err)
		return err
	}
	return nil
}
