package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gmail-reaper/internal/model"
	"gmail-reaper/internal/repository"

	_ "github.com/lib/pq"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (google_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expiry = EXCLUDED.token_expiry,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.GoogleID, user.Email, user.Name,
		user.AccessToken, user.RefreshToken, user.TokenExpiry,
		user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, arg string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, query, arg)

	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.GoogleID, &user.Email, &user.Name,
		&user.AccessToken, &user.RefreshToken, &user.TokenExpiry,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

const userColumns = `id, google_id, email, name, access_token, refresh_token, token_expiry, created_at, updated_at`

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET google_id=$1, email=$2, name=$3, access_token=$4,
		refresh_token=$5, token_expiry=$6, updated_at=NOW() WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query,
		user.GoogleID, user.Email, user.Name,
		user.AccessToken, user.RefreshToken, user.TokenExpiry,
		user.ID)
	return err
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// Postgres Prompt repository implementation
type PostgresPromptRepository struct {
	db *sql.DB
}

func NewPostgresPromptRepository(db *sql.DB) *PostgresPromptRepository {
	return &PostgresPromptRepository{db: db}
}

func (r *PostgresPromptRepository) Upsert(ctx context.Context, prompt *model.Prompt) error {
	query := `
		INSERT INTO prompts (id, user_id, prompt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			prompt = EXCLUDED.prompt,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		prompt.ID, prompt.UserID, prompt.Prompt, prompt.CreatedAt, prompt.UpdatedAt)
	return err
}

func (r *PostgresPromptRepository) scanPrompt(row *sql.Row) (*model.Prompt, error) {
	prompt := &model.Prompt{}
	err := row.Scan(&prompt.ID, &prompt.UserID, &prompt.Prompt, &prompt.CreatedAt, &prompt.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return prompt, nil
}

func (r *PostgresPromptRepository) FindByUserID(ctx context.Context, userID string) (*model.Prompt, error) {
	query := `SELECT id, user_id, prompt, created_at, updated_at FROM prompts WHERE user_id = $1`
	return r.scanPrompt(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresPromptRepository) FindFirst(ctx context.Context) (*model.Prompt, error) {
	query := `SELECT id, user_id, prompt, created_at, updated_at FROM prompts ORDER BY created_at LIMIT 1`
	return r.scanPrompt(r.db.QueryRowContext(ctx, query))
}

func (r *PostgresPromptRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM prompts WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// InitializeDatabase creates the tables the service needs if they do not
// already exist.
func InitializeDatabase(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			google_id TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL,
			name TEXT,
			access_token TEXT,
			refresh_token TEXT,
			token_expiry TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS prompts (
			id TEXT PRIMARY KEY,
			user_id TEXT UNIQUE NOT NULL,
			prompt TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
	}
	return nil
}
