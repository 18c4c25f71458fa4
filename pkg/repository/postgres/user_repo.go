package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/places/pkg/auth"
	"github.com/artem13815/places/pkg/place"
)

// UserRepository implements auth.UserRepository and place.Owners backed by PostgreSQL (pgx).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	placeIDs := user.PlaceIDs
	if placeIDs == nil {
		placeIDs = []uuid.UUID{}
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, image, place_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Name, strings.ToLower(user.Email), user.PasswordHash, user.Image, placeIDs, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return auth.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT id, name, email, password_hash, image, place_ids, created_at
		FROM users WHERE email = $1
	`, strings.ToLower(email))
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]auth.User, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT id, name, email, password_hash, image, place_ids, created_at
		FROM users ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []auth.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, user)
	}
	return res, rows.Err()
}

func scanUser(row pgx.Row) (auth.User, error) {
	var user auth.User
	var createdAt time.Time
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Image, &user.PlaceIDs, &createdAt); err != nil {
		return auth.User{}, err
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}

func (r *UserRepository) PlaceIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT place_ids FROM users WHERE id = $1`, userID).Scan(&ids)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, place.ErrOwnerNotFound
		}
		return nil, err
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

func (r *UserRepository) AttachPlace(ctx context.Context, userID, placeID uuid.UUID) error {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE users SET place_ids = array_append(place_ids, $2)
		WHERE id = $1 AND NOT ($2 = ANY(place_ids))
	`, userID, placeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return r.ensureExists(ctx, userID)
	}
	return nil
}

func (r *UserRepository) DetachPlace(ctx context.Context, userID, placeID uuid.UUID) error {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE users SET place_ids = array_remove(place_ids, $2) WHERE id = $1
	`, userID, placeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return place.ErrOwnerNotFound
	}
	return nil
}

// ensureExists distinguishes "already attached" from "no such user".
func (r *UserRepository) ensureExists(ctx context.Context, userID uuid.UUID) error {
	var one int
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT 1 FROM users WHERE id = $1`, userID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return place.ErrOwnerNotFound
	}
	return err
}
