package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/places/pkg/place"
)

// PlaceRepository implements place.Repository backed by PostgreSQL (pgx).
type PlaceRepository struct {
	pool *pgxpool.Pool
}

func NewPlaceRepository(pool *pgxpool.Pool) *PlaceRepository {
	return &PlaceRepository{pool: pool}
}

func (r *PlaceRepository) Create(ctx context.Context, p place.Place) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `
INSERT INTO places (id, title, description, address, lat, lng, image, creator_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, p.ID, p.Title, p.Description, p.Address, p.Location.Lat, p.Location.Lng, p.Image, p.CreatorID, p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return place.ErrOwnerNotFound
		}
		return err
	}
	return nil
}

func (r *PlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (place.Place, error) {
	row := conn(ctx, r.pool).QueryRow(ctx, `
SELECT id, title, description, address, lat, lng, image, creator_id, created_at
FROM places WHERE id = $1
`, id)
	p, err := scanPlace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return place.Place{}, place.ErrNotFound
		}
		return place.Place{}, err
	}
	return p, nil
}

func (r *PlaceRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]place.Place, error) {
	res := []place.Place{}
	if len(ids) == 0 {
		return res, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `
SELECT p.id, p.title, p.description, p.address, p.lat, p.lng, p.image, p.creator_id, p.created_at
FROM unnest($1::uuid[]) WITH ORDINALITY AS ref(id, ord)
JOIN places p ON p.id = ref.id
ORDER BY ref.ord
`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *PlaceRepository) UpdateDetails(ctx context.Context, id uuid.UUID, title, description string) error {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `
UPDATE places SET title = $2, description = $3 WHERE id = $1
`, id, title, description)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return place.ErrNotFound
	}
	return nil
}

func (r *PlaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return place.ErrNotFound
	}
	return nil
}

func scanPlace(row pgx.Row) (place.Place, error) {
	var p place.Place
	var created time.Time
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Address, &p.Location.Lat, &p.Location.Lng, &p.Image, &p.CreatorID, &created); err != nil {
		return place.Place{}, err
	}
	p.CreatedAt = created.UTC()
	return p, nil
}
