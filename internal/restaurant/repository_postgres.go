package restaurant

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/THuebbe/pantrypro/internal/core"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(
	ctx context.Context,
	restaurant *Restaurant,
) error {

	if restaurant.ID == "" {
		restaurant.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO restaurants (id, owner_id, name)
		VALUES ($1, $2, $3)
	`, restaurant.ID, restaurant.OwnerID, restaurant.Name)

	return err
}

func (r *PostgresRepository) GetByID(
	ctx context.Context,
	id string,
) (*Restaurant, error) {
	return r.scanOne(ctx, `
		SELECT id, owner_id, name, pos_system, pos_integration_data,
		       created_at, updated_at
		FROM restaurants
		WHERE id = $1
	`, id)
}

func (r *PostgresRepository) GetByOwner(
	ctx context.Context,
	ownerID string,
) (*Restaurant, error) {
	return r.scanOne(ctx, `
		SELECT id, owner_id, name, pos_system, pos_integration_data,
		       created_at, updated_at
		FROM restaurants
		WHERE owner_id = $1
		ORDER BY created_at ASC
		LIMIT 1
	`, ownerID)
}

func (r *PostgresRepository) scanOne(
	ctx context.Context,
	query string,
	arg any,
) (*Restaurant, error) {

	var (
		rest    Restaurant
		rawData []byte
	)

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&rest.ID,
		&rest.OwnerID,
		&rest.Name,
		&rest.POSSystem,
		&rawData,
		&rest.CreatedAt,
		&rest.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.NotFound("restaurant not found")
		}
		return nil, err
	}

	if len(rawData) > 0 {
		if err := json.Unmarshal(rawData, &rest.POSIntegrationData); err != nil {
			return nil, err
		}
	}

	return &rest, nil
}

func (r *PostgresRepository) SavePOSCredentials(
	ctx context.Context,
	restaurantID string,
	posSystem string,
	credentials map[string]string,
) error {

	data, err := json.Marshal(credentials)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET pos_system = $1,
		    pos_integration_data = $2,
		    updated_at = now()
		WHERE id = $3
	`, posSystem, data, restaurantID)

	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return core.NotFound("restaurant not found")
	}

	return nil
}
