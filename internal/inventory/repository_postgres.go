package inventory

import (
	"context"
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

// --------------------------------------------------
// INGREDIENT LIBRARY
// --------------------------------------------------

func (r *PostgresRepository) ListIngredients(
	ctx context.Context,
) ([]Ingredient, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, name, category, unit
		FROM ingredient_library
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []Ingredient{}
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Category, &ing.Unit); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}

func (r *PostgresRepository) GetIngredient(
	ctx context.Context,
	id string,
) (*Ingredient, error) {

	var ing Ingredient
	err := r.db.QueryRow(ctx, `
		SELECT id, name, category, unit
		FROM ingredient_library
		WHERE id = $1
	`, id).Scan(&ing.ID, &ing.Name, &ing.Category, &ing.Unit)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.NotFound("ingredient not found")
		}
		return nil, err
	}

	return &ing, nil
}

func (r *PostgresRepository) CreateIngredient(
	ctx context.Context,
	ing *Ingredient,
) error {

	if ing.ID == "" {
		ing.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO ingredient_library (id, name, category, unit)
		VALUES ($1, $2, $3, $4)
	`, ing.ID, ing.Name, ing.Category, ing.Unit)

	return err
}

// --------------------------------------------------
// RESTAURANT INVENTORY
// --------------------------------------------------

func (r *PostgresRepository) ListByRestaurant(
	ctx context.Context,
	restaurantID string,
) ([]Record, error) {

	rows, err := r.db.Query(ctx, `
		SELECT ri.id, ri.restaurant_id, ri.ingredient_id,
		       il.name, il.category,
		       ri.quantity, ri.minimum_quantity, ri.cost_per_unit,
		       ri.unit, ri.expiration_date, ri.updated_at
		FROM restaurant_inventory ri
		JOIN ingredient_library il ON il.id = ri.ingredient_id
		WHERE ri.restaurant_id = $1
		ORDER BY il.name ASC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		err := rows.Scan(
			&rec.ID,
			&rec.RestaurantID,
			&rec.IngredientID,
			&rec.IngredientName,
			&rec.Category,
			&rec.Quantity,
			&rec.MinimumQuantity,
			&rec.CostPerUnit,
			&rec.Unit,
			&rec.ExpirationDate,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *PostgresRepository) GetByIngredient(
	ctx context.Context,
	restaurantID string,
	ingredientID string,
) (*Record, error) {

	var rec Record
	err := r.db.QueryRow(ctx, `
		SELECT ri.id, ri.restaurant_id, ri.ingredient_id,
		       il.name, il.category,
		       ri.quantity, ri.minimum_quantity, ri.cost_per_unit,
		       ri.unit, ri.expiration_date, ri.updated_at
		FROM restaurant_inventory ri
		JOIN ingredient_library il ON il.id = ri.ingredient_id
		WHERE ri.restaurant_id = $1 AND ri.ingredient_id = $2
	`, restaurantID, ingredientID).Scan(
		&rec.ID,
		&rec.RestaurantID,
		&rec.IngredientID,
		&rec.IngredientName,
		&rec.Category,
		&rec.Quantity,
		&rec.MinimumQuantity,
		&rec.CostPerUnit,
		&rec.Unit,
		&rec.ExpirationDate,
		&rec.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.NotFound("inventory record not found")
		}
		return nil, err
	}

	return &rec, nil
}

func (r *PostgresRepository) Upsert(
	ctx context.Context,
	rec *Record,
) error {

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO restaurant_inventory
			(id, restaurant_id, ingredient_id, quantity,
			 minimum_quantity, cost_per_unit, unit, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (restaurant_id, ingredient_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			minimum_quantity = EXCLUDED.minimum_quantity,
			cost_per_unit = EXCLUDED.cost_per_unit,
			unit = EXCLUDED.unit,
			expiration_date = EXCLUDED.expiration_date,
			updated_at = now()
	`, rec.ID, rec.RestaurantID, rec.IngredientID, rec.Quantity,
		rec.MinimumQuantity, rec.CostPerUnit, rec.Unit, rec.ExpirationDate)

	return err
}
