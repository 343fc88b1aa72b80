package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const itemColumns = `
	id, restaurant_id, name, category, price,
	pos_menu_item_id, is_active, created_at, updated_at
`

func scanItem(row pgx.Row) (*Item, error) {
	var item Item
	err := row.Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.Category,
		&item.Price,
		&item.POSMenuItemID,
		&item.IsActive,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.NotFound("menu item not found")
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) List(
	ctx context.Context,
	restaurantID string,
	f Filters,
) ([]Item, error) {

	query := "SELECT " + itemColumns + " FROM menu_items WHERE restaurant_id = $1"
	args := []any{restaurantID}

	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	} else {
		query += " AND is_active = TRUE"
	}

	query += " ORDER BY name ASC"

	return r.queryItems(ctx, query, args...)
}

func (r *PostgresRepository) ListAll(
	ctx context.Context,
	restaurantID string,
) ([]Item, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY name ASC
	`, restaurantID)
}

func (r *PostgresRepository) queryItems(
	ctx context.Context,
	query string,
	args ...any,
) ([]Item, error) {

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) GetByID(
	ctx context.Context,
	id string,
) (*Item, error) {
	return scanItem(r.db.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM menu_items
		WHERE id = $1
	`, id))
}

func (r *PostgresRepository) Exists(
	ctx context.Context,
	id string,
	restaurantID string,
) (bool, error) {

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM menu_items
			WHERE id = $1 AND restaurant_id = $2
		)
	`, id, restaurantID).Scan(&exists)

	return exists, err
}

func (r *PostgresRepository) Create(
	ctx context.Context,
	item *Item,
) error {

	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	return scanInto(item, r.db.QueryRow(ctx, `
		INSERT INTO menu_items
			(id, restaurant_id, name, category, price, pos_menu_item_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+itemColumns+`
	`, item.ID, item.RestaurantID, item.Name, item.Category,
		item.Price, item.POSMenuItemID, item.IsActive))
}

func scanInto(item *Item, row pgx.Row) error {
	got, err := scanItem(row)
	if err != nil {
		return err
	}
	*item = *got
	return nil
}

func (r *PostgresRepository) Update(
	ctx context.Context,
	id string,
	update Update,
) (*Item, error) {

	sets := []string{"updated_at = now()"}
	args := []any{}

	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Category != nil {
		add("category", *update.Category)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}
	if update.POSMenuItemID != nil {
		add("pos_menu_item_id", *update.POSMenuItemID)
	}
	if update.IsActive != nil {
		add("is_active", *update.IsActive)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE menu_items
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), len(args), itemColumns)

	return scanItem(r.db.QueryRow(ctx, query, args...))
}

func (r *PostgresRepository) Deactivate(
	ctx context.Context,
	id string,
) (*Item, error) {
	return scanItem(r.db.QueryRow(ctx, `
		UPDATE menu_items
		SET is_active = FALSE, updated_at = now()
		WHERE id = $1
		RETURNING `+itemColumns+`
	`, id))
}

func (r *PostgresRepository) Categories(
	ctx context.Context,
	restaurantID string,
) ([]string, error) {

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT category
		FROM menu_items
		WHERE restaurant_id = $1 AND is_active = TRUE AND category <> ''
		ORDER BY category ASC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}
