package recipe

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

const lineColumns = `
	ri.id, ri.menu_item_id, ri.ingredient_id,
	il.name, il.category,
	ri.quantity, ri.unit, ri.prep_loss_factor,
	ri.created_at, ri.updated_at
`

func scanLine(row pgx.Row) (*Ingredient, error) {
	var line Ingredient
	err := row.Scan(
		&line.ID,
		&line.MenuItemID,
		&line.IngredientID,
		&line.IngredientName,
		&line.IngredientCategory,
		&line.Quantity,
		&line.Unit,
		&line.PrepLossFactor,
		&line.CreatedAt,
		&line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.NotFound("recipe ingredient not found")
		}
		return nil, err
	}
	return &line, nil
}

func (r *PostgresRepository) ListByMenuItem(
	ctx context.Context,
	menuItemID string,
) ([]Ingredient, error) {

	rows, err := r.db.Query(ctx, `
		SELECT `+lineColumns+`
		FROM recipe_ingredients ri
		JOIN ingredient_library il ON il.id = ri.ingredient_id
		WHERE ri.menu_item_id = $1
		ORDER BY ri.created_at ASC
	`, menuItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []Ingredient{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	return lines, rows.Err()
}

func (r *PostgresRepository) GetLine(
	ctx context.Context,
	lineID string,
) (*Ingredient, error) {
	return scanLine(r.db.QueryRow(ctx, `
		SELECT `+lineColumns+`
		FROM recipe_ingredients ri
		JOIN ingredient_library il ON il.id = ri.ingredient_id
		WHERE ri.id = $1
	`, lineID))
}

func (r *PostgresRepository) Replace(
	ctx context.Context,
	menuItemID string,
	lines []Ingredient,
) ([]Ingredient, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM recipe_ingredients WHERE menu_item_id = $1
	`, menuItemID); err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].ID = uuid.New().String()
		lines[i].MenuItemID = menuItemID

		if _, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients
				(id, menu_item_id, ingredient_id, quantity, unit, prep_loss_factor)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, lines[i].ID, menuItemID, lines[i].IngredientID,
			lines[i].Quantity, lines[i].Unit, lines[i].PrepLossFactor,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.ListByMenuItem(ctx, menuItemID)
}

func (r *PostgresRepository) Add(
	ctx context.Context,
	line *Ingredient,
) error {

	if line.ID == "" {
		line.ID = uuid.New().String()
	}

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM recipe_ingredients
			WHERE menu_item_id = $1 AND ingredient_id = $2
		)
	`, line.MenuItemID, line.IngredientID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return core.Conflict("ingredient already exists in this recipe")
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO recipe_ingredients
			(id, menu_item_id, ingredient_id, quantity, unit, prep_loss_factor)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, line.ID, line.MenuItemID, line.IngredientID,
		line.Quantity, line.Unit, line.PrepLossFactor)

	return err
}

func (r *PostgresRepository) UpdateLine(
	ctx context.Context,
	lineID string,
	update LineUpdate,
) (*Ingredient, error) {

	sets := []string{"updated_at = now()"}
	args := []any{}

	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if update.Quantity != nil {
		add("quantity", *update.Quantity)
	}
	if update.Unit != nil {
		add("unit", *update.Unit)
	}
	if update.PrepLossFactor != nil {
		add("prep_loss_factor", *update.PrepLossFactor)
	}

	args = append(args, lineID)
	query := fmt.Sprintf(`
		UPDATE recipe_ingredients SET %s WHERE id = $%d
	`, strings.Join(sets, ", "), len(args))

	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, core.NotFound("recipe ingredient not found")
	}

	return r.GetLine(ctx, lineID)
}

func (r *PostgresRepository) RemoveLine(
	ctx context.Context,
	lineID string,
) error {

	_, err := r.db.Exec(ctx, `
		DELETE FROM recipe_ingredients WHERE id = $1
	`, lineID)

	return err
}
