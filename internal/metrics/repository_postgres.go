package metrics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) count(
	ctx context.Context,
	query string,
	args ...any,
) (int, error) {

	var n int
	err := r.db.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

// --------------------------------------------------
// Inventory
// --------------------------------------------------

func (r *PostgresRepository) StockRows(
	ctx context.Context,
	restaurantID string,
) ([]StockRow, error) {

	rows, err := r.db.Query(ctx, `
		SELECT quantity, minimum_quantity
		FROM restaurant_inventory
		WHERE restaurant_id = $1
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StockRow{}
	for rows.Next() {
		var row StockRow
		if err := rows.Scan(&row.Quantity, &row.MinimumQuantity); err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) ExpiringCount(
	ctx context.Context,
	restaurantID string,
	from, to time.Time,
) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*)
		FROM restaurant_inventory
		WHERE restaurant_id = $1
		  AND expiration_date >= $2
		  AND expiration_date <= $3
	`, restaurantID, from, to)
}

func (r *PostgresRepository) InventoryIngredientNames(
	ctx context.Context,
	restaurantID string,
	limit int,
) ([]string, error) {
	return r.queryStrings(ctx, `
		SELECT il.name
		FROM restaurant_inventory ri
		JOIN ingredient_library il ON il.id = ri.ingredient_id
		WHERE ri.restaurant_id = $1
		LIMIT $2
	`, restaurantID, limit)
}

// --------------------------------------------------
// Purchase orders
// --------------------------------------------------

func (r *PostgresRepository) OpenOrdersCount(
	ctx context.Context,
	restaurantID string,
) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*)
		FROM purchase_orders
		WHERE restaurant_id = $1 AND status IN ('draft', 'ordered')
	`, restaurantID)
}

func (r *PostgresRepository) PendingOrderTotals(
	ctx context.Context,
	restaurantID string,
) ([]decimal.Decimal, error) {

	rows, err := r.db.Query(ctx, `
		SELECT total
		FROM purchase_orders
		WHERE restaurant_id = $1 AND status IN ('draft', 'ordered')
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := []decimal.Decimal{}
	for rows.Next() {
		var total decimal.Decimal
		if err := rows.Scan(&total); err != nil {
			return nil, err
		}
		totals = append(totals, total)
	}

	return totals, rows.Err()
}

func (r *PostgresRepository) OverdueDeliveriesCount(
	ctx context.Context,
	restaurantID string,
	asOf time.Time,
) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*)
		FROM purchase_orders
		WHERE restaurant_id = $1
		  AND status = 'ordered'
		  AND expected_delivery_date < $2
	`, restaurantID, asOf)
}

func (r *PostgresRepository) SupplierNamesSince(
	ctx context.Context,
	restaurantID string,
	since time.Time,
) ([]string, error) {
	return r.queryStrings(ctx, `
		SELECT supplier_name
		FROM purchase_orders
		WHERE restaurant_id = $1 AND order_date >= $2
	`, restaurantID, since)
}

func (r *PostgresRepository) CompletedOrderSpans(
	ctx context.Context,
	restaurantID string,
	limit int,
) ([]OrderSpan, error) {

	rows, err := r.db.Query(ctx, `
		SELECT order_date, actual_delivery_date
		FROM purchase_orders
		WHERE restaurant_id = $1 AND actual_delivery_date IS NOT NULL
		ORDER BY actual_delivery_date DESC
		LIMIT $2
	`, restaurantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spans := []OrderSpan{}
	for rows.Next() {
		var span OrderSpan
		if err := rows.Scan(&span.Ordered, &span.Delivered); err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}

	return spans, rows.Err()
}

// --------------------------------------------------
// Receiving
// --------------------------------------------------

func (r *PostgresRepository) PendingShipmentsCount(
	ctx context.Context,
	restaurantID string,
) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*)
		FROM purchase_orders
		WHERE restaurant_id = $1 AND status = 'ordered'
	`, restaurantID)
}

func (r *PostgresRepository) ReceivedOnCount(
	ctx context.Context,
	restaurantID string,
	day time.Time,
) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*)
		FROM purchase_orders
		WHERE restaurant_id = $1 AND actual_delivery_date = $2
	`, restaurantID, day)
}

func (r *PostgresRepository) DeliveryRows(
	ctx context.Context,
	restaurantID string,
	limit int,
) ([]DeliveryRow, error) {

	rows, err := r.db.Query(ctx, `
		SELECT expected_delivery_date, actual_delivery_date
		FROM purchase_orders
		WHERE restaurant_id = $1
		  AND actual_delivery_date IS NOT NULL
		  AND expected_delivery_date IS NOT NULL
		ORDER BY actual_delivery_date DESC
		LIMIT $2
	`, restaurantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DeliveryRow{}
	for rows.Next() {
		var row DeliveryRow
		if err := rows.Scan(&row.Expected, &row.Actual); err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

// --------------------------------------------------
// Menu items
// --------------------------------------------------

func (r *PostgresRepository) ActiveMenuItemCount(
	ctx context.Context,
	restaurantID string,
) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*)
		FROM menu_items
		WHERE restaurant_id = $1 AND is_active = TRUE
	`, restaurantID)
}

func (r *PostgresRepository) CostedMenuItems(
	ctx context.Context,
	restaurantID string,
) ([]CostedMenuItem, error) {

	rows, err := r.db.Query(ctx, `
		SELECT mi.id, mi.name, mi.price,
		       ri.ingredient_id, ri.quantity, ri.unit, ri.prep_loss_factor
		FROM menu_items mi
		LEFT JOIN recipe_ingredients ri ON ri.menu_item_id = mi.id
		WHERE mi.restaurant_id = $1 AND mi.is_active = TRUE
		ORDER BY mi.name ASC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := map[string]*CostedMenuItem{}
	order := []string{}

	for rows.Next() {
		var (
			id, name       string
			price          decimal.Decimal
			ingredientID   *string
			quantity       *decimal.Decimal
			unit           *string
			prepLossFactor *decimal.Decimal
		)
		err := rows.Scan(&id, &name, &price,
			&ingredientID, &quantity, &unit, &prepLossFactor)
		if err != nil {
			return nil, err
		}

		item, ok := byID[id]
		if !ok {
			item = &CostedMenuItem{ID: id, Name: name, Price: price}
			byID[id] = item
			order = append(order, id)
		}

		if ingredientID != nil {
			item.Lines = append(item.Lines, RecipeLine{
				IngredientID:   *ingredientID,
				Quantity:       *quantity,
				Unit:           *unit,
				PrepLossFactor: *prepLossFactor,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items := make([]CostedMenuItem, 0, len(order))
	for _, id := range order {
		items = append(items, *byID[id])
	}

	return items, nil
}

func (r *PostgresRepository) IngredientCosts(
	ctx context.Context,
	restaurantID string,
) (map[string]decimal.Decimal, error) {

	rows, err := r.db.Query(ctx, `
		SELECT ingredient_id, cost_per_unit
		FROM restaurant_inventory
		WHERE restaurant_id = $1
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	costs := map[string]decimal.Decimal{}
	for rows.Next() {
		var (
			id   string
			cost decimal.Decimal
		)
		if err := rows.Scan(&id, &cost); err != nil {
			return nil, err
		}
		costs[id] = cost
	}

	return costs, rows.Err()
}

// --------------------------------------------------
// Waste
// --------------------------------------------------

func (r *PostgresRepository) WasteRows(
	ctx context.Context,
	restaurantID string,
	since time.Time,
) ([]WasteRow, error) {

	rows, err := r.db.Query(ctx, `
		SELECT cost_value, reason
		FROM waste_log
		WHERE restaurant_id = $1
		  AND category = 'waste'
		  AND logged_at >= $2
	`, restaurantID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []WasteRow{}
	for rows.Next() {
		var row WasteRow
		if err := rows.Scan(&row.CostValue, &row.Reason); err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) queryStrings(
	ctx context.Context,
	query string,
	args ...any,
) ([]string, error) {

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}
