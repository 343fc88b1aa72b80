package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	usersSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'OWNER',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, usersSQL); err != nil {
		return err
	}

	// -------------------------------
	// RESTAURANTS
	// -------------------------------
	restaurantsSQL := `
		CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			name VARCHAR(255) NOT NULL,
			pos_system VARCHAR(50),
			pos_integration_data JSONB,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, restaurantsSQL); err != nil {
		return err
	}

	// -------------------------------
	// INGREDIENT CATALOG
	// -------------------------------
	ingredientsSQL := `
		CREATE TABLE IF NOT EXISTS ingredient_library (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT 'uncategorized',
			unit VARCHAR(20) NOT NULL
		)
	`
	if _, err := db.Exec(ctx, ingredientsSQL); err != nil {
		return err
	}

	// -------------------------------
	// PER-RESTAURANT INVENTORY
	// -------------------------------
	inventorySQL := `
		CREATE TABLE IF NOT EXISTS restaurant_inventory (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			ingredient_id UUID NOT NULL REFERENCES ingredient_library(id),
			quantity NUMERIC(12,4) NOT NULL DEFAULT 0,
			minimum_quantity NUMERIC(12,4) NOT NULL DEFAULT 0,
			cost_per_unit NUMERIC(12,4) NOT NULL DEFAULT 0,
			unit VARCHAR(20) NOT NULL,
			expiration_date DATE,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (restaurant_id, ingredient_id)
		)
	`
	if _, err := db.Exec(ctx, inventorySQL); err != nil {
		return err
	}

	// -------------------------------
	// MENU ITEMS
	// -------------------------------
	menuItemsSQL := `
		CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL,
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			pos_menu_item_id VARCHAR(255),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (restaurant_id, pos_menu_item_id)
		)
	`
	if _, err := db.Exec(ctx, menuItemsSQL); err != nil {
		return err
	}

	// -------------------------------
	// RECIPE INGREDIENTS
	// -------------------------------
	recipeSQL := `
		CREATE TABLE IF NOT EXISTS recipe_ingredients (
			id UUID PRIMARY KEY,
			menu_item_id UUID NOT NULL REFERENCES menu_items(id),
			ingredient_id UUID NOT NULL REFERENCES ingredient_library(id),
			quantity NUMERIC(12,4) NOT NULL,
			unit VARCHAR(20) NOT NULL,
			prep_loss_factor NUMERIC(5,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (menu_item_id, ingredient_id)
		)
	`
	if _, err := db.Exec(ctx, recipeSQL); err != nil {
		return err
	}

	// -------------------------------
	// PURCHASE ORDERS
	// -------------------------------
	ordersSQL := `
		CREATE TABLE IF NOT EXISTS purchase_orders (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			supplier_name VARCHAR(255) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'draft',
			total NUMERIC(12,2) NOT NULL DEFAULT 0,
			order_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			expected_delivery_date DATE,
			actual_delivery_date DATE
		)
	`
	if _, err := db.Exec(ctx, ordersSQL); err != nil {
		return err
	}

	// -------------------------------
	// WASTE LOG
	// -------------------------------
	wasteSQL := `
		CREATE TABLE IF NOT EXISTS waste_log (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id),
			ingredient_id UUID REFERENCES ingredient_library(id),
			category VARCHAR(50) NOT NULL DEFAULT 'waste',
			reason VARCHAR(255) NOT NULL,
			cost_value NUMERIC(12,2) NOT NULL DEFAULT 0,
			logged_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, wasteSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
