package recipe

import (
	"context"

	"github.com/THuebbe/pantrypro/internal/core"
	"github.com/THuebbe/pantrypro/internal/inventory"
	"github.com/THuebbe/pantrypro/internal/units"

	"github.com/shopspring/decimal"
)

// StockReader is the inventory surface costing needs: the single stock
// record for one ingredient at one restaurant, or core.NotFound.
type StockReader interface {
	GetByIngredient(ctx context.Context, restaurantID, ingredientID string) (*inventory.Record, error)
}

// MenuReader lets the service confirm a menu item belongs to the caller's
// restaurant without depending on the menu package.
type MenuReader interface {
	Exists(ctx context.Context, id string, restaurantID string) (bool, error)
}

// IngredientReader resolves library ingredients when recipe lines are
// written.
type IngredientReader interface {
	GetIngredient(ctx context.Context, id string) (*inventory.Ingredient, error)
}

type Service struct {
	repo        Repository
	stock       StockReader
	menuItems   MenuReader
	ingredients IngredientReader
}

func NewService(
	repo Repository,
	stock StockReader,
	menuItems MenuReader,
	ingredients IngredientReader,
) *Service {
	return &Service{
		repo:        repo,
		stock:       stock,
		menuItems:   menuItems,
		ingredients: ingredients,
	}
}

// --------------------------------------------------
// Recipe reads
// --------------------------------------------------
func (s *Service) GetRecipe(
	ctx context.Context,
	menuItemID string,
) (*Detail, error) {

	lines, err := s.repo.ListByMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	responses := make([]IngredientResponse, 0, len(lines))
	for _, line := range lines {
		responses = append(responses, line.toResponse())
	}

	return &Detail{
		MenuItemID:      menuItemID,
		Ingredients:     responses,
		IngredientCount: len(responses),
	}, nil
}

// --------------------------------------------------
// Recipe writes
// --------------------------------------------------

// NewLine is caller input for one recipe line.
type NewLine struct {
	IngredientID   string
	Quantity       float64
	Unit           string
	PrepLossFactor float64
}

func (s *Service) validateLine(line NewLine) error {
	if line.IngredientID == "" {
		return core.Validation("ingredient id is required")
	}
	if line.Quantity <= 0 {
		return core.Validation("quantity must be greater than 0")
	}
	if line.Unit == "" {
		return core.Validation("unit is required")
	}
	if !units.Unit(line.Unit).IsValid() {
		return core.Validationf("invalid unit: %s", line.Unit)
	}
	if line.PrepLossFactor < 0 || line.PrepLossFactor > 100 {
		return core.Validation("prep loss factor must be between 0 and 100")
	}
	return nil
}

func (s *Service) toIngredient(
	ctx context.Context,
	menuItemID string,
	line NewLine,
) (*Ingredient, error) {

	ing, err := s.ingredients.GetIngredient(ctx, line.IngredientID)
	if err != nil {
		return nil, err
	}

	return &Ingredient{
		MenuItemID:         menuItemID,
		IngredientID:       line.IngredientID,
		IngredientName:     ing.Name,
		IngredientCategory: ing.Category,
		Quantity:           decimal.NewFromFloat(line.Quantity),
		Unit:               units.Unit(line.Unit),
		PrepLossFactor:     decimal.NewFromFloat(line.PrepLossFactor),
	}, nil
}

// SaveRecipe replaces the entire recipe for a menu item.
func (s *Service) SaveRecipe(
	ctx context.Context,
	menuItemID string,
	restaurantID string,
	newLines []NewLine,
) (*Detail, error) {

	if len(newLines) == 0 {
		return nil, core.Validation("at least one ingredient is required")
	}

	if err := s.requireMenuItem(ctx, menuItemID, restaurantID); err != nil {
		return nil, err
	}

	lines := make([]Ingredient, 0, len(newLines))
	for _, nl := range newLines {
		if err := s.validateLine(nl); err != nil {
			return nil, err
		}
		line, err := s.toIngredient(ctx, menuItemID, nl)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	saved, err := s.repo.Replace(ctx, menuItemID, lines)
	if err != nil {
		return nil, err
	}

	responses := make([]IngredientResponse, 0, len(saved))
	for _, line := range saved {
		responses = append(responses, line.toResponse())
	}

	return &Detail{
		MenuItemID:      menuItemID,
		Ingredients:     responses,
		IngredientCount: len(responses),
	}, nil
}

func (s *Service) AddIngredient(
	ctx context.Context,
	menuItemID string,
	restaurantID string,
	newLine NewLine,
) (*IngredientResponse, error) {

	if err := s.requireMenuItem(ctx, menuItemID, restaurantID); err != nil {
		return nil, err
	}
	if err := s.validateLine(newLine); err != nil {
		return nil, err
	}

	line, err := s.toIngredient(ctx, menuItemID, newLine)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Add(ctx, line); err != nil {
		return nil, err
	}

	resp := line.toResponse()
	return &resp, nil
}

func (s *Service) UpdateIngredient(
	ctx context.Context,
	lineID string,
	update LineUpdate,
) (*IngredientResponse, error) {

	if update.Quantity != nil && *update.Quantity <= 0 {
		return nil, core.Validation("quantity must be greater than 0")
	}
	if update.Unit != nil && !units.Unit(*update.Unit).IsValid() {
		return nil, core.Validationf("invalid unit: %s", *update.Unit)
	}
	if update.PrepLossFactor != nil &&
		(*update.PrepLossFactor < 0 || *update.PrepLossFactor > 100) {
		return nil, core.Validation("prep loss factor must be between 0 and 100")
	}

	line, err := s.repo.UpdateLine(ctx, lineID, update)
	if err != nil {
		return nil, err
	}

	resp := line.toResponse()
	return &resp, nil
}

func (s *Service) RemoveIngredient(
	ctx context.Context,
	lineID string,
) error {
	return s.repo.RemoveLine(ctx, lineID)
}

// --------------------------------------------------
// Costing
// --------------------------------------------------

// ComputeRecipeCost joins the menu item's recipe to current stock and
// runs the costing math. Stock lookups are independent; each missing
// record becomes a warning, never a failure.
func (s *Service) ComputeRecipeCost(
	ctx context.Context,
	menuItemID string,
	restaurantID string,
) (*CostBreakdown, error) {

	if err := s.requireMenuItem(ctx, menuItemID, restaurantID); err != nil {
		return nil, err
	}

	lines, err := s.repo.ListByMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	stock, err := s.stockLevels(ctx, restaurantID, lines)
	if err != nil {
		return nil, err
	}

	breakdown := ComputeCost(lines, stock)
	return &breakdown, nil
}

func (s *Service) stockLevels(
	ctx context.Context,
	restaurantID string,
	lines []Ingredient,
) (map[string]StockLevel, error) {

	stock := make(map[string]StockLevel, len(lines))
	for _, line := range lines {
		rec, err := s.stock.GetByIngredient(ctx, restaurantID, line.IngredientID)
		if err != nil {
			if core.KindOf(err) == core.KindNotFound {
				continue
			}
			return nil, err
		}
		stock[line.IngredientID] = StockLevel{
			Quantity:    rec.Quantity,
			CostPerUnit: rec.CostPerUnit,
		}
	}

	return stock, nil
}

// Validation is the result of checking a recipe against inventory.
type Validation struct {
	IsValid    bool     `json:"is_valid"`
	HasRecipe  bool     `json:"has_recipe"`
	AllInStock bool     `json:"all_in_stock"`
	Errors     []string `json:"errors"`
	Warnings   []string `json:"warnings"`
}

// ValidateRecipe checks that every recipe ingredient has an inventory
// record and that each is in stock. Missing records are errors here,
// unlike costing where they only warn.
func (s *Service) ValidateRecipe(
	ctx context.Context,
	menuItemID string,
	restaurantID string,
) (*Validation, error) {

	if err := s.requireMenuItem(ctx, menuItemID, restaurantID); err != nil {
		return nil, err
	}

	lines, err := s.repo.ListByMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return &Validation{
			IsValid:   false,
			HasRecipe: false,
			Errors:    []string{"No recipe defined"},
			Warnings:  []string{},
		}, nil
	}

	stock, err := s.stockLevels(ctx, restaurantID, lines)
	if err != nil {
		return nil, err
	}

	result := &Validation{
		IsValid:    true,
		HasRecipe:  true,
		AllInStock: true,
		Errors:     []string{},
		Warnings:   []string{},
	}

	for _, line := range lines {
		level, found := stock[line.IngredientID]
		if !found {
			result.Errors = append(result.Errors,
				line.IngredientName+" does not exist in inventory")
			result.IsValid = false
			continue
		}
		if level.Quantity.IsZero() {
			result.Warnings = append(result.Warnings,
				line.IngredientName+" is out of stock")
			result.AllInStock = false
		}
	}

	return result, nil
}

// CalculateDeductions reports how much of each ingredient `sold` servings
// of a menu item consume.
func (s *Service) CalculateDeductions(
	ctx context.Context,
	menuItemID string,
	sold float64,
) ([]Deduction, error) {

	if sold <= 0 {
		return nil, core.Validation("quantity must be greater than 0")
	}

	lines, err := s.repo.ListByMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, core.NotFound("no recipe found for this menu item")
	}

	return Deductions(lines, decimal.NewFromFloat(sold)), nil
}

func (s *Service) requireMenuItem(
	ctx context.Context,
	menuItemID string,
	restaurantID string,
) error {

	exists, err := s.menuItems.Exists(ctx, menuItemID, restaurantID)
	if err != nil {
		return err
	}
	if !exists {
		return core.NotFound("menu item not found")
	}
	return nil
}
