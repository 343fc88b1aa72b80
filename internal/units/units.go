package units

// Unit is the fixed set of recipe and inventory units.
type Unit string

const (
	// weight
	Lbs  Unit = "lbs"
	Oz   Unit = "oz"
	Gram Unit = "g"
	Kg   Unit = "kg"

	// volume
	Gallon Unit = "gal"
	Quart  Unit = "qt"
	Pint   Unit = "pt"
	Cup    Unit = "cup"
	FlOz   Unit = "floz"
	Liter  Unit = "l"
	Ml     Unit = "ml"

	// count
	Each  Unit = "each"
	Dozen Unit = "dozen"
	Case  Unit = "case"
)

var valid = map[Unit]bool{
	Lbs: true, Oz: true, Gram: true, Kg: true,
	Gallon: true, Quart: true, Pint: true, Cup: true,
	FlOz: true, Liter: true, Ml: true,
	Each: true, Dozen: true, Case: true,
}

func (u Unit) IsValid() bool {
	return valid[u]
}

// OuncesPerPound is the fixed weight conversion factor.
const OuncesPerPound = 16.0

// OuncesToPounds converts an oz quantity to the base weight unit.
func OuncesToPounds(qty float64) float64 {
	return qty / OuncesPerPound
}

// ToPounds normalizes a weight quantity to pounds for cross-recipe
// aggregation. Per-recipe costing does NOT call this: it keeps each
// ingredient's native unit and assumes the inventory cost-per-unit is
// expressed in that same unit. Only the menu-items aggregate metric
// combines mixed-unit quantities and needs the conversion.
func ToPounds(qty float64, u Unit) float64 {
	if u == Oz {
		return OuncesToPounds(qty)
	}
	return qty
}
