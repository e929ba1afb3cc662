package regulatory

// HEMBracket is one Household Expenditure Measure income band. Combined
// gross annual income from Min (inclusive) up to Max (exclusive, zero means
// unbounded) maps to monthly baselines in cents.
type HEMBracket struct {
	Min          int64
	Max          int64
	Single       int64
	Couple       int64
	PerDependent int64
}

// Contains reports whether the bracket covers the given annual income.
func (b HEMBracket) Contains(incomeCents int64) bool {
	return incomeCents >= b.Min && (b.Max == 0 || incomeCents < b.Max)
}

// PLACEHOLDER DATA. The Melbourne Institute HEM tables are licensed; these
// bands are approximations for modelling only and must not be presented as
// the authoritative measure.
var hemBrackets = []HEMBracket{
	{Min: 0, Max: 2500000, Single: 140000, Couple: 230000, PerDependent: 40000},
	{Min: 2500000, Max: 5000000, Single: 160000, Couple: 250000, PerDependent: 45000},
	{Min: 5000000, Max: 7500000, Single: 185000, Couple: 280000, PerDependent: 50000},
	{Min: 7500000, Max: 10000000, Single: 205000, Couple: 305000, PerDependent: 55000},
	{Min: 10000000, Max: 15000000, Single: 230000, Couple: 340000, PerDependent: 60000},
	{Min: 15000000, Max: 20000000, Single: 260000, Couple: 380000, PerDependent: 65000},
	{Min: 20000000, Max: 30000000, Single: 295000, Couple: 430000, PerDependent: 70000},
	{Min: 30000000, Max: 0, Single: 340000, Couple: 490000, PerDependent: 75000},
}

// HEMBrackets returns the placeholder HEM bands in ascending order.
func HEMBrackets() []HEMBracket {
	return append([]HEMBracket(nil), hemBrackets...)
}

// HEMBracketFor returns the band covering a combined gross annual income.
// Negative incomes use the lowest band.
func HEMBracketFor(incomeCents int64) HEMBracket {
	for _, b := range hemBrackets {
		if b.Contains(incomeCents) {
			return b
		}
	}
	return hemBrackets[0]
}
