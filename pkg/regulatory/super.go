package regulatory

import "github.com/iwvelando/serviceability/pkg/datetime"

// SuperCapConfig holds the superannuation caps for one financial year.
// Caps are cents; GuaranteeRate is a plain percentage.
type SuperCapConfig struct {
	ConcessionalCap    int64
	NonConcessionalCap int64
	TransferBalanceCap int64
	GuaranteeRate      float64
}

var superCaps = NewTable(map[string]SuperCapConfig{
	"2021-22": {ConcessionalCap: 2750000, NonConcessionalCap: 11000000, TransferBalanceCap: 170000000, GuaranteeRate: 10.0},
	"2022-23": {ConcessionalCap: 2750000, NonConcessionalCap: 11000000, TransferBalanceCap: 170000000, GuaranteeRate: 10.5},
	"2023-24": {ConcessionalCap: 2750000, NonConcessionalCap: 11000000, TransferBalanceCap: 190000000, GuaranteeRate: 11.0},
	"2024-25": {ConcessionalCap: 3000000, NonConcessionalCap: 12000000, TransferBalanceCap: 190000000, GuaranteeRate: 11.5},
	"2025-26": {ConcessionalCap: 3000000, NonConcessionalCap: 12000000, TransferBalanceCap: 200000000, GuaranteeRate: 12.0},
})

// SuperCaps returns the caps for fy and the year resolved.
func SuperCaps(fy datetime.FinancialYear) (SuperCapConfig, datetime.FinancialYear) {
	return superCaps.Resolve(fy)
}
