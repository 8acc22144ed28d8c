package valuation

import (
	"time"

	"nivesh/internal/models"
)

// FieldType is the semantic type of a registry field, used by clients to
// render the right input control.
type FieldType string

const (
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
	FieldText   FieldType = "text"
	FieldSelect FieldType = "select"
)

// Field describes one type-specific attribute of an investment kind.
// Names match the Investment model's JSON tags.
type Field struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
}

// kindSpec is the static metadata for one investment kind. The table below
// is the single declarative source of truth for the closed variant set;
// formula selection lives in the engine's switches.
type kindSpec struct {
	quantityLabel   string
	interestBearing bool
	fields          []Field
}

var marketFields = []Field{
	{Name: "quantity", Type: FieldNumber, Required: true},
	{Name: "purchase_price", Type: FieldNumber, Required: true},
	{Name: "current_price", Type: FieldNumber, Required: false},
}

var providentFields = []Field{
	{Name: "current_balance", Type: FieldNumber, Required: true},
	{Name: "interest_rate", Type: FieldNumber, Required: true},
	{Name: "monthly_contribution", Type: FieldNumber, Required: false},
	{Name: "last_updated", Type: FieldDate, Required: true},
}

var certificateFields = []Field{
	{Name: "principal", Type: FieldNumber, Required: true},
	{Name: "maturity_amount", Type: FieldNumber, Required: true},
	{Name: "start_date", Type: FieldDate, Required: true},
	{Name: "maturity_date", Type: FieldDate, Required: true},
}

var payoutSchemeFields = []Field{
	{Name: "principal", Type: FieldNumber, Required: true},
	{Name: "interest_rate", Type: FieldNumber, Required: true},
	{Name: "start_date", Type: FieldDate, Required: true},
	{Name: "maturity_date", Type: FieldDate, Required: false},
}

var bonusPolicyFields = []Field{
	{Name: "sum_assured", Type: FieldNumber, Required: true},
	{Name: "bonus_rate", Type: FieldNumber, Required: false},
	{Name: "final_bonus", Type: FieldNumber, Required: false},
	{Name: "premiums_paid", Type: FieldNumber, Required: false},
	{Name: "start_date", Type: FieldDate, Required: true},
	{Name: "maturity_date", Type: FieldDate, Required: true},
}

var kindSpecs = map[models.InvestmentKind]kindSpec{
	models.KindGold:   {quantityLabel: "grams", fields: marketFields},
	models.KindSilver: {quantityLabel: "grams", fields: marketFields},
	models.KindStock:  {quantityLabel: "shares", fields: marketFields},
	models.KindUSStock: {quantityLabel: "shares", fields: append([]Field{
		{Name: "currency", Type: FieldSelect, Required: false},
	}, marketFields...)},
	models.KindETF:        {quantityLabel: "units", fields: marketFields},
	models.KindMutualFund: {quantityLabel: "units", fields: marketFields},
	models.KindCrypto: {quantityLabel: "coins", fields: append([]Field{
		{Name: "currency", Type: FieldSelect, Required: false},
	}, marketFields...)},
	models.KindSGB: {quantityLabel: "grams", interestBearing: true, fields: append([]Field{
		{Name: "start_date", Type: FieldDate, Required: false},
		{Name: "maturity_date", Type: FieldDate, Required: false},
	}, marketFields...)},

	models.KindFixedDeposit: {interestBearing: true, fields: []Field{
		{Name: "principal", Type: FieldNumber, Required: true},
		{Name: "interest_rate", Type: FieldNumber, Required: true},
		{Name: "compounding", Type: FieldSelect, Required: true},
		{Name: "start_date", Type: FieldDate, Required: true},
		{Name: "maturity_date", Type: FieldDate, Required: false},
	}},
	models.KindRecurringDeposit: {interestBearing: true, fields: []Field{
		{Name: "monthly_deposit", Type: FieldNumber, Required: true},
		{Name: "interest_rate", Type: FieldNumber, Required: true},
		{Name: "tenure_months", Type: FieldNumber, Required: true},
		{Name: "start_date", Type: FieldDate, Required: true},
	}},
	models.KindKVP:           {interestBearing: true, fields: certificateFields},
	models.KindNSC:           {interestBearing: true, fields: certificateFields},
	models.KindSCSS:          {interestBearing: true, fields: payoutSchemeFields},
	models.KindPostOfficeMIS: {interestBearing: true, fields: payoutSchemeFields},

	models.KindEPF: {interestBearing: true, fields: providentFields},
	models.KindPPF: {interestBearing: true, fields: providentFields},
	models.KindNPS: {interestBearing: true, fields: providentFields},
	models.KindSSY: {interestBearing: true, fields: providentFields},

	models.KindInsuranceEndowment: {fields: bonusPolicyFields},
	models.KindInsuranceMoneyback: {fields: bonusPolicyFields},
	models.KindInsuranceTerm: {fields: []Field{
		{Name: "coverage_amount", Type: FieldNumber, Required: true},
		{Name: "premiums_paid", Type: FieldNumber, Required: false},
		{Name: "start_date", Type: FieldDate, Required: false},
		{Name: "maturity_date", Type: FieldDate, Required: false},
	}},

	models.KindBond: {interestBearing: true, fields: []Field{
		{Name: "face_value", Type: FieldNumber, Required: true},
		{Name: "interest_rate", Type: FieldNumber, Required: false},
		{Name: "market_value", Type: FieldNumber, Required: false},
		{Name: "start_date", Type: FieldDate, Required: false},
		{Name: "maturity_date", Type: FieldDate, Required: false},
	}},
	models.KindRealEstate: {fields: []Field{
		{Name: "principal", Type: FieldNumber, Required: true},
		{Name: "market_value", Type: FieldNumber, Required: false},
	}},
	models.KindCash: {fields: []Field{
		{Name: "principal", Type: FieldNumber, Required: true},
	}},
}

// kindOrder fixes the display order of the closed kind set.
var kindOrder = []models.InvestmentKind{
	models.KindGold, models.KindSilver, models.KindStock, models.KindUSStock,
	models.KindETF, models.KindMutualFund, models.KindCrypto, models.KindSGB,
	models.KindFixedDeposit, models.KindRecurringDeposit,
	models.KindKVP, models.KindNSC, models.KindSCSS, models.KindPostOfficeMIS,
	models.KindEPF, models.KindPPF, models.KindNPS, models.KindSSY,
	models.KindInsuranceEndowment, models.KindInsuranceMoneyback,
	models.KindInsuranceTerm,
	models.KindBond, models.KindRealEstate, models.KindCash,
}

// Kinds returns all supported investment kinds in display order.
func Kinds() []models.InvestmentKind {
	out := make([]models.InvestmentKind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// KnownKind reports whether kind is one of the supported variants.
func KnownKind(kind models.InvestmentKind) bool {
	_, ok := kindSpecs[kind]
	return ok
}

// Schema returns the field metadata for a kind, or nil for unknown kinds.
func Schema(kind models.InvestmentKind) []Field {
	spec, ok := kindSpecs[kind]
	if !ok {
		return nil
	}
	out := make([]Field, len(spec.fields))
	copy(out, spec.fields)
	return out
}

// QuantityLabel returns the unit label for quantity-priced kinds
// ("grams", "shares", ...), empty for everything else.
func QuantityLabel(kind models.InvestmentKind) string {
	return kindSpecs[kind].quantityLabel
}

// InterestBearing reports whether the kind participates in time-windowed
// interest attribution.
func InterestBearing(kind models.InvestmentKind) bool {
	return kindSpecs[kind].interestBearing
}

// Summary is the registry's per-instrument digest.
type Summary struct {
	QuantityLabel string  `json:"quantity_label,omitempty"`
	Invested      float64 `json:"invested"`
	Current       float64 `json:"current"`
	Returns       float64 `json:"returns"`
}

// Summarize produces the digest for a single instrument. Unknown kinds
// yield a zero-valued summary.
func Summarize(inv models.Investment, fx Rates, now time.Time) Summary {
	invested := InvestedAmount(inv, fx, now)
	current := CurrentValue(inv, fx, now)
	return Summary{
		QuantityLabel: QuantityLabel(inv.Kind),
		Invested:      invested,
		Current:       current,
		Returns:       current - invested,
	}
}
