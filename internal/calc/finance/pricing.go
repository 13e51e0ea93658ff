package finance

import (
	"strings"

	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/mathx"
	"github.com/shopspring/decimal"
)

// Direction of a percentage change
type Direction string

const (
	Increase  Direction = "increase"
	Decrease  Direction = "decrease"
	Unchanged Direction = "unchanged"
)

// UnitPricePlaces is the precision of a unit price
const UnitPricePlaces = 4

// Units lists the accepted unit price labels
var Units = []string{"item", "lb", "kg", "oz", "g", "L", "ml", "ft", "m"}

// DiscountResult is the outcome of Discount
type DiscountResult struct {
	Price   decimal.Decimal `json:"price" yaml:"price"`
	Percent decimal.Decimal `json:"percent" yaml:"percent"`
	Amount  decimal.Decimal `json:"amount" yaml:"amount"`
	Final   decimal.Decimal `json:"final" yaml:"final"`
	Savings decimal.Decimal `json:"savings" yaml:"savings"`
}

// Discount takes pct percent off price. pct is clamped to [0, 100].
func Discount(price, pct decimal.Decimal) (*DiscountResult, error) {
	if !price.IsPositive() {
		return nil, errors.InvalidInput(errors.ModuleFinance, "Discount", price, "price > 0")
	}
	pct = decimal.Max(decimal.Zero, decimal.Min(pct, mathx.Hundred()))

	amount := mathx.RoundMoney(mathx.Percentage(price, pct))
	return &DiscountResult{
		Price:   price,
		Percent: pct,
		Amount:  amount,
		Final:   price.Sub(amount),
		Savings: amount,
	}, nil
}

// TaxResult is the outcome of SalesTax
type TaxResult struct {
	Price decimal.Decimal `json:"price" yaml:"price"`
	Rate  decimal.Decimal `json:"rate" yaml:"rate"`
	Tax   decimal.Decimal `json:"tax" yaml:"tax"`
	Total decimal.Decimal `json:"total" yaml:"total"`
}

// SalesTax adds pct percent of tax to price. pct has no upper bound.
func SalesTax(price, pct decimal.Decimal) (*TaxResult, error) {
	if !price.IsPositive() {
		return nil, errors.InvalidInput(errors.ModuleFinance, "SalesTax", price, "price > 0")
	}
	if pct.IsNegative() {
		return nil, errors.InvalidInput(errors.ModuleFinance, "SalesTax", pct, "tax rate >= 0")
	}

	tax := mathx.RoundMoney(mathx.CalculateTax(price, pct))
	return &TaxResult{
		Price: price,
		Rate:  pct,
		Tax:   tax,
		Total: price.Add(tax),
	}, nil
}

// ChangeResult is the outcome of PercentageChange
type ChangeResult struct {
	Old       decimal.Decimal `json:"old" yaml:"old"`
	New       decimal.Decimal `json:"new" yaml:"new"`
	Change    decimal.Decimal `json:"change" yaml:"change"`
	Percent   decimal.Decimal `json:"percent" yaml:"percent"`
	Direction Direction       `json:"direction" yaml:"direction"`
}

// Display renders the change as a signed percentage, e.g. "+50.00%"
func (r *ChangeResult) Display() string {
	s := r.Percent.StringFixed(2) + "%"
	if r.Percent.IsPositive() {
		return "+" + s
	}
	return s
}

// PercentageChange computes (new - old) / old · 100
func PercentageChange(oldValue, newValue decimal.Decimal) (*ChangeResult, error) {
	pct, err := mathx.PercentageChange(oldValue, newValue)
	if err != nil {
		return nil, errors.DivisionByZero(errors.ModuleFinance, "PercentageChange", "old value")
	}

	change := newValue.Sub(oldValue)
	dir := Unchanged
	switch change.Sign() {
	case 1:
		dir = Increase
	case -1:
		dir = Decrease
	}
	return &ChangeResult{
		Old:       oldValue,
		New:       newValue,
		Change:    change,
		Percent:   mathx.RoundMoney(pct),
		Direction: dir,
	}, nil
}

// UnitPriceResult is the outcome of UnitPrice
type UnitPriceResult struct {
	Price     decimal.Decimal `json:"price" yaml:"price"`
	Quantity  decimal.Decimal `json:"quantity" yaml:"quantity"`
	Unit      string          `json:"unit" yaml:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price" yaml:"unit_price"`
}

// UnitPrice divides price by quantity. An empty unit means "item".
func UnitPrice(price, quantity decimal.Decimal, unit string) (*UnitPriceResult, error) {
	const op = "UnitPrice"
	if !price.IsPositive() {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, price, "price > 0")
	}
	if quantity.IsZero() {
		return nil, errors.DivisionByZero(errors.ModuleFinance, op, "quantity")
	}
	if quantity.IsNegative() {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, quantity, "quantity > 0")
	}
	u, ok := lookupUnit(unit)
	if !ok {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, unit, strings.Join(Units, ", "))
	}

	return &UnitPriceResult{
		Price:     price,
		Quantity:  quantity,
		Unit:      u,
		UnitPrice: price.Div(quantity).Round(UnitPricePlaces),
	}, nil
}

func lookupUnit(unit string) (string, bool) {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return "item", true
	}
	for _, u := range Units {
		if strings.EqualFold(u, unit) {
			return u, true
		}
	}
	return "", false
}

// TipResult is the outcome of Tip
type TipResult struct {
	Bill      decimal.Decimal `json:"bill" yaml:"bill"`
	Percent   decimal.Decimal `json:"percent" yaml:"percent"`
	People    int             `json:"people" yaml:"people"`
	Tip       decimal.Decimal `json:"tip" yaml:"tip"`
	Total     decimal.Decimal `json:"total" yaml:"total"`
	PerPerson decimal.Decimal `json:"per_person" yaml:"per_person"`
}

// Tip computes the tip on bill and splits the total across people
func Tip(bill, pct decimal.Decimal, people int) (*TipResult, error) {
	const op = "Tip"
	if !bill.IsPositive() {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, bill, "bill > 0")
	}
	if pct.IsNegative() {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, pct, "tip percentage >= 0")
	}
	if people == 0 {
		people = 1
	}
	if people < 0 {
		return nil, errors.InvalidInput(errors.ModuleFinance, op, people, "number of people > 0")
	}

	tip := mathx.RoundMoney(mathx.Percentage(bill, pct))
	total := bill.Add(tip)
	return &TipResult{
		Bill:      bill,
		Percent:   pct,
		People:    people,
		Tip:       tip,
		Total:     total,
		PerPerson: mathx.RoundMoney(total.Div(decimal.NewFromInt(int64(people)))),
	}, nil
}

// PercentOfResult is the outcome of PercentOf
type PercentOfResult struct {
	Percent decimal.Decimal `json:"percent" yaml:"percent"`
	Value   decimal.Decimal `json:"value" yaml:"value"`
	Amount  decimal.Decimal `json:"amount" yaml:"amount"`
}

// PercentOf returns pct percent of value
func PercentOf(pct, value decimal.Decimal) *PercentOfResult {
	return &PercentOfResult{
		Percent: pct,
		Value:   value,
		Amount:  mathx.Percentage(value, pct),
	}
}
