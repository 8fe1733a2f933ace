// Package pricing implements the pure pricing engine: cart items in, integer
// minor-unit totals out. All money arithmetic happens here in minor units so
// floating point never touches an order amount.
package pricing

import (
	"math"
	"strings"
	"unicode"

	"coursecart/internal/domain/entity"
	domainerrors "coursecart/internal/domain/errors"

	"github.com/pkg/errors"
)

// basisPointDivisor converts basis points to a fraction (1800 bp = 18%).
const basisPointDivisor = 10000

// Quote is the result of pricing a cart, in minor currency units.
type Quote struct {
	SubtotalMinor int64  `json:"subtotal_minor"`
	TaxMinor      int64  `json:"tax_minor"`
	TotalMinor    int64  `json:"total_minor"`
	Currency      string `json:"currency"`
}

// Engine prices carts with a fixed tax rate. It is a pure component: no
// side effects, no I/O.
type Engine struct {
	taxRateBasisPoints int64
	currency           string
}

// NewEngine creates a pricing engine with the given tax rate in basis points.
func NewEngine(taxRateBasisPoints int, currency string) *Engine {
	return &Engine{
		taxRateBasisPoints: int64(taxRateBasisPoints),
		currency:           currency,
	}
}

// Price computes the quote for the given cart items: subtotal is the sum of
// each parsed item price, tax is the fixed rate applied to the subtotal and
// rounded half-up to the nearest minor unit.
func (e *Engine) Price(items []entity.CartItem) (*Quote, error) {
	var subtotal int64
	for _, item := range items {
		amount, err := ParseAmount(item.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "item %s/%s", item.CourseID, item.Plan)
		}
		subtotal += amount
	}

	tax := roundHalfUp(subtotal*e.taxRateBasisPoints, basisPointDivisor)

	return &Quote{
		SubtotalMinor: subtotal,
		TaxMinor:      tax,
		TotalMinor:    subtotal + tax,
		Currency:      e.currency,
	}, nil
}

// ParseAmount converts a display price string into an integer minor-unit
// amount. Currency symbols, thousand separators and surrounding whitespace
// are stripped; any other residue fails with ErrInvalidPriceFormat. The
// parsed integer is the stored amount ("₹2,999" -> 2999); unit conversion a
// payment provider may demand happens at the gateway boundary, not here.
func ParseAmount(display string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsDigit(r):
			return r
		case r == ',' || unicode.IsSpace(r):
			return -1 // thousand separators and spacing
		case unicode.IsSymbol(r):
			return -1 // currency glyphs such as ₹ or $
		default:
			return r
		}
	}, display)

	// The literal "Rs." prefix survives the symbol strip; anything else
	// alphabetic is residue and fails below.
	lower := strings.ToLower(cleaned)
	switch {
	case strings.HasPrefix(lower, "rs."):
		cleaned = cleaned[len("rs."):]
	case strings.HasPrefix(lower, "rs"):
		cleaned = cleaned[len("rs"):]
	}

	if cleaned == "" {
		return 0, domainerrors.ErrInvalidPriceFormat.WrapMessage("empty price after stripping formatting")
	}

	var amount int64
	for _, r := range cleaned {
		if !unicode.IsDigit(r) {
			return 0, domainerrors.ErrInvalidPriceFormat.WrapMessage("price contains non-numeric characters: " + display)
		}
		digit := int64(r - '0')
		if amount > (math.MaxInt64-digit)/10 {
			return 0, domainerrors.ErrInvalidPriceFormat.WrapMessage("price exceeds the largest representable amount: " + display)
		}
		amount = amount*10 + digit
	}

	return amount, nil
}

// roundHalfUp divides numerator by divisor rounding half away from zero.
// Inputs are never negative here; subtotals are sums of parsed non-negative
// amounts.
func roundHalfUp(numerator, divisor int64) int64 {
	return (numerator + divisor/2) / divisor
}
