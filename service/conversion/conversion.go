// Package conversion converts amounts between fiat currencies and a single
// crypto asset quoted in USD.
package conversion

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kylycht/coinboard/model"
)

const (
	DefaultAsset     string    = "BTC" // DefaultAsset is the asset symbol used when none is configured
	DefaultPrecision Precision = 6     // DefaultPrecision is used for any unsupported precision
	FallbackRate     float64   = 79.33 // FallbackRate substitutes an unavailable exchange rate
)

var (
	ErrInvalidAmount     = errors.New("amount must be a non-negative number")
	ErrInvalidRate       = errors.New("exchange rate must be positive")
	ErrInvalidAssetPrice = errors.New("asset price must be positive")
	ErrInvalidPrecision  = errors.New("precision must be one of 2, 4, 6, 8")
)

// Precision is the number of fractional digits of a converted amount.
type Precision int

// Precisions lists the supported precisions in ascending order.
var Precisions = []Precision{2, 4, 6, 8}

// Valid reports whether p is a supported precision.
func (p Precision) Valid() bool {
	for _, supported := range Precisions {
		if p == supported {
			return true
		}
	}

	return false
}

// orDefault returns p when supported and DefaultPrecision otherwise.
func (p Precision) orDefault() Precision {
	if p.Valid() {
		return p
	}

	return DefaultPrecision
}

// ParsePrecision parses a precision from text. Empty text yields DefaultPrecision.
func ParsePrecision(s string) (Precision, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPrecision, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || !Precision(n).Valid() {
		return DefaultPrecision, fmt.Errorf("%w: %q", ErrInvalidPrecision, s)
	}

	return Precision(n), nil
}

// ParseAmount parses user input into a non-negative decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return d, nil
}

// Class is the role a currency code plays in a conversion.
type Class int

const (
	OtherFiat Class = iota // any fiat currency except USD
	USD                    // the reference fiat
	Asset                  // the configured crypto asset
)

// Rule identifies the arithmetic applied to a pair.
type Rule int

const (
	RuleIdentity    Rule = iota + 1 // amount
	RuleAssetToUSD                  // amount * price
	RuleAssetToFiat                 // amount * price * rate(USD->to)
	RuleUSDToAsset                  // amount / price
	RuleFiatToAsset                 // amount / (rate(USD->from) * price)
	RuleUSDToFiat                   // amount * rate(USD->to)
	RuleFiatToUSD                   // amount / rate(USD->from)
	RuleCross                       // amount * rate(from->to)
)

var ruleNames = map[Rule]string{
	RuleIdentity:    "identity",
	RuleAssetToUSD:  "asset_to_usd",
	RuleAssetToFiat: "asset_to_fiat",
	RuleUSDToAsset:  "usd_to_asset",
	RuleFiatToAsset: "fiat_to_asset",
	RuleUSDToFiat:   "usd_to_fiat",
	RuleFiatToUSD:   "fiat_to_usd",
	RuleCross:       "cross",
}

// UsesPrice reports whether the rule multiplies or divides by the asset price.
func (r Rule) UsesPrice() bool {
	switch r {
	case RuleAssetToUSD, RuleAssetToFiat, RuleUSDToAsset, RuleFiatToAsset:
		return true
	default:
		return false
	}
}

// UsesRate reports whether the rule applies an exchange rate.
func (r Rule) UsesRate() bool {
	switch r {
	case RuleAssetToFiat, RuleFiatToAsset, RuleUSDToFiat, RuleFiatToUSD, RuleCross:
		return true
	default:
		return false
	}
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}

	return "unknown"
}

// Input is everything a single conversion depends on.
type Input struct {
	Amount     string    // user supplied amount text
	From       string    // source currency code
	To         string    // target currency code
	Rate       float64   // see RateLeg for the direction of the rate
	AssetPrice float64   // USD price of one unit of the asset
	Precision  Precision // fractional digits of the output
}

// Engine applies the conversion rules for one asset symbol.
type Engine struct {
	asset string
}

// New returns an engine converting asset. The symbol is trimmed and
// upper-cased to match the codes the catalog offers.
func New(asset string) *Engine {
	asset = strings.ToUpper(strings.TrimSpace(asset))
	if asset == "" {
		asset = DefaultAsset
	}

	return &Engine{asset: asset}
}

// Asset returns the asset symbol the engine converts.
func (e *Engine) Asset() string {
	return e.asset
}

// Classify returns the class of a currency code. Codes are case-sensitive.
func (e *Engine) Classify(code string) Class {
	switch code {
	case e.asset:
		return Asset
	case model.USD:
		return USD
	default:
		return OtherFiat
	}
}

// Rule selects the rule for the pair. Selection is total.
func (e *Engine) Rule(from, to string) Rule {
	if from == to {
		return RuleIdentity
	}

	switch fromClass, toClass := e.Classify(from), e.Classify(to); {
	case fromClass == Asset && toClass == USD:
		return RuleAssetToUSD
	case fromClass == Asset:
		return RuleAssetToFiat
	case fromClass == USD && toClass == Asset:
		return RuleUSDToAsset
	case toClass == Asset:
		return RuleFiatToAsset
	case fromClass == USD:
		return RuleUSDToFiat
	case toClass == USD:
		return RuleFiatToUSD
	default:
		return RuleCross
	}
}

// RateLeg returns the currency pair whose rate the engine expects for from/to.
// Pairs touching the asset or USD need the USD rate of the other fiat, any
// other pair needs the direct rate. needed is false when no rate is used.
func (e *Engine) RateLeg(from, to string) (base, quote string, needed bool) {
	switch e.Rule(from, to) {
	case RuleIdentity, RuleAssetToUSD, RuleUSDToAsset:
		return "", "", false
	case RuleAssetToFiat, RuleUSDToFiat:
		return model.USD, to, true
	case RuleFiatToAsset, RuleFiatToUSD:
		return model.USD, from, true
	default:
		return from, to, true
	}
}

// Calculate computes the unrounded result of a conversion together with the
// rule that produced it.
func (e *Engine) Calculate(in Input) (decimal.Decimal, Rule, error) {
	rule := e.Rule(in.From, in.To)

	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return decimal.Zero, rule, err
	}

	if rule == RuleIdentity {
		return amount, rule, nil
	}

	if rule.UsesPrice() && !positive(in.AssetPrice) {
		return decimal.Zero, rule, fmt.Errorf("%w: %v", ErrInvalidAssetPrice, in.AssetPrice)
	}

	if rule.UsesRate() && !positive(in.Rate) {
		return decimal.Zero, rule, fmt.Errorf("%w: %v for %s/%s", ErrInvalidRate, in.Rate, in.From, in.To)
	}

	var (
		price = decimal.NewFromFloat(in.AssetPrice)
		rate  = decimal.NewFromFloat(in.Rate)
	)

	switch rule {
	case RuleAssetToUSD:
		return amount.Mul(price), rule, nil
	case RuleAssetToFiat:
		return amount.Mul(price).Mul(rate), rule, nil
	case RuleUSDToAsset:
		return amount.Div(price), rule, nil
	case RuleFiatToAsset:
		return amount.Div(rate.Mul(price)), rule, nil
	case RuleFiatToUSD:
		return amount.Div(rate), rule, nil
	default:
		// RuleUSDToFiat and RuleCross
		return amount.Mul(rate), rule, nil
	}
}

// Convert returns the converted amount rounded to the input precision, or an
// empty string when nothing can be shown.
func (e *Engine) Convert(in Input) string {
	result, _, err := e.Calculate(in)
	if err != nil {
		return ""
	}

	return Format(result, in.Precision)
}

// Format renders d as fixed-point text with exactly p fractional digits.
func Format(d decimal.Decimal, p Precision) string {
	return d.StringFixed(int32(p.orDefault()))
}

func positive(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}
