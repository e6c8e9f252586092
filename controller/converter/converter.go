package converter

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kylycht/coinboard/service"
	"github.com/kylycht/coinboard/service/conversion"
)

const msgPriceFailed = "Failed to fetch asset price."

type Config struct {
	AssetID       string               // market id of the asset, e.g. bitcoin
	FallbackPrice float64              // USD price used when the price source fails
	FallbackRate  float64              // rate used when the rate source fails
	Precision     conversion.Precision // used when the request carries none or an unsupported one
	Timeout       time.Duration        // bounds fetching rate and price
}

// New returns a converter handler. Zero Timeout and unsupported Precision are
// replaced by their defaults.
func New(engine *conversion.Engine, rates service.RateSource, prices service.PriceSource, cfg Config) *Converter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	if !cfg.Precision.Valid() {
		cfg.Precision = conversion.DefaultPrecision
	}

	return &Converter{
		engine: engine,
		rates:  rates,
		prices: prices,
		cfg:    cfg,
	}
}

type Converter struct {
	engine *conversion.Engine
	rates  service.RateSource
	prices service.PriceSource
	cfg    Config
}

// Response is the outcome of a conversion.
type Response struct {
	ID         string               `json:"id" example:"7b0c9a52-5d0e-4f4e-9a55-1f3f0f8f7c1d"`
	Amount     string               `json:"amount" example:"1"`
	From       string               `json:"from" example:"BTC"`
	To         string               `json:"to" example:"INR"`
	Precision  conversion.Precision `json:"precision" example:"2"`
	Rate       float64              `json:"rate" example:"83.12"`
	AssetPrice float64              `json:"asset_price" example:"50000"`
	Result     string               `json:"result" example:"4156000.00"`
	Rule       string               `json:"rule" example:"asset_to_fiat"`
	Warning    string               `json:"warning,omitempty"`
}

// Convert godoc
//
//	@Summary		Convert an amount between fiat currencies and the asset
//	@Description	rates and the asset price are fetched live, unavailable ones are replaced by fallbacks and reported in warning
//	@Tags			converter
//	@Produce		json
//	@Param			amount		query	string	false	"Amount"		default(1)
//	@Param			from		query	string	false	"From Currency"	default(USD)
//	@Param			to			query	string	false	"To Currency"	default(INR)
//	@Param			precision	query	int		false	"Fraction digits, one of 2, 4, 6, 8"	default(6)
//	@Success		200	{object}	Response
//	@Router			/convert [get]
func (c *Converter) Convert(ctx *fiber.Ctx) error {
	// values outlive the handler when a rate fetch times out
	amount := conversion.DefaultAmount
	if ctx.Context().QueryArgs().Has("amount") {
		// an empty amount converts to an empty result
		amount = utils.CopyString(ctx.Query("amount"))
	}

	from := utils.CopyString(strings.ToUpper(strings.TrimSpace(ctx.Query("from", conversion.DefaultFrom))))
	to := utils.CopyString(strings.ToUpper(strings.TrimSpace(ctx.Query("to", conversion.DefaultTo))))

	precision := c.cfg.Precision
	if raw := ctx.Query("precision"); raw != "" {
		parsed, err := conversion.ParsePrecision(raw)
		if err != nil {
			log.Debug().Err(err).Int("precision", int(precision)).Msg("using configured precision")
		} else {
			precision = parsed
		}
	}

	reqCtx, cancelFn := context.WithTimeout(ctx.UserContext(), c.cfg.Timeout)
	defer cancelFn()

	return ctx.JSON(c.Run(reqCtx, amount, from, to, precision))
}

// Run converts amount and reports the rate and asset price it used.
func (c *Converter) Run(ctx context.Context, amount, from, to string, p conversion.Precision) Response {
	log.Debug().Str(from, to).Str("amount", amount).Msg("converting")

	state, price, warnings := c.convert(ctx, amount, from, to, p)
	conversionsTotal.WithLabelValues(state.Rule).Inc()

	return Response{
		ID:         uuid.NewString(),
		Amount:     state.Amount,
		From:       state.From,
		To:         state.To,
		Precision:  state.Precision,
		Rate:       state.Rate,
		AssetPrice: price,
		Result:     state.Result,
		Rule:       state.Rule,
		Warning:    strings.Join(warnings, " "),
	}
}

func (c *Converter) convert(ctx context.Context, amount, from, to string, p conversion.Precision) (conversion.State, float64, []string) {
	var warnings []string

	price := c.cfg.FallbackPrice
	if c.engine.Rule(from, to).UsesPrice() {
		fetched, err := c.prices.Price(ctx, c.cfg.AssetID)
		if err != nil {
			log.Warn().Err(err).Str("asset", c.cfg.AssetID).Float64("fallback", price).Msg("unable to fetch asset price, using fallback")
			warnings = append(warnings, msgPriceFailed)
		} else {
			price = fetched
		}
	}

	session := conversion.NewSession(c.engine, c.rates, price, c.cfg.FallbackRate)
	state := session.Convert(ctx, amount, from, to, p)

	if state.Warning != "" {
		warnings = append(warnings, state.Warning)
	}

	return state, price, warnings
}
