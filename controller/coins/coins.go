package coins

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/kylycht/coinboard/controller"
	"github.com/kylycht/coinboard/model"
	"github.com/kylycht/coinboard/service"
	"github.com/kylycht/coinboard/service/market"
	"github.com/kylycht/coinboard/service/restclient"
)

func New(marketClient service.Market) *Coins {
	return &Coins{market: marketClient}
}

type Coins struct {
	market service.Market
}

// List godoc
//
//	@Summary		List coins by market cap
//	@Description	search keeps the coins whose name or symbol contains it
//	@Tags			coins
//	@Produce		json
//	@Param			search		query	string	false	"Search term"	example(bit)
//	@Param			page		query	int		false	"Page"			default(1)
//	@Param			per_page	query	int		false	"Page size"		default(100)
//	@Success		200	{array}		model.CoinMarket
//	@Failure		502	{object}	controller.ErrorResponse
//	@Router			/coins [get]
func (c *Coins) List(ctx *fiber.Ctx) error {
	coins, err := c.market.Markets(ctx.UserContext(), model.MarketsQuery{
		Page:    ctx.QueryInt("page", 1),
		PerPage: ctx.QueryInt("per_page", market.DefaultPerPage),
	})
	if err != nil {
		return controller.Error(ctx, http.StatusBadGateway, err)
	}

	return ctx.JSON(market.FilterMarkets(coins, ctx.Query("search")))
}

// Get godoc
//
//	@Summary	Coin details with price history
//	@Tags		coins
//	@Produce	json
//	@Param		id		path	string	true	"Coin id"	example(bitcoin)
//	@Param		days	query	int		false	"Days of history"	default(30)
//	@Success	200	{object}	model.CoinOverview
//	@Failure	404	{object}	controller.ErrorResponse
//	@Failure	502	{object}	controller.ErrorResponse
//	@Router		/coins/{id} [get]
func (c *Coins) Get(ctx *fiber.Ctx) error {
	overview, err := c.market.Overview(ctx.UserContext(), ctx.Params("id"), ctx.QueryInt("days", market.DefaultDays))
	if errors.Is(err, restclient.ErrClient) {
		return controller.Error(ctx, http.StatusNotFound, err)
	}

	if err != nil {
		return controller.Error(ctx, http.StatusBadGateway, err)
	}

	return ctx.JSON(overview)
}

// Trending godoc
//
//	@Summary	Trending coins
//	@Tags		coins
//	@Produce	json
//	@Success	200	{array}		model.TrendingCoin
//	@Failure	502	{object}	controller.ErrorResponse
//	@Router		/trending [get]
func (c *Coins) Trending(ctx *fiber.Ctx) error {
	coins, err := c.market.Trending(ctx.UserContext())
	if err != nil {
		return controller.Error(ctx, http.StatusBadGateway, err)
	}

	return ctx.JSON(coins)
}
