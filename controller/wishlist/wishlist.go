package wishlist

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/kylycht/coinboard/controller"
	"github.com/kylycht/coinboard/model"
	"github.com/kylycht/coinboard/service"
	"github.com/kylycht/coinboard/storage/wishlist"
)

const userKey = "wishlist.user"

var ErrUnauthorized = errors.New("user id header is required")

func New(store *wishlist.Store, market service.Market, userHeader string) *Wishlist {
	if userHeader == "" {
		userHeader = "X-User-ID"
	}

	return &Wishlist{store: store, market: market, userHeader: userHeader}
}

type Wishlist struct {
	store      *wishlist.Store
	market     service.Market
	userHeader string
}

type ToggleResponse struct {
	ID      string `json:"id" example:"bitcoin"`
	Starred bool   `json:"starred"`
	Count   int    `json:"count"`
}

// RequireUser rejects requests without the user header.
func (w *Wishlist) RequireUser(ctx *fiber.Ctx) error {
	user := strings.TrimSpace(ctx.Get(w.userHeader))
	if user == "" {
		return controller.Error(ctx, http.StatusUnauthorized, ErrUnauthorized)
	}

	ctx.Locals(userKey, utils.CopyString(user))

	return ctx.Next()
}

// List godoc
//
//	@Summary	Starred coin ids of the user
//	@Tags		wishlist
//	@Produce	json
//	@Param		X-User-ID	header	string	true	"User id"
//	@Success	200	{array}		string
//	@Failure	401	{object}	controller.ErrorResponse
//	@Router		/wishlist [get]
func (w *Wishlist) List(ctx *fiber.Ctx) error {
	ids, err := w.store.List(ctx.UserContext(), user(ctx))
	if err != nil {
		return controller.Error(ctx, http.StatusInternalServerError, err)
	}

	return ctx.JSON(ids)
}

// Coins godoc
//
//	@Summary	Market data of the starred coins
//	@Tags		wishlist
//	@Produce	json
//	@Param		X-User-ID	header	string	true	"User id"
//	@Success	200	{array}		model.CoinMarket
//	@Failure	401	{object}	controller.ErrorResponse
//	@Failure	502	{object}	controller.ErrorResponse
//	@Router		/wishlist/coins [get]
func (w *Wishlist) Coins(ctx *fiber.Ctx) error {
	ids, err := w.store.List(ctx.UserContext(), user(ctx))
	if err != nil {
		return controller.Error(ctx, http.StatusInternalServerError, err)
	}

	if len(ids) == 0 {
		return ctx.JSON([]model.CoinMarket{})
	}

	coins, err := w.market.Markets(ctx.UserContext(), model.MarketsQuery{IDs: ids, PerPage: len(ids)})
	if err != nil {
		return controller.Error(ctx, http.StatusBadGateway, err)
	}

	return ctx.JSON(coins)
}

// Toggle godoc
//
//	@Summary		Star or unstar a coin
//	@Description	adds the coin when absent, removes it otherwise
//	@Tags			wishlist
//	@Produce		json
//	@Param			X-User-ID	header	string	true	"User id"
//	@Param			id			path	string	true	"Coin id"	example(bitcoin)
//	@Success		200	{object}	ToggleResponse
//	@Failure		401	{object}	controller.ErrorResponse
//	@Router			/wishlist/{id} [put]
func (w *Wishlist) Toggle(ctx *fiber.Ctx) error {
	userID := user(ctx)
	coinID := utils.CopyString(ctx.Params("id"))

	starred, err := w.store.Toggle(ctx.UserContext(), userID, coinID)
	if errors.Is(err, wishlist.ErrEmptyCoin) {
		return controller.Error(ctx, http.StatusBadRequest, err)
	}

	if err != nil {
		return controller.Error(ctx, http.StatusInternalServerError, err)
	}

	count, err := w.store.Count(ctx.UserContext(), userID)
	if err != nil {
		return controller.Error(ctx, http.StatusInternalServerError, err)
	}

	return ctx.JSON(ToggleResponse{ID: coinID, Starred: starred, Count: count})
}

func user(ctx *fiber.Ctx) string {
	user, _ := ctx.Locals(userKey).(string)
	return user
}
