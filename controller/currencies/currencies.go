package currencies

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kylycht/coinboard/storage"
)

func New(catalog storage.Catalog, asset string) *Currencies {
	return &Currencies{catalog: catalog, asset: asset}
}

type Currencies struct {
	catalog storage.Catalog
	asset   string
}

type Response struct {
	Asset      string   `json:"asset" example:"BTC"`
	Currencies []string `json:"currencies"`
}

// List godoc
//
//	@Summary	Currencies offered by the converter
//	@Tags		converter
//	@Produce	json
//	@Success	200	{object}	Response
//	@Router		/currencies [get]
func (c *Currencies) List(ctx *fiber.Ctx) error {
	return ctx.JSON(Response{
		Asset:      c.asset,
		Currencies: c.catalog.Codes(),
	})
}
