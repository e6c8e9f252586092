package news

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/kylycht/coinboard/controller"
	"github.com/kylycht/coinboard/service"
)

func New(news service.News) *News {
	return &News{news: news}
}

type News struct {
	news service.News
}

// Latest godoc
//
//	@Summary	Latest crypto news
//	@Tags		news
//	@Produce	json
//	@Success	200	{array}		model.NewsItem
//	@Failure	502	{object}	controller.ErrorResponse	"unable to load news at this time"
//	@Router		/news [get]
func (n *News) Latest(ctx *fiber.Ctx) error {
	items, err := n.news.Latest(ctx.UserContext())
	if err != nil {
		return controller.Error(ctx, http.StatusBadGateway, err)
	}

	return ctx.JSON(items)
}
