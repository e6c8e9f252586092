package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/kylycht/coinboard/controller/coins"
	"github.com/kylycht/coinboard/controller/converter"
	"github.com/kylycht/coinboard/controller/currencies"
	newsctl "github.com/kylycht/coinboard/controller/news"
	wishlistctl "github.com/kylycht/coinboard/controller/wishlist"
	_ "github.com/kylycht/coinboard/docs"
	"github.com/kylycht/coinboard/service"
	"github.com/kylycht/coinboard/service/conversion"
	"github.com/kylycht/coinboard/service/forex"
	"github.com/kylycht/coinboard/service/market"
	"github.com/kylycht/coinboard/service/news"
	"github.com/kylycht/coinboard/service/restclient"
	"github.com/kylycht/coinboard/storage"
	"github.com/kylycht/coinboard/storage/catalog"
	"github.com/kylycht/coinboard/storage/kv"
	"github.com/kylycht/coinboard/storage/persistence"
	"github.com/kylycht/coinboard/storage/wishlist"
)

//	@title			Coinboard
//	@version		1.0
//	@description	Crypto dashboard API: fiat and crypto converter, market data, news and wishlists

// @host		localhost:3000
func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

type Application struct {
	cfg       Config             // application configuration
	fiberApp  *fiber.App         // underlying fiber application
	dbConn    *sql.DB            // catalog persistence connection, nil when not configured
	kv        storage.KV         // backend of the wishlists
	catalog   *catalog.Catalog   // currency codes offered by the converter
	rates     service.RateSource // exchange rates provider
	market    service.Market     // coin market data and asset price provider
	news      service.News       // news feed provider
	converter *converter.Converter
	stopC     chan os.Signal // handle interrupt for clean up(close connections, etc)
}

// New wires the upstream clients and the converter. Storage is
// connected by Run.
func New(cfg Config) (*Application, error) {
	a := &Application{cfg: cfg}

	opts := []restclient.Option{
		restclient.WithTimeout(cfg.Upstream.Timeout),
		restclient.WithRetries(cfg.Upstream.Retries, 0),
	}

	rates, err := forex.New(cfg.Forex.URL, append(opts, restclient.WithQueryParam("api_key", cfg.Forex.APIKey))...)
	if err != nil {
		log.Error().Err(err).Msg("unable to create exchange client")
		return nil, err
	}

	marketClient, err := market.New(cfg.Market.URL, append(opts, restclient.WithHeader(market.APIKeyHeader, cfg.Market.APIKey))...)
	if err != nil {
		log.Error().Err(err).Msg("unable to create market client")
		return nil, err
	}

	newsClient, err := news.New(cfg.News.URL, append(opts, restclient.WithQueryParam("api_key", cfg.News.APIKey))...)
	if err != nil {
		log.Error().Err(err).Msg("unable to create news client")
		return nil, err
	}

	a.rates = rates
	a.market = marketClient
	a.news = newsClient
	a.converter = a.newConverter(rates, marketClient)

	return a, nil
}

func (a *Application) newConverter(rates service.RateSource, prices service.PriceSource) *converter.Converter {
	return converter.New(conversion.New(a.cfg.Asset.Symbol), rates, prices, converter.Config{
		AssetID:       a.cfg.Asset.ID,
		FallbackPrice: a.cfg.Asset.FallbackPrice,
		FallbackRate:  a.cfg.Conversion.FallbackRate,
		Precision:     conversion.Precision(a.cfg.Conversion.Precision),
		Timeout:       a.cfg.Upstream.Timeout,
	})
}

// Run connects storage and serves HTTP until interrupted.
func (a *Application) Run(ctx context.Context) error {
	a.fiberApp = fiber.New(fiber.Config{AppName: "coinboard"})
	a.stopC = make(chan os.Signal, 1)
	signal.Notify(a.stopC, os.Interrupt, syscall.SIGTERM)

	var persistenceStorage storage.Storage
	if a.cfg.Catalog.PostgresDSN != "" {
		log.Debug().Msg("initialize catalog db connection")

		dbConn, err := sql.Open("postgres", a.cfg.Catalog.PostgresDSN)
		if err != nil {
			log.Error().Err(err).Msg("unable to connect to db")
			return err
		}

		catalogDB := persistence.New(dbConn)
		if err := catalogDB.Migrate(ctx); err != nil {
			log.Error().Err(err).Msg("unable to prepare currency table")
			dbConn.Close()
			return err
		}

		a.dbConn = dbConn
		persistenceStorage = catalogDB
	}

	store, err := kv.New(ctx, a.cfg.Storage)
	if err != nil {
		log.Error().Err(err).Msg("unable to create wishlist storage")
		return err
	}

	a.kv = store
	a.catalog = catalog.New(a.rates, persistenceStorage, a.cfg.Asset.Symbol, a.cfg.Catalog.RefreshInterval)

	a.buildRoutes()
	go a.stop()
	log.Debug().Str("port", a.cfg.HTTP.Port).Msg("preparing fiber http server")

	if err := a.fiberApp.Listen(a.cfg.HTTP.Port); err != nil {
		log.Error().Err(err).Msg("unable to start http server")
		return err
	}

	return nil
}

func (a *Application) buildRoutes() {
	coinsCtl := coins.New(a.market)
	wishlistCtl := wishlistctl.New(wishlist.New(a.kv), a.market, a.cfg.HTTP.UserHeader)

	a.fiberApp.Get("/swagger/*", swagger.HandlerDefault)
	a.fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	a.fiberApp.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	a.fiberApp.Get("/convert", a.converter.Convert)
	a.fiberApp.Get("/currencies", currencies.New(a.catalog, a.cfg.Asset.Symbol).List)
	a.fiberApp.Get("/coins", coinsCtl.List)
	a.fiberApp.Get("/coins/:id", coinsCtl.Get)
	a.fiberApp.Get("/trending", coinsCtl.Trending)
	a.fiberApp.Get("/news", newsctl.New(a.news).Latest)

	group := a.fiberApp.Group("/wishlist", wishlistCtl.RequireUser)
	group.Get("/", wishlistCtl.List)
	group.Get("/coins", wishlistCtl.Coins)
	group.Put("/:id", wishlistCtl.Toggle)
}

func (a *Application) stop() {
	<-a.stopC
	log.Info().Msg("shutting down")

	ctx, cancelFn := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelFn()

	if err := a.fiberApp.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("unable to stop http server")
	}

	a.catalog.Close()

	if err := a.kv.Close(ctx); err != nil {
		log.Error().Err(err).Msg("unable to close wishlist storage")
	}

	if a.dbConn != nil {
		a.dbConn.Close()
	}
}
