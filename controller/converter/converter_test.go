package converter_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kylycht/coinboard/controller/converter"
	"github.com/kylycht/coinboard/model"
	"github.com/kylycht/coinboard/service"
	"github.com/kylycht/coinboard/service/conversion"
)

type (
	RateSourceMock struct {
		mock.Mock
	}

	PriceSourceMock struct {
		mock.Mock
	}
)

func (r *RateSourceMock) GetRates(ctx context.Context, base string) (map[string]float64, error) {
	args := r.Called(base)
	rates, _ := args.Get(0).(map[string]float64)
	return rates, args.Error(1)
}

func (r *RateSourceMock) GetRate(ctx context.Context, from, to string) (model.ExchangeRate, error) {
	args := r.Called(from, to)
	return args.Get(0).(model.ExchangeRate), args.Error(1)
}

func (p *PriceSourceMock) Price(ctx context.Context, id string) (float64, error) {
	args := p.Called(id)
	return args.Get(0).(float64), args.Error(1)
}

func newApp(rates service.RateSource, prices service.PriceSource) *fiber.App {
	return newAppWith(conversion.New("BTC"), rates, prices, 0)
}

func newAppWith(engine *conversion.Engine, rates service.RateSource, prices service.PriceSource, p conversion.Precision) *fiber.App {
	c := converter.New(engine, rates, prices, converter.Config{
		AssetID:       "bitcoin",
		FallbackPrice: 50000,
		FallbackRate:  conversion.FallbackRate,
		Precision:     p,
		Timeout:       time.Second,
	})

	app := fiber.New()
	app.Get("/convert", c.Convert)

	return app
}

func convert(t *testing.T, app *fiber.App, query string) converter.Response {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/convert?"+query, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	r := converter.Response{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))

	return r
}

func TestConvert_AssetToFiat(t *testing.T) {
	asserts := require.New(t)

	rates := &RateSourceMock{}
	rates.On("GetRate", "USD", "INR").Return(model.ExchangeRate{Rate: 83}, nil)

	prices := &PriceSourceMock{}
	prices.On("Price", "bitcoin").Return(50000.0, nil)

	r := convert(t, newApp(rates, prices), "amount=1&from=btc&to=INR&precision=2")

	asserts.NotEmpty(r.ID)
	asserts.Equal("BTC", r.From)
	asserts.Equal("4150000.00", r.Result)
	asserts.Equal("asset_to_fiat", r.Rule)
	asserts.Equal(83.0, r.Rate)
	asserts.Equal(50000.0, r.AssetPrice)
	asserts.Empty(r.Warning)
	rates.AssertExpectations(t)
	prices.AssertExpectations(t)
}

func TestConvert_Defaults(t *testing.T) {
	asserts := require.New(t)

	rates := &RateSourceMock{}
	rates.On("GetRate", "USD", "INR").Return(model.ExchangeRate{Rate: 83.12}, nil)

	prices := &PriceSourceMock{}

	r := convert(t, newApp(rates, prices), "precision=5")

	asserts.Equal("1", r.Amount)
	asserts.Equal("USD", r.From)
	asserts.Equal("INR", r.To)
	asserts.Equal(conversion.DefaultPrecision, r.Precision)
	asserts.Equal("83.120000", r.Result)
	prices.AssertNotCalled(t, "Price", mock.Anything)
}

func TestConvert_Fallbacks(t *testing.T) {
	asserts := require.New(t)

	rates := &RateSourceMock{}
	rates.On("GetRate", "USD", "INR").Return(model.ExchangeRate{}, errors.New("connection refused"))

	prices := &PriceSourceMock{}
	prices.On("Price", "bitcoin").Return(0.0, service.ErrPriceNotFound)

	r := convert(t, newApp(rates, prices), "amount=2&from=INR&to=BTC&precision=8")

	asserts.Equal(conversion.FallbackRate, r.Rate)
	asserts.Equal(50000.0, r.AssetPrice)
	asserts.Equal("0.00000050", r.Result)
	asserts.Contains(r.Warning, "Failed to fetch asset price.")
	asserts.Contains(r.Warning, "Failed to fetch exchange rates.")
}

func TestConvert_InvalidAmount(t *testing.T) {
	asserts := require.New(t)

	prices := &PriceSourceMock{}
	prices.On("Price", "bitcoin").Return(50000.0, nil)

	r := convert(t, newApp(&RateSourceMock{}, prices), "amount=abc&from=BTC&to=USD")

	asserts.Empty(r.Result)
	asserts.Equal("asset_to_usd", r.Rule)
}

func TestConvert_EmptyAmount(t *testing.T) {
	asserts := require.New(t)

	rates := &RateSourceMock{}
	rates.On("GetRate", "USD", "INR").Return(model.ExchangeRate{Rate: 83.12}, nil)

	r := convert(t, newApp(rates, &PriceSourceMock{}), "amount=&from=USD&to=INR")

	asserts.Equal("", r.Amount)
	asserts.Empty(r.Result)
	asserts.Equal("usd_to_fiat", r.Rule)
}

func TestConvert_ConfiguredPrecision(t *testing.T) {
	asserts := require.New(t)

	rates := &RateSourceMock{}
	rates.On("GetRate", "USD", "INR").Return(model.ExchangeRate{Rate: 83.12}, nil)

	app := newAppWith(conversion.New("BTC"), rates, &PriceSourceMock{}, 2)

	asserts.Equal("83.12", convert(t, app, "from=USD&to=INR").Result)
	asserts.Equal("83.12", convert(t, app, "from=USD&to=INR&precision=3").Result)
	asserts.Equal("83.1200", convert(t, app, "from=USD&to=INR&precision=4").Result)
}

func TestConvert_LowerCaseAsset(t *testing.T) {
	asserts := require.New(t)

	prices := &PriceSourceMock{}
	prices.On("Price", "bitcoin").Return(50000.0, nil)

	r := convert(t, newAppWith(conversion.New("btc"), &RateSourceMock{}, prices, 2), "amount=2&from=BTC&to=USD")

	asserts.Equal("asset_to_usd", r.Rule)
	asserts.Equal("100000.00", r.Result)
	prices.AssertExpectations(t)
}
