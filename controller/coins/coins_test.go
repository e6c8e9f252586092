package coins_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kylycht/coinboard/controller"
	"github.com/kylycht/coinboard/controller/coins"
	"github.com/kylycht/coinboard/model"
	"github.com/kylycht/coinboard/service/restclient"
)

type MarketMock struct {
	mock.Mock
}

func (m *MarketMock) Price(ctx context.Context, id string) (float64, error) {
	args := m.Called(id)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MarketMock) Markets(ctx context.Context, q model.MarketsQuery) ([]model.CoinMarket, error) {
	args := m.Called(q)
	coins, _ := args.Get(0).([]model.CoinMarket)
	return coins, args.Error(1)
}

func (m *MarketMock) Overview(ctx context.Context, id string, days int) (model.CoinOverview, error) {
	args := m.Called(id, days)
	return args.Get(0).(model.CoinOverview), args.Error(1)
}

func (m *MarketMock) Trending(ctx context.Context) ([]model.TrendingCoin, error) {
	args := m.Called()
	coins, _ := args.Get(0).([]model.TrendingCoin)
	return coins, args.Error(1)
}

func newApp(m *MarketMock) *fiber.App {
	c := coins.New(m)

	app := fiber.New()
	app.Get("/coins", c.List)
	app.Get("/coins/:id", c.Get)
	app.Get("/trending", c.Trending)

	return app
}

func TestCoins_List(t *testing.T) {
	asserts := require.New(t)

	m := &MarketMock{}
	m.On("Markets", model.MarketsQuery{Page: 2, PerPage: 50}).Return([]model.CoinMarket{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum"},
	}, nil)

	resp, err := newApp(m).Test(httptest.NewRequest(http.MethodGet, "/coins?page=2&per_page=50&search=ETH", nil), -1)
	asserts.NoError(err)
	asserts.Equal(http.StatusOK, resp.StatusCode)

	var got []model.CoinMarket
	asserts.NoError(json.NewDecoder(resp.Body).Decode(&got))
	asserts.Len(got, 1)
	asserts.Equal("ethereum", got[0].ID)
	m.AssertExpectations(t)
}

func TestCoins_Get(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "found", status: http.StatusOK},
		{name: "unknown coin", err: fmt.Errorf("unable to fetch details: %w", restclient.ErrClient), status: http.StatusNotFound},
		{name: "upstream down", err: restclient.ErrServer, status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asserts := require.New(t)

			m := &MarketMock{}
			m.On("Overview", "bitcoin", 7).Return(model.CoinOverview{Details: model.CoinDetails{ID: "bitcoin"}}, tt.err)

			resp, err := newApp(m).Test(httptest.NewRequest(http.MethodGet, "/coins/bitcoin?days=7", nil), -1)
			asserts.NoError(err)
			asserts.Equal(tt.status, resp.StatusCode)

			if tt.err != nil {
				body := controller.ErrorResponse{}
				asserts.NoError(json.NewDecoder(resp.Body).Decode(&body))
				asserts.NotEmpty(body.Error)
			}
		})
	}
}

func TestCoins_Trending(t *testing.T) {
	asserts := require.New(t)

	m := &MarketMock{}
	m.On("Trending").Return([]model.TrendingCoin{{ID: "pepe"}}, nil)

	resp, err := newApp(m).Test(httptest.NewRequest(http.MethodGet, "/trending", nil), -1)
	asserts.NoError(err)
	asserts.Equal(http.StatusOK, resp.StatusCode)

	var got []model.TrendingCoin
	asserts.NoError(json.NewDecoder(resp.Body).Decode(&got))
	asserts.Equal("pepe", got[0].ID)
}
