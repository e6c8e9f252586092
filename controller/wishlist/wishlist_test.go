package wishlist_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kylycht/coinboard/controller/wishlist"
	"github.com/kylycht/coinboard/model"
	"github.com/kylycht/coinboard/storage/kv"
	store "github.com/kylycht/coinboard/storage/wishlist"
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
	w := wishlist.New(store.New(kv.NewMemory()), m, "")

	app := fiber.New()
	group := app.Group("/wishlist", w.RequireUser)
	group.Get("/", w.List)
	group.Get("/coins", w.Coins)
	group.Put("/:id", w.Toggle)

	return app
}

func do(t *testing.T, app *fiber.App, method, path, user string, v interface{}) int {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}

	return resp.StatusCode
}

func TestWishlist_RequiresUser(t *testing.T) {
	app := newApp(&MarketMock{})

	require.Equal(t, http.StatusUnauthorized, do(t, app, http.MethodGet, "/wishlist", "", nil))
	require.Equal(t, http.StatusUnauthorized, do(t, app, http.MethodPut, "/wishlist/bitcoin", " ", nil))
}

func TestWishlist_Toggle(t *testing.T) {
	asserts := require.New(t)

	m := &MarketMock{}
	m.On("Markets", model.MarketsQuery{IDs: []string{"bitcoin", "ethereum"}, PerPage: 2}).
		Return([]model.CoinMarket{{ID: "bitcoin"}, {ID: "ethereum"}}, nil)

	app := newApp(m)

	var coins []model.CoinMarket
	asserts.Equal(http.StatusOK, do(t, app, http.MethodGet, "/wishlist/coins", "alice", &coins))
	asserts.Empty(coins)
	m.AssertNotCalled(t, "Markets", mock.Anything)

	toggled := wishlist.ToggleResponse{}
	asserts.Equal(http.StatusOK, do(t, app, http.MethodPut, "/wishlist/bitcoin", "alice", &toggled))
	asserts.True(toggled.Starred)
	asserts.Equal(1, toggled.Count)

	asserts.Equal(http.StatusOK, do(t, app, http.MethodPut, "/wishlist/ethereum", "alice", &toggled))
	asserts.Equal(2, toggled.Count)

	var ids []string
	asserts.Equal(http.StatusOK, do(t, app, http.MethodGet, "/wishlist", "alice", &ids))
	asserts.Equal([]string{"bitcoin", "ethereum"}, ids)

	asserts.Equal(http.StatusOK, do(t, app, http.MethodGet, "/wishlist/coins", "alice", &coins))
	asserts.Len(coins, 2)

	asserts.Equal(http.StatusOK, do(t, app, http.MethodPut, "/wishlist/bitcoin", "alice", &toggled))
	asserts.False(toggled.Starred)
	asserts.Equal(1, toggled.Count)

	// other users are unaffected
	asserts.Equal(http.StatusOK, do(t, app, http.MethodGet, "/wishlist", "bob", &ids))
	asserts.Empty(ids)
}
