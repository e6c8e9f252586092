package forex_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kylycht/coinboard/service"
	"github.com/kylycht/coinboard/service/forex"
	"github.com/kylycht/coinboard/service/restclient"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v4/latest/USD":
			w.Write([]byte(`{"base":"USD","date":"2024-05-01","time_last_updated":1714521601,"rates":{"USD":1,"INR":83.12,"EUR":0.93,"XXX":0}}`))
		case "/v4/latest/EUR":
			w.Write([]byte(`{"base":"EUR","rates":{"EUR":1,"GBP":0.85}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_GetRates(t *testing.T) {
	asserts := require.New(t)

	srv := newServer(t)
	defer srv.Close()

	client, err := forex.New(srv.URL + "/v4/")
	asserts.NoError(err)

	rates, err := client.GetRates(context.Background(), "USD")
	asserts.NoError(err)
	asserts.Equal(map[string]float64{"USD": 1, "INR": 83.12, "EUR": 0.93}, rates)
}

func TestClient_GetRate(t *testing.T) {
	asserts := require.New(t)
	ctx := context.Background()

	srv := newServer(t)
	defer srv.Close()

	client, err := forex.New(srv.URL+"/v4", restclient.WithRetries(0, time.Millisecond))
	asserts.NoError(err)

	rate, err := client.GetRate(ctx, "USD", "INR")
	asserts.NoError(err)
	asserts.Equal(83.12, rate.Rate)
	asserts.Equal("USD", rate.Base.Symbol)
	asserts.Equal("INR", rate.Target.Symbol)
	asserts.Equal(int64(1714521601), rate.UpdatedAt.Unix())

	rate, err = client.GetRate(ctx, "EUR", "GBP")
	asserts.NoError(err)
	asserts.Equal(0.85, rate.Rate)

	rate, err = client.GetRate(ctx, "JPY", "JPY")
	asserts.NoError(err)
	asserts.Equal(1.0, rate.Rate)

	_, err = client.GetRate(ctx, "USD", "XYZ")
	asserts.ErrorIs(err, service.ErrRateNotFound)

	_, err = client.GetRate(ctx, "USD", "XXX")
	asserts.ErrorIs(err, service.ErrRateNotFound)

	_, err = client.GetRate(ctx, "ABC", "USD")
	asserts.ErrorIs(err, restclient.ErrClient)
	asserts.NotErrorIs(err, service.ErrRateNotFound)
}
