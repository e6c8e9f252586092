package news_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kylycht/coinboard/service/news"
	"github.com/kylycht/coinboard/service/restclient"
)

func TestClient_Latest(t *testing.T) {
	asserts := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		asserts.Equal("/data/v2/news/", r.URL.Path)
		asserts.Equal("EN", r.URL.Query().Get("lang"))

		w.Write([]byte(`{"Type":100,"Data":[
			{"id":"29876","title":"Bitcoin rallies","url":"https://example.com/a","imageurl":"https://example.com/a.png","body":"...","source":"coindesk","categories":"BTC|Market","published_on":1714521601},
			{"id":29877,"title":"Ether upgrade","url":"https://example.com/b","published_on":1714521700}
		]}`))
	}))
	defer srv.Close()

	client, err := news.New(srv.URL + "/data/v2/")
	asserts.NoError(err)

	items, err := client.Latest(context.Background())
	asserts.NoError(err)
	asserts.Len(items, 2)

	asserts.Equal("29876", items[0].ID)
	asserts.Equal("Bitcoin rallies", items[0].Title)
	asserts.Equal("BTC|Market", items[0].Categories)
	asserts.Equal(time.Unix(1714521601, 0).UTC(), items[0].PublishedOn)

	asserts.Equal("29877", items[1].ID)
}

func TestClient_LatestUnavailable(t *testing.T) {
	asserts := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := news.New(srv.URL, restclient.WithRetries(0, time.Millisecond))
	asserts.NoError(err)

	_, err = client.Latest(context.Background())
	asserts.ErrorIs(err, news.ErrNewsUnavailable)
	asserts.ErrorIs(err, restclient.ErrServer)
}
