package news

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/kylycht/coinboard/model"
	"github.com/kylycht/coinboard/service"
	"github.com/kylycht/coinboard/service/restclient"
)

const BaseURL = "https://min-api.cryptocompare.com/data/v2/"

var ErrNewsUnavailable = errors.New("unable to load news at this time")

type (
	article struct {
		ID          flexibleID `json:"id"`
		Title       string     `json:"title"`
		URL         string     `json:"url"`
		ImageURL    string     `json:"imageurl"`
		Body        string     `json:"body"`
		Source      string     `json:"source"`
		Categories  string     `json:"categories"`
		PublishedOn int64      `json:"published_on"`
	}

	response struct {
		Data []article `json:"Data"`
	}
)

type client struct {
	rest *restclient.Client
	lang string
}

func New(baseURL string, opts ...restclient.Option) (service.News, error) {
	if baseURL == "" {
		baseURL = BaseURL
	}

	rest, err := restclient.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}

	return &client{rest: rest, lang: "EN"}, nil
}

// Latest implements service.News.
// GET /news/?lang=EN
func (c *client) Latest(ctx context.Context) ([]model.NewsItem, error) {
	query := url.Values{}
	query.Set("lang", c.lang)

	r := response{}
	if err := c.rest.Get(ctx, "news/", query, &r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNewsUnavailable, err)
	}

	items := make([]model.NewsItem, 0, len(r.Data))
	for _, a := range r.Data {
		items = append(items, model.NewsItem{
			ID:          string(a.ID),
			Title:       a.Title,
			URL:         a.URL,
			ImageURL:    a.ImageURL,
			Body:        a.Body,
			Source:      a.Source,
			Categories:  a.Categories,
			PublishedOn: time.Unix(a.PublishedOn, 0).UTC(),
		})
	}

	return items, nil
}

// flexibleID accepts ids encoded either as JSON strings or numbers.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(b []byte) error {
	if s, err := strconv.Unquote(string(b)); err == nil {
		*id = flexibleID(s)
		return nil
	}

	*id = flexibleID(b)

	return nil
}
