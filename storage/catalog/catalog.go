// Package catalog keeps the list of currency codes offered by the converter.
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/kylycht/coinboard/model"
	"github.com/kylycht/coinboard/service"
	"github.com/kylycht/coinboard/storage"
)

const (
	DefaultRefreshInterval = time.Hour
	loadTimeout            = 10 * time.Second
)

// Static is offered when neither the rate source
// nor the persistence storage can provide codes.
var Static = []string{"USD", "INR", "EUR", "GBP", "JPY", "AUD"}

type Catalog struct {
	lock               sync.RWMutex       // rw lock guards codes
	codes              []string           // sorted currency codes
	asset              string             // asset symbol always present in codes
	ticker             *time.Ticker       // ticker to refresh codes every X interval
	rates              service.RateSource // rate source listing the quoted currencies
	persistenceStorage storage.Storage    // optional persistence provider of currencies
	doneC              chan struct{}      // chan to signal ticker stoppage
	closeOnce          sync.Once          // Close may be called more than once
	warn               rate.Sometimes     // throttles refresh failure warnings
}

// New loads the catalog once and starts refreshing it every interval.
// It never fails: when nothing can be loaded the static list is used.
func New(rates service.RateSource, persistenceStorage storage.Storage, asset string, interval time.Duration) *Catalog {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	c := &Catalog{
		asset:              strings.ToUpper(asset),
		rates:              rates,
		persistenceStorage: persistenceStorage,
		doneC:              make(chan struct{}),
		warn:               rate.Sometimes{First: 1, Interval: 10 * time.Minute},
	}

	c.init(interval)

	return c
}

// Codes implements storage.Catalog.
func (c *Catalog) Codes() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return append([]string(nil), c.codes...)
}

// Close stops the refresh loop.
func (c *Catalog) Close() {
	c.closeOnce.Do(func() {
		c.ticker.Stop()
		close(c.doneC)
	})
}

func (c *Catalog) init(interval time.Duration) {
	if err := c.refresh(); err != nil {
		log.Warn().Err(err).Msg("unable to load currencies from rate source, using fallback catalog")
		c.store(c.fallback())
	}

	c.ticker = time.NewTicker(interval)

	go func() {
		for {
			select {
			case <-c.doneC:
				return

			case t := <-c.ticker.C:
				if err := c.refresh(); err != nil {
					c.warn.Do(func() {
						log.Warn().Err(err).Str("time", t.String()).Dur("retry_in", interval).Msg("unable to refresh currency catalog")
					})
				}
			}
		}
	}()
}

// refresh replaces the codes with the currencies quoted against USD.
// Codes are left untouched on failure.
func (c *Catalog) refresh() error {
	ctx, cancelFn := context.WithTimeout(context.Background(), loadTimeout)
	defer cancelFn()

	rates, err := c.rates.GetRates(ctx, model.USD)
	if err != nil {
		return err
	}

	codes := make([]string, 0, len(rates)+2)
	codes = append(codes, model.USD)
	for symbol := range rates {
		codes = append(codes, symbol)
	}

	c.store(codes)

	return nil
}

func (c *Catalog) fallback() []string {
	if c.persistenceStorage != nil {
		ctx, cancelFn := context.WithTimeout(context.Background(), loadTimeout)
		defer cancelFn()

		fiats, cryptos, err := c.persistenceStorage.Load(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("unable to load currencies from persistence storage")
		}

		if err == nil && len(fiats)+len(cryptos) > 0 {
			codes := make([]string, 0, len(fiats)+len(cryptos))
			for _, cur := range append(fiats, cryptos...) {
				codes = append(codes, cur.Symbol)
			}

			return codes
		}
	}

	return append([]string(nil), Static...)
}

// store normalises codes, adds the asset and publishes them sorted.
func (c *Catalog) store(codes []string) {
	seen := make(map[string]struct{}, len(codes)+1)
	normalised := make([]string, 0, len(codes)+1)

	for _, code := range append(codes, c.asset) {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}

		if _, ok := seen[code]; ok {
			continue
		}

		seen[code] = struct{}{}
		normalised = append(normalised, code)
	}

	sort.Strings(normalised)

	c.lock.Lock()
	c.codes = normalised
	c.lock.Unlock()

	log.Debug().Int("codes", len(normalised)).Msg("currency catalog updated")
}
