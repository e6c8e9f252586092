package conversion

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kylycht/coinboard/service"
)

const (
	DefaultAmount = "1"   // amount shown on a fresh converter
	DefaultFrom   = "USD" // source currency of a fresh converter
	DefaultTo     = "INR" // target currency of a fresh converter

	msgRateNotFound = "Exchange rate not found for %s → %s"
	msgRateFailed   = "Failed to fetch exchange rates."
)

// Pair is a from/to currency selection.
type Pair struct {
	From string
	To   string
}

// State is a snapshot of a session.
type State struct {
	Amount    string    `json:"amount"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Precision Precision `json:"precision"`
	Rate      float64   `json:"rate"`
	Loading   bool      `json:"loading"`
	Warning   string    `json:"warning,omitempty"`
	Result    string    `json:"result"`
	Rule      string    `json:"rule"`
}

// Session keeps the converter state of one view. Rate fetches run in the
// background; a fetch result is applied only while its pair is still selected.
type Session struct {
	mu           sync.Mutex
	engine       *Engine
	rates        service.RateSource
	assetPrice   float64 // USD price of the asset, constant for the session
	fallbackRate float64 // rate used when the source cannot provide one

	amount    string
	pair      Pair
	precision Precision
	rate      float64
	loading   bool
	warning   string
}

// NewSession creates a session with the default amount, pair and precision.
// No rate is fetched until SelectPair or Reset is called.
func NewSession(engine *Engine, rates service.RateSource, assetPrice, fallbackRate float64) *Session {
	if fallbackRate <= 0 {
		fallbackRate = FallbackRate
	}

	return &Session{
		engine:       engine,
		rates:        rates,
		assetPrice:   assetPrice,
		fallbackRate: fallbackRate,
		amount:       DefaultAmount,
		pair:         Pair{From: DefaultFrom, To: DefaultTo},
		precision:    DefaultPrecision,
		rate:         fallbackRate,
	}
}

// SetAmount replaces the amount text.
func (s *Session) SetAmount(amount string) {
	s.mu.Lock()
	s.amount = amount
	s.mu.Unlock()
}

// Clear empties the amount.
func (s *Session) Clear() {
	s.SetAmount("")
}

// SetPrecision changes the output precision, unsupported values fall back to the default.
func (s *Session) SetPrecision(p Precision) {
	s.mu.Lock()
	s.precision = p.orDefault()
	s.mu.Unlock()
}

// SelectPair selects a new pair and fetches its rate. The returned channel is
// closed once the fetch has been applied or discarded.
func (s *Session) SelectPair(ctx context.Context, from, to string) <-chan struct{} {
	done := make(chan struct{})
	pair := Pair{From: from, To: to}

	s.mu.Lock()
	s.pair = pair
	s.warning = ""

	base, quote, needed := s.engine.RateLeg(from, to)
	if !needed {
		s.rate = 1
		s.loading = false
		s.mu.Unlock()
		close(done)

		return done
	}

	s.loading = true
	s.mu.Unlock()

	go func() {
		defer close(done)

		rate, warning := s.fetch(ctx, pair, base, quote)

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.pair != pair {
			log.Debug().Str("from", from).Str("to", to).Msg("discarding rate of deselected pair")
			return
		}

		s.rate = rate
		s.warning = warning
		s.loading = false
	}()

	return done
}

// Swap exchanges the source and target currencies.
func (s *Session) Swap(ctx context.Context) <-chan struct{} {
	s.mu.Lock()
	pair := s.pair
	s.mu.Unlock()

	return s.SelectPair(ctx, pair.To, pair.From)
}

// Reset restores the defaults of a fresh converter.
func (s *Session) Reset(ctx context.Context) <-chan struct{} {
	s.mu.Lock()
	s.amount = DefaultAmount
	s.precision = DefaultPrecision
	s.mu.Unlock()

	return s.SelectPair(ctx, DefaultFrom, DefaultTo)
}

// Pair returns the selected pair.
func (s *Session) Pair() Pair {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pair
}

// State returns the current state with the conversion result evaluated.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := Input{
		Amount:     s.amount,
		From:       s.pair.From,
		To:         s.pair.To,
		Rate:       s.rate,
		AssetPrice: s.assetPrice,
		Precision:  s.precision,
	}

	st := State{
		Amount:    s.amount,
		From:      s.pair.From,
		To:        s.pair.To,
		Precision: s.precision,
		Rate:      s.rate,
		Loading:   s.loading,
		Warning:   s.warning,
	}

	result, rule, err := s.engine.Calculate(in)
	st.Rule = rule.String()

	switch {
	case err == nil:
		st.Result = Format(result, s.precision)
	case errors.Is(err, ErrInvalidAmount):
		// nothing to show yet
	default:
		log.Error().Err(err).Str("from", in.From).Str("to", in.To).Msg("conversion input violates rate contract")
	}

	return st
}

func (s *Session) fetch(ctx context.Context, pair Pair, base, quote string) (float64, string) {
	rate, err := s.rates.GetRate(ctx, base, quote)

	switch {
	case err == nil && positive(rate.Rate):
		return rate.Rate, ""

	case err == nil || errors.Is(err, service.ErrRateNotFound):
		log.Warn().Str("base", base).Str("quote", quote).Msg("rate not found, using fallback")
		return s.fallbackRate, fmt.Sprintf(msgRateNotFound, pair.From, pair.To)

	default:
		log.Warn().Err(err).Str("base", base).Str("quote", quote).Msg("unable to fetch rate, using fallback")
		return s.fallbackRate, msgRateFailed
	}
}

// Convert sets amount, precision and pair, waits for the pair's rate and
// returns the resulting state. A rate still loading when ctx is done is
// replaced by the fallback rate.
func (s *Session) Convert(ctx context.Context, amount, from, to string, p Precision) State {
	s.SetAmount(amount)
	s.SetPrecision(p)

	select {
	case <-s.SelectPair(ctx, from, to):
	case <-ctx.Done():
		s.abandon(Pair{From: from, To: to}, ctx.Err())
	}

	return s.State()
}

// abandon stops waiting for the rate of pair and applies the fallback.
func (s *Session) abandon(pair Pair, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pair != pair || !s.loading {
		return
	}

	log.Warn().Err(err).Str("from", pair.From).Str("to", pair.To).Msg("rate fetch abandoned, using fallback")

	s.rate = s.fallbackRate
	s.warning = msgRateFailed
	s.loading = false
}
