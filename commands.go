package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kylycht/coinboard/model"
	"github.com/kylycht/coinboard/service"
	"github.com/kylycht/coinboard/service/conversion"
)

type commandConfig struct {
	v          *viper.Viper
	cfg        Config
	configFile string
	debug      bool
}

func execute() error {
	return newRootCommand(os.Stdout).Execute()
}

func newRootCommand(out io.Writer) *cobra.Command {
	config := &commandConfig{v: newViper()}

	rootCmd := &cobra.Command{
		Use:          "coinboard",
		Short:        "Crypto dashboard API and converter",
		Version:      "v1.0.0",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if config.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			absolutePath, _ := filepath.Abs(config.configFile)

			cfg, err := LoadConfig(config.v, absolutePath)
			if err != nil {
				log.Error().Err(err).Msg("unable to read configuration file")
				return err
			}

			config.cfg = cfg

			return nil
		},
	}

	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().BoolVar(&config.debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&config.configFile, "config", "./config.yaml", "Path to config file")

	rootCmd.AddCommand(
		serveCommand(config),
		convertCommand(config),
		configCommand(config),
	)

	return rootCmd
}

func serveCommand(config *commandConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := New(config.cfg)
			if err != nil {
				log.Error().Err(err).Msg("unable to initialize application")
				return err
			}

			return app.Run(cmd.Context())
		},
	}
}

func convertCommand(config *commandConfig) *cobra.Command {
	var (
		precision int
		rate      float64
		price     float64
	)

	convertCmd := &cobra.Command{
		Use:   "convert AMOUNT FROM TO",
		Short: "Convert an amount once",
		Long:  "Convert an amount once. Rate and asset price are fetched live unless given as flags.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := New(config.cfg)
			if err != nil {
				return err
			}

			var (
				rates  service.RateSource  = app.rates
				prices service.PriceSource = app.market
			)

			if cmd.Flags().Changed("rate") {
				rates = fixedRate(rate)
			}

			if cmd.Flags().Changed("price") {
				prices = fixedPrice(price)
			}

			p := conversion.Precision(config.cfg.Conversion.Precision)
			if cmd.Flags().Changed("precision") {
				p = conversion.Precision(precision)
			}

			ctx, cancelFn := context.WithTimeout(cmd.Context(), config.cfg.Upstream.Timeout+time.Second)
			defer cancelFn()

			from := strings.ToUpper(args[1])
			to := strings.ToUpper(args[2])

			resp := app.newConverter(rates, prices).Run(ctx, args[0], from, to, p)

			if resp.Result == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "invalid amount %q\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", resp.Amount, resp.From, resp.Result, resp.To)
			}

			if resp.Warning != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "warning:", resp.Warning)
			}

			return nil
		},
	}

	convertCmd.Flags().IntVarP(&precision, "precision", "p", int(conversion.DefaultPrecision), "Fraction digits, one of 2, 4, 6, 8")
	convertCmd.Flags().Float64Var(&rate, "rate", 0, "Exchange rate to use instead of fetching it")
	convertCmd.Flags().Float64Var(&price, "price", 0, "USD price of the asset to use instead of fetching it")

	return convertCmd
}

func configCommand(config *commandConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := dumpConfig(config.v)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(content)

			return err
		},
	}
}

// fixedRate is a service.RateSource answering every pair with the same rate.
type fixedRate float64

func (f fixedRate) GetRates(context.Context, string) (map[string]float64, error) {
	return nil, service.ErrRateNotFound
}

func (f fixedRate) GetRate(_ context.Context, from, to string) (model.ExchangeRate, error) {
	return model.ExchangeRate{
		Base:      model.Currency{Symbol: from},
		Target:    model.Currency{Symbol: to},
		Rate:      float64(f),
		UpdatedAt: time.Now(),
	}, nil
}

// fixedPrice is a service.PriceSource with a constant asset price.
type fixedPrice float64

func (f fixedPrice) Price(context.Context, string) (float64, error) {
	if f <= 0 {
		return 0, service.ErrPriceNotFound
	}

	return float64(f), nil
}
