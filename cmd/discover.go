package cmd

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quarkw/constfit/core/constants"
	"github.com/quarkw/constfit/core/genetic"
	"github.com/quarkw/constfit/internal/contract"
)

// discoverCmd evolves candidate expressions against a target constant.
var discoverCmd = &cobra.Command{
	Use:   "discover <target>",
	Short: "Evolve candidate expressions that approximate a target constant.",
	Long: `Search for elegant closed-form approximations of a target constant with
a genetic loop: each generation mixes fresh random candidates, mutations
of the best survivors and crossovers between them, evaluates the lot
concurrently, and keeps the top of the gene pool.

The target may be a decimal literal or the name of a built-in constant
(run 'constfit constants' for the full table). Runs are reproducible
with a fixed --seed.

Examples:
  # Hunt for pi approximations
  constfit discover pi

  # A longer, reproducible session archived for later analysis
  constfit discover zeta3 --generations 200 --seed 42 --archive-backend sqlite

  # Stop as soon as a candidate is within 1e-30
  constfit discover e --stop-error 1e-30`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		opts, err := buildDiscoverOptions(args[0])
		if err != nil {
			contract.LogFatal("Cannot build discovery options", err)
		}

		store := buildStore()
		if store != nil {
			defer func() { _ = store.Close() }()
		}

		if err := genetic.ExecuteDiscover(rootCtx, cfg, opts, store, buildCritic()); err != nil {
			contract.LogFatal("Cannot run discovery", err)
		}
	},
}

// buildDiscoverOptions resolves the positional target (constant name or
// decimal literal) and collects the evolution flags.
func buildDiscoverOptions(target string) (genetic.Options, error) {
	opts := genetic.Options{
		Generations: viper.GetInt("generations"),
		Population:  viper.GetInt("population"),
		PoolSize:    viper.GetInt("pool-size"),
		Seed:        viper.GetInt64("seed"),
		StopError:   viper.GetString("stop-error"),
	}

	if value, ok := constants.Lookup(target); ok {
		opts.TargetName = target
		opts.TargetValue = value
		return opts, nil
	}
	if _, ok := new(big.Float).SetString(target); !ok {
		return opts, fmt.Errorf("target %q is neither a built-in constant nor a decimal literal", target)
	}
	opts.TargetValue = target
	return opts, nil
}
