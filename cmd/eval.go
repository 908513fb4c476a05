package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quarkw/constfit/core"
	"github.com/quarkw/constfit/core/constants"
	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/schema"
)

// evalCmd evaluates a single expression against a target.
var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate one expression against a target constant.",
	Long: `Evaluate a single mathematical expression at high precision and score
how closely it approximates the target.

The target may be a decimal literal or the name of a built-in constant
(run 'constfit constants' for the full table).

Examples:
  # The classic rational approximations of pi
  constfit eval "22/7" --target pi
  constfit eval "355/113" --target pi

  # Ramanujan's near-integer
  constfit eval "exp(pi*sqrt(163))" --target 262537412640768743.99999999999925007

  # Report more digits
  constfit eval "sqrt(2)" --target sqrt2 --precision 80`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		req, err := buildEvalRequest(args[0])
		if err != nil {
			contract.LogFatal("Cannot build evaluation request", err)
		}
		critic := buildCritic()
		if err := core.ExecuteEvalOne(rootCtx, cfg, req, critic); err != nil {
			contract.LogFatal("Cannot evaluate expression", err)
		}
	},
}

// buildEvalRequest assembles the request from the positional expression and
// the target flag, resolving built-in constant names to their table values.
func buildEvalRequest(expression string) (*schema.EvaluationRequest, error) {
	target := viper.GetString("target")
	if target == "" {
		return nil, errors.New("--target is required")
	}
	targetName := viper.GetString("target-name")

	if value, ok := constants.Lookup(target); ok {
		if targetName == "" {
			targetName = target
		}
		target = value
	}

	return &schema.EvaluationRequest{
		Expression:  expression,
		TargetValue: target,
		TargetName:  targetName,
		Constants:   cfg.Constants,
	}, nil
}
