package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/schema"
)

// writeSingleJSONResult emits the raw result object.
func writeSingleJSONResult(res *schema.EvaluationResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, res)
	}, "Wrote JSON")
}

// writeSingleCard prints the human-readable card for one evaluation.
func writeSingleCard(res *schema.EvaluationResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		target := res.Request.TargetValue
		if res.Request.TargetName != "" && res.Request.TargetName != "unknown" {
			target = fmt.Sprintf("%s (%s)", target, res.Request.TargetName)
		}

		lines := []struct {
			label string
			value string
		}{
			{"Expression", res.Request.Expression},
			{"Target", target},
			{"Computed", res.Computed},
			{"Absolute error", res.Quality.AbsoluteError},
			{"Relative error", res.Quality.RelativeError},
			{"Accuracy", fmt.Sprintf("%d digits (%s)", res.Quality.AccuracyDigits,
				contract.GetColorLabel(res.Quality.AccuracyDigits, cfg.PrecisionDigits))},
			{"Complexity", fmt.Sprintf("%d", res.Quality.Complexity)},
			{"Elegance score", res.Quality.EleganceScore},
			{"Overall score", fmt.Sprintf("%.6g", res.Quality.OverallScore)},
		}
		for _, line := range lines {
			if _, err := fmt.Fprintf(w, "%-15s %s\n", line.label+":", line.value); err != nil {
				return err
			}
		}

		if res.Critique != nil {
			if err := writeCritique(w, res.Critique); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(w, "Evaluated in %v at %d-digit precision\n", duration, cfg.PrecisionDigits)
		return err
	}, "Wrote result")
}

func writeCritique(w io.Writer, c *schema.Critique) error {
	if c.Unavailable {
		_, err := fmt.Fprintln(w, "Critique:        unavailable")
		return err
	}
	if _, err := fmt.Fprintln(w, "Critique:"); err != nil {
		return err
	}
	fields := []struct {
		label string
		value string
	}{
		{"accuracy", c.Accuracy},
		{"efficiency", c.Efficiency},
		{"novelty", c.Novelty},
		{"stability", c.Stability},
		{"generality", c.Generality},
		{"recommendation", c.Recommendation},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %-15s %s\n", f.label+":", f.value); err != nil {
			return err
		}
	}
	return nil
}
