package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pkmodel/internal/logger"
	"github.com/katalvlaran/pkmodel/pk"
	"github.com/katalvlaran/pkmodel/plot"
	"github.com/katalvlaran/pkmodel/scan"
)

func (a *app) save(c *cobra.Command, name string, fig *plot.Figure) error {
	path := filepath.Join(a.out, name)
	if err := fig.Save(path); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	logger.L().Info("figure.saved", "cmd", c.Name(), "path", path, "series", len(fig.Series))
	fmt.Fprintf(c.OutOrStdout(), "wrote %s\n", path)

	return nil
}

// printRows uses the print_pk layout for any key/value/unit table.
func printRows(w io.Writer, rows []pk.Row) {
	for _, r := range rows {
		fmt.Fprintf(w, "%-10s: %.2f [%s]\n", r.Key, r.Value, r.Unit)
	}
}

// curveSeries converts scan curves, dividing time by xscale.
func curveSeries(cs []scan.Curve, xscale float64) []plot.Series {
	out := make([]plot.Series, len(cs))
	for i, c := range cs {
		x := make([]float64, len(c.Times))
		for j, t := range c.Times {
			x[j] = t / xscale
		}
		out[i] = plot.Series{Name: c.Label, X: x, Y: c.Y}
	}

	return out
}
