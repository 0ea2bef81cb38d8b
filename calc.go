package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"refl/calculator"
	"refl/qgrid"
	"refl/sample"
)

var calcCmd = &cobra.Command{
	Use:   "calc --sample FILE",
	Short: "Evaluate one reflectivity curve and write it as CSV",
	Long: `Calc loads a TOML sample, evaluates R(q) on a grid (from the flags, the
[grid] section of the configuration or a CSV file of q values) and writes
q,R[,kinematic] as CSV.`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

var warnColor = color.New(color.FgYellow, color.Bold)

func init() {
	flags := calcCmd.Flags()
	flags.String("sample", "", "TOML sample file")
	flags.Float64("qmin", 0, "smallest q in 1/Å (default from [grid])")
	flags.Float64("qmax", 0, "largest q in 1/Å (default from [grid])")
	flags.Int("points", 0, "number of q values (default from [grid])")
	flags.Bool("log", false, "logarithmic q spacing")
	flags.String("q-file", "", "CSV file with a q column (or q in the first column)")
	flags.Bool("kinematic", false, "add the Born-approximation curve")
	flags.Bool("reverse", false, "evaluate the stack seen from the substrate side")
	flags.String("out", "", "output CSV file (default stdout)")

	_ = calcCmd.MarkFlagRequired("sample")
	for _, name := range []string{"qmin", "qmax", "points", "log"} {
		calcCmd.MarkFlagsMutuallyExclusive("q-file", name)
	}
}

func runCalc(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	samplePath, _ := flags.GetString("sample")
	reverse, _ := flags.GetBool("reverse")
	kinematic, _ := flags.GetBool("kinematic")
	outPath, _ := flags.GetString("out")

	stack, err := sample.Load(samplePath)
	if err != nil {
		return err
	}
	if reverse {
		stack = stack.Reverse()
	}

	q, err := qValues(cmd)
	if err != nil {
		return err
	}

	beta, d := stack.Beta(), stack.Thickness()
	calc := calculator.New(calculator.LoadConfig(conf))
	r, err := calc.Reflectivity(cmd.Context(), q, beta, d)
	if err != nil {
		return err
	}
	var kin []float64
	if kinematic {
		if kin, err = calculator.Kinematic(q, beta, d); err != nil {
			return err
		}
	}
	if n := warnNonFinite(os.Stderr, q, r); n > 0 {
		log.WithField("points", n).Warn("curve has non-finite values")
	}

	out := io.Writer(os.Stdout)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := writeCurve(out, q, r, kin); err != nil {
		return fmt.Errorf("write curve: %w", err)
	}
	log.WithFields(log.Fields{
		"sample": stack.Name,
		"points": len(q),
	}).Info("curve written")
	return nil
}

// qValues picks q from --q-file, else from the [grid] section overridden by
// the grid flags.
func qValues(cmd *cobra.Command) ([]float64, error) {
	flags := cmd.Flags()
	if path, _ := flags.GetString("q-file"); path != "" {
		return readQ(path)
	}

	g := qgrid.FromConfig(conf)
	if flags.Changed("qmin") {
		g.Min, _ = flags.GetFloat64("qmin")
	}
	if flags.Changed("qmax") {
		g.Max, _ = flags.GetFloat64("qmax")
	}
	if flags.Changed("points") {
		g.Points, _ = flags.GetInt("points")
	}
	if logSpacing, _ := flags.GetBool("log"); logSpacing {
		g.Spacing = qgrid.Log
	}
	return g.Values()
}

func readQ(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	df := dataframe.ReadCSV(f, dataframe.WithDelimiter(','), dataframe.HasHeader(true))
	if df.Err != nil {
		return nil, fmt.Errorf("read %s: %w", path, df.Err)
	}
	names := df.Names()
	if len(names) == 0 || df.Nrow() == 0 {
		return nil, fmt.Errorf("%s holds no q values", path)
	}
	name := names[0]
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), "q") {
			name = n
			break
		}
	}

	q := df.Col(name).Float()
	for i, v := range q {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s: row %d of column %q is not a finite number", path, i+1, name)
		}
	}
	return q, nil
}

// writeCurve writes q,R and, when kin is non-nil, a kinematic column.
func writeCurve(w io.Writer, q, r, kin []float64) error {
	cols := []series.Series{
		formatColumn("q", q),
		formatColumn("R", r),
	}
	if kin != nil {
		cols = append(cols, formatColumn("kinematic", kin))
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}

// formatColumn renders values as strings since gota prints float series
// with six fixed decimals.
func formatColumn(name string, values []float64) series.Series {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return series.New(s, series.String, name)
}

func warnNonFinite(w io.Writer, q, r []float64) int {
	n := 0
	for i, v := range r {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			warnColor.Fprint(w, "warning:")
			fmt.Fprintf(w, " R = %v at q = %g\n", v, q[i])
			n++
		}
	}
	return n
}
