// Command basscalc prints the frequency response of a loudspeaker with a
// passive radiator.
//
// Usage:
//
//	basscalc [flags]
//
// Examples:
//
//	basscalc --preset woofer.bass
//	basscalc --preset woofer.bass --variant impedance --log --points 400
//	basscalc --recompute --png response.png
//	basscalc --preset woofer.bass --save-preset tuned.bass
//	basscalc --preset woofer.bass --params
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/RMahshie/basscalc/internal/chart"
	"github.com/RMahshie/basscalc/internal/config"
	"github.com/RMahshie/basscalc/internal/processing"
	"github.com/RMahshie/basscalc/internal/transfer"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	flags := newFlags(pflag.ExitOnError)
	_ = flags.Parse(os.Args[1:])

	// Flags share keys with the environment so SWEEP_* and PRESET_FILE apply too
	bind(flags, map[string]string{
		"PRESET_FILE": "preset",
		"SWEEP_MIN":   "min",
		"SWEEP_MAX":   "max",
		"SWEEP_STEP":  "step",
	})

	cfg, err := config.Load()
	if err != nil {
		fatalf("failed to load configuration: %v", err)
	}
	if v, _ := flags.GetBool("verbose"); v {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg, flags, os.Stdout); err != nil {
		fatalf("%v", err)
	}
}

func newFlags(handling pflag.ErrorHandling) *pflag.FlagSet {
	flags := pflag.NewFlagSet("basscalc", handling)
	flags.String("preset", "", "preset file to load before sampling")
	flags.String("variant", transfer.Radiator.String(), "response variant: "+variantNames())
	flags.Float64("min", 20, "lowest frequency in Hz")
	flags.Float64("max", 200, "highest frequency in Hz")
	flags.Float64("step", 1, "step in Hz for linear sweeps")
	flags.Bool("log", false, "space samples logarithmically")
	flags.Int("points", 200, "number of samples for logarithmic sweeps")
	flags.Bool("recompute", false, "run a recompute pass before sampling")
	flags.String("png", "", "write a chart to this PNG file instead of printing")
	flags.String("save-preset", "", "write the model to this preset file after loading")
	flags.Bool("params", false, "print every parameter instead of a curve")
	flags.BoolP("verbose", "v", false, "log at info level")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: basscalc [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the frequency response of a driver and passive radiator system.\n\n")
		flags.PrintDefaults()
	}
	return flags
}

func bind(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			fatalf("failed to bind --%s: %v", name, err)
		}
	}
}

func run(cfg *config.Config, flags *pflag.FlagSet, out io.Writer) error {
	variantName, _ := flags.GetString("variant")
	variant, err := transfer.ParseVariant(variantName)
	if err != nil {
		return err
	}

	sweep := cfg.Model.Sweep
	sweep.Log, _ = flags.GetBool("log")
	sweep.Points, _ = flags.GetInt("points")

	svc, err := processing.NewService(nil, nil)
	if err != nil {
		return err
	}

	if cfg.Model.PresetFile != "" {
		f, err := os.Open(cfg.Model.PresetFile)
		if err != nil {
			return fmt.Errorf("failed to open preset: %w", err)
		}
		report, err := svc.ImportPreset(f)
		f.Close()
		if err != nil {
			return err
		}
		for _, s := range report.Skipped {
			fmt.Fprintf(os.Stderr, "%s:%d: skipped %s: %s\n", cfg.Model.PresetFile, s.Line, s.Name, s.Reason)
		}
	}
	if recompute, _ := flags.GetBool("recompute"); recompute {
		svc.Recompute()
	}

	if path, _ := flags.GetString("save-preset"); path != "" {
		if err := savePreset(svc, path); err != nil {
			return err
		}
	}

	if list, _ := flags.GetBool("params"); list {
		return printParameters(out, svc)
	}

	curve, err := svc.Response(variant, sweep)
	if err != nil {
		return err
	}

	if path, _ := flags.GetString("png"); path != "" {
		return writePNG(curve, sweep, path)
	}
	return printCurve(out, curve)
}

func savePreset(svc processing.Service, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preset: %w", err)
	}
	if err := svc.ExportPreset(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printParameters(out io.Writer, svc processing.Service) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "group\tname\tvalue\tderived")
	for _, p := range svc.Parameters() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", p.Group, p.Name, p.Format(), p.Derived())
	}
	return tw.Flush()
}

func printCurve(out io.Writer, curve processing.Curve) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if curve.Variant == transfer.Impedance {
		fmt.Fprintln(tw, "freq_hz\tmagnitude\tohms")
	} else {
		fmt.Fprintln(tw, "freq_hz\tmagnitude\tlevel_db")
	}
	for _, p := range curve.Points {
		if !p.Valid {
			fmt.Fprintf(tw, "%.4g\t-\t-\n", p.Frequency)
			continue
		}
		second := p.Level()
		if curve.Variant == transfer.Impedance {
			second = curve.Ohms(p)
		}
		fmt.Fprintf(tw, "%.4g\t%.6g\t%.3f\n", p.Frequency, p.Magnitude, second)
	}
	return tw.Flush()
}

func writePNG(curve processing.Curve, sweep transfer.Sweep, path string) error {
	o := chart.Options{Title: curve.Variant.String(), YLabel: "Level (dB)", LogX: sweep.Log}
	line := chart.FromPoints(curve.Variant.String(), curve.Points, chart.Level)
	if curve.Variant == transfer.Impedance {
		o.YLabel = "Impedance (ohms)"
		line = chart.FromPoints(curve.Variant.String(), curve.Points, curve.Ohms)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart: %w", err)
	}
	if err := chart.PNG(f, o, 8*vg.Inch, 5*vg.Inch, line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func variantNames() string {
	names := make([]string, 0, len(transfer.Variants()))
	for _, v := range transfer.Variants() {
		names = append(names, v.String())
	}
	return strings.Join(names, ", ")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "basscalc: "+format+"\n", args...)
	os.Exit(1)
}
