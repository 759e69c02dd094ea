// Command eqinfo prints the filter sections and magnitude response of the
// equalizer for a given set of parameters.
//
// Usage:
//
//	eqinfo [flags] [frequency ...]
//
// Without frequency arguments it prints the response at octave-spaced
// points from 20 Hz to 20 kHz. Frequencies accept an optional k suffix.
//
// Examples:
//
//	eqinfo -lowcut 8000 -lowcut-slope 48
//	eqinfo -peak 1000 -gain 6 -q 2 1k 2k 4k
//	eqinfo -sr 96000 -measure
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/internal/eqflags"
	"github.com/cwbudde/algo-peq/measure/response"
)

var defaultPoints = []float64{20, 40, 80, 160, 315, 630, 1250, 2500, 5000, 10000, 20000}

type options struct {
	sampleRate float64
	fftSize    int
	measure    bool
	sections   bool
	settings   eq.Settings
	points     []float64
}

func main() {
	fs := flag.NewFlagSet("eqinfo", flag.ExitOnError)
	sampleRate := fs.Float64("sr", 48000, "sample rate in Hz")
	measure := fs.Bool("measure", false, "add a column measured from the FFT of the impulse response")
	fftSize := fs.Int("fft", 1<<16, "FFT size for -measure (power of two)")
	noSections := fs.Bool("no-sections", false, "omit the section table")
	values := eqflags.Register(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eqinfo [flags] [frequency ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the designed sections and the magnitude response of the EQ.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  eqinfo -lowcut 8000 -lowcut-slope 48\n")
		fmt.Fprintf(os.Stderr, "  eqinfo -peak 1000 -gain 6 -q 2 1k 2k 4k\n")
		fmt.Fprintf(os.Stderr, "  eqinfo -sr 96000 -measure\n")
	}
	_ = fs.Parse(os.Args[1:])

	settings, err := values.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	points, err := parsePoints(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	opts := options{
		sampleRate: *sampleRate,
		fftSize:    *fftSize,
		measure:    *measure,
		sections:   !*noSections,
		settings:   settings,
		points:     points,
	}
	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parsePoints(args []string) ([]float64, error) {
	if len(args) == 0 {
		return defaultPoints, nil
	}
	out := make([]float64, 0, len(args))
	for _, a := range args {
		s := strings.ToLower(strings.TrimSpace(a))
		scale := 1.0
		if strings.HasSuffix(s, "k") {
			s, scale = strings.TrimSuffix(s, "k"), 1000
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !(f > 0) {
			return nil, fmt.Errorf("invalid frequency %q", a)
		}
		out = append(out, f*scale)
	}
	return out, nil
}

func run(w io.Writer, opts options) error {
	p := &eq.Processor{}
	if err := p.Configure(opts.sampleRate, core.DefaultProcessorConfig().BlockSize); err != nil {
		return err
	}
	if err := p.Update(opts.settings); err != nil {
		return err
	}

	s := opts.settings
	fmt.Fprintf(w, "sample rate %.0f Hz\n", opts.sampleRate)
	fmt.Fprintf(w, "low-cut  %8.1f Hz  %v\n", s.LowCutFreq, s.LowCutSlope)
	fmt.Fprintf(w, "peak     %8.1f Hz  %+.1f dB  Q %.2f\n", s.PeakFreq, s.PeakGainDB, s.PeakQuality)
	fmt.Fprintf(w, "high-cut %8.1f Hz  %v\n\n", s.HighCutFreq, s.HighCutSlope)

	chain := p.Chain(0)
	if opts.sections {
		if err := printSections(w, chain); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	var (
		measured *response.Response
		err      error
	)
	if opts.measure {
		measured, err = response.Measure(chain.ProcessBlock, opts.sampleRate, opts.fftSize)
		if err != nil {
			return err
		}
	}
	return printResponse(w, chain, opts.sampleRate, opts.points, measured)
}

func printSections(w io.Writer, chain *eq.ChannelChain) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Stage\tSection\tState\tB0\tB1\tB2\tA1\tA2\tPole radius\n")
	fmt.Fprintf(tw, "-----\t-------\t-----\t--\t--\t--\t--\t--\t-----------\n")

	row := func(stage string, i int, bypassed bool, c [5]float64, radius float64) {
		state := "active"
		if bypassed {
			state = "bypass"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.9f\t%.9f\t%.9f\t%.9f\t%.9f\t%.6f\n",
			stage, i, state, c[0], c[1], c[2], c[3], c[4], radius)
	}

	for _, stage := range []struct {
		name string
		c    *eq.CutCascade
	}{{"low-cut", chain.LowCut()}, {"high-cut", chain.HighCut()}} {
		for i := range eq.MaxSections {
			sec := stage.c.Section(i)
			c := sec.Coefficients()
			row(stage.name, i, sec.Bypassed(), [5]float64{c.B0, c.B1, c.B2, c.A1, c.A2}, c.PoleRadius())
		}
	}
	pc := chain.Peak().Coefficients()
	row("peak", 0, chain.Peak().Bypassed(), [5]float64{pc.B0, pc.B1, pc.B2, pc.A1, pc.A2}, pc.PoleRadius())

	return tw.Flush()
}

func printResponse(w io.Writer, chain *eq.ChannelChain, sampleRate float64, points []float64, measured *response.Response) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := "Frequency [Hz]\tLow-cut [dB]\tHigh-cut [dB]\tTotal [dB]\t"
	if measured != nil {
		header += "Measured [dB]\t"
	}
	fmt.Fprintln(tw, header)

	for _, f := range points {
		if f >= sampleRate/2 {
			continue
		}
		fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\t%.2f\t",
			f,
			chain.LowCut().MagnitudeDB(f, sampleRate),
			chain.HighCut().MagnitudeDB(f, sampleRate),
			chain.MagnitudeDB(f, sampleRate))
		if measured != nil {
			fmt.Fprintf(tw, "%.2f\t", measured.MagnitudeDBAt(f))
		}
		fmt.Fprintln(tw)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush response table: %w", err)
	}
	return nil
}
