package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghodss/yaml"
	"github.com/jessevdk/go-flags"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc"
	"go.buf.build/protocolbuffers/go/prometheus/prometheus"
	"go.uber.org/zap"

	"seqgen/config"
	"seqgen/ingest"
	"seqgen/progression"
	"seqgen/remote"
	"seqgen/timeline"
)

// defaultUnboundedLimit is how many values generate prints for a sequence
// without a bound when --limit is not given.
const defaultUnboundedLimit = 20

type globalOptions struct {
	Verbose bool `long:"verbose" short:"v" description:"Log debug output."`
}

type describeCommand struct {
	Output string `long:"output" short:"o" default:"json" choice:"json" choice:"yaml" description:"Output format."`
	Args   struct {
		Specs []string `positional-arg-name:"SPEC" required:"1"`
	} `positional-args:"yes"`
}

type generateCommand struct {
	Limit int `long:"limit" short:"n" description:"Maximum number of values to print. Defaults to 20 for unbounded sequences."`
	Args  struct {
		Spec string `positional-arg-name:"SPEC" required:"yes"`
	} `positional-args:"yes"`
}

type writeCommand struct {
	PrometheusURL string `long:"prometheus.url" required:"yes" description:"Prometheus http url."`
	ConfigFile    string `long:"config.file" default:"./config.yml" description:"Config file location."`
}

var (
	gopts  globalOptions
	logger = zap.NewNop()
)

var stdout io.Writer = os.Stdout

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func (c *describeCommand) Execute([]string) error {
	responses := lo.Map(c.Args.Specs, func(spec string, _ int) progression.Response {
		return progression.Describe(spec, progression.WithLogger(logger))
	})

	for _, resp := range responses {
		var out []byte
		var err error
		if c.Output == "yaml" {
			out, err = yaml.Marshal(resp)
		} else {
			out, err = json.Marshal(resp)
			out = append(out, '\n')
		}
		if err != nil {
			return err
		}
		if _, err := stdout.Write(out); err != nil {
			return err
		}
	}

	failed := lo.CountBy(responses, func(resp progression.Response) bool {
		return !resp.OK()
	})
	if failed > 0 {
		return fmt.Errorf("%d of %d specs failed to parse", failed, len(responses))
	}
	return nil
}

func (c *generateCommand) Execute([]string) error {
	seq, err := progression.Parse(c.Args.Spec, progression.WithLogger(logger))
	if err != nil {
		return err
	}

	limit := c.Limit
	if limit <= 0 {
		limit = defaultUnboundedLimit
		if seq.Bounded() {
			limit = timeline.DefaultLimit
		}
	}

	gen := progression.NewGenerator(seq)
	for _, val := range progression.Take(gen.Next, limit) {
		if _, err := fmt.Fprintln(stdout, progression.FormatNumber(val)); err != nil {
			return err
		}
	}
	if !gen.Exhausted() {
		logger.Debug("output truncated", zap.Int("limit", limit))
	}
	return nil
}

type realtimeSeries struct {
	name   string
	labels []*prometheus.Label
	rt     *timeline.Realtime
}

func (c *writeCommand) Execute([]string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, syscall.SIGINT)
	defer stop()

	root, err := config.Load(c.ConfigFile)
	if err != nil {
		return err
	}
	client, err := remote.NewClient(c.PrometheusURL, logger)
	if err != nil {
		return err
	}
	interval := root.IntervalDuration()

	var realtime []realtimeSeries
	for _, ts := range root.Series {
		series, err := ingest.ParseSeries(ts.Series)
		if err != nil {
			return err
		}

		if ts.Sequence != "" {
			if err := c.backfill(ctx, client, root, ts, series.Labels); err != nil {
				return err
			}
		}

		if ts.Realtime != "" {
			seq, err := progression.Parse(ts.Realtime, progression.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("series %v: %w", ts.Series, err)
			}
			opts, err := transformOptions(root, ts)
			if err != nil {
				return err
			}
			realtime = append(realtime, realtimeSeries{
				name:   ts.Series,
				labels: series.Labels,
				rt:     timeline.NewRealtime(seq, opts...),
			})
		}
	}

	logger.Info("done writing precalculated series")

	if len(realtime) == 0 {
		return nil
	}
	logger.Info("entering realtime mode", zap.Int("series", len(realtime)))
	return runRealtime(ctx, client, interval, realtime)
}

func transformOptions(root *config.Root, ts config.Timeseries) ([]timeline.Option, error) {
	var opts []timeline.Option
	if root.Limit > 0 {
		opts = append(opts, timeline.WithLimit(root.Limit))
	}
	if ts.Transform != "" {
		tr, err := timeline.NewTransform(root.Script, ts.Transform)
		if err != nil {
			return nil, fmt.Errorf("series %v: %w", ts.Series, err)
		}
		opts = append(opts, timeline.WithTransform(tr))
	}
	return opts, nil
}

func (c *writeCommand) backfill(ctx context.Context, client *remote.Client, root *config.Root, ts config.Timeseries, labels []*prometheus.Label) error {
	seq, err := progression.Parse(ts.Sequence, progression.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("series %v: %w", ts.Series, err)
	}
	opts, err := transformOptions(root, ts)
	if err != nil {
		return err
	}

	samples, truncated, err := timeline.Backfill(seq, root.IntervalDuration(), time.Now(), opts...)
	if err != nil {
		return fmt.Errorf("series %v: %w", ts.Series, err)
	}
	if truncated {
		logger.Warn("sequence truncated",
			zap.String("series", ts.Series),
			zap.Int("samples", len(samples)))
	}

	if err := client.Write(ctx, remote.Request(labels, samples)); err != nil {
		return fmt.Errorf("error writing series %v: %w", ts.Series, err)
	}
	logger.Debug("wrote series", zap.String("series", ts.Series), zap.Int("samples", len(samples)))
	return nil
}

func runRealtime(ctx context.Context, client *remote.Client, interval time.Duration, series []realtimeSeries) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var wg conc.WaitGroup
	for _, s := range series {
		wg.Go(func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case now := <-ticker.C:
					sample, ok, err := s.rt.Next(now)
					if err != nil {
						cancel(fmt.Errorf("series %v: %w", s.name, err))
						return
					}
					if !ok {
						logger.Info("realtime sequence ended", zap.String("series", s.name))
						return
					}
					if err := client.Write(ctx, remote.Request(s.labels, []timeline.Sample{sample})); err != nil {
						cancel(fmt.Errorf("error writing series %v: %w", s.name, err))
						return
					}
					logger.Debug("next value", zap.String("series", s.name), zap.Float64("value", sample.Value))
				}
			}
		})
	}
	wg.Wait()

	if err := context.Cause(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("realtime mode finished")
	return nil
}

func newParser() *flags.Parser {
	parser := flags.NewParser(&gopts, flags.Default)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		l, err := newLogger(gopts.Verbose)
		if err != nil {
			return err
		}
		logger = l
		defer func() { _ = logger.Sync() }()
		return command.Execute(args)
	}

	lo.Must(parser.AddCommand("describe", "Describe sequence specs",
		"Print the parsed shape of each spec, or why it could not be parsed.", &describeCommand{}))
	lo.Must(parser.AddCommand("generate", "Print the values of a sequence",
		"Print the values of a sequence one per line.", &generateCommand{}))
	lo.Must(parser.AddCommand("write", "Write sequences to Prometheus",
		"Backfill configured sequences through remote write, then push realtime sequences every interval.", &writeCommand{}))
	return parser
}

func main() {
	if _, err := newParser().Parse(); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}
}
