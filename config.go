package epicreport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/ethereum-optimism/infra/epic-report/flags"
	"github.com/ethereum-optimism/infra/epic-report/reporting"
)

// Config holds the application configuration
type Config struct {
	Input           string // CSV of per-test-case results
	Title           string // Heading drawn above the summary table
	TableOut        string // Summary table PNG, skipped when empty
	PieOut          string // Status pie chart, skipped when empty
	BarOut          string // Volume bar chart, skipped when empty
	XLSXOut         string // Summary workbook, skipped when empty
	XLSXStableCopy  string // Extra copy of the workbook under a fixed name
	SortByStatus    bool   // Order Epics by status tier then pass rate
	LabelUntagged   bool   // Group rows without an Epic under their Story
	PrintSummary    bool   // Print the console summary table
	MetricsTextfile string // Prometheus textfile output, skipped when empty
	Log             log.Logger
}

// fileConfig is the YAML form of the report settings. Pointer fields tell an
// absent key apart from an explicit false or empty value.
type fileConfig struct {
	Title   *string `yaml:"title"`
	Outputs struct {
		Table          *string `yaml:"table"`
		Pie            *string `yaml:"pie"`
		Bar            *string `yaml:"bar"`
		XLSX           *string `yaml:"xlsx"`
		XLSXStableCopy *string `yaml:"xlsx_stable_copy"`
	} `yaml:"outputs"`
	SortByStatus  *bool `yaml:"sort_by_status"`
	LabelUntagged *bool `yaml:"label_untagged"`
}

// NewConfig creates a new Config from cli context. Settings from the --config
// file replace flag defaults, but never a flag that was set explicitly.
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	input := ctx.String(flags.Input.Name)
	if input == "" {
		input = ctx.Args().First()
	}
	if input == "" {
		return nil, errors.New("input CSV is required (pass it as an argument or with --input)")
	}

	cfg := &Config{
		Input:           input,
		Title:           ctx.String(flags.Title.Name),
		TableOut:        ctx.String(flags.TableOut.Name),
		PieOut:          ctx.String(flags.PieOut.Name),
		BarOut:          ctx.String(flags.BarOut.Name),
		XLSXOut:         ctx.String(flags.XLSXOut.Name),
		XLSXStableCopy:  ctx.String(flags.XLSXStableCopy.Name),
		SortByStatus:    ctx.Bool(flags.SortByStatus.Name),
		LabelUntagged:   ctx.Bool(flags.LabelUntagged.Name),
		PrintSummary:    ctx.Bool(flags.PrintSummary.Name),
		MetricsTextfile: ctx.String(flags.MetricsTextfile.Name),
		Log:             log,
	}

	if path := ctx.String(flags.ConfigFile.Name); path != "" {
		fc, err := loadFileConfig(path)
		if err != nil {
			return nil, err
		}
		cfg.merge(fc, ctx.IsSet)
		log.Debug("Merged report config file", "path", path)
	}

	// A stable copy on its own also gets the dated workbook next to it
	if cfg.XLSXOut == "" && cfg.XLSXStableCopy != "" {
		cfg.XLSXOut = reporting.DatedWorkbookPath(cfg.XLSXStableCopy, time.Now())
	}

	return cfg, nil
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return &fc, nil
}

// merge copies every setting present in fc, unless isSet reports that the
// matching flag was given explicitly.
func (c *Config) merge(fc *fileConfig, isSet func(name string) bool) {
	mergeValue(&c.Title, fc.Title, isSet(flags.Title.Name))
	mergeValue(&c.TableOut, fc.Outputs.Table, isSet(flags.TableOut.Name))
	mergeValue(&c.PieOut, fc.Outputs.Pie, isSet(flags.PieOut.Name))
	mergeValue(&c.BarOut, fc.Outputs.Bar, isSet(flags.BarOut.Name))
	mergeValue(&c.XLSXOut, fc.Outputs.XLSX, isSet(flags.XLSXOut.Name))
	mergeValue(&c.XLSXStableCopy, fc.Outputs.XLSXStableCopy, isSet(flags.XLSXStableCopy.Name))
	mergeValue(&c.SortByStatus, fc.SortByStatus, isSet(flags.SortByStatus.Name))
	mergeValue(&c.LabelUntagged, fc.LabelUntagged, isSet(flags.LabelUntagged.Name))
}

func mergeValue[T any](dst *T, src *T, flagSet bool) {
	if src == nil || flagSet {
		return
	}
	*dst = *src
}

// WorkbookPaths lists every path the summary workbook is written to.
func (c *Config) WorkbookPaths() []string {
	var paths []string
	if c.XLSXOut != "" {
		paths = append(paths, c.XLSXOut)
	}
	if c.XLSXStableCopy != "" && c.XLSXStableCopy != c.XLSXOut {
		paths = append(paths, c.XLSXStableCopy)
	}
	return paths
}
