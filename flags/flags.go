package flags

import (
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/infra/epic-report/reporting"
	opservice "github.com/ethereum-optimism/optimism/op-service"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
)

const EnvVarPrefix = "EPIC_REPORT"

const DefaultTableOut = "epic_summary_table.png"

var (
	Input = &cli.StringFlag{
		Name:    "input",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "INPUT"),
		Usage:   "Path to the test results CSV (may also be given as the first argument)",
	}
	ConfigFile = &cli.StringFlag{
		Name:    "config",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "CONFIG"),
		Usage:   "Path to a YAML report config (eg. 'epic-report.yaml')",
	}
	Title = &cli.StringFlag{
		Name:    "title",
		Value:   reporting.DefaultTitle,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "TITLE"),
		Usage:   "Title drawn above the summary table",
	}
	TableOut = &cli.StringFlag{
		Name:    "table-out",
		Value:   DefaultTableOut,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "TABLE_OUT"),
		Usage:   "Path of the summary table PNG. Set to '' to skip it.",
	}
	PieOut = &cli.StringFlag{
		Name:    "pie-out",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "PIE_OUT"),
		Usage:   "Path of the status pie chart (.png or .svg)",
	}
	BarOut = &cli.StringFlag{
		Name:    "bar-out",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "BAR_OUT"),
		Usage:   "Path of the per-Epic volume bar chart (.png or .svg)",
	}
	XLSXOut = &cli.StringFlag{
		Name:    "xlsx-out",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "XLSX_OUT"),
		Usage:   "Path of the summary workbook (.xlsx). Defaults to a dated name next to --xlsx-stable-copy when only that is set.",
	}
	XLSXStableCopy = &cli.StringFlag{
		Name:    "xlsx-stable-copy",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "XLSX_STABLE_COPY"),
		Usage:   "Additional fixed path the workbook is copied to, for dashboards that read a stable name",
	}
	SortByStatus = &cli.BoolFlag{
		Name:    "sort-by-status",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "SORT_BY_STATUS"),
		Usage:   "Order Epics by status tier then pass rate instead of by name",
	}
	LabelUntagged = &cli.BoolFlag{
		Name:    "label-untagged",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "LABEL_UNTAGGED"),
		Usage:   "Group rows without an Epic under their Story ('<Story> - No EPIC Tagged') or 'Test Cases Not Tagged'",
	}
	PrintSummary = &cli.BoolFlag{
		Name:    "print-summary",
		Value:   true,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "PRINT_SUMMARY"),
		Usage:   "Print the summary table to stdout",
	}
	MetricsTextfile = &cli.StringFlag{
		Name:    "metrics.textfile",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "METRICS_TEXTFILE"),
		Usage:   "Write report metrics to this path in the Prometheus textfile format",
	}
)

var optionalFlags = []cli.Flag{
	Input,
	ConfigFile,
	Title,
	TableOut,
	PieOut,
	BarOut,
	XLSXOut,
	XLSXStableCopy,
	SortByStatus,
	LabelUntagged,
	PrintSummary,
	MetricsTextfile,
}
var Flags []cli.Flag

func init() {
	optionalFlags = append(optionalFlags, oplog.CLIFlags(EnvVarPrefix)...)

	Flags = optionalFlags
}
