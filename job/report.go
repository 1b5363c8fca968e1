package job

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
)

// FormattedCounts holds the human readable form of an estimate.
type FormattedCounts struct {
	Runtime                     string `yaml:"runtime" json:"runtime"`
	RQOPS                       string `yaml:"rqops" json:"rqops"`
	PhysicalQubits              string `yaml:"physicalQubits" json:"physicalQubits"`
	AlgorithmicLogicalQubits    string `yaml:"algorithmicLogicalQubits" json:"algorithmicLogicalQubits"`
	LogicalDepth                string `yaml:"logicalDepth" json:"logicalDepth"`
	NumTStates                  string `yaml:"numTstates" json:"numTstates"`
	CodeDistance                string `yaml:"codeDistance" json:"codeDistance"`
	LogicalCycleTime            string `yaml:"logicalCycleTime" json:"logicalCycleTime"`
	ClockFrequency              string `yaml:"clockFrequency" json:"clockFrequency"`
	NumTFactories               string `yaml:"numTfactories" json:"numTfactories"`
	TFactoryRuntime             string `yaml:"tfactoryRuntime" json:"tfactoryRuntime"`
	PhysicalQubitsForTFactories string `yaml:"physicalQubitsForTfactories" json:"physicalQubitsForTfactories"`
	PhysicalQubitsForAlgorithm  string `yaml:"physicalQubitsForAlgorithm" json:"physicalQubitsForAlgorithm"`
	RequiredLogicalErrorRate    string `yaml:"requiredLogicalQubitErrorRate" json:"requiredLogicalQubitErrorRate"`
	ErrorBudget                 string `yaml:"errorBudget" json:"errorBudget"`
}

// NewFormattedCounts formats an estimate.
func NewFormattedCounts(e *Estimate) *FormattedCounts {
	c := e.PhysicalCounts
	b := c.Breakdown

	r := &FormattedCounts{
		Runtime:                     FormatDuration(c.Runtime),
		RQOPS:                       FormatMetric(c.RQOPS),
		PhysicalQubits:              FormatThousands(c.PhysicalQubits),
		AlgorithmicLogicalQubits:    FormatThousands(b.AlgorithmicLogicalQubits),
		LogicalDepth:                FormatThousands(b.LogicalDepth),
		NumTStates:                  FormatThousands(b.NumTStates),
		CodeDistance:                strconv.FormatUint(e.LogicalQubit.CodeDistance, 10),
		LogicalCycleTime:            FormatDuration(e.LogicalQubit.LogicalCycleTime),
		ClockFrequency:              FormatMetric(uint64(math.Round(b.ClockFrequency))) + "Hz",
		NumTFactories:               FormatThousands(b.NumTFactories),
		PhysicalQubitsForTFactories: FormatThousands(b.PhysicalQubitsForTFactories),
		PhysicalQubitsForAlgorithm:  FormatThousands(b.PhysicalQubitsForAlgorithm),
		RequiredLogicalErrorRate:    FormatRate(b.RequiredLogicalQubitErrorRate),
		ErrorBudget: FormatRate(e.ErrorBudget.Logical +
			e.ErrorBudget.TStates + e.ErrorBudget.Rotations),
	}

	if e.TFactory != nil {
		r.TFactoryRuntime = FormatDuration(e.TFactory.Runtime)
	}

	return r
}

// FormatThousands inserts commas between groups of three digits.
func FormatThousands(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}

	var sb strings.Builder

	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}

	for i := head; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}

	return sb.String()
}

var durationUnits = []struct {
	ns   float64
	name string
}{
	{86_400e9, "days"},
	{3_600e9, "hours"},
	{60e9, "mins"},
	{1e9, "secs"},
	{1e6, "millisecs"},
	{1e3, "microsecs"},
}

// FormatDuration formats ns with the largest unit that keeps the value at
// least 1.
func FormatDuration(ns uint64) string {
	v := float64(ns)
	for _, u := range durationUnits {
		if v >= u.ns {
			return fmt.Sprintf("%s %s", trimFloat(v/u.ns), u.name)
		}
	}

	return fmt.Sprintf("%d nanosecs", ns)
}

var metricPrefixes = []struct {
	scale  float64
	prefix string
}{
	{1e18, "E"},
	{1e15, "P"},
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
}

// FormatMetric formats n with a metric prefix.
func FormatMetric(n uint64) string {
	v := float64(n)
	for _, p := range metricPrefixes {
		if v >= p.scale {
			return trimFloat(v/p.scale) + p.prefix
		}
	}

	return strconv.FormatUint(n, 10)
}

// FormatRate formats an error rate in scientific notation.
func FormatRate(r float64) string {
	return strconv.FormatFloat(r, 'e', 2, 64)
}

func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")

	return strings.TrimSuffix(s, ".")
}

// WriteText writes an aligned summary of the results.
func WriteText(w io.Writer, results []*Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, r := range results {
		if len(results) > 1 {
			fmt.Fprintf(tw, "Item %d\t\n", i)
		}

		fmt.Fprintf(tw, "Qubit\t%s\n", r.JobParams.QubitParams.Name)
		fmt.Fprintf(tw, "QEC scheme\t%s\n", r.JobParams.QECScheme.Name)

		if r.PhysicalCountsFormatted != nil {
			writeFormattedCounts(tw, "", r.PhysicalCountsFormatted)
		}

		for j, e := range r.FrontierEntries {
			writeFormattedCounts(tw, fmt.Sprintf("[%d] ", j), e.PhysicalCountsFormatted)
		}

		fmt.Fprintln(tw, "\t")
	}

	return tw.Flush()
}

func writeFormattedCounts(w io.Writer, prefix string, r *FormattedCounts) {
	rows := [][2]string{
		{"Runtime", r.Runtime},
		{"rQOPS", r.RQOPS},
		{"Physical qubits", r.PhysicalQubits},
		{"Logical qubits", r.AlgorithmicLogicalQubits},
		{"Logical depth", r.LogicalDepth},
		{"T states", r.NumTStates},
		{"Code distance", r.CodeDistance},
		{"Logical cycle time", r.LogicalCycleTime},
		{"T factories", r.NumTFactories},
		{"Physical qubits for T factories", r.PhysicalQubitsForTFactories},
		{"Required logical error rate", r.RequiredLogicalErrorRate},
	}

	for _, row := range rows {
		fmt.Fprintf(w, "%s%s\t%s\n", prefix, row[0], row[1])
	}
}
