package output

import (
	"encoding/json"
	"io"

	"github.com/jlighthall/tlcompare/pkg/tlcompare"
)

// JSONReport is the top-level JSON output structure for one comparison.
type JSONReport struct {
	File1   string        `json:"file1"`
	File2   string        `json:"file2"`
	Pass    bool          `json:"pass"`
	Reasons []string      `json:"reasons,omitempty"`
	Error   string        `json:"error,omitempty"`

	Counters JSONCounters `json:"counters"`
	Maxima   JSONMaxima   `json:"maxima"`

	UnitMismatch     bool    `json:"unit_mismatch"`
	UnitMismatchLine int     `json:"unit_mismatch_line,omitempty"`
	UnitMismatchRatio float64 `json:"unit_mismatch_ratio,omitempty"`

	CriticalNotice string `json:"critical_notice,omitempty"`

	Pattern *JSONPattern `json:"pattern,omitempty"`
}

// JSONCounters mirrors tlcompare.Counters for stable JSON field names.
type JSONCounters struct {
	ElemTotal         int `json:"elem_total"`
	DiffNonZero       int `json:"diff_nonzero"`
	DiffTrivial       int `json:"diff_trivial"`
	DiffNonTrivial    int `json:"diff_nontrivial"`
	DiffInsignificant int `json:"diff_insignificant"`
	DiffHighIgnore    int `json:"diff_high_ignore"`
	DiffSignificant   int `json:"diff_significant"`
	DiffMarginal      int `json:"diff_marginal"`
	DiffCritical      int `json:"diff_critical"`
	DiffError         int `json:"diff_error"`
	DiffNonError      int `json:"diff_nonerror"`
}

// JSONMaxEntry mirrors tlcompare.MaxEntry.
type JSONMaxEntry struct {
	Value float64 `json:"value"`
	Line  int     `json:"line"`
}

// JSONMaxima mirrors tlcompare.Maxima.
type JSONMaxima struct {
	MaxNonZero       JSONMaxEntry `json:"max_nonzero"`
	MaxNonTrivial    JSONMaxEntry `json:"max_nontrivial"`
	MaxSignificant   JSONMaxEntry `json:"max_significant"`
	MaxPercentError  JSONMaxEntry `json:"max_percent_error"`
	MaxPercentIsInf  bool         `json:"max_percent_is_inf"`
}

// JSONPattern mirrors tlcompare.PatternResult.
type JSONPattern struct {
	Classification  string  `json:"classification"`
	Slope           float64 `json:"slope"`
	Intercept       float64 `json:"intercept"`
	RSquared        float64 `json:"r_squared"`
	SlopePValue     float64 `json:"slope_p_value"`
	Autocorrelation float64 `json:"autocorrelation"`
	IsCorrelated    bool    `json:"is_correlated"`
	Runs            int     `json:"runs"`
	ExpectedRuns    float64 `json:"expected_runs"`
	RunZScore       float64 `json:"run_z_score"`
	IsRandom        bool    `json:"is_random"`
	SpikeRatio      float64 `json:"spike_ratio"`
	RMSE            float64 `json:"rmse"`
	N               int     `json:"n"`
}

// BuildJSONReport converts a Report into its JSON-serializable shape.
func BuildJSONReport(r *tlcompare.Report) *JSONReport {
	out := &JSONReport{
		File1:             r.File1,
		File2:             r.File2,
		Pass:              r.Pass,
		Reasons:           r.Reasons,
		UnitMismatch:      r.Flags.Has(tlcompare.UnitMismatch),
		UnitMismatchLine:  r.UnitMismatchLine,
		UnitMismatchRatio: r.UnitMismatchRatio,
		CriticalNotice:    r.CriticalNotice,
	}
	if r.FatalErr != nil {
		out.Error = r.FatalErr.Error()
	}

	c := r.Counters
	out.Counters = JSONCounters{
		ElemTotal:         c.ElemTotal,
		DiffNonZero:       c.DiffNonZero,
		DiffTrivial:       c.DiffTrivial,
		DiffNonTrivial:    c.DiffNonTrivial,
		DiffInsignificant: c.DiffInsignificant,
		DiffHighIgnore:    c.DiffHighIgnore,
		DiffSignificant:   c.DiffSignificant,
		DiffMarginal:      c.DiffMarginal,
		DiffCritical:      c.DiffCritical,
		DiffError:         c.DiffError,
		DiffNonError:      c.DiffNonError,
	}

	m := r.Maxima
	out.Maxima = JSONMaxima{
		MaxNonZero:      JSONMaxEntry{Value: m.MaxNonZero.Value, Line: m.MaxNonZero.Line},
		MaxNonTrivial:   JSONMaxEntry{Value: m.MaxNonTrivial.Value, Line: m.MaxNonTrivial.Line},
		MaxSignificant:  JSONMaxEntry{Value: m.MaxSignificant.Value, Line: m.MaxSignificant.Line},
		MaxPercentError: JSONMaxEntry{Value: m.MaxPercentError.Value, Line: m.MaxPercentError.Line},
		MaxPercentIsInf: m.MaxPercentIsInf,
	}

	if r.Pattern != nil {
		p := r.Pattern
		out.Pattern = &JSONPattern{
			Classification:  p.Pattern.String(),
			Slope:           p.Slope,
			Intercept:       p.Intercept,
			RSquared:        p.RSquared,
			SlopePValue:     p.SlopePValue,
			Autocorrelation: p.Autocorrelation,
			IsCorrelated:    p.IsCorrelated,
			Runs:            p.Runs,
			ExpectedRuns:    p.ExpectedRuns,
			RunZScore:       p.RunZScore,
			IsRandom:        p.IsRandom,
			SpikeRatio:      p.SpikeRatio,
			RMSE:            p.RMSE,
			N:               p.N,
		}
	}

	return out
}

// WriteJSON marshals report as indented JSON to w.
func WriteJSON(w io.Writer, r *tlcompare.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSONReport(r))
}
