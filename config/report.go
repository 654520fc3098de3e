package config

// Report is the printable form of a Result, shared by the CLI and the HTTP API.
type Report struct {
	Repository  string             `json:"repository" toml:"repository" yaml:"repository"`
	Outcome     Outcome            `json:"outcome" toml:"outcome" yaml:"outcome"`
	Reason      string             `json:"reason,omitempty" toml:"reason,omitempty" yaml:"reason,omitempty"`
	Error       string             `json:"error,omitempty" toml:"error,omitempty" yaml:"error,omitempty"`
	Config      Config             `json:"config" toml:"config" yaml:"config"`
	Fallbacks   []FallbackReport   `json:"fallbacks,omitempty" toml:"fallbacks,omitempty" yaml:"fallbacks,omitempty"`
	Diagnostics []DiagnosticReport `json:"diagnostics,omitempty" toml:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Unknown     []string           `json:"unknown,omitempty" toml:"unknown,omitempty" yaml:"unknown,omitempty"`
}

// FallbackReport describes a field that kept its default.
type FallbackReport struct {
	Path     string `json:"path" toml:"path" yaml:"path"`
	Expected string `json:"expected" toml:"expected" yaml:"expected"`
	Got      string `json:"got" toml:"got" yaml:"got"`
	Message  string `json:"message" toml:"message" yaml:"message"`
}

// DiagnosticReport describes a skipped line.
type DiagnosticReport struct {
	Line    int    `json:"line" toml:"line" yaml:"line"`
	Message string `json:"message" toml:"message" yaml:"message"`
}

// NewReport flattens result into a Report.
func NewReport(result Result) Report {
	report := Report{
		Repository:  result.Repository,
		Outcome:     result.Outcome,
		Reason:      ReasonLabel(result.Reason),
		Error:       "",
		Config:      result.Config,
		Fallbacks:   nil,
		Diagnostics: nil,
		Unknown:     result.Unknown,
	}

	if result.Reason != nil {
		report.Error = result.Reason.Error()
	}

	for _, field := range result.Fallbacks {
		report.Fallbacks = append(report.Fallbacks, FallbackReport{
			Path:     field.Path,
			Expected: field.Expected.String(),
			Got:      field.Got.String(),
			Message:  field.Error(),
		})
	}

	for _, diag := range result.Diagnostics {
		report.Diagnostics = append(report.Diagnostics, DiagnosticReport{Line: diag.Line, Message: diag.Message})
	}

	return report
}
