package cli

import (
	"fmt"
	"io"
	"os"
	"time"
)

type BuildStep struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Success   bool
	Error     string
}

type cliOutputWithColors interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
}

type unitCounts struct {
	code        int
	style       int
	passthrough int
}

type ReportEntry struct {
	Subject string
	Message string
	Details []string
}

type BuildReport struct {
	colors      cliOutputWithColors
	out         io.Writer
	errOut      io.Writer
	steps       []*BuildStep
	warnings    []ReportEntry
	errors      []ReportEntry
	startTime   time.Time
	components  int
	artifacts   int
	units       unitCounts
	outputDir   string
	hasFailures bool
}

func NewBuildReport(colors cliOutputWithColors, outputDir string) *BuildReport {
	return &BuildReport{
		colors:    colors,
		out:       os.Stdout,
		errOut:    os.Stderr,
		startTime: time.Now(),
		outputDir: outputDir,
	}
}

func (r *BuildReport) SetWriters(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
}

func (r *BuildReport) SetComponentCount(count int) {
	r.components = count
}

func (r *BuildReport) SetUnitCounts(code, style, passthrough int) {
	r.units = unitCounts{code: code, style: style, passthrough: passthrough}
}

func (r *BuildReport) SetArtifactCount(count int) {
	r.artifacts = count
}

func (r *BuildReport) StartStep(name string) *BuildStep {
	step := &BuildStep{
		Name:      name,
		StartTime: time.Now(),
	}
	r.steps = append(r.steps, step)
	return step
}

func (r *BuildReport) EndStep(step *BuildStep, success bool, err string) {
	step.EndTime = time.Now()
	step.Success = success
	step.Error = err
	if !success {
		r.hasFailures = true
	}
}

// AddWarning records a problem that leaves the build usable, such as an
// artifact that kept its placeholder markers.
func (r *BuildReport) AddWarning(subject string, message string, details []string) {
	r.warnings = append(r.warnings, ReportEntry{
		Subject: subject,
		Message: message,
		Details: details,
	})
}

func (r *BuildReport) AddError(subject string, message string, details []string) {
	r.errors = append(r.errors, ReportEntry{
		Subject: subject,
		Message: message,
		Details: details,
	})
	r.hasFailures = true
}

func (r *BuildReport) Render() {
	duration := time.Since(r.startTime)

	if len(r.errors) == 0 && len(r.warnings) == 0 {
		r.renderMinimal(duration)
	} else {
		r.renderVerbose(duration)
	}
}

func (r *BuildReport) renderSummary() {
	fmt.Fprintf(r.out, "  "+r.colors.Green("✓ ")+"%d units transformed (%d code, %d style, %d passthrough)\n",
		r.units.code+r.units.style+r.units.passthrough, r.units.code, r.units.style, r.units.passthrough)
	fmt.Fprintf(r.out, "  "+r.colors.Green("✓ ")+"%d components extracted\n", r.components)
	fmt.Fprintf(r.out, "  "+r.colors.Green("✓ ")+"%d artifacts finalized\n", r.artifacts)
}

func (r *BuildReport) renderMinimal(duration time.Duration) {
	r.renderSummary()

	var failed []string
	for _, step := range r.steps {
		if !step.Success {
			failed = append(failed, "  "+r.colors.Red("✗ ")+step.Name)
		}
	}

	if len(failed) == 0 {
		fmt.Fprintf(r.out, "  "+r.colors.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	} else {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "Failed steps:")
		for _, line := range failed {
			fmt.Fprintln(r.out, line)
		}
	}

	r.renderOutputDir()
}

func (r *BuildReport) renderVerbose(duration time.Duration) {
	r.renderSummary()

	fmt.Fprintln(r.out)
	for _, step := range r.steps {
		status := r.colors.Green("✓")
		if !step.Success {
			status = r.colors.Red("✗")
		}
		fmt.Fprintf(r.out, "  %s %s\n", status, step.Name)
	}

	if len(r.errors) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.errOut, "  "+r.colors.Red("✗ ")+"Errors (%d):\n", len(r.errors))
		r.renderEntries(r.errors)
	}

	if len(r.warnings) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "  "+r.colors.Yellow("⚠ ")+"Warnings (%d):\n", len(r.warnings))
		r.renderEntries(r.warnings)
	}

	fmt.Fprintln(r.out)
	if len(r.errors) > 0 {
		fmt.Fprintf(r.errOut, "  %s\n", r.colors.Red(fmt.Sprintf("Build failed after %s", formatDuration(duration))))
	} else {
		fmt.Fprintf(r.out, "  "+r.colors.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	}

	r.renderOutputDir()
}

func (r *BuildReport) renderOutputDir() {
	if r.outputDir != "" {
		fmt.Fprintf(r.out, "\n  %s\n", r.colors.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderEntries(entries []ReportEntry) {
	for _, entry := range entries {
		fmt.Fprintf(r.out, "  %s %s\n", r.colors.Red("✗"), entry.Subject)
		fmt.Fprintf(r.out, "    %s\n", entry.Message)

		for _, detail := range deduplicateStrings(entry.Details) {
			fmt.Fprintf(r.out, "      • %s\n", detail)
		}
	}
}

func (r *BuildReport) HasFailures() bool {
	return r.hasFailures
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

// deduplicateStrings keeps first-seen order.
func deduplicateStrings(items []string) []string {
	if len(items) <= 1 {
		return items
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(items))
	for _, item := range items {
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	result := make([]string, 0, len(order))
	for _, item := range order {
		if counts[item] > 1 {
			result = append(result, fmt.Sprintf("%s (%d occurrences)", item, counts[item]))
		} else {
			result = append(result, item)
		}
	}
	return result
}
