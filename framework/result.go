package framework

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes the end-of-run summary to standard output.
func PrintResults(results Results) {
	if results.OK() {
		color.New(color.FgGreen, color.Bold).Printf("All tests passed (%d)\n", len(results.Tests))
		return
	}
	color.New(color.FgRed, color.Bold).Printf("%d of %d tests failed:\n", len(results.Failures), len(results.Tests))
	for _, f := range results.Failures {
		color.New(color.FgRed).Printf("  %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("    %s\n", line)
			}
		}
	}
}
