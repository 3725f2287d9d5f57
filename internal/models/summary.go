package models

// ForgeSummary captures what a single forge run produced, for the final
// diagnostics output
type ForgeSummary struct {
	SourcePath     string   // analyzed source file
	OutputPath     string   // destination test file path
	CallablesFound int      // descriptors discovered by the analyzer
	Skipped        int      // descriptors excluded by forge::skip directives
	Filtered       int      // descriptors excluded by the --function filter
	TestsForged    int      // test definitions in the generated content
	Written        bool     // false when the AlreadyExists safety default skipped writing
	ForgedNames    []string // qualified names of the callables that received tests
}
