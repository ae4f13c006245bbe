package types

// ScanResult is the outcome of searching the working directory for one row.
// Empty MatchedFile and NewName mean the target was not found.
type ScanResult struct {
	Target      string
	MatchedFile string
	NewName     string
}

// Found reports whether a file matched the row's target
func (r ScanResult) Found() bool {
	return r.MatchedFile != ""
}

// NeedsRename reports whether the matched file differs from its new name
func (r ScanResult) NeedsRename() bool {
	return r.Found() && r.MatchedFile != r.NewName
}

// PlanItem is a single approved rename. Index points back into the scan results.
type PlanItem struct {
	Index   int
	OldName string
	NewName string
}

// RenamePlan is the ordered list of renames to apply
type RenamePlan []PlanItem

// BuildPlan keeps the rows that were found and whose name actually changes.
func BuildPlan(results []ScanResult) RenamePlan {
	plan := RenamePlan{}
	for i, r := range results {
		if !r.NeedsRename() {
			continue
		}
		plan = append(plan, PlanItem{Index: i, OldName: r.MatchedFile, NewName: r.NewName})
	}
	return plan
}

// Outcome classifies a single rename attempt
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeSourceMissing     Outcome = "failed-source-missing"
	OutcomeDestinationExists Outcome = "failed-destination-exists"
	OutcomeFailed            Outcome = "failed"
)

// Failed reports whether the outcome is any kind of failure
func (o Outcome) Failed() bool {
	return o != OutcomeSuccess
}

// RenameResult records what happened to one plan item
type RenameResult struct {
	PlanItem
	Outcome Outcome
	Err     error
}

// Progress is reported after every processed plan item
type Progress struct {
	Completed int
	Total     int
	Result    RenameResult
}

// Summary counts scan results by state
type Summary struct {
	Total       int
	NotFound    int
	NeedsRename int
	Unchanged   int
}

// Summarize tallies scan results
func Summarize(results []ScanResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case !r.Found():
			s.NotFound++
		case r.NeedsRename():
			s.NeedsRename++
		default:
			s.Unchanged++
		}
	}
	return s
}
