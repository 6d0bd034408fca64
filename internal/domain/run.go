package domain

import "time"

type RunState string

const (
	StateInit             RunState = "INIT"
	StatePolicyLoaded     RunState = "POLICY_LOADED"
	StateListingFetched   RunState = "LISTING_FETCHED"
	StateDetailsProcessed RunState = "DETAILS_PROCESSED"
	StateFeedFetched      RunState = "FEED_FETCHED"
	StateReportsJoined    RunState = "REPORTS_JOINED"
	StateDone             RunState = "DONE"
	StateFailed           RunState = "FAILED"
)

type RunOutcome string

const (
	OutcomeSuccess           RunOutcome = "success"
	OutcomePolicyFetchFailed RunOutcome = "policy_fetch_failed"
	OutcomePolicyDenied      RunOutcome = "policy_denied"
	OutcomeBudgetExceeded    RunOutcome = "budget_exceeded"
	OutcomeUnexpectedError   RunOutcome = "unexpected_error"
)

// ExitCode maps the outcome to the process exit status.
func (o RunOutcome) ExitCode() int {
	switch o {
	case OutcomeSuccess:
		return 0
	case OutcomePolicyFetchFailed:
		return 2
	case OutcomePolicyDenied:
		return 3
	case OutcomeBudgetExceeded:
		return 10
	default:
		return 11
	}
}

// RunStats holds statistics about one harvest run.
type RunStats struct {
	RunID             int64
	State             RunState
	Outcome           RunOutcome
	Reason            string
	Requests          int
	ArticlesInserted  int
	ArticlesUpdated   int
	ArticlesUnchanged int
	ArticlesSkipped   int
	FixturesInserted  int
	FixturesUpdated   int
	ReportsAttached   int
	Errors            int
	Published         int
	StartedAt         time.Time
	Duration          time.Duration
}
