package statuses

// SubmitOutcome tells the caller what the high-score reconciliation
// did with a submission.
type SubmitOutcome int

const (
	ScoreCreated SubmitOutcome = iota
	ScoreUpdated
	ScoreUnchanged
)

func (s SubmitOutcome) String() string {
	switch s {
	case ScoreCreated:
		return "created"
	case ScoreUpdated:
		return "updated"
	case ScoreUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}
