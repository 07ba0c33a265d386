package constants

// Strategy names the extraction strategy used for a run.
type Strategy string

// Stable values (also used as metric labels).
const (
	StrategyPattern Strategy = "pattern" // regex rule catalog
	StrategyModel   Strategy = "model"   // generative model call
)

// Outcome is the terminal state of a pipeline run or export.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"       // records produced
	OutcomeEmpty    Outcome = "empty"    // ran, nothing extracted
	OutcomeDegraded Outcome = "degraded" // ran with reported issues
	OutcomeFailed   Outcome = "failed"   // could not run
)
