package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameRateLimited          = "cloverpit_rate_limited_total"
)

// Game metric names
const (
	MetricNameSpinsTotal      = "cloverpit_spins_total"
	MetricNameSpinPayout      = "cloverpit_spin_payout"
	MetricNameWinLinesTotal   = "cloverpit_win_lines_total"
	MetricNameRoundsCleared   = "cloverpit_rounds_cleared_total"
	MetricNameGameOversTotal  = "cloverpit_game_overs_total"
	MetricNameItemsBought     = "cloverpit_items_bought_total"
	MetricNameSessionsStarted = "cloverpit_sessions_started_total"
	MetricNameOperationErrors = "cloverpit_operation_errors_total"
)

// Lock metric names
const (
	MetricNameLockContention = "cloverpit_lock_contention_total"
	MetricNameLockWait       = "cloverpit_lock_wait_seconds"
	MetricNameLocksSwept     = "cloverpit_locks_swept_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextRateLimited          = "Total number of requests rejected by the rate limiter"
)

// Game metric help text
const (
	HelpTextSpinsTotal      = "Total number of spins played"
	HelpTextSpinPayout      = "Payout of each spin after multipliers"
	HelpTextWinLinesTotal   = "Total number of winning lines by pattern"
	HelpTextRoundsCleared   = "Total number of rounds cleared"
	HelpTextGameOversTotal  = "Total number of games that ended in game over"
	HelpTextItemsBought     = "Total number of shop items bought"
	HelpTextSessionsStarted = "Total number of game sessions started"
	HelpTextOperationErrors = "Total number of failed game operations by operation and reason"
)

// Lock metric help text
const (
	HelpTextLockContention = "Total number of lock acquisitions that timed out"
	HelpTextLockWait       = "Time spent waiting to acquire a named lock"
	HelpTextLocksSwept     = "Total number of expired locks removed"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelLine      = "line"
	LabelItem      = "item"
	LabelOperation = "operation"
	LabelReason    = "reason"
)

// ============================================================================
// Buckets
// ============================================================================

var (
	HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	PayoutBuckets      = []float64{0, 50, 100, 200, 500, 1000, 2000, 5000}
	LockWaitBuckets    = []float64{.001, .005, .01, .05, .1, .25, .5, 1, 5, 10}
)

// PathUnmatched labels requests that no route matched
const PathUnmatched = "unmatched"
