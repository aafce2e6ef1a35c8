package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRateLimited,
			Help: HelpTextRateLimited,
		},
	)
)

// Game Metrics
var (
	SpinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSpinsTotal,
			Help: HelpTextSpinsTotal,
		},
	)

	SpinPayout = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSpinPayout,
			Help:    HelpTextSpinPayout,
			Buckets: PayoutBuckets,
		},
	)

	WinLinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWinLinesTotal,
			Help: HelpTextWinLinesTotal,
		},
		[]string{LabelLine},
	)

	RoundsCleared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRoundsCleared,
			Help: HelpTextRoundsCleared,
		},
	)

	GameOversTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGameOversTotal,
			Help: HelpTextGameOversTotal,
		},
	)

	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelItem},
	)

	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsStarted,
			Help: HelpTextSessionsStarted,
		},
	)

	OperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOperationErrors,
			Help: HelpTextOperationErrors,
		},
		[]string{LabelOperation, LabelReason},
	)
)

// Lock Metrics
var (
	LockContention = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLockContention,
			Help: HelpTextLockContention,
		},
		[]string{LabelOperation},
	)

	LockWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameLockWait,
			Help:    HelpTextLockWait,
			Buckets: LockWaitBuckets,
		},
		[]string{LabelOperation},
	)

	LocksSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLocksSwept,
			Help: HelpTextLocksSwept,
		},
	)
)
