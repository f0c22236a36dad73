package config

import "time"

// Env key constants. All controller configuration env vars use PODREAPER_ prefix;
// duration values support explicit units (e.g. 5m, 40s, 2h).

// Path to kubeconfig file. If unset, KUBECONFIG is used as fallback.
const envKeyKubeConfig = "PODREAPER_KUBECONFIG"

// Kubernetes API server URL. If unset, KUBERNETES_MASTER is used as fallback.
const envKeyKubeMaster = "PODREAPER_KUBE_MASTER"

// Log level: debug, info, warn, error.
const envKeyLogLevel = "PODREAPER_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "PODREAPER_LOG_FORMAT"

// Port for health/readiness HTTP server.
const envKeyHTTPPort = "PODREAPER_HTTP_PORT"

// Port for Prometheus metrics (GET /metrics).
const envKeyMetricsPort = "PODREAPER_METRICS_PORT"

// Comma-separated namespaces never reconciled.
const envKeyExcludedNamespaces = "PODREAPER_EXCLUDED_NAMESPACES"

// Comma-separated pod phases considered healthy (never remediated).
const envKeyHealthyPhases = "PODREAPER_HEALTHY_PHASES"

// Annotation key/value pair marking a pod as exempt from remediation.
const (
	envKeySkipAnnotationKey   = "PODREAPER_SKIP_ANNOTATION_KEY"
	envKeySkipAnnotationValue = "PODREAPER_SKIP_ANNOTATION_VALUE"
)

// Annotation key carrying the priority tier (high, medium, low, ignore).
const envKeyPriorityAnnotationKey = "PODREAPER_PRIORITY_ANNOTATION_KEY"

// Priority tier used when the annotation is missing or unrecognized.
const envKeyDefaultPriority = "PODREAPER_DEFAULT_PRIORITY"

// Minimum pod age before remediation is allowed. Units: s, m, h (e.g. 5m).
const (
	envKeyMinPodAge = "PODREAPER_MIN_POD_AGE"
	envMinMinPodAge = time.Second
)

// Interval between reconciliation cycles. Units: s, m, h (e.g. 10m).
const (
	envKeyRunInterval = "PODREAPER_RUN_INTERVAL"
	envMinRunInterval = 30 * time.Second
)

// Optional cron expression driving cycle triggers; overrides the interval.
const envKeyRunSchedule = "PODREAPER_RUN_SCHEDULE"

// IANA timezone for the cron schedule (e.g. America/New_York).
const envKeyRunScheduleTZ = "PODREAPER_RUN_SCHEDULE_TZ"

// Deadline for one full cycle. Units: s, m, h (e.g. 5m).
const (
	envKeyCycleTimeout = "PODREAPER_CYCLE_TIMEOUT"
	envMinCycleTimeout = 10 * time.Second
)

// Grace for in-flight deletions after the cycle deadline. Units: s, m.
const (
	envKeyDrainGrace = "PODREAPER_DRAIN_GRACE"
	envMinDrainGrace = time.Second
)

// Remediation worker pool width.
const envKeyWorkers = "PODREAPER_WORKERS"

// Cap on in-flight deletions across the whole cluster.
const envKeyMaxGlobalConcurrency = "PODREAPER_MAX_GLOBAL_CONCURRENCY"

// Cap on in-flight deletions per namespace; must not exceed the global cap.
const envKeyMaxNamespaceConcurrency = "PODREAPER_MAX_NAMESPACE_CONCURRENCY"

// Delete attempts per pod per cycle, including the first one.
const envKeyMaxRetryAttempts = "PODREAPER_MAX_RETRY_ATTEMPTS"

// Cap on eligible tasks per namespace per cycle; excess defers to next cycle.
const envKeyMaxBatchSizePerNamespace = "PODREAPER_MAX_BATCH_SIZE_PER_NAMESPACE"

// Page size for namespace and pod listing.
const envKeyListPageSize = "PODREAPER_LIST_PAGE_SIZE"

// Parallelism of per-namespace pod listing.
const envKeyListConcurrency = "PODREAPER_LIST_CONCURRENCY"

// Shared API budget: sustained requests per second and burst, across all
// listing and delete calls.
const (
	envKeyAPIRateLimit = "PODREAPER_API_RATE_LIMIT"
	envKeyAPIRateBurst = "PODREAPER_API_RATE_BURST"
)

// Standard k8s env keys used as fallback when PODREAPER_* are unset.
const (
	envKeyKubeConfigFallback = "KUBECONFIG"
	envKeyKubeMasterFallback = "KUBERNETES_MASTER"
)
