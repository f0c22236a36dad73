package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/skillcoder/podreaper-controller/internal/logic/reaper"
)

var (
	ErrNamespaceCapExceedsGlobal = errors.New("namespace concurrency cap exceeds global cap")
	ErrDurationBelowMinimum      = errors.New("duration below minimum")
	ErrNotPositive               = errors.New("value must be positive")
	ErrUnknownPriority           = errors.New("unknown priority tier")
)

type Config struct {
	KubeConfig string
	KubeMaster string
	LogLevel   string
	LogFormat  string

	HTTPPort    string
	MetricsPort string

	ExcludedNamespaces map[string]struct{}
	HealthyPhases      map[string]struct{}
	MinPodAge          time.Duration

	SkipAnnotationKey     string
	SkipAnnotationValue   string
	PriorityAnnotationKey string
	DefaultPriority       reaper.Priority

	RunInterval   time.Duration
	RunSchedule   string
	RunScheduleTZ string
	CycleTimeout  time.Duration
	DrainGrace    time.Duration

	Workers                  int
	MaxGlobalConcurrency     int
	MaxNamespaceConcurrency  int
	MaxRetryAttempts         int
	MaxBatchSizePerNamespace int

	ListPageSize    int64
	ListConcurrency int
	APIRateLimit    float64
	APIRateBurst    int
}

//nolint:funlen // plain sequential env parsing
func Load() (*Config, error) {
	cfg := &Config{
		KubeConfig: getEnvOrFallback(envKeyKubeConfig, envKeyKubeConfigFallback),
		KubeMaster: getEnvOrFallback(envKeyKubeMaster, envKeyKubeMasterFallback),
		LogLevel:   getEnvOrDefault(envKeyLogLevel, "info"),
		LogFormat:  getEnvOrDefault(envKeyLogFormat, "json"),

		HTTPPort:    getEnvOrDefault(envKeyHTTPPort, "8080"),
		MetricsPort: getEnvOrDefault(envKeyMetricsPort, "9090"),

		ExcludedNamespaces: getEnvSet(envKeyExcludedNamespaces, "kube-system,kube-public,kube-node-lease"),
		HealthyPhases:      getEnvSet(envKeyHealthyPhases, "Running,Succeeded"),

		SkipAnnotationKey:     getEnvOrDefault(envKeySkipAnnotationKey, reaper.PodreaperAnnotationSkipKey),
		SkipAnnotationValue:   getEnvOrDefault(envKeySkipAnnotationValue, reaper.PodreaperAnnotationSkipValue),
		PriorityAnnotationKey: getEnvOrDefault(envKeyPriorityAnnotationKey, reaper.PodreaperAnnotationPriorityKey),

		RunSchedule:   os.Getenv(envKeyRunSchedule),
		RunScheduleTZ: os.Getenv(envKeyRunScheduleTZ),
	}

	rawPriority := getEnvOrDefault(envKeyDefaultPriority, string(reaper.PriorityMedium))

	defaultPriority, ok := reaper.ParsePriority(rawPriority)
	if !ok {
		return nil, fmt.Errorf("parse %s=%q: %w", envKeyDefaultPriority, rawPriority, ErrUnknownPriority)
	}

	cfg.DefaultPriority = defaultPriority

	var err error

	cfg.MinPodAge, err = getEnvDuration(envKeyMinPodAge, 5*time.Minute, envMinMinPodAge)
	if err != nil {
		return nil, err
	}

	cfg.RunInterval, err = getEnvDuration(envKeyRunInterval, 10*time.Minute, envMinRunInterval)
	if err != nil {
		return nil, err
	}

	cfg.CycleTimeout, err = getEnvDuration(envKeyCycleTimeout, 5*time.Minute, envMinCycleTimeout)
	if err != nil {
		return nil, err
	}

	cfg.DrainGrace, err = getEnvDuration(envKeyDrainGrace, 10*time.Second, envMinDrainGrace)
	if err != nil {
		return nil, err
	}

	cfg.Workers, err = getEnvInt(envKeyWorkers, 8)
	if err != nil {
		return nil, err
	}

	cfg.MaxGlobalConcurrency, err = getEnvInt(envKeyMaxGlobalConcurrency, 16)
	if err != nil {
		return nil, err
	}

	cfg.MaxNamespaceConcurrency, err = getEnvInt(envKeyMaxNamespaceConcurrency, 4)
	if err != nil {
		return nil, err
	}

	cfg.MaxRetryAttempts, err = getEnvInt(envKeyMaxRetryAttempts, 5)
	if err != nil {
		return nil, err
	}

	cfg.MaxBatchSizePerNamespace, err = getEnvInt(envKeyMaxBatchSizePerNamespace, 500)
	if err != nil {
		return nil, err
	}

	pageSize, err := getEnvInt(envKeyListPageSize, 500)
	if err != nil {
		return nil, err
	}

	cfg.ListPageSize = int64(pageSize)

	cfg.ListConcurrency, err = getEnvInt(envKeyListConcurrency, 4)
	if err != nil {
		return nil, err
	}

	cfg.APIRateLimit, err = getEnvFloat(envKeyAPIRateLimit, 20)
	if err != nil {
		return nil, err
	}

	cfg.APIRateBurst, err = getEnvInt(envKeyAPIRateBurst, 40)
	if err != nil {
		return nil, err
	}

	if cfg.MaxNamespaceConcurrency > cfg.MaxGlobalConcurrency {
		return nil, fmt.Errorf("%s=%d, %s=%d: %w",
			envKeyMaxNamespaceConcurrency, cfg.MaxNamespaceConcurrency,
			envKeyMaxGlobalConcurrency, cfg.MaxGlobalConcurrency,
			ErrNamespaceCapExceedsGlobal,
		)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func getEnvOrFallback(key, fallbackKey string) string {
	value := os.Getenv(key)
	if value == "" {
		return os.Getenv(fallbackKey)
	}

	return value
}

func getEnvSet(key, defaultValue string) map[string]struct{} {
	raw := getEnvOrDefault(key, defaultValue)
	set := make(map[string]struct{})

	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		set[item] = struct{}{}
	}

	return set
}

func getEnvDuration(key string, defaultValue, minimum time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if value < minimum {
		return 0, fmt.Errorf("%s=%s, minimum %s: %w", key, value, minimum, ErrDurationBelowMinimum)
	}

	return value, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if value < 1 {
		return 0, fmt.Errorf("%s=%d: %w", key, value, ErrNotPositive)
	}

	return value, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if value <= 0 {
		return 0, fmt.Errorf("%s=%v: %w", key, value, ErrNotPositive)
	}

	return value, nil
}
