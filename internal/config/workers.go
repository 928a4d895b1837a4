package config

import "runtime"

// Worker resolution chain (highest priority first):
//   1. -workers flag
//   2. FPCORE_WORKERS
//   3. hardware estimate (this file)

// ApplyAdaptiveWorkers fills in Workers from the CPU count when it was left
// at zero.
func ApplyAdaptiveWorkers(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers(runtime.NumCPU())
	}
	return cfg
}

// EstimateOptimalWorkers returns a worker count for numCPU logical CPUs:
// one per core, one core left free above four CPUs, at most 32.
func EstimateOptimalWorkers(numCPU int) int {
	switch {
	case numCPU <= 1:
		return 1
	case numCPU <= 4:
		return numCPU
	case numCPU <= 32:
		return numCPU - 1
	default:
		return 32
	}
}
