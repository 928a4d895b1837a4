package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agbru/fpcore/internal/metrics"
)

// WriteMetricsFile writes m in the Prometheus text exposition format to
// path, creating parent directories as needed.
func WriteMetricsFile(path string, m *metrics.CheckMetrics) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	if err := m.WriteText(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return file.Close()
}
