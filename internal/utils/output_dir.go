package utils

import (
	"fmt"
	"os"

	"github.com/getsentry/sentry-go"

	"coverage.antennemap.fr/internal/report"
)

// CreateOutputDirectory ensures the export directory exists, creating it if
// necessary. A path that exists but is not a directory is an error.
func CreateOutputDirectory(outputDir string) error {
	stat, err := os.Stat(outputDir)

	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
					Level: sentry.LevelError,
					ExtraContext: map[string]interface{}{
						"output_dir": outputDir,
					},
				})
				return err
			}
			return nil
		}
		return err
	}

	if !stat.IsDir() {
		err := fmt.Errorf("%s is not a directory", outputDir)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Level: sentry.LevelError,
			ExtraContext: map[string]interface{}{
				"output_dir": outputDir,
			},
		})
		return err
	}
	return nil
}
