package internal

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ulv/chunked-downloader/downloader"
	"github.com/Ulv/chunked-downloader/utils"
)

// RunBatch downloads each entry in order. The downloader is strictly
// sequential per call, so entries are processed one at a time rather
// than through a worker pool.
func RunBatch(entries []utils.DownloadEntry) error {
	log := utils.GetLogger("batch")
	log.Info().Int("totalFiles", len(entries)).Msg("Initiating download")

	failed := 0
	for _, entry := range entries {
		jobID := uuid.New().String()[:8]
		logger := log.With().Str("jobID", jobID).Logger()
		logger.Debug().Str("url", entry.URL).Str("output", entry.OutputPath).Msg("Starting download")

		d := downloader.New()
		d.SetSource(entry.URL)
		d.SetDestination(entry.OutputPath)
		d.SetTLS(entry.TLS)
		if entry.Login != "" {
			d.SetCredentials(entry.Login, entry.Password)
		}

		start := time.Now()
		written, err := d.Download()
		if err != nil {
			logger.Error().Err(err).Str("url", entry.URL).Msg("Download failed")
			utils.PrintError(fmt.Sprintf("%s %s", utils.StyleSymbols["fail"], entry.URL))
			failed++
			continue
		}
		logger.Info().Int64("bytes", written).Dur("elapsed", time.Since(start)).Str("output", entry.OutputPath).Msg("Download completed")
		utils.PrintSuccess(fmt.Sprintf("%s %s %s (%s)", utils.StyleSymbols["pass"], entry.URL, utils.StyleSymbols["arrow"], entry.OutputPath))
		utils.PrintDetail(fmt.Sprintf("  %s in %s", utils.FormatBytes(uint64(written)), time.Since(start).Round(time.Millisecond)))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(entries))
	}
	return nil
}
