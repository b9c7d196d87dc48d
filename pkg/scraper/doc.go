// Package scraper provides the pin page download pipeline.
//
// A run walks four stages on the calling goroutine, strictly in order:
//
//	fetch     pinterest.Client.FetchPage
//	extract   extractor.Extractor.Extract
//	dedupe    extractor.Dedupe
//	download  downloader.Downloader.Run, one item at a time
//
// Status lines for the user are delivered through a progress.Reporter while
// diagnostics go to the structured logger. Callers that need the pipeline
// off their own goroutine submit it to internal/runner.
//
// Usage:
//
//	s, err := scraper.New(cfg, saveFolder, log)
//	if err != nil {
//	    return err
//	}
//	summary, err := s.Run(ctx, "https://www.pinterest.com/pin/123/", reporter)
package scraper
