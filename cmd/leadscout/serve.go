package main

import (
	"context"
	"fmt"

	"github.com/passivleads/leadscout"
	leadhttp "github.com/passivleads/leadscout/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := leadhttp.NewServer()
	server.Addr = c.Addr
	server.ScanService = deps.Scans
	server.CrawlFn = func(ctx context.Context, target leadscout.Target) (*leadscout.Result, error) {
		return deps.Crawler.Crawl(ctx, target, nil)
	}

	if err := server.Open(); err != nil {
		return fmt.Errorf("failed to start server on %q: %w", c.Addr, err)
	}

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", server.URL())

	<-deps.Ctx.Done()
	fmt.Fprintln(deps.Stdout, "Shutting down...")
	return server.Close()
}
