package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	scouthttp "github.com/sitescout/sitescout/http"
)

// Run executes the serve command. The server runs until the command
// context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	handler := &scouthttp.Server{
		Researcher: deps.Researcher,
		Batch:      deps.Batch,
	}

	srv := &http.Server{
		Addr:    c.Addr,
		Handler: handler.Handler(),
	}

	go func() {
		<-deps.Ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
