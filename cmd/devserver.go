package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/zjrosen/riceinspect/internal/recordapi/recordapitest"
)

func newDevServerCmd() *cobra.Command {
	var (
		addr string
		seed int
	)
	cmd := &cobra.Command{
		Use:    "devserver",
		Short:  "Serve an in-memory record service for local development",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := recordapitest.New()
			svc.Loc = time.Local
			if seed > 0 {
				start := time.Now().Add(-time.Duration(seed) * time.Hour).Truncate(time.Second)
				svc.Seed(recordapitest.SampleRecords(seed, start)...)
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Record service listening on http://%s (%d records)\n", ln.Addr(), svc.Len())
			return serveDev(cmd.Context(), ln, devRouter(svc))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:3001", "listen address")
	cmd.Flags().IntVar(&seed, "seed", 25, "sample records to create")
	return cmd
}

func devRouter(svc *recordapitest.Service) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())
	r.PathPrefix("/").Handler(svc.Handler())
	return r
}

// serveDev serves h on ln until ctx is cancelled.
func serveDev(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{Handler: h, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
