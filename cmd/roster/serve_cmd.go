package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ringside-io/roster/modules/roster/infrastructure/persistence"
	"github.com/ringside-io/roster/pkg/composables"
	"github.com/ringside-io/roster/pkg/configuration"
	"github.com/ringside-io/roster/pkg/metrics"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the roster read API and Prometheus metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func serve(ctx context.Context, addr string) error {
	conf := configuration.Use()
	logger := conf.Logger()

	poolCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(poolCtx, conf.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer pool.Close()

	metrics.Register(prometheus.DefaultRegisterer)

	wrestlers := persistence.NewPgWrestlerRepository(clockwork.NewRealClock())

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.HandleFunc("/roster/wrestlers", func(w http.ResponseWriter, req *http.Request) {
		all, err := wrestlers.GetAll(composables.WithPool(req.Context(), pool))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		type row struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Status string `json:"status"`
		}
		out := make([]row, 0, len(all))
		for _, wr := range all {
			out = append(out, row{ID: wr.ID().String(), Name: wr.Name(), Status: string(wr.Status())})
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			logger.WithError(err).Error("encoding wrestler list")
		}
	}).Methods(http.MethodGet)

	if conf.Metrics.Enabled {
		metrics.NewPrometheusController(conf.Metrics.Path).Register(r)
		logger.Infof("metrics exposed at %s", conf.Metrics.Path)
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	logger.Infof("listening on %s", addr)
	return srv.ListenAndServe()
}
