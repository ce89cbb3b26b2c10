package cmd

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/asceswap/go-asceswap/config"
	"github.com/asceswap/go-asceswap/protocol"
	"github.com/asceswap/go-asceswap/rpc"
	"github.com/asceswap/go-asceswap/utils"
)

// newService builds the configured service stack shared by all commands.
func newService() (*protocol.Service, *config.Config, error) {
	log := utils.GetLogger()

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	cfg.Logger = log

	var opts []rpc.Option
	if cfg.PrometheusEnabled {
		opts = append(opts, rpc.WithMetrics(rpc.NewMetrics(prometheus.DefaultRegisterer)))
		go serveMetrics(cfg, log)
	}

	client := rpc.NewHTTPClient(cfg, log, opts...)
	svc, err := protocol.NewService(client, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

// newSession validates the --account flag into a session.
func newSession() (protocol.Session, error) {
	return protocol.NewSession(accountAddr)
}

func serveMetrics(cfg *config.Config, log *zap.Logger) {
	if err := http.ListenAndServe(cfg.PrometheusEndpoint, promhttp.Handler()); err != nil {
		log.Error("metrics endpoint failed", zap.Error(err))
	}
}
