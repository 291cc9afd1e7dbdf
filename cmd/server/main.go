package main

import (
	"log"
	"os"

	"github.com/fleshka4/gas-estimator/internal/config"
	"github.com/fleshka4/gas-estimator/internal/infra/ethrpc"
	"github.com/fleshka4/gas-estimator/internal/service"
	transport "github.com/fleshka4/gas-estimator/internal/transport/http"
)

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "cfg/config.yaml"
	}

	cfg := config.Load(path)

	client, err := ethrpc.NewClient(cfg.RPCURL, cfg.PoolSize, cfg.RPCCallTimeout, cfg.PoolAcquireTimeout)
	if err != nil {
		log.Fatalf("ethrpc.NewClient: %v", err)
	}
	defer client.Close()

	est := service.NewEstimatorService(client, !cfg.DisableStatic)

	srv, err := transport.NewServer(est, &cfg)
	if err != nil {
		log.Fatalf("transport.NewServer: %v", err)
	}

	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		log.Fatalf("srv.ListenAndServe: %v", err)
	}
}
