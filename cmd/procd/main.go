// Command procd is the process execution server: it accepts mutually
// authenticated gRPC connections, spawns and supervises child processes on
// behalf of whichever caller's certificate common name requested them, and
// serves their status, logs, and termination back to that same caller.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/oppaas/procd/internal/config"
	"github.com/oppaas/procd/internal/registry"
	"github.com/oppaas/procd/internal/rpcservice"
	"github.com/oppaas/procd/internal/tlsconf"
	"github.com/oppaas/procd/pkg/procpb"
)

func main() {
	cfg := parseFlags()

	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	log := zap.Must(logConfig.Build())
	defer log.Sync()
	log = log.Named("main")

	if err := run(log, cfg); err != nil {
		log.Fatal("procd failed", zap.Error(err))
	}
}

func parseFlags() config.Server {
	var cfg config.Server
	flag.StringVar(&cfg.ListenAddr, "listen", envOr("PROCD_LISTEN", "0.0.0.0:8443"), "address to listen on")
	flag.StringVar(&cfg.TLS.CertFile, "cert", envOr("PROCD_CERT", "data/server.pem"), "server identity certificate (PEM)")
	flag.StringVar(&cfg.TLS.KeyFile, "key", envOr("PROCD_KEY", "data/server.key"), "server identity private key (PEM)")
	flag.StringVar(&cfg.TLS.CAFile, "ca", envOr("PROCD_CA", "data/client_ca.pem"), "CA bundle used to verify client certificates")
	flag.Parse()
	return cfg
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func run(log *zap.Logger, cfg config.Server) error {
	tlsConf, err := tlsconf.Server(cfg.TLS)
	if err != nil {
		return fmt.Errorf("procd: tls setup: %w", err)
	}

	lis, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("procd: listen %s: %w", cfg.ListenAddr, err)
	}

	reg := registry.New()
	svc := rpcservice.New(log, reg)

	srv := grpc.NewServer(grpc.Creds(credentials.NewTLS(tlsConf)))
	procpb.RegisterProcessServiceServer(srv, svc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.Serve(lis); err != nil {
			return fmt.Errorf("procd: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		srv.GracefulStop()
		return nil
	})

	return g.Wait()
}
