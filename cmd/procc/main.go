// Command procc is the CLI client for procd: exec, logs, status, and stop,
// matching spec.md §6's four-verb surface over a mutually authenticated
// gRPC connection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/oppaas/procd/internal/config"
	"github.com/oppaas/procd/internal/tlsconf"
	"github.com/oppaas/procd/pkg/procpb"
)

var cfg config.Client

func main() {
	root := &cobra.Command{
		Use:           "procc",
		Short:         "client for procd, the remote process execution service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.ServerAddr, "server", envOr("PROCC_SERVER", "127.0.0.1:8443"), "procd server address")
	flags.StringVar(&cfg.TLS.CertFile, "cert", envOr("PROCC_CERT", "data/client.pem"), "client identity certificate (PEM)")
	flags.StringVar(&cfg.TLS.KeyFile, "key", envOr("PROCC_KEY", "data/client.key"), "client identity private key (PEM)")
	flags.StringVar(&cfg.TLS.CAFile, "ca", envOr("PROCC_CA", "data/server_ca.pem"), "CA bundle used to verify the server")

	root.AddCommand(execCmd(), logsCmd(), statusCmd(), stopCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "procc:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// newClient dials procd with a fresh mTLS connection. procc is a one-shot
// CLI, so the connection is not pooled or reused across invocations.
func newClient() (procpb.ProcessServiceClient, func(), error) {
	tlsConf, err := tlsconf.Client(cfg.TLS)
	if err != nil {
		return nil, nil, err
	}

	conn, err := grpc.NewClient(cfg.ServerAddr, grpc.WithTransportCredentials(credentials.NewTLS(tlsConf)))
	if err != nil {
		return nil, nil, fmt.Errorf("procc: dial %s: %w", cfg.ServerAddr, err)
	}
	return procpb.NewProcessServiceClient(conn), func() { conn.Close() }, nil
}
