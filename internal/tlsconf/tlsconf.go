// Package tlsconf builds the crypto/tls.Config both procd and procc need
// for mutual authentication, grounded on spec.md §6 ("Both sides load a CA
// bundle plus a single identity... ALPN selects HTTP/2... the server
// requires client authentication against its CA") and on paasd/paasc's
// lib.rs, which load the same three artifacts for rustls. No full teacher
// file in the retrieved pack builds production TLS config end to end
// (rclone's X509KeyPair use is test-only), so this package follows
// crypto/tls's own documented idioms directly rather than a pack example.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/oppaas/procd/internal/config"
)

func loadCAPool(caFile string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("tlsconf: read CA bundle: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("tlsconf: no certificates found in %s", caFile)
	}
	return pool, nil
}

// Server builds the gRPC server's TLS config: it presents cfg's identity
// and requires (and verifies) every client certificate against cfg's CA
// bundle, so that a handler can always assume a verified peer chain.
func Server(cfg config.TLS) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsconf: load server identity: %w", err)
	}
	pool, err := loadCAPool(cfg.CAFile)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientCAs:    pool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
		NextProtos:   []string{"h2"},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// Client builds procc's TLS config: it presents cfg's identity and trusts
// only certificates chaining to cfg's CA bundle (the server's CA, in the
// typical single-CA deployment spec.md describes).
func Client(cfg config.TLS) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsconf: load client identity: %w", err)
	}
	pool, err := loadCAPool(cfg.CAFile)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		NextProtos:   []string{"h2"},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
