package tlsconf

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oppaas/procd/internal/config"
)

// genCert writes a PEM cert+key pair to dir, signed by ca (self-signed when
// ca is nil), and returns the parsed certificate and its key so it can in
// turn act as a CA for a later call.
func genCert(t *testing.T, dir, name, cn string, ca *x509.Certificate, caKey *ecdsa.PrivateKey) (*x509.Certificate, *ecdsa.PrivateKey) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(time.Now().UnixNano()),
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		IsCA:                  ca == nil,
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1")},
	}

	parent := tmpl
	signerKey := key
	if ca != nil {
		parent = ca
		signerKey = caKey
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parent, &key.PublicKey, signerKey)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	keyBytes, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyBytes})

	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".crt"), certPEM, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".key"), keyPEM, 0o600))

	return cert, key
}

// TestServerRejectsUntrustedClient supplements paasd's integration test
// test_untrusted_client: a client presenting a certificate not signed by
// the server's configured CA must fail the handshake outright. Under TLS 1.3
// the client's side of the handshake completes before the server has
// checked the client certificate, so the rejection reaches the client on
// its first read.
func TestServerRejectsUntrustedClient(t *testing.T) {
	dir := t.TempDir()

	caCert, caKey := genCert(t, dir, "ca", "test-ca", nil, nil)
	caCertPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: caCert.Raw})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ca-bundle.crt"), caCertPEM, 0o600))

	genCert(t, dir, "server", "procd", caCert, caKey)
	genCert(t, dir, "rogue", "rogue-client", nil, nil) // self-signed, not CA-issued

	serverCfg, err := Server(config.TLS{
		CertFile: filepath.Join(dir, "server.crt"),
		KeyFile:  filepath.Join(dir, "server.key"),
		CAFile:   filepath.Join(dir, "ca-bundle.crt"),
	})
	require.NoError(t, err)

	ln, err := tls.Listen("tcp", "127.0.0.1:0", serverCfg)
	require.NoError(t, err)
	defer ln.Close()

	acceptErr := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			acceptErr <- err
			return
		}
		defer conn.Close()
		acceptErr <- conn.(*tls.Conn).Handshake()
	}()

	rogueCert, err := tls.LoadX509KeyPair(filepath.Join(dir, "rogue.crt"), filepath.Join(dir, "rogue.key"))
	require.NoError(t, err)

	clientCfg := &tls.Config{
		Certificates:       []tls.Certificate{rogueCert},
		InsecureSkipVerify: true,
	}
	conn, dialErr := tls.Dial("tcp", ln.Addr().String(), clientCfg)
	if dialErr == nil {
		defer conn.Close()
		dialErr = conn.Handshake()
		if dialErr == nil {
			_, dialErr = conn.Read(make([]byte, 1))
		}
	}

	require.Error(t, dialErr)
	require.Error(t, <-acceptErr)
}

// TestServerAcceptsTrustedClient is the positive counterpart: a client
// whose certificate chains to the server's CA completes the handshake.
func TestServerAcceptsTrustedClient(t *testing.T) {
	dir := t.TempDir()

	caCert, caKey := genCert(t, dir, "ca", "test-ca", nil, nil)
	caCertPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: caCert.Raw})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ca-bundle.crt"), caCertPEM, 0o600))

	genCert(t, dir, "server", "procd", caCert, caKey)
	genCert(t, dir, "alice", "alice", caCert, caKey)

	serverCfg, err := Server(config.TLS{
		CertFile: filepath.Join(dir, "server.crt"),
		KeyFile:  filepath.Join(dir, "server.key"),
		CAFile:   filepath.Join(dir, "ca-bundle.crt"),
	})
	require.NoError(t, err)

	ln, err := tls.Listen("tcp", "127.0.0.1:0", serverCfg)
	require.NoError(t, err)
	defer ln.Close()

	acceptErr := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			acceptErr <- err
			return
		}
		defer conn.Close()
		acceptErr <- conn.(*tls.Conn).Handshake()
	}()

	clientCfg, err := Client(config.TLS{
		CertFile: filepath.Join(dir, "alice.crt"),
		KeyFile:  filepath.Join(dir, "alice.key"),
		CAFile:   filepath.Join(dir, "ca-bundle.crt"),
	})
	require.NoError(t, err)

	conn, err := tls.Dial("tcp", ln.Addr().String(), clientCfg)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.Handshake())
	require.NoError(t, <-acceptErr)
}
