// Package config holds the small, typed, non-framework configuration procd
// and procc need: a listen/dial address plus the three TLS artifact paths
// (identity cert+key and peer CA bundle). No config file format, no env var
// binding library - one struct, loaded by its caller either from flags or
// from explicit fields, in the style of the teacher's internal/env package.
package config

// TLS is the certificate/key/CA-bundle triple both procd and procc load,
// per spec.md §6: "Both sides load a CA bundle plus a single identity."
type TLS struct {
	CertFile string
	KeyFile  string
	CAFile   string
}

// Server is procd's configuration.
type Server struct {
	ListenAddr string
	TLS        TLS
}

// Client is procc's configuration.
type Client struct {
	ServerAddr string
	TLS        TLS
}
