// Package auth derives the caller's identity from the mutual-TLS peer
// certificate on an incoming gRPC call, mirroring paasd's user.rs
// (TryFrom<&Certificate> for UserId): the identity is the certificate's
// subject common name, nothing more.
package auth

import (
	"context"
	"errors"

	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/peer"
)

// ErrNoIdentity is returned when no verified peer certificate with a common
// name can be found on the context; the RPC layer maps this to
// unauthenticated (spec.md §7).
var ErrNoIdentity = errors.New("auth: no identity on peer certificate")

// UserID extracts the caller's identity from ctx's gRPC peer information.
// The server's TLS config (internal/tlsconf) enforces
// RequireAndVerifyClientCert, so by the time a handler runs there is always
// at least one verified chain; this function still fails closed if that
// invariant is somehow violated, rather than assuming it.
func UserID(ctx context.Context) (string, error) {
	p, ok := peer.FromContext(ctx)
	if !ok || p.AuthInfo == nil {
		return "", ErrNoIdentity
	}

	tlsInfo, ok := p.AuthInfo.(credentials.TLSInfo)
	if !ok || len(tlsInfo.State.VerifiedChains) == 0 || len(tlsInfo.State.VerifiedChains[0]) == 0 {
		return "", ErrNoIdentity
	}

	leaf := tlsInfo.State.VerifiedChains[0][0]
	if leaf.Subject.CommonName == "" {
		return "", ErrNoIdentity
	}
	return leaf.Subject.CommonName, nil
}
