package registry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oppaas/procd/internal/worker"
)

// Ports store.rs's three unit tests: not-found, unauthorized, authorized.

func TestGetNotFound(t *testing.T) {
	r := New()
	_, err := r.Get("alice", uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUnauthorized(t *testing.T) {
	r := New()
	id := r.Insert("alice", &worker.Handle{})

	_, err := r.Get("bob", id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAuthorized(t *testing.T) {
	r := New()
	h := &worker.Handle{}
	id := r.Insert("alice", h)

	got, err := r.Get("alice", id)
	require.NoError(t, err)
	assert.Same(t, h, got)
}

func TestInsertDuplicateIDPanics(t *testing.T) {
	r := New()

	fixed := uuid.New()
	orig := newProcessID
	newProcessID = func() uuid.UUID { return fixed }
	defer func() { newProcessID = orig }()

	r.Insert("alice", &worker.Handle{})

	assert.Panics(t, func() {
		r.Insert("bob", &worker.Handle{})
	})
}
