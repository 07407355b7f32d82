// Package worker implements the per-process supervisor: the core described
// in spec.md's component table C1-C6. One Supervisor is created per spawned
// child and owns it exclusively; a Handle is the public facade the registry
// and RPC layer hold onto (status/logs/stop), and any number of independent
// log Subscribers may observe the same process concurrently, including ones
// created after the process has already exited.
package worker
