// Package procpb defines the wire types and the ProcessService gRPC contract
// shared between procd and procc.
//
// There is no .proto file behind these types: the messages are plain Go
// structs marshaled with the gob codec registered in codec.go (see
// DESIGN.md for why). The service contract (ProcessServiceClient/Server,
// the ServiceDesc, the streaming adapters) follows the shape
// protoc-gen-go-grpc would have produced from a four-RPC, one-streaming
// ProcessService definition.
package procpb

import "github.com/google/uuid"

// UUID is the wire representation of a process id: spec.md's "128-bit UUID
// minted by the registry, independent of the OS pid". Reused directly
// rather than wrapped, since uuid.UUID is already a fixed 16-byte array and
// gob-encodes without help.
type UUID = uuid.UUID

// ExitStatusKind tags ExitStatus's union.
type ExitStatusKind uint8

const (
	// ExitStatusRunning means the process has not yet been reaped.
	ExitStatusRunning ExitStatusKind = iota
	// ExitStatusCode means the process exited with an OS exit code.
	ExitStatusCode
	// ExitStatusSignal means the process was terminated by a signal.
	ExitStatusSignal
)

// ExitStatus is the wire projection of the shared state's exit_status slot:
// one of {running, exited-code(int32), exited-signal(int32)}.
type ExitStatus struct {
	Kind  ExitStatusKind
	Value int32 // meaningful only when Kind != ExitStatusRunning
}

// ExecRequest is the Exec RPC's input: a non-empty argument vector.
type ExecRequest struct {
	Args []string
}

// ExecResponse is the Exec RPC's output: the freshly minted process id.
type ExecResponse struct {
	ID UUID
}

// StatusRequest is the GetStatus RPC's input.
type StatusRequest struct {
	ID UUID
}

// StatusResponse is the GetStatus RPC's output.
type StatusResponse struct {
	Status ExitStatus
}

// LogsRequest is the GetLogs RPC's input.
type LogsRequest struct {
	ID UUID
}

// LogsResponse is one server-streamed batch of captured log lines. Every
// message carries at least one line (see spec.md §6); each []byte is one
// record, without its trailing newline.
type LogsResponse struct {
	Lines [][]byte
}

// StopRequest is the Stop RPC's input.
type StopRequest struct {
	ID UUID
}

// StopResponse is the Stop RPC's output: empty on success (the caller fetches
// the final status via GetStatus, or reads it off the Stop return value in
// the in-process Go API — the wire message itself carries nothing extra,
// matching spec.md §6's `{}` response schema).
type StopResponse struct{}
