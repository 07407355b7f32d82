package worker

import (
	"bufio"
	"io"

	"go.uber.org/zap"
)

// maxLineBuffer bounds one scanned line; spec.md's Non-goals exclude
// line-length limits as a product feature, but bufio.Scanner still needs a
// ceiling to avoid unbounded growth on a pathological child. Sized well
// above anything a reasonable line emits, matching the teacher's own
// stdout/stderr scanner buffers.
const maxLineBuffer = 1024 * 1024

// runReader is the Line Reader (C1): it converts a byte stream into
// newline-delimited records, appending each one into state's log and
// firing progress (via state.appendLog) as it goes. It terminates on EOF or
// read error; an error is logged but never propagated; the caller
// (Supervisor) only needs to know the reader has stopped, via the done
// signal of whatever WaitGroup it was launched under.
//
// bufio.Scanner's default ScanLines split function already yields a final
// unterminated line at EOF, which is what gives us spec.md §4.1's "the
// final call fires progress even if the last chunk had no newline".
func runReader(r io.Reader, st *state, log *zap.Logger, stream string) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBuffer)

	for sc.Scan() {
		st.appendLog(sc.Bytes())
	}

	if err := sc.Err(); err != nil {
		log.Warn("reader error", zap.String("stream", stream), zap.Error(err))
	}
}
