package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
)

const maxMessageSize = 4 << 20

// StdioServer serves newline-delimited JSON-RPC messages over a pair of
// streams, usually the process stdin and stdout.
//
// Each request runs on its own goroutine; responses may be written in any
// order and are matched to requests by id.
type StdioServer struct {
	dispatcher *Dispatcher
	in         io.Reader
	out        io.Writer
	logger     *slog.Logger

	writeMu sync.Mutex
	seq     atomic.Uint64
}

// NewStdioServer creates a stdio transport.
func NewStdioServer(dispatcher *Dispatcher, in io.Reader, out io.Writer, logger *slog.Logger) *StdioServer {
	return &StdioServer{
		dispatcher: dispatcher,
		in:         in,
		out:        out,
		logger:     logger.With("component", "stdio_transport"),
	}
}

// Serve reads messages until the input closes or ctx is done, then waits for
// in-flight requests to finish.
func (s *StdioServer) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)

	var wg sync.WaitGroup
	defer wg.Wait()

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			msg := make([]byte, len(line))
			copy(msg, line)
			select {
			case lines <- msg:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read stdin: %w", err)
					}
				default:
				}
				s.logger.Info("stdio_input_closed")
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.handleMessage(ctx, msg)
			}()
		}
	}
}

func (s *StdioServer) handleMessage(ctx context.Context, msg []byte) {
	req, err := DecodeJSONRPCRequest(msg)
	if err != nil {
		rpcErr := FormatMCPError(err)
		s.write(NewJSONRPCError(nil, rpcErr.Code, rpcErr.Message, rpcErr.Data))
		return
	}

	ctx = WithCorrelationID(ctx, "stdio-"+strconv.FormatUint(s.seq.Add(1), 10))
	s.logger.DebugContext(ctx, "stdio_request", "method", req.Method, "correlation_id", CorrelationIDFromContext(ctx))

	if resp := s.dispatcher.Handle(ctx, req); resp != nil {
		s.write(resp)
	}
}

func (s *StdioServer) write(resp *JSONRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("stdio_marshal_failed", "error", err)
		return
	}
	data = append(data, '\n')

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.out.Write(data); err != nil {
		s.logger.Error("stdio_write_failed", "error", err)
	}
}
