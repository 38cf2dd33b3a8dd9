// Package report asks an external service to turn a serialized ledger into
// an expense report and hands back the path of the file it produced.
package report

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-zeromq/zmq4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAddress is the endpoint the report service listens on.
const DefaultAddress = "tcp://localhost:5555"

// ProtocolError reports a failed exchange with the report service, or a
// reply that cannot be used as a path.
type ProtocolError struct {
	Op      string // "dial", "send", "recv" or "decode"
	Address string
	Err     error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("report %s %s: %v", e.Op, e.Address, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Client issues one request per call over a ZeroMQ REQ socket. Nothing is
// cached between calls.
type Client struct {
	address string
	logger  *zap.SugaredLogger
}

// NewClient creates a Client for the service at address. An empty address
// means DefaultAddress.
func NewClient(address string, logger *zap.SugaredLogger) *Client {
	if address == "" {
		address = DefaultAddress
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Client{address: address, logger: logger}
}

// Address returns the service endpoint.
func (c *Client) Address() string { return c.address }

type reply struct {
	msg zmq4.Msg
	err error
}

// RequestExpenseReport sends doc and waits for the reply. ok is false when
// the reply carries no usable text; that is not an error.
func (c *Client) RequestExpenseReport(ctx context.Context, doc []byte) (path string, ok bool, err error) {
	log := c.logger.With("request_id", uuid.NewString(), "address", c.address)

	sctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sock := zmq4.NewReq(sctx)
	defer sock.Close()

	log.Debugw("Requesting expense report", "bytes", len(doc))
	if err := sock.Dial(c.address); err != nil {
		return "", false, &ProtocolError{Op: "dial", Address: c.address, Err: err}
	}

	replies := make(chan reply, 1)
	go func() {
		if err := sock.Send(zmq4.NewMsg(doc)); err != nil {
			replies <- reply{err: &ProtocolError{Op: "send", Address: c.address, Err: err}}
			return
		}
		msg, err := sock.Recv()
		if err != nil {
			replies <- reply{err: &ProtocolError{Op: "recv", Address: c.address, Err: err}}
			return
		}
		replies <- reply{msg: msg}
	}()

	var r reply
	select {
	case <-ctx.Done():
		log.Infow("Expense report request abandoned", "reason", ctx.Err())
		return "", false, &ProtocolError{Op: "recv", Address: c.address, Err: ctx.Err()}
	case r = <-replies:
	}
	if r.err != nil {
		log.Warnw("Expense report request failed", "error", r.err)
		return "", false, r.err
	}

	path, ok, err = decodeReply(r.msg)
	if err != nil {
		return "", false, &ProtocolError{Op: "decode", Address: c.address, Err: err}
	}
	log.Infow("Expense report ready", "path", path, "has_path", ok)
	return path, ok, nil
}

// decodeReply reads the path from the first frame of the reply.
func decodeReply(msg zmq4.Msg) (string, bool, error) {
	if len(msg.Frames) == 0 {
		return "", false, nil
	}
	payload := bytes.TrimRight(msg.Frames[0], "\r\n")
	if len(payload) == 0 || !utf8.Valid(payload) {
		return "", false, nil
	}
	if bytes.IndexByte(payload, 0) >= 0 {
		return "", false, fmt.Errorf("reply %q is not a valid path", payload)
	}
	return NormalizePath(string(payload)), true, nil
}

// NormalizePath rewrites a path that uses the other platform's separator
// into the host convention, keeping every segment including the file name.
func NormalizePath(raw string) string {
	foreign := `\`
	if filepath.Separator == '\\' {
		foreign = "/"
	}
	return strings.Join(strings.Split(raw, foreign), string(filepath.Separator))
}
