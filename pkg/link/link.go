// Package link opens the byte stream between the host and the device.
// The stream is either a serial port or, for simulated devices, a
// websocket carrying binary frames.
package link

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/golang/glog"
	"go.bug.st/serial"
	"golang.org/x/net/websocket"

	"github.com/robotalks/picker/pkg/framework"
)

// DefaultPath is the websocket path of a simulated device.
const DefaultPath = "/serial"

// IsWebsocket indicates the target is a websocket URL.
func IsWebsocket(target string) bool {
	return strings.HasPrefix(target, "ws://") || strings.HasPrefix(target, "wss://")
}

// Open opens the target, a websocket URL or a serial device path.
func Open(target string, opts PortOptions) (io.ReadWriteCloser, error) {
	if IsWebsocket(target) {
		return Dial(target)
	}
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(target, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", target, err)
	}
	glog.Infof("opened %s at %d baud", target, mode.BaudRate)
	return port, nil
}

// Dial connects to a websocket URL.
func Dial(url string) (io.ReadWriteCloser, error) {
	origin := "http://localhost/"
	if strings.HasPrefix(url, "wss://") {
		origin = "https://localhost/"
	}
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	conn.PayloadType = websocket.BinaryFrame
	glog.Infof("connected %s", url)
	return conn, nil
}

// Handler creates a http.Handler accepting websocket connections.
// Each connection is passed to fn and closed when fn returns.
func Handler(fn func(io.ReadWriteCloser)) http.Handler {
	return websocket.Server{
		Handler: func(conn *websocket.Conn) {
			conn.PayloadType = websocket.BinaryFrame
			glog.Infof("accepted %s", conn.Request().RemoteAddr)
			fn(conn)
			glog.Infof("closed %s", conn.Request().RemoteAddr)
		},
	}
}

// ServeWebsocket listens on addr and serves websocket connections on
// path until ctx is done.
func ServeWebsocket(ctx context.Context, addr, path string, fn func(io.ReadWriteCloser)) error {
	if path == "" {
		path = DefaultPath
	}
	mux := http.NewServeMux()
	mux.Handle(path, Handler(fn))
	server := &http.Server{Addr: addr, Handler: mux}
	glog.Infof("listening on %s%s", addr, path)
	return framework.RunWithContextCloser(ctx, server, server.ListenAndServe)
}
