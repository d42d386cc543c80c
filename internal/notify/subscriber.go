package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/vk/attrinspect/internal/config"
	"github.com/vk/attrinspect/internal/ctxlog"
	"github.com/vk/attrinspect/internal/document"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const connectTimeout = 15 * time.Second

// Subscriber listens for document_changed events and updates the controller.
type Subscriber struct {
	settings config.Notify
	ctrl     *document.Controller
	load     document.LoadFunc
	logger   *slog.Logger
	io       *socket.Socket
}

// NewSubscriber creates a subscriber for the configured endpoint. A nil load
// defaults to document.LoadDOT.
func NewSubscriber(ctx context.Context, settings config.Notify, ctrl *document.Controller, load document.LoadFunc) *Subscriber {
	if load == nil {
		load = document.LoadDOT
	}
	return &Subscriber{
		settings: settings,
		ctrl:     ctrl,
		load:     load,
		logger:   ctxlog.FromContext(ctx).With("component", "notify", "url", settings.URL),
	}
}

// Connect dials the server and waits for the namespace to connect.
func (s *Subscriber) Connect(ctx context.Context) error {
	parsedURL, err := url.Parse(s.settings.URL)
	if err != nil {
		return fmt.Errorf("failed to parse notify URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("notify URL %q must be absolute", s.settings.URL)
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if s.settings.InsecureSkipVerify {
		s.logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(s.settings.Namespace, opts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		s.logger.Info("Connected to document feed.", "namespace", s.settings.Namespace, "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		connectChan <- connectError(errs)
	})
	io.On(types.EventName(DocumentChangedEvent), func(args ...any) {
		s.HandleEvent(args...)
	})
	io.On(types.EventName("disconnect"), func(reason ...any) {
		s.logger.Warn("Document feed disconnected.", "reason", fmt.Sprint(reason...))
	})

	s.logger.Debug("Connecting to document feed...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
		s.io = io
		return nil
	case <-ctx.Done():
		io.Disconnect()
		return fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(connectTimeout):
		io.Disconnect()
		return fmt.Errorf("timed out after %s waiting for socket.io connection", connectTimeout)
	}
}

func connectError(args []any) error {
	if len(args) == 0 {
		return errors.New("connect error")
	}
	if err, ok := args[0].(error); ok && err != nil {
		return err
	}
	return fmt.Errorf("connect error: %v", args[0])
}

// HandleEvent processes one document_changed event. Malformed payloads and
// unreadable documents are logged and ignored.
func (s *Subscriber) HandleEvent(args ...any) {
	payload, err := decodePayload(args)
	if err != nil {
		s.logger.Warn("Ignoring document_changed event.", "error", err)
		return
	}

	doc, err := s.load(payload.Path)
	if err != nil {
		s.logger.Warn("Failed to load announced document.", "path", payload.Path, "error", err)
		return
	}
	doc = document.New(payload.Name, payload.Path, doc.Graph())

	s.logger.Info("Editor switched document.", "document", payload.Name)
	s.ctrl.SetCurrent(doc)
}

// Close disconnects from the server.
func (s *Subscriber) Close() {
	if s.io != nil {
		s.logger.Debug("Disconnecting from document feed.", "sid", s.io.Id())
		s.io.Disconnect()
		s.io = nil
	}
}
