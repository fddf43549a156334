package dbus

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

// caller is the part of dbus.BusObject the client uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// Client talks to a running matkitd.
type Client struct {
	conn *dbus.Conn
	obj  caller
}

// NewClient opens a private session bus connection to matkitd.
func NewClient() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{conn: conn, obj: conn.Object(DBusBusName, DBusPath)}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func durationMs(d time.Duration) int32 {
	if d <= 0 {
		return 0
	}
	return int32(min(d.Milliseconds(), int64(^uint32(0)>>1)))
}

func (c *Client) call(method string, args ...any) *dbus.Call {
	return c.obj.Call(DBusInterface+"."+method, 0, args...)
}

// ShowToast shows a toast and returns its id. A zero duration uses the
// daemon default.
func (c *Client) ShowToast(message, severity string, d time.Duration) (string, error) {
	var id string
	if err := c.call("ShowToast", message, severity, durationMs(d)).Store(&id); err != nil {
		return "", fmt.Errorf("ShowToast: %w", err)
	}
	return id, nil
}

// ShowSnackbar shows a snackbar and returns its id.
func (c *Client) ShowSnackbar(message, actionLabel string, d time.Duration, placement string) (string, error) {
	var id string
	if err := c.call("ShowSnackbar", message, actionLabel, durationMs(d), placement).Store(&id); err != nil {
		return "", fmt.Errorf("ShowSnackbar: %w", err)
	}
	return id, nil
}

// Dismiss closes a surface.
func (c *Client) Dismiss(id string) error {
	if err := c.call("Dismiss", id).Err; err != nil {
		return fmt.Errorf("Dismiss: %w", err)
	}
	return nil
}

// CloseAll closes every surface.
func (c *Client) CloseAll() error {
	if err := c.call("CloseAll").Err; err != nil {
		return fmt.Errorf("CloseAll: %w", err)
	}
	return nil
}

// ListActive lists live surfaces in show order.
func (c *Client) ListActive() ([]ActiveEntry, error) {
	var entries []ActiveEntry
	if err := c.call("ListActive").Store(&entries); err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}
	return entries, nil
}

// Subscribe registers for matkit signals. It must be called before the
// surface of interest is shown so no signal is missed.
func (c *Client) Subscribe() (<-chan *dbus.Signal, error) {
	if c.conn == nil {
		return nil, fmt.Errorf("not connected to D-Bus")
	}
	if err := c.conn.AddMatchSignal(
		dbus.WithMatchInterface(DBusInterface),
		dbus.WithMatchObjectPath(DBusPath),
	); err != nil {
		return nil, fmt.Errorf("failed to add match rule: %w", err)
	}
	ch := make(chan *dbus.Signal, 16)
	c.conn.Signal(ch)
	return ch, nil
}

// WaitDismissed waits on signals from Subscribe until id is dismissed.
// The reason is "action" when its action was invoked.
func WaitDismissed(ctx context.Context, signals <-chan *dbus.Signal, id string) (Dismissal, error) {
	for {
		select {
		case <-ctx.Done():
			return Dismissal{}, ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return Dismissal{}, fmt.Errorf("signal channel closed")
			}
			d, ok := ParseDismissed(sig)
			if ok && d.ID == id {
				return d, nil
			}
		}
	}
}

// ParseDismissed decodes a Dismissed signal.
func ParseDismissed(sig *dbus.Signal) (Dismissal, bool) {
	if sig == nil || sig.Name != DBusInterface+"."+SignalDismissed || len(sig.Body) < 2 {
		return Dismissal{}, false
	}
	id, ok := sig.Body[0].(string)
	if !ok {
		return Dismissal{}, false
	}
	reason, ok := sig.Body[1].(string)
	if !ok {
		return Dismissal{}, false
	}
	return Dismissal{ID: id, Reason: reason}, true
}
