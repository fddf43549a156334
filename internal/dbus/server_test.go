package dbus

import (
	"errors"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/matkit/internal/overlay"
)

type stillTimer struct{}

func (stillTimer) Stop() bool { return true }

type stillScheduler struct{}

func (stillScheduler) AfterFunc(time.Duration, func()) overlay.Timer { return stillTimer{} }

// managerController adapts a headless manager to Controller.
type managerController struct {
	*overlay.Manager
}

func (c managerController) Dismiss(id string) bool {
	return c.Manager.Dismiss(id, overlay.Closed)
}

type emitted struct {
	name   string
	values []any
}

type fakeEmitter struct {
	signals []emitted
	err     error
}

func (f *fakeEmitter) Emit(path dbus.ObjectPath, name string, values ...any) error {
	if f.err != nil {
		return f.err
	}
	f.signals = append(f.signals, emitted{name: name, values: values})
	return nil
}

func newTestServer(t *testing.T) (*Server, *overlay.Manager, *fakeEmitter) {
	t.Helper()
	m := overlay.NewManager(nil, stillScheduler{}, overlay.DefaultOptions(), nil)
	s := NewServer(managerController{m}, nil)
	e := &fakeEmitter{}
	s.emitter = e
	m.OnDismissed(s.HandleDismissed)
	return s, m, e
}

func TestServer_ShowToast(t *testing.T) {
	s, m, _ := newTestServer(t)

	id, derr := s.ShowToast("saved", "success", 1200)
	require.Nil(t, derr)
	require.NotEmpty(t, id)

	surface, ok := m.Get(id)
	require.True(t, ok)
	assert.Equal(t, overlay.Toast, surface.Kind)
	assert.Equal(t, overlay.Success, surface.Severity)
	assert.Equal(t, 1200*time.Millisecond, surface.Duration)

	_, derr = s.ShowToast("bad", "loud", 0)
	require.NotNil(t, derr)
	assert.Equal(t, ErrInvalidArgs, derr.Name)
	assert.Equal(t, 1, m.Count())
}

func TestServer_ShowSnackbar(t *testing.T) {
	s, m, _ := newTestServer(t)

	id, derr := s.ShowSnackbar("deleted", "UNDO", 0, "top-left")
	require.Nil(t, derr)

	surface, ok := m.Get(id)
	require.True(t, ok)
	assert.Equal(t, overlay.Snackbar, surface.Kind)
	assert.Equal(t, overlay.TopLeft, surface.Placement)
	assert.True(t, surface.HasAction())
	assert.Equal(t, overlay.MinSnackbarDuration, surface.Duration)

	_, derr = s.ShowSnackbar("deleted", "UNDO", 0, "nowhere")
	require.NotNil(t, derr)
	assert.Equal(t, ErrInvalidArgs, derr.Name)
}

func TestServer_ListDismissCloseAll(t *testing.T) {
	s, _, e := newTestServer(t)

	a, _ := s.ShowToast("a", "", 0)
	b, _ := s.ShowSnackbar("b", "", 0, "")

	entries, derr := s.ListActive()
	require.Nil(t, derr)
	assert.Equal(t, []ActiveEntry{
		{ID: a, Kind: "toast", Message: "a"},
		{ID: b, Kind: "snackbar", Message: "b"},
	}, entries)

	require.Nil(t, s.Dismiss(a))
	require.Nil(t, s.Dismiss("unknown"))
	require.Nil(t, s.CloseAll())

	entries, _ = s.ListActive()
	assert.Empty(t, entries)

	require.Len(t, e.signals, 2)
	assert.Equal(t, DBusInterface+".Dismissed", e.signals[0].name)
	assert.Equal(t, []any{a, "closed"}, e.signals[0].values)
	assert.Equal(t, []any{b, "closed"}, e.signals[1].values)
}

func TestServer_ActionEmitsActionInvokedThenDismissed(t *testing.T) {
	s, m, e := newTestServer(t)

	id, _ := s.ShowSnackbar("deleted", "UNDO", 0, "")
	require.True(t, m.InvokeAction(id))

	require.Len(t, e.signals, 2)
	assert.Equal(t, DBusInterface+".ActionInvoked", e.signals[0].name)
	assert.Equal(t, []any{id}, e.signals[0].values)
	assert.Equal(t, DBusInterface+".Dismissed", e.signals[1].name)
	assert.Equal(t, []any{id, "action"}, e.signals[1].values)
}

func TestServer_InvokerWrapsCalls(t *testing.T) {
	s, _, _ := newTestServer(t)

	calls := 0
	s.SetInvoker(func(fn func()) {
		calls++
		fn()
	})

	_, _ = s.ShowToast("a", "", 0)
	_, _ = s.ListActive()
	_ = s.CloseAll()
	assert.Equal(t, 3, calls)
}

func TestServer_EmitWithoutConnection(t *testing.T) {
	s := NewServer(nil, nil)
	assert.Error(t, s.EmitActionInvoked("x"))
	assert.Error(t, s.EmitDismissed("x", overlay.Expired))

	s.emitter = &fakeEmitter{err: errors.New("bus gone")}
	err := s.EmitDismissed("x", overlay.Expired)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bus gone")
}

func TestServer_StopWhenNotRunning(t *testing.T) {
	s := NewServer(nil, nil)
	assert.NoError(t, s.Stop())
	assert.Nil(t, s.Connection())
}

type fakeCaller struct {
	method string
	args   []any
	body   []any
	err    error
}

func (f *fakeCaller) Call(method string, flags dbus.Flags, args ...any) *dbus.Call {
	f.method = method
	f.args = args
	return &dbus.Call{Body: f.body, Err: f.err}
}

func TestClient_Calls(t *testing.T) {
	fc := &fakeCaller{body: []any{"01ID"}}
	c := &Client{obj: fc}

	id, err := c.ShowToast("hi", "error", 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "01ID", id)
	assert.Equal(t, DBusInterface+".ShowToast", fc.method)
	assert.Equal(t, []any{"hi", "error", int32(2000)}, fc.args)

	id, err = c.ShowSnackbar("gone", "UNDO", 0, "top-right")
	require.NoError(t, err)
	assert.Equal(t, "01ID", id)
	assert.Equal(t, []any{"gone", "UNDO", int32(0), "top-right"}, fc.args)

	fc.body = nil
	require.NoError(t, c.Dismiss("01ID"))
	assert.Equal(t, DBusInterface+".Dismiss", fc.method)
	require.NoError(t, c.CloseAll())
	assert.Equal(t, DBusInterface+".CloseAll", fc.method)

	fc.err = errors.New("no daemon")
	assert.ErrorContains(t, c.Dismiss("x"), "no daemon")
	_, err = c.ShowToast("hi", "", 0)
	assert.Error(t, err)

	assert.NoError(t, c.Close())
	_, err = c.Subscribe()
	assert.Error(t, err)
}
