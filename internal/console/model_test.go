package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/esplink/internal/device"
	"github.com/muurk/esplink/internal/notify"
)

func newBoardServer(t *testing.T, lastQuery *atomic.Value) (string, string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ping":
			_, _ = w.Write([]byte("pong"))
		case "/device":
			lastQuery.Store(r.URL.RawQuery)
			_, _ = w.Write([]byte(`{"state":"` + r.URL.Query().Get("state") + `"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("bad server URL: %v", err)
	}
	return u.Hostname(), u.Port()
}

func newModel(t *testing.T, rec *notify.Recorder, d Defaults) Model {
	t.Helper()
	client := device.NewClient(nil, rec)
	return New(context.Background(), client, rec, d)
}

// runCmd executes cmd, expanding batches, and feeds every resulting
// resultMsg back into the model, following any commands it returns.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = runCmd(t, m, c)
		}
	case resultMsg:
		next, follow := m.Update(msg)
		m = runCmd(t, next.(Model), follow)
	}
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func TestNew_Defaults(t *testing.T) {
	m := newModel(t, &notify.Recorder{}, Defaults{Host: "10.0.0.2", Port: "80", Venue: "hall", Device: "fan"})

	if m.value(fieldHost) != "10.0.0.2" || m.value(fieldName) != "fan" {
		t.Errorf("form not pre-filled: host=%q name=%q", m.value(fieldHost), m.value(fieldName))
	}
	if m.focus != fieldHost {
		t.Errorf("focus = %d, want host", m.focus)
	}
}

func TestFocusCycles(t *testing.T) {
	m := newModel(t, &notify.Recorder{}, Defaults{})

	m, _ = press(m, tea.KeyShiftTab)
	if m.focus != fieldValue {
		t.Errorf("shift+tab from first field: focus = %d, want %d", m.focus, fieldValue)
	}

	m, _ = press(m, tea.KeyTab)
	if m.focus != fieldHost {
		t.Errorf("tab from last field: focus = %d, want %d", m.focus, fieldHost)
	}
}

func TestPing(t *testing.T) {
	var last atomic.Value
	host, port := newBoardServer(t, &last)
	rec := &notify.Recorder{}
	m := newModel(t, rec, Defaults{Host: host, Port: port})

	m, cmd := press(m, tea.KeyCtrlP)
	if m.Busy() != 1 {
		t.Fatalf("Busy() = %d, want 1", m.Busy())
	}

	m = runCmd(t, m, cmd)
	if m.Busy() != 0 {
		t.Errorf("Busy() = %d after result, want 0", m.Busy())
	}
	if m.status != "ping: ok" {
		t.Errorf("status = %q", m.status)
	}
	if !rec.Has(device.ConnectedMessage, notify.SeveritySuccess) {
		t.Errorf("missing success toast, got %v", rec.Notes())
	}
}

func TestSwitchOn(t *testing.T) {
	var last atomic.Value
	host, port := newBoardServer(t, &last)
	m := newModel(t, &notify.Recorder{}, Defaults{Host: host, Port: port, Venue: "hall", Device: "fan"})

	m, cmd := press(m, tea.KeyCtrlO)
	m = runCmd(t, m, cmd)

	if got := last.Load(); got != "venue=hall&name=fan&state=on" {
		t.Errorf("query = %v", got)
	}
	if !strings.Contains(m.reply, `"state": "on"`) {
		t.Errorf("reply = %q", m.reply)
	}
}

func TestControlError_IsToasted(t *testing.T) {
	rec := &notify.Recorder{}
	m := newModel(t, rec, Defaults{Venue: "hall", Device: "fan"})

	m, cmd := press(m, tea.KeyCtrlX)
	m = runCmd(t, m, cmd)

	if !rec.Has("ESP32 not connected", notify.SeverityError) {
		t.Errorf("missing error toast, got %v", rec.Notes())
	}
	if !strings.Contains(m.status, "ESP32 not connected") {
		t.Errorf("status = %q", m.status)
	}
}

func TestSendValue_Rejected(t *testing.T) {
	rec := &notify.Recorder{}
	m := newModel(t, rec, Defaults{Host: "10.0.0.2", Port: "80"})
	m.inputs[fieldValue].SetValue("250")

	m, cmd := press(m, tea.KeyEnter)
	if m.Busy() != 0 {
		t.Errorf("out-of-range value should not send a request, Busy() = %d", m.Busy())
	}
	m = runCmd(t, m, cmd)
	if len(rec.Notes()) != 1 || rec.Notes()[0].Severity != notify.SeverityError {
		t.Errorf("notes = %v", rec.Notes())
	}
}

func TestToastLifecycle(t *testing.T) {
	m := newModel(t, &notify.Recorder{}, Defaults{})

	apply := func(t notify.Toast) {
		next, _ := m.Update(ToastMsg(t))
		m = next.(Model)
	}

	apply(notify.Toast{ID: "a", Message: "saved", Severity: notify.SeveritySuccess, State: notify.StateVisible})
	apply(notify.Toast{ID: "b", Message: "failed", Severity: notify.SeverityError, State: notify.StateVisible})
	if len(m.Toasts()) != 2 {
		t.Fatalf("Toasts() = %d, want 2", len(m.Toasts()))
	}

	apply(notify.Toast{ID: "a", Message: "saved", Severity: notify.SeveritySuccess, State: notify.StateFading})
	if m.Toasts()[0].State != notify.StateFading {
		t.Errorf("toast a state = %v, want fading", m.Toasts()[0].State)
	}

	apply(notify.Toast{ID: "a", State: notify.StateRemoved})
	apply(notify.Toast{ID: "a", State: notify.StateRemoved})
	toasts := m.Toasts()
	if len(toasts) != 1 || toasts[0].ID != "b" {
		t.Errorf("after removal Toasts() = %+v", toasts)
	}

	if !strings.Contains(m.View(), "failed") {
		t.Error("View() should draw the remaining toast")
	}
}

func TestRenderer_Sends(t *testing.T) {
	var got []tea.Msg
	r := Renderer(senderFunc(func(msg tea.Msg) { got = append(got, msg) }))

	r.Render(notify.Toast{ID: "x", Message: "hi"})

	if len(got) != 1 {
		t.Fatalf("sent %d messages, want 1", len(got))
	}
	if tm, ok := got[0].(ToastMsg); !ok || tm.ID != "x" {
		t.Errorf("sent %#v", got[0])
	}
}

type senderFunc func(tea.Msg)

func (f senderFunc) Send(msg tea.Msg) { f(msg) }

func TestQuit(t *testing.T) {
	m := newModel(t, &notify.Recorder{}, Defaults{})

	_, cmd := press(m, tea.KeyEsc)
	if cmd == nil {
		t.Fatal("esc should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}
