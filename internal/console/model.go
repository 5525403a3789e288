package console

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/esplink/internal/device"
	"github.com/muurk/esplink/internal/notify"
)

// Form fields, in focus order
const (
	fieldHost = iota
	fieldPort
	fieldVenue
	fieldName
	fieldValue
	fieldCount
)

var fieldLabels = [fieldCount]string{"Host", "Port", "Venue", "Device", "Value"}

// Defaults pre-fills the console form.
type Defaults struct {
	Host    string
	Port    string
	Venue   string
	Device  string
	Devices []string // Suggestions for the device field
}

// Model is the console's bubbletea model.
type Model struct {
	ctx      context.Context
	client   *device.Client
	notifier notify.Notifier

	inputs [fieldCount]textinput.Model
	focus  int

	Spinner spinner.Model
	busy    int    // Requests in flight
	status  string // Outcome of the last request
	reply   string // Indented JSON of the last device reply

	toasts []notify.Toast

	width  int
	height int

	help help.Model
	keys keyMap
}

// New creates a console model. Errors that the client does not already
// report as toasts (a rejected command, a malformed reply) are shown
// through notifier.
func New(ctx context.Context, client *device.Client, notifier notify.Notifier, defaults Defaults) Model {
	if notifier == nil {
		notifier = notify.Nop
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := Model{
		ctx:      ctx,
		client:   client,
		notifier: notifier,
		Spinner:  s,
		help:     help.New(),
		keys:     newKeyMap(),
	}

	placeholders := [fieldCount]string{"192.168.1.50", "80", "venue id", "device name", "0-100"}
	values := [fieldCount]string{defaults.Host, defaults.Port, defaults.Venue, defaults.Device, ""}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 253
		in.Width = 40
		in.SetValue(values[i])
		m.inputs[i] = in
	}
	m.inputs[fieldPort].CharLimit = 5
	m.inputs[fieldValue].CharLimit = 3
	if len(defaults.Devices) > 0 {
		m.inputs[fieldName].ShowSuggestions = true
		m.inputs[fieldName].SetSuggestions(defaults.Devices)
	}

	m.inputs[fieldHost].Focus()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ToastMsg:
		m.applyToast(notify.Toast(msg))
		return m, nil

	case resultMsg:
		return m.finish(msg)

	case spinner.TickMsg:
		if m.busy == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.Prev):
			return m.setFocus(m.focus - 1)
		case key.Matches(msg, m.keys.Ping):
			return m.start(m.ping())
		case key.Matches(msg, m.keys.On):
			return m.start(m.control("on", device.State("on")))
		case key.Matches(msg, m.keys.Off):
			return m.start(m.control("off", device.State("off")))
		case key.Matches(msg, m.keys.Level):
			return m.sendValue()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// applyToast mirrors a Board event. Removing a toast that is already gone
// is a no-op.
func (m *Model) applyToast(t notify.Toast) {
	for i := range m.toasts {
		if m.toasts[i].ID != t.ID {
			continue
		}
		if t.State == notify.StateRemoved {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
		} else {
			m.toasts[i] = t
		}
		return
	}
	if t.State != notify.StateRemoved {
		m.toasts = append(m.toasts, t)
	}
}

func (m Model) setFocus(i int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = (i + fieldCount) % fieldCount
	return m, m.inputs[m.focus].Focus()
}

func (m Model) start(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.busy++
	return m, tea.Batch(cmd, m.Spinner.Tick)
}

func (m Model) value(field int) string {
	return strings.TrimSpace(m.inputs[field].Value())
}

func (m Model) ping() tea.Cmd {
	ctx, client := m.ctx, m.client
	host, port := m.value(fieldHost), m.value(fieldPort)
	return func() tea.Msg {
		_, err := client.CheckConnection(ctx, host, port)
		return resultMsg{op: "ping", err: err}
	}
}

func (m Model) control(op string, params ...device.Param) tea.Cmd {
	ctx, client := m.ctx, m.client
	host, port := m.value(fieldHost), m.value(fieldPort)
	venue, name := m.value(fieldVenue), m.value(fieldName)
	return func() tea.Msg {
		reply, err := client.ControlDevice(ctx, host, port, venue, name, params...)
		return resultMsg{op: op, reply: reply, err: err}
	}
}

func (m Model) sendValue() (tea.Model, tea.Cmd) {
	raw := m.value(fieldValue)
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 || v > 100 {
		return m, m.notify(fmt.Sprintf("Value must be a number from 0 to 100, got %q", raw))
	}
	return m.start(m.control("value "+raw, device.Value(v)))
}

// notify raises an error toast outside the event loop. The Board renders
// synchronously into this program, so notifying from Update would block.
func (m Model) notify(message string) tea.Cmd {
	notifier := m.notifier
	return func() tea.Msg {
		notifier.Notify(message, notify.SeverityError)
		return nil
	}
}

// finish records a request outcome. Transport failures and ping results
// have already been toasted by the client.
func (m Model) finish(r resultMsg) (tea.Model, tea.Cmd) {
	if m.busy > 0 {
		m.busy--
	}

	if r.err != nil {
		m.status = fmt.Sprintf("%s: %s", r.op, device.MessageOf(r.err))
		if r.op != "ping" && !device.IsNetworkUnavailable(r.err) {
			return m, m.notify(device.MessageOf(r.err))
		}
		return m, nil
	}

	m.status = r.op + ": ok"
	if r.reply != nil {
		data, err := json.MarshalIndent(r.reply, "", "  ")
		if err != nil {
			m.reply = fmt.Sprint(r.reply)
		} else {
			m.reply = string(data)
		}
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("esplink console"))
	b.WriteString("\n")

	for i := range m.inputs {
		label := LabelStyle
		if i == m.focus {
			label = FocusedLabelStyle
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.busy > 0:
		b.WriteString(m.Spinner.View() + " waiting for device...")
	case m.status != "":
		b.WriteString(m.status)
	}
	b.WriteString("\n")

	if m.reply != "" {
		b.WriteString(ReplyStyle.Render(m.reply))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))

	body := b.String()
	if len(m.toasts) == 0 {
		return body
	}

	width := m.width
	if width <= 0 {
		width = notify.MinTerminalWidth
	}
	rendered := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		rendered = append(rendered, notify.RenderToast(t, width))
	}
	overlay := lipgloss.JoinVertical(lipgloss.Left, rendered...)

	// Pin toasts to the bottom of the screen
	if gap := m.height - lipgloss.Height(body) - lipgloss.Height(overlay); gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + overlay
}

// Toasts returns the toasts currently drawn.
func (m Model) Toasts() []notify.Toast {
	return append([]notify.Toast(nil), m.toasts...)
}

// Busy reports how many requests are in flight.
func (m Model) Busy() int {
	return m.busy
}
