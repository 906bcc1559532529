package hook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"pkt.systems/pslog"

	"github.com/nigeltao/tagwm/wm"
)

type fakeHook struct {
	name    string
	failErr error
	events  *[]string
}

func (f *fakeHook) Name() string { return f.name }

func (f *fakeHook) Startup(wm.Handle) error {
	*f.events = append(*f.events, f.name+" startup")
	if f.failErr != nil {
		return &InitError{Hook: f.name, Err: f.failErr}
	}
	return nil
}

func (f *fakeHook) WorkspaceChange(_ wm.Handle, prev, next string) {
	*f.events = append(*f.events, fmt.Sprintf("%s change %s>%s", f.name, prev, next))
}

func (f *fakeHook) EventHandled(wm.Handle) {
	*f.events = append(*f.events, f.name+" handled")
}

func (f *fakeHook) Teardown() {
	*f.events = append(*f.events, f.name+" teardown")
}

type observerHook struct {
	fakeHook
}

func (o *observerHook) ClientsChanged(wm.Handle) {
	*o.events = append(*o.events, o.name+" clients")
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) entries(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(c.buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		entry := map[string]any{}
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("parse log entry: %v", err)
		}
		out = append(out, entry)
	}
	return out
}

func newTestLogger(capture *logCapture) pslog.Logger {
	return pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
}

func TestRegisterDropsFailingHook(t *testing.T) {
	var events []string
	capture := &logCapture{}
	a := &fakeHook{name: "a", events: &events}
	b := &fakeHook{name: "b", events: &events, failErr: errors.New("no font")}
	c := &observerHook{fakeHook{name: "c", events: &events}}

	s := Register(nil, newTestLogger(capture), a, b, c)
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	s.WorkspaceChange(nil, "1", "2")
	s.ClientsChanged(nil)
	s.EventHandled(nil)
	s.Teardown()
	s.Teardown()
	s.EventHandled(nil)

	want := []string{
		"a startup", "b startup", "c startup",
		"a change 1>2", "c change 1>2",
		"c clients",
		"a handled", "c handled",
		"c teardown", "a teardown",
	}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Fatalf("events =\n%v\nwant\n%v", events, want)
	}

	entries := capture.entries(t)
	if len(entries) != 1 || entries[0]["hook"] != "b" {
		t.Fatalf("expected one log entry for the dropped hook, got %+v", entries)
	}
}

func TestInitErrorUnwraps(t *testing.T) {
	base := errors.New("no surface")
	err := error(&InitError{Hook: "bar", Err: base})
	if !errors.Is(err, base) {
		t.Fatal("InitError should unwrap")
	}
	if err.Error() != "hook bar: init: no surface" {
		t.Fatalf("Error = %q", err.Error())
	}
}

func TestNameOfFallsBackToType(t *testing.T) {
	var events []string
	type anonymous struct{ Hook }
	if got := NameOf(anonymous{&fakeHook{events: &events}}); got != "hook.anonymous" {
		t.Fatalf("NameOf = %q", got)
	}
}
