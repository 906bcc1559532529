package bind

import (
	"errors"
	"strings"
	"testing"

	"github.com/nigeltao/tagwm/wm"
)

var nineTags = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}

func mustChord(t *testing.T, s string) Chord {
	t.Helper()
	c, err := ParseChord(s)
	if err != nil {
		t.Fatalf("ParseChord(%q): %v", s, err)
	}
	return c
}

func TestMapOverExpandsOncePerTag(t *testing.T) {
	var b Builder
	b.MapOver(nineTags, "M-{}", FocusWorkspace(Placeholder))
	b.MapOver(nineTags, "M-S-{}", ClientToWorkspace(Placeholder))
	table, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 18 {
		t.Fatalf("Len = %d, want 18", table.Len())
	}
	for _, tag := range nineTags {
		a, ok := table.Lookup(mustChord(t, "M-"+tag))
		if !ok || !a.Equal(FocusWorkspace(tag)) {
			t.Errorf("M-%s bound to %v, %v", tag, a, ok)
		}
		a, ok = table.Lookup(mustChord(t, "M-S-"+tag))
		if !ok || !a.Equal(ClientToWorkspace(tag)) {
			t.Errorf("M-S-%s bound to %v, %v", tag, a, ok)
		}
	}
}

func TestMapOverSubstitutesExternalArgs(t *testing.T) {
	table, err := Build([]Entry{{
		Pattern: "C-{}",
		Action:  RunExternal("notify-send", "workspace {}"),
		Tags:    []string{"a", "b"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	a, ok := table.Lookup(mustChord(t, "C-b"))
	if !ok || a.Command() != "notify-send" || a.Args()[0] != "workspace b" {
		t.Fatalf("C-b bound to %v", a)
	}
}

func TestLookupUnbound(t *testing.T) {
	table, err := Build([]Entry{{Pattern: "M-j", Action: CycleClient(wm.Forward)}})
	if err != nil {
		t.Fatal(err)
	}
	if a, ok := table.Lookup(mustChord(t, "M-z")); ok {
		t.Fatalf("M-z unexpectedly bound to %v", a)
	}
	var empty *Table
	if _, ok := empty.Lookup(mustChord(t, "M-z")); ok {
		t.Fatal("nil table should have no bindings")
	}
}

func TestLastWriteWins(t *testing.T) {
	table, err := Build([]Entry{
		{Pattern: "M-j", Action: CycleClient(wm.Forward)},
		{Pattern: "M-k", Action: CycleClient(wm.Backward)},
		{Pattern: "M-j", Action: KillClient()},
	})
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len = %d", table.Len())
	}
	a, _ := table.Lookup(mustChord(t, "M-j"))
	if !a.Equal(KillClient()) {
		t.Fatalf("M-j = %v, want kill_client", a)
	}
}

func TestLookupIgnoresLocks(t *testing.T) {
	table, _ := Build([]Entry{{Pattern: "M-j", Action: CycleClient(wm.Forward)}})
	if _, ok := table.Lookup(Chord{Mods: ModSuper | ModLock | ModNumLock, Key: 'j'}); !ok {
		t.Fatal("lock modifiers should not affect lookup")
	}
}

func TestBuildMalformedChord(t *testing.T) {
	_, err := Build([]Entry{
		{Pattern: "M-j", Action: CycleClient(wm.Forward)},
		{Pattern: "Q-j", Action: KillClient()},
	})
	var me *MalformedChordError
	if !errors.As(err, &me) {
		t.Fatalf("expected MalformedChordError, got %v", err)
	}
	if me.Index != 1 || me.Pattern != "Q-j" {
		t.Fatalf("error fields %+v", me)
	}
	if !strings.Contains(err.Error(), "binding 1") || !strings.Contains(err.Error(), "Q-j") {
		t.Fatalf("error message should name the binding: %v", err)
	}
}

func TestBuildMalformedExpandedChord(t *testing.T) {
	_, err := Build([]Entry{{Pattern: "M-{}", Action: FocusWorkspace(Placeholder), Tags: []string{"1", "web"}}})
	var me *MalformedChordError
	if !errors.As(err, &me) || me.Pattern != "M-web" {
		t.Fatalf("expected MalformedChordError for M-web, got %v", err)
	}
}

func TestBuildTemplateArity(t *testing.T) {
	tests := []Entry{
		{Pattern: "M-{}", Action: FocusWorkspace(Placeholder)},
		{Pattern: "M-j", Action: CycleClient(wm.Forward), Tags: nineTags},
		{Pattern: "M-{}{}", Action: FocusWorkspace(Placeholder), Tags: nineTags},
	}
	for _, e := range tests {
		_, err := Build([]Entry{e})
		var te *TemplateArityError
		if !errors.As(err, &te) {
			t.Errorf("%q with %d tags: expected TemplateArityError, got %v", e.Pattern, len(e.Tags), err)
			continue
		}
		if te.Pattern != e.Pattern || te.Index != 0 {
			t.Errorf("error fields %+v", te)
		}
	}
}

func TestBuildRejectsEmptyAction(t *testing.T) {
	_, err := Build([]Entry{{Pattern: "M-j"}})
	if !errors.Is(err, ErrNoAction) {
		t.Fatalf("expected ErrNoAction, got %v", err)
	}
}

func TestChordsSorted(t *testing.T) {
	table, _ := Build([]Entry{
		{Pattern: "M-k", Action: CycleClient(wm.Backward)},
		{Pattern: "M-S-j", Action: DragClient(wm.Forward)},
		{Pattern: "M-j", Action: CycleClient(wm.Forward)},
	})
	var got []string
	for _, c := range table.Chords() {
		got = append(got, c.String())
	}
	if strings.Join(got, " ") != "M-S-j M-j M-k" && strings.Join(got, " ") != "M-j M-S-j M-k" {
		t.Fatalf("Chords = %v", got)
	}
	if got[2] != "M-k" {
		t.Fatalf("Chords = %v", got)
	}
}

func TestRunInternal(t *testing.T) {
	a, err := RunInternal(OpCycleWorkspace, wm.Backward)
	if err != nil || !a.Equal(CycleWorkspace(wm.Backward)) {
		t.Fatalf("RunInternal = %v, %v", a, err)
	}
	if _, err := RunInternal(OpCycleWorkspace, "3"); err == nil {
		t.Fatal("expected error for wrong parameter type")
	}
	if _, err := RunInternal(OpExit, wm.Forward); err == nil {
		t.Fatal("expected error for unexpected parameter")
	}
	if _, err := RunInternal(OpFocusWorkspace, ""); err == nil {
		t.Fatal("expected error for empty tag")
	}
	if _, err := RunInternal(Op(99), nil); err == nil {
		t.Fatal("expected error for unknown op")
	}
}

func TestParseOpNames(t *testing.T) {
	for op := OpExit; op < nOps; op++ {
		got, err := ParseOp(op.String())
		if err != nil || got != op {
			t.Errorf("ParseOp(%q) = %v, %v", op.String(), got, err)
		}
	}
	if _, err := ParseOp("spin"); err == nil {
		t.Fatal("expected error for unknown op")
	}
}

func TestActionArgsAreCopied(t *testing.T) {
	args := []string{"-l", "10"}
	a := RunExternal("dmenu_run", args...)
	args[0] = "changed"
	a.Args()[1] = "changed"
	if got := a.Args(); got[0] != "-l" || got[1] != "10" {
		t.Fatalf("args mutated: %v", got)
	}
	if a.String() != "run(dmenu_run -l 10)" {
		t.Fatalf("String = %q", a.String())
	}
}
