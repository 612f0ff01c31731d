package dbug_test

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/creack/pty"
	"github.com/zeebo/xxh3"

	"pkt.systems/dbug"
	"pkt.systems/dbug/ansi"
)

func newPlainRegistry(t *testing.T, patterns string) (*dbug.Registry, *bytes.Buffer, *clock.Mock) {
	t.Helper()
	var buf bytes.Buffer
	mock := clock.NewMock()
	reg := dbug.NewRegistry(dbug.Options{
		Patterns: patterns,
		Writer:   &buf,
		NoColor:  true,
		Clock:    mock,
	})
	return reg, &buf, mock
}

func collectLines(buf *bytes.Buffer) []string {
	raw := strings.Split(strings.TrimSpace(buf.String()), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func expectLines(t *testing.T, buf *bytes.Buffer, want ...string) {
	t.Helper()
	got := collectLines(buf)
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func hasANSI(s string) bool {
	return strings.Contains(s, "\x1b[")
}

func TestLogOutputFormat(t *testing.T) {
	reg, buf, mock := newPlainRegistry(t, "label")
	debug := reg.New("label")

	debug.Log("hello world")
	mock.Add(158 * time.Millisecond)
	debug.Log("hello world 3")

	expectLines(t, buf,
		"label hello world +0ms",
		"label hello world 3 +158ms",
	)
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatalf("expected newline terminated output, got %q", buf.String())
	}
}

func TestFirstLogMeasuresFromCreation(t *testing.T) {
	reg, buf, mock := newPlainRegistry(t, "*")
	debug := reg.New("startup")

	mock.Add(42 * time.Millisecond)
	debug.Log("first")

	expectLines(t, buf, "startup first +42ms")
}

func TestElapsedIsRelativeToPreviousLine(t *testing.T) {
	reg, buf, mock := newPlainRegistry(t, "*")
	debug := reg.New("timer")

	mock.Add(10 * time.Millisecond)
	debug.Log("a")
	mock.Add(25 * time.Millisecond)
	debug.Log("b")
	mock.Add(3 * time.Second)
	debug.Log("c")
	debug.Log("d")

	expectLines(t, buf,
		"timer a +10ms",
		"timer b +25ms",
		"timer c +3s",
		"timer d +0ms",
	)
}

func TestLoggersTrackTimeIndependently(t *testing.T) {
	reg, buf, mock := newPlainRegistry(t, "*")
	first := reg.New("first")
	mock.Add(100 * time.Millisecond)
	second := reg.New("second")

	mock.Add(50 * time.Millisecond)
	first.Log("x")
	second.Log("y")

	expectLines(t, buf,
		"first x +150ms",
		"second y +50ms",
	)
}

func TestDisabledLoggerWritesNothing(t *testing.T) {
	reg, buf, mock := newPlainRegistry(t, "other")
	debug := reg.New("label")
	if debug.Enabled() {
		t.Fatalf("expected label to be disabled")
	}
	for i := range 10 {
		debug.Log("nope")
		debug.Logf("nope %d", i)
		mock.Add(time.Millisecond)
	}
	if buf.Len() != 0 {
		t.Fatalf("disabled logger produced output: %q", buf.String())
	}
}

func TestEmptyPatternsDisableEverything(t *testing.T) {
	reg, buf, _ := newPlainRegistry(t, "")
	for _, name := range []string{"a", "label", "label:sub"} {
		reg.New(name).Log("hidden")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestEmptyMessage(t *testing.T) {
	reg, buf, _ := newPlainRegistry(t, "*")
	reg.New("label").Log("")
	expectLines(t, buf, "label  +0ms")
}

func TestLogf(t *testing.T) {
	reg, buf, _ := newPlainRegistry(t, "*")
	debug := reg.New("label")
	debug.Logf("hello world %d: %v", 3, struct{ Thing string }{"is a hand"})
	expectLines(t, buf, "label hello world 3: {is a hand} +0ms")
}

func TestExtendBuildsNamespace(t *testing.T) {
	reg, buf, _ := newPlainRegistry(t, "*")
	parent := reg.New("a")
	child := parent.Extend("b")
	deep := child.Extend("c")

	if child.Namespace() != "a:b" {
		t.Fatalf("unexpected child namespace %q", child.Namespace())
	}
	if deep.Namespace() != "a:b:c" {
		t.Fatalf("unexpected deep namespace %q", deep.Namespace())
	}
	deep.Log("more")
	expectLines(t, buf, "a:b:c more +0ms")
}

func TestExtendCustomDelimiter(t *testing.T) {
	reg := dbug.NewRegistry(dbug.Options{Patterns: "a.*", Writer: io.Discard, Delimiter: "."})
	child := reg.New("a").Extend("b")
	if child.Namespace() != "a.b" {
		t.Fatalf("unexpected namespace %q", child.Namespace())
	}
	if !child.Enabled() {
		t.Fatalf("expected a.b to be enabled")
	}
	if reg.Delimiter() != "." {
		t.Fatalf("unexpected delimiter %q", reg.Delimiter())
	}
}

func TestExtendResolvesChildIndependently(t *testing.T) {
	reg, buf, _ := newPlainRegistry(t, "a:b")
	parent := reg.New("a")
	child := parent.Extend("b")

	parent.Log("parent")
	child.Log("child")

	if parent.Enabled() {
		t.Fatalf("parent should be disabled")
	}
	if !child.Enabled() {
		t.Fatalf("child should be enabled")
	}
	expectLines(t, buf, "a:b child +0ms")
}

func TestExtendSkippedParentEnabledChild(t *testing.T) {
	reg, buf, _ := newPlainRegistry(t, "*,-label")
	parent := reg.New("label")
	child := parent.Extend("sub")

	parent.Log("hidden")
	child.Log("shown")

	expectLines(t, buf, "label:sub shown +0ms")
}

func TestExtendEnabledParentSkippedChild(t *testing.T) {
	reg, buf, _ := newPlainRegistry(t, "app*,-app:db")
	parent := reg.New("app")
	child := parent.Extend("db")

	parent.Log("shown")
	child.Log("hidden")

	expectLines(t, buf, "app shown +0ms")
}

func TestExtendStartsFreshTimer(t *testing.T) {
	reg, buf, mock := newPlainRegistry(t, "*")
	parent := reg.New("p")
	mock.Add(time.Second)
	child := parent.Extend("c")
	mock.Add(20 * time.Millisecond)

	child.Log("child")
	parent.Log("parent")

	expectLines(t, buf,
		"p:c child +20ms",
		"p parent +1s",
	)
}

func TestFuncSharesTiming(t *testing.T) {
	reg, buf, mock := newPlainRegistry(t, "*")
	debug := reg.New("something")
	log := debug.Func()
	again := debug.Func()

	mock.Add(10 * time.Millisecond)
	log("one")
	mock.Add(20 * time.Millisecond)
	debug.Log("two")
	mock.Add(5 * time.Millisecond)
	again("three")
	mock.Add(7 * time.Millisecond)
	debug.Funcf()("four %d", 4)

	expectLines(t, buf,
		"something one +10ms",
		"something two +20ms",
		"something three +5ms",
		"something four 4 +7ms",
	)
}

func TestFuncOnDisabledLogger(t *testing.T) {
	reg, buf, _ := newPlainRegistry(t, "-something")
	log := reg.New("something").Extend("x").Func()
	log("hidden")
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestNilLoggerIsDisabled(t *testing.T) {
	var debug *dbug.Logger
	if debug.Enabled() {
		t.Fatalf("nil logger must report disabled")
	}
	debug.Log("ignored")
	debug.Logf("ignored %d", 1)

	child := debug.Extend("child")
	if child != nil || child.Enabled() {
		t.Fatalf("extending a nil logger must yield a disabled nil logger")
	}
	child.Func()("ignored")
}

func TestDefaultOptionsWritePlainLine(t *testing.T) {
	var buf bytes.Buffer
	reg := dbug.NewRegistry(dbug.Options{Patterns: "*", Writer: &buf})

	reg.New("label").Log("msg")

	if got := buf.String(); got != "label msg +0ms\n" {
		t.Fatalf("unexpected default line %q", got)
	}
}

func TestShowDatePrefixesTimestamp(t *testing.T) {
	var buf bytes.Buffer
	mock := clock.NewMock()
	mock.Set(time.Date(2024, time.January, 2, 15, 4, 5, 678_000_000, time.UTC))
	reg := dbug.NewRegistry(dbug.Options{Patterns: "*", Writer: &buf, NoColor: true, ShowDate: true, Clock: mock})

	reg.New("label").Log("hello")

	expectLines(t, &buf, "2024-01-02T15:04:05.678Z label hello +0ms")
}

func TestForceColorOutput(t *testing.T) {
	var buf bytes.Buffer
	reg := dbug.NewRegistry(dbug.Options{
		Patterns:   "*",
		Writer:     &buf,
		ForceColor: true,
		Palette:    &ansi.PaletteBasic,
		Clock:      clock.NewMock(),
	})
	if !reg.Color() {
		t.Fatalf("expected colour to be forced on")
	}
	reg.New("label").Log("hello")

	code := ansi.PaletteBasic.Pick(xxh3.HashString("label"))
	want := code + "label" + ansi.Reset + " hello " + code + "+0ms" + ansi.Reset + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected coloured line: got %q want %q", buf.String(), want)
	}
}

func TestColorIsStablePerNamespace(t *testing.T) {
	var buf bytes.Buffer
	reg := dbug.NewRegistry(dbug.Options{Patterns: "*", Writer: &buf, ForceColor: true, Clock: clock.NewMock()})
	reg.New("stable").Log("one")
	reg.New("stable").Log("two")

	lines := collectLines(&buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	prefix := func(s string) string { return s[:strings.Index(s, "stable")] }
	if prefix(lines[0]) != prefix(lines[1]) || prefix(lines[0]) == "" {
		t.Fatalf("namespace colour changed between loggers: %q vs %q", lines[0], lines[1])
	}
}

func TestNoColorOnNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	reg := dbug.NewRegistry(dbug.Options{Patterns: "*", Writer: &buf})
	if reg.Color() {
		t.Fatalf("buffer must not be treated as a terminal")
	}
	reg.New("label").Log("plain")
	if hasANSI(buf.String()) {
		t.Fatalf("unexpected colour codes: %q", buf.String())
	}
}

func TestColorAutoDetectWithTTY(t *testing.T) {
	out := captureTTYOutput(t, func(w io.Writer) {
		reg := dbug.NewRegistry(dbug.Options{Patterns: "*", Writer: w})
		if !reg.Color() {
			t.Errorf("expected terminal to enable colour")
		}
		reg.New("tty").Log("color")
	})
	if !hasANSI(out) {
		t.Fatalf("expected ANSI sequences when terminal detected, got %q", out)
	}
}

func TestNoColorWinsOverTTY(t *testing.T) {
	out := captureTTYOutput(t, func(w io.Writer) {
		reg := dbug.NewRegistry(dbug.Options{Patterns: "*", Writer: w, NoColor: true})
		reg.New("tty").Log("plain")
	})
	if hasANSI(out) {
		t.Fatalf("unexpected ANSI sequences when NoColor set: %q", out)
	}
}

func captureTTYOutput(t *testing.T, fn func(io.Writer)) string {
	t.Helper()
	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, master)
		close(done)
	}()
	fn(slave)
	_ = slave.Close()
	<-done
	_ = master.Close()
	return buf.String()
}

func TestRegistryEnabledMatchesPatterns(t *testing.T) {
	reg, _, _ := newPlainRegistry(t, "app*,-app:db")
	set := reg.Patterns()
	for _, name := range []string{"app", "app:db", "app:http", "other", "app:db"} {
		if reg.Enabled(name) != set.Enabled(name) {
			t.Fatalf("registry and pattern set disagree on %q", name)
		}
	}
	if set.String() != "app*,-app:db" {
		t.Fatalf("unexpected patterns %q", set.String())
	}
}

func TestConcurrentLogKeepsLinesIntact(t *testing.T) {
	var buf bytes.Buffer
	reg := dbug.NewRegistry(dbug.Options{Patterns: "*", Writer: &buf, NoColor: true})
	shared := reg.New("shared")

	const workers, perWorker = 8, 100
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			own := reg.New(fmt.Sprintf("worker:%d", w))
			log := shared.Func()
			for i := range perWorker {
				if i%2 == 0 {
					log(fmt.Sprintf("msg-%d-%d", w, i))
				} else {
					own.Logf("msg-%d-%d", w, i)
				}
			}
		}()
	}
	wg.Wait()

	lineRE := regexp.MustCompile(`^(shared|worker:\d+) msg-\d+-\d+ \+\d+(ms|s)$`)
	lines := collectLines(&buf)
	if len(lines) != workers*perWorker {
		t.Fatalf("expected %d lines, got %d", workers*perWorker, len(lines))
	}
	for _, line := range lines {
		if !lineRE.MatchString(line) {
			t.Fatalf("garbled line %q", line)
		}
	}
}

func TestRealClockElapsed(t *testing.T) {
	var buf bytes.Buffer
	reg := dbug.NewRegistry(dbug.Options{Patterns: "*", Writer: &buf, NoColor: true})
	debug := reg.New("sleepy")
	debug.Log("before")
	time.Sleep(60 * time.Millisecond)
	debug.Log("after")

	lines := collectLines(&buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	var ms int
	if _, err := fmt.Sscanf(lines[1], "sleepy after +%dms", &ms); err != nil {
		t.Fatalf("unexpected line %q: %v", lines[1], err)
	}
	if ms < 55 || ms > 1000 {
		t.Fatalf("elapsed %dms not close to the 60ms delay", ms)
	}
}
