package flush

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"odsw/xmlutil"
)

type recordingSink struct {
	mu        sync.Mutex
	events    []string
	finalized int
	failWrite error
	failFinal error
}

func (s *recordingSink) OpenPart(name string, store bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, fmt.Sprintf("open:%s:%t", name, store))
	return nil
}

func (s *recordingSink) Write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite != nil {
		return s.failWrite
	}
	s.events = append(s.events, string(p))
	return nil
}

func (s *recordingSink) FinalizeAndClose() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalized++
	return s.failFinal
}

func (s *recordingSink) snapshot() ([]string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...), s.finalized
}

func TestPipeline_Order(t *testing.T) {
	sink := &recordingSink{}
	p := New(sink, nil)
	for _, u := range []*Unit{
		NewPartUnit("content.xml", false, []byte("A")),
		NewUnit([]byte("B")),
		NewPartUnit("mimetype", true, nil),
		Terminal(),
	} {
		if err := p.Enqueue(u); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	events, finalized := sink.snapshot()
	want := []string{"open:content.xml:false", "A", "B", "open:mimetype:true"}
	if strings.Join(events, "|") != strings.Join(want, "|") {
		t.Errorf("events = %v, want %v", events, want)
	}
	if finalized != 1 {
		t.Errorf("finalized %d times", finalized)
	}
	if !p.Stopped() {
		t.Error("pipeline is not stopped")
	}
	if p.Written() != 2 {
		t.Errorf("Written() = %d", p.Written())
	}
	select {
	case <-p.Done():
	default:
		t.Error("Done() not closed after Run returned")
	}
}

func TestPipeline_EnqueueAfterTerminal(t *testing.T) {
	p := New(&recordingSink{}, nil)
	if err := p.Enqueue(Terminal()); err != nil {
		t.Fatal(err)
	}
	if err := p.Enqueue(NewUnit([]byte("late"))); !errors.Is(err, ErrStopped) {
		t.Errorf("enqueue after terminal = %v", err)
	}
	if err := p.Enqueue(Terminal()); !errors.Is(err, ErrStopped) {
		t.Errorf("second terminal = %v", err)
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := p.Enqueue(NewUnit([]byte("later"))); !errors.Is(err, ErrStopped) {
		t.Errorf("enqueue after stop = %v", err)
	}
}

func TestPipeline_Concurrent(t *testing.T) {
	const units = 1000
	sink := &recordingSink{}
	p := New(sink, nil)

	errc := make(chan error, 1)
	go func() { errc <- p.Run(context.Background()) }()

	for i := range units {
		if err := p.Enqueue(NewUnit([]byte(fmt.Sprint(i)))); err != nil {
			t.Fatal(err)
		}
		if i%100 == 0 {
			// let consumer catch up and wait on empty queue
			time.Sleep(time.Millisecond)
		}
	}
	if err := p.Enqueue(Terminal()); err != nil {
		t.Fatal(err)
	}
	if err := <-errc; err != nil {
		t.Fatal(err)
	}

	events, finalized := sink.snapshot()
	if len(events) != units {
		t.Fatalf("got %d units, want %d", len(events), units)
	}
	for i, e := range events {
		if e != fmt.Sprint(i) {
			t.Fatalf("unit %d = %q, order broken", i, e)
		}
	}
	if finalized != 1 {
		t.Errorf("finalized %d times", finalized)
	}
}

func TestPipeline_SinkError(t *testing.T) {
	boom := errors.New("disk full")
	sink := &recordingSink{failWrite: boom}
	p := New(sink, nil)
	if err := p.Enqueue(NewUnit([]byte("A"))); err != nil {
		t.Fatal(err)
	}

	err := p.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run() = %v", err)
	}
	if !errors.Is(p.Err(), boom) {
		t.Errorf("Err() = %v", p.Err())
	}
	if err := p.Enqueue(NewUnit([]byte("B"))); !errors.Is(err, boom) {
		t.Errorf("enqueue after failure = %v", err)
	}
	if _, finalized := sink.snapshot(); finalized != 0 {
		t.Error("sink finalized after write failure")
	}
}

func TestPipeline_FinalizeError(t *testing.T) {
	boom := errors.New("close failed")
	p := New(&recordingSink{failFinal: boom}, nil)
	_ = p.Enqueue(Terminal())
	if err := p.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Run() = %v", err)
	}
	if !p.Stopped() {
		t.Error("terminal unit processed but pipeline not stopped")
	}
}

func TestPipeline_Cancel(t *testing.T) {
	sink := &recordingSink{}
	p := New(sink, nil)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- p.Run(ctx) }()
	if err := p.Enqueue(NewUnit([]byte("A"))); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if _, finalized := sink.snapshot(); finalized != 0 {
		t.Error("sink finalized after cancel")
	}
	if p.Stopped() {
		t.Error("cancelled pipeline reports stopped")
	}
}

type testRow struct {
	text     string
	released *int
}

func (r testRow) AppendXML(u *xmlutil.Util, b *bytes.Buffer) {
	u.AppendTag(b, "row", r.text)
}

func (r testRow) Release() { *r.released++ }

func TestRenderRows(t *testing.T) {
	released := 0
	rows := []Row{testRow{"a&b", &released}, testRow{"c", &released}}
	u := RenderRows(xmlutil.New(), rows)

	if got := string(u.Data()); got != "<row>a&amp;b</row><row>c</row>" {
		t.Errorf("rendered %q", got)
	}
	if released != 2 {
		t.Errorf("released %d rows", released)
	}
	for i, r := range rows {
		if r != nil {
			t.Errorf("row %d not cleared", i)
		}
	}
	if u.IsTerminal() {
		t.Error("row unit is terminal")
	}
	if _, _, ok := u.Part(); ok {
		t.Error("row unit opens part")
	}
}
