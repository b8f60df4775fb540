package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/rubiojr/apodview/pkg/apod"
	"github.com/rubiojr/apodview/pkg/gallery"
	"github.com/rubiojr/apodview/pkg/source"
)

func TestInitialState(t *testing.T) {
	o := New(source.Static{}, nil)
	if o.State() != Idle {
		t.Fatalf("state = %v", o.State())
	}
	if o.TriggerLabel() != IdleLabel || o.TriggerDisabled() || o.BusyVisible() {
		t.Fatalf("unexpected idle controls: %q %v %v", o.TriggerLabel(), o.TriggerDisabled(), o.BusyVisible())
	}
	g := o.Grid()
	if !g.HasPlaceholder() || g.Placeholder.Message != gallery.InitialMessage {
		t.Fatalf("expected initial placeholder, got %+v", g)
	}
}

func TestBeginBlocksReentry(t *testing.T) {
	o := New(source.Static{}, nil)
	if !o.Begin() {
		t.Fatal("first Begin should succeed")
	}
	if o.Begin() {
		t.Fatal("second Begin should be rejected while busy")
	}
	if o.TriggerLabel() != BusyLabel || !o.TriggerDisabled() || !o.BusyVisible() {
		t.Fatal("busy controls not shown")
	}
	if o.BusyMessage() != BusyMessage {
		t.Fatalf("busy message = %q", o.BusyMessage())
	}
}

func TestCompleteSuccessSortsNewestFirst(t *testing.T) {
	calls := 0
	o := New(source.Static{}, nil, OnSuccess(func() { calls++ }))
	o.Begin()
	o.Complete([]apod.Record{
		{Title: "A", Date: "2020-01-01", MediaType: "image", URL: "https://x/a.jpg"},
		{Title: "C", Date: "2022-01-01", MediaType: "image", URL: "https://x/c.jpg"},
		{Title: "B", Date: "2021-01-01", MediaType: "image", URL: "https://x/b.jpg"},
	}, nil)

	if o.State() != Idle {
		t.Fatal("expected idle after completion")
	}
	if calls != 1 {
		t.Fatalf("onSuccess called %d times", calls)
	}
	g := o.Grid()
	if g.Len() != 3 {
		t.Fatalf("expected 3 cards, got %d", g.Len())
	}
	want := []string{"C", "B", "A"}
	for i, c := range g.Cards {
		if c.Title != want[i] {
			t.Errorf("card %d title = %q, want %q", i, c.Title, want[i])
		}
	}
	if rec, ok := o.Record(0); !ok || rec.Title != "C" {
		t.Fatalf("Record(0) = %+v, %v", rec, ok)
	}
	if _, ok := o.Record(3); ok {
		t.Fatal("Record(3) should be out of range")
	}
	if o.LastError() != nil {
		t.Fatalf("LastError = %v", o.LastError())
	}
}

func TestCompleteFailure(t *testing.T) {
	calls := 0
	o := New(source.Static{}, nil, OnSuccess(func() { calls++ }))
	o.Begin()
	o.Complete([]apod.Record{{Title: "A", Date: "2020-01-01"}}, nil)

	boom := errors.New("boom")
	o.Begin()
	o.Complete(nil, boom)

	if o.State() != Idle || o.TriggerDisabled() || o.BusyVisible() {
		t.Fatal("controls must be restored after failure")
	}
	if o.TriggerLabel() != IdleLabel {
		t.Fatalf("label = %q", o.TriggerLabel())
	}
	if !errors.Is(o.LastError(), boom) {
		t.Fatalf("LastError = %v", o.LastError())
	}
	g := o.Grid()
	if !g.HasPlaceholder() || !g.Placeholder.Error || g.Placeholder.Message != gallery.ErrorMessage {
		t.Fatalf("expected error placeholder, got %+v", g)
	}
	if len(o.Records()) != 0 {
		t.Fatal("records should be cleared on failure")
	}
	if calls != 1 {
		t.Fatalf("onSuccess must not run on failure, calls = %d", calls)
	}
}

func TestCompleteEmpty(t *testing.T) {
	o := New(source.Static{}, nil)
	o.FetchAndRender(context.Background())
	g := o.Grid()
	if !g.HasPlaceholder() || g.Placeholder.Message != gallery.EmptyMessage {
		t.Fatalf("expected empty placeholder, got %+v", g)
	}
}

func TestCompleteWithoutBeginIgnored(t *testing.T) {
	o := New(source.Static{}, nil)
	o.Complete([]apod.Record{{Title: "A"}}, nil)
	if o.Grid().Len() != 0 {
		t.Fatal("Complete without Begin must not render")
	}
}

func TestFetchAndRenderSourceError(t *testing.T) {
	o := New(source.Func(func(context.Context) ([]apod.Record, error) {
		return nil, &source.StatusError{Code: 500, Status: "500 Internal Server Error"}
	}), nil)
	o.FetchAndRender(context.Background())

	var se *source.StatusError
	if !errors.As(o.LastError(), &se) {
		t.Fatalf("LastError = %v", o.LastError())
	}
	if o.State() != Idle {
		t.Fatal("expected idle")
	}
}

func TestFetchRecoversPanic(t *testing.T) {
	o := New(source.Func(func(context.Context) ([]apod.Record, error) {
		panic("kaboom")
	}), nil)
	o.FetchAndRender(context.Background())
	if o.LastError() == nil {
		t.Fatal("expected error from panicking source")
	}
	if o.State() != Idle {
		t.Fatal("expected idle")
	}
}

func TestFetchNoSource(t *testing.T) {
	o := New(nil, nil)
	o.FetchAndRender(context.Background())
	if o.LastError() == nil {
		t.Fatal("expected error without source")
	}
}
