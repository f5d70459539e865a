package services

import (
	"testing"

	"github.com/carlosrabelo/portlabel/domain/entities"
)

func TestChannelSink_DeliversInOrder(t *testing.T) {
	sink := NewChannelSink(8)
	sink.StateChanged(entities.StateApplying)
	sink.Progress(entities.Progress{Attempted: 1, Total: 2, Line: "Updated Gi0/1 -> uplink"})
	sink.StateChanged(entities.StateDone)
	sink.Close()
	sink.Close()

	var kinds []EventKind
	for ev := range sink.Events() {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == EventProgress && ev.Progress.Counter() != "1/2 interfaces updated" {
			t.Errorf("Counter() = %q", ev.Progress.Counter())
		}
	}
	expected := []EventKind{EventState, EventProgress, EventState}
	if len(kinds) != len(expected) {
		t.Fatalf("got %d events, want %d", len(kinds), len(expected))
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("event %d kind = %v, want %v", i, kinds[i], expected[i])
		}
	}
}

func TestChannelSink_WithService(t *testing.T) {
	sink := NewChannelSink(0)
	svc := NewDescriptionApplicationService(&mockTableOpener{table: &memTable{rows: sampleRows()}}, &mockOpener{})

	errc := make(chan error, 1)
	go func() {
		defer sink.Close()
		_, err := svc.Run(validRequest(sink))
		errc <- err
	}()

	progress := 0
	var last entities.RunState
	for ev := range sink.Events() {
		switch ev.Kind {
		case EventProgress:
			progress++
		case EventState:
			last = ev.State
		}
	}
	if err := <-errc; err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if progress != 3 || last != entities.StateDone {
		t.Errorf("progress=%d last=%v", progress, last)
	}
}
