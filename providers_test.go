package headlessterm

import "testing"

type recordingObserver struct {
	batches [][]Event
}

func (o *recordingObserver) Observe(events []Event) {
	o.batches = append(o.batches, append([]Event(nil), events...))
}

func TestEventObserverReceivesEventsProducedByWrite(t *testing.T) {
	obs := &recordingObserver{}
	term := New(WithSize(5, 20), WithEventObserver(obs))

	term.WriteString("\x1b]0;new title\x07")

	if len(obs.batches) != 1 {
		t.Fatalf("expected exactly one observed batch, got %d", len(obs.batches))
	}
	if len(obs.batches[0]) != 1 || obs.batches[0][0].Kind != EventTitleChanged {
		t.Fatalf("expected a single EventTitleChanged, got %+v", obs.batches[0])
	}
}

func TestEventObserverNotCalledWhenNoEventsProduced(t *testing.T) {
	obs := &recordingObserver{}
	term := New(WithSize(5, 20), WithEventObserver(obs))

	term.WriteString("plain text")

	if len(obs.batches) != 0 {
		t.Fatalf("expected no observed batches for plain text, got %d", len(obs.batches))
	}
}

func TestEventObserverDoesNotDisturbEventQueueDrain(t *testing.T) {
	obs := &recordingObserver{}
	term := New(WithSize(5, 20), WithEventObserver(obs))

	term.WriteString("\x1b]0;new title\x07")

	drained := term.events.Drain()
	if len(drained) != 1 {
		t.Fatalf("expected EventQueue.Drain to still see the event, got %d", len(drained))
	}
}

func TestNoopObserverIsDefault(t *testing.T) {
	term := New(WithSize(5, 20))
	// Must not panic with no observer configured.
	term.WriteString("\x1b]0;title\x07")
}
