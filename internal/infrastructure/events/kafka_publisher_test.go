package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	skafka "github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	msgs   []skafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...skafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

type sampleEvent struct {
	Type      string `json:"type"`
	CotacaoID string `json:"cotacaoId"`
}

func (e sampleEvent) EventType() string { return e.Type }

func TestKafkaPublisher_Publish(t *testing.T) {
	t.Run("writes keyed json with event-type header", func(t *testing.T) {
		w := &fakeWriter{}
		p := NewKafkaPublisherWithWriter(w)

		err := p.Publish(context.Background(), "q-1", sampleEvent{Type: "cotacao.aceita", CotacaoID: "q-1"})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(w.msgs) != 1 {
			t.Fatalf("expected 1 message, got %d", len(w.msgs))
		}
		m := w.msgs[0]
		if string(m.Key) != "q-1" {
			t.Fatalf("expected key q-1, got %s", m.Key)
		}
		var got sampleEvent
		if err := json.Unmarshal(m.Value, &got); err != nil || got.Type != "cotacao.aceita" {
			t.Fatalf("expected decoded event, got %+v err=%v", got, err)
		}
		if len(m.Headers) != 1 || string(m.Headers[0].Value) != "cotacao.aceita" {
			t.Fatalf("expected event-type header, got %+v", m.Headers)
		}
	})

	t.Run("untyped payload has no header", func(t *testing.T) {
		w := &fakeWriter{}
		p := NewKafkaPublisherWithWriter(w)
		if err := p.Publish(context.Background(), "k", map[string]string{"a": "b"}); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(w.msgs[0].Headers) != 0 {
			t.Fatalf("expected no headers, got %+v", w.msgs[0].Headers)
		}
	})

	t.Run("propagates write errors", func(t *testing.T) {
		boom := errors.New("broker down")
		p := NewKafkaPublisherWithWriter(&fakeWriter{err: boom})
		if err := p.Publish(context.Background(), "k", sampleEvent{}); !errors.Is(err, boom) {
			t.Fatalf("expected broker error, got %v", err)
		}
	})

	t.Run("rejects unmarshalable values", func(t *testing.T) {
		w := &fakeWriter{}
		p := NewKafkaPublisherWithWriter(w)
		if err := p.Publish(context.Background(), "k", make(chan int)); err == nil {
			t.Fatalf("expected marshal error")
		}
		if len(w.msgs) != 0 {
			t.Fatalf("expected nothing written")
		}
	})

	t.Run("close closes the writer", func(t *testing.T) {
		w := &fakeWriter{}
		if err := NewKafkaPublisherWithWriter(w).Close(); err != nil || !w.closed {
			t.Fatalf("expected writer closed, err=%v", err)
		}
	})
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	if err := p.Publish(context.Background(), "k", nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
