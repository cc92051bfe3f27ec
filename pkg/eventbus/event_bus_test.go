package eventbus

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

type args struct {
	data interface{}
}

func TestPublisher_PublishWithoutSubscribers(t *testing.T) {
	type other struct {
		data interface{}
	}
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)
	log.SetLevel(logrus.DebugLevel)
	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *args) {
		t.Error("should not be called")
	})
	publisher.Publish(&other{data: "test"})

	if output := logBuffer.String(); output == "" {
		t.Error("should have logged")
	} else if !strings.Contains(output, "no matching subscribers") {
		t.Errorf("should have contained no matching subscribers but got: %q", output)
	}
}

func TestPublisher_Subscribe(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	publisher := NewEventPublisher(log)
	called := false
	var data interface{}
	publisher.Subscribe(func(e *args) {
		called = true
		data = e.data
	})
	publisher.Publish(&args{data: "test"})
	if !called {
		t.Error("should be called")
	}
	if data != "test" {
		t.Errorf("expected: %v, got: %v", "test", data)
	}
}

func TestPublisher_Unsubscribe(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	publisher := NewEventPublisher(log)
	handler := func(e *args) {
		t.Error("should not be called after unsubscribe")
	}
	publisher.Subscribe(handler)
	if publisher.SubscribersCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", publisher.SubscribersCount())
	}
	publisher.Unsubscribe(handler)
	if publisher.SubscribersCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", publisher.SubscribersCount())
	}
	publisher.Publish(&args{data: "test"})
}

func TestPublisher_UnsubscribeOneOfSameType(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	publisher := NewEventPublisher(log)
	firstCalled := false
	secondCalled := false
	first := func(e *args) { firstCalled = true }
	second := func(e *args) { secondCalled = true }
	publisher.Subscribe(first)
	publisher.Subscribe(second)
	publisher.Unsubscribe(first)
	if publisher.SubscribersCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", publisher.SubscribersCount())
	}
	publisher.Publish(&args{data: "test"})
	if firstCalled {
		t.Error("unsubscribed handler should not be called")
	}
	if !secondCalled {
		t.Error("remaining handler should be called")
	}
}

func TestPublisher_UnsubscribeNonFunction(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *args) {})
	publisher.Unsubscribe("not a function")
	if publisher.SubscribersCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", publisher.SubscribersCount())
	}
}

func TestPublisher_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	publisher := NewEventPublisher(log)

	secondCalled := false
	publisher.Subscribe(func(e *args) { panic("handler blew up") })
	publisher.Subscribe(func(e *args) { secondCalled = true })
	publisher.Publish(&args{data: "test"})

	if !secondCalled {
		t.Error("second handler should still run")
	}
}

func TestMatchSignature(t *testing.T) {
	type args2 struct{}
	if !MatchSignature(func(e *args) {}, []interface{}{&args{}}) {
		t.Error("expected true")
	}
	if MatchSignature(func(e *args) {}, []interface{}{&args2{}}) {
		t.Error("expected false")
	}
	if MatchSignature(func(e *args) {}, []interface{}{}) {
		t.Error("expected false")
	}
	if MatchSignature(func(e *args) {}, []interface{}{&args{}, &args{}}) {
		t.Error("expected false")
	}
	if !MatchSignature(func(ctx context.Context) {}, []interface{}{context.Background()}) {
		t.Error("expected true")
	}
	if MatchSignature("not a function", []interface{}{}) {
		t.Error("expected false")
	}
}
