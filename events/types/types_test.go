package types

import "testing"

func TestResolve_SingleLevel(t *testing.T) {
	ww := &WakeWord{IntentHeard: "intent_greeting"}
	name, data, err := Resolve(&EventMessage{WakeWord: ww})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "wake_word" {
		t.Fatalf("expected wake_word, got %s", name)
	}
	if data != ww {
		t.Fatalf("expected the wake word payload, got %T", data)
	}
}

func TestResolve_NestedObjectEvent(t *testing.T) {
	moved := &ObjectMoved{ObjectID: 3, TimestampMS: 100}
	msg := &EventMessage{ObjectEvent: &ObjectEvent{ObjectMoved: moved}}

	name, data, err := Resolve(msg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "object_moved" {
		t.Fatalf("expected the leaf name object_moved, got %s", name)
	}
	if data != moved {
		t.Fatalf("expected the leaf payload, got %T", data)
	}
}

func TestResolve_EmptyInnerUnionDegradesToOuter(t *testing.T) {
	inner := &ObjectEvent{}
	name, data, err := Resolve(&EventMessage{ObjectEvent: inner})
	if err != nil {
		t.Fatalf("malformed inner union must not fail the event: %v", err)
	}
	if name != "object_event" {
		t.Fatalf("expected shallow name object_event, got %s", name)
	}
	if data != inner {
		t.Fatalf("expected the outer value, got %T", data)
	}
}

func TestResolve_NoVariant(t *testing.T) {
	if _, _, err := Resolve(&EventMessage{}); err != ErrNoVariant {
		t.Fatalf("expected ErrNoVariant, got %v", err)
	}
	if _, _, err := Resolve(nil); err != ErrNoVariant {
		t.Fatalf("expected ErrNoVariant for nil message, got %v", err)
	}
}

func TestAs_AssignsPayload(t *testing.T) {
	var face RobotObservedFace
	err := As(&RobotObservedFace{FaceID: 7, Name: "alice"}, &face)
	if err != nil {
		t.Fatalf("as: %v", err)
	}
	if face.FaceID != 7 || face.Name != "alice" {
		t.Fatalf("unexpected payload: %+v", face)
	}
}

func TestAs_TypeMismatch(t *testing.T) {
	var state RobotState
	if err := As(&RobotObservedFace{}, &state); err == nil {
		t.Fatal("expected a type mismatch error")
	}
}

func TestAs_InvalidTarget(t *testing.T) {
	if err := As(&WakeWord{}, nil); err == nil {
		t.Fatal("expected error for nil target")
	}
	var ww WakeWord
	if err := As(&WakeWord{}, ww); err == nil {
		t.Fatal("expected error for non-pointer target")
	}
	if err := As(nil, &ww); err == nil {
		t.Fatal("expected error for nil payload")
	}
}
