package types

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNoVariant is returned by Resolve when a message has no populated
// variant. During stream consumption this is treated as an unknown event,
// never as a fatal condition.
var ErrNoVariant = errors.New("types: event message has no variant set")

// union is implemented by messages that are tagged unions. which returns the
// populated variant's wire name and value, or ErrNoVariant.
type union interface {
	which() (name string, value any, err error)
}

// EventMessage is the top-level tagged union delivered on the event stream.
// Exactly one variant field is populated per message.
type EventMessage struct {
	RobotState                 *RobotState
	MirrorModeDisabled         *MirrorModeDisabled
	VisionModesAutoDisabled    *VisionModesAutoDisabled
	ObjectEvent                *ObjectEvent
	RobotObservedFace          *RobotObservedFace
	RobotChangedObservedFaceID *RobotChangedObservedFaceID
	WakeWord                   *WakeWord
	AudioSendModeChanged       *AudioSendModeChanged
}

func (m *EventMessage) which() (string, any, error) {
	switch {
	case m == nil:
		return "", nil, ErrNoVariant
	case m.RobotState != nil:
		return "robot_state", m.RobotState, nil
	case m.MirrorModeDisabled != nil:
		return "mirror_mode_disabled", m.MirrorModeDisabled, nil
	case m.VisionModesAutoDisabled != nil:
		return "vision_modes_auto_disabled", m.VisionModesAutoDisabled, nil
	case m.ObjectEvent != nil:
		return "object_event", m.ObjectEvent, nil
	case m.RobotObservedFace != nil:
		return "robot_observed_face", m.RobotObservedFace, nil
	case m.RobotChangedObservedFaceID != nil:
		return "robot_changed_observed_face_id", m.RobotChangedObservedFaceID, nil
	case m.WakeWord != nil:
		return "wake_word", m.WakeWord, nil
	case m.AudioSendModeChanged != nil:
		return "audio_send_mode_changed", m.AudioSendModeChanged, nil
	}
	return "", nil, ErrNoVariant
}

// ObjectEvent is the object sub-union nested inside EventMessage. Object
// events arrive wrapped; Resolve unwraps them to their leaf name so
// subscribers register on "object_moved" rather than "object_event".
type ObjectEvent struct {
	ObjectAvailable       *ObjectAvailable
	ObjectConnectionState *ObjectConnectionState
	ObjectMoved           *ObjectMoved
	ObjectStoppedMoving   *ObjectStoppedMoving
	ObjectUpAxisChanged   *ObjectUpAxisChanged
	ObjectTapped          *ObjectTapped
	RobotObservedObject   *RobotObservedObject
	CubeConnectionLost    *CubeConnectionLost
}

func (m *ObjectEvent) which() (string, any, error) {
	switch {
	case m == nil:
		return "", nil, ErrNoVariant
	case m.ObjectAvailable != nil:
		return "object_available", m.ObjectAvailable, nil
	case m.ObjectConnectionState != nil:
		return "object_connection_state", m.ObjectConnectionState, nil
	case m.ObjectMoved != nil:
		return "object_moved", m.ObjectMoved, nil
	case m.ObjectStoppedMoving != nil:
		return "object_stopped_moving", m.ObjectStoppedMoving, nil
	case m.ObjectUpAxisChanged != nil:
		return "object_up_axis_changed", m.ObjectUpAxisChanged, nil
	case m.ObjectTapped != nil:
		return "object_tapped", m.ObjectTapped, nil
	case m.RobotObservedObject != nil:
		return "robot_observed_object", m.RobotObservedObject, nil
	case m.CubeConnectionLost != nil:
		return "cube_connection_lost", m.CubeConnectionLost, nil
	}
	return "", nil, ErrNoVariant
}

// Resolve flattens a stream message into its leaf (event name, payload)
// pair. When the populated variant is itself a union, Resolve recurses into
// it; a malformed inner union (no variant set) degrades to the outer pair
// rather than failing the event. Resolve returns ErrNoVariant only when the
// top-level message itself has nothing set.
func Resolve(m *EventMessage) (string, any, error) {
	return resolve(m)
}

func resolve(u union) (string, any, error) {
	name, value, err := u.which()
	if err != nil {
		return "", nil, err
	}
	if inner, ok := value.(union); ok {
		if n, v, err := resolve(inner); err == nil {
			return n, v, nil
		}
		// Inner union with no variant: deliver the outer pair as-is.
	}
	return name, value, nil
}

// As assigns an event payload to the target pointer. target must be a
// non-nil pointer whose element type matches the payload. Callbacks use it
// to bind the `any` payload without hand-rolled type assertions.
//
//	func onFace(ctx context.Context, robot any, name string, data any, extra ...any) error {
//		var face types.RobotObservedFace
//		if err := types.As(data, &face); err != nil { ... }
//	}
func As(data any, target any) error {
	if target == nil {
		return fmt.Errorf("types.As: target must be a non-nil pointer")
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("types.As: target must be a non-nil pointer, got %T", target)
	}

	if data == nil {
		return fmt.Errorf("types.As: payload is nil")
	}

	payloadVal := reflect.ValueOf(data)
	targetElem := rv.Elem()

	// Payloads are usually delivered as pointers; dereference first.
	if payloadVal.Kind() == reflect.Ptr {
		if payloadVal.IsNil() {
			return fmt.Errorf("types.As: payload is nil pointer")
		}
		payloadVal = payloadVal.Elem()
	}

	if !payloadVal.Type().AssignableTo(targetElem.Type()) {
		return fmt.Errorf("types.As: payload type %T is not assignable to %s", data, targetElem.Type())
	}

	targetElem.Set(payloadVal)
	return nil
}
