// Package events bridges the robot's server-streaming event RPC to locally
// registered callbacks. A dedicated worker lane hosts default callbacks so
// slow user code never stalls stream consumption; registrations flagged with
// OnConnectionLane run on the connection's own lane for minimal latency.
package events

// EventType identifies an event stream by its wire name. Subscriptions are
// keyed by these names; types.Resolve produces them when flattening stream
// messages.
type EventType string

// String returns the wire name.
func (t EventType) String() string { return string(t) }

// Robot events delivered on the stream.
const (
	// RobotState carries changes to the robot's physical state.
	RobotState EventType = "robot_state"
	// MirrorModeDisabled fires when mirror mode is auto-disabled after the
	// SDK loses behavior control.
	MirrorModeDisabled EventType = "mirror_mode_disabled"
	// VisionModesAutoDisabled fires when all vision modes are auto-disabled
	// after the SDK loses behavior control.
	VisionModesAutoDisabled EventType = "vision_modes_auto_disabled"

	// ObjectAvailable is broadcast by light cubes in range during discovery.
	ObjectAvailable EventType = "object_available"
	// ObjectConnectionState fires when a connectable object changes its
	// connection state.
	ObjectConnectionState EventType = "object_connection_state"
	// ObjectMoved fires when an object starts moving.
	ObjectMoved EventType = "object_moved"
	// ObjectStoppedMoving fires when an object stops moving.
	ObjectStoppedMoving EventType = "object_stopped_moving"
	// ObjectUpAxisChanged fires when an object's orientation changes.
	ObjectUpAxisChanged EventType = "object_up_axis_changed"
	// ObjectTapped fires when an object is tapped.
	ObjectTapped EventType = "object_tapped"
	// RobotObservedObject fires when the robot sees an object.
	RobotObservedObject EventType = "robot_observed_object"
	// CubeConnectionLost fires when a subscribed cube connection drops.
	CubeConnectionLost EventType = "cube_connection_lost"

	// RobotObservedFace fires when the robot sees a face.
	RobotObservedFace EventType = "robot_observed_face"
	// RobotChangedObservedFaceID fires when a known face changes its ID.
	RobotChangedObservedFaceID EventType = "robot_changed_observed_face_id"

	// WakeWord fires when the robot hears its wake word.
	WakeWord EventType = "wake_word"

	// AudioSendModeChanged carries changes to the audio stream source
	// processing mode.
	AudioSendModeChanged EventType = "audio_send_mode_changed"
)

// Events synthesized locally by the SDK rather than received on the stream.
// They are dispatched through the same registry via DispatchEvent.
const (
	// ObjectObserved annotates robot_observed_object with SDK metadata.
	ObjectObserved EventType = "object_observed"
	// ObjectAppeared fires when an object is first observed.
	ObjectAppeared EventType = "object_appeared"
	// ObjectDisappeared fires when an object has not been observed for a
	// while.
	ObjectDisappeared EventType = "object_disappeared"
	// ObjectFinishedMove annotates object_stopped_moving with the move
	// duration.
	ObjectFinishedMove EventType = "object_finished_move"
	// NavMapUpdate carries nav map data.
	NavMapUpdate EventType = "nav_map_update"
)
