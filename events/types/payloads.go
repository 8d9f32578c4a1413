package types

// Variant payloads for the event stream. Field sets are the subset of the
// wire messages the SDK surfaces; payloads reach callbacks verbatim.

// RobotState carries periodic changes to the robot's physical state.
type RobotState struct {
	PoseX           float32 `json:"pose_x"`
	PoseY           float32 `json:"pose_y"`
	PoseAngleRad    float32 `json:"pose_angle_rad"`
	HeadAngleRad    float32 `json:"head_angle_rad"`
	LiftHeightMM    float32 `json:"lift_height_mm"`
	BatteryVoltage  float32 `json:"battery_voltage"`
	CarryingObject  int32   `json:"carrying_object_id"`
	LastImageTimeMS uint32  `json:"last_image_time_ms"`
}

// MirrorModeDisabled signals that the camera-on-face mirror mode was turned
// off because behavior control was lost.
type MirrorModeDisabled struct{}

// VisionModesAutoDisabled signals that all vision modes were turned off
// because behavior control was lost.
type VisionModesAutoDisabled struct{}

// RobotObservedFace is sent when the robot sees a face.
type RobotObservedFace struct {
	FaceID      int32   `json:"face_id"`
	TimestampMS uint32  `json:"timestamp_ms"`
	Name        string  `json:"name,omitempty"`
	PoseX       float32 `json:"pose_x"`
	PoseY       float32 `json:"pose_y"`
}

// RobotChangedObservedFaceID is sent when a tracked face is recognized and
// switches from its temporary ID to a known one.
type RobotChangedObservedFaceID struct {
	OldID int32 `json:"old_id"`
	NewID int32 `json:"new_id"`
}

// WakeWord is sent when the robot hears its wake word.
type WakeWord struct {
	IntentHeard string `json:"intent_heard,omitempty"`
	IntentJSON  string `json:"intent_json,omitempty"`
}

// AudioSendModeChanged reports a change to the audio stream processing mode.
type AudioSendModeChanged struct {
	Mode string `json:"mode"`
}

// ObjectAvailable is broadcast by light cubes in range once cube discovery
// has started.
type ObjectAvailable struct {
	FactoryID string `json:"factory_id"`
}

// ObjectConnectionState reports a connectable object changing its digital
// connection state.
type ObjectConnectionState struct {
	ObjectID  uint32 `json:"object_id"`
	FactoryID string `json:"factory_id"`
	Connected bool   `json:"connected"`
}

// ObjectMoved is sent when an object starts moving.
type ObjectMoved struct {
	ObjectID    uint32 `json:"object_id"`
	TimestampMS uint32 `json:"timestamp_ms"`
}

// ObjectStoppedMoving is sent when an object stops moving.
type ObjectStoppedMoving struct {
	ObjectID    uint32 `json:"object_id"`
	TimestampMS uint32 `json:"timestamp_ms"`
}

// ObjectUpAxisChanged is sent when an object's orientation changes.
type ObjectUpAxisChanged struct {
	ObjectID    uint32 `json:"object_id"`
	UpAxis      string `json:"up_axis"`
	TimestampMS uint32 `json:"timestamp_ms"`
}

// ObjectTapped is sent when a cube is tapped.
type ObjectTapped struct {
	ObjectID    uint32 `json:"object_id"`
	TimestampMS uint32 `json:"timestamp_ms"`
}

// RobotObservedObject is sent when the robot sees an object.
type RobotObservedObject struct {
	ObjectID    int32   `json:"object_id"`
	TimestampMS uint32  `json:"timestamp_ms"`
	PoseX       float32 `json:"pose_x"`
	PoseY       float32 `json:"pose_y"`
	IsActive    bool    `json:"is_active"`
}

// CubeConnectionLost is sent when a subscribed cube connection drops.
type CubeConnectionLost struct {
	ObjectID uint32 `json:"object_id"`
}
