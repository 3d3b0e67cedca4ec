package agent

import (
	"errors"
	"fmt"
	"strings"
)

// State is a navigation state of the agent.
type State int

const (
	Idle State = iota
	PickingTarget
	Turning
	FollowingPath
	AwaitingImage
	InspectingPainting
	Manual
)

var stateNames = map[State]string{
	Idle:               "idle",
	PickingTarget:      "picking-target",
	Turning:            "turning",
	FollowingPath:      "following-path",
	AwaitingImage:      "awaiting-image",
	InspectingPainting: "inspecting-painting",
	Manual:             "manual",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Intent is one manual control input.
type Intent int

const (
	Forward Intent = iota
	Backward
	TurnLeft
	TurnRight
	StrafeLeft
	StrafeRight
)

var intentNames = map[string]Intent{
	"forward":      Forward,
	"backward":     Backward,
	"turn-left":    TurnLeft,
	"turn-right":   TurnRight,
	"strafe-left":  StrafeLeft,
	"strafe-right": StrafeRight,
}

// ErrUnknownIntent is returned by ParseIntent for names it does not know.
var ErrUnknownIntent = errors.New("unknown intent")

// ParseIntent maps an intent name such as "forward" or "turn-left" to an Intent.
func ParseIntent(s string) (Intent, error) {
	if intent, ok := intentNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return intent, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, s)
}
