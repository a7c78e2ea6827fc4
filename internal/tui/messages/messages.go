package messages

import (
	"dua/internal/tui/common"
	"dua/pkg/types"
)

// FrameMsg carries a freshly rendered frame to the model
type FrameMsg struct {
	Frame common.Frame
}

// SessionDoneMsg is sent once the scan and the event loop have finished
type SessionDoneMsg struct {
	Result types.WalkResult
	Err    error
}

// RendererClosedMsg means no more frames will arrive
type RendererClosedMsg struct{}
