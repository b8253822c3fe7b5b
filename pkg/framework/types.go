package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Message is an event posted into the control loop by peripherals
// or by the operator console. Messages are examined during the
// iteration following the post.
type Message interface{}

// Controller defines the abstract controlling logic invoked once
// per phase per iteration.
type Controller interface {
	Control(ControlContext) error
}

// ControlFunc defines the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(ctx ControlContext) error {
	return f(ctx)
}

// TimeSource provides the time for controlling logic.
type TimeSource interface {
	Time() time.Time
}

// ControlContext provides the context of the current iteration.
type ControlContext interface {
	TimeSource
	// Context retrieves context.Context.
	Context() context.Context
	// Phase gets the phase currently being executed.
	Phase() int
	// Messages retrieves all messages collected when this
	// iteration started.
	Messages() MessageStore

	LoopControl
}

// Phases of one loop iteration, executed in order. Peripherals are
// examined in Sense, state mutations happen in Control, outputs are
// driven in Actuate, and the display is refreshed in Render.
const (
	PhaseSense int = iota
	PhaseControl
	PhaseActuate
	PhaseRender
	PhaseIdle

	PhaseCount
)

// LoopControl exposes access to the controlling loop.
type LoopControl interface {
	// PostMessage enqueues the message for the next iteration.
	PostMessage(Message)
	// TriggerNext schedules the next iteration to be executed
	// immediately after the current iteration.
	TriggerNext()
}

// MessageStore provides read/write access to a list of messages.
type MessageStore interface {
	// ProcessMessages uses a processor to examine all messages.
	ProcessMessages(MessageProcessor)

	// AddMessages appends messages for the next processing cycle.
	AddMessages(msgs ...Message)
}

// MessageProcessor is used by MessageStore to process messages.
type MessageProcessor interface {
	ProcessMessage(MessageProcessingContext)
}

// ProcessMessageFunc is the func form of MessageProcessor.
type ProcessMessageFunc func(MessageProcessingContext)

// ProcessMessage implements MessageProcessor.
func (f ProcessMessageFunc) ProcessMessage(mc MessageProcessingContext) {
	f(mc)
}

// MessageProcessingContext provides context for the current message.
type MessageProcessingContext interface {
	// CurrentMessage gets the message being processed.
	CurrentMessage() Message
	// MessageTaken indicates the message has been consumed and
	// should not be offered to further controllers.
	MessageTaken()
}
