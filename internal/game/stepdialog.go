package game

import (
	"time"

	"github.com/ivahaev/timer"
)

// StepDialogAction is one clickable option: its label and the event it fires.
type StepDialogAction struct {
	SocketEvent string `json:"socketEvent"`
	Text        string `json:"text"`
}

// CompressedStepDialog is what clients see. The timeout is never exposed.
type CompressedStepDialog struct {
	Actions []StepDialogAction `json:"actions"`
	Header  string             `json:"header"`
}

// StepDialog is a pending action prompt targeted at one role. When the role
// has no human occupant the dialog arms a timer that fires the first option
// automatically, and clients get an empty option list (nobody to click).
type StepDialog struct {
	Actions []StepDialogAction
	Header  string

	timeout *timer.Timer
	// fireToken identifies this dialog's auto-fire to the event machine, so
	// a fire from a superseded dialog can be recognized and dropped.
	fireToken uint64
}

// NewStepDialog builds a dialog for a present human; it never times out.
func NewStepDialog(actions []StepDialogAction, header string) *StepDialog {
	return &StepDialog{Actions: actions, Header: header}
}

// NewTimedStepDialog builds a dialog for an absent role: after delay the
// first action's event is handed to fire, tagged with the token issued at
// arm time. The real option list stays available internally for that
// callback.
func NewTimedStepDialog(actions []StepDialogAction, header string, delay time.Duration, token uint64, fire func(socketEvent string, token uint64)) *StepDialog {
	d := &StepDialog{Actions: actions, Header: header, fireToken: token}
	if len(actions) > 0 {
		event := actions[0].SocketEvent
		d.timeout = timer.AfterFunc(delay, func() { fire(event, token) })
		d.timeout.Start()
	}
	return d
}

func (d *StepDialog) HasTimeout() bool {
	return d.timeout != nil
}

// ClearTimeout stops the auto-fire. Idempotent; must be called whenever a
// phase transition supersedes the dialog so a stale fire cannot run against
// superseded state.
func (d *StepDialog) ClearTimeout() {
	if d.timeout != nil {
		d.timeout.Stop()
		d.timeout = nil
	}
}

func (d *StepDialog) ToCompressed() CompressedStepDialog {
	if d.timeout != nil {
		return CompressedStepDialog{Actions: []StepDialogAction{}, Header: d.Header}
	}
	return CompressedStepDialog{Actions: append([]StepDialogAction{}, d.Actions...), Header: d.Header}
}
