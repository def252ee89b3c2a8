package carousel

import "time"

// PressFeedbackDuration is how long the renderer keeps an option drawn as
// pressed before calling ReleasePress.
const PressFeedbackDuration = 150 * time.Millisecond

// ActivationDispatcher fires option actions and tracks the transient pressed
// state shown by the renderer.
type ActivationDispatcher struct {
	emit    func(Event)
	pressed *Option
}

func NewActivationDispatcher(emit func(Event)) *ActivationDispatcher {
	if emit == nil {
		emit = func(Event) {}
	}
	return &ActivationDispatcher{emit: emit}
}

// Activate marks option as pressed, runs its action synchronously and reports
// the activation. An option without an action is still reported.
func (d *ActivationDispatcher) Activate(option Option) {
	d.Release()

	d.pressed = &option
	d.emit(OptionPressFeedback{Option: option, Pressed: true})

	if option.Action != nil {
		option.Action()
	}

	d.emit(OptionActivated{Option: option})
}

// Release clears the pressed state. It is a no-op when nothing is pressed.
func (d *ActivationDispatcher) Release() {
	if d.pressed == nil {
		return
	}
	option := *d.pressed
	d.pressed = nil
	d.emit(OptionPressFeedback{Option: option, Pressed: false})
}

// Pressed returns the option currently drawn as pressed.
func (d *ActivationDispatcher) Pressed() (Option, bool) {
	if d.pressed == nil {
		return Option{}, false
	}
	return *d.pressed, true
}
