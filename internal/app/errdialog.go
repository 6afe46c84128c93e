package app

// errorDialog captures the most recent actionable failure. Dismissing hides
// the dialog but keeps the message, which is handy when debugging.
type errorDialog struct {
	message string
	visible bool
}

func (d *errorDialog) show(message string) {
	d.message = message
	d.visible = true
}

func (d *errorDialog) dismiss() {
	d.visible = false
}
