package ports

// Port: user-facing notification surface. In the host form runtime this
// is a blocking modal dialog; the HTTP rendition collects alerts into
// the event response.
type Notifier interface {
	Alert(message string)
}
