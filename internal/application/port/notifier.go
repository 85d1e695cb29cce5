package port

// NotifyLevel classifies a toast notification.
type NotifyLevel int

const (
	NotifyInfo NotifyLevel = iota
	NotifyWarning
	NotifyError
)

// String returns the level's display name.
func (l NotifyLevel) String() string {
	switch l {
	case NotifyWarning:
		return "warning"
	case NotifyError:
		return "error"
	default:
		return "info"
	}
}

// Notifier shows transient toast notifications to the user.
// Implementations must never block.
type Notifier interface {
	Notify(level NotifyLevel, text string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(NotifyLevel, string) {}
