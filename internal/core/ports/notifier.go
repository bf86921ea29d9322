package ports

import "context"

// NotificationKind names the event a staff notice is about.
type NotificationKind string

const (
	NotifySocioWelcome  NotificationKind = "socio_welcome"
	NotifySocioUpdated  NotificationKind = "socio_updated"
	NotifySocioRemoved  NotificationKind = "socio_removed"
	NotifyPasswordReset NotificationKind = "password_reset"
)

// Notification is a message for staff or a member, delivered asynchronously.
type Notification struct {
	Kind    NotificationKind
	Subject string // socio id or user email; used for ordering
	Title   string
	Message string
}

// Notifier delivers a single notification.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotificationQueue accepts notifications for background delivery.
type NotificationQueue interface {
	Enqueue(n Notification)
}
