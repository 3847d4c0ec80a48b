// Package alert is the seam for operational notifications. Delivery
// channels live outside this service; the sweep only hands a message to
// whatever Notifier it was wired with.
package alert

import "go.uber.org/zap"

// Notifier is the interface for sending alert messages.
type Notifier interface {
	Send(message string) error
	Close() error
}

// NoOpNotifier is a notifier that does nothing. It is used when alerting
// is disabled.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// Send does nothing and returns nil.
func (n *NoOpNotifier) Send(message string) error {
	return nil
}

// Close does nothing and returns nil.
func (n *NoOpNotifier) Close() error {
	return nil
}

// LogNotifier surfaces alerts through the service log at warn level,
// useful when no external channel is configured but alerts should still
// be visible.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the alert message.
func (n *LogNotifier) Send(message string) error {
	n.logger.Warn("alert", zap.String("message", message))
	return nil
}

// Close does nothing and returns nil.
func (n *LogNotifier) Close() error {
	return nil
}
