// Package notify carries transient, user-visible messages (toasts) raised by
// the cart, wishlist, checkout and session monitor.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

func Success(n Notifier, msg string) { n.Notify(Notification{Level: LevelSuccess, Message: msg}) }
func Warning(n Notifier, msg string) { n.Notify(Notification{Level: LevelWarning, Message: msg}) }
func Error(n Notifier, msg string)   { n.Notify(Notification{Level: LevelError, Message: msg}) }

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notification) {}

// Log writes notifications to a zap logger.
type Log struct {
	Logger *zap.Logger
}

func (l Log) Notify(n Notification) {
	l.Logger.Info("notification", zap.String("level", string(n.Level)), zap.String("message", n.Message))
}

// Queue buffers notifications until drained. HTTP handlers drain it into the
// response of the request that raised them.
type Queue struct {
	mu    sync.Mutex
	items []Notification
}

func (q *Queue) Notify(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, n)
}

// Drain returns the buffered notifications and empties the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Len is the number of buffered notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, t := range m {
		t.Notify(n)
	}
}
