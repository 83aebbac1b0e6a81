// Package tracker holds the client-side state of a tracking session: the list
// of applications last fetched from the server and the draft being composed.
//
// Every failure is handled at the operation boundary. It is logged to the
// diagnostic logger and reported once to the user through a Notifier.
package tracker

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/trivial-job-tracker/internal/model"
)

// Resource is the remote applications API as seen by the tracker.
type Resource interface {
	ListApplications(ctx context.Context) ([]model.Application, error)
	CreateApplication(ctx context.Context, draft model.Draft) error
}

// Messages reported through the Notifier. Details go to the diagnostic log.
const (
	LoadFailedMessage   = "Failed to load applications. Run with --log-level debug for details."
	CreateFailedMessage = "Failed to create application. Run with --log-level debug for details."
)

// Notifier delivers a user-visible failure message.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// WriterNotifier writes one line per notification to w.
func WriterNotifier(w io.Writer) Notifier {
	return NotifierFunc(func(message string) {
		fmt.Fprintln(w, message)
	})
}

// Tracker owns the list store and the form controller of one session.
type Tracker struct {
	List *List
	Form *Form
}

// New wires a session against res. Nothing is fetched until Start.
func New(res Resource, notifier Notifier, log logrus.FieldLogger) *Tracker {
	list := newList(res, notifier, log)
	return &Tracker{
		List: list,
		Form: newForm(res, list, notifier, log),
	}
}

// Start performs the initial refresh that mounting a session triggers.
func (t *Tracker) Start(ctx context.Context) error {
	return t.List.Refresh(ctx)
}
