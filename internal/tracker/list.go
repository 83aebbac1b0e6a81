package tracker

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/trivial-job-tracker/internal/model"
)

// List holds the server's last successful list response, verbatim.
type List struct {
	res    Resource
	notify Notifier
	log    logrus.FieldLogger

	mu   sync.Mutex
	apps []model.Application
}

func newList(res Resource, notifier Notifier, log logrus.FieldLogger) *List {
	return &List{
		res:    res,
		notify: notifier,
		log:    log,
		apps:   []model.Application{},
	}
}

// Refresh replaces the whole collection with the server's current list.
// On failure the previous collection is kept and the user is notified.
func (l *List) Refresh(ctx context.Context) error {
	apps, err := l.res.ListApplications(ctx)
	if err != nil {
		l.log.WithError(err).Error("Error fetching applications")
		l.notify.Notify(LoadFailedMessage)
		return err
	}

	snapshot := make([]model.Application, len(apps))
	copy(snapshot, apps)

	l.mu.Lock()
	l.apps = snapshot
	l.mu.Unlock()

	l.log.WithField("count", len(snapshot)).Debug("applications refreshed")
	return nil
}

// Applications returns a copy of the current snapshot.
func (l *List) Applications() []model.Application {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Application, len(l.apps))
	copy(out, l.apps)
	return out
}

// Lines renders every application, one per line, in snapshot order.
func (l *List) Lines() []string {
	apps := l.Applications()
	lines := make([]string, len(apps))
	for i, a := range apps {
		lines[i] = a.Line()
	}
	return lines
}

// Render writes the snapshot to w.
func (l *List) Render(w io.Writer) {
	lines := l.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(w, "No applications found.")
		return
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
