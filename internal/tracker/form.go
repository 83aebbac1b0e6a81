package tracker

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/trivial-job-tracker/internal/model"
)

// ErrSubmitInFlight is returned by Submit while a previous submission is
// still waiting for the server.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// State is the submission state of a Form.
type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// Form owns the draft record and submits it.
type Form struct {
	res    Resource
	list   *List
	notify Notifier
	log    logrus.FieldLogger

	mu    sync.Mutex
	draft model.Draft
	state State
}

func newForm(res Resource, list *List, notifier Notifier, log logrus.FieldLogger) *Form {
	return &Form{
		res:    res,
		list:   list,
		notify: notifier,
		log:    log,
	}
}

// SetField updates exactly one draft field.
func (f *Form) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Set(name, value)
}

// Draft returns the current draft.
func (f *Form) Draft() model.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// State returns the current submission state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit sends the current draft. On success the list is refreshed once and
// the draft is cleared; a failed refresh is reported by the list and does not
// fail the submission. On failure the draft is left as it was.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == Submitting {
		f.mu.Unlock()
		f.log.Warn("submit ignored: previous submission still in flight")
		return ErrSubmitInFlight
	}
	f.state = Submitting
	payload := f.draft
	f.mu.Unlock()

	err := f.res.CreateApplication(ctx, payload)
	if err != nil {
		f.log.WithError(err).Error("Error creating application")
		f.notify.Notify(CreateFailedMessage)
		f.mu.Lock()
		f.state = Idle
		f.mu.Unlock()
		return err
	}

	_ = f.list.Refresh(ctx)

	f.mu.Lock()
	f.draft = model.Draft{}
	f.state = Idle
	f.mu.Unlock()
	return nil
}
