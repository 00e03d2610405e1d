package handler

import (
	"sync"

	"github.com/mineback/postulaciones/domain/model"
)

// NoticeHandle locates the most recent "pending" DM sent to an applicant so
// a decision can edit it in place.
type NoticeHandle struct {
	ChannelID string
	MessageID string
}

// Workflow owns every piece of mutable intake state: the active-record map,
// the notification-handle map, the per-review-post decision guard and the
// intake-open flag. All access goes through this struct; the handler, the
// watchdogs, the drain loop and the web goroutines never touch the maps
// directly.
type Workflow struct {
	mu      sync.Mutex
	records map[string]*model.ApplicationRecord
	notices map[string]NoticeHandle
	decided map[string]bool
	open    bool
}

func NewWorkflow() *Workflow {
	return &Workflow{
		records: map[string]*model.ApplicationRecord{},
		notices: map[string]NoticeHandle{},
		decided: map[string]bool{},
	}
}

func (w *Workflow) SetOpen(open bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = open
}

func (w *Workflow) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// Reserve claims the applicant's single active-application slot before the
// private channel exists, so two concurrent button presses cannot both
// provision a channel. Release undoes a reservation whose channel creation
// failed.
func (w *Workflow) Reserve(userID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.records[userID]; ok {
		return model.ErrAlreadyActive
	}
	w.records[userID] = &model.ApplicationRecord{UserID: userID}
	return nil
}

func (w *Workflow) Release(userID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.records, userID)
}

// Bind attaches the created channel to a reserved slot and starts the clock.
func (w *Workflow) Bind(userID, channelID string) *model.ApplicationRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	rec := model.NewApplicationRecord(userID, channelID)
	w.records[userID] = rec
	return rec
}

// Lookup returns a snapshot of the applicant's record.
func (w *Workflow) Lookup(userID string) (model.ApplicationRecord, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	rec, ok := w.records[userID]
	if !ok {
		return model.ApplicationRecord{}, false
	}
	return w.snapshot(rec), true
}

func (w *Workflow) snapshot(rec *model.ApplicationRecord) model.ApplicationRecord {
	cp := *rec
	cp.Answers = make(map[int]string, len(rec.Answers))
	for k, v := range rec.Answers {
		cp.Answers[k] = v
	}
	return cp
}

// Answer stores text at the current question and advances the cursor.
// Messages from the wrong channel or from users without a record are a
// silent no-op. complete reports the transition into the confirmation stage.
func (w *Workflow) Answer(userID, channelID, text string, bankLen int) (next int, complete, accepted bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	rec, ok := w.records[userID]
	if !ok || rec.ChannelID != channelID {
		return 0, false, false
	}
	if rec.CurrentQuestion >= bankLen {
		return rec.CurrentQuestion, false, false
	}
	rec.Answers[rec.CurrentQuestion] = text
	rec.CurrentQuestion++
	return rec.CurrentQuestion, rec.CurrentQuestion == bankLen, true
}

func (w *Workflow) Remove(userID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.records, userID)
}

// Matches reports whether the applicant's record still refers to the given
// channel. The watchdog uses it to avoid firing on a reused slot.
func (w *Workflow) Matches(userID, channelID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	rec, ok := w.records[userID]
	return ok && rec.ChannelID == channelID
}

func (w *Workflow) SetNotice(userID string, handle NoticeHandle) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notices[userID] = handle
}

func (w *Workflow) Notice(userID string) (NoticeHandle, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	h, ok := w.notices[userID]
	return h, ok
}

// TryDecide is the single-slot guard on a review post: the first reviewer
// activation wins, every later one is rejected.
func (w *Workflow) TryDecide(reviewMessageID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.decided[reviewMessageID] {
		return false
	}
	w.decided[reviewMessageID] = true
	return true
}

// ActiveCount is test and diagnostics support.
func (w *Workflow) ActiveCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.records)
}
