package infra

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mineback/postulaciones/domain/model"
	"github.com/stretchr/testify/assert"
)

func newTestDB(t *testing.T) *DataBase {
	t.Helper()
	db, err := NewDataBase(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	return db
}

func TestDataBase_SubmissionLifecycle(t *testing.T) {
	db := newTestDB(t)

	submitted, err := db.HasSubmitted("user_id")
	assert.NoError(t, err)
	assert.False(t, submitted)

	sub := &model.Submission{
		ID:        "sub_1",
		UserID:    "user_id",
		Username:  "postulante",
		Source:    "web",
		Status:    string(model.StatusPending),
		Answers:   `{"edad":"16"}`,
		CreatedAt: time.Now(),
	}
	assert.NoError(t, db.SaveSubmission(sub))

	submitted, err = db.HasSubmitted("user_id")
	assert.NoError(t, err)
	assert.True(t, submitted)

	// No review post linked yet.
	got, err := db.GetSubmissionByReviewMessage("review_msg")
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, db.UpdateSubmissionReview("user_id", "sub_1", "review_msg"))
	got, err = db.GetSubmissionByReviewMessage("review_msg")
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "sub_1", got.ID)
	assert.Equal(t, string(model.StatusPending), got.Status)

	assert.NoError(t, db.UpdateSubmissionStatus("review_msg", string(model.StatusAccepted), "reviewer_id"))
	got, err = db.GetSubmissionByReviewMessage("review_msg")
	assert.NoError(t, err)
	assert.Equal(t, string(model.StatusAccepted), got.Status)
	assert.Equal(t, "reviewer_id", got.DecidedBy)
	assert.False(t, got.DecidedAt.IsZero())
}

func TestDataBase_HasSubmitted_WebOnly(t *testing.T) {
	db := newTestDB(t)

	// A chat application does not consume the web submission slot.
	assert.NoError(t, db.SaveSubmission(&model.Submission{
		ID:        "sub_chat",
		UserID:    "user_id",
		Source:    "chat",
		Status:    string(model.StatusPending),
		CreatedAt: time.Now(),
	}))
	submitted, err := db.HasSubmitted("user_id")
	assert.NoError(t, err)
	assert.False(t, submitted)

	assert.NoError(t, db.SaveSubmission(&model.Submission{
		ID:        "sub_web",
		UserID:    "user_id",
		Source:    "web",
		Status:    string(model.StatusPending),
		CreatedAt: time.Now(),
	}))
	submitted, err = db.HasSubmitted("user_id")
	assert.NoError(t, err)
	assert.True(t, submitted)
}

func TestDataBase_GetLatestSubmissions(t *testing.T) {
	db := newTestDB(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		assert.NoError(t, db.SaveSubmission(&model.Submission{
			ID:        string(rune('a' + i)),
			UserID:    "user_" + string(rune('a'+i)),
			Source:    "chat",
			Status:    string(model.StatusPending),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	subs, err := db.GetLatestSubmissions()
	assert.NoError(t, err)
	assert.Len(t, subs, 10)
	// Newest first.
	assert.Equal(t, "user_l", subs[0].UserID)
	assert.Equal(t, "user_c", subs[9].UserID)
}
