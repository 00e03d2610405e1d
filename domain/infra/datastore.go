package infra

import "github.com/mineback/postulaciones/domain/model"

const latestSubmissionsLimit = 10

type Datastore interface {
	// Archive a submitted application (pending or decided).
	SaveSubmission(*model.Submission) error
	// Look up a submission by the review post that carries its controls.
	GetSubmissionByReviewMessage(messageID string) (*model.Submission, error)
	// Record a reviewer decision.
	UpdateSubmissionStatus(reviewMessageID, status, decidedBy string) error
	// Link an archived submission to the review post carrying its controls.
	UpdateSubmissionReview(userID, id, reviewMessageID string) error
	// Whether this applicant already submitted via the web form
	// (duplicate guard for the web path only).
	HasSubmitted(userID string) (bool, error)
	// Most recent submissions, newest first.
	GetLatestSubmissions() ([]model.Submission, error)
}
