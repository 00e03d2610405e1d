package infra

import (
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mineback/postulaciones/domain/model"
)

type DataBase struct {
	db *gorm.DB
}

func NewDataBase(dbpath string) (*DataBase, error) {
	if dbpath == "" {
		dbpath = "./db/postulaciones.db"
	}
	if !path.IsAbs(dbpath) {
		dbpath = path.Join(os.Getenv("PWD"), dbpath)
	}
	if err := os.MkdirAll(filepath.Dir(dbpath), 0o755); err != nil {
		return nil, err
	}
	db, err := gorm.Open("sqlite3", dbpath)
	if err != nil {
		return nil, err
	}
	db.AutoMigrate(&model.Submission{})
	return &DataBase{db: db}, nil
}

func (d *DataBase) SaveSubmission(sub *model.Submission) error {
	return d.db.Save(sub).Error
}

func (d *DataBase) GetSubmissionByReviewMessage(messageID string) (*model.Submission, error) {
	var sub model.Submission
	err := d.db.Where("review_message_id = ?", messageID).First(&sub).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (d *DataBase) UpdateSubmissionStatus(reviewMessageID, status, decidedBy string) error {
	return d.db.Model(&model.Submission{}).
		Where("review_message_id = ?", reviewMessageID).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_by": decidedBy,
			"decided_at": time.Now(),
		}).Error
}

func (d *DataBase) UpdateSubmissionReview(_, id, reviewMessageID string) error {
	return d.db.Model(&model.Submission{}).
		Where("id = ?", id).
		Update("review_message_id", reviewMessageID).Error
}

// HasSubmitted only counts web submissions; a chat application must not
// lock the applicant out of the form.
func (d *DataBase) HasSubmitted(userID string) (bool, error) {
	var count int
	err := d.db.Model(&model.Submission{}).
		Where("user_id = ? AND source = ?", userID, "web").
		Count(&count).Error
	return count > 0, err
}

func (d *DataBase) GetLatestSubmissions() ([]model.Submission, error) {
	var subs []model.Submission
	err := d.db.Order("created_at desc").Limit(latestSubmissionsLimit).Find(&subs).Error
	return subs, err
}
