// Package store persists one record per completed generation attempt. The
// table is append-only within a run; records are never updated in place.
package store

import (
	"encoding/json"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"adprompt/internal/fault"
	"adprompt/internal/score"
)

// AttemptRecord is the durable audit-trail row for one attempt, keyed by
// brand, campaign, and iteration.
type AttemptRecord struct {
	ID            string `gorm:"primaryKey"`
	BrandKitID    string `gorm:"index:idx_attempt_key"`
	CampaignID    string `gorm:"index:idx_attempt_key"`
	Iteration     int    `gorm:"index:idx_attempt_key"`
	OverallStatus string
	Scorecard     []byte `gorm:"type:blob"`
	VideoPath     string
	Caption       string
	CreatedAt     time.Time
}

// Store wraps the attempts database.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open opens (creating if needed) the sqlite database at path and runs
// migrations. Use ":memory:" for tests.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fault.Wrap(fault.CodePersistence, "open database", err)
	}
	if err := db.AutoMigrate(&AttemptRecord{}); err != nil {
		return nil, fault.Wrap(fault.CodePersistence, "migrate attempts table", err)
	}
	return &Store{db: db, log: log}, nil
}

// SaveAttempt appends one attempt record. A write failure is fatal to the
// whole run, not just the attempt.
func (s *Store) SaveAttempt(brandKitID, campaignID string, iteration int, card *score.Scorecard, videoPath, caption string) (*AttemptRecord, error) {
	payload, err := json.Marshal(card)
	if err != nil {
		return nil, fault.Wrap(fault.CodePersistence, "encode scorecard", err)
	}

	record := &AttemptRecord{
		ID:            uuid.NewString(),
		BrandKitID:    brandKitID,
		CampaignID:    campaignID,
		Iteration:     iteration,
		OverallStatus: string(card.OverallStatus),
		Scorecard:     payload,
		VideoPath:     videoPath,
		Caption:       caption,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, fault.Wrap(fault.CodePersistence, "insert attempt record", err)
	}

	s.log.Info("attempt persisted",
		zap.String("campaign", campaignID),
		zap.Int("iteration", iteration),
		zap.String("status", record.OverallStatus))
	return record, nil
}

// ListByCampaign returns a campaign's attempt history, oldest first.
func (s *Store) ListByCampaign(campaignID string) ([]AttemptRecord, error) {
	var records []AttemptRecord
	err := s.db.
		Where("campaign_id = ?", campaignID).
		Order("created_at asc, iteration asc").
		Find(&records).Error
	if err != nil {
		return nil, fault.Wrap(fault.CodePersistence, "list attempts", err)
	}
	return records, nil
}

// DecodeScorecard unpacks the stored scorecard JSON.
func (r *AttemptRecord) DecodeScorecard() (*score.Scorecard, error) {
	var card score.Scorecard
	if err := json.Unmarshal(r.Scorecard, &card); err != nil {
		return nil, fault.Wrap(fault.CodePersistence, "decode scorecard", err)
	}
	return &card, nil
}
