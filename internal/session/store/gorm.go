package store

import (
	"context"
	"errors"
	"time"

	sessiondomain "github.com/kerbside/kerbside/internal/session/domain"
	"gorm.io/gorm"
)

// GormStore keeps the registry in a relational table. Session ids come from
// the table's autoincrement sequence, so they stay monotonic across process
// restarts; Clear resets the sequence along with the rows.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&sessiondomain.Session{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Create(ctx context.Context, vehicleID string, entryTime time.Time) (sessiondomain.Session, error) {
	sess := sessiondomain.Session{
		VehicleID: vehicleID,
		EntryTime: entryTime,
		Status:    sessiondomain.StatusActive,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sess).Error; err != nil {
			return err
		}
		if sess.VehicleID == "" {
			sess.VehicleID = sessiondomain.PlaceholderVehicleID(sess.SessionID)
			return tx.Model(&sessiondomain.Session{}).
				Where("session_id = ?", sess.SessionID).
				Update("vehicle_id", sess.VehicleID).Error
		}
		return nil
	})
	if err != nil {
		return sessiondomain.Session{}, err
	}
	return sess, nil
}

func (s *GormStore) Get(ctx context.Context, id int64) (sessiondomain.Session, error) {
	var sess sessiondomain.Session
	err := s.db.WithContext(ctx).First(&sess, "session_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sessiondomain.Session{}, sessiondomain.ErrNotFound
	}
	if err != nil {
		return sessiondomain.Session{}, err
	}
	return sess, nil
}

func (s *GormStore) Complete(ctx context.Context, id int64, exitTime time.Time) (sessiondomain.Session, error) {
	var sess sessiondomain.Session
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sess, "session_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return sessiondomain.ErrNotFound
			}
			return err
		}
		if sess.Status == sessiondomain.StatusCompleted {
			return nil
		}
		t := exitTime
		sess.ExitTime = &t
		sess.Status = sessiondomain.StatusCompleted
		return tx.Model(&sessiondomain.Session{}).
			Where("session_id = ?", id).
			Updates(map[string]any{
				"exit_time": sess.ExitTime,
				"status":    sess.Status,
			}).Error
	})
	if err != nil {
		return sessiondomain.Session{}, err
	}
	return sess, nil
}

func (s *GormStore) ListAll(ctx context.Context) ([]sessiondomain.Session, error) {
	var sessions []sessiondomain.Session
	err := s.db.WithContext(ctx).
		Order("session_id ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *GormStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM parking_sessions`).Error; err != nil {
			return err
		}
		// Reset the autoincrement sequence so ids restart at 1. The
		// sqlite_sequence row only exists once a session has been inserted.
		tx.Exec(`DELETE FROM sqlite_sequence WHERE name = 'parking_sessions'`)
		return nil
	})
}
