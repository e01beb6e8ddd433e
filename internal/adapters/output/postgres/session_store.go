package postgres

import (
	"context"
	"errors"
	"time"

	"drive-rag/internal/domain"
	"drive-rag/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile-time check to ensure SessionStore implements the output port
var _ output.SessionStore = (*SessionStore)(nil)

// SessionRecord struct - Persistent row of a session
type SessionRecord struct {
	SessionKey  string              `gorm:"column:session_key;type:varchar(128);primaryKey"`
	Credentials *domain.Credentials `gorm:"type:jsonb;serializer:json"`
	User        *domain.UserProfile `gorm:"column:user_profile;type:jsonb;serializer:json"`
	History     []domain.Turn       `gorm:"type:jsonb;serializer:json"`
	StoreName   string              `gorm:"type:varchar(255)"`
	APIKey      string              `gorm:"column:api_key;type:text"`
	CreatedAt   time.Time           `gorm:"type:timestamptz"`
	UpdatedAt   time.Time           `gorm:"type:timestamptz;index"`
}

// TableName func
func (r *SessionRecord) TableName() string {
	return "sessions"
}

// MigrateDatabase func - Auto-migrate the sessions table
func MigrateDatabase(db *gorm.DB) error {
	if db == nil {
		return errors.New("an error when connect database")
	}
	return db.AutoMigrate(&SessionRecord{})
}

// SessionStore struct - Secondary/Driven adapter for PostgreSQL session storage
type SessionStore struct {
	dbGorm *gorm.DB
	ttl    time.Duration
}

// NewSessionStore func - Creates the PostgreSQL session store and migrates its table.
// ttl: idle duration after which sessions expire, 0 keeps them forever
func NewSessionStore(dbGorm *gorm.DB, ttl time.Duration) (*SessionStore, error) {
	logrus.Info("Migrate database ...")
	if err := MigrateDatabase(dbGorm); err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return &SessionStore{
		dbGorm: dbGorm,
		ttl:    ttl,
	}, nil
}

// GetSession func - Loads a session, deleting it if it has expired
func (p *SessionStore) GetSession(ctx context.Context, key string) (*domain.Session, error) {
	var record SessionRecord
	err := p.dbGorm.WithContext(ctx).Where("session_key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	session := toDomain(&record)
	if session.IsExpired(p.ttl) {
		if err := p.DeleteSession(ctx, key); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return session, nil
}

// UpdateSession func - Upserts the whole session row
func (p *SessionStore) UpdateSession(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	record := toRecord(session)
	err := p.dbGorm.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"credentials", "user_profile", "history", "store_name", "api_key", "updated_at"}),
	}).Create(record).Error
	if err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// DeleteSession func - Hard deletes a session; missing rows are not an error
func (p *SessionStore) DeleteSession(ctx context.Context, key string) error {
	err := p.dbGorm.WithContext(ctx).Where("session_key = ?", key).Delete(&SessionRecord{}).Error
	if err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// PurgeExpired func - Removes every session idle for longer than ttl
func (p *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if p.ttl <= 0 {
		return 0, nil
	}
	tx := p.dbGorm.WithContext(ctx).Where("updated_at < ?", time.Now().Add(-p.ttl)).Delete(&SessionRecord{})
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func toRecord(session *domain.Session) *SessionRecord {
	clone := session.Clone()
	return &SessionRecord{
		SessionKey:  clone.Key,
		Credentials: clone.Credentials,
		User:        clone.User,
		History:     clone.History,
		StoreName:   clone.StoreName,
		APIKey:      clone.APIKey,
		CreatedAt:   clone.CreatedAt,
		UpdatedAt:   clone.UpdatedAt,
	}
}

func toDomain(record *SessionRecord) *domain.Session {
	history := record.History
	if history == nil {
		history = make([]domain.Turn, 0)
	}
	return &domain.Session{
		Key:         record.SessionKey,
		Credentials: record.Credentials,
		User:        record.User,
		StoreName:   record.StoreName,
		History:     history,
		APIKey:      record.APIKey,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
