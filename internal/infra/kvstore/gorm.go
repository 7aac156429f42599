package kvstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one key of an owner's saved site state.
type Entry struct {
	Owner     string `gorm:"primaryKey;size:64"`
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string { return "site_state_entries" }

// Gorm stores entries through gorm, in postgres for production.
type Gorm struct {
	db *gorm.DB
}

// NewGorm expects the Entry table to be migrated already.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) GetAll(ctx context.Context, owner string) (map[string]string, error) {
	var rows []Entry
	if err := g.db.WithContext(ctx).Where("owner = ?", owner).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

func (g *Gorm) SetMany(ctx context.Context, owner string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	now := time.Now().UTC()
	var rows []Entry
	var drop []string
	for k, v := range values {
		if v == "" {
			drop = append(drop, k)
			continue
		}
		rows = append(rows, Entry{Owner: owner, Key: k, Value: v, UpdatedAt: now})
	}
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(drop) > 0 {
			if err := tx.Where("owner = ? AND key IN ?", owner, drop).Delete(&Entry{}).Error; err != nil {
				return err
			}
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
}
