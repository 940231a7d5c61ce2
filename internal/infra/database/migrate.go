package database

import (
	"fmt"

	"likering/internal/model"
	"likering/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type migration struct {
	version int
	name    string
	up      func(tx *gorm.DB) error
}

func execAll(statements ...string) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		for _, stmt := range statements {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	}
}

// migrations are applied in order and recorded in schema_migrations. Append only.
var migrations = []migration{
	{
		version: 1,
		name:    "create_tables",
		up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(model.All()...)
		},
	},
	{
		version: 2,
		name:    "cascade_video_children",
		up: execAll(
			`ALTER TABLE video_likes ADD CONSTRAINT fk_video_likes_video
				FOREIGN KEY (video_id) REFERENCES videos(id) ON DELETE CASCADE`,
			`ALTER TABLE video_views ADD CONSTRAINT fk_video_views_video
				FOREIGN KEY (video_id) REFERENCES videos(id) ON DELETE CASCADE`,
			`ALTER TABLE comments ADD CONSTRAINT fk_comments_video
				FOREIGN KEY (video_id) REFERENCES videos(id) ON DELETE CASCADE`,
		),
	},
	{
		version: 3,
		name:    "forbid_self_follow",
		up: execAll(
			`ALTER TABLE follows ADD CONSTRAINT chk_follows_not_self
				CHECK (follower_username <> following_username)`,
		),
	},
}

// Migrate brings the schema up to the latest version.
func Migrate(db *gorm.DB) error {
	err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    integer PRIMARY KEY,
		name       text NOT NULL,
		applied_at timestamptz NOT NULL DEFAULT now()
	)`).Error
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var applied []int
	if err := db.Raw("SELECT version FROM schema_migrations").Scan(&applied).Error; err != nil {
		return fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, m := range migrations {
		if done[m.version] {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.up(tx); err != nil {
				return err
			}
			return tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.version, m.name).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		logger.Info("Migration applied", zap.Int("version", m.version), zap.String("name", m.name))
	}

	return nil
}
