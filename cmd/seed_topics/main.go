package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"stat-practice/internal/config"
	"stat-practice/internal/database"
	"stat-practice/internal/logger"
	"stat-practice/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// SeedTopic is one topic entry in the seed file
type SeedTopic struct {
	Name              string   `json:"name"`
	PreferredApproach string   `json:"teacher_preferred_approach"`
	Patterns          []string `json:"patterns"`
}

func main() {
	seedFilePath := flag.String("file", "configs/seed_data/initial_topics.json", "path to the topic seed file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting topic seeding", zap.String("file", *seedFilePath))
	db, err := database.NewSQLXPostgresDB(cfg.DB.URL)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	data, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}

	var topics []SeedTopic
	if err := json.Unmarshal(data, &topics); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}

	for _, t := range topics {
		if err := seedTopic(ctx, db, log, t); err != nil {
			log.Error("Error seeding topic", zap.String("topic", t.Name), zap.Error(err))
		}
	}
	log.Info("Topic seeding completed", zap.Int("topics", len(topics)))
}

func seedTopic(ctx context.Context, db *sqlx.DB, log *zap.Logger, seed SeedTopic) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for topic %s: %w", seed.Name, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("Rollback failed", zap.String("topic", seed.Name), zap.Error(rbErr))
			}
			return
		}
		err = tx.Commit()
	}()

	now := time.Now()
	topicID := util.NewULID()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO topics (id, name, teacher_preferred_approach, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO NOTHING`,
		topicID, seed.Name, util.StringToNullString(seed.PreferredApproach), now, now)
	if err != nil {
		return fmt.Errorf("failed to insert topic %s: %w", seed.Name, err)
	}

	// The topic may already exist; reuse its id for the patterns.
	if rows, _ := res.RowsAffected(); rows == 0 {
		if err = tx.GetContext(ctx, &topicID, `SELECT id FROM topics WHERE name = $1`, seed.Name); err != nil {
			return fmt.Errorf("failed to look up existing topic %s: %w", seed.Name, err)
		}
	}

	for _, pattern := range seed.Patterns {
		normalized := util.NormalizeWhitespace(pattern)
		if normalized == "" {
			continue
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO patterns (id, topic_id, pattern, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (topic_id, pattern) DO NOTHING`,
			util.NewULID(), topicID, normalized, now, now); err != nil {
			return fmt.Errorf("failed to insert pattern %q for topic %s: %w", normalized, seed.Name, err)
		}
	}

	log.Info("Seeded topic", zap.String("topic", seed.Name), zap.Int("patterns", len(seed.Patterns)))
	return nil
}
