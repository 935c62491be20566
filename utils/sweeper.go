package utils

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Thedarik/Quations/config"
	"github.com/Thedarik/Quations/database"
	"github.com/Thedarik/Quations/models"

	"github.com/robfig/cron/v3"
)

// logSweeper logs sweeper events with timestamp
func logSweeper(message string) {
	log.Printf("[SWEEPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sweepExpiredSessions drops session rows whose tokens can no longer be used.
func sweepExpiredSessions() {
	db := database.Database.Db

	result := db.Unscoped().Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if result.Error != nil {
		logSweeper("Error sweeping expired sessions: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logSweeper("Removed expired sessions")
	}
}

// sweepOrphanUploads removes blobs in the uploads directory that no question
// references anymore (left behind by account deletion or failed requests).
func sweepOrphanUploads() {
	db := database.Database.Db

	var referenced []string
	if err := db.Model(&models.Question{}).
		Where("image_path <> ''").
		Pluck("image_path", &referenced).Error; err != nil {
		logSweeper("Error listing referenced images: " + err.Error())
		return
	}

	inUse := make(map[string]bool, len(referenced))
	for _, p := range referenced {
		inUse[filepath.Clean(p)] = true
	}

	entries, err := os.ReadDir(config.AppConfig.UploadsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logSweeper("Error reading uploads directory: " + err.Error())
		}
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Clean(filepath.Join(config.AppConfig.UploadsDir, entry.Name()))
		if inUse[path] {
			continue
		}
		// Grace period so an upload in a not-yet-committed request survives
		info, err := entry.Info()
		if err != nil || time.Since(info.ModTime()) < time.Hour {
			continue
		}
		RemoveUploadedFile(path)
		logSweeper("Removed orphan upload " + path)
	}
}

// StartSweeper schedules the hourly session and upload cleanup.
func StartSweeper() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", func() {
		sweepExpiredSessions()
		sweepOrphanUploads()
	}); err != nil {
		log.Printf("Failed to schedule sweeper: %v", err)
		return c
	}

	c.Start()
	logSweeper("Scheduled hourly cleanup")
	return c
}
