package services

import (
	"encoding/json"
	"time"

	"github.com/iffypixy/metaorta/internal/models"
	"gorm.io/gorm"
)

var auditDB *gorm.DB

// InitSystemLogger wires the database used for audit writes. Writes before
// initialization are dropped silently.
func InitSystemLogger(db *gorm.DB) {
	auditDB = db
}

func LogInfo(module, action, message string, userID *uint, ip string, extra interface{}) {
	writeLog("info", module, action, message, userID, ip, extra)
}

func LogWarning(module, action, message string, userID *uint, ip string, extra interface{}) {
	writeLog("warning", module, action, message, userID, ip, extra)
}

func LogError(module, action, message string, userID *uint, ip string, extra interface{}) {
	writeLog("error", module, action, message, userID, ip, extra)
}

func writeLog(level, module, action, message string, userID *uint, ip string, extra interface{}) {
	if auditDB == nil {
		return
	}

	var extraStr string
	if extra != nil {
		if b, err := json.Marshal(extra); err == nil {
			extraStr = string(b)
		}
	}

	entry := &models.SystemLog{
		Level:     level,
		Module:    module,
		Action:    action,
		Message:   message,
		UserID:    userID,
		IP:        ip,
		Extra:     extraStr,
		CreatedAt: time.Now(),
	}
	auditDB.Create(entry)
}

type SystemLogService struct {
	db *gorm.DB
}

func NewSystemLogService(db *gorm.DB) *SystemLogService {
	return &SystemLogService{db: db}
}

// CleanupOldLogs deletes audit entries older than retentionDays. Returns
// the number of deleted rows.
func (s *SystemLogService) CleanupOldLogs(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
