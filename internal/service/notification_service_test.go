package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/forkful/forkful/internal/models"
	"github.com/forkful/forkful/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupNotificationServiceTest(t *testing.T) (*NotificationService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:notification_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.NotificationSetting{}); err != nil {
		t.Fatalf("migrate notification models failed: %v", err)
	}
	return NewNotificationService(repository.NewNotificationSettingRepository(db)), db
}

func TestNotificationDefaultsAllEnabled(t *testing.T) {
	svc, _ := setupNotificationServiceTest(t)
	prefs, err := svc.GetPreferences(1)
	if err != nil {
		t.Fatalf("get preferences failed: %v", err)
	}
	if !prefs.PushEnabled || !prefs.EmailEnabled || !prefs.SpecialOffersEnabled {
		t.Fatalf("defaults should all be enabled: %+v", prefs)
	}
}

func TestNotificationPartialUpdateKeepsOtherFields(t *testing.T) {
	svc, _ := setupNotificationServiceTest(t)
	off := false
	prefs, err := svc.UpdatePreferences(2, NotificationPreferencesPatch{PushEnabled: &off})
	if err != nil {
		t.Fatalf("update preferences failed: %v", err)
	}
	if prefs.PushEnabled {
		t.Fatalf("push should be disabled")
	}
	if !prefs.EmailEnabled || !prefs.SpecialOffersEnabled {
		t.Fatalf("untouched fields should keep their values: %+v", prefs)
	}

	on := true
	prefs, err = svc.UpdatePreferences(2, NotificationPreferencesPatch{SpecialOffersEnabled: &off, EmailEnabled: &on})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if prefs.PushEnabled {
		t.Fatalf("earlier change should persist")
	}
	if prefs.SpecialOffersEnabled {
		t.Fatalf("special offers should be disabled")
	}
	if !prefs.EmailEnabled {
		t.Fatalf("email should stay enabled")
	}

	// 重新读取应与最近一次写入一致
	reloaded, err := svc.GetPreferences(2)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded != prefs {
		t.Fatalf("reload mismatch: %+v vs %+v", reloaded, prefs)
	}
}

func TestNotificationCorruptBlobFallsBackToDefaults(t *testing.T) {
	svc, db := setupNotificationServiceTest(t)
	if err := db.Create(&models.NotificationSetting{UserID: 3, ValueJSON: "{not-json"}).Error; err != nil {
		t.Fatalf("seed corrupt blob failed: %v", err)
	}

	prefs, err := svc.GetPreferences(3)
	if err != nil {
		t.Fatalf("get preferences failed: %v", err)
	}
	if !prefs.PushEnabled || !prefs.EmailEnabled || !prefs.SpecialOffersEnabled {
		t.Fatalf("corrupt blob should fall back to defaults: %+v", prefs)
	}

	// 损坏数据上的部分更新应以默认值为基线并写回合法 JSON
	off := false
	prefs, err = svc.UpdatePreferences(3, NotificationPreferencesPatch{EmailEnabled: &off})
	if err != nil {
		t.Fatalf("update after corrupt blob failed: %v", err)
	}
	if prefs.EmailEnabled {
		t.Fatalf("email should be disabled")
	}
	if !prefs.PushEnabled || !prefs.SpecialOffersEnabled {
		t.Fatalf("other fields should return to defaults: %+v", prefs)
	}
}
