package logger

import (
	"testing"

	gormlogger "gorm.io/gorm/logger"
)

func TestGormLoggerAdapterLogMode(t *testing.T) {
	adapter := NewGormLoggerAdapter(gormlogger.Warn)

	next := adapter.LogMode(gormlogger.Info)
	if next == adapter {
		t.Error("LogMode should return a new adapter")
	}

	typed, ok := next.(*GormLoggerAdapter)
	if !ok {
		t.Fatalf("expected *GormLoggerAdapter, got %T", next)
	}
	if typed.logLevel != gormlogger.Info {
		t.Errorf("expected Info level, got %v", typed.logLevel)
	}
	if typed.slowThreshold != adapter.slowThreshold {
		t.Error("slow threshold should carry over")
	}
	if adapter.logLevel != gormlogger.Warn {
		t.Error("original adapter must not be mutated")
	}

	t.Log("✓ LogMode tests passed")
}

func TestGormLoggerAdapterDefaults(t *testing.T) {
	adapter := NewGormLoggerAdapter(gormlogger.Error)

	if adapter.slowThreshold != defaultSlowThreshold {
		t.Errorf("expected default slow threshold %v, got %v", defaultSlowThreshold, adapter.slowThreshold)
	}

	t.Log("✓ Adapter default tests passed")
}
