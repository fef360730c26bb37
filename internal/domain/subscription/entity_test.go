package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectivelyActive(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		isActive  bool
		expiresAt time.Time
		want      bool
	}{
		{"active and unexpired", true, now.AddDate(0, 0, 10), true},
		{"active but expired", true, now.AddDate(0, 0, -1), false},
		{"deactivated and unexpired", false, now.AddDate(0, 0, 10), false},
		{"expires exactly now", true, now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &UserSubscription{IsActive: tt.isActive, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, s.EffectivelyActive(now))
		})
	}
}
