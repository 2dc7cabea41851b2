package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_healthService_Readiness(t *testing.T) {
	tests := []struct {
		name      string
		checks    map[string]Check
		want      map[string]string
		wantReady bool
	}{
		{
			name:      "no checks",
			checks:    nil,
			want:      map[string]string{},
			wantReady: true,
		},
		{
			name: "all ok",
			checks: map[string]Check{
				"webhook": func(context.Context) error { return nil },
			},
			want:      map[string]string{"webhook": "ok"},
			wantReady: true,
		},
		{
			name: "one failing",
			checks: map[string]Check{
				"webhook": func(context.Context) error { return nil },
				"kafka":   func(context.Context) error { return errors.New("no brokers") },
			},
			want:      map[string]string{"webhook": "ok", "kafka": "error: no brokers"},
			wantReady: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewHealthService(tt.checks, slog.Default())
			got, ready := s.Readiness(context.Background())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantReady, ready)
			assert.NoError(t, s.Liveness(context.Background()))
		})
	}
}
