package main

import (
	"testing"
)

func TestLoadConfigPort(t *testing.T) {
	tests := []struct {
		name       string
		port       string
		wantListen string
		wantErr    bool
	}{
		{
			"default without PORT",
			"",
			":8082",
			false,
		},
		{
			"PORT overrides default",
			"9090",
			":9090",
			false,
		},
		{
			"malformed PORT is a startup error",
			"eighty-eighty-two",
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)

			cfg, err := loadConfig()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for malformed PORT")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig() failed: %v", err)
			}
			if cfg.Web.Listen != tt.wantListen {
				t.Errorf("web.listen = %q, want %q", cfg.Web.Listen, tt.wantListen)
			}
		})
	}
}
