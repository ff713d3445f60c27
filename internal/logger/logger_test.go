package logger

import "testing"

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"api_key", "abc", "deck_id", "42", "Authorization", "Bearer x", "dangling"})

	if out[1] != "[REDACTED]" {
		t.Errorf("api_key not redacted: %v", out[1])
	}
	if out[3] != "42" {
		t.Errorf("deck_id should pass through, got %v", out[3])
	}
	if out[5] != "[REDACTED]" {
		t.Errorf("Authorization not redacted: %v", out[5])
	}
	if len(out) != 7 || out[6] != "dangling" {
		t.Errorf("odd trailing key should be kept, got %v", out)
	}
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	l := NewNop()
	l.With("run", 1).Info("hello", "k", "v")
	l.Sync()
}
