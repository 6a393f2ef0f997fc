package emoji

import "testing"

func TestGetEmoji(t *testing.T) {
	defer SetEmojiDisabled(false)

	SetEmojiDisabled(false)
	if got := GetEmoji("risk"); got != "🚨" {
		t.Errorf("Expected risk emoji, got %q", got)
	}

	SetEmojiDisabled(true)
	if !IsEmojiDisabled() {
		t.Error("Expected emoji to be disabled")
	}
	if got := GetEmoji("risk"); got != "[RISK]" {
		t.Errorf("Expected fallback [RISK], got %q", got)
	}
	if got := GetEmoji("no-such-key"); got != "[?]" {
		t.Errorf("Expected [?] for unknown key, got %q", got)
	}
}
