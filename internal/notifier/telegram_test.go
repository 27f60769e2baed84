package notifier

import "testing"

func TestNewTelegramNotifier_InvalidChatID(t *testing.T) {
	if _, err := NewTelegramNotifier("token", "not-a-number", ""); err == nil {
		t.Fatal("expected error for invalid chat id")
	}
}
