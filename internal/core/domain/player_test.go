package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewPlayer(t *testing.T) {
	t.Parallel()

	t.Run("Should create player with normalized nickname", func(t *testing.T) {
		t.Parallel()

		player, err := NewPlayer("p-1", "  Bug_Hunter-42  ")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if player.Nickname != "bug_hunter-42" {
			t.Errorf("Expected nickname bug_hunter-42, got %s", player.Nickname)
		}
		if player.ID != "p-1" {
			t.Errorf("Expected id p-1, got %s", player.ID)
		}
		if player.CreatedAt.IsZero() {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("Should reject invalid nicknames", func(t *testing.T) {
		t.Parallel()

		invalid := []string{"", "ab", "has space", "emoji🔥", strings.Repeat("x", 33)}
		for _, nick := range invalid {
			if _, err := NewPlayer("p-1", nick); err != ErrInvalidNickname {
				t.Errorf("Nickname %q: expected ErrInvalidNickname, got %v", nick, err)
			}
		}
	})
}

func TestPlayerPassword(t *testing.T) {
	t.Parallel()

	t.Run("Should hash password and update timestamp", func(t *testing.T) {
		t.Parallel()
		player, _ := NewPlayer("p-1", "coder")
		oldUpdatedAt := player.UpdatedAt

		time.Sleep(1 * time.Millisecond)

		if err := player.SetPassword("superSecret123"); err != nil {
			t.Fatalf("Expected no error setting password, got %v", err)
		}
		if player.PasswordHash == "" || player.PasswordHash == "superSecret123" {
			t.Error("Password should be hashed")
		}
		if !player.UpdatedAt.After(oldUpdatedAt) {
			t.Error("UpdatedAt should move forward after setting password")
		}

		if err := player.CheckPassword("superSecret123"); err != nil {
			t.Errorf("Expected matching password, got %v", err)
		}
		if err := player.CheckPassword("wrong-password"); err == nil {
			t.Error("Expected mismatch for wrong password")
		}
	})

	t.Run("Should validate password length", func(t *testing.T) {
		t.Parallel()
		player, _ := NewPlayer("p-1", "coder")

		if err := player.SetPassword("short"); err != ErrPasswordTooShort {
			t.Errorf("Expected ErrPasswordTooShort, got %v", err)
		}
	})
}
