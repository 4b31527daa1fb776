package directory

import "testing"

func TestStaticDirectoryFallback(t *testing.T) {
	dir := NewStatic()

	if got := dir.DisplayName("12345"); got != "Participant 12345" {
		t.Errorf("Expected placeholder name, got %q", got)
	}
}

func TestStaticDirectoryRegisterAndOverwrite(t *testing.T) {
	dir := NewStatic()

	dir.Register("u1", "Neo")
	if got := dir.DisplayName("u1"); got != "Neo" {
		t.Errorf("Expected registered name, got %q", got)
	}

	// Last registration wins
	dir.Register("u1", "Trinity")
	if got := dir.DisplayName("u1"); got != "Trinity" {
		t.Errorf("Expected overwritten name, got %q", got)
	}
}
