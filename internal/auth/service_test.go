package auth

import "testing"

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	password := "Password@123"

	_, err := service.Register("Test User", "test@example.com", password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := repo.users["test@example.com"]
	if user == nil {
		t.Fatalf("user not found")
	}

	if user.Password == password {
		t.Fatalf("password was stored in plain text")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	if _, err := service.Register("A", "dup@example.com", "pw1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Register("B", "dup@example.com", "pw2"); err == nil {
		t.Fatal("expected error for duplicate email")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	service.Register("Test User", "login@example.com", "correct-pw")

	if _, err := service.Login("login@example.com", "wrong-pw"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
