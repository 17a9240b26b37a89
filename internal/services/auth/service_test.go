package auth

import (
	"errors"
	"path/filepath"
	"testing"

	"business-management-backend/internal/models"
	"business-management-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal("open test db:", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatal("migrate:", err)
	}
	return NewService(repository.NewUserRepository(db), []byte("test-secret"))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)

	user, token, err := svc.Register("Cameron", "cameron@example.com", "hunter22")
	if err != nil {
		t.Fatal("register:", err)
	}
	if token == "" {
		t.Fatal("expected a token on register")
	}
	if svc.Tracker().Current().State != StatePresent {
		t.Fatal("tracker should be present after register")
	}

	// Duplicate email is rejected.
	if _, _, err := svc.Register("Other", "cameron@example.com", "pw"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}

	// Login round-trip.
	loggedIn, token, err := svc.Login("cameron@example.com", "hunter22")
	if err != nil {
		t.Fatal("login:", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatal("login returned a different user")
	}

	parsed, err := svc.ParseToken(token)
	if err != nil {
		t.Fatal("parse token:", err)
	}
	if parsed != user.ID {
		t.Fatalf("token user = %v, want %v", parsed, user.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t)
	if _, _, err := svc.Register("Cameron", "cameron@example.com", "hunter22"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.Login("cameron@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login("nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestParseToken_Invalid(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.ParseToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}

	// Token signed with another secret fails verification.
	other := NewService(nil, []byte("other-secret"))
	token, err := other.IssueToken(uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign token err = %v, want ErrInvalidToken", err)
	}
}

func TestLogout_MovesTrackerToAbsent(t *testing.T) {
	svc := newTestService(t)
	ch, cancel := svc.Tracker().Subscribe()
	defer cancel()

	if _, _, err := svc.Register("Cameron", "cameron@example.com", "hunter22"); err != nil {
		t.Fatal(err)
	}
	<-ch // drain the sign-in from Register

	svc.Logout()
	if got := (<-ch).State; got != StateAbsent {
		t.Fatalf("state after logout = %q, want %q", got, StateAbsent)
	}
}
