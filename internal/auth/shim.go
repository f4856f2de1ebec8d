// Package auth is the sign-in shim of JobWave. No identity provider is
// called: signing in fabricates a user record and the session lives in
// process memory.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/justsurfingit/jobwave/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("please enter both email and password")
	ErrMissingFields      = errors.New("please fill in all fields")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("role must be jobseeker or employer")
)

// Ids of the demo accounts. They match the profiles in the demo dataset.
const (
	DemoSeekerID   = "user_123456789"
	DemoEmployerID = "user_987654321"
)

// User is the identity carried by a session.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) IsEmployer() bool { return u.Role == models.RoleEmployer }

type account struct {
	user User
	hash []byte
}

// Shim signs users in without an identity provider. Accounts created with
// SignUp are remembered for the life of the process.
type Shim struct {
	mu       sync.RWMutex
	accounts map[string]account // by normalized email
}

func NewShim() *Shim {
	return &Shim{accounts: make(map[string]account)}
}

// SignIn checks a registered password, or fabricates a demo user for any
// other email. Emails containing "jobseeker" get the job seeker role.
func (s *Shim) SignIn(req dtos.SignInRequest) (User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return User{}, ErrMissingCredentials
	}

	s.mu.RLock()
	acc, registered := s.accounts[email]
	s.mu.RUnlock()
	if registered {
		if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)); err != nil {
			return User{}, ErrInvalidCredentials
		}
		return acc.user, nil
	}

	if strings.Contains(email, "jobseeker") {
		return User{ID: DemoSeekerID, Email: email, FirstName: "Demo", LastName: "User", Role: models.RoleJobSeeker}, nil
	}
	return User{ID: DemoEmployerID, Email: email, FirstName: "Demo", LastName: "Employer", Role: models.RoleEmployer}, nil
}

// SignUp registers a new account and returns its user.
func (s *Shim) SignUp(req dtos.SignUpRequest) (User, error) {
	email := normalizeEmail(req.Email)
	first, last := strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)
	if email == "" || req.Password == "" || first == "" || last == "" || req.Role == "" {
		return User{}, ErrMissingFields
	}
	if req.Role != models.RoleJobSeeker && req.Role != models.RoleEmployer {
		return User{}, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := User{
		ID:        "user_" + uuid.NewString(),
		Email:     email,
		FirstName: first,
		LastName:  last,
		Role:      req.Role,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.accounts[email]; taken {
		return User{}, fmt.Errorf("an account for %s already exists", email)
	}
	s.accounts[email] = account{user: user, hash: hash}
	return user, nil
}

// Forget drops a registered account, used when the user deletes it.
func (s *Shim) Forget(email string) {
	s.mu.Lock()
	delete(s.accounts, normalizeEmail(email))
	s.mu.Unlock()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
