package password

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bkndhn/bazaar-api/internal/data"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// memoryCredentialStore is an in-memory CredentialStore for unit tests.
type memoryCredentialStore struct {
	byEmail map[string]*data.UserRecord
	nextID  int
}

func newMemoryCredentialStore() *memoryCredentialStore {
	return &memoryCredentialStore{byEmail: make(map[string]*data.UserRecord)}
}

func (m *memoryCredentialStore) GetByEmail(_ context.Context, email string) (*data.UserRecord, error) {
	rec, ok := m.byEmail[data.NormalizeEmail(email)]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return rec, nil
}

func (m *memoryCredentialStore) Create(_ context.Context, u *data.UserRecord) (*data.UserRecord, error) {
	email := data.NormalizeEmail(u.Email)
	if _, exists := m.byEmail[email]; exists {
		return nil, apperrors.Conflict("already exists")
	}
	m.nextID++
	rec := &data.UserRecord{
		ID:           string(rune('a' + m.nextID)),
		Email:        email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    time.Now(),
	}
	m.byEmail[email] = rec
	return rec, nil
}

func newTestExchanger(t *testing.T) (*Exchanger, *memoryCredentialStore) {
	t.Helper()
	store := newMemoryCredentialStore()
	ex, err := NewExchanger(ExchangerOptions{Users: store, Cost: bcrypt.MinCost})
	require.NoError(t, err)
	return ex, store
}

func TestExchanger_SignUpAndVerify(t *testing.T) {
	ex, _ := newTestExchanger(t)
	ctx := context.Background()

	id, err := ex.SignUp(ctx, ports.SignUpInput{
		Email:       "Shopper@Example.com",
		Password:    "correct horse",
		DisplayName: "Shopper",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id.UserID)
	assert.Equal(t, "shopper@example.com", id.Email)
	assert.True(t, id.ExpiresAt.After(time.Now()))

	verified, err := ex.Verify(ctx, "shopper@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, id.UserID, verified.UserID)
}

func TestExchanger_SignUp_Validation(t *testing.T) {
	ex, _ := newTestExchanger(t)
	ctx := context.Background()

	_, err := ex.SignUp(ctx, ports.SignUpInput{Email: "not-an-email", Password: "long enough"})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "email", apperrors.GetField(err))

	_, err = ex.SignUp(ctx, ports.SignUpInput{Email: "a@b.com", Password: "short"})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "password", apperrors.GetField(err))
}

func TestExchanger_SignUp_DuplicateEmail(t *testing.T) {
	ex, _ := newTestExchanger(t)
	ctx := context.Background()

	_, err := ex.SignUp(ctx, ports.SignUpInput{Email: "a@b.com", Password: "long enough"})
	require.NoError(t, err)

	_, err = ex.SignUp(ctx, ports.SignUpInput{Email: "A@B.com", Password: "long enough"})
	assert.True(t, apperrors.IsConflict(err))
}

func TestExchanger_Verify_WrongPassword(t *testing.T) {
	ex, _ := newTestExchanger(t)
	ctx := context.Background()

	_, err := ex.SignUp(ctx, ports.SignUpInput{Email: "a@b.com", Password: "long enough"})
	require.NoError(t, err)

	_, err = ex.Verify(ctx, "a@b.com", "wrong password")
	assert.True(t, apperrors.IsUnauthorized(err))
}

// Unknown email must be indistinguishable from a wrong password.
func TestExchanger_Verify_UnknownEmail(t *testing.T) {
	ex, _ := newTestExchanger(t)

	_, err := ex.Verify(context.Background(), "nobody@example.com", "whatever")
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "invalid email or password")
}
