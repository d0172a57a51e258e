package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invisifeed/internal/models/db_models"
	"invisifeed/internal/models/request_models"
	mem "invisifeed/pkg/memcache"
	"invisifeed/pkg/utils"
)

type fakeOwnerRepo struct {
	byEmail    map[string]*db_models.Owner
	byUsername map[string]*db_models.Owner
	inserted   []*db_models.Owner
	newHash    string
}

func newFakeOwnerRepo(owners ...*db_models.Owner) *fakeOwnerRepo {
	r := &fakeOwnerRepo{
		byEmail:    map[string]*db_models.Owner{},
		byUsername: map[string]*db_models.Owner{},
	}
	for _, o := range owners {
		r.byEmail[o.Email] = o
		r.byUsername[o.UserName] = o
	}
	return r
}

func (r *fakeOwnerRepo) Insert(_ context.Context, owner *db_models.Owner) error {
	r.inserted = append(r.inserted, owner)
	r.byEmail[owner.Email] = owner
	r.byUsername[owner.UserName] = owner
	return nil
}

func (r *fakeOwnerRepo) FindById(_ context.Context, id string) (*db_models.Owner, error) {
	for _, o := range r.byEmail {
		if o.ID.String() == id {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOwnerRepo) FindByEmail(_ context.Context, email string) (*db_models.Owner, error) {
	return r.byEmail[email], nil
}

func (r *fakeOwnerRepo) FindByUserName(_ context.Context, username string) (*db_models.Owner, error) {
	return r.byUsername[username], nil
}

func (r *fakeOwnerRepo) Update(_ context.Context, owner *db_models.Owner) error {
	r.byEmail[owner.Email] = owner
	r.byUsername[owner.UserName] = owner
	return nil
}

func (r *fakeOwnerRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	r.newHash = passwordHash
	return nil
}

func (r *fakeOwnerRepo) ResetData(_ context.Context, ownerID string) error {
	return nil
}

type fakeMailService struct {
	lastTo  string
	lastOtp string
	fails   bool
}

func (m *fakeMailService) SendPasswordResetOtp(to, otp string) error {
	if m.fails {
		return assert.AnError
	}
	m.lastTo = to
	m.lastOtp = otp
	return nil
}

func (m *fakeMailService) SendFeedbackNotification(to, invoiceNumber string, overallRating int) error {
	return nil
}

func testOwner(t *testing.T, username, email, password string) *db_models.Owner {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &db_models.Owner{
		UserName:     username,
		Email:        email,
		PasswordHash: hash,
		PlanName:     db_models.PlanFree,
	}
}

func TestAccountService_Login(t *testing.T) {
	owner := testOwner(t, "acme", "acme@example.com", "s3cret99")
	svc := NewAccountService(newFakeOwnerRepo(owner), &fakeMailService{}, mem.NewResetTokens(), nil, []byte("unit-test-secret"))

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), request_models.LoginRequest{
			Email:    "acme@example.com",
			Password: "s3cret99",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "acme", resp.UserName)
		assert.False(t, resp.IsPremium)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), request_models.LoginRequest{
			Email:    "acme@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), request_models.LoginRequest{
			Email:    "ghost@example.com",
			Password: "s3cret99",
		})
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	})
}

func TestAccountService_CreateAccount(t *testing.T) {
	owner := testOwner(t, "acme", "acme@example.com", "s3cret99")
	repo := newFakeOwnerRepo(owner)
	svc := NewAccountService(repo, &fakeMailService{}, mem.NewResetTokens(), nil, []byte("unit-test-secret"))

	t.Run("duplicate email", func(t *testing.T) {
		err := svc.CreateAccount(context.Background(), request_models.SignUpRequest{
			UserName:         "other",
			OrganizationName: "Other Co",
			Email:            "acme@example.com",
			Password:         "s3cret99",
		})
		assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := svc.CreateAccount(context.Background(), request_models.SignUpRequest{
			UserName:         "acme",
			OrganizationName: "Other Co",
			Email:            "new@example.com",
			Password:         "s3cret99",
		})
		assert.ErrorIs(t, err, utils.ErrUsernameAlreadyExists)
	})

	t.Run("success stores hash, not password", func(t *testing.T) {
		err := svc.CreateAccount(context.Background(), request_models.SignUpRequest{
			UserName:         "fresh",
			OrganizationName: "Fresh Co",
			Email:            "fresh@example.com",
			Password:         "s3cret99",
		})
		require.NoError(t, err)
		require.Len(t, repo.inserted, 1)
		assert.NotEqual(t, "s3cret99", repo.inserted[0].PasswordHash)
		assert.NoError(t, utils.ComparePasswords(repo.inserted[0].PasswordHash, "s3cret99"))
		assert.Equal(t, db_models.PlanFree, repo.inserted[0].PlanName)
	})
}

func TestAccountService_PasswordResetFlow(t *testing.T) {
	owner := testOwner(t, "acme", "acme@example.com", "oldpass99")
	repo := newFakeOwnerRepo(owner)
	mail := &fakeMailService{}
	svc := NewAccountService(repo, mail, mem.NewResetTokens(), nil, []byte("unit-test-secret"))

	require.NoError(t, svc.ForgotPassword("acme@example.com"))
	require.Equal(t, "acme@example.com", mail.lastTo)
	require.Len(t, mail.lastOtp, 6)

	// Peek does not consume
	require.NoError(t, svc.VerifyOtpToken(request_models.RequestVerifyOtpToken{
		Email: "acme@example.com",
		Otp:   mail.lastOtp,
	}))

	// Wrong email for a real OTP is rejected
	assert.ErrorIs(t, svc.VerifyOtpToken(request_models.RequestVerifyOtpToken{
		Email: "other@example.com",
		Otp:   mail.lastOtp,
	}), utils.ErrInvalidResetToken)

	require.NoError(t, svc.VerifyAndConsumeResetToken(request_models.ForgotPasswordRequest{
		Email:       "acme@example.com",
		NewPassword: "newpass99",
		Token:       mail.lastOtp,
	}))
	assert.NoError(t, utils.ComparePasswords(repo.newHash, "newpass99"))

	// Token is single-use
	assert.ErrorIs(t, svc.VerifyAndConsumeResetToken(request_models.ForgotPasswordRequest{
		Email:       "acme@example.com",
		NewPassword: "again1234",
		Token:       mail.lastOtp,
	}), utils.ErrInvalidResetToken)
}

func TestAccountService_ForgotPassword_UnknownEmailSilent(t *testing.T) {
	mail := &fakeMailService{}
	svc := NewAccountService(newFakeOwnerRepo(), mail, mem.NewResetTokens(), nil, []byte("unit-test-secret"))

	assert.NoError(t, svc.ForgotPassword("ghost@example.com"))
	assert.Empty(t, mail.lastTo)
}
