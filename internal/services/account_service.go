package services

import (
	"context"
	"log"
	"time"

	"invisifeed/internal/models/db_models"
	"invisifeed/internal/models/request_models"
	"invisifeed/internal/models/response_models"
	"invisifeed/internal/repositories"
	mem "invisifeed/pkg/memcache"
	"invisifeed/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	ForgotPassword(email string) error
	VerifyOtpToken(request request_models.RequestVerifyOtpToken) error
	VerifyAndConsumeResetToken(request request_models.ForgotPasswordRequest) error
	GetProfile(ctx context.Context, ownerID string) (*response_models.OwnerProfileResponse, error)
	UpdateProfile(ctx context.Context, ownerID string, request request_models.UpdateProfileRequest) (*response_models.OwnerProfileResponse, error)
}

type AccountService struct {
	ownerRepo   repositories.OwnerRepository
	mailService IMailService
	resetTokens mem.ResetTokenStore
	gstin       GSTINVerifier
	jwtSecret   []byte
}

func NewAccountService(ownerRepo repositories.OwnerRepository, mailService IMailService, resetTokens mem.ResetTokenStore, gstin GSTINVerifier, jwtSecret []byte) AccountServiceInterface {
	return &AccountService{
		ownerRepo:   ownerRepo,
		mailService: mailService,
		resetTokens: resetTokens,
		gstin:       gstin,
		jwtSecret:   jwtSecret,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	owner, err := a.ownerRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if owner == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(owner.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(a.jwtSecret, owner.ID, owner.UserName)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.AccountLoginResponse{
		Token:     token,
		UserName:  owner.UserName,
		PlanName:  string(owner.PlanName),
		IsPremium: owner.PlanName != db_models.PlanFree && owner.PlanEndsAt > time.Now().Unix(),
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existing, err := a.ownerRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	existing, err = a.ownerRepo.FindByUserName(ctx, request.UserName)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrUsernameAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newOwner := &db_models.Owner{
		UserName:         request.UserName,
		OrganizationName: request.OrganizationName,
		Email:            request.Email,
		PasswordHash:     hashedPassword,
		PlanName:         db_models.PlanFree,
	}

	if err := a.ownerRepo.Insert(ctx, newOwner); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) ForgotPassword(email string) error {
	owner, err := a.ownerRepo.FindByEmail(context.Background(), email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if owner == nil {
		// Do not reveal whether the email exists.
		return nil
	}

	otp, err := utils.GenerateOtpCode(6)
	if err != nil {
		return utils.ErrDatabaseError
	}

	a.resetTokens.Set(otp, owner.Email, 15*time.Minute)

	if err := a.mailService.SendPasswordResetOtp(owner.Email, otp); err != nil {
		log.Printf("failed to send reset mail to %s: %v", owner.Email, err)
		return utils.ErrUpstreamFailure
	}

	return nil
}

func (a *AccountService) VerifyOtpToken(request request_models.RequestVerifyOtpToken) error {
	email, ok := a.resetTokens.Peek(request.Otp)
	if !ok || email != request.Email {
		return utils.ErrInvalidResetToken
	}
	return nil
}

func (a *AccountService) VerifyAndConsumeResetToken(request request_models.ForgotPasswordRequest) error {
	email := a.resetTokens.Consume(request.Token)
	if email == "" || email != request.Email {
		return utils.ErrInvalidResetToken
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.ownerRepo.UpdatePassword(context.Background(), email, hashedPassword); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) GetProfile(ctx context.Context, ownerID string) (*response_models.OwnerProfileResponse, error) {
	owner, err := a.ownerRepo.FindById(ctx, ownerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if owner == nil {
		return nil, utils.ErrOwnerNotFound
	}
	return profileResponse(owner), nil
}

// UpdateProfile saves the profile fields; a changed GSTIN drops the verified
// flag and triggers a fresh verification call.
func (a *AccountService) UpdateProfile(ctx context.Context, ownerID string, request request_models.UpdateProfileRequest) (*response_models.OwnerProfileResponse, error) {
	owner, err := a.ownerRepo.FindById(ctx, ownerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if owner == nil {
		return nil, utils.ErrOwnerNotFound
	}

	if request.OrganizationName != "" {
		owner.OrganizationName = request.OrganizationName
	}
	owner.Phone = request.Phone
	owner.AddressLine = request.AddressLine
	owner.City = request.City
	owner.State = request.State
	owner.PostalCode = request.PostalCode
	owner.Country = request.Country

	if request.GSTIN != "" && request.GSTIN != owner.GSTIN {
		owner.GSTIN = request.GSTIN
		owner.GSTINVerified = false
		if a.gstin != nil {
			verified, verr := a.gstin.Verify(ctx, request.GSTIN)
			if verr != nil {
				log.Printf("gstin verification for %s failed: %v", ownerID, verr)
			} else {
				owner.GSTINVerified = verified
			}
		}
	}

	if err := a.ownerRepo.Update(ctx, owner); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return profileResponse(owner), nil
}

func profileResponse(owner *db_models.Owner) *response_models.OwnerProfileResponse {
	return &response_models.OwnerProfileResponse{
		ID:               owner.ID.String(),
		UserName:         owner.UserName,
		Email:            owner.Email,
		OrganizationName: owner.OrganizationName,
		Phone:            owner.Phone,
		GSTIN:            owner.GSTIN,
		GSTINVerified:    owner.GSTINVerified,
		PlanName:         string(owner.PlanName),
		PlanEndsAt:       owner.PlanEndsAt,
		InvoiceCount:     owner.InvoiceCount,
	}
}
