package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/converter"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/repository"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/service"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/storage"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/validator"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxProfileImageKB = 2000

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrResidenceNumberExists = errors.New("residence number already exists")
	ErrUserForbidden         = errors.New("not allowed to manage this user")
	ErrNoResidenceNumber     = errors.New("user doesn't have residence number")
)

type UserUsecase interface {
	Create(ctx context.Context, req *dto.UserRequest) (*dto.UserResponse, error)
	GetAll(ctx context.Context) ([]dto.UserResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
	GetAdmins(ctx context.Context) ([]dto.UserResponse, error)
	Update(ctx context.Context, principal entity.Principal, id uint, req *dto.UserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uint) error
	ChangePassword(ctx context.Context, principal entity.Principal, id uint, req *dto.ChangePasswordRequest) error
	ChangeImage(ctx context.Context, principal entity.Principal, id uint, req *dto.ChangeImageRequest) (*dto.UserResponse, error)
	GetResidenceNumber(ctx context.Context, principal entity.Principal) (string, error)
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	validator    *validator.CustomValidator
	files        storage.FileStore
	userRepo     repository.UserRepository
	agencyRepo   repository.HealthAgencyRepository
	auditService service.AuditService
	tokenStore   service.TokenStore
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	files storage.FileStore,
	userRepo repository.UserRepository,
	agencyRepo repository.HealthAgencyRepository,
	auditService service.AuditService,
	tokenStore service.TokenStore,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		validator:    validator,
		files:        files,
		userRepo:     userRepo,
		agencyRepo:   agencyRepo,
		auditService: auditService,
		tokenStore:   tokenStore,
	}
}

func (u *userUsecase) rules(excludeID uint) validator.Rules {
	emailTaken := func(ctx context.Context, email string) (bool, error) {
		return u.userRepo.ExistsByEmail(u.db.WithContext(ctx), email, excludeID)
	}
	residenceTaken := func(ctx context.Context, number string) (bool, error) {
		return u.userRepo.ExistsByResidenceNumber(u.db.WithContext(ctx), number, excludeID)
	}
	agencyExists := func(ctx context.Context, value string) (bool, error) {
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return false, nil
		}
		agency, err := u.agencyRepo.FindByID(u.db.WithContext(ctx), uint(id))
		return agency != nil, err
	}

	return validator.Rules{
		"name":             {validator.Required(), validator.String(), validator.Between(3, 150)},
		"email":            {validator.Required(), validator.Email(), validator.Max(100), validator.Unique(emailTaken)},
		"password":         {validator.Required(), validator.Min(6)},
		"phone":            {validator.Required(), validator.Numeric(), validator.DigitsBetween(8, 13)},
		"role":             {validator.Required(), validator.OneOf(entity.Roles...)},
		"residence_number": {validator.Nullable(), validator.Numeric(), validator.Digits(16), validator.Unique(residenceTaken)},
		"health_agency":    {validator.Nullable(), validator.Numeric(), validator.Custom(agencyExists, "The selected health agency is invalid.")},
	}
}

// applyRequest copies validated request values onto user. Empty optional
// values clear the column.
func applyRequest(user *entity.User, req *dto.UserRequest) {
	user.Name = req.Name
	user.Email = req.Email
	user.Phone = req.Phone
	user.Role = req.Role

	user.ResidenceNumber = nil
	if number := strings.TrimSpace(req.ResidenceNumber); number != "" {
		user.ResidenceNumber = &number
	}

	user.HealthAgencyID = nil
	if value := strings.TrimSpace(req.HealthAgency); value != "" {
		if id, err := strconv.ParseUint(value, 10, 64); err == nil {
			agencyID := uint(id)
			user.HealthAgencyID = &agencyID
		}
	}
}

func (u *userUsecase) Create(ctx context.Context, req *dto.UserRequest) (*dto.UserResponse, error) {
	if err := u.validator.Validate(ctx, req.Fields(), u.rules(0)); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{Password: string(hashedPassword)}
	applyRequest(user, req)

	if err := u.userRepo.Create(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, userWriteError(err)
	}

	response := converter.UserToResponse(user)
	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), entity.AuditActionUserCreate, "user", formatID(user.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return response, nil
}

func userWriteError(err error) error {
	switch {
	case isDuplicateKeyError(err, "email"):
		return ErrEmailAlreadyExists
	case isDuplicateKeyError(err, "residence_number"):
		return ErrResidenceNumberExists
	default:
		return err
	}
}

func (u *userUsecase) GetAll(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all users: %+v", err)
		return nil, err
	}
	return converter.UsersToResponses(users), nil
}

func (u *userUsecase) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) GetAdmins(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := u.userRepo.FindByRole(u.db.WithContext(ctx), entity.RoleAdmin)
	if err != nil {
		u.log.Warnf("Failed to find admin users: %+v", err)
		return nil, err
	}
	return converter.UsersToResponses(users), nil
}

func (u *userUsecase) find(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update lets users edit their own profile. Only a Super Admin may change a
// role or the health agency assignment.
func (u *userUsecase) Update(ctx context.Context, principal entity.Principal, id uint, req *dto.UserRequest) (*dto.UserResponse, error) {
	if !principal.CanManageUser(id) {
		return nil, ErrUserForbidden
	}

	user, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.validator.Validate(ctx, req.Fields(), u.rules(id)); err != nil {
		return nil, err
	}

	oldValue := converter.UserToResponse(user)
	previousRole, previousAgency := user.Role, user.HealthAgencyID

	applyRequest(user, req)

	if !principal.HasRole(entity.RoleSuperAdmin) && (user.Role != previousRole || !sameID(user.HealthAgencyID, previousAgency)) {
		return nil, ErrUserForbidden
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}
	user.Password = string(hashedPassword)

	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, userWriteError(err)
	}

	if user, err = u.find(ctx, id); err != nil {
		return nil, err
	}

	if user.Role != previousRole || !sameID(user.HealthAgencyID, previousAgency) {
		if err := u.revokeTokens(ctx, id); err != nil {
			return nil, err
		}
	}

	response := converter.UserToResponse(user)
	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), entity.AuditActionUserUpdate, "user", formatID(id), oldValue, response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return response, nil
}

// Delete removes the row, signs the user out everywhere, then drops the
// profile image.
func (u *userUsecase) Delete(ctx context.Context, id uint) error {
	user, err := u.find(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := u.userRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}

	if err := u.revokeTokens(ctx, id); err != nil {
		return err
	}

	removeFile(ctx, u.log, u.files, user.ProfileImg)

	if err := u.auditService.LogDelete(ctx, u.db.WithContext(ctx), entity.AuditActionUserDelete, "user", formatID(id), converter.UserToResponse(user)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

// revokeTokens invalidates every token issued to the user. Tokens carry role
// and agency, so they must not outlive a change to either.
func (u *userUsecase) revokeTokens(ctx context.Context, id uint) error {
	if err := u.tokenStore.RevokeAll(ctx, id); err != nil {
		u.log.Warnf("Failed to revoke user tokens: %+v", err)
		return err
	}
	return nil
}

func (u *userUsecase) ChangePassword(ctx context.Context, principal entity.Principal, id uint, req *dto.ChangePasswordRequest) error {
	if !principal.CanManageUser(id) {
		return ErrUserForbidden
	}

	user, err := u.find(ctx, id)
	if err != nil {
		return err
	}

	matchesStored := func(ctx context.Context, current string) (bool, error) {
		return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) == nil, nil
	}

	rules := validator.Rules{
		"current": {validator.Required(), validator.Custom(matchesStored, "The current password is incorrect.")},
		"new":     {validator.Required(), validator.String(), validator.Max(255)},
		"confirm": {validator.Required(), validator.Same("new")},
	}
	if err := u.validator.Validate(ctx, req.Fields(), rules); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.New), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	if err := u.userRepo.UpdatePassword(u.db.WithContext(ctx), id, string(hashedPassword)); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), entity.AuditActionUserPassword, "user", formatID(id), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

// ChangeImage stores the upload, points the row at it and then removes the
// previous file.
func (u *userUsecase) ChangeImage(ctx context.Context, principal entity.Principal, id uint, req *dto.ChangeImageRequest) (*dto.UserResponse, error) {
	if !principal.CanManageUser(id) {
		return nil, ErrUserForbidden
	}

	user, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}

	rules := validator.Rules{
		"image": {validator.Required(), validator.Image(maxProfileImageKB, "jpeg", "png", "jpg")},
	}
	if err := u.validator.Validate(ctx, req.Fields(), rules); err != nil {
		return nil, err
	}

	path, err := storeUpload(ctx, u.files, storage.BucketUsers, req.Image)
	if err != nil {
		u.log.Warnf("Failed to store profile image: %+v", err)
		return nil, err
	}

	if err := u.userRepo.UpdateProfileImage(u.db.WithContext(ctx), id, &path); err != nil {
		u.log.Warnf("Failed to update profile image: %+v", err)
		removeFile(ctx, u.log, u.files, &path)
		return nil, err
	}

	oldImage := user.ProfileImg
	removeFile(ctx, u.log, u.files, oldImage)
	user.ProfileImg = &path

	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), entity.AuditActionUserImage, "user", formatID(id),
		map[string]*string{"profile_img": oldImage}, map[string]*string{"profile_img": user.ProfileImg}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.UserToResponse(user), nil
}

// GetResidenceNumber reads the residence number of the caller.
func (u *userUsecase) GetResidenceNumber(ctx context.Context, principal entity.Principal) (string, error) {
	user, err := u.find(ctx, principal.UserID)
	if err != nil {
		return "", err
	}
	if user.ResidenceNumber == nil || *user.ResidenceNumber == "" {
		return "", ErrNoResidenceNumber
	}
	return *user.ResidenceNumber, nil
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
