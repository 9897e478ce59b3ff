package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/testutil"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/jwt"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/storage"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/validator"
)

type userFixture struct {
	usecase  UserUsecase
	users    *fakeUserRepo
	agencies *fakeAgencyRepo
	audit    *fakeAuditService
	tokens   *fakeTokenStore
	files    *storage.LocalStore
	fs       afero.Fs
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	store, fs := newMemStore()
	f := &userFixture{
		users:    newFakeUserRepo(),
		agencies: newFakeAgencyRepo(),
		audit:    &fakeAuditService{},
		tokens:   newFakeTokenStore(),
		files:    store,
		fs:       fs,
	}
	f.agencies.rows[1] = entity.HealthAgency{ID: 1, Name: "City Clinic", Email: "a@x.com"}
	f.usecase = NewUserUsecase(mockDB(t), quietLogger(), validator.NewValidator(), store, f.users, f.agencies, f.audit, f.tokens)
	return f
}

func (f *userFixture) seed(t *testing.T, user entity.User, password string) entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user.Password = string(hash)
	require.NoError(t, f.users.Create(nil, &user))
	return user
}

// signIn whitelists an access and a refresh token for the user.
func (f *userFixture) signIn(t *testing.T, userID uint) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.tokens.Allow(ctx, jwt.AccessToken, userID, "access-"+formatID(userID), time.Minute))
	require.NoError(t, f.tokens.Allow(ctx, jwt.RefreshToken, userID, "refresh-"+formatID(userID), time.Hour))
}

func validUserRequest() *dto.UserRequest {
	return &dto.UserRequest{
		Name:            "Siti Rahma",
		Email:           "siti@x.com",
		Password:        "secret1",
		Phone:           "081234567890",
		Role:            entity.RoleAdmin,
		ResidenceNumber: "3201234567890123",
		HealthAgency:    "1",
	}
}

func TestUserUsecase_CreateHashesPassword(t *testing.T) {
	f := newUserFixture(t)

	created, err := f.usecase.Create(context.Background(), validUserRequest())
	require.NoError(t, err)

	stored := f.users.rows[created.ID]
	assert.NotEqual(t, "secret1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))

	require.NotNil(t, created.ResidenceNumber)
	assert.Equal(t, "3201234567890123", *created.ResidenceNumber)
	require.NotNil(t, created.HealthAgencyID)
	assert.Equal(t, uint(1), *created.HealthAgencyID)
	assert.Equal(t, []string{entity.AuditActionUserCreate}, f.audit.actions())
}

func TestUserUsecase_CreateOptionalFieldsEmpty(t *testing.T) {
	f := newUserFixture(t)

	req := validUserRequest()
	req.Role = entity.RoleUser
	req.ResidenceNumber = ""
	req.HealthAgency = ""

	created, err := f.usecase.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, created.ResidenceNumber)
	assert.Nil(t, created.HealthAgencyID)
}

func TestUserUsecase_CreateValidation(t *testing.T) {
	f := newUserFixture(t)
	f.seed(t, entity.User{Name: "Existing", Email: "siti@x.com", Role: entity.RoleUser}, "secret1")

	_, err := f.usecase.Create(context.Background(), &dto.UserRequest{
		Name:            "Al",
		Email:           "siti@x.com",
		Password:        "123",
		Phone:           "08abc",
		Role:            "Doctor",
		ResidenceNumber: "320123456789012",
		HealthAgency:    "77",
	})

	var verr *validator.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"The name must be between 3 and 150 characters."}, verr.Errors["name"])
	assert.Equal(t, []string{"The email has already been taken."}, verr.Errors["email"])
	assert.Equal(t, []string{"The password must be at least 6 characters."}, verr.Errors["password"])
	assert.Equal(t, []string{"The phone must be a number."}, verr.Errors["phone"])
	assert.Equal(t, []string{"The selected role is invalid."}, verr.Errors["role"])
	assert.Equal(t, []string{"The residence_number must be 16 digits."}, verr.Errors["residence_number"])
	assert.Equal(t, []string{"The selected health agency is invalid."}, verr.Errors["health_agency"])
	assert.Len(t, f.users.rows, 1)
}

func TestUserUsecase_CreateDuplicateResidenceNumber(t *testing.T) {
	f := newUserFixture(t)
	number := "3201234567890123"
	f.seed(t, entity.User{Name: "Existing", Email: "other@x.com", Role: entity.RoleUser, ResidenceNumber: &number}, "secret1")

	_, err := f.usecase.Create(context.Background(), validUserRequest())

	var verr *validator.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"The residence_number has already been taken."}, verr.Errors["residence_number"])
}

func TestUserUsecase_UpdateOtherUserForbidden(t *testing.T) {
	f := newUserFixture(t)
	target := f.seed(t, entity.User{Name: "Target", Email: "t@x.com", Role: entity.RoleUser}, "secret1")

	caller := entity.Principal{UserID: target.ID + 1, Role: entity.RoleAdmin}
	_, err := f.usecase.Update(context.Background(), caller, target.ID, validUserRequest())
	assert.ErrorIs(t, err, ErrUserForbidden)
}

func TestUserUsecase_UpdateSelfCannotChangeRole(t *testing.T) {
	f := newUserFixture(t)
	self := f.seed(t, entity.User{Name: "Self", Email: "self@x.com", Role: entity.RoleUser}, "secret1")

	req := validUserRequest()
	req.Email = "self@x.com"
	req.HealthAgency = ""
	req.Role = entity.RoleSuperAdmin

	_, err := f.usecase.Update(context.Background(), entity.Principal{UserID: self.ID, Role: entity.RoleUser}, self.ID, req)
	assert.ErrorIs(t, err, ErrUserForbidden)
	assert.Equal(t, entity.RoleUser, f.users.rows[self.ID].Role)
}

func TestUserUsecase_UpdateBySuperAdmin(t *testing.T) {
	f := newUserFixture(t)
	target := f.seed(t, entity.User{Name: "Target", Email: "t@x.com", Role: entity.RoleUser}, "secret1")

	req := validUserRequest()
	req.Email = "t@x.com"
	req.Password = "changed1"

	updated, err := f.usecase.Update(context.Background(), entity.Principal{UserID: 99, Role: entity.RoleSuperAdmin}, target.ID, req)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)
	assert.Equal(t, "Siti Rahma", updated.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(f.users.rows[target.ID].Password), []byte("changed1")))
}

func TestUserUsecase_UpdateRoleChangeRevokesTokens(t *testing.T) {
	f := newUserFixture(t)
	target := f.seed(t, entity.User{Name: "Target", Email: "t@x.com", Role: entity.RoleUser}, "secret1")
	other := f.seed(t, entity.User{Name: "Other", Email: "o@x.com", Role: entity.RoleUser}, "secret1")
	f.signIn(t, target.ID)
	f.signIn(t, other.ID)

	req := validUserRequest()
	req.Email = "t@x.com"

	_, err := f.usecase.Update(context.Background(), entity.Principal{UserID: 99, Role: entity.RoleSuperAdmin}, target.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 0, f.tokens.count(target.ID))
	assert.Equal(t, 2, f.tokens.count(other.ID))
}

func TestUserUsecase_UpdateAgencyChangeRevokesTokens(t *testing.T) {
	f := newUserFixture(t)
	f.agencies.rows[2] = entity.HealthAgency{ID: 2, Name: "Harbour Clinic", Email: "b@x.com"}
	agencyID := uint(1)
	target := f.seed(t, entity.User{Name: "Target", Email: "t@x.com", Role: entity.RoleAdmin, HealthAgencyID: &agencyID}, "secret1")
	f.signIn(t, target.ID)

	req := validUserRequest()
	req.Email = "t@x.com"
	req.HealthAgency = "2"

	updated, err := f.usecase.Update(context.Background(), entity.Principal{UserID: 99, Role: entity.RoleSuperAdmin}, target.ID, req)
	require.NoError(t, err)
	require.NotNil(t, updated.HealthAgencyID)
	assert.Equal(t, uint(2), *updated.HealthAgencyID)
	assert.Equal(t, 0, f.tokens.count(target.ID))
}

func TestUserUsecase_UpdateProfileKeepsTokens(t *testing.T) {
	f := newUserFixture(t)
	agencyID := uint(1)
	self := f.seed(t, entity.User{Name: "Self", Email: "self@x.com", Role: entity.RoleAdmin, HealthAgencyID: &agencyID}, "secret1")
	f.signIn(t, self.ID)

	req := validUserRequest()
	req.Email = "self@x.com"
	req.Name = "Renamed"

	_, err := f.usecase.Update(context.Background(), entity.Principal{UserID: self.ID, Role: entity.RoleAdmin, HealthAgencyID: &agencyID}, self.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 2, f.tokens.count(self.ID))
}

func TestUserUsecase_UpdateRevokeFailure(t *testing.T) {
	f := newUserFixture(t)
	target := f.seed(t, entity.User{Name: "Target", Email: "t@x.com", Role: entity.RoleUser}, "secret1")
	f.tokens.revokeErr = errors.New("redis down")

	req := validUserRequest()
	req.Email = "t@x.com"

	_, err := f.usecase.Update(context.Background(), entity.Principal{UserID: 99, Role: entity.RoleSuperAdmin}, target.ID, req)
	assert.EqualError(t, err, "redis down")
	assert.Empty(t, f.audit.actions())
}

func TestUserUsecase_ChangePassword(t *testing.T) {
	f := newUserFixture(t)
	self := f.seed(t, entity.User{Name: "Self", Email: "self@x.com", Role: entity.RoleUser}, "secret1")
	caller := entity.Principal{UserID: self.ID, Role: entity.RoleUser}
	ctx := context.Background()

	err := f.usecase.ChangePassword(ctx, caller, self.ID, &dto.ChangePasswordRequest{Current: "wrong", New: "newsecret", Confirm: "other"})
	var verr *validator.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"The current password is incorrect."}, verr.Errors["current"])
	assert.Equal(t, []string{"The confirm and new must match."}, verr.Errors["confirm"])

	err = f.usecase.ChangePassword(ctx, caller, self.ID, &dto.ChangePasswordRequest{Current: "secret1", New: "newsecret", Confirm: "newsecret"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(f.users.rows[self.ID].Password), []byte("newsecret")))
}

func TestUserUsecase_ChangeImageReplacesFile(t *testing.T) {
	f := newUserFixture(t)
	self := f.seed(t, entity.User{Name: "Self", Email: "self@x.com", Role: entity.RoleUser}, "secret1")
	caller := entity.Principal{UserID: self.ID, Role: entity.RoleUser}
	ctx := context.Background()

	first, err := f.usecase.ChangeImage(ctx, caller, self.ID, &dto.ChangeImageRequest{Image: testutil.FileHeader(t, "image", "me.png", testutil.PNG)})
	require.NoError(t, err)
	require.NotNil(t, first.ProfileImg)

	second, err := f.usecase.ChangeImage(ctx, caller, self.ID, &dto.ChangeImageRequest{Image: testutil.FileHeader(t, "image", "me.jpg", testutil.JPEG)})
	require.NoError(t, err)

	assert.False(t, fileExists(t, f.fs, *first.ProfileImg))
	assert.True(t, fileExists(t, f.fs, *second.ProfileImg))
	assert.Equal(t, second.ProfileImg, f.users.rows[self.ID].ProfileImg)
}

func TestUserUsecase_ChangeImageRequiresFile(t *testing.T) {
	f := newUserFixture(t)
	self := f.seed(t, entity.User{Name: "Self", Email: "self@x.com", Role: entity.RoleUser}, "secret1")

	_, err := f.usecase.ChangeImage(context.Background(), entity.Principal{UserID: self.ID}, self.ID, &dto.ChangeImageRequest{})

	var verr *validator.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"The image field is required."}, verr.Errors["image"])
}

func TestUserUsecase_DeleteRemovesProfileImage(t *testing.T) {
	f := newUserFixture(t)
	path, err := f.files.Store(context.Background(), storage.BucketUsers, "me.png", bytesReader(testutil.PNG))
	require.NoError(t, err)
	target := f.seed(t, entity.User{Name: "Target", Email: "t@x.com", Role: entity.RoleUser, ProfileImg: &path}, "secret1")

	require.NoError(t, f.usecase.Delete(context.Background(), target.ID))
	assert.False(t, fileExists(t, f.fs, path))
	assert.ErrorIs(t, f.usecase.Delete(context.Background(), target.ID), ErrUserNotFound)
}

func TestUserUsecase_DeleteRevokesTokens(t *testing.T) {
	f := newUserFixture(t)
	target := f.seed(t, entity.User{Name: "Target", Email: "t@x.com", Role: entity.RoleSuperAdmin}, "secret1")
	other := f.seed(t, entity.User{Name: "Other", Email: "o@x.com", Role: entity.RoleUser}, "secret1")
	f.signIn(t, target.ID)
	f.signIn(t, other.ID)

	require.NoError(t, f.usecase.Delete(context.Background(), target.ID))
	assert.Equal(t, 0, f.tokens.count(target.ID))
	assert.Equal(t, 2, f.tokens.count(other.ID))
}

func TestUserUsecase_DeleteFailureKeepsImageAndTokens(t *testing.T) {
	f := newUserFixture(t)
	path, err := f.files.Store(context.Background(), storage.BucketUsers, "me.png", bytesReader(testutil.PNG))
	require.NoError(t, err)
	target := f.seed(t, entity.User{Name: "Target", Email: "t@x.com", Role: entity.RoleUser, ProfileImg: &path}, "secret1")
	f.signIn(t, target.ID)
	f.users.deleteErr = errors.New("connection reset")

	assert.EqualError(t, f.usecase.Delete(context.Background(), target.ID), "connection reset")
	assert.True(t, fileExists(t, f.fs, path))
	assert.Equal(t, 2, f.tokens.count(target.ID))
}

func TestUserUsecase_GetResidenceNumber(t *testing.T) {
	f := newUserFixture(t)
	number := "3201234567890123"
	with := f.seed(t, entity.User{Name: "With", Email: "w@x.com", Role: entity.RoleUser, ResidenceNumber: &number}, "secret1")
	without := f.seed(t, entity.User{Name: "Without", Email: "wo@x.com", Role: entity.RoleUser}, "secret1")

	got, err := f.usecase.GetResidenceNumber(context.Background(), entity.Principal{UserID: with.ID})
	require.NoError(t, err)
	assert.Equal(t, number, got)

	_, err = f.usecase.GetResidenceNumber(context.Background(), entity.Principal{UserID: without.ID})
	assert.ErrorIs(t, err, ErrNoResidenceNumber)
}

func TestUserUsecase_GetAdmins(t *testing.T) {
	f := newUserFixture(t)
	f.seed(t, entity.User{Name: "Admin", Email: "ad@x.com", Role: entity.RoleAdmin}, "secret1")
	f.seed(t, entity.User{Name: "Patient", Email: "p@x.com", Role: entity.RoleUser}, "secret1")

	admins, err := f.usecase.GetAdmins(context.Background())
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "Admin", admins[0].Name)
}
