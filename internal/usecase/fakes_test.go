package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/testutil"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/jwt"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/storage"
)

const storeRoot = "/public"

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newMemStore() (*storage.LocalStore, afero.Fs) {
	fs := afero.NewMemMapFs()
	return storage.NewLocalStore(fs, storeRoot), fs
}

func mockDB(t *testing.T) *gorm.DB {
	db, _ := testutil.NewMockDB(t)
	return db
}

func fileExists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, storeRoot+"/"+path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	return ok
}

// failingStore stores files normally but cannot delete them.
type failingStore struct {
	storage.FileStore
	deletes []string
}

func (s *failingStore) Delete(ctx context.Context, path string) error {
	s.deletes = append(s.deletes, path)
	return errors.New("disk is read-only")
}

type fakeAgencyRepo struct {
	rows      map[uint]entity.HealthAgency
	nextID    uint
	createErr error
	updateErr error
	deleteErr error
	byName    []entity.HealthAgency
	byPoly    []entity.HealthAgency
}

func newFakeAgencyRepo() *fakeAgencyRepo {
	return &fakeAgencyRepo{rows: map[uint]entity.HealthAgency{}}
}

func (f *fakeAgencyRepo) Create(db *gorm.DB, agency *entity.HealthAgency) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	agency.ID = f.nextID
	agency.CreatedAt = time.Now()
	agency.UpdatedAt = agency.CreatedAt
	f.rows[agency.ID] = *agency
	return nil
}

func (f *fakeAgencyRepo) FindByID(db *gorm.DB, id uint) (*entity.HealthAgency, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeAgencyRepo) FindAll(db *gorm.DB) ([]entity.HealthAgency, error) {
	ids := make([]int, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	agencies := make([]entity.HealthAgency, 0, len(ids))
	for _, id := range ids {
		agencies = append(agencies, f.rows[uint(id)])
	}
	return agencies, nil
}

func (f *fakeAgencyRepo) Update(db *gorm.DB, agency *entity.HealthAgency) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	agency.UpdatedAt = time.Now()
	f.rows[agency.ID] = *agency
	return nil
}

func (f *fakeAgencyRepo) Delete(db *gorm.DB, id uint) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

func (f *fakeAgencyRepo) ExistsByEmail(db *gorm.DB, email string, excludeID uint) (bool, error) {
	for id, row := range f.rows {
		if id != excludeID && strings.EqualFold(row.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAgencyRepo) SearchByName(db *gorm.DB, term string) ([]entity.HealthAgency, error) {
	return f.byName, nil
}

func (f *fakeAgencyRepo) SearchByPolyMasterName(db *gorm.DB, term string) ([]entity.HealthAgency, error) {
	return f.byPoly, nil
}

type fakePolyclinicRepo struct {
	rows map[uint][]entity.Polyclinic
}

func (f *fakePolyclinicRepo) FindByHealthAgency(db *gorm.DB, healthAgencyID uint) ([]entity.Polyclinic, error) {
	return f.rows[healthAgencyID], nil
}

func (f *fakePolyclinicRepo) FindByHealthAgencyWithSchedules(db *gorm.DB, healthAgencyID uint) ([]entity.Polyclinic, error) {
	return f.rows[healthAgencyID], nil
}

type fakePolyMasterRepo struct {
	rows      map[uint]entity.PolyMaster
	nextID    uint
	deleteErr error
}

func newFakePolyMasterRepo() *fakePolyMasterRepo {
	return &fakePolyMasterRepo{rows: map[uint]entity.PolyMaster{}}
}

func (f *fakePolyMasterRepo) Create(db *gorm.DB, polyMaster *entity.PolyMaster) error {
	f.nextID++
	polyMaster.ID = f.nextID
	f.rows[polyMaster.ID] = *polyMaster
	return nil
}

func (f *fakePolyMasterRepo) FindByID(db *gorm.DB, id uint) (*entity.PolyMaster, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakePolyMasterRepo) FindAll(db *gorm.DB) ([]entity.PolyMaster, error) {
	polyMasters := make([]entity.PolyMaster, 0, len(f.rows))
	for id := uint(1); id <= f.nextID; id++ {
		if row, ok := f.rows[id]; ok {
			polyMasters = append(polyMasters, row)
		}
	}
	return polyMasters, nil
}

func (f *fakePolyMasterRepo) Update(db *gorm.DB, polyMaster *entity.PolyMaster) error {
	f.rows[polyMaster.ID] = *polyMaster
	return nil
}

func (f *fakePolyMasterRepo) Delete(db *gorm.DB, id uint) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

type fakeUserRepo struct {
	rows      map[uint]entity.User
	nextID    uint
	createErr error
	deleteErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: map[uint]entity.User{}}
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	user.ID = f.nextID
	f.rows[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id uint) (*entity.User, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	for _, row := range f.rows {
		if row.Email == email {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(db *gorm.DB) ([]entity.User, error) {
	return f.FindByRole(db, "")
}

func (f *fakeUserRepo) FindByRole(db *gorm.DB, role string) ([]entity.User, error) {
	users := make([]entity.User, 0)
	for id := uint(1); id <= f.nextID; id++ {
		row, ok := f.rows[id]
		if ok && (role == "" || row.Role == role) {
			users = append(users, row)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) Update(db *gorm.DB, user *entity.User) error {
	f.rows[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(db *gorm.DB, id uint, hashedPassword string) error {
	row := f.rows[id]
	row.Password = hashedPassword
	f.rows[id] = row
	return nil
}

func (f *fakeUserRepo) UpdateProfileImage(db *gorm.DB, id uint, path *string) error {
	row := f.rows[id]
	row.ProfileImg = path
	f.rows[id] = row
	return nil
}

func (f *fakeUserRepo) Delete(db *gorm.DB, id uint) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

func (f *fakeUserRepo) ExistsByEmail(db *gorm.DB, email string, excludeID uint) (bool, error) {
	for id, row := range f.rows {
		if id != excludeID && row.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByResidenceNumber(db *gorm.DB, residenceNumber string, excludeID uint) (bool, error) {
	for id, row := range f.rows {
		if id != excludeID && row.ResidenceNumber != nil && *row.ResidenceNumber == residenceNumber {
			return true, nil
		}
	}
	return false, nil
}

type auditEntry struct {
	action   string
	entityID string
	actor    *uint
}

type fakeAuditService struct {
	entries []auditEntry
	err     error
}

func (f *fakeAuditService) record(ctx context.Context, action, entityID string) error {
	entry := auditEntry{action: action, entityID: entityID}
	if p, ok := entity.PrincipalFromContext(ctx); ok {
		id := p.UserID
		entry.actor = &id
	}
	f.entries = append(f.entries, entry)
	return f.err
}

func (f *fakeAuditService) LogCreate(ctx context.Context, db *gorm.DB, action, entityName, entityID string, newValue interface{}) error {
	return f.record(ctx, action, entityID)
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, db *gorm.DB, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return f.record(ctx, action, entityID)
}

func (f *fakeAuditService) LogDelete(ctx context.Context, db *gorm.DB, action, entityName, entityID string, oldValue interface{}) error {
	return f.record(ctx, action, entityID)
}

func (f *fakeAuditService) actions() []string {
	actions := make([]string, len(f.entries))
	for i, entry := range f.entries {
		actions[i] = entry.action
	}
	return actions
}

type fakeTokenStore struct {
	keys      map[string]time.Duration
	revokeErr error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{keys: map[string]time.Duration{}}
}

func (f *fakeTokenStore) key(tokenType jwt.TokenType, userID uint, tokenID string) string {
	return string(tokenType) + ":" + formatID(userID) + ":" + tokenID
}

func (f *fakeTokenStore) Allow(ctx context.Context, tokenType jwt.TokenType, userID uint, tokenID string, ttl time.Duration) error {
	f.keys[f.key(tokenType, userID, tokenID)] = ttl
	return nil
}

func (f *fakeTokenStore) IsAllowed(ctx context.Context, tokenType jwt.TokenType, userID uint, tokenID string) (bool, error) {
	_, ok := f.keys[f.key(tokenType, userID, tokenID)]
	return ok, nil
}

func (f *fakeTokenStore) Revoke(ctx context.Context, tokenType jwt.TokenType, userID uint, tokenID string) error {
	delete(f.keys, f.key(tokenType, userID, tokenID))
	return nil
}

func (f *fakeTokenStore) RevokeAll(ctx context.Context, userID uint) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	for key := range f.keys {
		if strings.HasPrefix(key, f.key(jwt.AccessToken, userID, "")) || strings.HasPrefix(key, f.key(jwt.RefreshToken, userID, "")) {
			delete(f.keys, key)
		}
	}
	return nil
}

func (f *fakeTokenStore) count(userID uint) int {
	n := 0
	for key := range f.keys {
		if strings.HasPrefix(key, f.key(jwt.AccessToken, userID, "")) || strings.HasPrefix(key, f.key(jwt.RefreshToken, userID, "")) {
			n++
		}
	}
	return n
}

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}
