package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var agencyColumns = []string{"id", "name", "address", "image", "call_center", "email"}

func TestHealthAgencyRepository_FindByID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewHealthAgencyRepository()

	mock.ExpectQuery(`SELECT \* FROM "health_agencies" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(agencyColumns))

	agency, err := repo.FindByID(db, 42)
	assert.NoError(t, err)
	assert.Nil(t, agency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthAgencyRepository_FindByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewHealthAgencyRepository()

	mock.ExpectQuery(`SELECT \* FROM "health_agencies" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(agencyColumns).
			AddRow(1, "City Clinic", "1 Main St", nil, "555-0100", "a@x.com"))

	agency, err := repo.FindByID(db, 1)
	require.NoError(t, err)
	require.NotNil(t, agency)
	assert.Equal(t, "City Clinic", agency.Name)
	assert.Nil(t, agency.Image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthAgencyRepository_ExistsByEmail_ExcludesOwnRow(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewHealthAgencyRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "health_agencies" WHERE email = \$1 AND id <> \$2`).
		WithArgs("a@x.com", 5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsByEmail(db, "a@x.com", 5)
	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthAgencyRepository_ExistsByEmail_OnCreate(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewHealthAgencyRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "health_agencies" WHERE email = \$1$`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmail(db, "a@x.com", 0)
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthAgencyRepository_SearchByName(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewHealthAgencyRepository()

	mock.ExpectQuery(`SELECT \* FROM "health_agencies" WHERE name ILIKE \$1 ORDER BY id`).
		WithArgs("%cardio%").
		WillReturnRows(sqlmock.NewRows(agencyColumns).
			AddRow(1, "Cardio Center", "2 Heart St", nil, "555-0101", "c@x.com"))

	agencies, err := repo.SearchByName(db, "cardio")
	require.NoError(t, err)
	require.Len(t, agencies, 1)
	assert.Equal(t, "Cardio Center", agencies[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthAgencyRepository_SearchByPolyMasterName(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewHealthAgencyRepository()

	mock.ExpectQuery(`SELECT DISTINCT health_agencies\.\* FROM "health_agencies" JOIN polyclinics ON polyclinics\.health_agency_id = health_agencies\.id JOIN poly_masters ON poly_masters\.id = polyclinics\.poly_master_id WHERE poly_masters\.name ILIKE \$1`).
		WithArgs("%cardio%").
		WillReturnRows(sqlmock.NewRows(agencyColumns).
			AddRow(2, "City Clinic", "1 Main St", nil, "555-0100", "a@x.com"))

	agencies, err := repo.SearchByPolyMasterName(db, "cardio")
	require.NoError(t, err)
	require.Len(t, agencies, 1)
	assert.Equal(t, uint(2), agencies[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthAgencyRepository_SearchEscapesWildcards(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewHealthAgencyRepository()

	mock.ExpectQuery(`SELECT \* FROM "health_agencies" WHERE name ILIKE \$1 ORDER BY id`).
		WithArgs(`%50\%\_off\\%`).
		WillReturnRows(sqlmock.NewRows(agencyColumns))

	agencies, err := repo.SearchByName(db, `50%_off\`)
	require.NoError(t, err)
	assert.Empty(t, agencies)

	mock.ExpectQuery(`WHERE poly_masters\.name ILIKE \$1`).
		WithArgs(`%\_%`).
		WillReturnRows(sqlmock.NewRows(agencyColumns))

	agencies, err = repo.SearchByPolyMasterName(db, "_")
	require.NoError(t, err)
	assert.Empty(t, agencies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthAgencyRepository_Delete_NoRow(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewHealthAgencyRepository()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "health_agencies" WHERE id = \$1`).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	deleted, err := repo.Delete(db, 9)
	assert.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthAgencyRepository_Delete(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewHealthAgencyRepository()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "health_agencies" WHERE id = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Delete(db, 3)
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
