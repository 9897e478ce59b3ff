package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitingListRepository_FindByHealthAgency(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewWaitingListRepository()

	rows := sqlmock.NewRows([]string{"id", "user_id", "schedule_id", "order_number", "status", "poly_name", "user_name", "email"}).
		AddRow(1, 10, 100, 1, "waiting", "Cardiology", "Budi", "budi@x.com").
		AddRow(2, 11, 100, 2, "waiting", "Cardiology", "Sari", "sari@x.com")

	mock.ExpectQuery(`SELECT wa\.\*, pm\.name AS poly_name, us\.name AS user_name, us\.email FROM waiting_lists AS wa JOIN users AS us ON us\.id = wa\.user_id JOIN schedules AS sc ON sc\.id = wa\.schedule_id JOIN polyclinics AS po ON po\.id = sc\.polyclinic_id JOIN poly_masters AS pm ON pm\.id = po\.poly_master_id WHERE po\.health_agency_id = \$1 ORDER BY wa\.id`).
		WithArgs(7).
		WillReturnRows(rows)

	list, err := repo.FindByHealthAgency(db, 7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Cardiology", list[0].PolyName)
	assert.Equal(t, "Budi", list[0].UserName)
	assert.Equal(t, "sari@x.com", list[1].Email)
	assert.Equal(t, 2, list[1].OrderNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}
