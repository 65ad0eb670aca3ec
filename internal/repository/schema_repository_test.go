package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSchemaStatusReportsMissingTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.tables").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("hotels").AddRow("rooms").AddRow("users"))

	repo := NewSchemaRepo(db)
	st, err := repo.Status(context.Background())
	assert.NoError(t, err)
	assert.False(t, st.TablesReady)
	assert.ElementsMatch(t, []string{"bookings", "reviews", "refresh_tokens"}, st.MissingTables)
	assert.Nil(t, st.Counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaStatusCountsWhenComplete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	present := sqlmock.NewRows([]string{"table_name"})
	for _, tbl := range appTables {
		present.AddRow(tbl)
	}
	mock.ExpectQuery("FROM information_schema.tables").WillReturnRows(present)
	for _, tbl := range appTables {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM " + tbl)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	}

	repo := NewSchemaRepo(db)
	st, err := repo.Status(context.Background())
	assert.NoError(t, err)
	assert.True(t, st.TablesReady)
	assert.Empty(t, st.MissingTables)
	assert.Equal(t, int64(3), st.Counts["hotels"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepairSequencesAlignsCounters(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	for _, tbl := range appTables {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(id) FROM " + tbl)).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(6))
		mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE " + tbl + " AUTO_INCREMENT = 7")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	repo := NewSchemaRepo(db)
	next, err := repo.RepairSequences(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(7), next["users"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepairSequencesEmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	for _, tbl := range appTables {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(id) FROM " + tbl)).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))
		mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE " + tbl + " AUTO_INCREMENT = 1")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	repo := NewSchemaRepo(db)
	next, err := repo.RepairSequences(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), next["bookings"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
