package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"sweatshares/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	sql  string
	args []any
}

// fakeDB records Exec calls and answers QueryRow with a canned row.
type fakeDB struct {
	execs   []execCall
	execTag pgconn.CommandTag
	execErr error
	row     pgx.Row
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	return f.execTag, f.execErr
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return f.row
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// valuesRow copies canned column values into Scan destinations. A nil value
// leaves the destination at its zero value, as a NULL would for a pointer.
type valuesRow []any

func (r valuesRow) Scan(dest ...any) error {
	if len(dest) != len(r) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(r))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if r[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(r[i]))
	}
	return nil
}

func strp(s string) *string { return &s }

func listingColumns(profileID *string, fullName *string, profileCreated *time.Time) valuesRow {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return valuesRow{
		"b1f5c7f0-0000-4000-8000-000000000001", // l.id
		"8f14e45f-ceea-467f-a0e6-0c4b5e2d9c11", // l.profile_id
		"Technical co-founder",
		strp("Looking for a CTO"),
		strp("find-cofounder"),
		strp("fintech"),
		strp("Remote"),
		strp("equity"),
		strp("10"),
		(*string)(nil),
		created,
		profileID,
		fullName,
		(*string)(nil),
		(*string)(nil),
		(*string)(nil),
		(*string)(nil),
		[]string{},
		profileCreated,
		profileCreated,
	}
}

func TestSignatureRequestRepo_UpdateStatus(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewSignatureRequestRepo(db)
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.UpdateStatus(context.Background(), "sig_123", model.SignatureStatusSigned, at))

	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0].sql, "UPDATE signature_requests")
	assert.Equal(t, []any{"sig_123", "signed", at}, db.execs[0].args)
}

func TestSignatureRequestRepo_UpdateStatusError(t *testing.T) {
	db := &fakeDB{execErr: errors.New("connection reset")}
	err := NewSignatureRequestRepo(db).UpdateStatus(context.Background(), "sig_123", "signed", time.Now())
	assert.ErrorContains(t, err, "sig_123")
	assert.ErrorContains(t, err, "connection reset")
}

func TestDeadlineRepo_CheckApproachingDeadlines(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("SELECT 1")}
	require.NoError(t, NewDeadlineRepo(db).CheckApproachingDeadlines(context.Background()))
	require.Len(t, db.execs, 1)
	assert.Equal(t, "SELECT check_approaching_deadlines()", db.execs[0].sql)
	assert.Empty(t, db.execs[0].args)
}

func TestListingRepo_NotFound(t *testing.T) {
	db := &fakeDB{row: errRow{err: pgx.ErrNoRows}}
	l, err := NewListingRepo(db).GetListingWithProfile(context.Background(), "b1f5c7f0-0000-4000-8000-000000000001")
	assert.NoError(t, err)
	assert.Nil(t, l)
}

func TestListingRepo_WithProfile(t *testing.T) {
	at := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	db := &fakeDB{row: listingColumns(strp("8f14e45f-ceea-467f-a0e6-0c4b5e2d9c11"), strp("Ada Lovelace"), &at)}

	l, err := NewListingRepo(db).GetListingWithProfile(context.Background(), "b1f5c7f0-0000-4000-8000-000000000001")
	require.NoError(t, err)
	require.NotNil(t, l.Profile)
	assert.Equal(t, "8f14e45f-ceea-467f-a0e6-0c4b5e2d9c11", l.Profile.ID)
	assert.Equal(t, "Ada Lovelace", l.Profile.DisplayName())
	assert.Equal(t, at, l.Profile.CreatedAt)
	assert.Equal(t, "Technical co-founder", l.Title)
}

func TestListingRepo_MissingProfile(t *testing.T) {
	db := &fakeDB{row: listingColumns(nil, nil, nil)}

	l, err := NewListingRepo(db).GetListingWithProfile(context.Background(), "b1f5c7f0-0000-4000-8000-000000000001")
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Nil(t, l.Profile)
	assert.Equal(t, "8f14e45f-ceea-467f-a0e6-0c4b5e2d9c11", l.ProfileID)
}

func TestProfileRepo_Error(t *testing.T) {
	db := &fakeDB{row: errRow{err: errors.New("boom")}}
	p, err := NewProfileRepo(db).GetProfileByID(context.Background(), "p1")
	assert.Nil(t, p)
	assert.ErrorContains(t, err, "boom")
}

func TestMessageRepo_MarkRead(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("UPDATE 0")}
	ok, err := NewMessageRepo(db).MarkRead(context.Background(), "m1", "u2")
	require.NoError(t, err)
	assert.False(t, ok)

	db.execTag = pgconn.NewCommandTag("UPDATE 1")
	ok, err = NewMessageRepo(db).MarkRead(context.Background(), "m1", "u2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDSNSeparator(t *testing.T) {
	assert.Equal(t, "?", dsnSeparator("postgres://u:p@localhost:5432/db"))
	assert.Equal(t, "&", dsnSeparator("postgresql://u:p@localhost:5432/db?application_name=x"))
	assert.Equal(t, " ", dsnSeparator("host=localhost port=5432"))
}
