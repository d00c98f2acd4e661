package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-datacharts-be/pkg/apperror"
)

func TestUploadCreatesSession(t *testing.T) {
	repo := newSessionRepo()
	svc := NewDatasetService(repo, noopLogger{})

	resp, err := svc.Upload(context.Background(), "sales.csv", []byte("region,amount\nN,10\nS,20\n"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionId)
	require.Len(t, resp.Columns, 2)
	assert.Equal(t, "region", resp.Columns[0].Name)
	assert.Len(t, resp.Preview, 2)

	session, found := repo.Get(resp.SessionId)
	require.True(t, found)
	assert.Equal(t, 2, session.Table.RowCount())
}

func TestUploadEachUploadGetsOwnSession(t *testing.T) {
	repo := newSessionRepo()
	svc := NewDatasetService(repo, noopLogger{})
	raw := []byte("a\n1\n")

	first, err := svc.Upload(context.Background(), "one.csv", raw)
	require.NoError(t, err)
	second, err := svc.Upload(context.Background(), "two.csv", raw)
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionId, second.SessionId)
}

func TestUploadRejectedFileCreatesNoSession(t *testing.T) {
	repo := newSessionRepo()
	svc := NewDatasetService(repo, noopLogger{})

	_, err := svc.Upload(context.Background(), "data.txt", []byte("hello"))
	require.Error(t, err)
	assert.Equal(t, apperror.KindInputFormat, apperror.KindOf(err))
	assert.EqualError(t, err, "Only CSV and Excel files are supported.")
}
