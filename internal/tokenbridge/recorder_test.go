package tokenbridge

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubClient struct {
	err   error
	calls int
}

func (s *stubClient) Transfer(ctx context.Context, tokenID, recipient string, amount int64, poolID int64) error {
	s.calls++
	return s.err
}

func (s *stubClient) TransferNative(ctx context.Context, recipient string, amount int64, poolID int64) error {
	s.calls++
	return s.err
}

func (s *stubClient) RegisterStorage(ctx context.Context, tokenID, owner string) error {
	s.calls++
	return s.err
}

func setupRecorderTest(t *testing.T, inner Client) (*Recorder, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return &Recorder{DB: db, Inner: inner}, db
}

func TestRecorder_SuccessfulTransfer(t *testing.T) {
	stub := &stubClient{}
	rec, db := setupRecorderTest(t, stub)

	require.NoError(t, rec.Transfer(context.Background(), "token.near", "alice", 500, 7))
	assert.Equal(t, 1, stub.calls)

	var row domain.TransferRequest
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, domain.TransferKindTokenPayout, row.Kind)
	assert.Equal(t, domain.TransferStatusSent, row.Status)
	assert.Equal(t, int64(500), row.Amount)
	require.NotNil(t, row.PoolID)
	assert.Equal(t, int64(7), *row.PoolID)
}

func TestRecorder_FailedAttemptIsRecorded(t *testing.T) {
	stub := &stubClient{err: errors.New("bridge unreachable")}
	rec, db := setupRecorderTest(t, stub)

	err := rec.TransferNative(context.Background(), "bob", 1, 3)
	assert.Error(t, err)

	var row domain.TransferRequest
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, domain.TransferKindNativeRefund, row.Kind)
	assert.Equal(t, domain.TransferStatusFailed, row.Status)
	assert.Equal(t, "bridge unreachable", row.LastError)
}

func TestRecorder_KindsPerCall(t *testing.T) {
	stub := &stubClient{}
	rec, db := setupRecorderTest(t, stub)

	require.NoError(t, rec.TransferWithdrawal(context.Background(), "token.near", "creator", 700, 1))
	require.NoError(t, rec.RegisterStorage(context.Background(), "token.near", "launchpad.engine"))

	var kinds []string
	require.NoError(t, db.Model(&domain.TransferRequest{}).Order("created_at").Pluck("kind", &kinds).Error)
	assert.ElementsMatch(t, []string{domain.TransferKindTokenWithdrawal, domain.TransferKindStorageRegister}, kinds)
}

func TestHTTPClient_SendsBearerAuth(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &HTTPClient{BaseURL: srv.URL, APIKey: "key123"}
	require.NoError(t, c.Transfer(context.Background(), "token.near", "alice", 10, 1))
	assert.Equal(t, "Bearer key123", gotAuth)
	assert.Equal(t, "/v1/transfer", gotPath)
}

func TestHTTPClient_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &HTTPClient{BaseURL: srv.URL}
	err := c.RegisterStorage(context.Background(), "token.near", "launchpad.engine")
	assert.Error(t, err)
}
