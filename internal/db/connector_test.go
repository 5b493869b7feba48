package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/termquest/internal/config"
	"github.com/vvka-141/termquest/pkg/termquest"
)

type fakeProvider struct {
	calls int
	err   error
}

func (f *fakeProvider) GetToken(context.Context) (string, time.Time, error) {
	f.calls++
	return "", time.Time{}, f.err
}

func (f *fakeProvider) String() string { return "fake" }

func TestNewConnector(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ConnectionConfig
		wantErr error
		errText string
	}{
		{name: "standard", cfg: ConnectionConfig{AuthMethod: config.AuthStandard}},
		{name: "empty means standard", cfg: ConnectionConfig{}},
		{name: "aws without region", cfg: ConnectionConfig{AuthMethod: config.AuthAWSIAM, Username: "u"}, errText: "aws_region"},
		{name: "aws without user", cfg: ConnectionConfig{AuthMethod: config.AuthAWSIAM, AWSRegion: "us-east-1"}, errText: "username"},
		{name: "aws", cfg: ConnectionConfig{AuthMethod: config.AuthAWSIAM, AWSRegion: "us-east-1", Username: "u", Host: "h", Port: 5432}},
		{name: "google without instance", cfg: ConnectionConfig{AuthMethod: config.AuthGoogleIAM, Username: "u"}, errText: "google_instance"},
		{name: "google without user", cfg: ConnectionConfig{AuthMethod: config.AuthGoogleIAM, GoogleInstance: "p:r:i"}, errText: "username"},
		{name: "google", cfg: ConnectionConfig{AuthMethod: config.AuthGoogleIAM, GoogleInstance: "p:r:i", Username: "u"}},
		{name: "unsupported", cfg: ConnectionConfig{AuthMethod: "kerberos"}, wantErr: termquest.ErrUnsupportedAuthMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			conn, err := NewConnector(&cfg, nil)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				require.NoError(t, err)
				assert.NotNil(t, conn)
			}
		})
	}
}

func TestTokenConnector_ProviderFailureIsNotRetried(t *testing.T) {
	provider := &fakeProvider{err: errors.New("credentials expired")}
	conn := NewTokenConnector(&ConnectionConfig{Host: "localhost", Port: 5432}, provider, nil)

	_, err := conn.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to acquire fake token")
	assert.Equal(t, 1, provider.calls)
}

func TestWrapConnectionError(t *testing.T) {
	cfg := &ConnectionConfig{Host: "db", Port: 5432, Username: "quest", Database: "journal", SSLMode: "verify-full"}
	tests := []struct {
		raw  string
		want string
	}{
		{"dial tcp: connection refused", "pg_isready -h db -p 5432"},
		{"lookup db: no such host", `cannot resolve host "db"`},
		{"FATAL: password authentication failed for user", `password authentication failed for "quest"`},
		{`FATAL: database "journal" does not exist`, "createdb journal"},
		{"dial tcp: i/o timeout", "connection timed out to db:5432"},
		{"tls: handshake failure", "sslmode=verify-full"},
		{"something odd", "failed to connect to journal database"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			raw := errors.New(tt.raw)
			err := wrapConnectionError(raw, cfg)
			assert.Contains(t, err.Error(), tt.want)
			assert.ErrorIs(t, err, raw)
		})
	}
}

func TestGoogleConnector_CloseWithoutConnect(t *testing.T) {
	c := NewGoogleCloudSQLConnector(&ConnectionConfig{}, nil)
	require.NoError(t, c.Close())
	assert.Equal(t, "u@h:1/d (aws-iam)", fmt.Sprint(&ConnectionConfig{Username: "u", Host: "h", Port: 1, Database: "d", AuthMethod: config.AuthAWSIAM}))
}
