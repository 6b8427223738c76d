package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/martijn/secondchance/internal/core/repository"
	"github.com/martijn/secondchance/internal/infrastructure/sqlstore"
)

const testSecret = "test-secret"

func newTestStore(t *testing.T) *sqlstore.DB {
	t.Helper()

	db, err := sqlstore.Open(context.Background(), sqlstore.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAccountService(t *testing.T) (*AccountService, repository.UserRepository) {
	t.Helper()

	users := sqlstore.NewUserRepository(newTestStore(t))
	svc := NewAccountService(users, NewBcryptHasher(bcrypt.MinCost), NewJWTService(testSecret, "HS256"))
	return svc, users
}

func requireKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()

	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, kind, svcErr.Kind, "unexpected kind for %v", err)
	return svcErr
}

func ptr[T any](v T) *T {
	return &v
}
