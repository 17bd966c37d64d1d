package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()
	key := "test-" + t.Name()

	_, err := s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, key, []byte(`{"name":"Tendai"}`)))
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Tendai"}`, string(got))

	require.NoError(t, s.Put(ctx, key, []byte(`{"name":"Rudo"}`)))
	got, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Rudo"}`, string(got))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, key), "deleting a missing key")
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()
	exerciseStorage(t, s)
}

func TestMemoryStorage_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	value := []byte("abc")
	require.NoError(t, s.Put(ctx, "k", value))
	value[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestPostgresStorage(t *testing.T) {
	url := os.Getenv("MUDHUMENI_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("set MUDHUMENI_TEST_DATABASE_URL to run PostgreSQL integration tests")
	}

	s, err := NewPostgresStorage(context.Background(), DatabaseConfig{URL: url})
	require.NoError(t, err)
	defer s.Close()
	exerciseStorage(t, s)
}

func TestRedisStorage(t *testing.T) {
	url := os.Getenv("MUDHUMENI_TEST_REDIS_URL")
	if url == "" {
		t.Skip("set MUDHUMENI_TEST_REDIS_URL to run Redis integration tests")
	}

	s, err := NewRedisStorage(context.Background(), RedisConfig{URL: url})
	require.NoError(t, err)
	defer s.Close()
	exerciseStorage(t, s)
}

func TestDatabaseConfig_ConnString(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "farmer", Password: "pw", DBName: "mudhumeni", SSLMode: "disable"}
	assert.Equal(t, "host='db' port=5432 user='farmer' password='pw' dbname='mudhumeni' sslmode='disable'", c.connString())

	c.Password = ""
	assert.Equal(t, "host='db' port=5432 user='farmer' password='' dbname='mudhumeni' sslmode='disable'", c.connString())

	c.Password = `it's a\secret`
	assert.Contains(t, c.connString(), `password='it\'s a\\secret'`)

	c.URL = "postgres://farmer@db/mudhumeni"
	assert.Equal(t, "postgres://farmer@db/mudhumeni", c.connString())
}
