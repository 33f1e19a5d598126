package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/apperrors"
	redisv9 "github.com/redis/go-redis/v9"
)

func newRepo(t *testing.T) (*RedisCodeRepo, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)

	client := redisv9.NewClient(&redisv9.Options{
		Addr: mr.Addr(),
	})
	return NewRedisCodeRepo(client), mr
}

func TestRedisCodeRepo_SetAndGet(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "codigo:1:senha", "123456", 600*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := repo.Get(ctx, "codigo:1:senha")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "123456" {
		t.Fatalf("want 123456, got %s", got)
	}
	if ttl := mr.TTL("codigo:1:senha"); ttl != 600*time.Second {
		t.Fatalf("want 600s TTL, got %v", ttl)
	}
}

func TestRedisCodeRepo_GetMissing(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.Get(context.Background(), "codigo:1:senha")
	if !apperrors.IsCodeInvalidOrExpired(err) {
		t.Fatalf("missing key should read as invalid or expired, got %v", err)
	}
}

func TestRedisCodeRepo_SetOverwritesAndResetsTTL(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "codigo:1:email", "111111", 600*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(300 * time.Second)
	if err := repo.Set(ctx, "codigo:1:email", "222222", 600*time.Second); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	got, err := repo.Get(ctx, "codigo:1:email")
	if err != nil || got != "222222" {
		t.Fatalf("want overwritten code, got %s (%v)", got, err)
	}
	if ttl := mr.TTL("codigo:1:email"); ttl != 600*time.Second {
		t.Fatalf("TTL should reset on overwrite, got %v", ttl)
	}
}

func TestRedisCodeRepo_Expiry(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "codigo:7:senha", "999999", 600*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(601 * time.Second)

	if _, err := repo.Get(ctx, "codigo:7:senha"); !apperrors.IsCodeInvalidOrExpired(err) {
		t.Fatalf("expired key should read as invalid or expired, got %v", err)
	}
}

func TestRedisCodeRepo_DeleteIfMatch(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "codigo:2:senha", "654321", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	ok, err := repo.DeleteIfMatch(ctx, "codigo:2:senha", "000000")
	if err != nil {
		t.Fatalf("DeleteIfMatch mismatch: %v", err)
	}
	if ok {
		t.Fatal("mismatched code must not consume the key")
	}

	ok, err = repo.DeleteIfMatch(ctx, "codigo:2:senha", "654321")
	if err != nil || !ok {
		t.Fatalf("DeleteIfMatch: ok=%v err=%v", ok, err)
	}

	// Second consumption of the same code loses.
	ok, err = repo.DeleteIfMatch(ctx, "codigo:2:senha", "654321")
	if err != nil {
		t.Fatalf("DeleteIfMatch replay: %v", err)
	}
	if ok {
		t.Fatal("replayed code must not be consumed twice")
	}
}

func TestRedisCodeRepo_Delete(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "verificar-email:3:novo@example.com", "314159", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Delete(ctx, "verificar-email:3:novo@example.com"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "verificar-email:3:novo@example.com"); !apperrors.IsCodeInvalidOrExpired(err) {
		t.Fatalf("expected invalid or expired after delete, got %v", err)
	}
}
