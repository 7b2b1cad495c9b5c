package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/gigboard/marketplace/internal/core/domain"
)

const usersNS = "freelance_marketplace.users"

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestUserRepository_Create(t *testing.T) {
	mt := newMockT(t)

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewUserRepository(mt.DB)

		created, err := repo.Create(context.Background(), &domain.User{
			Name:         "Alice",
			Email:        "a@x.com",
			PasswordHash: "hash",
			Role:         domain.RoleEmployer,
			CreatedAt:    time.Now(),
		})
		if err != nil {
			mt.Fatalf("Create returned error: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(created.ID); err != nil {
			mt.Errorf("expected ObjectID hex id, got %q", created.ID)
		}
		if created.Name != "Alice" || created.Email != "a@x.com" || created.Role != domain.RoleEmployer {
			mt.Errorf("unexpected user: %+v", created)
		}
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: email_unique",
		}))
		repo := NewUserRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.User{Name: "Alice", Email: "a@x.com"})
		if !errors.Is(err, domain.ErrUserExists) {
			mt.Fatalf("expected ErrUserExists, got %v", err)
		}
	})

	mt.Run("driver error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))
		repo := NewUserRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.User{Name: "Alice", Email: "a@x.com"})
		if err == nil || errors.Is(err, domain.ErrUserExists) {
			mt.Fatalf("expected wrapped driver error, got %v", err)
		}
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mt := newMockT(t)

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Alice"},
			{Key: "email", Value: "a@x.com"},
			{Key: "password_hash", Value: "hash"},
			{Key: "role", Value: domain.RoleEmployer},
			{Key: "created_at", Value: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		}))
		repo := NewUserRepository(mt.DB)

		user, err := repo.FindByEmail(context.Background(), "a@x.com")
		if err != nil {
			mt.Fatalf("FindByEmail returned error: %v", err)
		}
		if user.ID != id.Hex() || user.Name != "Alice" || user.PasswordHash != "hash" {
			mt.Errorf("unexpected user: %+v", user)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))
		repo := NewUserRepository(mt.DB)

		if _, err := repo.FindByEmail(context.Background(), "ghost@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	mt := newMockT(t)

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Bob"},
			{Key: "email", Value: "bob@x.com"},
			{Key: "role", Value: domain.RoleFreelancer},
		}))
		repo := NewUserRepository(mt.DB)

		user, err := repo.FindByID(context.Background(), id.Hex())
		if err != nil {
			mt.Fatalf("FindByID returned error: %v", err)
		}
		if user.ID != id.Hex() || user.Name != "Bob" {
			mt.Errorf("unexpected user: %+v", user)
		}
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)

		if _, err := repo.FindByID(context.Background(), "not-an-object-id"); !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepository_EnsureIndexes(t *testing.T) {
	mt := newMockT(t)

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		if err := EnsureIndexes(context.Background(), NewUserRepository(mt.DB)); err != nil {
			mt.Fatalf("EnsureIndexes returned error: %v", err)
		}
	})

	mt.Run("failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "index already exists with different options",
		}))

		if err := EnsureIndexes(context.Background(), NewUserRepository(mt.DB)); err == nil {
			mt.Fatal("expected error, got nil")
		}
	})
}
