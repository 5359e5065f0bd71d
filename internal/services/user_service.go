package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"codetidbit/internal/apperrors"
	"codetidbit/internal/database"
	"codetidbit/internal/models"
	"codetidbit/pkg/auth"
)

// UserService handles account CRUD and credential checks
type UserService struct {
	mongodb     *database.MongoDB
	collection  *mongo.Collection
	sessionAuth *auth.SessionAuth
}

// NewUserService creates a new user service
func NewUserService(mongodb *database.MongoDB, sessionAuth *auth.SessionAuth) *UserService {
	var collection *mongo.Collection
	if mongodb != nil {
		collection = mongodb.Collection(database.CollectionUsers)
	}
	return &UserService{
		mongodb:     mongodb,
		collection:  collection,
		sessionAuth: sessionAuth,
	}
}

// Register validates the request, hashes the password and inserts the user.
// A duplicate email is reported with its own code whether caught by the
// pre-check or by the unique index.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if existing, _ := s.GetUserByEmail(ctx, req.Email); existing != nil {
		return nil, apperrors.New(apperrors.ErrEmailAlreadyRegistered, "an account already exists for this email")
	}

	passwordHash, err := s.sessionAuth.HashPassword(req.Password)
	if err != nil {
		log.Printf("❌ Failed to hash password: %v", err)
		return nil, apperrors.Internal()
	}

	now := time.Now()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Bio:          req.Bio,
		CreatedAt:    now,
		LastLoginAt:  now,
	}

	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.New(apperrors.ErrEmailAlreadyRegistered, "an account already exists for this email")
		}
		log.Printf("❌ Failed to insert user: %v", err)
		return nil, apperrors.Internal()
	}

	log.Printf("✅ Registered user %s (%s)", user.Email, user.ID.Hex())
	return user, nil
}

// Login checks credentials and bumps lastLoginAt. Missing accounts and bad
// passwords keep distinct codes.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.ErrNoAccountExistsForEmail, "no account exists for this email")
	}

	ok, err := s.sessionAuth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		log.Printf("❌ Password verification error for %s: %v", req.Email, err)
		return nil, apperrors.Internal()
	}
	if !ok {
		return nil, apperrors.New(apperrors.ErrIncorrectPassword, "incorrect password")
	}

	now := time.Now()
	if _, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"lastLoginAt": now}},
	); err != nil {
		// Login still succeeds; the timestamp is best-effort.
		log.Printf("⚠️ Failed to update lastLoginAt for %s: %v", user.Email, err)
	}
	user.LastLoginAt = now

	return user, nil
}

// GetUserByEmail returns nil, nil when no account exists.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// GetUserByID fetches an account by its hex ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInvalidID, "malformed user ID")
	}

	var user models.User
	err = s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.New(apperrors.ErrNoAccountExistsForEmail, "account does not exist")
	}
	if err != nil {
		log.Printf("❌ Failed to fetch user %s: %v", id, err)
		return nil, apperrors.Internal()
	}
	return &user, nil
}

// UpdateBio replaces the account bio.
func (s *UserService) UpdateBio(ctx context.Context, userID string, req models.UpdateBioRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.New(apperrors.ErrInvalidID, "malformed user ID")
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"bio": req.Bio}},
	)
	if err != nil {
		log.Printf("❌ Failed to update bio for %s: %v", userID, err)
		return apperrors.Internal()
	}
	if result.MatchedCount == 0 {
		return apperrors.New(apperrors.ErrNoAccountExistsForEmail, "account does not exist")
	}
	return nil
}
