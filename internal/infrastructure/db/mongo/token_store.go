package mongo

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userhub/account-service/internal/api/metrics"
	"github.com/userhub/account-service/internal/core/domain"
)

const collectionTokens = "auth_tokens"

// tokenBytes is the entropy of a generated token: 20 random bytes (160 bits),
// rendered as 40 hex characters.
const tokenBytes = 20

// TokenStore persists opaque bearer tokens in MongoDB. The token itself is
// the document _id (unique by construction); a unique index on user_id
// guarantees at most one token per user and makes issue-or-get atomic.
type TokenStore struct {
	col *mongo.Collection
}

func NewTokenStore(db *mongo.Database) *TokenStore {
	return &TokenStore{col: db.Collection(collectionTokens)}
}

type tokenDoc struct {
	Key       string `bson:"_id"`
	UserID    string `bson:"user_id"`
	CreatedAt int64  `bson:"created_at"`
}

// IssueOrGet returns the user's existing token or creates one. The race
// between two first logins is resolved by the unique user_id index: the
// losing insert observes a duplicate-key error and re-reads the winner's
// token, so both callers see the same value.
func (s *TokenStore) IssueOrGet(ctx context.Context, userID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	existing, err := s.findByUser(ctx, userID)
	if err == nil {
		metrics.TokensIssuedTotal.WithLabelValues("reused").Inc()
		return existing, nil
	}
	if !errors.Is(err, domain.ErrTokenNotFound) {
		return "", err
	}

	key, err := generateKey()
	if err != nil {
		return "", err
	}

	doc := tokenDoc{Key: key, UserID: userID, CreatedAt: time.Now().UTC().Unix()}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the race against a concurrent first login.
			winner, ferr := s.findByUser(ctx, userID)
			if ferr != nil {
				return "", ferr
			}
			metrics.TokensIssuedTotal.WithLabelValues("reused").Inc()
			return winner, nil
		}
		return "", fmt.Errorf("insert token: %w", err)
	}

	metrics.TokensIssuedTotal.WithLabelValues("new").Inc()
	return key, nil
}

// Resolve maps a token back to its user ID. Unknown tokens, including the
// empty string and arbitrary garbage, fail with domain.ErrTokenNotFound.
func (s *TokenStore) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrTokenNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tokenDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": token}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("resolve token: %w", err)
	}
	return doc.UserID, nil
}

// Revoke removes the user's token mapping.
func (s *TokenStore) Revoke(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

func (s *TokenStore) findByUser(ctx context.Context, userID string) (string, error) {
	var doc tokenDoc
	if err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("find token: %w", err)
	}
	return doc.Key, nil
}

func (s *TokenStore) ensureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// generateKey produces a cryptographically random opaque token. There is no
// time-based fallback: if the system's entropy source fails, issuing a
// predictable credential is worse than failing the login.
func generateKey() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
