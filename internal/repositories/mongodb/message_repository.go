// Package mongodb stores chat messages in a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-connect/internal/database"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

const messagesCollection = "messages"

type MessageRepository struct {
	coll *mongo.Collection
}

var _ repositories.MessageStore = (*MessageRepository)(nil)

func NewMessageRepository(db *database.MongoDB) *MessageRepository {
	return &MessageRepository{coll: db.DB.Collection(messagesCollection)}
}

// EnsureIndexes creates the {chat_id, created_at, _id} index used by every
// query.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "chat_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("chat_created_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create message index: %w", err)
	}
	return nil
}

func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = models.NewMessageID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *MessageRepository) ListByChat(ctx context.Context, chatID uint, limit int, before *repositories.MessageCursor) ([]models.Message, error) {
	filter := bson.M{"chat_id": chatID}
	if before != nil {
		at := before.CreatedAt.UTC()
		if before.ID == "" {
			filter["created_at"] = bson.M{"$lt": at}
		} else {
			filter["$or"] = bson.A{
				bson.M{"created_at": bson.M{"$lt": at}},
				bson.M{"created_at": at, "_id": bson.M{"$lt": before.ID}},
			}
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer cur.Close(ctx)

	messages := []models.Message{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	if limit > 0 {
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	}
	return messages, nil
}

// Latest reports gorm.ErrRecordNotFound for an empty chat so callers treat
// both stores alike.
func (r *MessageRepository) Latest(ctx context.Context, chatID uint) (*models.Message, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	var msg models.Message
	err := r.coll.FindOne(ctx, bson.M{"chat_id": chatID}, opts).Decode(&msg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest message: %w", err)
	}
	return &msg, nil
}

func (r *MessageRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}
