package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	menuerrors "trizone/internal/menu/errors"
	"trizone/pkg/config"
	"trizone/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "MenuItems"
)

type mongoMenuRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type MenuRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	FindAll(ctx context.Context) ([]*model.MenuItem, error)
	Update(ctx context.Context, id string, update *model.MenuItemUpdate) (*model.MenuItem, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, items []*model.MenuItem) error
}

func NewMongoMenuRepository(cfg *config.Config) MenuRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoMenuRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoMenuRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoMenuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	item.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid.Hex()
	}
	return nil
}

func (r *mongoMenuRepository) FindAll(ctx context.Context) ([]*model.MenuItem, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*model.MenuItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}

	return items, nil
}

func (r *mongoMenuRepository) Update(ctx context.Context, id string, update *model.MenuItemUpdate) (*model.MenuItem, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", menuerrors.ErrInvalidID, id)
	}

	set := bson.M{}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Icon != "" {
		set["icon"] = update.Icon
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item model.MenuItem
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, menuerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	item.ID = objectID.Hex()
	return &item, nil
}

func (r *mongoMenuRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", menuerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	if result.DeletedCount == 0 {
		return menuerrors.ErrNotFound
	}

	return nil
}

func (r *mongoMenuRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}

	return count, nil
}

func (r *mongoMenuRepository) InsertMany(ctx context.Context, items []*model.MenuItem) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]any, 0, len(items))
	for i, item := range items {
		// Preserve insertion order under the created_at ascending sort.
		item.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		docs = append(docs, item)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert menu items: %w", err)
	}
	return nil
}
