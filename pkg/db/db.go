package db

import (
	"context"
	"fmt"

	"debate-archive/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// crosscheckCollection stores transcript crosschecks next to whichever
// collection the client was opened on for episodes.
const crosscheckCollection = "crosschecks"

// Client wraps the MongoDB client and database connection
type Client struct {
	mongoClient *mongo.Client
	database    *mongo.Database
	episodes    *mongo.Collection
}

// NewClient creates a new database client
func NewClient(connectionString, databaseName, collectionName string) *Client {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &Client{}
	}

	database := mongoClient.Database(databaseName)

	return &Client{
		mongoClient: mongoClient,
		database:    database,
		episodes:    database.Collection(collectionName),
	}
}

// Connect establishes connection to MongoDB
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// SaveEpisode saves an episode to the database. Episodes are keyed by their
// stable id, so re-ingesting the same feed updates in place instead of
// duplicating documents.
func (c *Client) SaveEpisode(ctx context.Context, episode *domain.Episode) error {
	if c.episodes == nil {
		return fmt.Errorf("collection not initialized")
	}

	filter := bson.M{"id": episode.Id}
	update := bson.M{"$set": episode}
	opts := options.Update().SetUpsert(true)

	_, err := c.episodes.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetAllEpisodeIds fetches all episode ids from the database and returns
// them as a map (set)
func (c *Client) GetAllEpisodeIds(ctx context.Context) (map[string]bool, error) {
	if c.episodes == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	// Query to get only the id field from all documents
	cursor, err := c.episodes.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"id": 1, "_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("failed to query episode ids: %w", err)
	}
	defer cursor.Close(ctx)

	idSet := make(map[string]bool)
	for cursor.Next(ctx) {
		var result struct {
			Id string `bson:"id"`
		}
		if err := cursor.Decode(&result); err != nil {
			continue // Skip invalid documents
		}
		if result.Id != "" {
			idSet[result.Id] = true
		}
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return idSet, nil
}

// GetAllEpisodes fetches every stored episode. The replicator uses this to
// mirror episodes into the SQL side, so it loads full documents rather than
// the id projection GetAllEpisodeIds uses.
func (c *Client) GetAllEpisodes(ctx context.Context) ([]domain.Episode, error) {
	if c.episodes == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	cursor, err := c.episodes.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query episodes: %w", err)
	}
	defer cursor.Close(ctx)

	episodes := make([]domain.Episode, 0)
	for cursor.Next(ctx) {
		var episode domain.Episode
		if err := cursor.Decode(&episode); err != nil {
			continue // Skip invalid documents
		}
		episodes = append(episodes, episode)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return episodes, nil
}

// SaveCrosscheck saves a transcript crosscheck, keyed by episode id
func (c *Client) SaveCrosscheck(ctx context.Context, record *domain.CrosscheckRecord) error {
	if c.database == nil {
		return fmt.Errorf("database not initialized")
	}

	filter := bson.M{"episode_id": record.EpisodeId}
	update := bson.M{"$set": record}
	opts := options.Update().SetUpsert(true)

	_, err := c.database.Collection(crosscheckCollection).UpdateOne(ctx, filter, update, opts)
	return err
}

// ExistingCrosscheckIds returns which of the given episode ids already have
// a stored crosscheck, as a map (set). Used to skip episodes on re-runs.
func (c *Client) ExistingCrosscheckIds(ctx context.Context, episodeIds []string) (map[string]bool, error) {
	if c.database == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	existing := make(map[string]bool)
	if len(episodeIds) == 0 {
		return existing, nil
	}

	filter := bson.M{"episode_id": bson.M{"$in": episodeIds}}
	cursor, err := c.database.Collection(crosscheckCollection).Find(ctx, filter,
		options.Find().SetProjection(bson.M{"episode_id": 1, "_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("failed to query crosscheck ids: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var result struct {
			EpisodeId string `bson:"episode_id"`
		}
		if err := cursor.Decode(&result); err != nil {
			continue // Skip invalid documents
		}
		if result.EpisodeId != "" {
			existing[result.EpisodeId] = true
		}
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return existing, nil
}

// GetCrosscheck fetches the stored crosscheck for one episode, or mongo's
// ErrNoDocuments when none exists
func (c *Client) GetCrosscheck(ctx context.Context, episodeId string) (*domain.CrosscheckRecord, error) {
	if c.database == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	var record domain.CrosscheckRecord
	err := c.database.Collection(crosscheckCollection).FindOne(ctx, bson.M{"episode_id": episodeId}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
