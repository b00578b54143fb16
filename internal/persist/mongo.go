package persist

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/postit-dev/postit/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultMongoDatabase = "postit"
	collectionParam      = "collection"
)

// Mongo stores a task list in one MongoDB collection, one document per task.
type Mongo struct {
	uri        string // connection URI handed to the driver
	display    string // URI without credentials
	database   string
	collection string
	logger     *log.Logger
	client     *mongo.Client
}

// NewMongo parses a mongodb:// or mongodb+srv:// URI. The database is the
// URI path and the collection the "collection" query parameter; they
// default to "postit" and "tasks". No connection is made until first use.
func NewMongo(rawURI string, logger *log.Logger) (*Mongo, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, &UnsupportedError{Target: rawURI, Reason: fmt.Sprintf("invalid connection string: %v", err)}
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return nil, &UnsupportedError{Target: rawURI, Reason: fmt.Sprintf("unknown scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &UnsupportedError{Target: rawURI, Reason: "missing host"}
	}

	database := strings.Trim(u.Path, "/")
	if database == "" {
		database = defaultMongoDatabase
	}
	if strings.Contains(database, "/") {
		return nil, &UnsupportedError{Target: rawURI, Reason: "database name must be a single path segment"}
	}

	query := u.Query()
	collection := query.Get(collectionParam)
	if collection == "" {
		collection = defaultTable
	}
	query.Del(collectionParam)
	u.RawQuery = query.Encode()

	display := *u
	display.User = nil

	return &Mongo{
		uri:        u.String(),
		display:    display.String(),
		database:   database,
		collection: collection,
		logger:     orDiscard(logger),
	}, nil
}

func (m *Mongo) Kind() Kind { return KindMongo }

func (m *Mongo) String() string {
	return fmt.Sprintf("%s (collection %s.%s)", m.display, m.database, m.collection)
}

// Close disconnects the client if one was connected.
func (m *Mongo) Close() error {
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(context.Background())
	m.client = nil
	if err != nil {
		return opError("close", m, err)
	}
	return nil
}

func (m *Mongo) coll(ctx context.Context) (*mongo.Collection, error) {
	if m.client == nil {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
		if err != nil {
			return nil, opError("open", m, err)
		}
		m.client = client
		m.logger.Debug("connected", "database", m.database)
	}
	return m.client.Database(m.database).Collection(m.collection), nil
}

// Exists reports whether the collection exists.
func (m *Mongo) Exists(ctx context.Context) (bool, error) {
	if _, err := m.coll(ctx); err != nil {
		return false, err
	}
	names, err := m.client.Database(m.database).ListCollectionNames(ctx, bson.D{{Key: "name", Value: m.collection}})
	if err != nil {
		return false, opError("access", m, err)
	}
	return len(names) > 0, nil
}

// Read loads every document sorted by id. A missing collection reads as an
// empty list.
func (m *Mongo) Read(ctx context.Context) (*model.TaskList, error) {
	coll, err := m.coll(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, opError("read", m, err)
	}
	var tasks []model.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, opError("read", m, err)
	}

	l := model.NewTaskList(tasks...)
	if err := l.Validate(); err != nil {
		return nil, opError("read", m, err)
	}

	m.logger.Debug("read tasks", "collection", m.collection, "count", l.Len())
	return l, nil
}

// Save deletes every document and inserts the tasks of l.
func (m *Mongo) Save(ctx context.Context, l *model.TaskList) error {
	coll, err := m.coll(ctx)
	if err != nil {
		return err
	}

	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return opError("save", m, fmt.Errorf("failed to clear collection: %w", err))
	}

	if l.Len() == 0 {
		// InsertMany rejects an empty batch; make sure the collection exists
		return m.ensureCollection(ctx)
	}

	docs := make([]interface{}, 0, l.Len())
	for _, t := range l.Tasks {
		docs = append(docs, t)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return opError("save", m, fmt.Errorf("failed to insert tasks: %w", err))
	}

	m.logger.Debug("saved tasks", "collection", m.collection, "count", l.Len())
	return nil
}

// Clean deletes every document but keeps the collection.
func (m *Mongo) Clean(ctx context.Context) error {
	coll, err := m.coll(ctx)
	if err != nil {
		return err
	}
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return opError("clean", m, err)
	}
	if err := m.ensureCollection(ctx); err != nil {
		return err
	}
	m.logger.Debug("cleaned collection", "collection", m.collection)
	return nil
}

// Remove drops the collection. Dropping a missing collection is not an error.
func (m *Mongo) Remove(ctx context.Context) error {
	coll, err := m.coll(ctx)
	if err != nil {
		return err
	}
	if err := coll.Drop(ctx); err != nil {
		return opError("remove", m, err)
	}
	m.logger.Debug("dropped collection", "collection", m.collection)
	return nil
}

func (m *Mongo) ensureCollection(ctx context.Context) error {
	ok, err := m.Exists(ctx)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if err := m.client.Database(m.database).CreateCollection(ctx, m.collection); err != nil {
		return opError("create", m, err)
	}
	return nil
}
