package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore implements DocumentStore on top of a MongoDB database.
// Templates and snippets live in separate collections; uniqueness of
// (tenant_id, name) is expected to be enforced by an index created at deploy
// time.
type MongoStore struct {
	templates *mongo.Collection
	snippets  *mongo.Collection
}

// NewMongoStore wraps an established database handle.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		templates: db.Collection("templates"),
		snippets:  db.Collection("snippets"),
	}
}

func (s *MongoStore) CreateTemplate(ctx context.Context, tpl *Template) error {
	if tpl == nil {
		return ErrNilDocument
	}
	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}
	now := time.Now().UTC()
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	tpl.UpdatedAt = now

	if _, err := s.templates.InsertOne(ctx, tpl); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateName
		}
		return errors.Join(ErrFailedToCreateDocument, err)
	}
	return nil
}

func (s *MongoStore) UpdateTemplate(ctx context.Context, tpl *Template) error {
	if tpl == nil {
		return ErrNilDocument
	}
	tpl.UpdatedAt = time.Now().UTC()

	res, err := s.templates.ReplaceOne(ctx, bson.M{"_id": tpl.ID, "tenant_id": tpl.TenantID}, tpl)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateName
		}
		return errors.Join(ErrFailedToUpdateDocument, err)
	}
	if res.MatchedCount == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (s *MongoStore) GetTemplate(ctx context.Context, tenantID, id uuid.UUID) (*Template, error) {
	var tpl Template
	err := s.templates.FindOne(ctx, bson.M{"_id": id, "tenant_id": tenantID}).Decode(&tpl)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTemplateNotFound
		}
		return nil, errors.Join(ErrFailedToQueryDocuments, err)
	}
	return &tpl, nil
}

func (s *MongoStore) ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]Template, error) {
	cur, err := s.templates.Find(ctx, bson.M{"tenant_id": tenantID})
	if err != nil {
		return nil, errors.Join(ErrFailedToQueryDocuments, err)
	}
	defer cur.Close(ctx)

	var out []Template
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Join(ErrFailedToQueryDocuments, err)
	}
	return out, nil
}

func (s *MongoStore) CreateSnippet(ctx context.Context, sn *Snippet) error {
	if sn == nil {
		return ErrNilDocument
	}
	if sn.ID == uuid.Nil {
		sn.ID = uuid.New()
	}
	now := time.Now().UTC()
	if sn.CreatedAt.IsZero() {
		sn.CreatedAt = now
	}
	sn.UpdatedAt = now

	if _, err := s.snippets.InsertOne(ctx, sn); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateName
		}
		return errors.Join(ErrFailedToCreateDocument, err)
	}
	return nil
}

func (s *MongoStore) GetSnippet(ctx context.Context, tenantID, id uuid.UUID) (*Snippet, error) {
	return s.findSnippet(ctx, bson.M{"_id": id, "tenant_id": tenantID})
}

func (s *MongoStore) FindSnippetByName(ctx context.Context, tenantID uuid.UUID, name string) (*Snippet, error) {
	// Collated lookup so it matches the case-insensitive uniqueness index.
	opts := options.FindOne().SetCollation(&options.Collation{Locale: "en", Strength: 2})
	return s.findSnippet(ctx, bson.M{"tenant_id": tenantID, "name": name}, opts)
}

func (s *MongoStore) ListSnippets(ctx context.Context, tenantID uuid.UUID) ([]Snippet, error) {
	cur, err := s.snippets.Find(ctx, bson.M{"tenant_id": tenantID})
	if err != nil {
		return nil, errors.Join(ErrFailedToQueryDocuments, err)
	}
	defer cur.Close(ctx)

	var out []Snippet
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Join(ErrFailedToQueryDocuments, err)
	}
	return out, nil
}

func (s *MongoStore) CountTemplates(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	n, err := s.templates.CountDocuments(ctx, bson.M{"tenant_id": tenantID})
	if err != nil {
		return 0, errors.Join(ErrFailedToCountDocuments, err)
	}
	return n, nil
}

func (s *MongoStore) CountSnippets(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	n, err := s.snippets.CountDocuments(ctx, bson.M{"tenant_id": tenantID})
	if err != nil {
		return 0, errors.Join(ErrFailedToCountDocuments, err)
	}
	return n, nil
}

func (s *MongoStore) findSnippet(ctx context.Context, filter bson.M, opts ...options.Lister[options.FindOneOptions]) (*Snippet, error) {
	var sn Snippet
	err := s.snippets.FindOne(ctx, filter, opts...).Decode(&sn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSnippetNotFound
		}
		return nil, errors.Join(ErrFailedToQueryDocuments, err)
	}
	return &sn, nil
}
