package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/leaddesk/leads-api/internal/core/domain"
	"github.com/leaddesk/leads-api/internal/core/ports"
)

const collectionLeads = "leads"

var _ ports.LeadRepository = (*LeadRepository)(nil)

// LeadRepository implements ports.LeadRepository using MongoDB.
type LeadRepository struct {
	col *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{col: db.Collection(collectionLeads)}
}

type noteDocument struct {
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"createdAt"`
}

type leadDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Message   string             `bson:"message"`
	Source    string             `bson:"source"`
	Status    string             `bson:"status"`
	Notes     []noteDocument     `bson:"notes"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d leadDocument) toDomain() *domain.Lead {
	notes := make([]domain.Note, 0, len(d.Notes))
	for _, n := range d.Notes {
		notes = append(notes, domain.Note{Text: n.Text, CreatedAt: n.CreatedAt.UTC()})
	}
	return &domain.Lead{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Message:   d.Message,
		Source:    d.Source,
		Status:    domain.LeadStatus(d.Status),
		Notes:     notes,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// Create inserts a new lead document with a freshly generated id.
func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := leadDocument{
		ID:        primitive.NewObjectID(),
		Name:      l.Name,
		Email:     l.Email,
		Message:   l.Message,
		Source:    l.Source,
		Status:    string(l.Status),
		Notes:     []noteDocument{},
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns leads matching filter, newest first.
func (r *LeadRepository) List(ctx context.Context, filter ports.ListLeadsFilter) ([]*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, buildListFilter(filter),
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find leads: %w", err)
	}

	var docs []leadDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}

	leads := make([]*domain.Lead, 0, len(docs))
	for _, d := range docs {
		leads = append(leads, d.toDomain())
	}
	return leads, nil
}

func buildListFilter(f ports.ListLeadsFilter) bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
			bson.M{"message": re},
		}
	}
	return q
}

// SetStatus replaces the lead's status in a single findOneAndUpdate.
func (r *LeadRepository) SetStatus(ctx context.Context, id string, status domain.LeadStatus, at time.Time) (*domain.Lead, error) {
	return r.findAndUpdate(ctx, id, bson.M{
		"$set": bson.M{"status": string(status), "updatedAt": at},
	})
}

// PushNote prepends note with $push/$position so the append happens inside
// the server; concurrent writers cannot clobber each other's notes.
func (r *LeadRepository) PushNote(ctx context.Context, id string, note domain.Note) (*domain.Lead, error) {
	return r.findAndUpdate(ctx, id, bson.M{
		"$push": bson.M{
			"notes": bson.M{
				"$each":     bson.A{noteDocument{Text: note.Text, CreatedAt: note.CreatedAt}},
				"$position": 0,
			},
		},
		"$set": bson.M{"updatedAt": note.CreatedAt},
	})
}

func (r *LeadRepository) findAndUpdate(ctx context.Context, id string, update bson.M) (*domain.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id can never match a stored lead
		return nil, domain.ErrLeadNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc leadDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("update lead %s: %w", id, err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the indexes backing the list queries.
func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
