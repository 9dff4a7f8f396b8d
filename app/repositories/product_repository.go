package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/kidstore/app/models"
	"github.com/shashiranjanraj/kidstore/config"
	"github.com/shashiranjanraj/kidstore/pkg/logger"
	"github.com/shashiranjanraj/kidstore/pkg/metrics"
)

// ProductRepository is the catalog gateway over the `products` collection.
// Construct it explicitly and inject it where needed; it holds no global state.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(config.ProductCollection())}
}

// productDoc pairs the store-assigned _id with the inlined product fields.
// Product.ID itself is bson:"-" so identity never leaks into the document body.
type productDoc struct {
	OID            primitive.ObjectID `bson:"_id"`
	models.Product `bson:",inline"`
}

func (d productDoc) toModel() models.Product {
	p := d.Product
	p.ID = d.OID.Hex()
	return p
}

// ─── CRUD ─────────────────────────────────────────────────────────────────────

// AddProduct inserts p and returns the store-assigned id as a hex string.
func (r *ProductRepository) AddProduct(ctx context.Context, p models.Product) (string, error) {
	defer metrics.ObserveStoreOp("insert", time.Now())

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("product repository: insert: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("product repository: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// GetProducts returns the full catalog snapshot.
func (r *ProductRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveStoreOp("find", time.Now())

	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("product repository: find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("product repository: decode: %w", err)
	}

	products := make([]models.Product, len(docs))
	for i, d := range docs {
		products[i] = d.toModel()
	}
	return products, nil
}

// GetProductByID returns the product, or nil,nil when the id does not exist.
// A malformed id is treated the same as a missing document.
func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	defer metrics.ObserveStoreOp("find", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc productDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("product repository: find %s: %w", id, err)
	}
	p := doc.toModel()
	return &p, nil
}

// UpdateProduct merges only the supplied fields into the document.
func (r *ProductRepository) UpdateProduct(ctx context.Context, id string, fields map[string]any) error {
	defer metrics.ObserveStoreOp("update", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("product repository: update: bad id %q", id)
	}
	if len(fields) == 0 {
		return nil
	}

	_, err = r.col.UpdateByID(ctx, oid, buildSetUpdate(fields))
	if err != nil {
		return fmt.Errorf("product repository: update %s: %w", id, err)
	}
	return nil
}

// DeleteProduct hard-deletes the document. Deleting a missing id is not an
// error; the end state is identical.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp("delete", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	_, err = r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("product repository: delete %s: %w", id, err)
	}
	return nil
}

// buildSetUpdate wraps a field map in a $set so an update can never replace
// the whole document.
func buildSetUpdate(fields map[string]any) bson.M {
	set := bson.M{}
	for k, v := range fields {
		if k == "_id" || k == "id" {
			continue // identity is immutable
		}
		set[k] = v
	}
	return bson.M{"$set": set}
}

// ─── Live snapshots ───────────────────────────────────────────────────────────

// Subscription delivers full catalog snapshots: the current one immediately,
// then a fresh one after every collection change, until Close is called.
type Subscription struct {
	ch     chan []models.Product
	cancel context.CancelFunc
}

// C is the snapshot channel. It is closed when the subscription ends.
// Only the latest snapshot is retained; slow consumers skip intermediates.
func (s *Subscription) C() <-chan []models.Product { return s.ch }

// Close ends the subscription and closes C.
func (s *Subscription) Close() { s.cancel() }

// Subscribe opens a change stream on the collection and returns a live
// snapshot sequence. The initial snapshot is fetched before returning, so a
// subscriber always sees the current catalog first.
func (r *ProductRepository) Subscribe(ctx context.Context) (*Subscription, error) {
	defer metrics.ObserveStoreOp("watch", time.Now())

	stream, err := r.col.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("product repository: watch: %w", err)
	}

	initial, err := r.GetProducts(ctx)
	if err != nil {
		_ = stream.Close(ctx)
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		ch:     make(chan []models.Product, 1),
		cancel: cancel,
	}
	sub.push(initial)

	go func() {
		defer close(sub.ch)
		defer stream.Close(context.Background())

		for stream.Next(subCtx) {
			snapshot, err := r.GetProducts(subCtx)
			if err != nil {
				logger.Warn("product subscription: snapshot refresh failed", "error", err)
				continue
			}
			sub.push(snapshot)
		}
	}()

	return sub, nil
}

// push replaces any undelivered snapshot with the newest one.
func (s *Subscription) push(snapshot []models.Product) {
	for {
		select {
		case s.ch <- snapshot:
			return
		default:
			select {
			case <-s.ch: // discard the stale snapshot
			default:
			}
		}
	}
}
