package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gimnasio/gym-system/internal/core/domain"
)

const collectionAccesorios = "accesorios"

// AccesorioRepository implements ports.AccesorioRepository.
// Items are stored with ObjectID hex strings as _id.
type AccesorioRepository struct {
	col *mongo.Collection
}

func NewAccesorioRepository(db *mongo.Database) *AccesorioRepository {
	return &AccesorioRepository{col: db.Collection(collectionAccesorios)}
}

// List returns the checklist in insertion order.
func (r *AccesorioRepository) List(ctx context.Context) ([]domain.Accesorio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find accesorios: %w", err)
	}
	defer cur.Close(ctx)

	items := []domain.Accesorio{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode accesorios: %w", err)
	}
	return items, nil
}

// Seed upserts items by nombre, inserting only the missing ones.
func (r *AccesorioRepository) Seed(ctx context.Context, items []domain.Accesorio) error {
	if len(items) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.BulkWrite(ctx, seedModels(items), options.BulkWrite().SetOrdered(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("seed accesorios: %w", err)
	}
	return nil
}

// seedModels builds one upsert per item that only writes on insert.
func seedModels(items []domain.Accesorio) []mongo.WriteModel {
	models := make([]mongo.WriteModel, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			it.ID = primitive.NewObjectID().Hex()
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"nombre": it.Nombre}).
			SetUpdate(bson.M{"$setOnInsert": bson.M{
				"_id":       it.ID,
				"esperados": it.Esperados,
				"contados":  it.Contados,
				"estado":    it.Estado,
				"obs":       it.Obs,
			}}).
			SetUpsert(true))
	}
	return models
}

func (r *AccesorioRepository) FindByID(ctx context.Context, id string) (*domain.Accesorio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var it domain.Accesorio
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&it); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccesorioNotFound
		}
		return nil, err
	}
	return &it, nil
}

// Update writes the mutable fields and returns the stored document.
func (r *AccesorioRepository) Update(ctx context.Context, item domain.Accesorio) (*domain.Accesorio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"estado":   item.Estado,
		"contados": item.Contados,
		"obs":      item.Obs,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out domain.Accesorio
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": item.ID}, update, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccesorioNotFound
		}
		return nil, fmt.Errorf("update accesorio: %w", err)
	}
	return &out, nil
}

// EnsureIndexes keeps item names unique.
func (r *AccesorioRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "nombre", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
