package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gimnasio/gym-system/internal/core/domain"
)

const collectionSocios = "socios"

// SocioDirectory implements ports.SocioDirectory on the socios collection.
type SocioDirectory struct {
	col *mongo.Collection
	now func() time.Time
}

func NewSocioDirectory(db *mongo.Database) *SocioDirectory {
	return &SocioDirectory{col: db.Collection(collectionSocios), now: time.Now}
}

type mongoSocio struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Nombre            string             `bson:"nombre,omitempty"`
	Nombres           string             `bson:"nombres,omitempty"`
	Apellidos         string             `bson:"apellidos,omitempty"`
	Email             string             `bson:"email,omitempty"`
	Telefono          string             `bson:"telefono,omitempty"`
	Direccion         string             `bson:"direccion,omitempty"`
	FechaNacimiento   string             `bson:"fechaNacimiento,omitempty"`
	Genero            string             `bson:"genero,omitempty"`
	TipoMembresia     string             `bson:"tipoMembresia,omitempty"`
	Estado            string             `bson:"estado,omitempty"`
	PhotoURL          string             `bson:"photoURL,omitempty"`
	FechaRegistro     time.Time          `bson:"fechaRegistro"`
	FechaModificacion *time.Time         `bson:"fechaModificacion,omitempty"`
}

func toMongoSocio(s domain.Socio) mongoSocio {
	return mongoSocio{
		Nombre:            s.Nombre,
		Nombres:           s.Nombres,
		Apellidos:         s.Apellidos,
		Email:             s.Email,
		Telefono:          s.Telefono,
		Direccion:         s.Direccion,
		FechaNacimiento:   s.FechaNacimiento,
		Genero:            s.Genero,
		TipoMembresia:     string(s.TipoMembresia),
		Estado:            string(s.Estado),
		PhotoURL:          s.PhotoURL,
		FechaRegistro:     s.FechaRegistro,
		FechaModificacion: s.FechaModificacion,
	}
}

func (m mongoSocio) toDomain() domain.Socio {
	return domain.Socio{
		ID:                m.ID.Hex(),
		Nombre:            m.Nombre,
		Nombres:           m.Nombres,
		Apellidos:         m.Apellidos,
		Email:             m.Email,
		Telefono:          m.Telefono,
		Direccion:         m.Direccion,
		FechaNacimiento:   m.FechaNacimiento,
		Genero:            m.Genero,
		TipoMembresia:     domain.MembershipTier(m.TipoMembresia),
		Estado:            domain.SocioStatus(m.Estado),
		PhotoURL:          m.PhotoURL,
		FechaRegistro:     m.FechaRegistro,
		FechaModificacion: m.FechaModificacion,
	}
}

// Create inserts a member. The directory assigns the id and registration
// date, and every new member starts Activo.
func (r *SocioDirectory) Create(ctx context.Context, s domain.Socio) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoSocio(s)
	doc.ID = primitive.NewObjectID()
	doc.Estado = string(domain.StatusActivo)
	doc.FechaRegistro = r.now().UTC()
	doc.FechaModificacion = nil

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert socio: %w", err)
	}
	return doc.ID.Hex(), nil
}

// GetAll returns every member ordered by registration date, newest first.
func (r *SocioDirectory) GetAll(ctx context.Context) ([]domain.Socio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "fechaRegistro", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find socios: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoSocio
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode socios: %w", err)
	}

	socios := make([]domain.Socio, 0, len(docs))
	for _, d := range docs {
		socios = append(socios, d.toDomain())
	}
	return socios, nil
}

// Update merges the patch fields and stamps fechaModificacion.
func (r *SocioDirectory) Update(ctx context.Context, id string, patch domain.SocioPatch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSocioNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := patchSet(patch)
	set["fechaModificacion"] = r.now().UTC()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update socio: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSocioNotFound
	}
	return nil
}

// Delete removes a member permanently.
func (r *SocioDirectory) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSocioNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete socio: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSocioNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the roster queries rely on.
func (r *SocioDirectory) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "fechaRegistro", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "estado", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// patchSet builds the $set document for the non-nil patch fields.
func patchSet(p domain.SocioPatch) bson.M {
	set := bson.M{}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("nombre", p.Nombre)
	put("nombres", p.Nombres)
	put("apellidos", p.Apellidos)
	put("email", p.Email)
	put("telefono", p.Telefono)
	put("direccion", p.Direccion)
	put("fechaNacimiento", p.FechaNacimiento)
	put("genero", p.Genero)
	put("photoURL", p.PhotoURL)
	if p.TipoMembresia != nil {
		set["tipoMembresia"] = string(*p.TipoMembresia)
	}
	if p.Estado != nil {
		set["estado"] = string(*p.Estado)
	}
	return set
}
