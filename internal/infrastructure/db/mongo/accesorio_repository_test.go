package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gimnasio/gym-system/internal/core/domain"
)

func TestSeedModels_UpsertByNombreOnInsertOnly(t *testing.T) {
	items := domain.DefaultAccesorios()
	models := seedModels(items)
	require.Len(t, models, len(items))

	m, ok := models[0].(*mongo.UpdateOneModel)
	require.True(t, ok)
	require.NotNil(t, m.Upsert)
	assert.True(t, *m.Upsert)
	assert.Equal(t, bson.M{"nombre": items[0].Nombre}, m.Filter)

	update, ok := m.Update.(bson.M)
	require.True(t, ok)
	require.Len(t, update, 1)
	onInsert, ok := update["$setOnInsert"].(bson.M)
	require.True(t, ok, "existing items must never be overwritten")
	assert.NotEmpty(t, onInsert["_id"])
	assert.Equal(t, items[0].Esperados, onInsert["esperados"])
}
