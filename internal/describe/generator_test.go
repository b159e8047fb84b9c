package describe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ecofinds/internal/domain/listing"
)

func TestNewGenerator_NoAPIKey(t *testing.T) {
	gen, err := NewGenerator(context.Background(), "", "")

	require.NoError(t, err)
	require.NotNil(t, gen)
	assert.Equal(t, defaultModel, gen.model)
	assert.Nil(t, gen.client)
}

func TestNewGenerator_CustomModel(t *testing.T) {
	gen, err := NewGenerator(context.Background(), "", "gemini-2.0-flash")

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", gen.model)
}

func TestGenerator_Description_Disabled(t *testing.T) {
	gen, err := NewGenerator(context.Background(), "", "")
	require.NoError(t, err)

	got := gen.Description(context.Background(), "Vintage Leather Armchair", listing.CategoryFurniture)

	assert.Equal(t, unavailableMessage, got)
}

func TestGenerator_Description_ZeroValue(t *testing.T) {
	var gen Generator

	got := gen.Description(context.Background(), "Mountain Bike", listing.CategoryOther)

	assert.Equal(t, unavailableMessage, got)
}
