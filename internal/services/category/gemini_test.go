package category

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordhunt/internal/model"
)

func TestParseGenerated(t *testing.T) {
	c, err := parseGenerated(`{"id":"Deep Sea","name":"Deep Sea","words":["squid","kelp"]}`, "the deep sea")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryID("deep-sea"), c.ID)
	assert.Equal(t, []string{"squid", "kelp"}, c.Words)
}

func TestParseGeneratedDerivesIDAndName(t *testing.T) {
	c, err := parseGenerated(`{"words":["squid"]}`, "  Under the Sea! ")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryID("under-the-sea"), c.ID)
	assert.Equal(t, "  Under the Sea! ", c.Name)
}

func TestParseGeneratedInvalidJSON(t *testing.T) {
	_, err := parseGenerated("not json", "sea")
	assert.Error(t, err)
}

func TestGeminiGenerate(t *testing.T) {
	projectID := os.Getenv("GCP_PROJECT_ID")
	if projectID == "" {
		t.Skip("GCP_PROJECT_ID not set, skipping integration test")
	}

	ctx := context.Background()
	gen, err := NewGeminiGenerator(ctx, projectID, os.Getenv("GCP_REGION"))
	require.NoError(t, err)

	c, err := gen.Generate(ctx, "kitchen utensils", model.WordsPerCategory, 15)
	require.NoError(t, err)
	require.NoError(t, Normalize(c))

	t.Logf("Generated %s: %v", c.ID, c.Words)
	assert.NotEmpty(t, c.Words)
}
