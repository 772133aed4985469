package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, "2.0", parsed.Swagger)

	for _, path := range []string{"/", "/tag/{tag}/", "/{year}/{month}/{day}/{slug}/", "/posts/{id}/comments/"} {
		require.Contains(t, parsed.Paths, path)
		assert.Contains(t, parsed.Paths[path], "get", path)
	}
}
