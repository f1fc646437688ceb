package contentmanager_test

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cm "consulting-backend/internal/contentmanager"
)

func TestRenderForm(t *testing.T) {
	schema := cm.Schema{
		cm.Text("title", "Title").Require(),
		cm.TextArea("content", "Content"),
		cm.Select("type", "Type", cm.Option{Value: "full-time", Label: "Full time"}),
		cm.Number("sortOrder", "Order"),
		cm.URL("website", "Website"),
	}

	controls := cm.RenderForm(schema, cm.Record{"title": "Hello", "sortOrder": float64(3)})
	require.Len(t, controls, 5)

	assert.Equal(t, cm.Control{Element: "input", Type: "text", Name: "title", Label: "Title", Required: true, Value: "Hello"}, controls[0])
	assert.Equal(t, "textarea", controls[1].Element)
	assert.Equal(t, "select", controls[2].Element)
	assert.Equal(t, "Full time", controls[2].Options[0].Label)
	assert.Equal(t, "number", controls[3].Type)
	assert.Equal(t, "3", controls[3].Value)
	assert.Equal(t, "url", controls[4].Type)
}

func TestValidate(t *testing.T) {
	schema := cm.Schema{
		cm.Text("name", "Name").Require(),
		cm.Email("email", "Email"),
		cm.URL("site", "Site"),
		cm.Number("rating", "Rating"),
		cm.Select("type", "Type", cm.Choices("phone", "email")...),
	}

	err := cm.Validate(schema, cm.Record{
		"email":  "nope",
		"site":   "not a url",
		"rating": "five",
		"type":   "fax",
	})
	require.Error(t, err)

	errs, ok := err.(validation.Errors)
	require.True(t, ok)
	assert.Len(t, errs, 5)

	assert.NoError(t, cm.Validate(schema, cm.Record{
		"name":   "Ann",
		"email":  "ann@firm.vn",
		"site":   "https://firm.vn",
		"rating": float64(5),
		"type":   "phone",
	}))
}
