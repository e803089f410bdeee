package serializer

import (
	"encoding/json"
	"testing"

	"github.com/corray333/backend-labs/marketing/internal/service/models/orderitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOptions_NoMetadata(t *testing.T) {
	item := simpleItem(1, "MUG", "Mug")

	assert.Nil(t, NormalizeOptions(item, true))
	assert.Nil(t, NormalizeOptions(item, false))
}

func TestNormalizeOptions_Verbose(t *testing.T) {
	attrs := []orderitem.OptionAttribute{
		{Label: "Color", Value: "Red"},
		{Label: "Size", Value: "M"},
		{Label: "Color", Value: "Blue"},
	}
	item := configurableItem(1, "A", "A-RED", "Shirt", attrs...)

	opts := NormalizeOptions(item, true)

	require.NotNil(t, opts)
	assert.Equal(t, attrs, opts.LabelValues())

	raw, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"label":"Color","value":"Red"},{"label":"Size","value":"M"},{"label":"Color","value":"Blue"}]`, string(raw))
}

func TestNormalizeOptions_Flat(t *testing.T) {
	item := configurableItem(1, "A", "A-RED", "Shirt",
		orderitem.OptionAttribute{Label: "Color", Value: "Red"},
		orderitem.OptionAttribute{Label: "Size", Value: "M"},
		orderitem.OptionAttribute{Label: "Color", Value: "Blue"},
	)

	opts := NormalizeOptions(item, false)

	require.NotNil(t, opts)
	assert.False(t, opts.IsVerbose())
	assert.Equal(t, map[string]string{"Color": "Blue", "Size": "M"}, opts.Values())

	raw, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Color":"Blue","Size":"M"}`, string(raw))
}

func TestNormalizeOptions_EmptyAttributeList(t *testing.T) {
	item := configurableItem(1, "A", "A-RED", "Shirt")
	item.Options.AttributesInfo = []orderitem.OptionAttribute{}

	verbose := NormalizeOptions(item, true)
	require.NotNil(t, verbose)
	assert.Empty(t, verbose.LabelValues())

	flat := NormalizeOptions(item, false)
	require.NotNil(t, flat)
	assert.Empty(t, flat.Values())
}

func TestNormalizeOptions_DoesNotAliasInput(t *testing.T) {
	item := configurableItem(1, "A", "A-RED", "Shirt", orderitem.OptionAttribute{Label: "Color", Value: "Red"})

	opts := NormalizeOptions(item, true)
	item.Options.AttributesInfo[0].Value = "Green"

	assert.Equal(t, "Red", opts.LabelValues()[0].Value)
}
