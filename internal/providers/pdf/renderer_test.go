package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPDF(t *testing.T) {
	doc := Document{
		Title:  "PROFORMA INVOICE",
		Number: "PI-001",
		Date:   "2025-06-01",
		Sections: []Section{
			{Title: "Consignee", Fields: []Field{{Label: "Consignee", Value: "Acme Trading"}, {Label: "Country", Value: "India"}, {Label: "Port", Value: ""}}},
			{Title: "Empty", Fields: []Field{{Label: "Vessel", Value: ""}}},
		},
		Lines: []Line{{Description: "Raw cashew", Quantity: "20", Unit: "MT", Price: "310.00", Amount: "6200.00"}},
		Total: "6200.00",
		Notes: []Field{{Label: "Remarks", Value: "Net 30"}},
	}

	out, err := New().Render(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderRequiresTitle(t *testing.T) {
	_, err := New().Render(context.Background(), Document{})
	assert.Error(t, err)
}

func TestSectionVisible(t *testing.T) {
	s := Section{Fields: []Field{{Label: "A", Value: "1"}, {Label: "B"}, {Label: "C", Value: "3"}}}
	assert.Equal(t, []Field{{Label: "A", Value: "1"}, {Label: "C", Value: "3"}}, s.Visible())
}
