package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderEmitsCellsInHeaderOrder(t *testing.T) {
	exporter := NewCSVExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"Code", "Title", "Room"},
		Rows: []map[string]string{
			{"Code": "191CAC701T", "Title": "Deep Learning", "Room": "A-204"},
			{"Title": "Counseling", "Code": "COUN"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Code,Title,Room\n191CAC701T,Deep Learning,A-204\nCOUN,Counseling,\n", string(out))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}
