package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"guesthouse/infras/otel/mocks"
	"guesthouse/infras/pdf"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "ascii kept", value: "Room 101", want: "Room 101"},
		{name: "cyrillic transliterated", value: "Отчет", want: "Otchet"},
		{name: "accents dropped", value: "Café Zoë", want: "Cafe Zoe"},
		{name: "trimmed", value: "  suite ", want: "suite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pdf.Text(tt.value))
		})
	}
}

func TestRenderer_Render(t *testing.T) {
	renderer := pdf.New(mocks.NewOtel())

	body, err := renderer.Render(context.Background(), pdf.Document{
		Title:    "Статистика комнат",
		Subtitle: "March 2025",
		Sections: []pdf.Section{
			{
				Heading:    "Rooms",
				Paragraphs: []string{"All confirmed bookings."},
				Table: &pdf.Table{
					Headers: []string{"Room", "Type", "Revenue"},
					Rows: [][]string{
						{"101", "Люкс", "1200.00"},
						{"102"},
					},
				},
			},
			{Heading: "Empty", Table: &pdf.Table{Headers: []string{"Status", "Count"}}},
		},
	})

	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}
