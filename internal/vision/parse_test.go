package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDCardText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ExtractedFields
	}{
		{
			name: "all three fields",
			raw:  "Name: Jane Doe\nID: 10293847\nCollege: Example University",
			want: ExtractedFields{
				Name:          "Jane Doe",
				StudentID:     "10293847",
				CollegeName:   "Example University",
				RawConfidence: 1.0,
			},
		},
		{
			name: "labels are case-insensitive",
			raw:  "NAME: Jane Doe\nStudent ID: 99\nUNIVERSITY: Tech Institute",
			want: ExtractedFields{
				Name:          "Jane Doe",
				StudentID:     "99",
				CollegeName:   "Tech Institute",
				RawConfidence: 1.0,
			},
		},
		{
			name: "last matching line wins",
			raw:  "Name: First Guess\nsome other text\nName: Second Guess",
			want: ExtractedFields{
				Name:          "Second Guess",
				RawConfidence: 1.0 / 3,
			},
		},
		{
			name: "value is trimmed after the first colon",
			raw:  "College:   Example University: Main Campus  ",
			want: ExtractedFields{
				CollegeName:   "Example University: Main Campus",
				RawConfidence: 1.0 / 3,
			},
		},
		{
			name: "partial extraction scores two thirds",
			raw:  "Name: Jane Doe\nID: 123\nsomething unlabeled",
			want: ExtractedFields{
				Name:          "Jane Doe",
				StudentID:     "123",
				RawConfidence: 2.0 / 3,
			},
		},
		{
			name: "no labels at all",
			raw:  "lorem ipsum\ndolor sit amet",
			want: ExtractedFields{RawConfidence: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIDCardText(tt.raw)
			assert.Equal(t, tt.want.Name, got.Name)
			assert.Equal(t, tt.want.StudentID, got.StudentID)
			assert.Equal(t, tt.want.CollegeName, got.CollegeName)
			assert.InDelta(t, tt.want.RawConfidence, got.RawConfidence, 1e-9)
		})
	}
}

func TestParseIDCardTextEmpty(t *testing.T) {
	got := ParseIDCardText("just noise")
	require.True(t, got.Empty())
	assert.Zero(t, got.RawConfidence)
}

func TestValidateDocument(t *testing.T) {
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)
	jpeg := append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 64)...)
	pdf := append([]byte("%PDF-1.4\n"), make([]byte, 64)...)

	assert.NoError(t, ValidateDocument(png))
	assert.NoError(t, ValidateDocument(jpeg))
	assert.NoError(t, ValidateDocument(pdf))

	assert.ErrorIs(t, ValidateDocument(nil), ErrBadDocument)
	assert.ErrorIs(t, ValidateDocument([]byte("plain text file")), ErrBadDocument)

	big := make([]byte, MaxDocumentSize+1)
	copy(big, png)
	assert.ErrorIs(t, ValidateDocument(big), ErrBadDocument)
}
