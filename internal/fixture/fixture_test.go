package fixture

import (
	"path/filepath"
	"testing"

	"github.com/Veraticus/gilded-rose/internal/common"
	"github.com/Veraticus/gilded-rose/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	items, err := Load(filepath.Join("testdata", "shop.yaml"))
	require.NoError(t, err)

	if diff := cmp.Diff(Default(), items); diff != "" {
		t.Errorf("fixture mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read fixture")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errMsg  string
		want    []model.Item
		wantErr bool
	}{
		{
			name: "single item",
			input: `items:
  - name: Aged Brie
    sell_in: 2
    quality: 0
`,
			want: []model.Item{model.NewItem("Aged Brie", 2, 0)},
		},
		{
			name:  "no items",
			input: "items: []\n",
			want:  []model.Item{},
		},
		{
			name:  "items key absent",
			input: "{}\n",
			want:  []model.Item{},
		},
		{
			name: "legendary above fifty",
			input: `items:
  - name: Sulfuras, Hand of Ragnaros
    sell_in: 0
    quality: 80
`,
			want: []model.Item{model.NewItem("Sulfuras, Hand of Ragnaros", 0, 80)},
		},
		{
			name:    "empty document",
			input:   "",
			wantErr: true,
			errMsg:  "empty document",
		},
		{
			name: "quality above fifty",
			input: `items:
  - name: Aged Brie
    sell_in: 2
    quality: 0
  - name: Elixir of the Mongoose
    sell_in: 5
    quality: 51
`,
			wantErr: true,
			errMsg:  "item at index 1",
		},
		{
			name: "missing name",
			input: `items:
  - sell_in: 5
    quality: 5
`,
			wantErr: true,
			errMsg:  "item name is required",
		},
		{
			name: "unknown field",
			input: `items:
  - name: Aged Brie
    sellin: 2
`,
			wantErr: true,
			errMsg:  "sellin",
		},
		{
			name:    "malformed yaml",
			input:   "items: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidFixture)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarshal_RoundTripsDefault(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	assert.Contains(t, string(data), "sell_in: -1")

	items, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), items)
}
