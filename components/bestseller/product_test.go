package bestseller

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestsellerProductImageUsesStoredBlock(t *testing.T) {
	product := NewBestsellerProduct(&Product{ID: "5"})
	product.SetBlock(fakeBlock{name: "stored"})

	html, err := product.ImageHTML(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "stored:5:"+ImagePresetWidgetGrid, html)
}

func TestBestsellerProductOverrideWins(t *testing.T) {
	product := NewBestsellerProduct(&Product{ID: "5"})
	product.SetBlock(fakeBlock{name: "stored"})

	html, err := product.ImageHTML(context.Background(), fakeBlock{name: "override"})
	require.NoError(t, err)
	assert.Equal(t, "override:5:"+ImagePresetWidgetGrid, html)
}

func TestBestsellerProductWithoutBlock(t *testing.T) {
	product := NewBestsellerProduct(&Product{ID: "5"})

	_, err := product.ImageHTML(context.Background(), nil)
	assert.ErrorIs(t, err, ErrBlockMissing)

	_, err = product.CartPostData(JSONPostDataHelper{}, nil)
	assert.ErrorIs(t, err, ErrBlockMissing)
}

func TestBestsellerProductCartPostData(t *testing.T) {
	product := NewBestsellerProduct(&Product{ID: "42"})
	product.SetBlock(fakeBlock{name: "stored"})

	raw, err := product.CartPostData(JSONPostDataHelper{}, nil)
	require.NoError(t, err)

	var payload struct {
		Action string            `json:"action"`
		Data   map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	assert.Equal(t, "/stored/cart/42", payload.Action)
	assert.Equal(t, map[string]string{"product": "42"}, payload.Data)

	raw, err = product.CartPostData(JSONPostDataHelper{}, fakeBlock{name: "other"})
	require.NoError(t, err)
	assert.Contains(t, raw, "/other/cart/42")

	_, err = product.CartPostData(nil, nil)
	assert.ErrorIs(t, err, ErrPostHelperMissing)
}

func TestBestsellerProductHasRequiredOptions(t *testing.T) {
	assert.False(t, NewBestsellerProduct(&Product{ID: "1", TypeID: "simple"}).HasRequiredOptions())
	assert.True(t, NewBestsellerProduct(&Product{ID: "1", TypeID: "configurable"}).HasRequiredOptions())
	assert.True(t, NewBestsellerProduct(&Product{ID: "1", TypeID: "simple", RequiredOptions: true}).HasRequiredOptions())
}

func TestProductIdentities(t *testing.T) {
	assert.Equal(t, []string{"cat_p_9"}, (&Product{ID: "9"}).Identities())
	assert.Nil(t, (&Product{}).Identities())
}
