package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solemart/backend/internal/domain/shared/valueobject"
)

func usd(s string) valueobject.Money {
	m, err := valueobject.NewMoneyUSDFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

var (
	testSizes  = []string{"41", "42"}
	testColors = []string{"black"}
)

func TestNewProduct(t *testing.T) {
	t.Run("valid product", func(t *testing.T) {
		p, err := NewProduct("Leather Boot", "Classic boot", usd("89.99"), CategoryMen, testSizes, testColors)
		require.NoError(t, err)
		assert.Equal(t, "Leather Boot", p.Name)
		assert.True(t, p.InStock)
		assert.NotEqual(t, "", p.GetID().String())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewProduct("   ", "desc", usd("10"), CategoryMen, testSizes, testColors)
		assert.Error(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := NewProduct("Boot", "desc", usd("10"), Category("shoes"), testSizes, testColors)
		assert.Error(t, err)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := NewProduct("Boot", "desc", valueobject.NewMoneyUSD(decimal.NewFromInt(-1)), CategoryMen, testSizes, testColors)
		assert.Error(t, err)
	})

	t.Run("no sizes", func(t *testing.T) {
		_, err := NewProduct("Boot", "desc", usd("10"), CategoryMen, nil, testColors)
		assert.Error(t, err)
	})

	t.Run("no colors", func(t *testing.T) {
		_, err := NewProduct("Boot", "desc", usd("10"), CategoryMen, testSizes, []string{})
		assert.Error(t, err)
	})
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range AllCategories() {
		assert.True(t, c.IsValid(), string(c))
	}
	assert.False(t, Category("accessories").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestProductVariants(t *testing.T) {
	p, err := NewProduct("Sneaker", "", usd("49.99"), CategoryWomen, []string{"38", "39", "40"}, []string{"white", "black"})
	require.NoError(t, err)

	assert.True(t, p.HasSize("39"))
	assert.False(t, p.HasSize("42"))
	assert.False(t, p.HasSize(""))
	assert.True(t, p.HasColor("black"))
	assert.False(t, p.HasColor("red"))
	assert.False(t, p.HasColor(""))
}

func TestProductEffectivePrice(t *testing.T) {
	p, err := NewProduct("Slipper", "", usd("19.99"), CategorySlippers, testSizes, testColors)
	require.NoError(t, err)

	assert.Equal(t, "19.99", p.EffectivePrice().StringFixed(2))

	p.DiscountPercentage = 15
	assert.Equal(t, "16.99", p.EffectivePrice().StringFixed(2))

	p.DiscountPercentage = 100
	assert.Equal(t, "0.00", p.EffectivePrice().StringFixed(2))
}

func TestProductApplyUpdate(t *testing.T) {
	p, err := NewProduct("Boot", "old", usd("50.00"), CategoryMen, testSizes, testColors)
	require.NoError(t, err)
	initialVersion := p.GetVersion()

	t.Run("partial update leaves other fields", func(t *testing.T) {
		name := "Winter Boot"
		featured := true
		require.NoError(t, p.ApplyUpdate(ProductUpdate{Name: &name, Featured: &featured}))
		assert.Equal(t, "Winter Boot", p.Name)
		assert.Equal(t, "old", p.Description)
		assert.True(t, p.Featured)
		assert.Equal(t, initialVersion+1, p.GetVersion())
	})

	t.Run("invalid update rejected", func(t *testing.T) {
		bad := 120
		err := p.ApplyUpdate(ProductUpdate{DiscountPercentage: &bad})
		assert.Error(t, err)
	})

	t.Run("cannot drop all sizes", func(t *testing.T) {
		fresh, err := NewProduct("Boot", "", usd("50.00"), CategoryMen, testSizes, testColors)
		require.NoError(t, err)
		empty := []string{}
		assert.Error(t, fresh.ApplyUpdate(ProductUpdate{Sizes: &empty}))
		assert.Error(t, fresh.ApplyUpdate(ProductUpdate{Colors: &empty}))
	})
}
