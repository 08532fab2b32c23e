package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

func TestMemoryRoundTrip(t *testing.T) {
	c := NewMemory(time.Minute, 0)
	ctx := context.Background()

	_, ok := c.Get(ctx, "CCO")
	assert.False(t, ok)

	record := chemistry.IdentityRecord{
		RegistryNumber: "64-17-5",
		PreferredName:  "Ethanol",
		Source:         chemistry.SourcePrimaryDatabase,
		Confidence:     chemistry.ConfidenceHigh,
	}
	c.Set(ctx, "CCO", record)

	got, ok := c.Get(ctx, "CCO")
	require.True(t, ok)
	assert.Equal(t, record, got)
}

func TestMemoryExpiry(t *testing.T) {
	c := NewMemory(10*time.Millisecond, 0)
	ctx := context.Background()

	c.Set(ctx, "CCO", chemistry.IdentityRecord{RegistryNumber: "64-17-5"})
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get(ctx, "CCO")
	assert.False(t, ok)
}

func TestMemoryKeysAreIndependent(t *testing.T) {
	c := NewMemory(time.Minute, 0)
	ctx := context.Background()

	c.Set(ctx, "CCO", chemistry.IdentityRecord{PreferredName: "Ethanol"})
	c.Set(ctx, "CCN", chemistry.IdentityRecord{PreferredName: "Ethylamine"})

	a, _ := c.Get(ctx, "CCO")
	b, _ := c.Get(ctx, "CCN")
	assert.NotEqual(t, a.PreferredName, b.PreferredName)
}
