package routing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skyroutes/planner/backend/internal/domain"
)

func conn(origin, destination domain.LocationID, duration, cost float64) domain.Connection {
	return domain.Connection{
		Origin:        origin,
		Destination:   destination,
		Carrier:       "TestAir",
		DurationHours: duration,
		CostAmount:    cost,
	}
}

func TestStoreUpsertReplacesOrderedPair(t *testing.T) {
	store := NewStore()
	store.Upsert(conn("Toronto", "London", 7.2, 520))
	store.Upsert(conn("Toronto", "London", 7.0, 500))

	got, ok := store.Connection("Toronto", "London")
	require.True(t, ok)
	require.Equal(t, 7.0, got.DurationHours)
	require.Equal(t, 500.0, got.CostAmount)
	require.Len(t, store.AllConnections(), 1)
}

func TestStoreLocationSetCoversBothEndpoints(t *testing.T) {
	store := NewStore()
	store.Upsert(conn("Toronto", "NewYork", 1.5, 220))

	require.True(t, store.HasLocation("Toronto"))
	require.True(t, store.HasLocation("NewYork"))
	require.False(t, store.HasLocation("Paris"))
	require.Equal(t, []domain.LocationID{"NewYork", "Toronto"}, store.Locations())
}

func TestStoreReplaceIsWholesale(t *testing.T) {
	store := NewStore()
	store.Upsert(conn("Toronto", "NewYork", 1.5, 220))
	store.Upsert(conn("NewYork", "London", 6.8, 480))

	store.Replace([]domain.Connection{conn("Paris", "Rome", 2.0, 160)})

	require.False(t, store.HasLocation("Toronto"))
	require.True(t, store.HasLocation("Rome"))
	require.Len(t, store.AllConnections(), 1)
}

func TestStoreClear(t *testing.T) {
	store := NewStore()
	store.Upsert(conn("Toronto", "NewYork", 1.5, 220))
	store.Clear()

	require.Empty(t, store.AllConnections())
	require.Empty(t, store.Locations())
	require.Nil(t, store.ConnectionsFrom("Toronto"))
}

func TestStoreConnectionsFromSorted(t *testing.T) {
	store := NewStore()
	store.Upsert(conn("Toronto", "NewYork", 1.5, 220))
	store.Upsert(conn("Toronto", "Frankfurt", 7.5, 540))
	store.Upsert(conn("Toronto", "London", 7.2, 520))

	out := store.ConnectionsFrom("Toronto")
	require.Len(t, out, 3)
	require.Equal(t, domain.LocationID("Frankfurt"), out[0].Destination)
	require.Equal(t, domain.LocationID("London"), out[1].Destination)
	require.Equal(t, domain.LocationID("NewYork"), out[2].Destination)
}
