package catalog_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"starfolk-client/internal/fetch"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const fullList = `[
	{"id":1,"name":"Luke Skywalker","faction":"rebel","description":"Jedi"},
	{"id":2,"name":"Leia Organa","faction":"rebel","description":"Princess"},
	{"id":3,"name":"Darth Vader","faction":"empire","description":"Sith"},
	{"id":7,"name":"Lando Calrissian"}
]`

func TestFeatured_PrefersConfiguredNamesAndHydrates(t *testing.T) {
	svc, transport := newService(t, &fakeClock{t: time.Now()})

	transport.EXPECT().
		Fetch(gomock.Any(), "/characters", 10*time.Second).
		Return(json.RawMessage(fullList), nil)
	transport.EXPECT().
		Fetch(gomock.Any(), "/characters/7", gomock.Any()).
		Return(json.RawMessage(`{"id":7,"name":"Lando Calrissian","faction":"rebel","description":"Baron"}`), nil)

	got, err := svc.Featured(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "Lando Calrissian", got[0].Name)
	require.Equal(t, "Leia Organa", got[1].Name)
	require.Equal(t, "Darth Vader", got[2].Name)
	require.NotNil(t, got[0].Faction)
	require.Equal(t, "rebel", *got[0].Faction)
}

func TestFeatured_FallsBackToFirstEntries(t *testing.T) {
	svc, transport := newService(t, &fakeClock{t: time.Now()})

	transport.EXPECT().
		Fetch(gomock.Any(), "/characters", gomock.Any()).
		Return(json.RawMessage(`[
			{"id":1,"name":"Luke Skywalker","faction":"rebel","description":"Jedi"},
			{"id":5,"name":"Yoda","faction":"rebel","description":"Master"},
			{"id":4,"name":"Han Solo","faction":"rebel","description":"Smuggler"},
			{"id":6,"name":"Obi-Wan Kenobi","faction":"rebel","description":"Mentor"}
		]`), nil)

	got, err := svc.Featured(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []int{1, 5, 4}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestFeatured_HydrationFailureKeepsSummary(t *testing.T) {
	svc, transport := newService(t, &fakeClock{t: time.Now()})

	transport.EXPECT().
		Fetch(gomock.Any(), "/characters", gomock.Any()).
		Return(json.RawMessage(fullList), nil)
	transport.EXPECT().
		Fetch(gomock.Any(), "/characters/7", gomock.Any()).
		Return(nil, &fetch.StatusError{Code: 500})

	got, err := svc.Featured(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Lando Calrissian", got[0].Name)
	require.Nil(t, got[0].Faction)
}

func TestFeatured_ListFailure(t *testing.T) {
	svc, transport := newService(t, &fakeClock{t: time.Now()})

	transport.EXPECT().
		Fetch(gomock.Any(), "/characters", gomock.Any()).
		Return(nil, fetch.ErrNetwork)

	_, err := svc.Featured(context.Background())
	require.ErrorIs(t, err, fetch.ErrNetwork)
}
