package master

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktravel/worktravel-api/internal/domain/location"
)

type fakeLocationRepo struct {
	byName map[string]location.Location
}

func newFakeLocationRepo(locs ...location.Location) *fakeLocationRepo {
	r := &fakeLocationRepo{byName: map[string]location.Location{}}
	for _, l := range locs {
		r.byName[location.NormalizeName(l.CityName)] = l
	}
	return r
}

func (r *fakeLocationRepo) Create(ctx context.Context, l location.Location) (location.Location, error) {
	key := location.NormalizeName(l.CityName)
	if _, ok := r.byName[key]; ok {
		return location.Location{}, &pgconn.PgError{Code: "23505"}
	}
	l.ID = "id-" + key
	r.byName[key] = l
	return l, nil
}

func (r *fakeLocationRepo) GetByCityName(ctx context.Context, cityName string) (location.Location, error) {
	l, ok := r.byName[location.NormalizeName(cityName)]
	if !ok {
		return location.Location{}, location.ErrLocationNotFound
	}
	return l, nil
}

func (r *fakeLocationRepo) GetByCityNameForUpdate(ctx context.Context, cityName string) (location.Location, error) {
	if !inTx(ctx) {
		return location.Location{}, errors.New("row lock taken outside a transaction")
	}
	return r.GetByCityName(ctx, cityName)
}

func (r *fakeLocationRepo) List(ctx context.Context) ([]location.Location, error) {
	out := make([]location.Location, 0, len(r.byName))
	for _, l := range r.byName {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CityName < out[j].CityName })
	return out, nil
}

func (r *fakeLocationRepo) Update(ctx context.Context, req location.UpdateLocationRequest) (location.Location, error) {
	key := location.NormalizeName(req.CityName)
	l, ok := r.byName[key]
	if !ok {
		return location.Location{}, location.ErrLocationNotFound
	}
	if req.DistanceKm != nil {
		l.DistanceKm = *req.DistanceKm
	}
	if req.TravelTimeMinutes != nil {
		l.TravelTimeMinutes = *req.TravelTimeMinutes
	}
	if req.NewCityName != nil {
		delete(r.byName, key)
		l.CityName = *req.NewCityName
		key = location.NormalizeName(l.CityName)
	}
	r.byName[key] = l
	return l, nil
}

func (r *fakeLocationRepo) Delete(ctx context.Context, cityName string) error {
	key := location.NormalizeName(cityName)
	if _, ok := r.byName[key]; !ok {
		return location.ErrLocationNotFound
	}
	delete(r.byName, key)
	return nil
}

type fakeUsage map[string]int

func (u fakeUsage) CountByCityName(ctx context.Context, cityName string) (int, error) {
	return u[cityName], nil
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

type directTx struct {
	calls int
}

func (d *directTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	d.calls++
	return fn(context.WithValue(ctx, txKey{}, true))
}

func TestCreateLocation(t *testing.T) {
	ctx := context.Background()
	svc := NewMasterService(newFakeLocationRepo(), fakeUsage{}, &directTx{})

	resp, err := svc.CreateLocation(ctx, location.CreateLocationRequest{CityName: " Milano ", DistanceKm: 150, TravelTimeMinutes: 90})
	require.NoError(t, err)
	assert.Equal(t, "Milano", resp.CityName)
	assert.Equal(t, location.DefaultArrivalTime, resp.DefaultArrivalTime)

	_, err = svc.CreateLocation(ctx, location.CreateLocationRequest{CityName: "MILANO", DistanceKm: 1, TravelTimeMinutes: 1})
	assert.ErrorIs(t, err, location.ErrCityNameExists)

	_, err = svc.CreateLocation(ctx, location.CreateLocationRequest{CityName: "Bad", DistanceKm: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distance_km")
}

func TestUpdateLocation_ChangesRegistry(t *testing.T) {
	ctx := context.Background()
	svc := NewMasterService(newFakeLocationRepo(location.Location{CityName: "Parma", DistanceKm: 125, TravelTimeMinutes: 90}), fakeUsage{}, &directTx{})

	km := 120.0
	resp, err := svc.UpdateLocation(ctx, location.UpdateLocationRequest{CityName: "parma", DistanceKm: &km})
	require.NoError(t, err)
	assert.Equal(t, 120.0, resp.DistanceKm)

	reg, err := svc.Registry(ctx)
	require.NoError(t, err)
	l, ok := reg.Lookup("Parma")
	require.True(t, ok)
	assert.Equal(t, 120.0, l.DistanceKm)
}

func TestDeleteLocation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLocationRepo(
		location.Location{CityName: "Brescia"},
		location.Location{CityName: "Mantova"},
	)
	tx := &directTx{}
	svc := NewMasterService(repo, fakeUsage{"Brescia": 3}, tx)

	err := svc.DeleteLocation(ctx, "brescia")
	assert.ErrorIs(t, err, location.ErrLocationInUse)
	assert.Equal(t, 1, tx.calls)

	require.NoError(t, svc.DeleteLocation(ctx, "Mantova"))
	assert.Equal(t, 2, tx.calls)
	_, err = svc.GetLocation(ctx, "Mantova")
	assert.ErrorIs(t, err, location.ErrLocationNotFound)

	assert.ErrorIs(t, svc.DeleteLocation(ctx, "Torino"), location.ErrLocationNotFound)
}

func TestUpdateLocation_RenameOfUsedCityIsRefused(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLocationRepo(
		location.Location{CityName: "Brescia", DistanceKm: 70, TravelTimeMinutes: 60},
		location.Location{CityName: "Mantova", DistanceKm: 40, TravelTimeMinutes: 45},
	)
	tx := &directTx{}
	svc := NewMasterService(repo, fakeUsage{"Brescia": 3}, tx)

	_, err := svc.UpdateLocation(ctx, location.UpdateLocationRequest{CityName: "Brescia", NewCityName: ptr("Brescia Centro")})
	assert.ErrorIs(t, err, location.ErrLocationInUse)
	assert.Equal(t, 1, tx.calls)

	reg, err := svc.Registry(ctx)
	require.NoError(t, err)
	_, ok := reg.Lookup("Brescia")
	assert.True(t, ok)
	_, ok = reg.Lookup("Brescia Centro")
	assert.False(t, ok)

	// Changing only the letter case keeps stored days resolvable.
	resp, err := svc.UpdateLocation(ctx, location.UpdateLocationRequest{CityName: "Brescia", NewCityName: ptr("BRESCIA")})
	require.NoError(t, err)
	assert.Equal(t, "BRESCIA", resp.CityName)

	km := 75.0
	resp, err = svc.UpdateLocation(ctx, location.UpdateLocationRequest{CityName: "brescia", DistanceKm: &km})
	require.NoError(t, err)
	assert.Equal(t, 75.0, resp.DistanceKm)

	resp, err = svc.UpdateLocation(ctx, location.UpdateLocationRequest{CityName: "Mantova", NewCityName: ptr("Mantova Nord")})
	require.NoError(t, err)
	assert.Equal(t, "Mantova Nord", resp.CityName)
	assert.Equal(t, 4, tx.calls)
}

func ptr[T any](v T) *T { return &v }

func TestSeedDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewMasterService(newFakeLocationRepo(), fakeUsage{}, &directTx{})

	seeded, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Len(t, seeded, 6)

	reg, err := svc.Registry(ctx)
	require.NoError(t, err)
	modena, ok := reg.Lookup("modena")
	require.True(t, ok)
	assert.Equal(t, 103.0, modena.DistanceKm)
	assert.Equal(t, 70, modena.TravelTimeMinutes)

	_, err = svc.SeedDefaults(ctx)
	assert.ErrorIs(t, err, location.ErrRegistryNotEmpty)
}
