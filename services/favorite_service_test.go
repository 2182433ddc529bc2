package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/repository"
)

type mockFavoriteRepo struct {
	pairs map[string]bool // "userID|productionID"
	prods *mockProductionRepo
}

func newMockFavoriteRepo(prods *mockProductionRepo) *mockFavoriteRepo {
	return &mockFavoriteRepo{pairs: make(map[string]bool), prods: prods}
}

func favKey(userID, productionID string) string {
	return userID + "|" + productionID
}

func (m *mockFavoriteRepo) Add(_ context.Context, userID, productionID string) error {
	key := favKey(userID, productionID)
	if m.pairs[key] {
		return fmt.Errorf("%w: production already in favorites", pkg.ErrAlreadyExists)
	}
	m.pairs[key] = true
	return nil
}

func (m *mockFavoriteRepo) Remove(_ context.Context, userID, productionID string) error {
	key := favKey(userID, productionID)
	if !m.pairs[key] {
		return pkg.ErrNotFound
	}
	delete(m.pairs, key)
	return nil
}

func (m *mockFavoriteRepo) ListByUser(_ context.Context, userID string) ([]models.Production, error) {
	var out []models.Production
	for key := range m.pairs {
		for id, p := range m.prods.productions {
			if key == favKey(userID, id) {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

var _ repository.FavoriteRepository = (*mockFavoriteRepo)(nil)

func TestFavoriteAddRemoveList(t *testing.T) {
	prods := newMockProductionRepo()
	p := &models.Production{Title: "Track", Artist: "A"}
	require.NoError(t, prods.Create(context.Background(), p))

	favs := newMockFavoriteRepo(prods)
	svc := NewFavoriteService(favs, prods)

	require.NoError(t, svc.Add(context.Background(), "u1", p.ID))

	// Aynı çift ikinci kez eklenemez
	err := svc.Add(context.Background(), "u1", p.ID)
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)

	list, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)

	// Başka kullanıcının listesi boş — favoriler kullanıcıya özel
	other, err := svc.List(context.Background(), "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, svc.Remove(context.Background(), "u1", p.ID))
	assert.ErrorIs(t, svc.Remove(context.Background(), "u1", p.ID), pkg.ErrNotFound)
}

func TestFavoriteAddUnknownProduction(t *testing.T) {
	prods := newMockProductionRepo()
	svc := NewFavoriteService(newMockFavoriteRepo(prods), prods)

	err := svc.Add(context.Background(), "u1", "ghost")
	require.ErrorIs(t, err, pkg.ErrNotFound)
	assert.Contains(t, err.Error(), "production not found")
}

func TestFavoriteAddRequiresProductionID(t *testing.T) {
	prods := newMockProductionRepo()
	svc := NewFavoriteService(newMockFavoriteRepo(prods), prods)

	err := svc.Add(context.Background(), "u1", "")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}
