package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimakt/prodstore/database"
	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
)

// newTestDB, geçici dizinde gerçek bir SQLite dosyası açar ve
// migration'ları uygular. Repository testleri mock değil gerçek SQL
// üzerinde koşar — sorgu hataları ve constraint davranışları ancak
// böyle yakalanır.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.New(dbPath, os.DirFS("../database/migrations"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func seedUser(t *testing.T, repo UserRepository, username, email string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		Role:         models.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func seedProduction(t *testing.T, repo ProductionRepository, title, artist, genre string, price float64) *models.Production {
	t.Helper()

	p := &models.Production{Title: title, Artist: artist, Genre: genre, Price: price}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

// ─── User Repository ───

func TestUserCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	user := seedUser(t, repo, "beatmaker", "beat@example.com")
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "beatmaker", byID.Username)
	assert.True(t, byID.IsActive)
	assert.False(t, byID.IsBanned)

	byEmail, err := repo.GetByEmail(context.Background(), "beat@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUserUniqueConstraints(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	seedUser(t, repo, "beatmaker", "beat@example.com")

	// Aynı email
	err := repo.Create(context.Background(), &models.User{
		Username: "other", Email: "beat@example.com", PasswordHash: "h", Role: models.RoleUser, IsActive: true,
	})
	require.ErrorIs(t, err, pkg.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "email already registered")

	// Aynı username
	err = repo.Create(context.Background(), &models.User{
		Username: "beatmaker", Email: "other@example.com", PasswordHash: "h", Role: models.RoleUser, IsActive: true,
	})
	require.ErrorIs(t, err, pkg.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "username already taken")
}

func TestUserBanAndActiveFlags(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	user := seedUser(t, repo, "beatmaker", "beat@example.com")

	require.NoError(t, repo.SetBanned(context.Background(), user.ID, true))
	banned, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)

	require.NoError(t, repo.SetActive(context.Background(), user.ID, false))
	inactive, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)

	assert.ErrorIs(t, repo.SetBanned(context.Background(), "ghost", true), pkg.ErrNotFound)
}

func TestUserCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	seedUser(t, repo, "one", "one@example.com")
	seedUser(t, repo, "two", "two@example.com")

	count, err = repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

// ─── Production Repository ───

func TestProductionCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteProductionRepo(db.Conn)

	p := seedProduction(t, repo, "Midnight Drive", "Selim", "synthwave", 29.99)
	assert.NotEmpty(t, p.ID)

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Midnight Drive", got.Title)
	assert.Nil(t, got.CoverURL, "no file uploaded yet")

	cover := "/uploads/abc_cover.jpg"
	got.Title = "Midnight Drive (Remaster)"
	got.CoverURL = &cover
	require.NoError(t, repo.Update(context.Background(), got))

	updated, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Midnight Drive (Remaster)", updated.Title)
	require.NotNil(t, updated.CoverURL)
	assert.Equal(t, cover, *updated.CoverURL)

	require.NoError(t, repo.Delete(context.Background(), p.ID))
	_, err = repo.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), p.ID), pkg.ErrNotFound)
	assert.ErrorIs(t, repo.Update(context.Background(), &models.Production{ID: "ghost", Title: "x", Artist: "y"}), pkg.ErrNotFound)
}

func TestProductionListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteProductionRepo(db.Conn)

	seedProduction(t, repo, "Dark Alley", "Nova", "techno", 15)
	seedProduction(t, repo, "Sunrise", "Nova", "ambient", 35)
	seedProduction(t, repo, "Heavy Machinery", "Forge", "industrial techno", 80)

	list := func(f *models.ProductionFilter) *models.ProductionPage {
		t.Helper()
		require.NoError(t, f.Normalize())
		page, err := repo.List(context.Background(), f, 12)
		require.NoError(t, err)
		return page
	}

	// Filtresiz — hepsi
	all := list(&models.ProductionFilter{})
	assert.Equal(t, 3, all.Total)
	assert.Len(t, all.Productions, 3)

	// Genre substring, case-insensitive
	techno := list(&models.ProductionFilter{Genre: "TECHNO"})
	assert.Equal(t, 2, techno.Total)

	// Search birden fazla alana bakar
	byArtist := list(&models.ProductionFilter{Search: "nova"})
	assert.Equal(t, 2, byArtist.Total)
	byTitle := list(&models.ProductionFilter{Search: "sunrise"})
	assert.Equal(t, 1, byTitle.Total)

	// Fiyat bucket'ları: [alt, üst)
	low := list(&models.ProductionFilter{PriceRange: models.PriceRangeLow})
	assert.Equal(t, 1, low.Total)
	mid := list(&models.ProductionFilter{PriceRange: models.PriceRangeMid})
	assert.Equal(t, 1, mid.Total)
	high := list(&models.ProductionFilter{PriceRange: models.PriceRangeHigh})
	assert.Equal(t, 1, high.Total)

	// Tarih bucket'ı — az önce eklenen kayıtlar son haftaya düşer
	recent := list(&models.ProductionFilter{DateRange: models.DateRangeWeek})
	assert.Equal(t, 3, recent.Total)

	// Kombinasyon: techno + mid fiyat → boş
	none := list(&models.ProductionFilter{Genre: "techno", PriceRange: models.PriceRangeMid})
	assert.Equal(t, 0, none.Total)
}

func TestProductionSearchTreatsWildcardsAsLiterals(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteProductionRepo(db.Conn)

	seedProduction(t, repo, "100% Royalty Free", "Nova", "ambient", 10)
	seedProduction(t, repo, "100x Speedrun", "Nova", "ambient", 10)
	seedProduction(t, repo, "drum_loop kit", "Forge", "drum and bass", 10)
	seedProduction(t, repo, "drumXloop kit", "Forge", "drum and bass", 10)

	list := func(f *models.ProductionFilter) *models.ProductionPage {
		t.Helper()
		require.NoError(t, f.Normalize())
		page, err := repo.List(context.Background(), f, 12)
		require.NoError(t, err)
		return page
	}

	// "%" literal aranır — "100 ile başlayan her şey" değil
	percent := list(&models.ProductionFilter{Search: "100%"})
	require.Equal(t, 1, percent.Total)
	assert.Equal(t, "100% Royalty Free", percent.Productions[0].Title)

	// "_" tek karakter jokeri olarak değil, alt çizgi olarak eşleşir
	underscore := list(&models.ProductionFilter{Search: "drum_loop"})
	require.Equal(t, 1, underscore.Total)
	assert.Equal(t, "drum_loop kit", underscore.Productions[0].Title)

	// Genre filtresi de aynı kurala tabi
	noGenre := list(&models.ProductionFilter{Genre: "amb%"})
	assert.Equal(t, 0, noGenre.Total)
}

func TestProductionListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteProductionRepo(db.Conn)

	for i := 0; i < 5; i++ {
		seedProduction(t, repo, "Track", "Artist", "genre", float64(i))
	}

	f := &models.ProductionFilter{Page: 1}
	require.NoError(t, f.Normalize())
	page1, err := repo.List(context.Background(), f, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, page1.Total)
	assert.Len(t, page1.Productions, 2)
	assert.Equal(t, 2, page1.PageSize)

	f = &models.ProductionFilter{Page: 3}
	require.NoError(t, f.Normalize())
	page3, err := repo.List(context.Background(), f, 2)
	require.NoError(t, err)
	assert.Len(t, page3.Productions, 1, "last page holds the remainder")

	f = &models.ProductionFilter{Page: 9}
	require.NoError(t, f.Normalize())
	empty, err := repo.List(context.Background(), f, 2)
	require.NoError(t, err)
	assert.Empty(t, empty.Productions)
	assert.Equal(t, 5, empty.Total)
}

// ─── Favorite Repository ───

func TestFavoriteAddRemoveListByUser(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	prodRepo := NewSQLiteProductionRepo(db.Conn)
	favRepo := NewSQLiteFavoriteRepo(db.Conn)

	user := seedUser(t, userRepo, "fan", "fan@example.com")
	p1 := seedProduction(t, prodRepo, "One", "A", "g", 1)
	p2 := seedProduction(t, prodRepo, "Two", "A", "g", 2)

	require.NoError(t, favRepo.Add(context.Background(), user.ID, p1.ID))
	require.NoError(t, favRepo.Add(context.Background(), user.ID, p2.ID))

	// Çift ekleme engellenir
	err := favRepo.Add(context.Background(), user.ID, p1.ID)
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)

	list, err := favRepo.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, favRepo.Remove(context.Background(), user.ID, p1.ID))
	assert.ErrorIs(t, favRepo.Remove(context.Background(), user.ID, p1.ID), pkg.ErrNotFound)

	list, err = favRepo.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, p2.ID, list[0].ID)
}

func TestFavoriteCascadeOnProductionDelete(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	prodRepo := NewSQLiteProductionRepo(db.Conn)
	favRepo := NewSQLiteFavoriteRepo(db.Conn)

	user := seedUser(t, userRepo, "fan", "fan@example.com")
	p := seedProduction(t, prodRepo, "Doomed", "A", "g", 1)

	require.NoError(t, favRepo.Add(context.Background(), user.ID, p.ID))
	require.NoError(t, prodRepo.Delete(context.Background(), p.ID))

	// FK ON DELETE CASCADE favori satırını da götürür
	list, err := favRepo.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ─── Revoked Token Repository ───

func TestRevokedTokenLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRevokedTokenRepo(db.Conn)

	exists, err := repo.Exists(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.False(t, exists)

	rt := &models.RevokedToken{
		JTI:       "jti-1",
		UserID:    "u1",
		Reason:    models.RevokeReasonLogout,
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), rt))
	assert.False(t, rt.RevokedAt.IsZero(), "revoked_at assigned by the database")

	exists, err = repo.Exists(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, exists)

	// Aynı jti ikinci kez yazılamaz
	err = repo.Create(context.Background(), &models.RevokedToken{
		JTI: "jti-1", UserID: "u1", Reason: models.RevokeReasonLogout, ExpiresAt: time.Now().Add(time.Hour).UTC(),
	})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestRevokedTokenSweep(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRevokedTokenRepo(db.Conn)

	// Biri geçmişte, biri gelecekte sona eren iki kayıt
	require.NoError(t, repo.Create(context.Background(), &models.RevokedToken{
		JTI: "stale", UserID: "u1", Reason: models.RevokeReasonLogout,
		ExpiresAt: time.Now().Add(-time.Hour).UTC(),
	}))
	require.NoError(t, repo.Create(context.Background(), &models.RevokedToken{
		JTI: "live", UserID: "u1", Reason: models.RevokeReasonBanned,
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}))

	deleted, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	exists, err := repo.Exists(context.Background(), "stale")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.Exists(context.Background(), "live")
	require.NoError(t, err)
	assert.True(t, exists, "unexpired revocation must survive the sweep")
}

func TestRevokedTokenSweepLocalZoneExpiry(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRevokedTokenRepo(db.Conn)

	// ExpiresAt kasıtlı olarak UTC'nin batısında bir zone ile verilir —
	// çağıran .UTC() demek zorunda değildir, normalizasyon repository'nin
	// işidir. Normalize edilmezse lokal metin UTC CURRENT_TIMESTAMP'tan
	// küçük görünür ve henüz geçerli bir revocation kaydı süpürülür.
	west := time.FixedZone("WEST", -5*60*60)
	require.NoError(t, repo.Create(context.Background(), &models.RevokedToken{
		JTI: "still-valid", UserID: "u1", Reason: models.RevokeReasonLogout,
		ExpiresAt: time.Now().In(west).Add(2 * time.Hour),
	}))

	deleted, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	exists, err := repo.Exists(context.Background(), "still-valid")
	require.NoError(t, err)
	assert.True(t, exists, "a revocation two hours from expiry must not be swept")

	// Aynı zone'da geçmişte sona eren kayıt ise süpürülmeli
	require.NoError(t, repo.Create(context.Background(), &models.RevokedToken{
		JTI: "long-gone", UserID: "u1", Reason: models.RevokeReasonLogout,
		ExpiresAt: time.Now().In(west).Add(-2 * time.Hour),
	}))

	deleted, err = repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

// ─── Contact Repository ───

func TestContactMessageLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteContactRepo(db.Conn)

	msg := &models.ContactMessage{
		Name: "Ada", Email: "ada@example.com", Subject: "Licensing", Body: "Question about usage rights.",
	}
	require.NoError(t, repo.Create(context.Background(), msg))
	assert.NotEmpty(t, msg.ID)

	got, err := repo.GetByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.False(t, got.IsRead)

	require.NoError(t, repo.MarkRead(context.Background(), msg.ID))
	read, err := repo.GetByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(context.Background(), msg.ID))
	_, err = repo.GetByID(context.Background(), msg.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	assert.ErrorIs(t, repo.MarkRead(context.Background(), msg.ID), pkg.ErrNotFound)
}
