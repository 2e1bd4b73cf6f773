package tests

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"foodie-storefront/menu-svc/internal/domain"
	"foodie-storefront/menu-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var menuColumns = []string{"id", "name", "price", "category", "veg", "weight", "energy", "image_url", "best_seller", "extras"}

func TestSQLRepository_GetPostgres(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantName  string
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`FROM menu_items WHERE id = \$1`).
					WithArgs("M001").
					WillReturnRows(sqlmock.NewRows(menuColumns).
						AddRow("M001", "Butter Chicken", 45000, "MAIN COURSE", false, "500 g", "600 kcal", "", false,
							`{"addOns":[{"id":"A1","name":"Extra Gravy","price":3000}]}`))
			},
			wantName: "Butter Chicken",
		},
		{
			name: "not found",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`FROM menu_items WHERE id = \$1`).
					WithArgs("M001").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrItemNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			testCase.setupMock(mock)

			repo := storage.NewSQLRepository(db, storage.Postgres)
			item, err := repo.Get(context.Background(), "M001")

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testCase.wantName, item.Name)
				require.Len(t, item.AddOns, 1)
				assert.Equal(t, int64(3000), item.AddOns[0].Price)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLRepository_UpsertPostgres(t *testing.T) {
	tests := []struct {
		name        string
		exists      bool
		wantCreated bool
	}{
		{name: "insert", exists: false, wantCreated: true},
		{name: "update", exists: true, wantCreated: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectBegin()
			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs("D001").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(testCase.exists))
			mock.ExpectExec(`INSERT INTO menu_items .* ON CONFLICT \(id\) DO UPDATE`).
				WithArgs("D001", "Gulab Jamun", int64(12000), "DESSERTS", true, "2 pcs", "250 kcal", "", false, "{}").
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			repo := storage.NewSQLRepository(db, storage.Postgres)
			created, err := repo.Upsert(context.Background(), &domain.MenuItem{
				ID: "D001", Name: "Gulab Jamun", Price: 12000, Category: "DESSERTS", Veg: true, Weight: "2 pcs", Energy: "250 kcal",
			})

			require.NoError(t, err)
			assert.Equal(t, testCase.wantCreated, created)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLRepository_UpsertRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO menu_items`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	repo := storage.NewSQLRepository(db, storage.Postgres)
	_, err = repo.Upsert(context.Background(), &domain.MenuItem{ID: "B001", Name: "Tea", Category: "BEVERAGES"})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_DeletePostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM menu_items WHERE id = \$1`).
		WithArgs("Z999").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := storage.NewSQLRepository(db, storage.Postgres)
	rows, err := repo.Delete(context.Background(), "Z999")

	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	repo := storage.NewSQLRepository(db, storage.SQLite)
	require.NoError(t, repo.Migrate(ctx))

	item := &domain.MenuItem{
		ID: "M001", Name: "Butter Chicken", Price: 45000, Category: "MAIN COURSE", Weight: "500 g", Energy: "600 kcal",
		AddOns:     []domain.AddOn{{ID: "A1", Name: "Butter Naan", Price: 5000}},
		ComboItems: []domain.ComboItem{{Name: "Rice", Calories: "200 kcal"}},
	}
	created, err := repo.Upsert(ctx, item)
	require.NoError(t, err)
	assert.True(t, created)

	item.Price = 47000
	created, err = repo.Upsert(ctx, item)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = repo.Upsert(ctx, &domain.MenuItem{ID: "D001", Name: "Gulab Jamun", Price: 12000, Category: "DESSERTS", Veg: true})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "M001")
	require.NoError(t, err)
	assert.Equal(t, int64(47000), got.Price)
	assert.False(t, got.Veg)
	assert.Equal(t, item.AddOns, got.AddOns)
	assert.Equal(t, item.ComboItems, got.ComboItems)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rows, err := repo.Delete(ctx, "M001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.Delete(ctx, "M001")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "D001", items[0].ID)
	assert.True(t, items[0].Veg)

	_, err = repo.Get(ctx, "M001")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	_, err := repo.Upsert(ctx, &domain.MenuItem{ID: "M001", Name: "Butter Chicken"})
	require.NoError(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	items[0].Name = "changed"

	got, err := repo.Get(ctx, "M001")
	require.NoError(t, err)
	assert.Equal(t, "Butter Chicken", got.Name)
}

func TestDiskUploader_Upload(t *testing.T) {
	dir := t.TempDir()
	uploader := storage.NewDiskUploader(dir, "/uploads")

	url, err := uploader.Upload(context.Background(), "Dish.PNG", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/menu_"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestDiskUploader_UploadFailureRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	uploader := storage.NewDiskUploader(dir, "/uploads")
	body := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(errors.New("connection reset")))

	url, err := uploader.Upload(context.Background(), "dish.png", body)

	assert.Error(t, err)
	assert.Empty(t, url)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type fakeCloudinary struct {
	params uploader.UploadParams
	result *uploader.UploadResult
	err    error
}

func (f *fakeCloudinary) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.params = params
	return f.result, f.err
}

func TestCloudinaryUploader_Upload(t *testing.T) {
	tests := []struct {
		name    string
		fake    *fakeCloudinary
		wantURL string
		wantErr bool
	}{
		{
			name:    "secure url returned",
			fake:    &fakeCloudinary{result: &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/foodie-menu/a.png"}},
			wantURL: "https://res.cloudinary.com/demo/foodie-menu/a.png",
		},
		{
			name:    "api error",
			fake:    &fakeCloudinary{result: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}},
			wantErr: true,
		},
		{
			name:    "transport error",
			fake:    &fakeCloudinary{err: errors.New("timeout")},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			u := storage.NewCloudinaryUploaderWithAPI(testCase.fake, "")

			url, err := u.Upload(context.Background(), "a.png", strings.NewReader("x"))

			assert.Equal(t, storage.DefaultCloudinaryFolder, testCase.fake.params.Folder)
			assert.Equal(t, "auto", testCase.fake.params.ResourceType)
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantURL, url)
		})
	}
}
