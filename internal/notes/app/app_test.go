package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"noteapi/internal/notes/app"
	"noteapi/internal/notes/domain/entities"
	"noteapi/internal/notes/ports/repositories"
)

var (
	ErrDatabaseOperation = errors.New("database error")
	ErrRenderFailed      = errors.New("render failed")
	ErrCacheDown         = errors.New("cache down")
)

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) List(ctx context.Context) ([]*entities.Note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(ctx context.Context, markdown string) (string, error) {
	args := m.Called(ctx, markdown)
	return args.String(0), args.Error(1)
}

type mockRenderCache struct {
	mock.Mock
}

func (m *mockRenderCache) Get(ctx context.Context, noteID int64) (string, bool, error) {
	args := m.Called(ctx, noteID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockRenderCache) Set(ctx context.Context, noteID int64, html string) error {
	return m.Called(ctx, noteID, html).Error(0)
}

func (m *mockRenderCache) Delete(ctx context.Context, noteID int64) error {
	return m.Called(ctx, noteID).Error(0)
}

func storedNote(id int64, title, content string) *entities.Note {
	return &entities.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewNoteUseCase(t *testing.T) {
	useCase := app.NewNoteUseCase(new(mockNoteRepository), new(mockRenderer))

	assert.NotNil(t, useCase, "NewNoteUseCase should return a non-nil object")
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		content     string
		setupMocks  func(repo *mockNoteRepository)
		expected    *entities.Note
		expectedErr error
	}{
		{
			name:    "success - note created",
			title:   "First Note",
			content: "First Content",
			setupMocks: func(repo *mockNoteRepository) {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
					return n.Title == "First Note" && n.Content == "First Content" && n.ID == 0
				})).Return(storedNote(1, "First Note", "First Content"), nil).Once()
			},
			expected: storedNote(1, "First Note", "First Content"),
		},
		{
			name:        "error - empty title never reaches the store",
			title:       "",
			content:     "content",
			setupMocks:  func(_ *mockNoteRepository) {},
			expectedErr: app.ErrInvalidArgument,
		},
		{
			name:        "error - empty content never reaches the store",
			title:       "title",
			content:     "",
			setupMocks:  func(_ *mockNoteRepository) {},
			expectedErr: app.ErrInvalidArgument,
		},
		{
			name:    "error - repository error",
			title:   "title",
			content: "content",
			setupMocks: func(repo *mockNoteRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, ErrDatabaseOperation).Once()
			},
			expectedErr: ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockNoteRepository)
			tt.setupMocks(repo)

			useCase := app.NewNoteUseCase(repo, new(mockRenderer))
			note, err := useCase.Create(context.Background(), tt.title, tt.content)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, note)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, note)
			}

			repo.AssertExpectations(t)
			repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestFindAll(t *testing.T) {
	t.Run("returns notes in store order", func(t *testing.T) {
		repo := new(mockNoteRepository)
		notes := []*entities.Note{
			storedNote(1, "First Note", "First Content"),
			storedNote(2, "Second Note", "Second Content"),
		}
		repo.On("List", mock.Anything).Return(notes, nil).Once()

		result, err := app.NewNoteUseCase(repo, new(mockRenderer)).FindAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, notes, result)
		repo.AssertExpectations(t)
	})

	t.Run("wraps repository error", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("List", mock.Anything).Return(nil, ErrDatabaseOperation).Once()

		result, err := app.NewNoteUseCase(repo, new(mockRenderer)).FindAll(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDatabaseOperation)
		assert.ErrorContains(t, err, app.ErrMsgListNotes)
		assert.Nil(t, result)
	})
}

func TestFindOne(t *testing.T) {
	tests := []struct {
		name        string
		repoNote    *entities.Note
		repoErr     error
		expectedErr error
	}{
		{
			name:     "success - note found",
			repoNote: storedNote(5, "Note 5", "Content 5"),
		},
		{
			name:        "error - repository reports missing row",
			repoErr:     repositories.ErrNoteNotFound,
			expectedErr: app.ErrNotFound,
		},
		{
			name:        "error - repository returns nil note",
			expectedErr: app.ErrNotFound,
		},
		{
			name:        "error - database failure is not a not-found",
			repoErr:     ErrDatabaseOperation,
			expectedErr: ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockNoteRepository)
			if tt.repoNote != nil {
				repo.On("GetByID", mock.Anything, int64(5)).Return(tt.repoNote, nil).Once()
			} else {
				repo.On("GetByID", mock.Anything, int64(5)).Return(nil, tt.repoErr).Once()
			}

			note, err := app.NewNoteUseCase(repo, new(mockRenderer)).FindOne(context.Background(), 5)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				if tt.expectedErr != app.ErrNotFound {
					assert.NotErrorIs(t, err, app.ErrNotFound)
				}
				assert.Nil(t, note)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.repoNote, note)
		})
	}
}

func TestDelete(t *testing.T) {
	t.Run("success evicts render cache", func(t *testing.T) {
		repo := new(mockNoteRepository)
		cache := new(mockRenderCache)
		repo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
		cache.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

		err := app.NewNoteUseCase(repo, new(mockRenderer), app.WithRenderCache(cache)).Delete(context.Background(), 1)

		require.NoError(t, err)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache eviction failure does not fail delete", func(t *testing.T) {
		repo := new(mockNoteRepository)
		cache := new(mockRenderCache)
		repo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
		cache.On("Delete", mock.Anything, int64(1)).Return(ErrCacheDown).Once()

		err := app.NewNoteUseCase(repo, new(mockRenderer), app.WithRenderCache(cache)).Delete(context.Background(), 1)

		require.NoError(t, err)
	})

	t.Run("missing row is not found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("Delete", mock.Anything, int64(999)).Return(repositories.ErrNoteNotFound).Once()

		err := app.NewNoteUseCase(repo, new(mockRenderer)).Delete(context.Background(), 999)

		require.ErrorIs(t, err, app.ErrNotFound)
	})

	t.Run("storage failure stays distinct from not found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("Delete", mock.Anything, int64(3)).Return(ErrDatabaseOperation).Once()

		err := app.NewNoteUseCase(repo, new(mockRenderer)).Delete(context.Background(), 3)

		require.ErrorIs(t, err, ErrDatabaseOperation)
		assert.NotErrorIs(t, err, app.ErrNotFound)
		assert.ErrorContains(t, err, app.ErrMsgDeleteNote)
	})

	t.Run("delete then find fails with not found", func(t *testing.T) {
		repo := new(mockNoteRepository)
		repo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
		repo.On("GetByID", mock.Anything, int64(1)).Return(nil, repositories.ErrNoteNotFound).Once()

		useCase := app.NewNoteUseCase(repo, new(mockRenderer))
		require.NoError(t, useCase.Delete(context.Background(), 1))

		_, err := useCase.FindOne(context.Background(), 1)
		require.ErrorIs(t, err, app.ErrNotFound)
	})
}

func TestRenderToHTML(t *testing.T) {
	note := storedNote(1, "Note 1", "# Note 1")

	t.Run("renders content without cache", func(t *testing.T) {
		repo := new(mockNoteRepository)
		renderer := new(mockRenderer)
		repo.On("GetByID", mock.Anything, int64(1)).Return(note, nil).Once()
		renderer.On("Render", mock.Anything, "# Note 1").Return("<h1>Note 1</h1>\n", nil).Once()

		html, err := app.NewNoteUseCase(repo, renderer).RenderToHTML(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "<h1>Note 1</h1>\n", html)
		renderer.AssertExpectations(t)
	})

	t.Run("not found skips renderer and cache", func(t *testing.T) {
		repo := new(mockNoteRepository)
		renderer := new(mockRenderer)
		cache := new(mockRenderCache)
		repo.On("GetByID", mock.Anything, int64(999)).Return(nil, repositories.ErrNoteNotFound).Once()

		_, err := app.NewNoteUseCase(repo, renderer, app.WithRenderCache(cache)).RenderToHTML(context.Background(), 999)

		require.ErrorIs(t, err, app.ErrNotFound)
		renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("cache hit skips renderer", func(t *testing.T) {
		repo := new(mockNoteRepository)
		renderer := new(mockRenderer)
		cache := new(mockRenderCache)
		repo.On("GetByID", mock.Anything, int64(1)).Return(note, nil).Once()
		cache.On("Get", mock.Anything, int64(1)).Return("<h1>cached</h1>", true, nil).Once()

		html, err := app.NewNoteUseCase(repo, renderer, app.WithRenderCache(cache)).RenderToHTML(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "<h1>cached</h1>", html)
		renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	})

	t.Run("cache miss renders and stores", func(t *testing.T) {
		repo := new(mockNoteRepository)
		renderer := new(mockRenderer)
		cache := new(mockRenderCache)
		repo.On("GetByID", mock.Anything, int64(1)).Return(note, nil).Once()
		cache.On("Get", mock.Anything, int64(1)).Return("", false, nil).Once()
		renderer.On("Render", mock.Anything, "# Note 1").Return("<h1>Note 1</h1>\n", nil).Once()
		cache.On("Set", mock.Anything, int64(1), "<h1>Note 1</h1>\n").Return(nil).Once()

		html, err := app.NewNoteUseCase(repo, renderer, app.WithRenderCache(cache)).RenderToHTML(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "<h1>Note 1</h1>\n", html)
		cache.AssertExpectations(t)
	})

	t.Run("cache errors fall back to renderer", func(t *testing.T) {
		repo := new(mockNoteRepository)
		renderer := new(mockRenderer)
		cache := new(mockRenderCache)
		repo.On("GetByID", mock.Anything, int64(1)).Return(note, nil).Once()
		cache.On("Get", mock.Anything, int64(1)).Return("", false, ErrCacheDown).Once()
		renderer.On("Render", mock.Anything, "# Note 1").Return("<h1>Note 1</h1>\n", nil).Once()
		cache.On("Set", mock.Anything, int64(1), mock.Anything).Return(ErrCacheDown).Once()

		html, err := app.NewNoteUseCase(repo, renderer, app.WithRenderCache(cache)).RenderToHTML(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "<h1>Note 1</h1>\n", html)
	})

	t.Run("renderer failure propagates", func(t *testing.T) {
		repo := new(mockNoteRepository)
		renderer := new(mockRenderer)
		repo.On("GetByID", mock.Anything, int64(1)).Return(note, nil).Once()
		renderer.On("Render", mock.Anything, mock.Anything).Return("", ErrRenderFailed).Once()

		_, err := app.NewNoteUseCase(repo, renderer).RenderToHTML(context.Background(), 1)

		require.ErrorIs(t, err, ErrRenderFailed)
		assert.NotErrorIs(t, err, app.ErrNotFound)
	})
}
