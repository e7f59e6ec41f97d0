package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/bookgraph/dto"
	"github.com/customeros/bookgraph/internal/enum"
	"github.com/customeros/bookgraph/internal/logger"
	"github.com/customeros/bookgraph/internal/repository"
)

type publishedEvent struct {
	entityId   string
	entityType enum.EntityType
	message    interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishFanoutEvent(_ context.Context, entityId string, entityType enum.EntityType, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{entityId, entityType, message})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func newTestService(publisher *recordingPublisher) *catalogService {
	log := logger.NewAppLogger(nil)
	log.InitLogger()
	return NewCatalogService(repository.InitSeededRepositories(), publisher, log).(*catalogService)
}

func TestCatalogService_Reads(t *testing.T) {
	svc := newTestService(&recordingPublisher{})
	ctx := context.Background()

	authors, err := svc.ListAuthors(ctx)
	require.NoError(t, err)
	assert.Len(t, authors, 3)

	books, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 8)

	book, err := svc.GetBook(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "The Way of shadows", book.Name)

	author, err := svc.GetAuthor(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, author)

	byAuthor, err := svc.ListBooksByAuthor(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)
}

func TestCatalogService_AddAuthorPublishesEvent(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := newTestService(publisher)

	author, err := svc.AddAuthor(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, 4, author.ID)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "4", publisher.events[0].entityId)
	assert.Equal(t, enum.AUTHOR, publisher.events[0].entityType)
	assert.Equal(t, dto.AuthorAdded{AuthorId: 4, Name: "X"}, publisher.events[0].message)
}

func TestCatalogService_AddBookKeepsDanglingAuthor(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := newTestService(publisher)

	book, err := svc.AddBook(context.Background(), "Y", 999)
	require.NoError(t, err)
	assert.Equal(t, 9, book.ID)
	assert.Equal(t, 999, book.AuthorID)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, dto.BookAdded{BookId: 9, Name: "Y", AuthorId: 999}, publisher.events[0].message)
}

func TestCatalogService_PublishFailureDoesNotFailAppend(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("broker down")}
	svc := newTestService(publisher)
	ctx := context.Background()

	author, err := svc.AddAuthor(ctx, "X")
	require.NoError(t, err)
	require.NotNil(t, author)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Authors)
	assert.Equal(t, 8, stats.Books)
}
