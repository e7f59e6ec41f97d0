package catalog

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/bookgraph/dto"
	"github.com/customeros/bookgraph/interfaces"
	"github.com/customeros/bookgraph/internal/enum"
	"github.com/customeros/bookgraph/internal/logger"
	"github.com/customeros/bookgraph/internal/models"
	"github.com/customeros/bookgraph/internal/repository"
	"github.com/customeros/bookgraph/internal/tracing"
	"github.com/customeros/bookgraph/internal/utils"
)

type catalogService struct {
	repositories *repository.Repositories
	publisher    interfaces.EventPublisher
	log          logger.Logger
}

func NewCatalogService(repos *repository.Repositories, publisher interfaces.EventPublisher, log logger.Logger) interfaces.CatalogService {
	return &catalogService{
		repositories: repos,
		publisher:    publisher,
		log:          log,
	}
}

func (s *catalogService) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "catalogService.ListAuthors")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	authors, err := s.repositories.AuthorRepository.List(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to list authors")
	}
	span.LogKV("result.count", len(authors))
	return authors, nil
}

func (s *catalogService) GetAuthor(ctx context.Context, id int) (*models.Author, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "catalogService.GetAuthor")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, utils.EntityId(id))

	author, err := s.repositories.AuthorRepository.GetByID(ctx, id)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to get author")
	}
	span.LogKV("result.found", author != nil)
	return author, nil
}

func (s *catalogService) ListBooks(ctx context.Context) ([]*models.Book, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "catalogService.ListBooks")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	books, err := s.repositories.BookRepository.List(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to list books")
	}
	span.LogKV("result.count", len(books))
	return books, nil
}

func (s *catalogService) GetBook(ctx context.Context, id int) (*models.Book, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "catalogService.GetBook")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, utils.EntityId(id))

	book, err := s.repositories.BookRepository.GetByID(ctx, id)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to get book")
	}
	span.LogKV("result.found", book != nil)
	return book, nil
}

func (s *catalogService) ListBooksByAuthor(ctx context.Context, authorID int) ([]*models.Book, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "catalogService.ListBooksByAuthor")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, utils.EntityId(authorID))

	books, err := s.repositories.BookRepository.ListByAuthorID(ctx, authorID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to list books by author")
	}
	return books, nil
}

// AddAuthor appends an author. The event is published after the append;
// a publish failure is logged and does not fail the call.
func (s *catalogService) AddAuthor(ctx context.Context, name string) (*models.Author, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "catalogService.AddAuthor")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("name", name)

	author, err := s.repositories.AuthorRepository.Create(ctx, name)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to add author")
	}
	tracing.TagEntity(span, utils.EntityId(author.ID))
	s.log.Infof("author %d added: %s", author.ID, author.Name)

	s.publish(ctx, span, utils.EntityId(author.ID), enum.AUTHOR, dto.AuthorAdded{
		AuthorId: author.ID,
		Name:     author.Name,
	})
	return author, nil
}

// AddBook appends a book. authorID is stored as given, even when no such
// author exists.
func (s *catalogService) AddBook(ctx context.Context, name string, authorID int) (*models.Book, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "catalogService.AddBook")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("name", name, "authorId", authorID)

	book, err := s.repositories.BookRepository.Create(ctx, name, authorID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to add book")
	}
	tracing.TagEntity(span, utils.EntityId(book.ID))
	s.log.Infof("book %d added: %s (author %d)", book.ID, book.Name, book.AuthorID)

	s.publish(ctx, span, utils.EntityId(book.ID), enum.BOOK, dto.BookAdded{
		BookId:   book.ID,
		Name:     book.Name,
		AuthorId: book.AuthorID,
	})
	return book, nil
}

func (s *catalogService) Stats(ctx context.Context) (interfaces.CatalogStats, error) {
	authors, err := s.repositories.AuthorRepository.Count(ctx)
	if err != nil {
		return interfaces.CatalogStats{}, errors.Wrap(err, "failed to count authors")
	}
	books, err := s.repositories.BookRepository.Count(ctx)
	if err != nil {
		return interfaces.CatalogStats{}, errors.Wrap(err, "failed to count books")
	}
	return interfaces.CatalogStats{Authors: authors, Books: books}, nil
}

func (s *catalogService) publish(ctx context.Context, span opentracing.Span, entityId string, entityType enum.EntityType, message interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishFanoutEvent(ctx, entityId, entityType, message); err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("failed to publish %s event for %s: %v", entityType, entityId, err)
	}
}
