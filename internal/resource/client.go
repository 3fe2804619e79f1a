package resource

import (
	"PraxisAdminClient/internal/adapter"
	"PraxisAdminClient/internal/helper"
	"PraxisAdminClient/internal/model"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateEncoder turns a dto into a multipart payload for resources whose
// create operation uploads a file instead of posting JSON.
type CreateEncoder[D any] func(dto D) (adapter.MultipartPayload, error)

// Client executes the paged CRUD contract for one HTTP resource. The server
// is authoritative for every returned representation: callers replace their
// local copy wholesale with the response instead of merging the dto into it.
type Client[T any, D any, ID comparable, F any] struct {
	rest     *adapter.RestAdapter
	basePath string
	validate *validator.Validate

	createEncoder CreateEncoder[D]
}

func NewClient[T any, D any, ID comparable, F any](rest *adapter.RestAdapter, basePath string, validate *validator.Validate) *Client[T, D, ID, F] {
	return &Client[T, D, ID, F]{
		rest:     rest,
		basePath: "/" + strings.Trim(basePath, "/"),
		validate: validate,
	}
}

// WithCreateEncoder switches Create to multipart submission.
func (c *Client[T, D, ID, F]) WithCreateEncoder(enc CreateEncoder[D]) *Client[T, D, ID, F] {
	c.createEncoder = enc
	return c
}

func (c *Client[T, D, ID, F]) Page(ctx context.Context, query model.PageQuery[F]) (model.Page[T], error) {
	var page model.Page[T]

	if err := c.validate.Struct(query); err != nil {
		slog.Warn("Invalid page query", "resource", c.basePath, "error", err)
		return page, helper.NewBadRequestError("")
	}

	if err := c.rest.Get(ctx, c.basePath, EncodeQuery(query), &page); err != nil {
		return page, err
	}
	return page, nil
}

func (c *Client[T, D, ID, F]) Find(ctx context.Context, id ID) (T, error) {
	var entity T
	err := c.rest.Get(ctx, c.basePath+"/"+idString(id), nil, &entity)
	return entity, err
}

func (c *Client[T, D, ID, F]) FindMany(ctx context.Context, ids []ID) ([]T, error) {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, idString(id))
	}

	query := url.Values{}
	query.Set("ids", strings.Join(parts, ","))

	var entities []T
	err := c.rest.Get(ctx, c.basePath+"/many", query, &entities)
	return entities, err
}

func (c *Client[T, D, ID, F]) Count(ctx context.Context) (int, error) {
	var count int
	err := c.rest.Get(ctx, c.basePath+"/count", nil, &count)
	return count, err
}

func (c *Client[T, D, ID, F]) Exist(ctx context.Context, id ID) (bool, error) {
	var exists bool
	err := c.rest.Get(ctx, c.basePath+"/exist/"+idString(id), nil, &exists)
	return exists, err
}

func (c *Client[T, D, ID, F]) Create(ctx context.Context, dto D) (T, error) {
	var entity T

	if err := c.validate.Struct(dto); err != nil {
		slog.Warn("Validation failed", "resource", c.basePath, "error", err)
		return entity, helper.NewBadRequestError("")
	}

	if c.createEncoder != nil {
		payload, err := c.createEncoder(dto)
		if err != nil {
			return entity, fmt.Errorf("failed to encode create payload: %w", err)
		}
		err = c.rest.PostMultipart(ctx, c.basePath, nil, payload, &entity)
		return entity, err
	}

	err := c.rest.Post(ctx, c.basePath, nil, dto, &entity)
	return entity, err
}

func (c *Client[T, D, ID, F]) Update(ctx context.Context, id ID, dto D) (T, error) {
	var entity T

	if err := c.validate.Struct(dto); err != nil {
		slog.Warn("Validation failed", "resource", c.basePath, "error", err)
		return entity, helper.NewBadRequestError("")
	}

	err := c.rest.Put(ctx, c.basePath+"/"+idString(id), dto, &entity)
	return entity, err
}

// Delete is idempotent from the caller's perspective: deleting an already
// deleted id surfaces as a NotFound-class error, never a crash.
func (c *Client[T, D, ID, F]) Delete(ctx context.Context, id ID) error {
	return c.rest.Delete(ctx, c.basePath+"/"+idString(id))
}

func (c *Client[T, D, ID, F]) Export(ctx context.Context, query model.PageQuery[F], scheme model.ExportScheme) ([]byte, error) {
	if err := c.validate.Struct(query); err != nil {
		slog.Warn("Invalid export query", "resource", c.basePath, "error", err)
		return nil, helper.NewBadRequestError("")
	}
	if err := c.validate.Struct(scheme); err != nil || len(scheme.Fields) != len(scheme.Titles) {
		slog.Warn("Invalid export scheme", "resource", c.basePath, "error", err)
		return nil, helper.NewBadRequestError("")
	}

	return c.rest.GetBinary(ctx, c.basePath+"/export", EncodeExportQuery(query, scheme))
}

func idString(id any) string {
	if s, ok := id.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(id)
}
