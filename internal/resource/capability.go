package resource

import (
	"PraxisAdminClient/internal/model"
	"context"
)

// A resource may implement any subset of the capabilities below. Generic
// consumers (a table driver, a form driver) receive the operations value as
// `any` and probe for the capability they need instead of assuming a full
// CRUD interface, so read-only or list+delete-only resources stay valid.

type Pageable[T any, F any] interface {
	Page(ctx context.Context, query model.PageQuery[F]) (model.Page[T], error)
}

type Findable[T any, ID comparable] interface {
	Find(ctx context.Context, id ID) (T, error)
	FindMany(ctx context.Context, ids []ID) ([]T, error)
}

type Countable interface {
	Count(ctx context.Context) (int, error)
}

type Existable[ID comparable] interface {
	Exist(ctx context.Context, id ID) (bool, error)
}

type Exportable[F any] interface {
	Export(ctx context.Context, query model.PageQuery[F], scheme model.ExportScheme) ([]byte, error)
}

type Creatable[T any, D any] interface {
	Create(ctx context.Context, dto D) (T, error)
}

type Updatable[T any, D any, ID comparable] interface {
	Update(ctx context.Context, id ID, dto D) (T, error)
}

type Deletable[ID comparable] interface {
	Delete(ctx context.Context, id ID) error
}

type Capabilities struct {
	Pageable   bool
	Findable   bool
	Countable  bool
	Existable  bool
	Exportable bool
	Creatable  bool
	Updatable  bool
	Deletable  bool
}

func (c Capabilities) ReadOnly() bool {
	return !c.Creatable && !c.Updatable && !c.Deletable
}

// CapabilitiesOf probes an operations value for the capabilities it offers.
func CapabilitiesOf[T any, D any, ID comparable, F any](ops any) Capabilities {
	_, pageable := ops.(Pageable[T, F])
	_, findable := ops.(Findable[T, ID])
	_, countable := ops.(Countable)
	_, existable := ops.(Existable[ID])
	_, exportable := ops.(Exportable[F])
	_, creatable := ops.(Creatable[T, D])
	_, updatable := ops.(Updatable[T, D, ID])
	_, deletable := ops.(Deletable[ID])

	return Capabilities{
		Pageable:   pageable,
		Findable:   findable,
		Countable:  countable,
		Existable:  existable,
		Exportable: exportable,
		Creatable:  creatable,
		Updatable:  updatable,
		Deletable:  deletable,
	}
}
