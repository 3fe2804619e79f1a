package resource

import (
	"PraxisAdminClient/internal/model"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"
)

// EncodeQuery serializes a PageQuery into request parameters. The mapping is
// deterministic: structurally equal queries always produce identical
// parameter sets, so responses can be cached and tests can compare raw URLs.
//
// Pagination, search and sorts become bare parameters, with each sort emitted
// as a repeated "sort=property,direction" value in array order. Filter struct
// fields are walked in declaration order using their `query` tag; nil pointers
// and empty strings are skipped, slices expand into repeated parameters and
// scalars are stringified.
func EncodeQuery[F any](q model.PageQuery[F]) url.Values {
	values := url.Values{}

	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Page != nil {
		values.Set("page", strconv.Itoa(*q.Page))
	}
	if q.Size != nil {
		values.Set("size", strconv.Itoa(*q.Size))
	}
	for _, s := range q.Sorts {
		values.Add("sort", s.Property+","+s.Direction)
	}
	if q.Filters != nil {
		encodeFilters(values, reflect.ValueOf(*q.Filters))
	}

	return values
}

// EncodeExportQuery appends the export projection to the regular query
// parameters: fields and titles are repeated, positionally paired values.
func EncodeExportQuery[F any](q model.PageQuery[F], scheme model.ExportScheme) url.Values {
	values := EncodeQuery(q)
	for _, f := range scheme.Fields {
		values.Add("fields", f)
	}
	for _, t := range scheme.Titles {
		values.Add("titles", t)
	}
	return values
}

func encodeFilters(values url.Values, rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name := field.Tag.Get("query")
		if name == "" || name == "-" {
			continue
		}

		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}

		switch fv.Kind() {
		case reflect.Slice, reflect.Array:
			if isUUID(fv.Type()) {
				values.Add(name, stringify(fv))
				continue
			}
			for j := 0; j < fv.Len(); j++ {
				values.Add(name, stringify(fv.Index(j)))
			}
		case reflect.String:
			if s := fv.String(); s != "" {
				values.Add(name, s)
			}
		default:
			values.Add(name, stringify(fv))
		}
	}
}

func stringify(fv reflect.Value) string {
	if t, ok := fv.Interface().(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	if s, ok := fv.Interface().(fmt.Stringer); ok {
		return s.String()
	}

	switch fv.Kind() {
	case reflect.String:
		return fv.String()
	case reflect.Bool:
		return strconv.FormatBool(fv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(fv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(fv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(fv.Float(), 'f', -1, 64)
	default:
		return fmt.Sprint(fv.Interface())
	}
}

func isUUID(t reflect.Type) bool {
	return t.Kind() == reflect.Array && t.Len() == 16 && t.Elem().Kind() == reflect.Uint8 && t.Implements(stringerType)
}

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
