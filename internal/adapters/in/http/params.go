package http

import (
	"morna/internal/core/application/usecases/queries"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	HeaderRole    = "X-Role"
	HeaderStaffID = "X-Staff-ID"
)

func pathID(ctx echo.Context, name string) (kernel.ID, error) {
	var value openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return kernel.ID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.IDFromUUID(value)
}

// queryIDs reads a comma separated id list such as ?ids=a,b,c.
func queryIDs(ctx echo.Context, name string) ([]kernel.ID, error) {
	var values []openapi_types.UUID
	if err := runtime.BindQueryParameter("form", false, true, name, ctx.QueryParams(), &values); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	ids := make([]kernel.ID, 0, len(values))
	for _, value := range values {
		id, err := kernel.IDFromUUID(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// staffID prefers the staffId query parameter over the X-Staff-ID header.
// Absent means no staff scoping.
func staffID(ctx echo.Context) (*kernel.ID, error) {
	raw := ctx.QueryParam("staffId")
	if raw == "" {
		raw = ctx.Request().Header.Get(HeaderStaffID)
	}
	if raw == "" {
		return nil, nil //nolint:nilnil // unscoped
	}

	id, err := kernel.ParseID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func role(ctx echo.Context) (queries.Role, error) {
	return queries.ParseRole(ctx.Request().Header.Get(HeaderRole))
}

func optionalID(value *openapi_types.UUID) (*kernel.ID, error) {
	if value == nil {
		return nil, nil //nolint:nilnil // optional reference
	}
	id, err := kernel.IDFromUUID(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// bodyOrNewID uses the client supplied id when present and generates one
// otherwise.
func bodyOrNewID(value *openapi_types.UUID) (kernel.ID, error) {
	if value == nil {
		return kernel.NewID(), nil
	}
	return kernel.IDFromUUID(*value)
}
