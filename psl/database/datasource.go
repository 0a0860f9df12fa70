package database

import (
	"github.com/satishbabariya/prisma-cascade/psl/core"
	"github.com/satishbabariya/prisma-cascade/psl/diagnostics"
	v2ast "github.com/satishbabariya/prisma-cascade/psl/parsing/v2/ast"
	"github.com/satishbabariya/prisma-cascade/psl/validation"
)

// resolveDatasource reads provider and relation mode from the first
// datasource block. Only one datasource is allowed.
func resolveDatasource(ctx *Context) {
	sources := ctx.schema.Sources()
	if len(sources) == 0 {
		return
	}
	for _, extra := range sources[1:] {
		ctx.PushError(diagnostics.NewSourceValidationError(
			"You defined more than one datasource. This is not allowed yet because support for multiple databases has not been implemented yet.",
			extra.GetName(),
			nameSpan(extra.Name),
		))
	}

	src := sources[0]
	ds := core.Datasource{Name: src.GetName(), Span: nameSpan(src.Name)}

	if prop := src.GetProperty("provider"); prop != nil {
		ds.ProviderSpan = toSpan(prop.Value.Span())
		provider, ok := v2ast.AsString(prop.Value)
		switch {
		case !ok:
			ctx.PushError(diagnostics.NewSourceValidationError("The `provider` argument must be a string literal.", ds.Name, ds.ProviderSpan))
		case !core.IsKnownProvider(provider):
			ctx.PushError(diagnostics.NewDatasourceProviderNotKnownError(provider, ds.ProviderSpan))
		default:
			ds.Provider = provider
		}
	} else {
		ctx.PushError(diagnostics.NewSourceValidationError("Argument \"provider\" is missing in data source block.", ds.Name, ds.Span))
	}

	mode := src.GetProperty("relationMode")
	legacy := src.GetProperty("referentialIntegrity")
	if legacy != nil {
		ctx.PushWarning(diagnostics.NewReferentialIntegrityAttrDeprecationWarning(toSpan(legacy.Value.Span())))
		if mode != nil {
			ctx.PushError(diagnostics.NewReferentialIntegrityAndRelationModeCooccurError(toSpan(legacy.Value.Span())))
		} else {
			mode = legacy
		}
	}
	if mode != nil {
		raw, _ := v2ast.AsString(mode.Value)
		rm, ok := core.ParseRelationMode(raw)
		if !ok {
			ctx.PushError(diagnostics.NewSourceValidationError(
				"Invalid relation mode setting: \""+raw+"\". Supported values: \"prisma\", \"foreignKeys\"",
				ds.Name,
				toSpan(mode.Value.Span()),
			))
		} else {
			if rm == core.RelationModeForeignKeys && ds.Provider == core.ProviderMongoDB {
				ctx.PushError(diagnostics.NewSourceValidationError(
					"Invalid relation mode setting: \"foreignKeys\". Supported values: \"prisma\"",
					ds.Name,
					toSpan(mode.Value.Span()),
				))
			}
			ds.SetRelationMode(rm)
		}
	}

	ctx.datasource = &ds
}

// allowedActions returns the referential actions the active connector and
// relation mode accept, in documentation order.
func allowedActions(provider string, mode core.RelationMode) []validation.ReferentialAction {
	var out []validation.ReferentialAction
	for _, a := range validation.ReferentialActions {
		switch {
		case a == validation.ReferentialActionRestrict && provider == core.ProviderSQLServer:
			continue
		case a == validation.ReferentialActionSetDefault && (mode == core.RelationModePrisma || provider == core.ProviderMongoDB):
			continue
		}
		out = append(out, a)
	}
	return out
}

func actionNames(actions []validation.ReferentialAction) []string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return names
}
