package proxy

import (
	"context"
	"fmt"

	"github.com/hupe1980/entityproxy/core"
)

// Built-in getters and methods. They are merged into the class tables ahead
// of user declarations, so overriding any of them is just declaring a getter
// or method with the same name.
var (
	builtinGetters = map[string]Getter{
		"entityLoader": entityLoaderGetter,
		"dataValues":   dataValuesGetter,
		"exists":       existsGetter,
	}

	builtinMethods = map[string]Method{
		"assertExists": assertExistsMethod,
		"clearCache":   clearCacheMethod,
	}
)

// entityLoaderGetter looks the handle's loader up in Context.Loaders.
func entityLoaderGetter(_ context.Context, h *Handle) (any, error) {
	if h.ctx == nil || h.ctx.Loaders == nil {
		return nil, &core.ConfigurationError{
			Message: "Unable to resolve a loader: pass a loaders object in the context, or override entityLoader.",
		}
	}
	l, ok := h.ctx.Loaders[h.EntityType()]
	if !ok {
		return nil, &core.ConfigurationError{
			Message: fmt.Sprintf("No loader is defined for proxy `%s`: pass one in the context loaders, or override entityLoader.", h.EntityType()),
		}
	}
	return l, nil
}

// dataValuesGetter fetches the raw record. It resolves entityLoader through
// the chain so a user override is honored, then requires the result to expose
// the fetch operation. A nil record is the does-not-exist case.
func dataValuesGetter(ctx context.Context, h *Handle) (any, error) {
	v, err := h.Get(ctx, "entityLoader")
	if err != nil {
		return nil, err
	}
	l, ok := v.(core.Loader)
	if !ok {
		return nil, &core.ConfigurationError{
			Message: "entityLoader.fetch should be a function: pass a loader with a fetch operation, or override dataValues.",
		}
	}
	rec, err := l.Fetch(ctx, h.id)
	if err != nil {
		h.class.logger.Error("fetch failed",
			"entity_type", h.EntityType(), "id", h.id, "error", err)
		return nil, err
	}
	if rec == nil {
		return nil, &core.NotFoundError{EntityType: h.EntityType(), ID: h.id}
	}
	return rec, nil
}

// existsGetter resolves true when dataValues resolves and false when it
// fails, swallowing the failure. Use assertExists to see the error.
func existsGetter(ctx context.Context, h *Handle) (any, error) {
	if _, err := h.Get(ctx, "dataValues"); err != nil {
		return false, nil
	}
	return true, nil
}

// assertExistsMethod awaits dataValues and re-raises its failure unchanged.
func assertExistsMethod(ctx context.Context, h *Handle, _ ...any) (any, error) {
	_, err := h.Get(ctx, "dataValues")
	return nil, err
}

// clearCacheMethod empties the handle cache and propagates the invalidation
// to the loader. The loader's invalidate capability is checked before
// anything is cleared, so an incapable loader leaves the cache intact.
func clearCacheMethod(ctx context.Context, h *Handle, _ ...any) (any, error) {
	v, err := h.Get(ctx, "entityLoader")
	if err != nil {
		return nil, err
	}
	inv, ok := v.(core.Invalidator)
	if !ok {
		return nil, &core.ConfigurationError{
			Message: "entityLoader.invalidate should be a function: pass a loader with an invalidate operation, or override clearCache.",
		}
	}
	h.class.logger.Debug("clearing cache",
		"entity_type", h.EntityType(), "id", h.id, "cached", h.cache.Len())
	h.cache.Reset()
	inv.Invalidate(h.id)
	return nil, nil
}
