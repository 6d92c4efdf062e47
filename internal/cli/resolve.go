package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/wbs"
)

func resolveEAP(ctx context.Context, app *App, ref string) (*domain.EAP, error) {
	if ref == "" {
		return nil, fmt.Errorf("an EAP is required (use --eap)")
	}
	e, err := app.EAPs.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("eap %q: %w", ref, err)
	}
	return e, nil
}

// loadEAP resolves ref and loads its engine.
func loadEAP(ctx context.Context, app *App, ref string) (*domain.EAP, *wbs.Engine, error) {
	e, err := resolveEAP(ctx, app, ref)
	if err != nil {
		return nil, nil, err
	}
	engine, err := app.WBS.Load(ctx, e.ID)
	if err != nil {
		return nil, nil, err
	}
	return e, engine, nil
}

// resolveItem finds an item by WBS code, full ID or unique ID prefix.
func resolveItem(engine *wbs.Engine, ref string) (*domain.WBSItem, error) {
	if ref == "" {
		return nil, fmt.Errorf("item code or ID is required")
	}

	var prefixed []*domain.WBSItem
	for it := range engine.Store().Flatten() {
		if it.Code == ref || it.ID == ref {
			return it, nil
		}
		if strings.HasPrefix(it.ID, ref) {
			prefixed = append(prefixed, it)
		}
	}

	switch len(prefixed) {
	case 0:
		return nil, fmt.Errorf("item %q: %w", ref, domain.ErrNotFound)
	case 1:
		return prefixed[0], nil
	default:
		return nil, fmt.Errorf("item ID prefix %q is ambiguous (%d matches)", ref, len(prefixed))
	}
}

// codesByID maps item ids to WBS codes.
func codesByID(engine *wbs.Engine) map[string]string {
	codes := make(map[string]string, engine.Store().Len())
	for it := range engine.Store().Flatten() {
		codes[it.ID] = it.Code
	}
	return codes
}
