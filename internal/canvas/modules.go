// SPDX-License-Identifier: MPL-2.0

package canvas

import (
	"context"
	"fmt"
	"net/url"
)

type (
	// Module is a named container of ordered items within a course.
	Module struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Position int    `json:"position"`
	}

	// ModuleItem is a single entry within a module.
	ModuleItem struct {
		ID       int64  `json:"id"`
		Title    string `json:"title"`
		Position int    `json:"position"`
		Type     string `json:"type"`
	}

	// ItemType enumerates the Canvas module item types this tool creates.
	ItemType string

	// CreateItemParams describes a module item to create. Zero-valued
	// optional fields are omitted from the request.
	CreateItemParams struct {
		Title string
		Type  ItemType

		// Position is the 1-based position within the module; 0 appends.
		Position int

		// Indent is the indentation level of the item.
		Indent int

		// ContentID references the file or assignment being linked
		// (required for TypeFile and TypeAssignment).
		ContentID int64

		// ExternalURL is the target of TypeExternalURL and TypeExternalTool items.
		ExternalURL string

		// NewTab opens external items in a new browser tab.
		NewTab bool
	}
)

// Module item types accepted by the Canvas API.
const (
	TypeSubHeader    ItemType = "SubHeader"
	TypeFile         ItemType = "File"
	TypeAssignment   ItemType = "Assignment"
	TypeExternalURL  ItemType = "ExternalUrl"
	TypeExternalTool ItemType = "ExternalTool"
)

// ListModules lists the course's modules in position order. A non-empty
// search filters remotely by name substring.
func (c *Client) ListModules(ctx context.Context, courseID int64, search string) ([]Module, error) {
	reqURL := c.courseURL(courseID, "modules") + "?" + listQuery(search).Encode()
	mods, err := getPaged[Module](ctx, c, reqURL)
	if err != nil {
		return nil, fmt.Errorf("listing modules: %w", err)
	}
	return mods, nil
}

// CreateModule creates a module with the given name. Position 0 appends the
// module at the end of the course.
func (c *Client) CreateModule(ctx context.Context, courseID int64, name string, position int) (Module, error) {
	form := url.Values{}
	form.Set("module[name]", name)
	if position > 0 {
		form.Set("module[position]", fmt.Sprint(position))
	}

	var mod Module
	if err := c.postForm(ctx, c.courseURL(courseID, "modules"), form, &mod); err != nil {
		return Module{}, fmt.Errorf("creating module %q: %w", name, err)
	}
	return mod, nil
}

// ListModuleItems lists a module's items in position order. A non-empty
// search filters remotely by title substring.
func (c *Client) ListModuleItems(ctx context.Context, courseID, moduleID int64, search string) ([]ModuleItem, error) {
	reqURL := c.courseURL(courseID, "modules", fmt.Sprint(moduleID), "items") + "?" + listQuery(search).Encode()
	items, err := getPaged[ModuleItem](ctx, c, reqURL)
	if err != nil {
		return nil, fmt.Errorf("listing module items: %w", err)
	}
	return items, nil
}

// CreateModuleItem creates an item inside the given module.
func (c *Client) CreateModuleItem(ctx context.Context, courseID, moduleID int64, params CreateItemParams) (ModuleItem, error) {
	form := url.Values{}
	form.Set("module_item[title]", params.Title)
	form.Set("module_item[type]", string(params.Type))
	form.Set("module_item[indent]", fmt.Sprint(params.Indent))
	if params.Position > 0 {
		form.Set("module_item[position]", fmt.Sprint(params.Position))
	}
	if params.ContentID != 0 {
		form.Set("module_item[content_id]", fmt.Sprint(params.ContentID))
	}
	if params.ExternalURL != "" {
		form.Set("module_item[external_url]", params.ExternalURL)
		form.Set("module_item[new_tab]", fmt.Sprint(params.NewTab))
	}

	var item ModuleItem
	reqURL := c.courseURL(courseID, "modules", fmt.Sprint(moduleID), "items")
	if err := c.postForm(ctx, reqURL, form, &item); err != nil {
		return ModuleItem{}, fmt.Errorf("creating module item %q: %w", params.Title, err)
	}
	return item, nil
}
