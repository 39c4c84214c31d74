package catalog

import (
	"strconv"

	"github.com/pasarikan/storefront/internal/models"
	"github.com/pasarikan/storefront/internal/util"
)

// PageControl is one element of the pagination widget.
type PageControl struct {
	Label    string `json:"label"`
	Page     int    `json:"page,omitempty"`
	Active   bool   `json:"active,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
	Ellipsis bool   `json:"ellipsis,omitempty"`
}

// BuildPageControls turns the server paginator's opaque link descriptors into
// renderable controls: previous/next first and last, numbered controls only
// for page 1, the last page and pages within 1 of current (gaps collapse to
// one ellipsis each), and the current page non-clickable. Any control whose
// URL is missing or unparseable is rendered disabled. An empty result set
// gets no widget.
func BuildPageControls(meta models.PaginationMeta) []PageControl {
	if meta.Total == 0 || len(meta.Links) < 2 {
		return nil
	}

	controls := make([]PageControl, 0, len(meta.Links))

	prev := meta.Links[0]
	controls = append(controls, navControl("Previous", prev))

	lastEllipsis := false
	for _, link := range meta.Links[1 : len(meta.Links)-1] {
		n, err := strconv.Atoi(link.Label)
		if err != nil {
			// Framework paginators emit their own "..." placeholders.
			if !lastEllipsis {
				controls = append(controls, PageControl{Label: "…", Ellipsis: true, Disabled: true})
				lastEllipsis = true
			}
			continue
		}
		if !showNumber(n, meta.CurrentPage, meta.LastPage) {
			if !lastEllipsis {
				controls = append(controls, PageControl{Label: "…", Ellipsis: true, Disabled: true})
				lastEllipsis = true
			}
			continue
		}
		lastEllipsis = false

		page, ok := util.PageFromURL(link.URL)
		if !ok {
			controls = append(controls, PageControl{Label: link.Label, Disabled: true})
			continue
		}
		controls = append(controls, PageControl{
			Label:    link.Label,
			Page:     page,
			Active:   link.Active || n == meta.CurrentPage,
			Disabled: link.Active || n == meta.CurrentPage,
		})
	}

	next := meta.Links[len(meta.Links)-1]
	controls = append(controls, navControl("Next", next))

	return controls
}

func navControl(label string, link models.PageLink) PageControl {
	page, ok := util.PageFromURL(link.URL)
	if !ok {
		return PageControl{Label: label, Disabled: true}
	}
	return PageControl{Label: label, Page: page}
}

func showNumber(n, current, last int) bool {
	if n == 1 || n == last {
		return true
	}
	diff := n - current
	return diff >= -1 && diff <= 1
}
