package creatomate

import "neuroforge-backend/internal/models"

// DefaultTemplates maps content categories to Creatomate template ids. The
// ids are placeholders until real templates are configured in the dashboard.
var DefaultTemplates = map[models.ContentType]string{
	models.ContentTikTok: "tiktok-template-id",
	models.ContentVSL:    "vsl-template-id",
	models.ContentReels:  "reels-template-id",
	models.ContentShorts: "shorts-template-id",
	models.ContentAds:    "ads-template-id",
}

// Templates resolves the template id for a content type. Types without an
// entry render with the tiktok template.
type Templates struct {
	ids map[models.ContentType]string
}

// NewTemplates copies DefaultTemplates and applies overrides keyed by type
// name. Unknown or empty entries are ignored.
func NewTemplates(overrides map[string]string) *Templates {
	ids := make(map[models.ContentType]string, len(DefaultTemplates))
	for t, id := range DefaultTemplates {
		ids[t] = id
	}
	for name, id := range overrides {
		t, err := models.ParseContentType(name)
		if err != nil || id == "" {
			continue
		}
		ids[t] = id
	}
	return &Templates{ids: ids}
}

func (t *Templates) For(contentType models.ContentType) string {
	if id, ok := t.ids[contentType]; ok {
		return id
	}
	return t.ids[models.ContentTikTok]
}
