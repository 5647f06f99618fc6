package cli

import (
	"strconv"
	"text/template"

	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

var templateFuncs = template.FuncMap{
	"time":    formatTime,
	"timePtr": formatTimePtr,
	"ids":     joinIDs,
	"size":    humanSize,
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).Parse(text))
}

const postTemplate = `
=== Post #{{.ID}} ===

Title:     {{.Title}}
Slug:      {{.Slug}}
Status:    {{.Status}}
{{- if .PublishAt }}
Publish:   {{timePtr .PublishAt}}
{{- end}}
Category:  {{.CategoryID}}
Tags:      {{ids .TagIDs}}
Views:     {{.Views}}
{{- if .CoverImg }}
Cover:     {{.CoverImg}}
{{- end}}
Created:   {{time .CreatedAt}}
Updated:   {{time .UpdatedAt}}
{{- if .DeletedAt }}
Deleted:   {{timePtr .DeletedAt}}
{{- end}}

Content:
---
{{.Content}}
---
`

const categoryTemplate = `
=== Category #{{.ID}} ===

Name:        {{.Name}}
Slug:        {{.Slug}}
{{- if .Description }}
Description: {{.Description}}
{{- end}}
Created:     {{time .CreatedAt}}
Updated:     {{time .UpdatedAt}}
`

const tagTemplate = `
=== Tag #{{.ID}} ===

Name:        {{.Name}}
{{- if .Description }}
Description: {{.Description}}
{{- end}}
Created:     {{time .CreatedAt}}
Updated:     {{time .UpdatedAt}}
`

const scholarTemplate = `
=== Scholar #{{.ID}} ===

Name:    {{.Name}}
{{- if .BirthYear }}
Born:    {{.BirthYear}}
{{- end}}
{{- if .DeathYear }}
Died:    {{.DeathYear}}
{{- end}}
{{- if .Photo }}
Photo:   {{.Photo}}
{{- end}}
Created: {{time .CreatedAt}}
Updated: {{time .UpdatedAt}}
{{- if .Bio }}

Bio:
---
{{.Bio}}
---
{{- end}}
`

const imageTemplate = `
=== Image #{{.ID}} ===

Name:    {{.Name}}
URL:     {{.URL}}
Type:    {{.MimeType}}
Size:    {{size .Size}}
Created: {{time .CreatedAt}}
`

var (
	postView = view[pkgapi.Post]{
		singular: "post",
		detail:   mustTemplate("post", postTemplate),
		columns:  []string{"ID", "TITLE", "STATUS", "CATEGORY", "TAGS", "UPDATED"},
		row: func(p pkgapi.Post) []string {
			return []string{
				strconv.FormatInt(p.ID, 10),
				truncate(p.Title, 40),
				p.Status,
				strconv.FormatInt(p.CategoryID, 10),
				joinIDs(p.TagIDs),
				formatTime(p.UpdatedAt),
			}
		},
	}

	categoryView = view[pkgapi.Category]{
		singular: "category",
		detail:   mustTemplate("category", categoryTemplate),
		columns:  []string{"ID", "NAME", "SLUG", "DESCRIPTION"},
		row: func(c pkgapi.Category) []string {
			return []string{strconv.FormatInt(c.ID, 10), c.Name, c.Slug, orDash(truncate(c.Description, 40))}
		},
	}

	tagView = view[pkgapi.Tag]{
		singular: "tag",
		detail:   mustTemplate("tag", tagTemplate),
		columns:  []string{"ID", "NAME", "DESCRIPTION"},
		row: func(t pkgapi.Tag) []string {
			return []string{strconv.FormatInt(t.ID, 10), t.Name, orDash(truncate(t.Description, 40))}
		},
	}

	scholarView = view[pkgapi.Scholar]{
		singular: "scholar",
		detail:   mustTemplate("scholar", scholarTemplate),
		columns:  []string{"ID", "NAME", "BORN", "DIED"},
		row: func(s pkgapi.Scholar) []string {
			return []string{strconv.FormatInt(s.ID, 10), s.Name, yearOrDash(s.BirthYear), yearOrDash(s.DeathYear)}
		},
	}

	imageView = view[pkgapi.Image]{
		singular: "image",
		detail:   mustTemplate("image", imageTemplate),
		columns:  []string{"ID", "NAME", "TYPE", "SIZE", "UPLOADED"},
		row: func(i pkgapi.Image) []string {
			return []string{strconv.FormatInt(i.ID, 10), i.Name, orDash(i.MimeType), humanSize(i.Size), formatTime(i.CreatedAt)}
		},
	}
)

func yearOrDash(y int) string {
	if y == 0 {
		return "-"
	}
	return strconv.Itoa(y)
}
