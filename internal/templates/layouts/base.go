// Package layouts holds the page shells. Pages are templ components so
// fragment handlers can compose them or swap just the content region over
// htmx.
package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Base wraps content in the full HTML document: head, nav, content region.
func Base(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, templ.EscapeString(title)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ` | Noball Sports Club</title>
  <link rel="stylesheet" href="/static/css/style.css"/>
  <script src="https://unpkg.com/htmx.org@1.9.10"></script>
</head>
<body>
  <main id="content">
`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `
  </main>
</body>
</html>`)
		return err
	})
}

// Admin wraps content in the console shell with the admin navigation.
func Admin(title string, content templ.Component) templ.Component {
	return Base(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<nav class="admin-nav">
  <a href="/admin/dashboard">Dashboard</a>
  <a href="/admin/schedule">Schedule</a>
  <a href="/admin/booking-control">Booking Control</a>
  <a href="/admin/logout">Logout</a>
</nav>
<div class="admin-content">
`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `
</div>`)
		return err
	}))
}

// Raw turns prebuilt markup into a component. Fragment handlers build
// their HTML in a bytes.Buffer and hand it to a layout through this.
func Raw(html string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}
