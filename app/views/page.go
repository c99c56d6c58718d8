package views

import (
	"html/template"
	"io"

	"todo-widget/app/feedback"
)

// Page is everything the widget template needs.
type Page struct {
	Entries          []Entry
	Input            string
	SubmitLabel      string
	Editing          bool
	EditID           string
	Feedback         feedback.Message
	ContainerVisible bool
	ClearVisible     bool
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// WritePage renders p as a full HTML document.
func WritePage(w io.Writer, p Page) error {
	return pageTemplate.Execute(w, p)
}

const pageHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>To-do</title>
    <link rel="stylesheet" href="/static/app.css" />
  </head>
  <body>
    <section class="section-center">
      <form class="task-form" method="post" action="/tasks">
        <p class="alert{{if not .Feedback.Empty}} alert-{{.Feedback.Kind}}{{end}}">{{.Feedback.Text}}</p>
        <h3>to-do list</h3>
        <div class="form-control">
          <input type="text" id="task" name="value" value="{{.Input}}" placeholder="e.g. buy milk" autofocus />
          <button type="submit" class="submit-btn">{{.SubmitLabel}}</button>
        </div>
      </form>
      {{if .Editing}}
      <form method="post" action="/tasks/edit/cancel"><button type="submit" class="cancel-btn">Cancel</button></form>
      {{end}}
      <div class="task-container{{if .ContainerVisible}} show-container{{end}}">
        <div class="task-list">
          {{range .Entries}}
          <article class="task-item{{if .Completed}} completed{{end}}" data-id="{{.ID}}">
            <form method="post" action="/tasks/{{.ID}}/toggle">
              <button type="submit" class="checkbox">{{if .Completed}}&#9745;{{else}}&#9744;{{end}}</button>
            </form>
            <p class="title">{{.Value}}</p>
            <div class="btn-container">
              <form method="post" action="/tasks/{{.ID}}/edit"><button type="submit" class="edit-btn">Edit</button></form>
              <form method="post" action="/tasks/{{.ID}}/delete"><button type="submit" class="delete-btn">Delete</button></form>
            </div>
          </article>
          {{end}}
        </div>
        {{if .ClearVisible}}
        <form method="post" action="/tasks/clear"><button type="submit" class="clear-btn">Clear Tasks</button></form>
        {{end}}
      </div>
    </section>
  </body>
</html>
`

// AppCSS styles the page.
const AppCSS = `body { font-family: system-ui, sans-serif; background: #f1f5f8; }
.section-center { width: 90vw; max-width: 35rem; margin: 4rem auto; background: #fff; padding: 2rem; border-radius: .25rem; }
.alert { height: 1.25rem; text-align: center; margin-bottom: 1rem; }
.alert-success { color: #155724; background: #d4edda; }
.alert-danger { color: #721c24; background: #f8d7da; }
.form-control { display: flex; justify-content: center; }
.task-container { visibility: hidden; margin-top: 2rem; }
.show-container { visibility: visible; }
.task-item { display: flex; align-items: center; justify-content: space-between; margin-bottom: .5rem; }
.task-item form { display: inline; }
.task-item.completed .title { text-decoration: line-through; color: #617d98; }
.btn-container { display: flex; gap: .25rem; }
.clear-btn { display: block; margin: 1rem auto 0; }
`
