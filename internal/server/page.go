package server

import (
	"html/template"
	"time"

	"github.com/ppiankov/dayfacts/internal/render"
	"github.com/ppiankov/dayfacts/internal/session"
)

type pageData struct {
	session.View
	FadeOutMS int64
	FadeInMS  int64
}

func newPageData(view session.View, fadeOut, fadeIn time.Duration) pageData {
	return pageData{
		View:      view,
		FadeOutMS: fadeOut.Milliseconds(),
		FadeInMS:  fadeIn.Milliseconds(),
	}
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"year": render.FormatYear,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>On This Day{{if .Date}} · {{.Date}}{{end}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f6f4ef; color: #222; }
header { padding: 1rem 2rem; display: flex; justify-content: space-between; align-items: baseline; }
nav form { display: inline; }
nav button { border: 1px solid #999; background: #fff; border-radius: 1rem; padding: .25rem .75rem; cursor: pointer; }
nav button.active { background: #3b4a8c; color: #fff; border-color: #3b4a8c; }
main { display: grid; grid-template-columns: 1fr 2fr 1fr; gap: 1.5rem; padding: 0 2rem 2rem; }
@media (max-width: 900px) { main { grid-template-columns: 1fr; } }
.card { background: #fff; border-radius: .75rem; padding: 1.5rem; box-shadow: 0 2px 8px rgba(0,0,0,.08);
  animation: fade-in {{.FadeInMS}}ms ease-in; transition: opacity {{.FadeOutMS}}ms ease-out; }
.card.fading { opacity: 0; }
@keyframes fade-in { from { opacity: 0; } to { opacity: 1; } }
.card img { max-width: 100%; border-radius: .5rem; }
.year { color: #b5651d; font-weight: bold; }
.notice { font-style: italic; color: #8a6d00; }
.error { color: #b00020; font-weight: bold; }
aside h2 { font-size: 1rem; text-transform: uppercase; letter-spacing: .05em; }
aside li { margin-bottom: .5rem; }
footer { padding: 0 2rem 2rem; color: #666; }
</style>
</head>
<body>
<header>
  <h1>On This Day</h1>
  <span>{{.Date}}</span>
</header>
<nav style="padding: 0 2rem 1rem">
  {{$active := .Category}}
  {{range .Categories}}
  <form method="post" action="/category/{{.Category}}">
    <button type="submit"{{if eq .Category $active}} class="active"{{end}}>{{.Label}}</button>
  </form>
  {{end}}
</nav>
<main>
  <aside>
    <h2>Notable Births</h2>
    <ul>{{range .Births}}<li><span class="year">{{year .Year}}</span> {{if .Link}}<a href="{{.Link}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}<br><small>{{.Description}}</small></li>{{end}}</ul>
  </aside>
  <section class="card" id="card">
    {{if .Loading}}
      <p>Loading facts…</p>
    {{else if .Error}}
      <p class="error">{{.Error}}</p>
    {{else if .Empty}}
      <p class="notice">{{.Notice}}</p>
      <ul>{{range .Empty.Hints}}<li>{{.}}</li>{{end}}</ul>
    {{else if .Fact}}
      <div class="year">{{.Fact.Year}}</div>
      <h2>{{.Fact.Title}}</h2>
      {{if .Fact.ImageURL}}<img src="{{.Fact.ImageURL}}" alt="{{.Fact.Title}}">{{end}}
      <p>{{.Fact.BodyText}}</p>
      <a href="{{.Fact.LinkURL}}">{{.Fact.LinkLabel}}</a>
      {{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
      <form method="post" action="/next" id="next-form"><button type="submit">Next fact</button></form>
    {{else if .Notice}}
      <p class="notice">{{.Notice}}</p>
    {{end}}
  </section>
  <aside>
    <h2>Notable Deaths</h2>
    <ul>{{range .Deaths}}<li><span class="year">{{year .Year}}</span> {{if .Link}}<a href="{{.Link}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}<br><small>{{.Description}}</small></li>{{end}}</ul>
  </aside>
</main>
<footer>{{if .Fact}}Fact {{.Position}} of {{.Total}}{{end}}</footer>
<script>
const form = document.getElementById("next-form");
if (form) {
  form.addEventListener("submit", (e) => {
    e.preventDefault();
    document.getElementById("card").classList.add("fading");
    setTimeout(() => form.submit(), {{.FadeOutMS}});
  });
}
</script>
</body>
</html>
`))
