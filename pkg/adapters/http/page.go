package http

import (
	"context"
	"html/template"
	"net/http"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/pkg/dsl"
)

type pageData struct {
	SessionID string
	Source    string
	View      template.HTML
	Dump      string
	Functions []dsl.Function
	Version   string
}

// Page handles GET /: it opens a session and serves the editor around it.
func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	pg, err := s.create(r.Context(), CreateSessionRequest{Example: r.URL.Query().Get("example")})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	var data pageData
	err = s.Sessions.Do(r.Context(), pg.ID(), func(ctx context.Context, pg *sail.Playground) error {
		data = pageData{
			SessionID: pg.ID(),
			Source:    pg.Source(),
			// The view is built from escaped text nodes and fixed tags.
			View:      template.HTML(pg.Current().HTML()),
			Dump:      pg.Dump(""),
			Functions: dsl.Catalog,
			Version:   sail.Version,
		}
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("Page render failed", "err", err)
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>SAIL Playground</title>
<style>
body { font-family: sans-serif; margin: 0; display: grid; grid-template-columns: 1fr 1fr 1fr; height: 100vh; }
section { padding: 1em; overflow: auto; border-right: 1px solid #ddd; }
textarea { width: 100%; height: 70vh; font-family: monospace; }
pre.error { color: red; }
.textField, .dropdownField { margin: .5em 0; }
label { display: block; font-weight: bold; }
</style>
</head>
<body data-session="{{.SessionID}}">
<section>
<h3>Editor</h3>
<textarea id="editor" spellcheck="false">{{.Source}}</textarea>
<details><summary>Functions</summary><ul>
{{range .Functions}}<li><code>{{.Name}}({{.Params}})</code>: {{.Description}}</li>
{{end}}</ul></details>
</section>
<section><h3>UI</h3><div id="ui">{{.View}}</div></section>
<section><h3>AST</h3><pre id="dump">{{.Dump}}</pre><small>sail {{.Version}}</small></section>
<script>
const base = "/sessions/" + document.body.dataset.session;
const ui = document.getElementById("ui");
const dump = document.getElementById("dump");
async function call(method, path, body) {
  const res = await fetch(base + path, {
    method: method,
    headers: {"Content-Type": "application/json"},
    body: body === undefined ? undefined : JSON.stringify(body),
  });
  return res.json();
}
function show(frame, focusKey) {
  ui.innerHTML = frame.html;
  dump.textContent = frame.dump;
  const el = focusKey && ui.querySelector("[data-sail-bind=" + JSON.stringify(focusKey) + "]");
  if (el) el.focus();
}
document.getElementById("editor").addEventListener("input", async (e) => {
  show(await call("PUT", "/source", {source: e.target.value}));
});
ui.addEventListener("input", async (e) => {
  const key = e.target.dataset.sailBind;
  if (key && e.target.tagName === "INPUT") show(await call("POST", "/input", {key: key, value: e.target.value}), key);
});
ui.addEventListener("change", async (e) => {
  const key = e.target.dataset.sailBind;
  if (key && e.target.tagName === "SELECT") show(await call("POST", "/input", {key: key, value: e.target.value}), key);
});
ui.addEventListener("click", async (e) => {
  if (e.target.dataset.sailAction !== "submit") return;
  const res = await call("POST", "/submit");
  alert("Button clicked!\n" + JSON.stringify(res.state, null, 2));
});
</script>
</body>
</html>
`))
