// Package ui is the default HTML presenter: a minimal approval prompt and
// index page rendered from embedded templates.
package ui

import (
	"html/template"
	"io"

	"github.com/jrsteele09/go-authz-server/auth"
	"github.com/jrsteele09/go-authz-server/clients"
	"github.com/pkg/errors"
)

const approvalTemplate = `<!DOCTYPE html>
<html>
<head><title>Approve Authorization</title></head>
<body>
<h1>Authorization Request</h1>
<p>Client <strong>{{.Client.ID}}</strong> is requesting access with scope:</p>
<ul>
{{range .Scope}}<li>{{.}}</li>{{end}}
</ul>
<form method="post" action="/approve">
  <input type="hidden" name="request_id" value="{{.RequestID}}">
  <button type="submit" name="approve" value="true">Approve</button>
  <button type="submit" name="deny" value="true">Deny</button>
</form>
</body>
</html>
`

const indexTemplate = `<!DOCTYPE html>
<html>
<head><title>Authorization Server</title></head>
<body>
<h1>Authorization Server</h1>
<h2>Registered clients</h2>
<ul>
{{range .}}<li>{{.ID}} &mdash; scope: {{range .Scopes}}{{.}} {{end}}</li>{{end}}
</ul>
</body>
</html>
`

type HTMLPresenter struct {
	approval *template.Template
	index    *template.Template
}

func NewHTMLPresenter() *HTMLPresenter {
	return &HTMLPresenter{
		approval: template.Must(template.New("approval").Parse(approvalTemplate)),
		index:    template.Must(template.New("index").Parse(indexTemplate)),
	}
}

func (p *HTMLPresenter) Approval(w io.Writer, prompt *auth.Prompt) error {
	if err := p.approval.Execute(w, prompt); err != nil {
		return errors.Wrap(err, "[HTMLPresenter.Approval] execute template")
	}
	return nil
}

func (p *HTMLPresenter) Index(w io.Writer, clientList []*clients.Client) error {
	if err := p.index.Execute(w, clientList); err != nil {
		return errors.Wrap(err, "[HTMLPresenter.Index] execute template")
	}
	return nil
}
