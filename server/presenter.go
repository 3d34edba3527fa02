package server

import (
	"io"

	"github.com/jrsteele09/go-authz-server/auth"
	"github.com/jrsteele09/go-authz-server/clients"
)

// Presenter renders the HTML surfaces of the flow. The protocol core hands
// it the approval prompt data and never generates markup itself; deployments
// can swap in their own implementation.
type Presenter interface {
	// Approval renders the decision page shown to the resource owner.
	Approval(w io.Writer, prompt *auth.Prompt) error

	// Index renders the landing page listing the registered clients.
	Index(w io.Writer, clientList []*clients.Client) error
}
