// Package cli defines the cobra command tree for the back office tool.
package cli

import (
	"errors"
	"fmt"

	"review-lifecycle-api/internal/auth"
	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Deps is what the commands need from a connected process.
type Deps struct {
	Services *service.Services
	Tokens   *auth.Tokens
	Close    func()
}

type Connector func() (*Deps, error)

type rootOptions struct {
	connect Connector
	actor   string
	format  string
}

// NewRootCmd creates the root command. connect is called lazily by the
// commands that need the store.
func NewRootCmd(connect Connector) *cobra.Command {
	opts := &rootOptions{connect: connect}

	root := &cobra.Command{
		Use:           "review-admin",
		Short:         "Moderate reviews and triage contact submissions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.actor, "actor", "", "user id of the acting admin")
	root.PersistentFlags().StringVar(&opts.format, "format", "text", "output format (text|json)")

	root.AddCommand(
		newReviewsCmd(opts),
		newContactCmd(opts),
		newTokenCmd(opts),
	)

	return root
}

var errNoActor = errors.New("--actor is required")

// session builds the session of the acting admin. The role itself is checked
// by the service on every call.
func (o *rootOptions) session() (*entity.Session, error) {
	if o.actor == "" {
		return nil, errNoActor
	}

	id, err := uuid.Parse(o.actor)
	if err != nil {
		return nil, fmt.Errorf("invalid actor id: %s", o.actor)
	}

	return entity.NewSession(id), nil
}

func (o *rootOptions) isJSON() bool {
	return o.format == "json"
}

// withDeps connects, runs fn and releases the connections.
func (o *rootOptions) withDeps(fn func(*Deps) error) error {
	deps, err := o.connect()
	if err != nil {
		return err
	}
	if deps.Close != nil {
		defer deps.Close()
	}

	return fn(deps)
}

func parseId(kind string, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id: %s", kind, s)
	}

	return id, nil
}
