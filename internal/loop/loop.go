// Package loop wires a terminal to a single local game.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/tomz197/planetdefense/internal/loop/client"
	"github.com/tomz197/planetdefense/internal/loop/server"
)

// Run plays on r/w until the player quits or ctx is cancelled. The terminal
// must already be in raw mode.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts client.ClientOptions) error {
	gs := server.NewServer(opts.Logger)
	c, err := client.NewClient(gs, r, w, opts)
	if err != nil {
		return err
	}
	return c.Run(ctx)
}
