// Command menuadmin runs the menu administration API and its maintenance tasks.
//
//	@title						Menu Admin API
//	@version					1.0
//	@description				Multi-tenant restaurant menu administration.
//	@BasePath					/
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						auth_token
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/menuglobal/menu-admin/docs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
