package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/customeros/bookgraph/api/graphql/schema"
	"github.com/customeros/bookgraph/config"
	"github.com/customeros/bookgraph/server"
)

func main() {
	app := &cli.App{
		Name:  "bookgraph",
		Usage: "GraphQL API over an in-memory catalog of authors and books",
		Commands: []*cli.Command{
			{
				Name:   "server",
				Usage:  "Start the application server",
				Action: runServer,
			},
			{
				Name:   "schema",
				Usage:  "Print the GraphQL schema",
				Action: printSchema,
			},
		},
		DefaultCommand: "server",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServer(*cli.Context) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("bookgraph starting up...")

	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	if err := srv.Run(); err != nil {
		return fmt.Errorf("server run failed: %w", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func printSchema(c *cli.Context) error {
	_, err := fmt.Fprint(c.App.Writer, schema.Source())
	return err
}
