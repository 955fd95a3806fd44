// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/wikitools/auth2wd/internal/auth2wd/adapter"
	"github.com/wikitools/auth2wd/internal/auth2wd/combinator"
	"github.com/wikitools/auth2wd/internal/auth2wd/config"
	"github.com/wikitools/auth2wd/internal/auth2wd/externalid"
	"github.com/wikitools/auth2wd/internal/auth2wd/merge"
	"github.com/wikitools/auth2wd/internal/auth2wd/server"
	"github.com/wikitools/auth2wd/internal/auth2wd/wbentity"
)

func main() {
	configPath := flag.String("config", os.Getenv("AUTH2WD_CONFIG"), "path to the YAML config file")
	listen := flag.String("listen", "", "override the config's listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *listen != "" {
		cfg.ListenAddress = *listen
	}
	cfg.Apply()

	args := flag.Args()
	if len(args) == 0 {
		runServer(cfg)
		return
	}

	ctx := context.Background()
	var runErr error
	switch args[0] {
	case "parser":
		runErr = runParser(ctx, args[1:])
	case "graph":
		runErr = runGraph(ctx, args[1:])
	case "combinator":
		runErr = runCombinator(ctx, args[1:])
	case "extend":
		runErr = runExtend(ctx, args[1:])
	default:
		runErr = fmt.Errorf("unknown subcommand %q (want parser, graph, combinator, extend, or no subcommand to serve HTTP)", args[0])
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

func runServer(cfg config.Config) {
	s := server.New()
	log.Printf("Listening for HTTP requests on %s", cfg.ListenAddress)
	log.Fatal(http.ListenAndServe(cfg.ListenAddress, s.Mux()))
}

func parsePropertyArg(s string) (int, error) {
	property, ok := externalid.PropertyNumber(s)
	if !ok {
		return 0, fmt.Errorf("malformed property %q, want e.g. P227", s)
	}
	return property, nil
}

func runParser(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: auth2wd parser P{n} {id}")
	}
	property, err := parsePropertyArg(args[0])
	if err != nil {
		return err
	}
	a, err := adapter.GetParserForProperty(property, args[1])
	if err != nil {
		return err
	}
	m, err := a.Run(ctx)
	if err != nil {
		return err
	}
	return printJSON(merge.ItemToWire(m))
}

func runGraph(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: auth2wd graph P{n} {id}")
	}
	property, err := parsePropertyArg(args[0])
	if err != nil {
		return err
	}
	a, err := adapter.GetParserForProperty(property, args[1])
	if err != nil {
		return err
	}
	ga, ok := a.(adapter.GraphAdapter)
	if !ok {
		return fmt.Errorf("P%d has no RDF graph to show", property)
	}
	g, err := ga.Graph(ctx)
	if err != nil {
		return err
	}
	fmt.Print(g.NTriples())
	return nil
}

func runCombinator(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: auth2wd combinator P{n} {id}")
	}
	property, err := parsePropertyArg(args[0])
	if err != nil {
		return err
	}
	seed := externalid.New(property, args[1])
	c := combinator.New()
	if err := c.Import(ctx, []externalid.ExternalId{seed}); err != nil {
		return err
	}
	_, diff := c.Combine()
	return printJSON(diff.ToWire())
}

func runExtend(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: auth2wd extend Q{n}")
	}
	base, err := wbentity.Fetch(ctx, args[0])
	if err != nil {
		return err
	}
	c := combinator.New()
	if err := c.Import(ctx, base.ExternalIDClaims()); err != nil {
		return err
	}
	diff := c.CombineOnBaseItem(base)
	return printJSON(diff.ToWire())
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
