package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/wippyai/odin-inspect/inspect"
	tools "github.com/wippyai/odin-inspect/internal/server"
	"github.com/wippyai/odin-inspect/snapshot"
)

func main() {
	var (
		mode      = flag.String("mode", "stdio", "Transport mode: stdio or sse")
		addr      = flag.String("addr", ":8080", "HTTP listen address for SSE")
		path      = flag.String("path", "/mcp/sse", "HTTP path for SSE connections")
		chunkSize = flag.Int("chunk", 0, "Slice chunk size (0: default)")
		pages     = flag.Uint("pages", 0, "Wasm memory limit in 64KB pages (0: default)")
		verbose   = flag.Bool("v", false, "Log to stderr")
	)
	flag.Parse()

	log := zap.NewNop()
	if *verbose {
		// stdout carries the stdio transport
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		l, err := cfg.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log = l
	}
	defer func() { _ = log.Sync() }()
	inspect.SetLogger(log.Named("inspect"))
	snapshot.SetLogger(log.Named("snapshot"))

	s := server.NewMCPServer(
		"Odin Inspector",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	tools.New(&inspect.Config{ChunkSize: *chunkSize}, uint32(*pages), log).Register(s)

	switch *mode {
	case "stdio":
		if err := server.ServeStdio(s); err != nil {
			log.Error("stdio server failed", zap.Error(err))
			os.Exit(1)
		}
	case "sse":
		sseServer := server.NewSSEServer(s)

		// "/mcp/sse" pairs with "/mcp/message"
		ssePath := *path
		messagePath := strings.Replace(ssePath, "/sse", "/message", 1)
		if messagePath == ssePath {
			messagePath = strings.TrimRight(ssePath, "/") + "/message"
		}

		mux := http.NewServeMux()
		mux.Handle(ssePath, sseServer.SSEHandler())
		mux.Handle(messagePath, sseServer.MessageHandler())

		log.Info("starting SSE server",
			zap.String("addr", *addr),
			zap.String("sse", ssePath),
			zap.String("message", messagePath))
		if err := http.ListenAndServe(*addr, mux); err != nil {
			fmt.Fprintf(os.Stderr, "HTTP server error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}
