package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/mcptools"
	"github.com/tordrt/umlgen/internal/server"
	"github.com/tordrt/umlgen/internal/vision"
)

var (
	serveAddr string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve generation over HTTP",
	RunE:  runServe,
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve generation as MCP tools over stdio",
	RunE:  runMCP,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "bind", "", "Bind address (default from config)")
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.BindAddr = serveAddr
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	var importer *vision.Importer
	if cfg.Vision.Enabled() {
		im, err := vision.New(cfg.Vision, logger)
		if err != nil {
			return err
		}
		importer = im
	} else {
		logger.Warn("vision import disabled: no API key configured")
	}

	return server.New(cfg, importer, logger).Run(cmd.Context())
}

func runMCP(cmd *cobra.Command, args []string) error {
	s := mcptools.NewServer(version, &mcptools.Deps{
		BasePackage: cfg.Generation.BasePackage,
		BaseURL:     cfg.Generation.BaseURL,
		Logger:      logger,
	})
	logger.Info("mcp server ready", zap.String("version", version))
	return mcptools.ServeStdio(s)
}
