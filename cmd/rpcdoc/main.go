package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/alecthomas/kong"

	"github.com/broady/rpcdoc"
	"github.com/broady/rpcdoc/middleware"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate the API description from a registry manifest."`
	Serve   ServeCmd   `cmd:"" help:"Serve the interactive console for a registry manifest."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type GenCmd struct {
	Manifest string `arg:"" help:"Path to the registry manifest (JSON)."`
	Format   string `help:"Output format." default:"json" short:"f" enum:"json,yaml"`
	Out      string `help:"Output file (defaults to stdout)." short:"o"`
}

func (c *GenCmd) Run() error {
	snap, meta, err := loadManifest(c.Manifest)
	if err != nil {
		return err
	}

	doc, err := rpcdoc.Generate(snap, meta)
	if err != nil {
		return err
	}

	var data []byte
	switch c.Format {
	case "yaml":
		data, err = rpcdoc.RenderYAML(doc)
	default:
		data, err = rpcdoc.RenderJSONIndent(doc)
	}
	if err != nil {
		return err
	}

	if c.Out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(c.Out, data, 0o644)
}

type ServeCmd struct {
	Manifest string `arg:"" help:"Path to the registry manifest (JSON)."`
	Addr     string `help:"Address to listen on." default:":8789"`
	RPCPort  int    `help:"Port the RPC transport listens on." default:"8788" name:"rpc-port"`
}

func (c *ServeCmd) Run() error {
	snap, meta, err := loadManifest(c.Manifest)
	if err != nil {
		return err
	}

	docs := rpcdoc.NewDocsHandler(snap, meta).WithRPCPort(c.RPCPort)

	var handler http.Handler = docs
	handler = middleware.Logging(nil)(handler)
	handler = middleware.CORS(middleware.CORSAllowAll)(handler)

	slog.Info("serving documentation",
		slog.String("addr", c.Addr),
		slog.Int("rpcPort", c.RPCPort))
	return http.ListenAndServe(c.Addr, handler)
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("rpcdoc"),
		kong.Description("OpenAPI documentation generator for RPC service registries."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "rpcdoc: %v\n", err)
		os.Exit(1)
	}
}
