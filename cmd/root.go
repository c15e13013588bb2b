package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jgx/internal/document"
	"github.com/oakwood-commons/jgx/internal/filestore"
	"github.com/oakwood-commons/jgx/internal/graph"
	"github.com/oakwood-commons/jgx/internal/ui"
	"github.com/oakwood-commons/jgx/pkg/loader"
	"github.com/oakwood-commons/jgx/pkg/logger"
	"github.com/oakwood-commons/jgx/pkg/settings"
)

// errShowHelp is returned by loadInput when no input is provided and help
// should be shown instead.
var errShowHelp = errors.New("no input provided")

var (
	logLevel int8
	noColor  bool
	readOnly bool
	output   string
	pathExpr string
)

var rootCtx = context.Background()

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Explore and edit structured documents as a node graph",
	Long: settings.CliBinaryName + ` loads a JSON, YAML, TOML, or NDJSON document, breaks it into
a graph of nodes (one per object or array), and opens an interactive
terminal explorer. Selected nodes can be inspected and their values edited
in place; edits are validated and written back into the document.

With --path the selected node is printed to stdout instead of opening the
explorer.`,
	Example: "\n  " + settings.CliBinaryName + " config.json\n  " +
		settings.CliBinaryName + " config.yaml --path '$.server.ports[0]'\n  " +
		"cat data.json | " + settings.CliBinaryName + " --path '$.items' -o yaml\n",
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		lgr := logger.Get(logLevel)
		lgr = logger.WithValues(lgr, "command", cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		params := settings.NewCliParams()
		params.MinLogLevel = logLevel
		params.NoColor = noColor
		params.ReadOnly = readOnly
		rootCtx = settings.IntoContext(rootCtx, params)

		err := run(rootCtx, cmd, args, params)
		if errors.Is(err, errShowHelp) {
			return cmd.Help()
		}
		return err
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().Int8Var(&logLevel, "log-level", 0, "minimum log level: 0 info, -1 debug")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVar(&readOnly, "read-only", false, "disable editing; the document can only be inspected")
	rootCmd.Flags().StringVarP(&output, "output", "o", "json", "output format for --path: json|yaml|toml|raw")
	rootCmd.Flags().StringVarP(&pathExpr, "path", "p", "", "print the node at this path (e.g. '$.items[0].name') and exit")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(ctx context.Context, cmd *cobra.Command, args []string, params *settings.Run) error {
	lgr := logger.FromContext(ctx)

	text, path, fromStdin, err := loadInput(args)
	if err != nil {
		return err
	}
	params.InputPath = path
	params.FromStdin = fromStdin

	root, err := loader.LoadRoot(text)
	if err != nil {
		return fmt.Errorf("cannot parse input: %w", err)
	}
	canonical, err := loader.CanonicalJSON(root)
	if err != nil {
		return err
	}

	doc, err := document.NewStore(canonical, lgr)
	if err != nil {
		return err
	}

	if pathExpr != "" || !stdoutIsTerminal() {
		return printNode(cmd.OutOrStdout(), doc)
	}

	graphStore := graph.NewStore(doc.Root(), lgr)
	files := filestore.NewStore(path, canonical, lgr)

	lgr.V(1).Info("starting explorer",
		"input", path, "from_stdin", fromStdin, "nodes", graphStore.Len())
	return ui.Run(doc, graphStore, files, params.NoColor, params.ReadOnly, lgr)
}

// loadInput reads the document text from the file argument or piped stdin.
func loadInput(args []string) (text, path string, fromStdin bool, err error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", false, fmt.Errorf("cannot read %s: %w", args[0], err)
		}
		return string(data), args[0], false, nil
	}

	if stat, _ := os.Stdin.Stat(); (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", "", false, errShowHelp
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", false, fmt.Errorf("cannot read stdin: %w", err)
	}
	if len(data) == 0 {
		return "", "", false, errShowHelp
	}
	return string(data), "", true, nil
}

// printNode resolves --path against the document and prints the value in the
// requested output format. An empty --path prints the whole document.
func printNode(w io.Writer, doc *document.Store) error {
	path, err := document.ParsePath(pathExpr)
	if err != nil {
		return err
	}
	node, err := document.NodeAt(doc.Root(), path)
	if err != nil {
		return err
	}

	switch output {
	case "json":
		b, err := json.MarshalIndent(node, "", "  ")
		if err != nil {
			return fmt.Errorf("cannot marshal json: %w", err)
		}
		fmt.Fprintln(w, string(b))
	case "yaml":
		b, err := yaml.Marshal(plainNumbers(node))
		if err != nil {
			return fmt.Errorf("cannot marshal yaml: %w", err)
		}
		fmt.Fprint(w, string(b))
	case "toml":
		b, err := toml.Marshal(plainNumbers(node))
		if err != nil {
			return fmt.Errorf("cannot marshal toml: %w", err)
		}
		fmt.Fprint(w, string(b))
	case "raw":
		if s, ok := node.(string); ok {
			fmt.Fprintln(w, s)
		} else {
			b, err := json.Marshal(node)
			if err != nil {
				return fmt.Errorf("cannot marshal value: %w", err)
			}
			fmt.Fprintln(w, string(b))
		}
	default:
		return fmt.Errorf("invalid output format %q (expected json, yaml, toml, or raw)", output)
	}
	return nil
}

// plainNumbers converts json.Number values into int64 or float64 so the YAML
// and TOML encoders emit numeric scalars instead of quoted strings.
func plainNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = plainNumbers(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = plainNumbers(val)
		}
		return out
	default:
		return v
	}
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		v := settings.VersionInformation
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s, %s)\n",
			settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
	},
}
