package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Shopify/go-lua"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/hostbind/hostbind/addmod"
	"github.com/hostbind/hostbind/bridge"
	"github.com/hostbind/hostbind/luahost"
	"github.com/hostbind/hostbind/wasmhost"
)

// version is the module version reported through host introspection.
// Overridden at build time: -ldflags "-X main.version=1.2.3"
var version = "0.4.4"

func main() {
	var (
		script      = flag.String("script", "", "Run a Lua script with the module installed")
		callName    = flag.String("call", "", "Function to call (one-shot)")
		callArgs    = flag.String("args", "", "Comma-separated arguments for -call")
		sum         = flag.Bool("sum", false, "Add all positional arguments through the bridge")
		list        = flag.Bool("list", false, "List exported functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		modVersion  = flag.String("module-version", version, "Module version string (semver)")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		luahost.SetLogger(log)
		wasmhost.SetLogger(log)
	}

	m, err := addmod.New(*modVersion)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *list:
		listBindings(m)
	case *interactive:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(m); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *script != "":
		if err := runScript(m, *script); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *callName != "":
		if err := runCall(m, *callName, *callArgs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *sum:
		if err := runSum(m, flag.Args()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "Usage: bridgecall -script <file.lua>")
		fmt.Fprintln(os.Stderr, "       bridgecall -call <name> -args <a,b,...>")
		fmt.Fprintln(os.Stderr, "       bridgecall -sum <n> <n> ...")
		fmt.Fprintln(os.Stderr, "       bridgecall -list")
		fmt.Fprintln(os.Stderr, "       bridgecall -i  (interactive mode)")
		os.Exit(1)
	}
}

func listBindings(m *bridge.Module) {
	fmt.Printf("Module: %s %s\n", m.Name(), m.Version())
	if m.Doc() != "" {
		fmt.Printf("  %s\n", m.Doc())
	}
	fmt.Printf("\nExported functions:\n")
	for _, b := range m.Bindings() {
		fmt.Printf("  %s\n", b.Signature())
		if b.Doc() != "" {
			fmt.Printf("      %s\n", b.Doc())
		}
	}
}

func runScript(m *bridge.Module, path string) error {
	l := lua.NewState()
	lua.OpenLibraries(l)
	luahost.Install(l, m)

	if err := lua.DoFile(l, path); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

func runCall(m *bridge.Module, name, argStr string) error {
	args := parseArgs(argStr)
	result, err := m.Invoke(context.Background(), name, args...)
	if err != nil {
		return err
	}
	fmt.Printf("%v\n", result)
	return nil
}

// runSum folds the positional arguments through repeated bridge calls,
// the way the module's host-side helper script would.
func runSum(m *bridge.Module, args []string) error {
	ctx := context.Background()
	var total any = int64(0)
	for _, arg := range args {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("not an integer: %q", arg)
		}
		total, err = m.Invoke(ctx, "add", total, n)
		if err != nil {
			return err
		}
	}
	fmt.Printf("%v\n", total)
	return nil
}

// parseArgs splits a comma-separated argument list into dynamic values.
// No typing happens here; the bridge validates everything.
func parseArgs(s string) []any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	args := make([]any, len(parts))
	for i, p := range parts {
		args[i] = parseArg(strings.TrimSpace(p))
	}
	return args
}

func parseArg(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if s == "true" || s == "false" {
		return s == "true"
	}
	return s
}
