/*
Langc compiles language L source files to C++11 and, unless told
otherwise, invokes the host C++ toolchain to produce an executable.

Usage:

	langc [flags] <source.lang>
	langc dump-grammar
	langc debug-serve [--addr :8683] [--debug-token TOKEN]
	langc repl

The flags are:

	-o, --output FILE   write the generated C++ to FILE instead of
	                    <source.lang>.cpp
	-c, --cpp-only      stop after emitting C++; do not invoke the host
	                    compiler
	    --lr1           select canonical LR(1) table construction instead
	                    of the default SLR(1)
	    --grammar FILE  load a TOML grammar descriptor overriding the
	                    built-in precedence list
	    --cache FILE    path to the grammar cache (default .langc-cache)
	    --no-cache      disable the grammar cache entirely
	-v, --version       print version and exit
	-q, --quiet         suppress informational logging

dump-grammar writes the grammar's state-by-state dump to standard output.
debug-serve starts a read-only HTTP introspection server over the
compiled grammar. repl starts an interactive lexer/parser session.
*/
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dekarrin/langc/cache"
	"github.com/dekarrin/langc/compiler"
	"github.com/dekarrin/langc/cpp"
	"github.com/dekarrin/langc/cppruntime"
	"github.com/dekarrin/langc/debugserver"
	"github.com/dekarrin/langc/diag"
	"github.com/dekarrin/langc/grammarconfig"
	"github.com/dekarrin/langc/internal/clog"
	"github.com/dekarrin/langc/internal/version"
	"github.com/dekarrin/langc/langgrammar"
	"github.com/dekarrin/langc/replshell"
)

var (
	returnCode int

	flagOutput     = pflag.StringP("output", "o", "", "write the generated C++ to FILE instead of <source.lang>.cpp")
	flagCppOnly    = pflag.BoolP("cpp-only", "c", false, "stop after emitting C++; do not invoke the host compiler")
	flagLR1        = pflag.Bool("lr1", false, "select canonical LR(1) table construction instead of SLR(1)")
	flagGrammar    = pflag.String("grammar", "", "load a TOML grammar descriptor overriding the built-in precedence list")
	flagCache      = pflag.String("cache", ".langc-cache", "path to the grammar cache")
	flagNoCache    = pflag.Bool("no-cache", false, "disable the grammar cache entirely")
	flagVersion    = pflag.BoolP("version", "v", false, "print version and exit")
	flagQuiet      = pflag.BoolP("quiet", "q", false, "suppress informational logging")
	flagAddr       = pflag.String("addr", ":8683", "debug-serve: address to listen on")
	flagDebugToken = pflag.String("debug-token", "", "debug-serve: require this bearer token for introspection requests")
)

func main() {
	defer func() {
		if p := recover(); p != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", p))
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()
	clog.SetQuiet(*flagQuiet)

	if *flagVersion {
		fmt.Println(version.Current)
		return
	}

	args := pflag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "ERROR: expected a source file or one of dump-grammar, debug-serve, repl")
		returnCode = 1
		return
	}

	switch args[0] {
	case "dump-grammar":
		runDumpGrammar()
	case "debug-serve":
		runDebugServe()
	case "repl":
		runRepl()
	default:
		runCompile(args[0])
	}
}

func buildCompiler() (*compiler.Compiler, error) {
	opts := compiler.Options{}
	if *flagLR1 {
		opts.Mode = compiler.LR1
	}

	if *flagGrammar != "" {
		desc, err := grammarconfig.Load(*flagGrammar)
		if err != nil {
			return nil, err
		}
		precedence, err := desc.Precedence()
		if err != nil {
			return nil, err
		}
		opts.Grammar = langgrammar.BuildWithPrecedence(precedence)
	}

	if !*flagNoCache {
		store, err := openCacheStore(*flagCache)
		if err != nil {
			clog.Warnf("grammar cache unavailable, continuing without it: %s", err)
		} else {
			opts.Cache = store
		}
	}

	c := compiler.New(opts)
	clog.Infof("grammar cache %s", cacheStatus(c))
	for _, conflict := range c.Table().Conflicts {
		clog.Warnf("%s", conflict.Error())
	}
	return c, nil
}

func cacheStatus(c *compiler.Compiler) string {
	if c.CacheHit {
		return "hit"
	}
	return "miss"
}

// openCacheStore picks FileStore or SQLiteStore by the cache path's
// extension (".db" or ".sqlite" selects SQLiteStore), exercising both
// backends the cache package ships.
func openCacheStore(path string) (cache.Store, error) {
	if strings.HasSuffix(path, ".db") || strings.HasSuffix(path, ".sqlite") {
		return cache.NewSQLiteStore(path)
	}
	return cache.NewFileStore(path), nil
}

func runDumpGrammar() {
	c, err := buildCompiler()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = diag.KindToolchainError.ExitCode()
		return
	}
	fmt.Print(c.Table().Dump())
}

func runDebugServe() {
	c, err := buildCompiler()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = diag.KindToolchainError.ExitCode()
		return
	}

	srv, err := debugserver.NewServer(c, *flagDebugToken)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = diag.KindToolchainError.ExitCode()
		return
	}

	clog.Infof("debug-serve listening on %s", *flagAddr)
	if err := http.ListenAndServe(*flagAddr, srv.Router()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = diag.KindToolchainError.ExitCode()
	}
}

func runRepl() {
	c, err := buildCompiler()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = diag.KindToolchainError.ExitCode()
		return
	}

	repl, err := replshell.New(c.Table(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = diag.KindToolchainError.ExitCode()
		return
	}
	defer repl.Close()

	if err := repl.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = diag.KindToolchainError.ExitCode()
	}
}

func runCompile(sourcePath string) {
	c, err := buildCompiler()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = diag.KindToolchainError.ExitCode()
		return
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = diag.KindToolchainError.ExitCode()
		return
	}

	clog.Infof("compiling %s", sourcePath)
	mod, compileErr := c.Compile(string(source))
	if compileErr != nil {
		fmt.Fprintln(os.Stderr, reportOf(compileErr))
		returnCode = exitCodeOf(compileErr)
		return
	}

	outPath := *flagOutput
	if outPath == "" {
		outPath = sourcePath + ".cpp"
	}

	cppText := cpp.Str(mod)
	if err := os.WriteFile(outPath, []byte(cppText), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = diag.KindToolchainError.ExitCode()
		return
	}

	if *flagCppOnly {
		return
	}

	if err := invokeToolchain(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = diag.KindToolchainError.ExitCode()
	}
}

// invokeToolchain runs the host C++ compiler over the emitted source,
// per §6: [-O2, -std=c++11, -I <runtime_include>, <source.cpp>,
// <runtime sources...>]. The runtime headers are extracted from the
// embedded cppruntime bundle into a scratch directory for the duration
// of this one invocation.
func invokeToolchain(cppPath string) error {
	runtimeDir, err := os.MkdirTemp("", "langc-runtime-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(runtimeDir)

	if err := cppruntime.WriteTo(runtimeDir); err != nil {
		return err
	}

	cmd := exec.Command("c++", "-O2", "-std=c++11", "-I", runtimeDir, cppPath)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := 1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return diag.Toolchain(exitCode, stderr.String())
	}
	return nil
}

func reportOf(err error) string {
	if d, ok := err.(diag.Diagnostic); ok {
		return d.Report()
	}
	return err.Error()
}

func exitCodeOf(err error) int {
	if d, ok := err.(diag.Diagnostic); ok {
		return d.Kind().ExitCode()
	}
	return 1
}
