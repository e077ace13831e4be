// Evalload CLI - pushes compiled class files into a running target process
// over its debugging connection and prints the resulting class-loader handle.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/seabrook/evalload/bytecode"
	"github.com/seabrook/evalload/manifest"
	"github.com/seabrook/evalload/remote"
	"github.com/seabrook/evalload/wire"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("evalload")

func main() {
	targetAddr := flag.String("target", "", "Target debug connection address (overrides evalload.toml)")
	platform := flag.String("platform", "", "Target platform: standard or compact (overrides evalload.toml)")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: evalload [options] entry.class [aux.class...]\n\n")
		fmt.Fprintf(os.Stderr, "Pushes compiled classes into the target process named in evalload.toml.\n")
		fmt.Fprintf(os.Stderr, "The first class file is the entry class.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  evalload Eval.class                     # Use evalload.toml for the target\n")
		fmt.Fprintf(os.Stderr, "  evalload -target :7788 Eval.class       # Explicit target address\n")
		fmt.Fprintf(os.Stderr, "  evalload Eval.class Eval$1.class        # Entry class plus an auxiliary class\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fail("load manifest: %v", err)
	}

	addr := *targetAddr
	caps := remote.Capabilities{CanDefineClasses: true}
	if m != nil {
		if addr == "" {
			addr = m.Target.Address
		}
		caps, err = m.TargetCapabilities()
		if err != nil {
			fail("%v", err)
		}
	}
	if *platform != "" {
		switch *platform {
		case "standard":
			caps.Platform = remote.PlatformStandard
		case "compact":
			caps.Platform = remote.PlatformCompact
		default:
			fail("unknown platform %q", *platform)
		}
	}
	if addr == "" {
		fail("no target address: pass -target or create %s", manifest.FileName)
	}

	classes := make([]*bytecode.CompiledClass, 0, flag.NArg())
	for i, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fail("read class file: %v", err)
		}
		name := strings.TrimSuffix(filepath.Base(path), ".class")
		classes = append(classes, &bytecode.CompiledClass{
			Name:  name,
			Bytes: data,
			Entry: i == 0,
		})
	}

	log.Infof("connecting to %s (%s platform)", addr, caps.Platform)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		fail("connect: %v", err)
	}
	defer conn.Close()

	client := wire.NewClient(conn, caps)
	handle, err := remote.NewLoader().LoadClasses(client, classes)
	if err != nil {
		fail("%v", err)
	}
	if handle == nil {
		fmt.Println("no applicable loading strategy; target must interpret the classes")
		return
	}
	log.Infof("loaded %d classes", len(classes))
	fmt.Printf("class loader handle: %d\n", handle.ID())
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "evalload: "+format+"\n", args...)
	os.Exit(1)
}
