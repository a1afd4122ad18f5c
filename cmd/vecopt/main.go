// Command vecopt exercises VecOption from the command line.
//
//	vecopt [-trace Debug|Info|Error] profile [-n rounds] [-size n] [-memprofile file] [-compress]
//	vecopt [-trace Debug|Info|Error] repl
//
// profile runs a fixed workload and prints timings; repl opens an
// interactive session over a VecOption[int64].
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'vecoption.cli'
func tracer() tracing.Trace {
	return tracing.Select("vecoption.cli")
}

var traceKeys = []string{"vecoption", "vecoption.wire", "vecoption.cli"}

func main() {
	initDisplay()

	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.vecoption":      "Error",
		"trace.vecoption.wire": "Error",
		"trace.vecoption.cli":  "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Usage = usage
	flag.Parse()
	if !setTraceLevel(*tlevel) {
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Debugf("Trace level is %s", *tlevel)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	var err error
	switch args[0] {
	case "profile":
		err = runProfile(args[1:])
	case "repl":
		err = runREPL()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(3)
	}
}

// setTraceLevel applies one of Debug, Info or Error to every trace key.
func setTraceLevel(s string) bool {
	for _, key := range traceKeys {
		t := tracing.Select(key)
		switch s {
		case "Debug":
			t.SetTraceLevel(tracing.LevelDebug)
		case "Info":
			t.SetTraceLevel(tracing.LevelInfo)
		case "Error":
			t.SetTraceLevel(tracing.LevelError)
		default:
			return false
		}
	}
	return true
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: vecopt [-trace level] profile|repl [flags]\n")
	flag.PrintDefaults()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
